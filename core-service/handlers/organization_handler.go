package handlers

import (
	"net/http"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/middleware"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/audit"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/permission"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/query"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrganizationResponse represents organization data for API responses
type OrganizationResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Status    string    `json:"status"`
	Country   string    `json:"country"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

// UpdateOrganizationRequest represents request body for updating organization
type UpdateOrganizationRequest struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Country string `json:"country"`
}

func buildOrganizationResponse(org *models.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:        org.ID,
		Name:      org.Name,
		Slug:      org.Slug,
		Status:    org.Status,
		Country:   org.Country,
		OwnerID:   org.OwnerID,
		CreatedAt: org.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: org.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// requireMembership loads the caller's membership in an organization or
// writes a 403 and returns false.
func requireMembership(ctx *gin.Context, orgID, userID uuid.UUID) (*models.OrganizationMember, bool) {
	var member models.OrganizationMember
	if err := database.DB.Where("organization_id = ? AND user_id = ?", orgID, userID).First(&member).Error; err != nil {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this organization"})
		return nil, false
	}
	return &member, true
}

// GetOrganizations retrieves the caller's organizations with pagination and filtering
// @Summary Get organizations
// @Description Get the organizations the current user belongs to, with pagination, filtering, sorting and search
// @Tags organizations
// @Accept json
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Items per page (default: 10)"
// @Param search query string false "Search term across name and slug"
// @Param filters[status] query string false "Filter by status (ACTIVE, INACTIVE)"
// @Param filters[country] query string false "Filter by country code"
// @Param sort[field] query string false "Sort field (name, slug, status, created_at, updated_at)"
// @Param sort[order] query string false "Sort order (asc, desc)"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /organizations [get]
func GetOrganizations(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	db := database.DB

	// Parse query parameters using shared utility
	params := query.ParseQueryParams(ctx)

	// Define allowed filter fields
	allowedFilters := map[string]string{
		"status":  "organizations.status",
		"country": "organizations.country",
	}

	// Define allowed sort fields
	allowedSortFields := map[string]string{
		"name":       "organizations.name",
		"slug":       "organizations.slug",
		"status":     "organizations.status",
		"created_at": "organizations.created_at",
		"updated_at": "organizations.updated_at",
	}

	// Define search fields
	searchFields := []string{"organizations.name", "organizations.slug"}

	// Build query scoped to the caller's memberships
	dbQuery := db.Model(&models.Organization{}).
		Joins("JOIN organization_members ON organization_members.organization_id = organizations.id").
		Where("organization_members.user_id = ?", userID)

	// Apply filters, search, sorting, and pagination
	dbQuery = query.ApplyFilters(dbQuery, params.Filters, allowedFilters)
	dbQuery = query.ApplySearch(dbQuery, params.Search, searchFields)
	dbQuery = query.ApplySort(dbQuery, params.Sort, allowedSortFields)

	// Get total count before pagination
	var total int64
	if err := dbQuery.Count(&total).Error; err != nil {
		response.SanitizedInternalError(ctx, "failed to count organizations", err)
		return
	}

	// Apply pagination
	dbQuery = query.ApplyPagination(dbQuery, params.Page, params.Limit)

	var organizations []models.Organization
	if err := dbQuery.Find(&organizations).Error; err != nil {
		response.SanitizedInternalError(ctx, "failed to retrieve organizations", err)
		return
	}

	orgResponses := make([]OrganizationResponse, 0, len(organizations))
	for i := range organizations {
		orgResponses = append(orgResponses, buildOrganizationResponse(&organizations[i]))
	}

	pagination := query.BuildPaginationResponse(params.Page, params.Limit, total)

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"items":      orgResponses,
			"pagination": pagination,
		},
	})
}

// GetOrganization retrieves a single organization by ID
// @Summary Get organization by ID
// @Description Get detailed information about an organization the current user belongs to
// @Tags organizations
// @Accept json
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid organization ID format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 404 {object} map[string]string "Organization not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /organizations/{id} [get]
func GetOrganization(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orgID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid organization ID format"})
		return
	}

	if _, ok := requireMembership(ctx, orgID, userID); !ok {
		return
	}

	var org models.Organization
	if err := database.DB.First(&org, "id = ?", orgID).Error; err != nil {
		response.NotFoundOrInternal(ctx, "Organization", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    buildOrganizationResponse(&org),
	})
}

// UpdateOrganization updates an existing organization
// @Summary Update an organization
// @Description Update an organization's information. Requires the org:update permission.
// @Tags organizations
// @Accept json
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Param organization body UpdateOrganizationRequest true "Updated organization information"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid request data or ID format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient permissions"
// @Failure 404 {object} map[string]string "Organization not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /organizations/{id} [put]
func UpdateOrganization(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orgID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid organization ID format"})
		return
	}

	var req UpdateOrganizationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	member, ok := requireMembership(ctx, orgID, userID)
	if !ok {
		return
	}
	if !permission.RoleHasPermission(member.Role, permission.PermOrgUpdate) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	db := database.DB

	var org models.Organization
	if err := db.First(&org, "id = ?", orgID).Error; err != nil {
		response.NotFoundOrInternal(ctx, "Organization", err)
		return
	}

	oldValues := map[string]interface{}{
		"name": org.Name, "status": org.Status, "country": org.Country,
	}

	if req.Name != "" {
		org.Name = req.Name
	}
	if req.Status != "" {
		org.Status = req.Status
	}
	if req.Country != "" {
		org.Country = req.Country
	}

	if err := db.Save(&org).Error; err != nil {
		response.SanitizedInternalError(ctx, "failed to update organization", err)
		return
	}

	audit.Record(db, userID, audit.ActionOrganizationUpdated, audit.EntityOrganization, &org.ID,
		"Organization "+org.Name+" updated", oldValues,
		map[string]interface{}{"name": org.Name, "status": org.Status, "country": org.Country})

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Organization updated successfully",
		"data":    buildOrganizationResponse(&org),
	})
}

// DeleteOrganization deletes an organization
// @Summary Delete an organization
// @Description Delete an organization. Requires the org:delete permission; blocked while other members remain.
// @Tags organizations
// @Accept json
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid organization ID format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient permissions"
// @Failure 404 {object} map[string]string "Organization not found"
// @Failure 409 {object} map[string]string "Organization has other members"
// @Failure 500 {object} map[string]string "Server error"
// @Router /organizations/{id} [delete]
func DeleteOrganization(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orgID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid organization ID format"})
		return
	}

	member, ok := requireMembership(ctx, orgID, userID)
	if !ok {
		return
	}
	if !permission.RoleHasPermission(member.Role, permission.PermOrgDelete) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	db := database.DB

	var org models.Organization
	if err := db.First(&org, "id = ?", orgID).Error; err != nil {
		response.NotFoundOrInternal(ctx, "Organization", err)
		return
	}

	var memberCount int64
	db.Model(&models.OrganizationMember{}).Where("organization_id = ? AND user_id != ?", orgID, userID).Count(&memberCount)
	if memberCount > 0 {
		ctx.JSON(http.StatusConflict, gin.H{
			"error":   "Organization has other members",
			"message": "Remove all other members before deleting the organization",
		})
		return
	}

	if err := db.Where("organization_id = ?", orgID).Delete(&models.OrganizationMember{}).Error; err != nil {
		response.SanitizedInternalError(ctx, "failed to delete memberships", err)
		return
	}
	if err := db.Delete(&org).Error; err != nil {
		response.SanitizedInternalError(ctx, "failed to delete organization", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Organization deleted successfully",
	})
}

// GetMyPermissions returns the caller's role and derived permission set
// @Summary Get my permissions
// @Description Get the current user's role and permission set within an organization
// @Tags organizations
// @Accept json
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid organization ID format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member"
// @Router /organizations/{id}/permissions [get]
func GetMyPermissions(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orgID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid organization ID format"})
		return
	}

	member, ok := requireMembership(ctx, orgID, userID)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":     true,
		"role":        member.Role,
		"permissions": permission.GetDefaultPermissionsForRole(member.Role),
	})
}
