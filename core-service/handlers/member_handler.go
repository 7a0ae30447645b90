package handlers

import (
	"net/http"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/core-service/services"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/clients"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models/notification"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/middleware"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/audit"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/permission"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MemberResponse represents a membership with its derived permission set
type MemberResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	CreatedAt   string    `json:"created_at"`
}

// UpdateMemberRoleRequest represents request body for changing a member's role
type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// GetMembers lists an organization's members
// @Summary List organization members
// @Description List members of an organization with their roles and derived permission sets
// @Tags members
// @Accept json
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid organization ID format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 500 {object} map[string]string "Server error"
// @Router /organizations/{id}/members [get]
func GetMembers(ctx *gin.Context) {
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

	db := database.DB

	// Listing is member-only
	var actor models.OrganizationMember
	if err := db.Where("organization_id = ? AND user_id = ?", orgID, userID).First(&actor).Error; err != nil {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this organization"})
		return
	}

	var members []models.OrganizationMember
	if err := db.Preload("User").Where("organization_id = ?", orgID).Order("created_at ASC").Find(&members).Error; err != nil {
		response.SanitizedInternalError(ctx, "failed to retrieve members", err)
		return
	}

	items := make([]MemberResponse, 0, len(members))
	for _, m := range members {
		items = append(items, MemberResponse{
			ID:          m.ID,
			UserID:      m.UserID,
			Email:       m.User.Email,
			FirstName:   m.User.FirstName,
			LastName:    m.User.LastName,
			Role:        m.Role,
			Permissions: permission.GetDefaultPermissionsForRole(m.Role),
			CreatedAt:   m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"members": items,
		"total":   len(items),
	})
}

// UpdateMemberRole changes a member's role
// @Summary Update member role
// @Description Change a member's role. Requires the members:role permission; granting OWNER requires the actor to be OWNER; an owner can never demote themself.
// @Tags members
// @Accept json
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Param userId path string true "Target user ID" format(uuid)
// @Param role body UpdateMemberRoleRequest true "New role"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid request data"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient permissions"
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /organizations/{id}/members/{userId} [patch]
func UpdateMemberRole(ctx *gin.Context) {
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

	targetUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	var req UpdateMemberRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	db := database.DB

	var target models.OrganizationMember
	previousRole := ""
	if err := db.Where("organization_id = ? AND user_id = ?", orgID, targetUserID).First(&target).Error; err == nil {
		previousRole = target.Role
	}

	record, err := services.UpdateMemberRole(db, orgID, targetUserID, req.Role, userID)
	if err != nil {
		switch err {
		case services.ErrInvalidRole:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		case services.ErrOwnerSelfDemote:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "An owner cannot demote themself"})
		case services.ErrNotMember, services.ErrForbidden:
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		case services.ErrMemberNotFound:
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		default:
			response.SanitizedInternalError(ctx, "failed to update member role", err)
		}
		return
	}

	audit.Record(db, userID, audit.ActionMemberRoleChanged, audit.EntityMember, &record.ID,
		"Member role changed from "+previousRole+" to "+record.Role,
		map[string]interface{}{"role": previousRole},
		map[string]interface{}{"role": record.Role})

	clients.NewNotificationClient().Notify(clients.CreateNotificationRequest{
		UserID:   targetUserID,
		Type:     notification.TypeMemberChanged,
		Level:    notification.NotificationLevelInfo,
		Title:    "Your role was updated",
		Message:  "Your organization role is now " + record.Role + ".",
		Entity:   audit.EntityMember,
		EntityID: &record.ID,
	})

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"member":  record,
	})
}

// RemoveMember removes a member from an organization
// @Summary Remove member
// @Description Remove a member. Self-removal is always allowed; removing others requires the members:remove permission.
// @Tags members
// @Accept json
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Param userId path string true "Target user ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid ID format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient permissions"
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /organizations/{id}/members/{userId} [delete]
func RemoveMember(ctx *gin.Context) {
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

	targetUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	db := database.DB

	if err := services.RemoveMember(db, orgID, targetUserID, userID); err != nil {
		switch err {
		case services.ErrNotMember, services.ErrForbidden:
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		case services.ErrMemberNotFound:
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		default:
			response.SanitizedInternalError(ctx, "failed to remove member", err)
		}
		return
	}

	audit.Record(db, userID, audit.ActionMemberRemoved, audit.EntityMember, nil,
		"Member "+targetUserID.String()+" removed from organization", nil,
		map[string]interface{}{"organization_id": orgID, "user_id": targetUserID})

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Member removed successfully",
	})
}
