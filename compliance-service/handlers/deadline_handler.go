package handlers

import (
	"net/http"
	"time"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/compliance-service/services"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models/compliance"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/middleware"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/audit"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/query"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DeadlineResponse represents deadline data for API responses
type DeadlineResponse struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Regulation      string     `json:"regulation,omitempty"`
	DueDate         string     `json:"due_date"`
	Status          string     `json:"status"`
	IsOverdue       bool       `json:"is_overdue"`
	OriginalDueDate *string    `json:"original_due_date,omitempty"`
	ExtensionReason string     `json:"extension_reason,omitempty"`
	ApprovedBy      string     `json:"approved_by,omitempty"`
	CompletedAt     *string    `json:"completed_at,omitempty"`
	CreatedAt       string     `json:"created_at"`
	UpdatedAt       string     `json:"updated_at"`
}

// CreateDeadlineRequest represents request body for creating a deadline
type CreateDeadlineRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Regulation  string    `json:"regulation"`
	DueDate     time.Time `json:"due_date" binding:"required"`
}

// ExtendDeadlineRequest represents request body for extending a deadline
type ExtendDeadlineRequest struct {
	NewDueDate time.Time `json:"new_due_date" binding:"required"`
	Reason     string    `json:"reason" binding:"required"`
	ApprovedBy string    `json:"approved_by"`
}

func buildDeadlineResponse(d *compliance.Deadline, now time.Time) DeadlineResponse {
	resp := DeadlineResponse{
		ID:              d.ID,
		Title:           d.Title,
		Description:     d.Description,
		Regulation:      d.Regulation,
		DueDate:         d.DueDate.Format(time.RFC3339),
		Status:          string(d.Status),
		IsOverdue:       d.IsOverdue(now),
		ExtensionReason: d.ExtensionReason,
		ApprovedBy:      d.ApprovedBy,
		CreatedAt:       d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       d.UpdatedAt.Format(time.RFC3339),
	}
	if d.OriginalDueDate != nil {
		original := d.OriginalDueDate.Format(time.RFC3339)
		resp.OriginalDueDate = &original
	}
	if d.CompletedAt != nil {
		completed := d.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &completed
	}
	return resp
}

// GetDeadlines retrieves the caller's deadlines with pagination and filtering
// @Summary Get deadlines
// @Description Get the current user's regulatory deadlines with pagination, filtering and sorting
// @Tags deadlines
// @Accept json
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Items per page (default: 10)"
// @Param search query string false "Search term across title and description"
// @Param filters[status] query string false "Filter by status (UPCOMING, DUE_SOON, OVERDUE, EXTENDED, COMPLETED)"
// @Param filters[regulation] query string false "Filter by regulation (eu_space_act, nis2, uk_sia)"
// @Param sort[field] query string false "Sort field (title, due_date, status, created_at)"
// @Param sort[order] query string false "Sort order (asc, desc)"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /compliance/deadlines [get]
func GetDeadlines(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	db := database.DB
	params := query.ParseQueryParams(ctx)

	allowedFilters := map[string]string{
		"status":     "status",
		"regulation": "regulation",
	}
	allowedSortFields := map[string]string{
		"title":      "title",
		"due_date":   "due_date",
		"status":     "status",
		"created_at": "created_at",
	}
	searchFields := []string{"title", "description"}

	dbQuery := db.Model(&compliance.Deadline{}).Where("user_id = ?", userID)
	dbQuery = query.ApplyFilters(dbQuery, params.Filters, allowedFilters)
	dbQuery = query.ApplySearch(dbQuery, params.Search, searchFields)
	dbQuery = query.ApplySort(dbQuery, params.Sort, allowedSortFields)

	var total int64
	if err := dbQuery.Count(&total).Error; err != nil {
		response.SanitizedInternalError(ctx, "failed to count deadlines", err)
		return
	}

	dbQuery = query.ApplyPagination(dbQuery, params.Page, params.Limit)

	var deadlines []compliance.Deadline
	if err := dbQuery.Find(&deadlines).Error; err != nil {
		response.SanitizedInternalError(ctx, "failed to retrieve deadlines", err)
		return
	}

	now := time.Now().UTC()
	items := make([]DeadlineResponse, 0, len(deadlines))
	for i := range deadlines {
		items = append(items, buildDeadlineResponse(&deadlines[i], now))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"items":      items,
			"pagination": query.BuildPaginationResponse(params.Page, params.Limit, total),
		},
	})
}

// CreateDeadline creates a new deadline for the caller
// @Summary Create a deadline
// @Description Create a new regulatory deadline owned by the current user
// @Tags deadlines
// @Accept json
// @Produce json
// @Param deadline body CreateDeadlineRequest true "Deadline information"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid request data"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /compliance/deadlines [post]
func CreateDeadline(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CreateDeadlineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	now := time.Now().UTC()
	deadline := compliance.Deadline{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Regulation:  req.Regulation,
		DueDate:     req.DueDate,
		Status:      services.DeriveExtensionStatus(now, req.DueDate),
	}

	db := database.DB
	if err := db.Create(&deadline).Error; err != nil {
		response.SanitizedInternalError(ctx, "failed to create deadline", err)
		return
	}

	audit.Record(db, userID, audit.ActionDeadlineCreated, audit.EntityDeadline, &deadline.ID,
		"Deadline '"+deadline.Title+"' created", nil,
		map[string]interface{}{"due_date": deadline.DueDate, "status": deadline.Status})

	ctx.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"deadline": buildDeadlineResponse(&deadline, now),
	})
}

// ExtendDeadline extends a deadline's due date
// @Summary Extend a deadline
// @Description Move a deadline's due date forward, preserving the first original due date
// @Tags deadlines
// @Accept json
// @Produce json
// @Param id path string true "Deadline ID" format(uuid)
// @Param extension body ExtendDeadlineRequest true "Extension details"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid request data or state"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Deadline not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /compliance/deadlines/{id}/extend [post]
func ExtendDeadline(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	deadlineID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deadline ID format"})
		return
	}

	var req ExtendDeadlineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	deadline, err := services.ExtendDeadline(database.DB, deadlineID, userID, req.NewDueDate, req.Reason, req.ApprovedBy)
	if err != nil {
		switch err {
		case services.ErrDeadlineNotFound:
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Deadline not found"})
		case services.ErrDeadlineCompleted, services.ErrInvalidDueDate, services.ErrReasonRequired:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			response.SanitizedInternalError(ctx, "failed to extend deadline", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":  true,
		"deadline": buildDeadlineResponse(deadline, time.Now().UTC()),
	})
}

// CompleteDeadline marks a deadline as completed
// @Summary Complete a deadline
// @Description Mark a deadline as completed; completed deadlines cannot be extended
// @Tags deadlines
// @Accept json
// @Produce json
// @Param id path string true "Deadline ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid deadline ID format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Deadline not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /compliance/deadlines/{id}/complete [post]
func CompleteDeadline(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	deadlineID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deadline ID format"})
		return
	}

	deadline, err := services.CompleteDeadline(database.DB, deadlineID, userID)
	if err != nil {
		if err == services.ErrDeadlineNotFound {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Deadline not found"})
			return
		}
		response.SanitizedInternalError(ctx, "failed to complete deadline", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":  true,
		"deadline": buildDeadlineResponse(deadline, time.Now().UTC()),
	})
}
