package handlers

import (
	"net/http"
	"time"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/compliance-service/services"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/clients"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models/compliance"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models/notification"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/middleware"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/audit"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/query"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateAssessmentRequest represents request body for starting an assessment
type CreateAssessmentRequest struct {
	Framework string `json:"framework" binding:"required"`
}

// SaveAnswersRequest represents request body for saving assessment answers
type SaveAnswersRequest struct {
	Answers map[string]string `json:"answers" binding:"required"`
}

// AssessmentResponse represents assessment data for API responses
type AssessmentResponse struct {
	ID          uuid.UUID         `json:"id"`
	Framework   string            `json:"framework"`
	Status      string            `json:"status"`
	Score       int               `json:"score"`
	Answers     map[string]string `json:"answers"`
	CompletedAt *string           `json:"completed_at,omitempty"`
	CreatedAt   string            `json:"created_at"`
}

func buildAssessmentResponse(a *compliance.Assessment) AssessmentResponse {
	resp := AssessmentResponse{
		ID:        a.ID,
		Framework: a.Framework,
		Status:    a.Status,
		Score:     a.Score,
		Answers:   services.DecodeAnswers(a.Answers),
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
	if a.CompletedAt != nil {
		completed := a.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &completed
	}
	return resp
}

// GetAssessments retrieves the caller's assessments
// @Summary Get assessments
// @Description Get the current user's compliance assessments with pagination
// @Tags assessments
// @Accept json
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Items per page (default: 10)"
// @Param filters[framework] query string false "Filter by framework (eu_space_act, nis2, uk_sia)"
// @Param filters[status] query string false "Filter by status (in_progress, completed)"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /compliance/assessments [get]
func GetAssessments(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	db := database.DB
	params := query.ParseQueryParams(ctx)

	allowedFilters := map[string]string{
		"framework": "framework",
		"status":    "status",
	}

	dbQuery := db.Model(&compliance.Assessment{}).Where("user_id = ?", userID)
	dbQuery = query.ApplyFilters(dbQuery, params.Filters, allowedFilters)
	dbQuery = dbQuery.Order("created_at DESC")

	var total int64
	if err := dbQuery.Count(&total).Error; err != nil {
		response.SanitizedInternalError(ctx, "failed to count assessments", err)
		return
	}

	dbQuery = query.ApplyPagination(dbQuery, params.Page, params.Limit)

	var assessments []compliance.Assessment
	if err := dbQuery.Find(&assessments).Error; err != nil {
		response.SanitizedInternalError(ctx, "failed to retrieve assessments", err)
		return
	}

	items := make([]AssessmentResponse, 0, len(assessments))
	for i := range assessments {
		items = append(items, buildAssessmentResponse(&assessments[i]))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"items":      items,
			"pagination": query.BuildPaginationResponse(params.Page, params.Limit, total),
		},
	})
}

// CreateAssessment starts a new assessment against a framework
// @Summary Start an assessment
// @Description Start a new compliance self-assessment for one framework
// @Tags assessments
// @Accept json
// @Produce json
// @Param assessment body CreateAssessmentRequest true "Assessment framework"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid request data"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /compliance/assessments [post]
func CreateAssessment(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CreateAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if !compliance.IsValidFramework(req.Framework) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unknown assessment framework"})
		return
	}

	assessment := compliance.Assessment{
		UserID:    userID,
		Framework: req.Framework,
		Status:    compliance.AssessmentStatusInProgress,
		Answers:   "{}",
	}

	if err := database.DB.Create(&assessment).Error; err != nil {
		response.SanitizedInternalError(ctx, "failed to create assessment", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"assessment": buildAssessmentResponse(&assessment),
	})
}

// SaveAssessmentAnswers stores the caller's answers on an in-progress assessment
// @Summary Save assessment answers
// @Description Save or update answers on an in-progress assessment
// @Tags assessments
// @Accept json
// @Produce json
// @Param id path string true "Assessment ID" format(uuid)
// @Param answers body SaveAnswersRequest true "Answer map"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid request data or completed assessment"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Assessment not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /compliance/assessments/{id}/answers [put]
func SaveAssessmentAnswers(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	assessmentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assessment ID format"})
		return
	}

	var req SaveAnswersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	db := database.DB

	var assessment compliance.Assessment
	if err := db.Where("id = ? AND user_id = ?", assessmentID, userID).First(&assessment).Error; err != nil {
		response.NotFoundOrInternal(ctx, "Assessment", err)
		return
	}

	if assessment.Status == compliance.AssessmentStatusCompleted {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Completed assessments cannot be modified"})
		return
	}

	assessment.Answers = services.EncodeAnswers(req.Answers)
	if err := db.Save(&assessment).Error; err != nil {
		response.SanitizedInternalError(ctx, "failed to save answers", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":    true,
		"assessment": buildAssessmentResponse(&assessment),
	})
}

// CompleteAssessment finalizes an assessment and computes its score
// @Summary Complete an assessment
// @Description Finalize an in-progress assessment and compute its compliance score
// @Tags assessments
// @Accept json
// @Produce json
// @Param id path string true "Assessment ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid assessment ID format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Assessment not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /compliance/assessments/{id}/complete [post]
func CompleteAssessment(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	assessmentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assessment ID format"})
		return
	}

	db := database.DB

	var assessment compliance.Assessment
	if err := db.Where("id = ? AND user_id = ?", assessmentID, userID).First(&assessment).Error; err != nil {
		response.NotFoundOrInternal(ctx, "Assessment", err)
		return
	}

	if assessment.Status != compliance.AssessmentStatusCompleted {
		now := time.Now().UTC()
		assessment.Status = compliance.AssessmentStatusCompleted
		assessment.Score = services.ComputeScore(services.DecodeAnswers(assessment.Answers))
		assessment.CompletedAt = &now

		if err := db.Save(&assessment).Error; err != nil {
			response.SanitizedInternalError(ctx, "failed to complete assessment", err)
			return
		}

		audit.Record(db, userID, audit.ActionAssessmentCompleted, audit.EntityAssessment, &assessment.ID,
			"Assessment for "+assessment.Framework+" completed", nil,
			map[string]interface{}{"score": assessment.Score})

		clients.NewNotificationClient().Notify(clients.CreateNotificationRequest{
			UserID:   userID,
			Type:     notification.TypeAssessmentComplete,
			Level:    notification.NotificationLevelSuccess,
			Title:    "Assessment completed",
			Message:  "Your " + assessment.Framework + " assessment was completed.",
			Entity:   audit.EntityAssessment,
			EntityID: &assessment.ID,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":    true,
		"assessment": buildAssessmentResponse(&assessment),
	})
}
