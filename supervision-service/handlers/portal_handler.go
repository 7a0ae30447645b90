package handlers

import (
	"net/http"
	"time"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models/supervision"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/middleware"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/audit"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/response"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/supervision-service/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateInformationRequestRequest represents request body for opening an information request
type CreateInformationRequestRequest struct {
	SubmissionID uuid.UUID  `json:"submission_id" binding:"required"`
	Subject      string     `json:"subject" binding:"required"`
	Description  string     `json:"description"`
	DueDate      *time.Time `json:"due_date"`
}

// CreateInformationRequest opens an information request and issues a portal token
// @Summary Create information request
// @Description Open an information request for a submission and issue a supplier portal token. The raw token is returned once and cannot be recovered.
// @Tags portal
// @Accept json
// @Produce json
// @Param request body CreateInformationRequestRequest true "Information request"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid request data"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Submission not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /supervision/portal/requests [post]
func CreateInformationRequest(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CreateInformationRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	db := database.DB

	var submission supervision.NCASubmission
	if err := db.Where("id = ? AND user_id = ?", req.SubmissionID, userID).First(&submission).Error; err != nil {
		response.NotFoundOrInternal(ctx, "Submission", err)
		return
	}

	request := supervision.InformationRequest{
		SubmissionID: req.SubmissionID,
		Subject:      req.Subject,
		Description:  req.Description,
		Status:       supervision.RequestStatusPending,
		DueDate:      req.DueDate,
	}

	if err := db.Create(&request).Error; err != nil {
		response.SanitizedInternalError(ctx, "failed to create information request", err)
		return
	}

	rawToken, token, err := services.IssuePortalToken(db, request.ID)
	if err != nil {
		response.SanitizedInternalError(ctx, "failed to issue portal token", err)
		return
	}

	audit.Record(db, userID, audit.ActionPortalTokenIssued, audit.EntityPortalToken, &token.ID,
		"Portal token issued for information request", nil,
		map[string]interface{}{"request_id": request.ID, "expires_at": token.ExpiresAt})

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"request": request,
		"token":   rawToken,
		"token_meta": gin.H{
			"id":         token.ID,
			"expires_at": token.ExpiresAt.Format(time.RFC3339),
		},
	})
}

// RevokePortalToken revokes a portal token
// @Summary Revoke portal token
// @Description Revoke a portal token so the public link stops validating; idempotent
// @Tags portal
// @Accept json
// @Produce json
// @Param id path string true "Token ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid token ID format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Token not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /supervision/portal/tokens/{id}/revoke [post]
func RevokePortalToken(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	tokenID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token ID format"})
		return
	}

	db := database.DB

	var token supervision.PortalToken
	if err := db.Joins("JOIN information_requests ON information_requests.id = portal_tokens.request_id").
		Joins("JOIN nca_submissions ON nca_submissions.id = information_requests.submission_id").
		Where("portal_tokens.id = ? AND nca_submissions.user_id = ?", tokenID, userID).
		First(&token).Error; err != nil {
		response.NotFoundOrInternal(ctx, "Portal token", err)
		return
	}

	if token.RevokedAt == nil {
		now := time.Now().UTC()
		token.RevokedAt = &now
		if err := db.Save(&token).Error; err != nil {
			response.SanitizedInternalError(ctx, "failed to revoke portal token", err)
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
	})
}

// ValidatePortalToken validates a supplier portal token
// @Summary Validate portal token
// @Description Public endpoint for external suppliers: validates a portal token and returns the attached information request. Each valid lookup is counted.
// @Tags portal
// @Accept json
// @Produce json
// @Param token path string true "Raw portal token"
// @Success 200 {object} services.TokenValidationResult
// @Failure 400 {object} map[string]string "Malformed token"
// @Failure 500 {object} map[string]string "Server error"
// @Router /portal/tokens/{token}/validate [get]
func ValidatePortalToken(ctx *gin.Context) {
	result, err := services.ValidatePortalToken(database.DB, ctx.Param("token"))
	if err != nil {
		if err == services.ErrMalformedToken {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Malformed portal token"})
			return
		}
		response.SanitizedInternalError(ctx, "failed to validate portal token", err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// CompleteInformationRequest marks an information request and its tokens completed
// @Summary Complete information request
// @Description Mark an information request completed; its portal tokens stop validating
// @Tags portal
// @Accept json
// @Produce json
// @Param id path string true "Request ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid request ID format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Information request not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /supervision/portal/requests/{id}/complete [post]
func CompleteInformationRequest(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	requestID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID format"})
		return
	}

	db := database.DB

	var request supervision.InformationRequest
	if err := db.Joins("JOIN nca_submissions ON nca_submissions.id = information_requests.submission_id").
		Where("information_requests.id = ? AND nca_submissions.user_id = ?", requestID, userID).
		First(&request).Error; err != nil {
		response.NotFoundOrInternal(ctx, "Information request", err)
		return
	}

	now := time.Now().UTC()
	if request.Status != supervision.RequestStatusCompleted {
		request.Status = supervision.RequestStatusCompleted
		if err := db.Save(&request).Error; err != nil {
			response.SanitizedInternalError(ctx, "failed to complete information request", err)
			return
		}

		if err := db.Model(&supervision.PortalToken{}).
			Where("request_id = ? AND completed_at IS NULL", request.ID).
			Update("completed_at", now).Error; err != nil {
			response.SanitizedInternalError(ctx, "failed to close portal tokens", err)
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"request": request,
	})
}
