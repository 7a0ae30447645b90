package handlers

import (
	"net/http"
	"time"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/clients"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models/notification"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models/supervision"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/middleware"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/audit"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/query"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/response"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/supervision-service/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CorrespondenceResponse represents a correspondence entry with the derived overdue flag
type CorrespondenceResponse struct {
	supervision.Correspondence
	IsOverdue bool `json:"is_overdue"`
}

// CreateCorrespondenceRequest represents request body for recording correspondence
type CreateCorrespondenceRequest struct {
	SubmissionID     uuid.UUID  `json:"submission_id" binding:"required"`
	Direction        string     `json:"direction" binding:"required"`
	MessageType      string     `json:"message_type" binding:"required"`
	Subject          string     `json:"subject" binding:"required"`
	Body             string     `json:"body"`
	RequiresResponse bool       `json:"requires_response"`
	ResponseDeadline *time.Time `json:"response_deadline"`
}

func buildCorrespondenceResponses(entries []supervision.Correspondence, now time.Time) []CorrespondenceResponse {
	items := make([]CorrespondenceResponse, 0, len(entries))
	for i := range entries {
		items = append(items, CorrespondenceResponse{
			Correspondence: entries[i],
			IsOverdue:      services.IsCorrespondenceOverdue(&entries[i], now),
		})
	}
	return items
}

// GetCorrespondence lists correspondence entries
// @Summary List correspondence
// @Description List the current user's authority correspondence, newest first
// @Tags correspondence
// @Accept json
// @Produce json
// @Param submission_id query string false "Filter by submission ID" format(uuid)
// @Param direction query string false "Filter by direction (INBOUND or OUTBOUND)"
// @Param unread query bool false "Only unread entries"
// @Param limit query int false "Page size (default: 20)"
// @Param offset query int false "Page offset (default: 0)"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /supervision/correspondence [get]
func GetCorrespondence(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, offset := query.ParseLimitOffset(ctx)

	dbQuery := database.DB.Model(&supervision.Correspondence{}).Where("user_id = ?", userID)
	if submissionID, err := uuid.Parse(ctx.Query("submission_id")); err == nil {
		dbQuery = dbQuery.Where("submission_id = ?", submissionID)
	}
	if direction := ctx.Query("direction"); direction != "" {
		dbQuery = dbQuery.Where("direction = ?", direction)
	}
	if ctx.Query("unread") == "true" {
		dbQuery = dbQuery.Where("is_read = ?", false)
	}

	var total int64
	if err := dbQuery.Count(&total).Error; err != nil {
		response.SanitizedInternalError(ctx, "failed to count correspondence", err)
		return
	}

	var entries []supervision.Correspondence
	if err := dbQuery.Order("created_at DESC").Limit(limit).Offset(offset).Find(&entries).Error; err != nil {
		response.SanitizedInternalError(ctx, "failed to retrieve correspondence", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"correspondence": buildCorrespondenceResponses(entries, time.Now().UTC()),
		"total":          total,
		"limit":          limit,
		"offset":         offset,
	})
}

// CreateCorrespondence records a new correspondence entry
// @Summary Record correspondence
// @Description Record a message exchanged with an authority; inbound entries notify the owner
// @Tags correspondence
// @Accept json
// @Produce json
// @Param correspondence body CreateCorrespondenceRequest true "Correspondence information"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid request data"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Submission not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /supervision/correspondence [post]
func CreateCorrespondence(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CreateCorrespondenceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if req.Direction != supervision.DirectionInbound && req.Direction != supervision.DirectionOutbound {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Direction must be INBOUND or OUTBOUND"})
		return
	}
	if !supervision.IsValidMessageType(req.MessageType) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unknown message type"})
		return
	}

	db := database.DB

	var submission supervision.NCASubmission
	if err := db.Where("id = ? AND user_id = ?", req.SubmissionID, userID).First(&submission).Error; err != nil {
		response.NotFoundOrInternal(ctx, "Submission", err)
		return
	}

	entry := supervision.Correspondence{
		SubmissionID:     req.SubmissionID,
		UserID:           userID,
		Direction:        req.Direction,
		MessageType:      req.MessageType,
		Subject:          req.Subject,
		Body:             req.Body,
		RequiresResponse: req.RequiresResponse,
		ResponseDeadline: req.ResponseDeadline,
		// Outbound entries are authored by the user, nothing left to read
		IsRead: req.Direction == supervision.DirectionOutbound,
	}

	if err := db.Create(&entry).Error; err != nil {
		response.SanitizedInternalError(ctx, "failed to create correspondence", err)
		return
	}

	if entry.Direction == supervision.DirectionInbound {
		level := notification.NotificationLevelInfo
		if entry.RequiresResponse {
			level = notification.NotificationLevelWarning
		}
		clients.NewNotificationClient().Notify(clients.CreateNotificationRequest{
			UserID:   userID,
			Type:     notification.TypeCorrespondenceReceived,
			Level:    level,
			Title:    "New correspondence from " + services.AuthorityName(submission.NCAAuthority),
			Message:  entry.Subject,
			Entity:   audit.EntityCorrespondence,
			EntityID: &entry.ID,
		})
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"correspondence": CorrespondenceResponse{
			Correspondence: entry,
			IsOverdue:      services.IsCorrespondenceOverdue(&entry, time.Now().UTC()),
		},
	})
}

// MarkCorrespondenceRead marks a correspondence entry as read
// @Summary Mark correspondence as read
// @Description Mark one of the current user's correspondence entries as read; idempotent
// @Tags correspondence
// @Accept json
// @Produce json
// @Param id path string true "Correspondence ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid correspondence ID format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Correspondence not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /supervision/correspondence/{id}/read [post]
func MarkCorrespondenceRead(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid correspondence ID format"})
		return
	}

	db := database.DB

	var entry supervision.Correspondence
	if err := db.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
		response.NotFoundOrInternal(ctx, "Correspondence", err)
		return
	}

	if !entry.IsRead {
		entry.IsRead = true
		if err := db.Save(&entry).Error; err != nil {
			response.SanitizedInternalError(ctx, "failed to mark correspondence as read", err)
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"correspondence": CorrespondenceResponse{
			Correspondence: entry,
			IsOverdue:      services.IsCorrespondenceOverdue(&entry, time.Now().UTC()),
		},
	})
}

// RecordCorrespondenceResponse records that a required response was sent
// @Summary Record correspondence response
// @Description Record the response timestamp on an entry that requires one; clears the overdue state
// @Tags correspondence
// @Accept json
// @Produce json
// @Param id path string true "Correspondence ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Entry does not require a response"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Correspondence not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /supervision/correspondence/{id}/respond [post]
func RecordCorrespondenceResponse(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid correspondence ID format"})
		return
	}

	db := database.DB

	var entry supervision.Correspondence
	if err := db.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
		response.NotFoundOrInternal(ctx, "Correspondence", err)
		return
	}

	if !entry.RequiresResponse {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Correspondence does not require a response"})
		return
	}

	if entry.RespondedAt == nil {
		now := time.Now().UTC()
		entry.RespondedAt = &now
		if err := db.Save(&entry).Error; err != nil {
			response.SanitizedInternalError(ctx, "failed to record response", err)
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"correspondence": CorrespondenceResponse{
			Correspondence: entry,
			IsOverdue:      false,
		},
	})
}
