package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/clients"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models/notification"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models/supervision"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/middleware"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/audit"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/cache"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/query"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/response"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/supervision-service/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SubmissionResponse represents an NCA submission enriched with display labels
type SubmissionResponse struct {
	ID               uuid.UUID                  `json:"id"`
	ReportID         *uuid.UUID                 `json:"report_id,omitempty"`
	NCAAuthority     string                     `json:"nca_authority"`
	AuthorityName    string                     `json:"authority_name"`
	SubmissionMethod string                     `json:"submission_method"`
	MethodName       string                     `json:"method_name"`
	Status           string                     `json:"status"`
	StatusName       string                     `json:"status_name"`
	StatusColor      string                     `json:"status_color"`
	ReferenceNumber  string                     `json:"reference_number,omitempty"`
	Attachments      []supervision.Attachment   `json:"attachments"`
	StatusHistory    []supervision.StatusChange `json:"status_history"`
	SubmittedAt      *string                    `json:"submitted_at,omitempty"`
	CreatedAt        string                     `json:"created_at"`
}

// CreateSubmissionRequest represents request body for creating a draft submission
type CreateSubmissionRequest struct {
	NCAAuthority     string     `json:"nca_authority" binding:"required"`
	SubmissionMethod string     `json:"submission_method" binding:"required"`
	ReportID         *uuid.UUID `json:"report_id"`
	ReferenceNumber  string     `json:"reference_number"`
}

// UpdateSubmissionStatusRequest represents request body for a status transition
type UpdateSubmissionStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

func buildSubmissionResponse(s *supervision.NCASubmission) SubmissionResponse {
	resp := SubmissionResponse{
		ID:               s.ID,
		ReportID:         s.ReportID,
		NCAAuthority:     s.NCAAuthority,
		AuthorityName:    services.AuthorityName(s.NCAAuthority),
		SubmissionMethod: s.SubmissionMethod,
		MethodName:       services.MethodName(s.SubmissionMethod),
		Status:           string(s.Status),
		StatusName:       services.StatusName(s.Status),
		StatusColor:      services.StatusColor(s.Status),
		ReferenceNumber:  s.ReferenceNumber,
		Attachments:      services.DecodeAttachments(s.Attachments),
		StatusHistory:    services.DecodeStatusHistory(s.StatusHistory),
		CreatedAt:        s.CreatedAt.Format(time.RFC3339),
	}
	if s.SubmittedAt != nil {
		submitted := s.SubmittedAt.Format(time.RFC3339)
		resp.SubmittedAt = &submitted
	}
	return resp
}

func parseSubmissionFilters(ctx *gin.Context) services.SubmissionFilters {
	limit, offset := query.ParseLimitOffset(ctx)
	filters := services.SubmissionFilters{
		NCAAuthority: ctx.Query("nca_authority"),
		Status:       ctx.Query("status"),
		Limit:        limit,
		Offset:       offset,
	}

	if reportID, err := uuid.Parse(ctx.Query("report_id")); err == nil {
		filters.ReportID = &reportID
	}
	if from, err := time.Parse("2006-01-02", ctx.Query("from_date")); err == nil {
		filters.FromDate = &from
	}
	if to, err := time.Parse("2006-01-02", ctx.Query("to_date")); err == nil {
		// Inclusive upper bound: extend to the end of the day
		end := to.Add(24*time.Hour - time.Nanosecond)
		filters.ToDate = &end
	}

	return filters
}

// GetSubmissions lists the caller's NCA submissions
// @Summary List NCA submissions
// @Description List the current user's authority filings with optional filters and aggregate statistics
// @Tags submissions
// @Accept json
// @Produce json
// @Param report_id query string false "Filter by report ID" format(uuid)
// @Param nca_authority query string false "Filter by authority code"
// @Param status query string false "Filter by status"
// @Param from_date query string false "Filter by creation date lower bound (YYYY-MM-DD)"
// @Param to_date query string false "Filter by creation date upper bound (YYYY-MM-DD)"
// @Param include_stats query bool false "Include aggregate statistics"
// @Param limit query int false "Page size (default: 20)"
// @Param offset query int false "Page offset (default: 0)"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /supervision/submissions [get]
func GetSubmissions(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	filters := parseSubmissionFilters(ctx)
	db := database.DB

	if ctx.Query("include_stats") == "true" {
		submissions, total, stats, err := services.ListSubmissionsWithStats(db, userID, filters)
		if err != nil {
			response.SanitizedInternalError(ctx, "failed to retrieve submissions", err)
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"submissions": buildSubmissionResponses(submissions),
			"total":       total,
			"limit":       filters.Limit,
			"offset":      filters.Offset,
			"stats": gin.H{
				"by_authority": stats.ByAuthority,
				"by_status":    stats.ByStatus,
				"total":        stats.Total,
			},
		})
		return
	}

	submissions, total, err := services.ListSubmissions(db, userID, filters)
	if err != nil {
		response.SanitizedInternalError(ctx, "failed to retrieve submissions", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"submissions": buildSubmissionResponses(submissions),
		"total":       total,
		"limit":       filters.Limit,
		"offset":      filters.Offset,
	})
}

func buildSubmissionResponses(submissions []supervision.NCASubmission) []SubmissionResponse {
	items := make([]SubmissionResponse, 0, len(submissions))
	for i := range submissions {
		items = append(items, buildSubmissionResponse(&submissions[i]))
	}
	return items
}

// GetSubmission retrieves a single submission by ID
// @Summary Get submission by ID
// @Description Get one of the current user's submissions with decoded attachments and status history
// @Tags submissions
// @Accept json
// @Produce json
// @Param id path string true "Submission ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid submission ID format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Submission not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /supervision/submissions/{id} [get]
func GetSubmission(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	submissionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID format"})
		return
	}

	var submission supervision.NCASubmission
	if err := database.DB.Where("id = ? AND user_id = ?", submissionID, userID).First(&submission).Error; err != nil {
		response.NotFoundOrInternal(ctx, "Submission", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": buildSubmissionResponse(&submission),
	})
}

// CreateSubmission creates a new draft submission
// @Summary Create a submission
// @Description Create a new draft filing to a national authority
// @Tags submissions
// @Accept json
// @Produce json
// @Param submission body CreateSubmissionRequest true "Submission information"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid request data"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /supervision/submissions [post]
func CreateSubmission(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CreateSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if !services.IsKnownAuthority(req.NCAAuthority) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unknown NCA authority"})
		return
	}
	if !services.IsValidMethod(req.SubmissionMethod) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unknown submission method"})
		return
	}

	submission := supervision.NCASubmission{
		UserID:           userID,
		ReportID:         req.ReportID,
		NCAAuthority:     req.NCAAuthority,
		SubmissionMethod: req.SubmissionMethod,
		Status:           supervision.SubmissionStatusDraft,
		ReferenceNumber:  req.ReferenceNumber,
		Attachments:      "[]",
		StatusHistory:    "[]",
	}

	db := database.DB
	if err := db.Create(&submission).Error; err != nil {
		response.SanitizedInternalError(ctx, "failed to create submission", err)
		return
	}

	audit.Record(db, userID, audit.ActionSubmissionCreated, audit.EntitySubmission, &submission.ID,
		"Submission to "+services.AuthorityName(submission.NCAAuthority)+" created", nil,
		map[string]interface{}{"nca_authority": submission.NCAAuthority, "status": submission.Status})

	if cm := cache.GetCacheManager(); cm != nil {
		_ = cm.InvalidateSubmissionStats(userID)
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"submission": buildSubmissionResponse(&submission),
	})
}

// UpdateSubmissionStatus applies a status transition to a submission
// @Summary Update submission status
// @Description Apply a validated status transition; the change is appended to the submission's status history
// @Tags submissions
// @Accept json
// @Produce json
// @Param id path string true "Submission ID" format(uuid)
// @Param status body UpdateSubmissionStatusRequest true "Target status"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid request data or transition"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Submission not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /supervision/submissions/{id}/status [patch]
func UpdateSubmissionStatus(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	submissionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID format"})
		return
	}

	var req UpdateSubmissionStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	db := database.DB

	var submission supervision.NCASubmission
	if err := db.Where("id = ? AND user_id = ?", submissionID, userID).First(&submission).Error; err != nil {
		response.NotFoundOrInternal(ctx, "Submission", err)
		return
	}

	previousStatus := submission.Status
	newStatus := supervision.SubmissionStatus(req.Status)

	if err := services.UpdateSubmissionStatus(db, &submission, newStatus, req.Note, userID); err != nil {
		if err == services.ErrInvalidTransition {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status transition"})
			return
		}
		response.SanitizedInternalError(ctx, "failed to update submission status", err)
		return
	}

	audit.Record(db, userID, audit.ActionSubmissionStatusChange, audit.EntitySubmission, &submission.ID,
		"Submission status changed from "+string(previousStatus)+" to "+string(newStatus),
		map[string]interface{}{"status": previousStatus},
		map[string]interface{}{"status": newStatus})

	clients.NewNotificationClient().Notify(clients.CreateNotificationRequest{
		UserID:   userID,
		Type:     notification.TypeSubmissionStatus,
		Level:    notification.NotificationLevelInfo,
		Title:    "Submission status updated",
		Message:  "Your filing to " + services.AuthorityName(submission.NCAAuthority) + " is now " + services.StatusName(newStatus) + ".",
		Entity:   audit.EntitySubmission,
		EntityID: &submission.ID,
	})

	ctx.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": buildSubmissionResponse(&submission),
	})
}

// UploadSubmissionAttachment uploads an attachment for a submission
// @Summary Upload submission attachment
// @Description Store an attachment in object storage and record it on the submission
// @Tags submissions
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Submission ID" format(uuid)
// @Param file formData file true "Attachment file"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid file or submission ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Submission not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /supervision/submissions/{id}/attachments [post]
func UploadSubmissionAttachment(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	submissionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID format"})
		return
	}

	db := database.DB

	var submission supervision.NCASubmission
	if err := db.Where("id = ? AND user_id = ?", submissionID, userID).First(&submission).Error; err != nil {
		response.NotFoundOrInternal(ctx, "Submission", err)
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}

	if err := services.ValidateAttachment(header); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := header.Open()
	if err != nil {
		response.SanitizedInternalError(ctx, "failed to open uploaded file", err)
		return
	}
	defer file.Close()

	storage, err := services.NewStorageService()
	if err != nil {
		response.SanitizedInternalError(ctx, "failed to connect to object storage", err)
		return
	}

	key := services.AttachmentKey(submission.ID, header.Filename)
	if err := storage.UploadObject(context.Background(), key, file, header.Size, header.Header.Get("Content-Type")); err != nil {
		response.SanitizedInternalError(ctx, "failed to upload attachment", err)
		return
	}

	attachments := services.DecodeAttachments(submission.Attachments)
	attachments = append(attachments, supervision.Attachment{
		FileKey:    key,
		FileName:   header.Filename,
		FileSize:   header.Size,
		UploadedAt: time.Now().UTC(),
	})
	submission.Attachments = services.EncodeAttachments(attachments)

	if err := db.Save(&submission).Error; err != nil {
		response.SanitizedInternalError(ctx, "failed to record attachment", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"submission": buildSubmissionResponse(&submission),
	})
}

// GetSubmissionAttachmentURL returns a presigned download URL for an attachment
// @Summary Get attachment download URL
// @Description Resolve a time-limited download URL for a submission attachment
// @Tags submissions
// @Accept json
// @Produce json
// @Param id path string true "Submission ID" format(uuid)
// @Param file_name query string true "Attachment file name"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid submission ID or file name"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Submission or attachment not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /supervision/submissions/{id}/attachments/url [get]
func GetSubmissionAttachmentURL(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	submissionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID format"})
		return
	}

	fileName := ctx.Query("file_name")
	if fileName == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "file_name is required"})
		return
	}

	var submission supervision.NCASubmission
	if err := database.DB.Where("id = ? AND user_id = ?", submissionID, userID).First(&submission).Error; err != nil {
		response.NotFoundOrInternal(ctx, "Submission", err)
		return
	}

	var key string
	for _, attachment := range services.DecodeAttachments(submission.Attachments) {
		if attachment.FileName == fileName {
			key = attachment.FileKey
			break
		}
	}
	if key == "" {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Attachment not found"})
		return
	}

	storage, err := services.NewStorageService()
	if err != nil {
		response.SanitizedInternalError(ctx, "failed to connect to object storage", err)
		return
	}

	url, err := storage.PresignedDownloadURL(context.Background(), key, 15*time.Minute)
	if err != nil {
		response.SanitizedInternalError(ctx, "failed to presign attachment", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"url":     url,
	})
}
