package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models/supervision"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/middleware"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/audit"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/query"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/response"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/supervision-service/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateReportRequest represents request body for creating a supervision report
type CreateReportRequest struct {
	ReportType   string     `json:"report_type" binding:"required"`
	IncidentID   *uuid.UUID `json:"incident_id"`
	NCAReference string     `json:"nca_reference"`
}

func isValidReportType(t string) bool {
	switch t {
	case supervision.ReportTypeAnnualCompliance, supervision.ReportTypeIncident,
		supervision.ReportTypeLaunchNotification, supervision.ReportTypeDeorbitPlan:
		return true
	}
	return false
}

// GetReports lists the caller's supervision reports
// @Summary List supervision reports
// @Description List the current user's reports, newest first
// @Tags reports
// @Accept json
// @Produce json
// @Param report_type query string false "Filter by report type"
// @Param status query string false "Filter by status"
// @Param limit query int false "Page size (default: 20)"
// @Param offset query int false "Page offset (default: 0)"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /supervision/reports [get]
func GetReports(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, offset := query.ParseLimitOffset(ctx)

	dbQuery := database.DB.Model(&supervision.SupervisionReport{}).Where("user_id = ?", userID)
	if reportType := ctx.Query("report_type"); reportType != "" {
		dbQuery = dbQuery.Where("report_type = ?", reportType)
	}
	if status := ctx.Query("status"); status != "" {
		dbQuery = dbQuery.Where("status = ?", status)
	}

	var total int64
	if err := dbQuery.Count(&total).Error; err != nil {
		response.SanitizedInternalError(ctx, "failed to count reports", err)
		return
	}

	var reports []supervision.SupervisionReport
	if err := dbQuery.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		response.SanitizedInternalError(ctx, "failed to retrieve reports", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"reports": reports,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

// CreateReport creates a new draft supervision report
// @Summary Create a supervision report
// @Description Create a new draft report of one of the enumerated report types
// @Tags reports
// @Accept json
// @Produce json
// @Param report body CreateReportRequest true "Report information"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid request data"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /supervision/reports [post]
func CreateReport(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CreateReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if !isValidReportType(req.ReportType) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unknown report type"})
		return
	}

	report := supervision.SupervisionReport{
		UserID:       userID,
		IncidentID:   req.IncidentID,
		ReportType:   req.ReportType,
		Status:       supervision.ReportStatusDraft,
		NCAReference: req.NCAReference,
	}

	db := database.DB
	if err := db.Create(&report).Error; err != nil {
		response.SanitizedInternalError(ctx, "failed to create report", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"report":  report,
	})
}

// UploadReportFile attaches a generated file to a report
// @Summary Upload report file
// @Description Store the generated report file in object storage and mark the report generated
// @Tags reports
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Report ID" format(uuid)
// @Param file formData file true "Report file"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid file or report ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /supervision/reports/{id}/file [post]
func UploadReportFile(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reportID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report ID format"})
		return
	}

	db := database.DB

	var report supervision.SupervisionReport
	if err := db.Where("id = ? AND user_id = ?", reportID, userID).First(&report).Error; err != nil {
		response.NotFoundOrInternal(ctx, "Report", err)
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

	key := services.ReportKey(report.ID, header.Filename)
	if err := storage.UploadObject(context.Background(), key, file, header.Size, header.Header.Get("Content-Type")); err != nil {
		response.SanitizedInternalError(ctx, "failed to upload report file", err)
		return
	}

	now := time.Now().UTC()
	report.FileKey = key
	report.Status = supervision.ReportStatusGenerated
	report.GeneratedAt = &now

	if err := db.Save(&report).Error; err != nil {
		response.SanitizedInternalError(ctx, "failed to update report", err)
		return
	}

	audit.Record(db, userID, audit.ActionReportGenerated, audit.EntityReport, &report.ID,
		"Report file generated for "+report.ReportType, nil,
		map[string]interface{}{"status": report.Status, "file_key": report.FileKey})

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"report":  report,
	})
}

// GetReportFileURL returns a presigned download URL for a report file
// @Summary Get report download URL
// @Description Resolve a time-limited download URL for a generated report file
// @Tags reports
// @Accept json
// @Produce json
// @Param id path string true "Report ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid report ID format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Report or file not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /supervision/reports/{id}/file/url [get]
func GetReportFileURL(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reportID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report ID format"})
		return
	}

	var report supervision.SupervisionReport
	if err := database.DB.Where("id = ? AND user_id = ?", reportID, userID).First(&report).Error; err != nil {
		response.NotFoundOrInternal(ctx, "Report", err)
		return
	}

	if report.FileKey == "" {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Report has no generated file"})
		return
	}

	storage, err := services.NewStorageService()
	if err != nil {
		response.SanitizedInternalError(ctx, "failed to connect to object storage", err)
		return
	}

	url, err := storage.PresignedDownloadURL(context.Background(), report.FileKey, 15*time.Minute)
	if err != nil {
		response.SanitizedInternalError(ctx, "failed to presign report file", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"url":     url,
	})
}

// GetReportSummary returns counts of reports grouped by type and status
// @Summary Report summary
// @Description Aggregate counts of the current user's reports grouped by type and by status
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /supervision/reports/summary [get]
func GetReportSummary(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	db := database.DB

	type groupCount struct {
		Key   string `gorm:"column:key"`
		Count int64  `gorm:"column:count"`
	}

	var byType []groupCount
	if err := db.Model(&supervision.SupervisionReport{}).
		Select("report_type AS key, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("report_type").
		Scan(&byType).Error; err != nil {
		response.SanitizedInternalError(ctx, "failed to aggregate reports by type", err)
		return
	}

	var byStatus []groupCount
	if err := db.Model(&supervision.SupervisionReport{}).
		Select("status AS key, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&byStatus).Error; err != nil {
		response.SanitizedInternalError(ctx, "failed to aggregate reports by status", err)
		return
	}

	typeCounts := make(map[string]int64, len(byType))
	var total int64
	for _, row := range byType {
		typeCounts[row.Key] = row.Count
		total += row.Count
	}
	statusCounts := make(map[string]int64, len(byStatus))
	for _, row := range byStatus {
		statusCounts[row.Key] = row.Count
	}

	ctx.JSON(http.StatusOK, gin.H{
		"by_type":   typeCounts,
		"by_status": statusCounts,
		"total":     total,
	})
}
