package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/core-service/services"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models/notification"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/middleware"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/query"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/response"

	"github.com/gin-gonic/gin"
)

func parseAuditFilters(ctx *gin.Context) services.AuditFilters {
	filters := services.AuditFilters{}

	if start, err := time.Parse("2006-01-02", ctx.Query("start_date")); err == nil {
		filters.StartDate = &start
	}
	if end, err := time.Parse("2006-01-02", ctx.Query("end_date")); err == nil {
		// Inclusive upper bound: extend to the end of the day
		bounded := end.Add(24*time.Hour - time.Nanosecond)
		filters.EndDate = &bounded
	}
	if actions := ctx.Query("actions"); actions != "" {
		filters.Actions = strings.Split(actions, ",")
	}
	if entityTypes := ctx.Query("entity_types"); entityTypes != "" {
		filters.EntityTypes = strings.Split(entityTypes, ",")
	}

	return filters
}

// GetAuditSummary aggregates the caller's audit history
// @Summary Audit summary
// @Description Aggregate the current user's audit log into counts grouped by action and by entity type
// @Tags audit
// @Accept json
// @Produce json
// @Param start_date query string false "Lower date bound (YYYY-MM-DD, inclusive)"
// @Param end_date query string false "Upper date bound (YYYY-MM-DD, inclusive)"
// @Param actions query string false "Comma-separated action filter"
// @Param entity_types query string false "Comma-separated entity type filter"
// @Security BearerAuth
// @Success 200 {object} services.AuditSummary
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /audit/summary [get]
func GetAuditSummary(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	summary, err := services.GetAuditSummary(database.DB, userID, parseAuditFilters(ctx))
	if err != nil {
		response.SanitizedInternalError(ctx, "failed to aggregate audit log", err)
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// GetAuditFilterOptions returns the distinct filter values in the caller's audit history
// @Summary Audit filter options
// @Description Distinct actions and entity types ever logged for the current user, for populating filter controls
// @Tags audit
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.AuditFilterOptions
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /audit/filter-options [get]
func GetAuditFilterOptions(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	options, err := services.GetAuditFilterOptions(database.DB, userID)
	if err != nil {
		response.SanitizedInternalError(ctx, "failed to load audit filter options", err)
		return
	}

	ctx.JSON(http.StatusOK, options)
}

// GetAuditLog lists the caller's raw audit entries
// @Summary List audit entries
// @Description List the current user's audit log entries, newest first
// @Tags audit
// @Accept json
// @Produce json
// @Param start_date query string false "Lower date bound (YYYY-MM-DD, inclusive)"
// @Param end_date query string false "Upper date bound (YYYY-MM-DD, inclusive)"
// @Param actions query string false "Comma-separated action filter"
// @Param entity_types query string false "Comma-separated entity type filter"
// @Param limit query int false "Page size (default: 20)"
// @Param offset query int false "Page offset (default: 0)"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /audit [get]
func GetAuditLog(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, offset := query.ParseLimitOffset(ctx)
	filters := parseAuditFilters(ctx)

	db := database.DB
	dbQuery := db.Model(&notification.AuditLog{}).Where("user_id = ?", userID)
	if filters.StartDate != nil {
		dbQuery = dbQuery.Where("created_at >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		dbQuery = dbQuery.Where("created_at <= ?", *filters.EndDate)
	}
	if len(filters.Actions) > 0 {
		dbQuery = dbQuery.Where("action IN ?", filters.Actions)
	}
	if len(filters.EntityTypes) > 0 {
		dbQuery = dbQuery.Where("entity_type IN ?", filters.EntityTypes)
	}

	var total int64
	if err := dbQuery.Count(&total).Error; err != nil {
		response.SanitizedInternalError(ctx, "failed to count audit entries", err)
		return
	}

	var entries []notification.AuditLog
	if err := dbQuery.Order("created_at DESC").Limit(limit).Offset(offset).Find(&entries).Error; err != nil {
		response.SanitizedInternalError(ctx, "failed to retrieve audit entries", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}
