package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models/notification"
)

// AuditFilters narrows an audit summary. Date bounds are inclusive on both
// ends when both are supplied, unbounded otherwise.
type AuditFilters struct {
	StartDate   *time.Time
	EndDate     *time.Time
	Actions     []string
	EntityTypes []string
}

// AuditSummary holds audit log counts grouped by action and by entity type
type AuditSummary struct {
	ByAction     map[string]int64 `json:"by_action"`
	ByEntityType map[string]int64 `json:"by_entity_type"`
	Total        int64            `json:"total"`
}

// AuditFilterOptions lists the distinct actions and entity types ever logged
// for a user, reflecting actual historical data rather than a static enum.
type AuditFilterOptions struct {
	Actions     []string `json:"actions"`
	EntityTypes []string `json:"entity_types"`
}

func filteredAuditQuery(db *gorm.DB, userID uuid.UUID, filters AuditFilters) *gorm.DB {
	q := db.Model(&notification.AuditLog{}).Where("user_id = ?", userID)
	if filters.StartDate != nil {
		q = q.Where("created_at >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		q = q.Where("created_at <= ?", *filters.EndDate)
	}
	if len(filters.Actions) > 0 {
		q = q.Where("action IN ?", filters.Actions)
	}
	if len(filters.EntityTypes) > 0 {
		q = q.Where("entity_type IN ?", filters.EntityTypes)
	}
	return q
}

type auditCount struct {
	Key   string
	Count int64
}

// GetAuditSummary aggregates the user's audit log rows matching the filters
// into counts grouped by action and by entity type.
func GetAuditSummary(db *gorm.DB, userID uuid.UUID, filters AuditFilters) (*AuditSummary, error) {
	summary := &AuditSummary{
		ByAction:     map[string]int64{},
		ByEntityType: map[string]int64{},
	}

	var byAction []auditCount
	err := filteredAuditQuery(db, userID, filters).
		Select("action AS key, COUNT(*) AS count").
		Group("action").
		Scan(&byAction).Error
	if err != nil {
		return nil, err
	}
	for _, row := range byAction {
		summary.ByAction[row.Key] = row.Count
		summary.Total += row.Count
	}

	var byEntityType []auditCount
	err = filteredAuditQuery(db, userID, filters).
		Select("entity_type AS key, COUNT(*) AS count").
		Group("entity_type").
		Scan(&byEntityType).Error
	if err != nil {
		return nil, err
	}
	for _, row := range byEntityType {
		summary.ByEntityType[row.Key] = row.Count
	}

	return summary, nil
}

// GetAuditFilterOptions returns the distinct actions and entity types present
// in the user's audit history.
func GetAuditFilterOptions(db *gorm.DB, userID uuid.UUID) (*AuditFilterOptions, error) {
	options := &AuditFilterOptions{
		Actions:     []string{},
		EntityTypes: []string{},
	}

	err := db.Model(&notification.AuditLog{}).
		Where("user_id = ?", userID).
		Distinct("action").
		Order("action").
		Pluck("action", &options.Actions).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&notification.AuditLog{}).
		Where("user_id = ?", userID).
		Distinct("entity_type").
		Order("entity_type").
		Pluck("entity_type", &options.EntityTypes).Error
	if err != nil {
		return nil, err
	}

	return options, nil
}
