package compliance

import (
	"time"

	"github.com/google/uuid"
)

// DeadlineStatus represents the lifecycle status of a regulatory deadline
type DeadlineStatus string

const (
	DeadlineStatusUpcoming  DeadlineStatus = "UPCOMING"
	DeadlineStatusDueSoon   DeadlineStatus = "DUE_SOON"
	DeadlineStatusOverdue   DeadlineStatus = "OVERDUE"
	DeadlineStatusExtended  DeadlineStatus = "EXTENDED"
	DeadlineStatusCompleted DeadlineStatus = "COMPLETED"
)

// Deadline represents a regulatory obligation with a due date.
// Deadlines are never hard-deleted so the audit trail stays intact.
type Deadline struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID          uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	Title           string         `json:"title" gorm:"size:200;not null"`
	Description     string         `json:"description" gorm:"type:text"`
	Regulation      string         `json:"regulation" gorm:"size:50"` // eu_space_act, nis2, uk_sia
	DueDate         time.Time      `json:"due_date" gorm:"not null;index"`
	Status          DeadlineStatus `json:"status" gorm:"type:varchar(20);not null;default:'UPCOMING'"`
	OriginalDueDate *time.Time     `json:"original_due_date,omitempty"` // set once, on first extension
	ExtensionReason string         `json:"extension_reason,omitempty" gorm:"type:text"`
	ApprovedBy      string         `json:"approved_by,omitempty" gorm:"size:200"`
	CompletedAt     *time.Time     `json:"completed_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// TableName returns the table name for Deadline
func (Deadline) TableName() string {
	return "deadlines"
}

// IsOverdue reports whether the deadline has passed without completion,
// relative to now. Derived at read time, never stored.
func (d *Deadline) IsOverdue(now time.Time) bool {
	return d.Status != DeadlineStatusCompleted && d.DueDate.Before(now)
}
