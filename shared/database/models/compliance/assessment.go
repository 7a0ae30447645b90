package compliance

import (
	"time"

	"github.com/google/uuid"
)

// Supported assessment frameworks
const (
	FrameworkEUSpaceAct = "eu_space_act"
	FrameworkNIS2       = "nis2"
	FrameworkUKSIA      = "uk_sia"
)

// Assessment statuses
const (
	AssessmentStatusInProgress = "in_progress"
	AssessmentStatusCompleted  = "completed"
)

// Assessment represents a guided compliance self-assessment against one framework.
// Answers are stored as a JSON-encoded map of question key to answer value.
type Assessment struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	Framework   string     `json:"framework" gorm:"type:varchar(30);not null"`
	Status      string     `json:"status" gorm:"type:varchar(20);not null;default:'in_progress'"`
	Score       int        `json:"score" gorm:"default:0"`
	Answers     string     `json:"-" gorm:"type:text"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName returns the table name for Assessment
func (Assessment) TableName() string {
	return "assessments"
}

// IsValidFramework reports whether framework is a supported assessment framework.
func IsValidFramework(framework string) bool {
	switch framework {
	case FrameworkEUSpaceAct, FrameworkNIS2, FrameworkUKSIA:
		return true
	}
	return false
}
