package supervision

import (
	"time"

	"github.com/google/uuid"
)

// Supervision report types
const (
	ReportTypeAnnualCompliance   = "annual_compliance"
	ReportTypeIncident           = "incident"
	ReportTypeLaunchNotification = "launch_notification"
	ReportTypeDeorbitPlan        = "deorbit_plan"
)

// Supervision report statuses
const (
	ReportStatusDraft        = "draft"
	ReportStatusGenerated    = "generated"
	ReportStatusSubmitted    = "submitted"
	ReportStatusAcknowledged = "acknowledged"
)

// SupervisionReport is a generated artifact tied to a supervision context,
// optionally referencing an incident and a stored file in object storage.
type SupervisionReport struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	IncidentID   *uuid.UUID `json:"incident_id,omitempty" gorm:"type:uuid"`
	ReportType   string     `json:"report_type" gorm:"type:varchar(30);not null;index"`
	Status       string     `json:"status" gorm:"type:varchar(20);not null;default:'draft';index"`
	NCAReference string     `json:"nca_reference,omitempty" gorm:"size:100"`
	FileKey      string     `json:"file_key,omitempty" gorm:"size:500"`
	GeneratedAt  *time.Time `json:"generated_at,omitempty"`
	SubmittedAt  *time.Time `json:"submitted_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName returns the table name for SupervisionReport
func (SupervisionReport) TableName() string {
	return "supervision_reports"
}
