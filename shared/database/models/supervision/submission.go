package supervision

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus represents the progression of a filing with a national authority
type SubmissionStatus string

const (
	SubmissionStatusDraft         SubmissionStatus = "DRAFT"
	SubmissionStatusSubmitted     SubmissionStatus = "SUBMITTED"
	SubmissionStatusReceived      SubmissionStatus = "RECEIVED"
	SubmissionStatusUnderReview   SubmissionStatus = "UNDER_REVIEW"
	SubmissionStatusInfoRequested SubmissionStatus = "INFORMATION_REQUESTED"
	SubmissionStatusApproved      SubmissionStatus = "APPROVED"
	SubmissionStatusRejected      SubmissionStatus = "REJECTED"
	SubmissionStatusWithdrawn     SubmissionStatus = "WITHDRAWN"
)

// Submission methods accepted by national authorities
const (
	MethodPortal = "portal"
	MethodEmail  = "email"
	MethodPost   = "post"
	MethodAPI    = "api"
)

// NCASubmission represents a filing to a National Competent Authority.
// Attachments and StatusHistory are JSON-encoded text columns, decoded
// defensively on read. Submissions are never hard-deleted.
type NCASubmission struct {
	ID               uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID           uuid.UUID        `json:"user_id" gorm:"type:uuid;not null;index"`
	ReportID         *uuid.UUID       `json:"report_id,omitempty" gorm:"type:uuid;index"`
	NCAAuthority     string           `json:"nca_authority" gorm:"type:varchar(20);not null;index"`
	SubmissionMethod string           `json:"submission_method" gorm:"type:varchar(20);not null"`
	Status           SubmissionStatus `json:"status" gorm:"type:varchar(30);not null;default:'DRAFT';index"`
	ReferenceNumber  string           `json:"reference_number,omitempty" gorm:"size:100"`
	Attachments      string           `json:"-" gorm:"type:text"`
	StatusHistory    string           `json:"-" gorm:"type:text"`
	SubmittedAt      *time.Time       `json:"submitted_at,omitempty"`
	CreatedAt        time.Time        `json:"created_at" gorm:"index"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// TableName returns the table name for NCASubmission
func (NCASubmission) TableName() string {
	return "nca_submissions"
}

// Attachment describes one stored file tied to a submission
type Attachment struct {
	FileKey    string    `json:"file_key"`
	FileName   string    `json:"file_name"`
	FileSize   int64     `json:"file_size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// StatusChange is one entry of a submission's append-only status history
type StatusChange struct {
	From      SubmissionStatus `json:"from"`
	To        SubmissionStatus `json:"to"`
	Note      string           `json:"note,omitempty"`
	ChangedBy uuid.UUID        `json:"changed_by"`
	ChangedAt time.Time        `json:"changed_at"`
}
