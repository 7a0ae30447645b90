package supervision

import (
	"time"

	"github.com/google/uuid"
)

// Information request statuses
const (
	RequestStatusPending   = "pending"
	RequestStatusCompleted = "completed"
)

// InformationRequest is an authority's request for additional information,
// forwarded to an external supplier through the public portal.
type InformationRequest struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SubmissionID uuid.UUID  `json:"submission_id" gorm:"type:uuid;not null;index"`
	Subject      string     `json:"subject" gorm:"size:300;not null"`
	Description  string     `json:"description" gorm:"type:text"`
	Status       string     `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName returns the table name for InformationRequest
func (InformationRequest) TableName() string {
	return "information_requests"
}

// PortalToken grants an external supplier unauthenticated access to one
// information request. Only a bcrypt hash of the token secret is stored;
// the wire format is "<token id>.<secret>".
type PortalToken struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequestID      uuid.UUID  `json:"request_id" gorm:"type:uuid;not null;index"`
	SecretHash     string     `json:"-" gorm:"size:100;not null"`
	ExpiresAt      time.Time  `json:"expires_at" gorm:"not null"`
	RevokedAt      *time.Time `json:"revoked_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	AccessCount    int64      `json:"access_count" gorm:"default:0"`
	LastAccessedAt *time.Time `json:"last_accessed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TableName returns the table name for PortalToken
func (PortalToken) TableName() string {
	return "portal_tokens"
}
