package supervision

import (
	"time"

	"github.com/google/uuid"
)

// Correspondence directions
const (
	DirectionInbound  = "INBOUND"
	DirectionOutbound = "OUTBOUND"
)

// Correspondence message types
const (
	MessageTypeEmail       = "email"
	MessageTypeLetter      = "letter"
	MessageTypePortal      = "portal_message"
	MessageTypePhoneCall   = "phone_call"
	MessageTypeMeetingNote = "meeting_note"
)

// Correspondence is a message exchanged with an authority about a submission.
// Whether an entry is overdue is derived at query time from the response
// deadline, never stored.
type Correspondence struct {
	ID               uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SubmissionID     uuid.UUID  `json:"submission_id" gorm:"type:uuid;not null;index"`
	UserID           uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	Direction        string     `json:"direction" gorm:"type:varchar(10);not null"`
	MessageType      string     `json:"message_type" gorm:"type:varchar(20);not null"`
	Subject          string     `json:"subject" gorm:"size:300;not null"`
	Body             string     `json:"body" gorm:"type:text"`
	IsRead           bool       `json:"is_read" gorm:"default:false"`
	RequiresResponse bool       `json:"requires_response" gorm:"default:false"`
	ResponseDeadline *time.Time `json:"response_deadline,omitempty"`
	RespondedAt      *time.Time `json:"responded_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at" gorm:"index"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// TableName returns the table name for Correspondence
func (Correspondence) TableName() string {
	return "correspondence_entries"
}

// IsValidMessageType reports whether t is an enumerated correspondence type.
func IsValidMessageType(t string) bool {
	switch t {
	case MessageTypeEmail, MessageTypeLetter, MessageTypePortal, MessageTypePhoneCall, MessageTypeMeetingNote:
		return true
	}
	return false
}
