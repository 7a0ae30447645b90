package notification

import (
	"time"

	"github.com/google/uuid"
)

// NotificationLevel represents the severity level of a notification
type NotificationLevel string

const (
	NotificationLevelSuccess  NotificationLevel = "success"
	NotificationLevelInfo     NotificationLevel = "info"
	NotificationLevelWarning  NotificationLevel = "warning"
	NotificationLevelCritical NotificationLevel = "critical"
)

// Notification type taxonomy
const (
	TypeDeadlineReminder       = "deadline_reminder"
	TypeDeadlineExtended       = "deadline_extended"
	TypeSubmissionStatus       = "submission_status"
	TypeCorrespondenceReceived = "correspondence_received"
	TypeAssessmentComplete     = "assessment_complete"
	TypeMemberChanged          = "member_changed"
	TypeSystem                 = "system"
)

// DisplayConfig is the per-type presentation hint returned with notifications
type DisplayConfig struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// displayConfigs maps every notification type to its display configuration.
var displayConfigs = map[string]DisplayConfig{
	TypeDeadlineReminder:       {Icon: "clock", Color: "orange"},
	TypeDeadlineExtended:       {Icon: "calendar-plus", Color: "blue"},
	TypeSubmissionStatus:       {Icon: "file-check", Color: "blue"},
	TypeCorrespondenceReceived: {Icon: "mail", Color: "purple"},
	TypeAssessmentComplete:     {Icon: "clipboard-check", Color: "green"},
	TypeMemberChanged:          {Icon: "users", Color: "gray"},
	TypeSystem:                 {Icon: "info", Color: "gray"},
}

// GetDisplayConfig returns the display configuration for a notification type,
// falling back to the system config for unknown types.
func GetDisplayConfig(notificationType string) DisplayConfig {
	if dc, ok := displayConfigs[notificationType]; ok {
		return dc
	}
	return displayConfigs[TypeSystem]
}

// Notification represents a user-scoped in-app notification
type Notification struct {
	ID        uuid.UUID         `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID         `json:"user_id" gorm:"type:uuid;not null;index"`
	Type      string            `json:"type" gorm:"type:varchar(50);not null"`
	Level     NotificationLevel `json:"level" gorm:"type:varchar(20);not null;default:'info'"`
	Title     string            `json:"title" gorm:"type:varchar(200);not null"`
	Message   string            `json:"message" gorm:"type:text;not null"`
	Entity    string            `json:"entity,omitempty" gorm:"type:varchar(100)"`
	EntityID  *uuid.UUID        `json:"entity_id,omitempty" gorm:"type:uuid"`
	IsRead    bool              `json:"is_read" gorm:"default:false;index"`
	CreatedAt time.Time         `json:"created_at" gorm:"autoCreateTime;index"`
	ReadAt    *time.Time        `json:"read_at,omitempty"`
}

// TableName returns the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}

// WebSocketMessage represents a WebSocket message format
type WebSocketMessage struct {
	Type      string            `json:"type"`
	Level     NotificationLevel `json:"level"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	Entity    string            `json:"entity,omitempty"`
	EntityID  *uuid.UUID        `json:"entity_id,omitempty"`
	UserID    *uuid.UUID        `json:"user_id,omitempty"`
}
