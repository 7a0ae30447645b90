package notification

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records one domain action taken by a user (deadline extension,
// role change, submission status change, ...). Rows are append-only.
type AuditLog struct {
	ID          uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID      uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;index"`
	Action      string      `json:"action" gorm:"type:varchar(50);not null;index"`
	EntityType  string      `json:"entity_type" gorm:"type:varchar(50);not null;index"`
	EntityID    *uuid.UUID  `json:"entity_id,omitempty" gorm:"type:uuid"`
	Description string      `json:"description" gorm:"type:text"`
	OldValues   interface{} `json:"old_values,omitempty" gorm:"type:jsonb;serializer:json"`
	NewValues   interface{} `json:"new_values,omitempty" gorm:"type:jsonb;serializer:json"`
	IPAddress   string      `json:"ip_address" gorm:"type:varchar(45)"`
	CreatedAt   time.Time   `json:"created_at" gorm:"autoCreateTime;index"`
}

// TableName returns the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}
