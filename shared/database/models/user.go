package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email          string     `json:"email" gorm:"uniqueIndex;not null"`
	FirstName      string     `json:"first_name" gorm:"size:100"`
	LastName       string     `json:"last_name" gorm:"size:100"`
	Status         string     `json:"status" gorm:"default:'ACTIVE'"`
	OrganizationID *uuid.UUID `json:"organization_id" gorm:"type:uuid"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relations
	Organization Organization `json:"organization" gorm:"foreignKey:OrganizationID"`
}
