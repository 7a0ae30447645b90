package models

import (
	"time"

	"github.com/google/uuid"
)

// Membership roles, ordered from most to least privileged.
const (
	RoleOwner   = "OWNER"
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleMember  = "MEMBER"
	RoleViewer  = "VIEWER"
)

// OrganizationMember binds a user to an organization with a role.
type OrganizationMember struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `json:"organization_id" gorm:"type:uuid;not null;uniqueIndex:idx_org_user"`
	UserID         uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_org_user"`
	Role           string    `json:"role" gorm:"type:varchar(20);not null;default:'MEMBER'"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	Organization Organization `json:"organization" gorm:"foreignKey:OrganizationID"`
	User         User         `json:"user" gorm:"foreignKey:UserID"`
}

// IsValidRole reports whether role is one of the enumerated membership roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleOwner, RoleAdmin, RoleManager, RoleMember, RoleViewer:
		return true
	}
	return false
}
