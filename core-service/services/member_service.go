package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/permission"
)

// Member service errors, mapped to HTTP statuses at the route boundary
var (
	ErrNotMember       = errors.New("acting user is not a member of the organization")
	ErrForbidden       = errors.New("insufficient permissions")
	ErrMemberNotFound  = errors.New("member not found")
	ErrOwnerSelfDemote = errors.New("an owner cannot demote themself")
	ErrInvalidRole     = errors.New("invalid role")
)

// MemberRecord is the minimal updated-member view returned by role changes
type MemberRecord struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

func findMembership(db *gorm.DB, orgID, userID uuid.UUID) (*models.OrganizationMember, error) {
	var member models.OrganizationMember
	err := db.Where("organization_id = ? AND user_id = ?", orgID, userID).First(&member).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

// UpdateMemberRole changes a member's role, enforcing the permission ladder:
// the actor must be a member, must hold members:role, may grant OWNER only
// when already OWNER, and an owner may never demote themself. The guard
// does not check for other owners; any owner self-demotion is blocked.
func UpdateMemberRole(db *gorm.DB, orgID, targetUserID uuid.UUID, newRole string, actingUserID uuid.UUID) (*MemberRecord, error) {
	if !models.IsValidRole(newRole) {
		return nil, ErrInvalidRole
	}

	actor, err := findMembership(db, orgID, actingUserID)
	if err != nil {
		if err == ErrMemberNotFound {
			return nil, ErrNotMember
		}
		return nil, err
	}

	actorPerms := permission.GetDefaultPermissionsForRole(actor.Role)
	if !permission.HasPermission(actorPerms, permission.PermMembersRole) {
		return nil, ErrForbidden
	}

	if newRole == models.RoleOwner && actor.Role != models.RoleOwner {
		return nil, ErrForbidden
	}

	if targetUserID == actingUserID && actor.Role == models.RoleOwner && newRole != models.RoleOwner {
		return nil, ErrOwnerSelfDemote
	}

	target, err := findMembership(db, orgID, targetUserID)
	if err != nil {
		return nil, err
	}

	target.Role = newRole
	if err := db.Save(target).Error; err != nil {
		return nil, err
	}

	return &MemberRecord{ID: target.ID, UserID: target.UserID, Role: target.Role}, nil
}

// RemoveMember removes a member from an organization. Self-removal is always
// permitted; removing anyone else requires members:remove.
func RemoveMember(db *gorm.DB, orgID, targetUserID, actingUserID uuid.UUID) error {
	if targetUserID != actingUserID {
		actor, err := findMembership(db, orgID, actingUserID)
		if err != nil {
			if err == ErrMemberNotFound {
				return ErrNotMember
			}
			return err
		}

		actorPerms := permission.GetDefaultPermissionsForRole(actor.Role)
		if !permission.HasPermission(actorPerms, permission.PermMembersRemove) {
			return ErrForbidden
		}
	}

	target, err := findMembership(db, orgID, targetUserID)
	if err != nil {
		return err
	}

	return db.Delete(target).Error
}
