package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models"
)

func TestGetDefaultPermissionsForRoleIsTotal(t *testing.T) {
	roles := []string{
		models.RoleOwner,
		models.RoleAdmin,
		models.RoleManager,
		models.RoleMember,
		models.RoleViewer,
	}

	for _, role := range roles {
		perms := GetDefaultPermissionsForRole(role)
		assert.NotEmpty(t, perms, "role %s must map to a non-empty permission set", role)
	}
}

func TestGetDefaultPermissionsForRoleUnknownFallsBackToViewer(t *testing.T) {
	perms := GetDefaultPermissionsForRole("SOMETHING_ELSE")
	assert.Equal(t, GetDefaultPermissionsForRole(models.RoleViewer), perms)
}

func TestGetDefaultPermissionsForRoleReturnsCopy(t *testing.T) {
	perms := GetDefaultPermissionsForRole(models.RoleViewer)
	perms[0] = "mutated"

	again := GetDefaultPermissionsForRole(models.RoleViewer)
	assert.NotContains(t, again, "mutated")
}

func TestHasPermission(t *testing.T) {
	set := []string{PermOrgView, PermDeadlinesManage}

	assert.True(t, HasPermission(set, PermOrgView))
	assert.False(t, HasPermission(set, PermMembersRole))
	assert.False(t, HasPermission(nil, PermOrgView))
}

func TestRoleLadder(t *testing.T) {
	// Owner and admin manage members, managers and below do not
	assert.True(t, RoleHasPermission(models.RoleOwner, PermMembersRole))
	assert.True(t, RoleHasPermission(models.RoleAdmin, PermMembersRole))
	assert.False(t, RoleHasPermission(models.RoleManager, PermMembersRole))
	assert.False(t, RoleHasPermission(models.RoleMember, PermMembersRole))
	assert.False(t, RoleHasPermission(models.RoleViewer, PermMembersRole))

	// Only the owner may delete the organization
	assert.True(t, RoleHasPermission(models.RoleOwner, PermOrgDelete))
	assert.False(t, RoleHasPermission(models.RoleAdmin, PermOrgDelete))

	// Everyone can at least view
	assert.True(t, RoleHasPermission(models.RoleViewer, PermOrgView))
}
