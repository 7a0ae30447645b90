package permission

import (
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models"
)

// Permission keys gating organization-scoped operations
const (
	PermOrgView              = "org:view"
	PermOrgUpdate            = "org:update"
	PermOrgDelete            = "org:delete"
	PermMembersInvite        = "members:invite"
	PermMembersRemove        = "members:remove"
	PermMembersRole          = "members:role"
	PermDeadlinesManage      = "deadlines:manage"
	PermAssessmentsRun       = "assessments:run"
	PermSubmissionsCreate    = "submissions:create"
	PermSubmissionsManage    = "submissions:manage"
	PermCorrespondenceManage = "correspondence:manage"
	PermReportsGenerate      = "reports:generate"
	PermAuditView            = "audit:view"
)

// rolePermissions is the static, total mapping from membership role to its
// permission set. Never mutated at runtime.
var rolePermissions = map[string][]string{
	models.RoleOwner: {
		PermOrgView, PermOrgUpdate, PermOrgDelete,
		PermMembersInvite, PermMembersRemove, PermMembersRole,
		PermDeadlinesManage, PermAssessmentsRun,
		PermSubmissionsCreate, PermSubmissionsManage,
		PermCorrespondenceManage, PermReportsGenerate, PermAuditView,
	},
	models.RoleAdmin: {
		PermOrgView, PermOrgUpdate,
		PermMembersInvite, PermMembersRemove, PermMembersRole,
		PermDeadlinesManage, PermAssessmentsRun,
		PermSubmissionsCreate, PermSubmissionsManage,
		PermCorrespondenceManage, PermReportsGenerate, PermAuditView,
	},
	models.RoleManager: {
		PermOrgView,
		PermDeadlinesManage, PermAssessmentsRun,
		PermSubmissionsCreate, PermSubmissionsManage,
		PermCorrespondenceManage, PermReportsGenerate, PermAuditView,
	},
	models.RoleMember: {
		PermOrgView,
		PermDeadlinesManage, PermAssessmentsRun,
		PermSubmissionsCreate,
	},
	models.RoleViewer: {
		PermOrgView,
	},
}

// GetDefaultPermissionsForRole returns the permission set for a membership
// role. Unknown roles get the VIEWER set, so the mapping stays total.
func GetDefaultPermissionsForRole(role string) []string {
	perms, ok := rolePermissions[role]
	if !ok {
		perms = rolePermissions[models.RoleViewer]
	}
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}

// HasPermission reports whether key is contained in the permission set
func HasPermission(permissionSet []string, key string) bool {
	for _, p := range permissionSet {
		if p == key {
			return true
		}
	}
	return false
}

// RoleHasPermission is a convenience lookup combining both helpers
func RoleHasPermission(role, key string) bool {
	return HasPermission(GetDefaultPermissionsForRole(role), key)
}
