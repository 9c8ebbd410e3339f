package agency

import "slices"

// Role is a member's position in the fixed agency hierarchy.
type Role string

const (
	RoleMember     Role = "member"
	RoleManager    Role = "manager"
	RoleAdmin      Role = "admin"
	RoleSuperUser  Role = "super_user"
	RoleSuperAdmin Role = "super_admin"
)

// hierarchy is ordered from least to most privileged.
var hierarchy = []Role{RoleMember, RoleManager, RoleAdmin, RoleSuperUser, RoleSuperAdmin}

// Roles returns every valid role, least privileged first.
func Roles() []Role {
	return slices.Clone(hierarchy)
}

// RoleNames returns the role set as strings.
func RoleNames() []string {
	names := make([]string, len(hierarchy))
	for i, r := range hierarchy {
		names[i] = string(r)
	}
	return names
}

// Valid reports whether r belongs to the closed role set. Comparison is exact:
// "Admin" or "owner" are not roles.
func (r Role) Valid() bool {
	return slices.Contains(hierarchy, r)
}

func (r Role) level() int {
	return slices.Index(hierarchy, r)
}

// AtLeast reports whether r ranks at or above min. Invalid roles rank below everything.
func (r Role) AtLeast(min Role) bool {
	lvl := r.level()
	return lvl >= 0 && min.level() >= 0 && lvl >= min.level()
}

func (r Role) String() string { return string(r) }
