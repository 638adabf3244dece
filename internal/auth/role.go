package auth

import (
	"sort"
	"strings"
)

// Role is the coarse identity class of a user.
type Role string

// Permission is a fine-grained capability tag.
type Permission string

const (
	// RoleUser has no elevated permissions.
	RoleUser Role = "USER"
	// RoleManager has the management permissions.
	RoleManager Role = "MANAGER"
	// RoleAdmin has the management and admin permissions.
	RoleAdmin Role = "ADMIN"
)

const (
	// PermAdminRead allows reading admin resources.
	PermAdminRead Permission = "admin:read"
	// PermAdminUpdate allows updating admin resources.
	PermAdminUpdate Permission = "admin:update"
	// PermAdminCreate allows creating admin resources.
	PermAdminCreate Permission = "admin:create"
	// PermAdminDelete allows deleting admin resources.
	PermAdminDelete Permission = "admin:delete"

	// PermManagementRead allows reading management resources.
	PermManagementRead Permission = "management:read"
	// PermManagementUpdate allows updating management resources.
	PermManagementUpdate Permission = "management:update"
	// PermManagementCreate allows creating management resources.
	PermManagementCreate Permission = "management:create"
	// PermManagementDelete allows deleting management resources.
	PermManagementDelete Permission = "management:delete"
)

// RolePrefix is prepended to a role name to build its authority tag.
const RolePrefix = "ROLE_"

var managementPermissions = []Permission{ //nolint:gochecknoglobals
	PermManagementRead,
	PermManagementUpdate,
	PermManagementCreate,
	PermManagementDelete,
}

var adminPermissions = []Permission{ //nolint:gochecknoglobals
	PermAdminRead,
	PermAdminUpdate,
	PermAdminCreate,
	PermAdminDelete,
}

// rolePermissions is the static role table. It is never written after package init.
var rolePermissions = map[Role][]Permission{ //nolint:gochecknoglobals
	RoleUser:    {},
	RoleManager: managementPermissions,
	RoleAdmin:   append(append([]Permission{}, managementPermissions...), adminPermissions...),
}

// Roles returns all known roles.
func Roles() []Role {
	return []Role{RoleUser, RoleManager, RoleAdmin}
}

// ParseRole parses a role name case-insensitively.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", false
	}

	return r, true
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// Authority returns the role tag, e.g. ROLE_ADMIN.
func (r Role) Authority() string {
	return RolePrefix + string(r)
}

// Authorities is a set of authority strings.
type Authorities map[string]struct{}

// Has reports whether the set contains authority.
func (a Authorities) Has(authority string) bool {
	_, ok := a[authority]
	return ok
}

// HasAny reports whether the set contains at least one of the given authorities.
func (a Authorities) HasAny(authorities ...string) bool {
	for _, authority := range authorities {
		if a.Has(authority) {
			return true
		}
	}

	return false
}

// Sorted returns the authorities as a sorted slice.
func (a Authorities) Sorted() []string {
	out := make([]string, 0, len(a))
	for authority := range a {
		out = append(out, authority)
	}

	sort.Strings(out)

	return out
}

// PermissionsOf returns the permissions granted to role. Unknown roles get none.
func PermissionsOf(role Role) []Permission {
	perms := rolePermissions[role]
	out := make([]Permission, len(perms))
	copy(out, perms)

	return out
}

// AuthoritiesOf returns the permissions of role plus its ROLE_ tag.
// Every call returns a new set.
func AuthoritiesOf(role Role) Authorities {
	if !role.Valid() {
		return Authorities{}
	}

	perms := rolePermissions[role]
	out := make(Authorities, len(perms)+1)

	for _, p := range perms {
		out[string(p)] = struct{}{}
	}

	out[role.Authority()] = struct{}{}

	return out
}
