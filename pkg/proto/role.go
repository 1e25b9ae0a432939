package proto

import "github.com/craftplan/craftplan/pkg/access"

// OrgRole is a user's role within an organization.
type OrgRole string

const (
	// RoleOwner owns the organization.
	RoleOwner OrgRole = "owner"

	// RoleAdmin administers the organization.
	RoleAdmin OrgRole = "admin"

	// RoleMember is a regular member of the organization.
	RoleMember OrgRole = "member"
)

// Valid reports whether the role is a known role.
func (r OrgRole) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// AccessLevel maps the org role to the project access it implies on
// projects owned by the organization. The mapping is fixed: owners and
// admins get admin, members get editor.
func (r OrgRole) AccessLevel() access.Level {
	switch r {
	case RoleOwner, RoleAdmin:
		return access.Admin
	case RoleMember:
		return access.Editor
	}
	return access.NoAccess
}
