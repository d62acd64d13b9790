// Package permission resolves organization roles into capability sets.
package permission

import "strings"

// Role is a member's role inside an organization.
type Role string

const (
	RoleOwner   Role = "owner"
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleMember  Role = "member"
	RoleViewer  Role = "viewer"
)

// roleRank orders roles from most to least privileged.
var roleRank = map[Role]int{
	RoleOwner:   0,
	RoleAdmin:   1,
	RoleManager: 2,
	RoleMember:  3,
	RoleViewer:  4,
}

// ParseRole normalizes s into a Role. ok is false for unknown roles.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// Assignable reports whether r may be granted through invitations or member updates.
// The owner role is only ever assigned at organization creation.
func (r Role) Assignable() bool {
	return r.Valid() && r != RoleOwner
}

// Rank returns the sort position of r. Unknown roles sort last.
func (r Role) Rank() int {
	if rank, ok := roleRank[r]; ok {
		return rank
	}
	return len(roleRank)
}

func (r Role) String() string {
	return string(r)
}

// OrganizationCapabilities covers actions on the organization record.
type OrganizationCapabilities struct {
	Create bool `json:"create"`
	Read   bool `json:"read"`
	Update bool `json:"update"`
	Delete bool `json:"delete"`
}

// MemberCapabilities covers member management.
type MemberCapabilities struct {
	Invite bool `json:"invite"`
	Manage bool `json:"manage"`
	Remove bool `json:"remove"`
}

// BrandCapabilities covers brand management.
type BrandCapabilities struct {
	Create bool `json:"create"`
	Manage bool `json:"manage"`
	Delete bool `json:"delete"`
}

// SettingsCapabilities covers organization settings.
type SettingsCapabilities struct {
	View   bool `json:"view"`
	Manage bool `json:"manage"`
}

// Capabilities is the full permission set granted to a role.
type Capabilities struct {
	Organizations OrganizationCapabilities `json:"organizations"`
	Members       MemberCapabilities       `json:"members"`
	Brands        BrandCapabilities        `json:"brands"`
	Settings      SettingsCapabilities     `json:"settings"`
}

// Capability names a single permission as "resource.action".
type Capability string

const (
	OrganizationsCreate Capability = "organizations.create"
	OrganizationsRead   Capability = "organizations.read"
	OrganizationsUpdate Capability = "organizations.update"
	OrganizationsDelete Capability = "organizations.delete"
	MembersInvite       Capability = "members.invite"
	MembersManage       Capability = "members.manage"
	MembersRemove       Capability = "members.remove"
	BrandsCreate        Capability = "brands.create"
	BrandsManage        Capability = "brands.manage"
	BrandsDelete        Capability = "brands.delete"
	SettingsView        Capability = "settings.view"
	SettingsManage      Capability = "settings.manage"
)

// Allows reports whether the capability set grants c. Unknown capabilities are denied.
func (c Capabilities) Allows(capability Capability) bool {
	switch capability {
	case OrganizationsCreate:
		return c.Organizations.Create
	case OrganizationsRead:
		return c.Organizations.Read
	case OrganizationsUpdate:
		return c.Organizations.Update
	case OrganizationsDelete:
		return c.Organizations.Delete
	case MembersInvite:
		return c.Members.Invite
	case MembersManage:
		return c.Members.Manage
	case MembersRemove:
		return c.Members.Remove
	case BrandsCreate:
		return c.Brands.Create
	case BrandsManage:
		return c.Brands.Manage
	case BrandsDelete:
		return c.Brands.Delete
	case SettingsView:
		return c.Settings.View
	case SettingsManage:
		return c.Settings.Manage
	default:
		return false
	}
}

var matrix = map[Role]Capabilities{
	RoleOwner: {
		Organizations: OrganizationCapabilities{Create: true, Read: true, Update: true, Delete: true},
		Members:       MemberCapabilities{Invite: true, Manage: true, Remove: true},
		Brands:        BrandCapabilities{Create: true, Manage: true, Delete: true},
		Settings:      SettingsCapabilities{View: true, Manage: true},
	},
	RoleAdmin: {
		Organizations: OrganizationCapabilities{Read: true, Update: true},
		Members:       MemberCapabilities{Invite: true, Manage: true, Remove: true},
		Brands:        BrandCapabilities{Create: true, Manage: true, Delete: true},
		Settings:      SettingsCapabilities{View: true, Manage: true},
	},
	RoleManager: {
		Organizations: OrganizationCapabilities{Read: true},
		Members:       MemberCapabilities{Invite: true},
		Brands:        BrandCapabilities{Create: true, Manage: true},
		Settings:      SettingsCapabilities{View: true},
	},
	RoleMember: {
		Organizations: OrganizationCapabilities{Read: true},
		Settings:      SettingsCapabilities{View: true},
	},
	RoleViewer: {
		Organizations: OrganizationCapabilities{Read: true},
		Settings:      SettingsCapabilities{View: true},
	},
}

// CapabilitiesOf returns the capability set for role.
// Unknown roles resolve to the viewer set.
func CapabilitiesOf(role Role) Capabilities {
	if caps, ok := matrix[role]; ok {
		return caps
	}
	return matrix[RoleViewer]
}
