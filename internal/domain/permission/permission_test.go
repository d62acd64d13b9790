package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilitiesOf(t *testing.T) {
	t.Run("owner_has_everything", func(t *testing.T) {
		caps := CapabilitiesOf(RoleOwner)
		for _, c := range allCapabilities() {
			assert.True(t, caps.Allows(c), c)
		}
	})

	t.Run("admin_cannot_create_or_delete_organizations", func(t *testing.T) {
		caps := CapabilitiesOf(RoleAdmin)
		assert.False(t, caps.Allows(OrganizationsCreate))
		assert.False(t, caps.Allows(OrganizationsDelete))
		for _, c := range allCapabilities() {
			if c == OrganizationsCreate || c == OrganizationsDelete {
				continue
			}
			assert.True(t, caps.Allows(c), c)
		}
	})

	t.Run("manager", func(t *testing.T) {
		caps := CapabilitiesOf(RoleManager)
		granted := map[Capability]bool{
			OrganizationsRead: true,
			MembersInvite:     true,
			BrandsCreate:      true,
			BrandsManage:      true,
			SettingsView:      true,
		}
		for _, c := range allCapabilities() {
			assert.Equal(t, granted[c], caps.Allows(c), c)
		}
	})

	t.Run("member_and_viewer_are_read_only", func(t *testing.T) {
		assert.Equal(t, CapabilitiesOf(RoleMember), CapabilitiesOf(RoleViewer))
		caps := CapabilitiesOf(RoleViewer)
		for _, c := range allCapabilities() {
			want := c == OrganizationsRead || c == SettingsView
			assert.Equal(t, want, caps.Allows(c), c)
		}
	})

	t.Run("unknown_role_fails_closed", func(t *testing.T) {
		for _, r := range []Role{"", "superuser", "OWNER", "root"} {
			assert.Equal(t, CapabilitiesOf(RoleViewer), CapabilitiesOf(r), r)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		for _, r := range []Role{RoleOwner, RoleAdmin, RoleManager, RoleMember, RoleViewer} {
			assert.Equal(t, CapabilitiesOf(r), CapabilitiesOf(r))
		}
	})

	t.Run("returned_value_is_a_copy", func(t *testing.T) {
		caps := CapabilitiesOf(RoleViewer)
		caps.Members.Invite = true
		assert.False(t, CapabilitiesOf(RoleViewer).Members.Invite)
	})
}

func TestCapabilities_AllowsUnknown(t *testing.T) {
	assert.False(t, CapabilitiesOf(RoleOwner).Allows("billing.refund"))
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		input string
		want  Role
		ok    bool
	}{
		{"owner", RoleOwner, true},
		{" Admin ", RoleAdmin, true},
		{"MANAGER", RoleManager, true},
		{"member", RoleMember, true},
		{"viewer", RoleViewer, true},
		{"guest", Role("guest"), false},
		{"", Role(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseRole(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestRole_Assignable(t *testing.T) {
	assert.False(t, RoleOwner.Assignable())
	assert.True(t, RoleAdmin.Assignable())
	assert.True(t, RoleManager.Assignable())
	assert.True(t, RoleMember.Assignable())
	assert.True(t, RoleViewer.Assignable())
	assert.False(t, Role("guest").Assignable())
}

func TestRole_Rank(t *testing.T) {
	assert.Less(t, RoleOwner.Rank(), RoleAdmin.Rank())
	assert.Less(t, RoleAdmin.Rank(), RoleManager.Rank())
	assert.Less(t, RoleManager.Rank(), RoleMember.Rank())
	assert.Less(t, RoleMember.Rank(), RoleViewer.Rank())
	assert.Less(t, RoleViewer.Rank(), Role("unknown").Rank())
}

func allCapabilities() []Capability {
	return []Capability{
		OrganizationsCreate, OrganizationsRead, OrganizationsUpdate, OrganizationsDelete,
		MembersInvite, MembersManage, MembersRemove,
		BrandsCreate, BrandsManage, BrandsDelete,
		SettingsView, SettingsManage,
	}
}
