package organization

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/orghub/server/internal/domain/permission"
	"github.com/orghub/server/internal/model"
	"github.com/orghub/server/internal/port/inbound"
	"github.com/orghub/server/internal/port/outbound"
)

// expectInviteChecks wires the lookups every successful invite performs before writing.
func expectInviteChecks(deps *testDeps, ctx context.Context, org *model.Organization, inviter *model.Membership, email string, members, pending int64) {
	deps.orgDB.On("FindByID", ctx, org.ID).Return(org, nil)
	deps.memberDB.On("FindActive", ctx, inviter.UserID, org.ID).Return(inviter, nil)
	deps.users.On("FindByEmail", ctx, email).Return(nil, nil)
	deps.invitationDB.On("FindPendingByEmail", ctx, org.ID, email).Return(nil, outbound.ErrNotFound)
	deps.memberDB.On("CountByStatus", ctx, org.ID, mock.Anything).Return(members, nil)
	deps.invitationDB.On("CountPending", ctx, org.ID, mock.Anything).Return(pending, nil)
}

func TestDomain_InviteMember(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		domain, deps := setupDomain()
		ctx := context.Background()
		ownerID := uuid.New()
		org := newTestOrganization(ownerID)
		owner := newTestMember(org.ID, ownerID, permission.RoleOwner)

		expectInviteChecks(deps, ctx, org, owner, "bob@example.com", 1, 0)
		deps.invitationDB.On("Create", ctx, mock.MatchedBy(func(inv *model.Invitation) bool {
			return inv.Email == "bob@example.com" &&
				inv.Role == permission.RoleMember &&
				inv.Status == model.InvitationStatusPending &&
				len(inv.Token) == 43
		})).Return(nil)
		deps.auditDB.On("Append", ctx, mock.MatchedBy(func(e *model.AuditEntry) bool {
			return e.Action == model.AuditActionMemberInvited &&
				e.Metadata["email"] == "bob@example.com" &&
				e.Metadata["role"] == "member"
		})).Return(nil)
		deps.users.On("FindByID", ctx, ownerID).Return(&model.User{ID: ownerID, Name: "Alice"}, nil)
		deps.notifier.On("SendInvitation", ctx, "bob@example.com", "Acme Corp", "Alice", mock.Anything, "Welcome aboard").Return(nil)

		before := time.Now()
		out, err := domain.InviteMember(ctx, org.ID, ownerID, &inbound.InviteMemberInput{
			Email:   "  Bob@Example.com ",
			Role:    permission.RoleMember,
			Message: "Welcome aboard",
		})

		require.NoError(t, err)
		assert.Equal(t, "bob@example.com", out.Email)
		assert.Equal(t, permission.RoleMember, out.Role)
		assert.Len(t, out.InvitationToken, 43)
		assert.True(t, out.EmailSent)
		assert.WithinDuration(t, before.Add(7*24*time.Hour), out.ExpiresAt, time.Minute)

		deps.invitationDB.AssertExpectations(t)
		deps.auditDB.AssertExpectations(t)
		deps.notifier.AssertExpectations(t)
	})

	t.Run("email_failure_keeps_invitation", func(t *testing.T) {
		domain, deps := setupDomain()
		ctx := context.Background()
		ownerID := uuid.New()
		org := newTestOrganization(ownerID)
		owner := newTestMember(org.ID, ownerID, permission.RoleOwner)

		expectInviteChecks(deps, ctx, org, owner, "bob@example.com", 1, 0)
		deps.invitationDB.On("Create", ctx, mock.Anything).Return(nil)
		deps.auditDB.On("Append", ctx, mock.Anything).Return(nil)
		deps.users.On("FindByID", ctx, ownerID).Return(nil, nil)
		deps.notifier.On("SendInvitation", ctx, "bob@example.com", "Acme Corp", unknownInviterName, mock.Anything, "").
			Return(errors.New("smtp unavailable"))

		out, err := domain.InviteMember(ctx, org.ID, ownerID, &inbound.InviteMemberInput{
			Email: "bob@example.com",
			Role:  permission.RoleViewer,
		})

		require.NoError(t, err)
		assert.False(t, out.EmailSent)
		assert.NotEmpty(t, out.InvitationToken)
		deps.invitationDB.AssertCalled(t, "Create", ctx, mock.Anything)
	})

	t.Run("viewer_cannot_invite", func(t *testing.T) {
		domain, deps := setupDomain()
		ctx := context.Background()
		userID := uuid.New()
		org := newTestOrganization(uuid.New())

		deps.orgDB.On("FindByID", ctx, org.ID).Return(org, nil)
		deps.memberDB.On("FindActive", ctx, userID, org.ID).Return(newTestMember(org.ID, userID, permission.RoleViewer), nil)

		out, err := domain.InviteMember(ctx, org.ID, userID, &inbound.InviteMemberInput{
			Email: "bob@example.com",
			Role:  permission.RoleMember,
		})

		assert.Nil(t, out)
		assert.Equal(t, ErrInviteForbidden, err)
	})

	t.Run("owner_role_rejected", func(t *testing.T) {
		domain, deps := setupDomain()
		ctx := context.Background()
		ownerID := uuid.New()
		org := newTestOrganization(ownerID)

		deps.orgDB.On("FindByID", ctx, org.ID).Return(org, nil)
		deps.memberDB.On("FindActive", ctx, ownerID, org.ID).Return(newTestMember(org.ID, ownerID, permission.RoleOwner), nil)

		_, err := domain.InviteMember(ctx, org.ID, ownerID, &inbound.InviteMemberInput{
			Email: "bob@example.com",
			Role:  permission.RoleOwner,
		})

		assert.Equal(t, ErrInvalidRole, err)
	})

	t.Run("already_member", func(t *testing.T) {
		domain, deps := setupDomain()
		ctx := context.Background()
		ownerID := uuid.New()
		org := newTestOrganization(ownerID)
		bob := &model.User{ID: uuid.New(), Email: "bob@example.com", Name: "Bob"}

		deps.orgDB.On("FindByID", ctx, org.ID).Return(org, nil)
		deps.memberDB.On("FindActive", ctx, ownerID, org.ID).Return(newTestMember(org.ID, ownerID, permission.RoleOwner), nil)
		deps.users.On("FindByEmail", ctx, "bob@example.com").Return(bob, nil)
		deps.memberDB.On("FindByUserAndOrganization", ctx, bob.ID, org.ID).Return(newTestMember(org.ID, bob.ID, permission.RoleMember), nil)

		_, err := domain.InviteMember(ctx, org.ID, ownerID, &inbound.InviteMemberInput{
			Email: "bob@example.com",
			Role:  permission.RoleMember,
		})

		assert.Equal(t, ErrAlreadyMember, err)
		deps.invitationDB.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("pending_invitation_exists", func(t *testing.T) {
		domain, deps := setupDomain()
		ctx := context.Background()
		ownerID := uuid.New()
		org := newTestOrganization(ownerID)
		existing := &model.Invitation{
			ID:        uuid.New(),
			Status:    model.InvitationStatusPending,
			ExpiresAt: time.Now().Add(time.Hour),
		}

		deps.orgDB.On("FindByID", ctx, org.ID).Return(org, nil)
		deps.memberDB.On("FindActive", ctx, ownerID, org.ID).Return(newTestMember(org.ID, ownerID, permission.RoleOwner), nil)
		deps.users.On("FindByEmail", ctx, "bob@example.com").Return(nil, nil)
		deps.invitationDB.On("FindPendingByEmail", ctx, org.ID, "bob@example.com").Return(existing, nil)

		_, err := domain.InviteMember(ctx, org.ID, ownerID, &inbound.InviteMemberInput{
			Email: "bob@example.com",
			Role:  permission.RoleMember,
		})

		assert.Equal(t, ErrInvitationPending, err)
	})

	t.Run("expired_pending_invitation_is_replaced", func(t *testing.T) {
		domain, deps := setupDomain()
		ctx := context.Background()
		ownerID := uuid.New()
		org := newTestOrganization(ownerID)
		stale := &model.Invitation{
			ID:        uuid.New(),
			Status:    model.InvitationStatusPending,
			ExpiresAt: time.Now().Add(-time.Hour),
		}

		deps.orgDB.On("FindByID", ctx, org.ID).Return(org, nil)
		deps.memberDB.On("FindActive", ctx, ownerID, org.ID).Return(newTestMember(org.ID, ownerID, permission.RoleOwner), nil)
		deps.users.On("FindByEmail", ctx, "bob@example.com").Return(nil, nil)
		deps.invitationDB.On("FindPendingByEmail", ctx, org.ID, "bob@example.com").Return(stale, nil)
		deps.invitationDB.On("Transition", ctx, stale, model.InvitationStatusPending).Return(nil)
		deps.memberDB.On("CountByStatus", ctx, org.ID, mock.Anything).Return(int64(1), nil)
		deps.invitationDB.On("CountPending", ctx, org.ID, mock.Anything).Return(int64(0), nil)
		deps.invitationDB.On("Create", ctx, mock.Anything).Return(nil)
		deps.auditDB.On("Append", ctx, mock.Anything).Return(nil)
		deps.users.On("FindByID", ctx, ownerID).Return(nil, nil)
		deps.notifier.On("SendInvitation", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		out, err := domain.InviteMember(ctx, org.ID, ownerID, &inbound.InviteMemberInput{
			Email: "bob@example.com",
			Role:  permission.RoleMember,
		})

		require.NoError(t, err)
		assert.NotEqual(t, stale.ID, out.InvitationID)
		assert.Equal(t, model.InvitationStatusExpired, stale.Status)
	})

	t.Run("member_limit_counts_pending_invitations", func(t *testing.T) {
		domain, deps := setupDomain()
		ctx := context.Background()
		ownerID := uuid.New()
		org := newTestOrganization(ownerID)
		owner := newTestMember(org.ID, ownerID, permission.RoleOwner)

		expectInviteChecks(deps, ctx, org, owner, "bob@example.com", 7, 3)

		_, err := domain.InviteMember(ctx, org.ID, ownerID, &inbound.InviteMemberInput{
			Email: "bob@example.com",
			Role:  permission.RoleMember,
		})

		assert.Equal(t, ErrMemberLimitExceeded, err)
		deps.invitationDB.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("concurrent_duplicate_invitation", func(t *testing.T) {
		domain, deps := setupDomain()
		ctx := context.Background()
		ownerID := uuid.New()
		org := newTestOrganization(ownerID)
		owner := newTestMember(org.ID, ownerID, permission.RoleOwner)

		expectInviteChecks(deps, ctx, org, owner, "bob@example.com", 1, 0)
		deps.invitationDB.On("Create", ctx, mock.Anything).Return(outbound.ErrDuplicate)

		_, err := domain.InviteMember(ctx, org.ID, ownerID, &inbound.InviteMemberInput{
			Email: "bob@example.com",
			Role:  permission.RoleMember,
		})

		assert.Equal(t, ErrInvitationPending, err)
		deps.notifier.AssertNotCalled(t, "SendInvitation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDomain_UpdateMember(t *testing.T) {
	t.Run("role_change_recomputes_permissions", func(t *testing.T) {
		domain, deps := setupDomain()
		ctx := context.Background()
		ownerID := uuid.New()
		org := newTestOrganization(ownerID)
		target := newTestMember(org.ID, uuid.New(), permission.RoleViewer)

		deps.orgDB.On("FindByID", ctx, org.ID).Return(org, nil)
		deps.memberDB.On("FindByID", ctx, org.ID, target.ID).Return(target, nil)
		deps.memberDB.On("FindActive", ctx, ownerID, org.ID).Return(newTestMember(org.ID, ownerID, permission.RoleOwner), nil)
		deps.memberDB.On("Update", ctx, target).Return(nil)
		deps.auditDB.On("Append", ctx, auditAction(model.AuditActionMemberUpdated)).Return(nil)
		deps.users.On("FindByIDs", ctx, []uuid.UUID{target.UserID}).Return([]*model.User{}, nil)

		role := permission.RoleManager
		out, err := domain.UpdateMember(ctx, org.ID, target.ID, ownerID, &inbound.UpdateMemberInput{Role: &role})

		require.NoError(t, err)
		assert.Equal(t, permission.RoleManager, out.Role)
		assert.True(t, out.Permissions.Members.Invite)
		assert.True(t, out.Permissions.Brands.Create)
		assert.False(t, out.Permissions.Members.Remove)
		deps.auditDB.AssertExpectations(t)
	})

	t.Run("suspend_member", func(t *testing.T) {
		domain, deps := setupDomain()
		ctx := context.Background()
		adminID := uuid.New()
		org := newTestOrganization(uuid.New())
		target := newTestMember(org.ID, uuid.New(), permission.RoleMember)

		deps.orgDB.On("FindByID", ctx, org.ID).Return(org, nil)
		deps.memberDB.On("FindByID", ctx, org.ID, target.ID).Return(target, nil)
		deps.memberDB.On("FindActive", ctx, adminID, org.ID).Return(newTestMember(org.ID, adminID, permission.RoleAdmin), nil)
		deps.memberDB.On("Update", ctx, target).Return(nil)
		deps.auditDB.On("Append", ctx, mock.Anything).Return(nil)
		deps.users.On("FindByIDs", ctx, mock.Anything).Return([]*model.User{}, nil)

		status := model.MembershipStatusSuspended
		out, err := domain.UpdateMember(ctx, org.ID, target.ID, adminID, &inbound.UpdateMemberInput{Status: &status})

		require.NoError(t, err)
		assert.Equal(t, model.MembershipStatusSuspended, out.Status)
	})

	t.Run("owner_is_immutable", func(t *testing.T) {
		domain, deps := setupDomain()
		ctx := context.Background()
		ownerID := uuid.New()
		adminID := uuid.New()
		org := newTestOrganization(ownerID)
		ownerMember := newTestMember(org.ID, ownerID, permission.RoleOwner)

		deps.orgDB.On("FindByID", ctx, org.ID).Return(org, nil)
		deps.memberDB.On("FindByID", ctx, org.ID, ownerMember.ID).Return(ownerMember, nil)
		deps.memberDB.On("FindActive", ctx, adminID, org.ID).Return(newTestMember(org.ID, adminID, permission.RoleAdmin), nil)

		role := permission.RoleMember
		_, err := domain.UpdateMember(ctx, org.ID, ownerMember.ID, adminID, &inbound.UpdateMemberInput{Role: &role})

		assert.Equal(t, ErrOwnerImmutable, err)
		deps.memberDB.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("cannot_promote_to_owner", func(t *testing.T) {
		domain, deps := setupDomain()
		ctx := context.Background()
		ownerID := uuid.New()
		org := newTestOrganization(ownerID)
		target := newTestMember(org.ID, uuid.New(), permission.RoleAdmin)

		deps.orgDB.On("FindByID", ctx, org.ID).Return(org, nil)
		deps.memberDB.On("FindByID", ctx, org.ID, target.ID).Return(target, nil)
		deps.memberDB.On("FindActive", ctx, ownerID, org.ID).Return(newTestMember(org.ID, ownerID, permission.RoleOwner), nil)

		role := permission.RoleOwner
		_, err := domain.UpdateMember(ctx, org.ID, target.ID, ownerID, &inbound.UpdateMemberInput{Role: &role})

		assert.Equal(t, ErrOwnerPromotion, err)
	})

	t.Run("pending_status_rejected", func(t *testing.T) {
		domain, deps := setupDomain()
		ctx := context.Background()
		ownerID := uuid.New()
		org := newTestOrganization(ownerID)
		target := newTestMember(org.ID, uuid.New(), permission.RoleMember)

		deps.orgDB.On("FindByID", ctx, org.ID).Return(org, nil)
		deps.memberDB.On("FindByID", ctx, org.ID, target.ID).Return(target, nil)
		deps.memberDB.On("FindActive", ctx, ownerID, org.ID).Return(newTestMember(org.ID, ownerID, permission.RoleOwner), nil)

		status := model.MembershipStatusPending
		_, err := domain.UpdateMember(ctx, org.ID, target.ID, ownerID, &inbound.UpdateMemberInput{Status: &status})

		assert.Equal(t, ErrInvalidMemberStatus, err)
	})

	t.Run("manager_cannot_manage", func(t *testing.T) {
		domain, deps := setupDomain()
		ctx := context.Background()
		managerID := uuid.New()
		org := newTestOrganization(uuid.New())
		target := newTestMember(org.ID, uuid.New(), permission.RoleMember)

		deps.orgDB.On("FindByID", ctx, org.ID).Return(org, nil)
		deps.memberDB.On("FindByID", ctx, org.ID, target.ID).Return(target, nil)
		deps.memberDB.On("FindActive", ctx, managerID, org.ID).Return(newTestMember(org.ID, managerID, permission.RoleManager), nil)

		role := permission.RoleViewer
		_, err := domain.UpdateMember(ctx, org.ID, target.ID, managerID, &inbound.UpdateMemberInput{Role: &role})

		assert.Equal(t, ErrManageForbidden, err)
	})

	t.Run("member_not_found", func(t *testing.T) {
		domain, deps := setupDomain()
		ctx := context.Background()
		org := newTestOrganization(uuid.New())
		memberID := uuid.New()

		deps.orgDB.On("FindByID", ctx, org.ID).Return(org, nil)
		deps.memberDB.On("FindByID", ctx, org.ID, memberID).Return(nil, outbound.ErrNotFound)

		_, err := domain.UpdateMember(ctx, org.ID, memberID, uuid.New(), &inbound.UpdateMemberInput{})

		assert.Equal(t, ErrMemberNotFound, err)
	})
}

func TestDomain_RemoveMember(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		domain, deps := setupDomain()
		ctx := context.Background()
		adminID := uuid.New()
		org := newTestOrganization(uuid.New())
		target := newTestMember(org.ID, uuid.New(), permission.RoleMember)

		deps.orgDB.On("FindByID", ctx, org.ID).Return(org, nil)
		deps.memberDB.On("FindByID", ctx, org.ID, target.ID).Return(target, nil)
		deps.memberDB.On("FindActive", ctx, adminID, org.ID).Return(newTestMember(org.ID, adminID, permission.RoleAdmin), nil)
		deps.memberDB.On("Delete", ctx, target.ID).Return(nil)
		deps.auditDB.On("Append", ctx, mock.MatchedBy(func(e *model.AuditEntry) bool {
			return e.Action == model.AuditActionMemberRemoved && e.Metadata["member_user_id"] == target.UserID.String()
		})).Return(nil)

		err := domain.RemoveMember(ctx, org.ID, target.ID, adminID)

		require.NoError(t, err)
		deps.memberDB.AssertExpectations(t)
		deps.auditDB.AssertExpectations(t)
	})

	t.Run("owner_cannot_be_removed", func(t *testing.T) {
		domain, deps := setupDomain()
		ctx := context.Background()
		ownerID := uuid.New()
		org := newTestOrganization(ownerID)
		ownerMember := newTestMember(org.ID, ownerID, permission.RoleOwner)

		deps.orgDB.On("FindByID", ctx, org.ID).Return(org, nil)
		deps.memberDB.On("FindByID", ctx, org.ID, ownerMember.ID).Return(ownerMember, nil)

		err := domain.RemoveMember(ctx, org.ID, ownerMember.ID, ownerID)

		assert.Equal(t, ErrOwnerImmutable, err)
		deps.memberDB.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("member_cannot_remove", func(t *testing.T) {
		domain, deps := setupDomain()
		ctx := context.Background()
		userID := uuid.New()
		org := newTestOrganization(uuid.New())
		target := newTestMember(org.ID, uuid.New(), permission.RoleViewer)

		deps.orgDB.On("FindByID", ctx, org.ID).Return(org, nil)
		deps.memberDB.On("FindByID", ctx, org.ID, target.ID).Return(target, nil)
		deps.memberDB.On("FindActive", ctx, userID, org.ID).Return(newTestMember(org.ID, userID, permission.RoleMember), nil)

		err := domain.RemoveMember(ctx, org.ID, target.ID, userID)

		assert.Equal(t, ErrRemoveForbidden, err)
	})
}
