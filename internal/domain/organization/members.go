package organization

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orghub/server/internal/domain/permission"
	"github.com/orghub/server/internal/model"
	"github.com/orghub/server/internal/port/inbound"
	"github.com/orghub/server/internal/port/outbound"
	"github.com/orghub/server/internal/utils/random"
)

const unknownInviterName = "A teammate"

// GetMembers lists the members of an organization, ordered by role then newest first.
func (d *Domain) GetMembers(ctx context.Context, id, userID uuid.UUID) ([]*inbound.MemberOutput, error) {
	org, err := d.getOrganization(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := d.requireActiveMember(ctx, userID, org.ID); err != nil {
		return nil, err
	}

	members, err := d.memberDB.ListByOrganization(ctx, org.ID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	sortMembers(members)

	users, err := d.loadUsers(ctx, memberUserIDs(members))
	if err != nil {
		return nil, err
	}

	outputs := make([]*inbound.MemberOutput, len(members))
	for i, m := range members {
		outputs[i] = inbound.NewMemberOutput(m, users)
	}
	return outputs, nil
}

// InviteMember creates a pending invitation and emails it to the invitee.
func (d *Domain) InviteMember(ctx context.Context, id, userID uuid.UUID, input *inbound.InviteMemberInput) (*inbound.InviteMemberOutput, error) {
	org, err := d.getOrganization(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := d.requireCapability(ctx, userID, org.ID, permission.MembersInvite, ErrInviteForbidden); err != nil {
		return nil, err
	}

	role, ok := permission.ParseRole(input.Role.String())
	if !ok || !role.Assignable() {
		return nil, ErrInvalidRole
	}
	email := model.NormalizeEmail(input.Email)

	invitee, err := d.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup invitee: %w", err)
	}
	if invitee != nil {
		_, err := d.memberDB.FindByUserAndOrganization(ctx, invitee.ID, org.ID)
		if err == nil {
			return nil, ErrAlreadyMember
		}
		if !errors.Is(err, outbound.ErrNotFound) {
			return nil, fmt.Errorf("check membership: %w", err)
		}
	}

	now := time.Now()
	if err := d.checkPendingInvitation(ctx, org.ID, email, now); err != nil {
		return nil, err
	}
	if err := d.checkMemberLimit(ctx, org, now); err != nil {
		return nil, err
	}

	token, err := random.URLToken(d.cfg.InvitationTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	inv := &model.Invitation{
		ID:             uuid.New(),
		Email:          email,
		OrganizationID: org.ID,
		Role:           role,
		Status:         model.InvitationStatusPending,
		InvitedBy:      userID,
		Token:          token,
		ExpiresAt:      now.Add(d.cfg.InvitationExpiry),
		Message:        input.Message,
	}

	err = d.txPort.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := d.invitationDB.Create(txCtx, inv); err != nil {
			if errors.Is(err, outbound.ErrDuplicate) {
				return ErrInvitationPending
			}
			return fmt.Errorf("create invitation: %w", err)
		}
		return d.appendAudit(txCtx, org.ID, model.AuditActionMemberInvited, userID, map[string]any{
			"invitation_id": inv.ID.String(),
			"email":         email,
			"role":          role.String(),
		})
	})
	if err != nil {
		return nil, err
	}

	emailSent := d.sendInvitation(ctx, org, userID, inv)

	d.logger.Info("member invited",
		zap.String("organization_id", org.ID.String()),
		zap.String("invitation_id", inv.ID.String()),
		zap.String("role", role.String()),
		zap.Bool("email_sent", emailSent),
	)

	return &inbound.InviteMemberOutput{
		InvitationID:    inv.ID,
		Email:           inv.Email,
		Role:            inv.Role,
		InvitationToken: inv.Token,
		ExpiresAt:       inv.ExpiresAt,
		EmailSent:       emailSent,
	}, nil
}

// UpdateMember changes a member's role or status. The owner membership is immutable.
func (d *Domain) UpdateMember(ctx context.Context, orgID, memberID, userID uuid.UUID, input *inbound.UpdateMemberInput) (*inbound.MemberOutput, error) {
	org, err := d.getOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	member, err := d.getMember(ctx, org.ID, memberID)
	if err != nil {
		return nil, err
	}
	if _, err := d.requireCapability(ctx, userID, org.ID, permission.MembersManage, ErrManageForbidden); err != nil {
		return nil, err
	}
	if member.IsOwner() {
		return nil, ErrOwnerImmutable
	}

	changes := map[string]any{}

	if input.Role != nil {
		role, ok := permission.ParseRole(input.Role.String())
		if role == permission.RoleOwner {
			return nil, ErrOwnerPromotion
		}
		if !ok {
			return nil, ErrInvalidRole
		}
		if role != member.Role {
			member.AssignRole(role)
			changes["role"] = role.String()
		}
	}

	if input.Status != nil {
		status := *input.Status
		if !status.IsValid() || status == model.MembershipStatusPending {
			return nil, ErrInvalidMemberStatus
		}
		if status != member.Status {
			member.Status = status
			changes["status"] = string(status)
		}
	}

	err = d.txPort.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := d.memberDB.Update(txCtx, member); err != nil {
			if errors.Is(err, outbound.ErrNotFound) {
				return ErrMemberNotFound
			}
			return fmt.Errorf("update member: %w", err)
		}
		return d.appendAudit(txCtx, org.ID, model.AuditActionMemberUpdated, userID, map[string]any{
			"member_id":      member.ID.String(),
			"member_user_id": member.UserID.String(),
			"changes":        changes,
		})
	})
	if err != nil {
		return nil, err
	}

	d.logger.Info("member updated",
		zap.String("organization_id", org.ID.String()),
		zap.String("member_id", member.ID.String()),
		zap.String("role", member.Role.String()),
		zap.String("status", string(member.Status)),
	)

	users, err := d.loadUsers(ctx, memberUserIDs([]*model.Membership{member}))
	if err != nil {
		return nil, err
	}
	return inbound.NewMemberOutput(member, users), nil
}

// RemoveMember deletes a membership. The owner membership cannot be removed.
func (d *Domain) RemoveMember(ctx context.Context, orgID, memberID, userID uuid.UUID) error {
	org, err := d.getOrganization(ctx, orgID)
	if err != nil {
		return err
	}
	member, err := d.getMember(ctx, org.ID, memberID)
	if err != nil {
		return err
	}
	if member.IsOwner() {
		return ErrOwnerImmutable
	}
	if _, err := d.requireCapability(ctx, userID, org.ID, permission.MembersRemove, ErrRemoveForbidden); err != nil {
		return err
	}

	err = d.txPort.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := d.memberDB.Delete(txCtx, member.ID); err != nil {
			if errors.Is(err, outbound.ErrNotFound) {
				return ErrMemberNotFound
			}
			return fmt.Errorf("delete member: %w", err)
		}
		return d.appendAudit(txCtx, org.ID, model.AuditActionMemberRemoved, userID, map[string]any{
			"member_id":      member.ID.String(),
			"member_user_id": member.UserID.String(),
		})
	})
	if err != nil {
		return err
	}

	d.logger.Info("member removed",
		zap.String("organization_id", org.ID.String()),
		zap.String("member_id", member.ID.String()),
		zap.String("user_id", userID.String()),
	)

	return nil
}

// --- Helpers ---

func (d *Domain) getMember(ctx context.Context, orgID, memberID uuid.UUID) (*model.Membership, error) {
	m, err := d.memberDB.FindByID(ctx, orgID, memberID)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	return m, nil
}

// checkPendingInvitation rejects a second pending invitation. A pending one past its
// deadline is expired on the spot and does not block.
func (d *Domain) checkPendingInvitation(ctx context.Context, orgID uuid.UUID, email string, now time.Time) error {
	existing, err := d.invitationDB.FindPendingByEmail(ctx, orgID, email)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("check pending invitation: %w", err)
	}
	if !existing.IsExpiredAt(now) {
		return ErrInvitationPending
	}

	existing.Status = model.InvitationStatusExpired
	if err := d.invitationDB.Transition(ctx, existing, model.InvitationStatusPending); err != nil && !errors.Is(err, outbound.ErrNotFound) {
		return fmt.Errorf("expire invitation: %w", err)
	}
	return nil
}

// checkMemberLimit counts active and pending members plus outstanding invitations against maxUsers.
func (d *Domain) checkMemberLimit(ctx context.Context, org *model.Organization, now time.Time) error {
	members, err := d.memberDB.CountByStatus(ctx, org.ID, model.MembershipStatusActive, model.MembershipStatusPending)
	if err != nil {
		return fmt.Errorf("count members: %w", err)
	}
	pending, err := d.invitationDB.CountPending(ctx, org.ID, now)
	if err != nil {
		return fmt.Errorf("count invitations: %w", err)
	}
	if members+pending >= int64(org.Settings.Data().Limits.MaxUsers) {
		return ErrMemberLimitExceeded
	}
	return nil
}

// sendInvitation delivers the invitation email. Failures are logged and reported as false.
func (d *Domain) sendInvitation(ctx context.Context, org *model.Organization, inviterID uuid.UUID, inv *model.Invitation) bool {
	inviterName := unknownInviterName
	inviter, err := d.users.FindByID(ctx, inviterID)
	if err != nil {
		d.logger.Warn("failed to resolve inviter name",
			zap.String("inviter_id", inviterID.String()),
			zap.Error(err),
		)
	} else if inviter != nil && inviter.Name != "" {
		inviterName = inviter.Name
	}

	if err := d.notifier.SendInvitation(ctx, inv.Email, org.Name, inviterName, inv.Token, inv.Message); err != nil {
		d.logger.Warn("failed to send invitation email, invitation created",
			zap.String("invitation_id", inv.ID.String()),
			zap.String("email", inv.Email),
			zap.Error(err),
		)
		return false
	}
	return true
}

func (d *Domain) loadUsers(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*model.User, error) {
	users := make(map[uuid.UUID]*model.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	found, err := d.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	for _, u := range found {
		users[u.ID] = u
	}
	return users, nil
}

func memberUserIDs(members []*model.Membership) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(members))
	ids := make([]uuid.UUID, 0, len(members))
	add := func(id uuid.UUID) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, m := range members {
		add(m.UserID)
		if m.InvitedBy != nil {
			add(*m.InvitedBy)
		}
	}
	return ids
}

// sortMembers orders by role rank, then newest first, then id for stability.
func sortMembers(members []*model.Membership) {
	sort.SliceStable(members, func(i, j int) bool {
		a, b := members[i], members[j]
		if ra, rb := a.Role.Rank(), b.Role.Rank(); ra != rb {
			return ra < rb
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})
}
