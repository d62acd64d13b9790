// Package invitation implements acceptance, cancellation and lookup of organization invitations.
package invitation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orghub/server/internal/domain/permission"
	"github.com/orghub/server/internal/model"
	"github.com/orghub/server/internal/port/inbound"
	"github.com/orghub/server/internal/port/outbound"
)

// Domain implements inbound.InvitationDomain.
type Domain struct {
	invitationDB outbound.InvitationDatabasePort
	memberDB     outbound.MembershipDatabasePort
	orgDB        outbound.OrganizationDatabasePort
	users        outbound.UserDirectoryPort
	notifier     outbound.NotificationPort
	txPort       outbound.TransactionPort
	logger       *zap.Logger
	now          func() time.Time
}

// NewDomain creates a new invitation domain.
func NewDomain(
	invitationDB outbound.InvitationDatabasePort,
	memberDB outbound.MembershipDatabasePort,
	orgDB outbound.OrganizationDatabasePort,
	users outbound.UserDirectoryPort,
	notifier outbound.NotificationPort,
	txPort outbound.TransactionPort,
	logger *zap.Logger,
) *Domain {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Domain{
		invitationDB: invitationDB,
		memberDB:     memberDB,
		orgDB:        orgDB,
		users:        users,
		notifier:     notifier,
		txPort:       txPort,
		logger:       logger,
		now:          time.Now,
	}
}

// AcceptInvitation turns a pending invitation into an active membership for userID.
func (d *Domain) AcceptInvitation(ctx context.Context, token string, userID uuid.UUID) (*inbound.MemberOutput, error) {
	inv, err := d.getPending(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := d.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if model.NormalizeEmail(user.Email) != inv.Email {
		return nil, ErrEmailMismatch
	}

	_, err = d.memberDB.FindByUserAndOrganization(ctx, userID, inv.OrganizationID)
	if err == nil {
		return nil, ErrAlreadyMember
	}
	if !errors.Is(err, outbound.ErrNotFound) {
		return nil, fmt.Errorf("check membership: %w", err)
	}

	now := d.now()
	invitedAt := inv.CreatedAt
	invitedBy := inv.InvitedBy
	member := &model.Membership{
		ID:             uuid.New(),
		UserID:         userID,
		OrganizationID: inv.OrganizationID,
		Status:         model.MembershipStatusActive,
		InvitedBy:      &invitedBy,
		InvitedAt:      &invitedAt,
		JoinedAt:       &now,
		LastAccessAt:   &now,
	}
	member.AssignRole(inv.Role)

	inv.Status = model.InvitationStatusAccepted
	inv.AcceptedAt = &now
	inv.AcceptedBy = &userID

	err = d.txPort.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := d.memberDB.Create(txCtx, member); err != nil {
			if errors.Is(err, outbound.ErrDuplicate) {
				return ErrAlreadyMember
			}
			return fmt.Errorf("create membership: %w", err)
		}
		if err := d.invitationDB.Transition(txCtx, inv, model.InvitationStatusPending); err != nil {
			if errors.Is(err, outbound.ErrNotFound) {
				return ErrInvitationNotFound
			}
			return fmt.Errorf("accept invitation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	d.logger.Info("invitation accepted",
		zap.String("invitation_id", inv.ID.String()),
		zap.String("organization_id", inv.OrganizationID.String()),
		zap.String("user_id", userID.String()),
		zap.String("role", inv.Role.String()),
	)

	d.sendWelcome(ctx, user, inv.OrganizationID)

	users := map[uuid.UUID]*model.User{user.ID: user}
	if inviter, err := d.users.FindByID(ctx, inv.InvitedBy); err == nil && inviter != nil {
		users[inviter.ID] = inviter
	}
	return inbound.NewMemberOutput(member, users), nil
}

// CancelInvitation cancels a pending invitation. Only the inviter or an owner or admin may do this.
func (d *Domain) CancelInvitation(ctx context.Context, invitationID, userID uuid.UUID) error {
	inv, err := d.invitationDB.FindByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return ErrInvitationNotFound
		}
		return fmt.Errorf("get invitation: %w", err)
	}

	if inv.InvitedBy != userID {
		allowed, err := d.canCancel(ctx, userID, inv.OrganizationID)
		if err != nil {
			return err
		}
		if !allowed {
			return ErrCancelNotAllowed
		}
	}

	if !inv.IsPending() {
		return ErrInvitationNotPending
	}

	inv.Status = model.InvitationStatusCancelled
	if err := d.invitationDB.Transition(ctx, inv, model.InvitationStatusPending); err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return ErrInvitationNotPending
		}
		return fmt.Errorf("cancel invitation: %w", err)
	}

	d.logger.Info("invitation cancelled",
		zap.String("invitation_id", inv.ID.String()),
		zap.String("organization_id", inv.OrganizationID.String()),
		zap.String("user_id", userID.String()),
	)

	return nil
}

// GetInvitationByToken returns a pending invitation with its organization and inviter.
func (d *Domain) GetInvitationByToken(ctx context.Context, token string) (*inbound.InvitationOutput, error) {
	inv, err := d.getPending(ctx, token)
	if err != nil {
		return nil, err
	}

	org, err := d.orgDB.FindByID(ctx, inv.OrganizationID)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}

	users, err := d.loadUsers(ctx, []uuid.UUID{inv.InvitedBy})
	if err != nil {
		return nil, err
	}
	return inbound.NewInvitationOutput(inv, org, users), nil
}

// GetOrganizationInvitations lists pending and accepted invitations, newest first.
// Pending invitations found past their deadline are expired and left out.
func (d *Domain) GetOrganizationInvitations(ctx context.Context, orgID, userID uuid.UUID) ([]*inbound.InvitationOutput, error) {
	org, err := d.orgDB.FindByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	if _, err := d.memberDB.FindActive(ctx, userID, org.ID); err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, ErrAccessDenied
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}

	invitations, err := d.invitationDB.ListByOrganization(ctx, org.ID, model.InvitationStatusPending, model.InvitationStatusAccepted)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}

	now := d.now()
	visible := make([]*model.Invitation, 0, len(invitations))
	inviterIDs := make([]uuid.UUID, 0, len(invitations))
	for _, inv := range invitations {
		if inv.IsPending() && inv.IsExpiredAt(now) {
			if err := d.expire(ctx, inv); err != nil {
				return nil, err
			}
			continue
		}
		visible = append(visible, inv)
		inviterIDs = append(inviterIDs, inv.InvitedBy)
	}

	users, err := d.loadUsers(ctx, inviterIDs)
	if err != nil {
		return nil, err
	}

	outputs := make([]*inbound.InvitationOutput, len(visible))
	for i, inv := range visible {
		outputs[i] = inbound.NewInvitationOutput(inv, org, users)
	}
	return outputs, nil
}

// --- Helpers ---

// getPending resolves a pending invitation by token, expiring it if its deadline has passed.
func (d *Domain) getPending(ctx context.Context, token string) (*model.Invitation, error) {
	if token == "" {
		return nil, ErrInvitationNotFound
	}
	inv, err := d.invitationDB.FindPendingByToken(ctx, token)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	if inv.IsExpiredAt(d.now()) {
		if err := d.expire(ctx, inv); err != nil {
			return nil, err
		}
		return nil, ErrInvitationExpired
	}
	return inv, nil
}

// expire moves a pending invitation to expired. Losing the race to another transition is fine.
func (d *Domain) expire(ctx context.Context, inv *model.Invitation) error {
	inv.Status = model.InvitationStatusExpired
	if err := d.invitationDB.Transition(ctx, inv, model.InvitationStatusPending); err != nil && !errors.Is(err, outbound.ErrNotFound) {
		return fmt.Errorf("expire invitation: %w", err)
	}
	d.logger.Debug("invitation expired",
		zap.String("invitation_id", inv.ID.String()),
		zap.Time("expires_at", inv.ExpiresAt),
	)
	return nil
}

func (d *Domain) canCancel(ctx context.Context, userID, orgID uuid.UUID) (bool, error) {
	m, err := d.memberDB.FindActive(ctx, userID, orgID)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get membership: %w", err)
	}
	return m.Role == permission.RoleOwner || m.Role == permission.RoleAdmin, nil
}

func (d *Domain) sendWelcome(ctx context.Context, user *model.User, orgID uuid.UUID) {
	org, err := d.orgDB.FindByID(ctx, orgID)
	if err != nil {
		d.logger.Warn("failed to load organization for welcome email",
			zap.String("organization_id", orgID.String()),
			zap.Error(err),
		)
		return
	}
	if err := d.notifier.SendWelcome(ctx, user.Email, user.Name, org.Name); err != nil {
		d.logger.Warn("failed to send welcome email",
			zap.String("user_id", user.ID.String()),
			zap.String("organization_id", orgID.String()),
			zap.Error(err),
		)
	}
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

// Compile-time interface check
var _ inbound.InvitationDomain = (*Domain)(nil)
