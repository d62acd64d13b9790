package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orghub/server/internal/model"
	"github.com/orghub/server/internal/port/outbound"
)

// InvitationAdapter implements InvitationDatabasePort.
type InvitationAdapter struct {
	db *gorm.DB
}

// NewInvitationAdapter creates a new invitation adapter.
func NewInvitationAdapter(db *gorm.DB) *InvitationAdapter {
	return &InvitationAdapter{db: db}
}

func (a *InvitationAdapter) Create(ctx context.Context, inv *model.Invitation) error {
	return translateError(conn(ctx, a.db).Create(inv).Error)
}

func (a *InvitationAdapter) FindByID(ctx context.Context, id uuid.UUID) (*model.Invitation, error) {
	var inv model.Invitation
	if err := conn(ctx, a.db).Where("id = ?", id).First(&inv).Error; err != nil {
		return nil, translateError(err)
	}
	return &inv, nil
}

func (a *InvitationAdapter) FindPendingByToken(ctx context.Context, token string) (*model.Invitation, error) {
	var inv model.Invitation
	err := conn(ctx, a.db).
		Where("token = ? AND status = ?", token, model.InvitationStatusPending).
		First(&inv).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &inv, nil
}

func (a *InvitationAdapter) FindPendingByEmail(ctx context.Context, orgID uuid.UUID, email string) (*model.Invitation, error) {
	var inv model.Invitation
	err := conn(ctx, a.db).
		Where("organization_id = ? AND email = ? AND status = ?", orgID, model.NormalizeEmail(email), model.InvitationStatusPending).
		First(&inv).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &inv, nil
}

func (a *InvitationAdapter) ListByOrganization(ctx context.Context, orgID uuid.UUID, statuses ...model.InvitationStatus) ([]*model.Invitation, error) {
	query := conn(ctx, a.db).Where("organization_id = ?", orgID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	invitations := []*model.Invitation{}
	if err := query.Order("created_at DESC").Find(&invitations).Error; err != nil {
		return nil, translateError(err)
	}
	return invitations, nil
}

func (a *InvitationAdapter) CountPending(ctx context.Context, orgID uuid.UUID, now time.Time) (int64, error) {
	var count int64
	err := conn(ctx, a.db).
		Model(&model.Invitation{}).
		Where("organization_id = ? AND status = ? AND expires_at > ?", orgID, model.InvitationStatusPending, now).
		Count(&count).Error
	if err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

// Transition is a compare-and-set on status so concurrent accept, cancel and expire cannot both win.
func (a *InvitationAdapter) Transition(ctx context.Context, inv *model.Invitation, from model.InvitationStatus) error {
	res := conn(ctx, a.db).
		Model(&model.Invitation{}).
		Where("id = ? AND status = ?", inv.ID, from).
		Updates(map[string]any{
			"status":      inv.Status,
			"accepted_at": inv.AcceptedAt,
			"accepted_by": inv.AcceptedBy,
			"updated_at":  time.Now(),
		})
	return affected(res)
}

func (a *InvitationAdapter) DeleteByOrganization(ctx context.Context, orgID uuid.UUID) error {
	return translateError(conn(ctx, a.db).Where("organization_id = ?", orgID).Delete(&model.Invitation{}).Error)
}

var _ outbound.InvitationDatabasePort = (*InvitationAdapter)(nil)
