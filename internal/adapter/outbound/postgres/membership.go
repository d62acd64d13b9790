package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orghub/server/internal/model"
	"github.com/orghub/server/internal/port/outbound"
)

// MembershipAdapter implements MembershipDatabasePort.
type MembershipAdapter struct {
	db *gorm.DB
}

// NewMembershipAdapter creates a new membership adapter.
func NewMembershipAdapter(db *gorm.DB) *MembershipAdapter {
	return &MembershipAdapter{db: db}
}

func (a *MembershipAdapter) Create(ctx context.Context, m *model.Membership) error {
	return translateError(conn(ctx, a.db).Create(m).Error)
}

func (a *MembershipAdapter) FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.Membership, error) {
	var m model.Membership
	err := conn(ctx, a.db).
		Where("id = ? AND organization_id = ?", id, orgID).
		First(&m).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &m, nil
}

func (a *MembershipAdapter) FindByUserAndOrganization(ctx context.Context, userID, orgID uuid.UUID) (*model.Membership, error) {
	var m model.Membership
	err := conn(ctx, a.db).
		Where("user_id = ? AND organization_id = ?", userID, orgID).
		First(&m).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &m, nil
}

func (a *MembershipAdapter) FindActive(ctx context.Context, userID, orgID uuid.UUID) (*model.Membership, error) {
	var m model.Membership
	err := conn(ctx, a.db).
		Where("user_id = ? AND organization_id = ? AND status = ?", userID, orgID, model.MembershipStatusActive).
		First(&m).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &m, nil
}

func (a *MembershipAdapter) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.Membership, error) {
	members := []*model.Membership{}
	err := conn(ctx, a.db).
		Where("organization_id = ?", orgID).
		Order("created_at DESC").
		Find(&members).Error
	if err != nil {
		return nil, translateError(err)
	}
	return members, nil
}

func (a *MembershipAdapter) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*model.Membership, error) {
	members := []*model.Membership{}
	err := conn(ctx, a.db).
		Where("user_id = ? AND status = ?", userID, model.MembershipStatusActive).
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, translateError(err)
	}
	return members, nil
}

func (a *MembershipAdapter) CountByStatus(ctx context.Context, orgID uuid.UUID, statuses ...model.MembershipStatus) (int64, error) {
	query := conn(ctx, a.db).Model(&model.Membership{}).Where("organization_id = ?", orgID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

func (a *MembershipAdapter) Update(ctx context.Context, m *model.Membership) error {
	res := conn(ctx, a.db).
		Model(m).
		Select("role", "status", "permissions", "last_access_at", "updated_at").
		Updates(m)
	return affected(res)
}

func (a *MembershipAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(conn(ctx, a.db).Where("id = ?", id).Delete(&model.Membership{}))
}

func (a *MembershipAdapter) DeleteByOrganization(ctx context.Context, orgID uuid.UUID) error {
	return translateError(conn(ctx, a.db).Where("organization_id = ?", orgID).Delete(&model.Membership{}).Error)
}

var _ outbound.MembershipDatabasePort = (*MembershipAdapter)(nil)
