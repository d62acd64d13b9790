package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orghub/server/internal/model"
	"github.com/orghub/server/internal/port/outbound"
)

// OrganizationAdapter implements OrganizationDatabasePort.
type OrganizationAdapter struct {
	db *gorm.DB
}

// NewOrganizationAdapter creates a new organization adapter.
func NewOrganizationAdapter(db *gorm.DB) *OrganizationAdapter {
	return &OrganizationAdapter{db: db}
}

func (a *OrganizationAdapter) Create(ctx context.Context, org *model.Organization) error {
	return translateError(conn(ctx, a.db).Create(org).Error)
}

func (a *OrganizationAdapter) FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	var org model.Organization
	if err := conn(ctx, a.db).Where("id = ?", id).First(&org).Error; err != nil {
		return nil, translateError(err)
	}
	return &org, nil
}

func (a *OrganizationAdapter) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Organization, error) {
	orgs := []*model.Organization{}
	if len(ids) == 0 {
		return orgs, nil
	}
	if err := conn(ctx, a.db).Where("id IN ?", ids).Find(&orgs).Error; err != nil {
		return nil, translateError(err)
	}
	return orgs, nil
}

func (a *OrganizationAdapter) ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	return a.exists(ctx, "name = ?", name, excludeID)
}

func (a *OrganizationAdapter) ExistsBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	return a.exists(ctx, "slug = ?", slug, excludeID)
}

func (a *OrganizationAdapter) exists(ctx context.Context, cond string, value string, excludeID uuid.UUID) (bool, error) {
	query := conn(ctx, a.db).Model(&model.Organization{}).Where(cond, value)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}

func (a *OrganizationAdapter) Update(ctx context.Context, org *model.Organization) error {
	res := conn(ctx, a.db).
		Model(org).
		Select("name", "slug", "description", "logo", "status", "settings", "subscription", "updated_at").
		Updates(org)
	return affected(res)
}

func (a *OrganizationAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(conn(ctx, a.db).Where("id = ?", id).Delete(&model.Organization{}))
}

var _ outbound.OrganizationDatabasePort = (*OrganizationAdapter)(nil)
