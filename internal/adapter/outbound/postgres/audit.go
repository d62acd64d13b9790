package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orghub/server/internal/model"
	"github.com/orghub/server/internal/port/outbound"
)

// AuditLogAdapter implements AuditLogDatabasePort.
type AuditLogAdapter struct {
	db *gorm.DB
}

// NewAuditLogAdapter creates a new audit log adapter.
func NewAuditLogAdapter(db *gorm.DB) *AuditLogAdapter {
	return &AuditLogAdapter{db: db}
}

func (a *AuditLogAdapter) Append(ctx context.Context, entry *model.AuditEntry) error {
	return translateError(conn(ctx, a.db).Create(entry).Error)
}

func (a *AuditLogAdapter) List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*model.AuditEntry, int64, error) {
	query := conn(ctx, a.db).
		Model(&model.AuditEntry{}).
		Where("organization_id = ?", orgID).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	entries := []*model.AuditEntry{}
	err := query.
		Order("timestamp ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, 0, translateError(err)
	}
	return entries, total, nil
}

func (a *AuditLogAdapter) DeleteByOrganization(ctx context.Context, orgID uuid.UUID) error {
	return translateError(conn(ctx, a.db).Where("organization_id = ?", orgID).Delete(&model.AuditEntry{}).Error)
}

var _ outbound.AuditLogDatabasePort = (*AuditLogAdapter)(nil)
