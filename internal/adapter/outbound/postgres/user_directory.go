package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orghub/server/internal/model"
	"github.com/orghub/server/internal/port/outbound"
)

// UserDirectoryAdapter implements UserDirectoryPort over the shared users table.
type UserDirectoryAdapter struct {
	db *gorm.DB
}

// NewUserDirectoryAdapter creates a new user directory adapter.
func NewUserDirectoryAdapter(db *gorm.DB) *UserDirectoryAdapter {
	return &UserDirectoryAdapter{db: db}
}

func (a *UserDirectoryAdapter) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := conn(ctx, a.db).
		Where("LOWER(email) = ?", model.NormalizeEmail(email)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (a *UserDirectoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := conn(ctx, a.db).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (a *UserDirectoryAdapter) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.User, error) {
	users := []*model.User{}
	if len(ids) == 0 {
		return users, nil
	}
	if err := conn(ctx, a.db).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

var _ outbound.UserDirectoryPort = (*UserDirectoryAdapter)(nil)
