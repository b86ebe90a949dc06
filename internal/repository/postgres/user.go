package postgres

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
)

type UserRepository struct {
	*CRUDRepository[domain.User, *domain.User]
}

func NewUserRepository(writerDB, readerDB *gorm.DB) *UserRepository {
	return &UserRepository{
		CRUDRepository: NewCRUDRepository[domain.User](writerDB, readerDB),
	}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.readerDB.WithContext(ctx).
		Where("email = ? AND is_active = ?", strings.ToLower(strings.TrimSpace(email)), true).
		First(&user).Error
	if err != nil {
		return nil, translateError("get user by email", err)
	}
	return &user, nil
}

func (r *UserRepository) RecordLogin(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.NewNotFoundError("user")
	}
	err := r.writerDB.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", time.Now().UTC()).Error
	return translateError("record login", err)
}
