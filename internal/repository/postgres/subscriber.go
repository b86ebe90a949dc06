package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
)

type SubscriberRepository struct {
	*CRUDRepository[domain.Subscriber, *domain.Subscriber]
}

func NewSubscriberRepository(writerDB, readerDB *gorm.DB) *SubscriberRepository {
	return &SubscriberRepository{
		CRUDRepository: NewCRUDRepository[domain.Subscriber](writerDB, readerDB),
	}
}

// CreateWithOwner inserts the subscriber and its owner in one transaction; a
// duplicate document or email rolls back both rows.
func (r *SubscriberRepository) CreateWithOwner(ctx context.Context, sub *domain.Subscriber, owner *domain.User) error {
	now := r.now()
	err := r.writerDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub.Stamp(uuid.New().String(), "", now)
		if err := tx.Create(sub).Error; err != nil {
			return err
		}
		owner.Stamp(uuid.New().String(), sub.ID, now)
		return tx.Create(owner).Error
	})
	return translateError("create subscriber with owner", err)
}
