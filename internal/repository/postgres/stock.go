package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
)

type StockRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewStockRepository(writerDB, readerDB *gorm.DB) *StockRepository {
	return &StockRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

// ApplyMovement holds a row lock on the insumo for the whole read-modify-write,
// so two concurrent withdrawals cannot both pass the stock check.
func (r *StockRepository) ApplyMovement(ctx context.Context, scope tenant.Scope, insumoID string, m *domain.StockMovement) (*domain.Insumo, error) {
	if !validID(insumoID) {
		return nil, domain.NewNotFoundError("insumo")
	}
	var insumo domain.Insumo
	err := r.writerDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q, err := scopeQuery(tx, scope, true)
		if err != nil {
			return err
		}
		err = q.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND is_active = ?", insumoID, true).
			First(&insumo).Error
		if err != nil {
			return err
		}
		if err := insumo.ApplyMovement(m); err != nil {
			return err
		}

		now := time.Now().UTC()
		insumo.Touch(now)
		err = tx.Model(&insumo).Updates(map[string]any{
			"estoque_atual": insumo.EstoqueAtual,
			"updated_at":    insumo.UpdatedAt,
		}).Error
		if err != nil {
			return err
		}
		m.Stamp(uuid.New().String(), insumo.SubscriberID, now)
		return tx.Create(m).Error
	})
	if err != nil {
		return nil, translateError("apply stock movement", err)
	}
	return &insumo, nil
}

func (r *StockRepository) movements(db *gorm.DB, scope tenant.Scope) (*gorm.DB, error) {
	q, err := scopeQuery(db.Model(&domain.StockMovement{}), scope, true)
	if err != nil {
		return nil, err
	}
	return q.Where("is_active = ?", true), nil
}

func (r *StockRepository) ListMovements(ctx context.Context, scope tenant.Scope, insumoID string, page repository.Pagination) ([]domain.StockMovement, int64, error) {
	if !validID(insumoID) {
		return nil, 0, domain.NewNotFoundError("insumo")
	}
	q, err := r.movements(r.readerDB.WithContext(ctx), scope)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := q.Where("insumo_id = ?", insumoID).Count(&total).Error; err != nil {
		return nil, 0, translateError("count stock movements", err)
	}

	q, _ = r.movements(r.readerDB.WithContext(ctx), scope)
	var items []domain.StockMovement
	err = q.Where("insumo_id = ?", insumoID).
		Order("created_at ASC").Order("id ASC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&items).Error
	if err != nil {
		return nil, 0, translateError("list stock movements", err)
	}
	return items, total, nil
}

func (r *StockRepository) SumMovements(ctx context.Context, scope tenant.Scope, filters ...repository.Filter) (decimal.Decimal, error) {
	q, err := r.movements(r.readerDB.WithContext(ctx), scope)
	if err != nil {
		return decimal.Zero, err
	}
	return sumColumn(applyFilters(q, filters), "valor_total")
}
