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

type record[T any] interface {
	*T
	domain.Record
}

// CRUDRepository is the gorm implementation of repository.Store for one entity
// type. Reads go to the reader pool, writes and read-your-write lookups to the
// writer.
type CRUDRepository[T any, PT record[T]] struct {
	writerDB     *gorm.DB
	readerDB     *gorm.DB
	tenantScoped bool
	now          func() time.Time
}

func NewCRUDRepository[T any, PT record[T]](writerDB, readerDB *gorm.DB) *CRUDRepository[T, PT] {
	return &CRUDRepository[T, PT]{
		writerDB:     writerDB,
		readerDB:     readerDB,
		tenantScoped: PT(new(T)).TenantScoped(),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// activeQuery starts a query over the active rows visible in scope.
func (r *CRUDRepository[T, PT]) activeQuery(db *gorm.DB, scope tenant.Scope) (*gorm.DB, error) {
	db, err := scopeQuery(db.Model(new(T)), scope, r.tenantScoped)
	if err != nil {
		return nil, err
	}
	return db.Where("is_active = ?", true), nil
}

func (r *CRUDRepository[T, PT]) Create(ctx context.Context, scope tenant.Scope, entity *T) error {
	if r.tenantScoped && scope.TenantID() == "" {
		return errNoTenant
	}
	PT(entity).Stamp(uuid.New().String(), scope.TenantID(), r.now())
	return translateError("create", r.writerDB.WithContext(ctx).Create(entity).Error)
}

func (r *CRUDRepository[T, PT]) GetByID(ctx context.Context, scope tenant.Scope, id string) (*T, error) {
	return r.get(ctx, r.readerDB, scope, id, true)
}

func (r *CRUDRepository[T, PT]) FindByID(ctx context.Context, scope tenant.Scope, id string) (*T, error) {
	return r.get(ctx, r.readerDB, scope, id, false)
}

func (r *CRUDRepository[T, PT]) get(ctx context.Context, db *gorm.DB, scope tenant.Scope, id string, activeOnly bool) (*T, error) {
	if !validID(id) {
		return nil, domain.NewNotFoundError("resource")
	}
	q, err := scopeQuery(db.WithContext(ctx), scope, r.tenantScoped)
	if err != nil {
		return nil, err
	}
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var entity T
	if err := q.Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, translateError("get", err)
	}
	return &entity, nil
}

// Update never uses Save: Save upserts, and a row deleted between the load and
// the write would come back to life.
func (r *CRUDRepository[T, PT]) Update(ctx context.Context, scope tenant.Scope, id string, mutate func(*T) error) (*T, error) {
	entity, err := r.get(ctx, r.writerDB, scope, id, true)
	if err != nil {
		return nil, err
	}
	if err := mutate(entity); err != nil {
		return nil, err
	}
	PT(entity).Touch(r.now())

	q, err := r.activeQuery(r.writerDB.WithContext(ctx), scope)
	if err != nil {
		return nil, err
	}
	res := q.Where("id = ?", id).
		Select("*").
		Omit("id", "subscriber_id", "created_at", "is_active").
		Updates(entity)
	if res.Error != nil {
		return nil, translateError("update", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.NewNotFoundError("resource")
	}
	return entity, nil
}

func (r *CRUDRepository[T, PT]) Delete(ctx context.Context, scope tenant.Scope, id string) error {
	if !validID(id) {
		return domain.NewNotFoundError("resource")
	}
	q, err := r.activeQuery(r.writerDB.WithContext(ctx), scope)
	if err != nil {
		return err
	}
	res := q.Where("id = ?", id).Updates(map[string]any{"is_active": false, "updated_at": r.now()})
	if res.Error != nil {
		return translateError("delete", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}
	// Nothing flipped: either already inactive (idempotent) or not visible.
	_, err = r.get(ctx, r.writerDB, scope, id, false)
	return err
}

func (r *CRUDRepository[T, PT]) SetActive(ctx context.Context, scope tenant.Scope, id string, active bool) (*T, error) {
	if !validID(id) {
		return nil, domain.NewNotFoundError("resource")
	}
	q, err := scopeQuery(r.writerDB.WithContext(ctx).Model(new(T)), scope, r.tenantScoped)
	if err != nil {
		return nil, err
	}
	res := q.Where("id = ?", id).Updates(map[string]any{"is_active": active, "updated_at": r.now()})
	if res.Error != nil {
		return nil, translateError("set active", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.NewNotFoundError("resource")
	}
	return r.get(ctx, r.writerDB, scope, id, false)
}

func (r *CRUDRepository[T, PT]) List(ctx context.Context, scope tenant.Scope, query repository.Query) ([]T, int64, error) {
	base := func() (*gorm.DB, error) {
		q, err := r.activeQuery(r.readerDB.WithContext(ctx), scope)
		if err != nil {
			return nil, err
		}
		return applyFilters(q, query.Filters), nil
	}

	q, err := base()
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError("count", err)
	}

	q, _ = base()
	var items []T
	err = q.Order("created_at ASC").Order("id ASC").
		Offset(query.Page.Offset()).
		Limit(query.Page.Limit()).
		Find(&items).Error
	if err != nil {
		return nil, 0, translateError("list", err)
	}
	return items, total, nil
}

func (r *CRUDRepository[T, PT]) Count(ctx context.Context, scope tenant.Scope, filters ...repository.Filter) (int64, error) {
	q, err := r.activeQuery(r.readerDB.WithContext(ctx), scope)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := applyFilters(q, filters).Count(&n).Error; err != nil {
		return 0, translateError("count", err)
	}
	return n, nil
}

func (r *CRUDRepository[T, PT]) Sum(ctx context.Context, scope tenant.Scope, column string, filters ...repository.Filter) (decimal.Decimal, error) {
	q, err := r.activeQuery(r.readerDB.WithContext(ctx), scope)
	if err != nil {
		return decimal.Zero, err
	}
	return sumColumn(applyFilters(q, filters), column)
}

func sumColumn(q *gorm.DB, column string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := q.Select("COALESCE(SUM(?), 0)", clause.Column{Name: column}).Row().Scan(&total)
	if err != nil {
		return decimal.Zero, translateError("sum", err)
	}
	return total, nil
}
