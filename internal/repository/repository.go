package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
)

// Store is the tenant-scoped persistence contract shared by every entity.
// Lookups that miss, including rows outside the scope, return a
// domain.KindNotFound error.
//
//go:generate mockery --name Store --output ../mocks
type Store[T any] interface {
	Create(ctx context.Context, scope tenant.Scope, entity *T) error
	// GetByID returns the row only if it is active and inside scope.
	GetByID(ctx context.Context, scope tenant.Scope, id string) (*T, error)
	// FindByID is the audit lookup: like GetByID but inactive rows are included.
	FindByID(ctx context.Context, scope tenant.Scope, id string) (*T, error)
	// Update loads the active row, applies mutate and persists the result.
	Update(ctx context.Context, scope tenant.Scope, id string, mutate func(*T) error) (*T, error)
	// Delete soft deletes. Deleting an already inactive row is a no-op.
	Delete(ctx context.Context, scope tenant.Scope, id string) error
	SetActive(ctx context.Context, scope tenant.Scope, id string, active bool) (*T, error)
	List(ctx context.Context, scope tenant.Scope, query Query) ([]T, int64, error)
	Count(ctx context.Context, scope tenant.Scope, filters ...Filter) (int64, error)
	// Sum adds up a numeric column over the active rows matching filters.
	Sum(ctx context.Context, scope tenant.Scope, column string, filters ...Filter) (decimal.Decimal, error)
}

type UserRepository interface {
	Store[domain.User]
	// GetByEmail is unscoped: login happens before a tenant is known.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	RecordLogin(ctx context.Context, id string) error
}

// SubscriberRepository adds the onboarding write, which must never leave a
// subscriber without its first user.
type SubscriberRepository interface {
	Store[domain.Subscriber]
	// CreateWithOwner stores sub and owner in one step. owner is stamped with
	// the id given to sub.
	CreateWithOwner(ctx context.Context, sub *domain.Subscriber, owner *domain.User) error
}

type StockRepository interface {
	// ApplyMovement locks the insumo, applies m and stores both atomically.
	ApplyMovement(ctx context.Context, scope tenant.Scope, insumoID string, m *domain.StockMovement) (*domain.Insumo, error)
	ListMovements(ctx context.Context, scope tenant.Scope, insumoID string, page Pagination) ([]domain.StockMovement, int64, error)
	SumMovements(ctx context.Context, scope tenant.Scope, filters ...Filter) (decimal.Decimal, error)
}

// Repository groups every store behind one injectable value.
type Repository interface {
	Users() UserRepository
	Segments() Store[domain.Segment]
	Modules() Store[domain.Module]
	Plans() Store[domain.Plan]
	PlanModules() Store[domain.PlanModule]
	Subscribers() SubscriberRepository
	Patients() Store[domain.Patient]
	Anamneses() Store[domain.Anamnesis]
	Appointments() Store[domain.Appointment]
	ClinicalCosts() Store[domain.ClinicalCost]
	FixedCosts() Store[domain.FixedCost]
	VariableCosts() Store[domain.VariableCost]
	Insumos() Store[domain.Insumo]
	Stock() StockRepository
	Payables() Store[domain.Payable]
	Receivables() Store[domain.Receivable]
}
