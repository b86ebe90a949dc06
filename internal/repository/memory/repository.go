package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
)

type memoryRepository struct {
	users         *UserStore
	segments      *Store[domain.Segment, *domain.Segment]
	modules       *Store[domain.Module, *domain.Module]
	plans         *Store[domain.Plan, *domain.Plan]
	planModules   *Store[domain.PlanModule, *domain.PlanModule]
	subscribers   *SubscriberStore
	patients      *Store[domain.Patient, *domain.Patient]
	anamneses     *Store[domain.Anamnesis, *domain.Anamnesis]
	appointments  *Store[domain.Appointment, *domain.Appointment]
	clinicalCosts *Store[domain.ClinicalCost, *domain.ClinicalCost]
	fixedCosts    *Store[domain.FixedCost, *domain.FixedCost]
	variableCosts *Store[domain.VariableCost, *domain.VariableCost]
	insumos       *Store[domain.Insumo, *domain.Insumo]
	stock         *StockStore
	payables      *Store[domain.Payable, *domain.Payable]
	receivables   *Store[domain.Receivable, *domain.Receivable]
}

// NewRepository returns an empty store set with the same uniqueness rules as
// the postgres schema.
func NewRepository() repository.Repository {
	insumos := NewStore[domain.Insumo]()
	users := &UserStore{Store: NewStore(func(u *domain.User) string { return u.Email })}
	return &memoryRepository{
		users: users,
		segments: NewStore(func(s *domain.Segment) string {
			return strings.ToLower(s.Nome)
		}),
		modules: NewStore(func(m *domain.Module) string { return m.Codigo }),
		plans:   NewStore[domain.Plan](),
		planModules: NewStore(func(pm *domain.PlanModule) string {
			return pm.PlanID + "/" + pm.ModuleID
		}),
		subscribers: &SubscriberStore{
			Store: NewStore(func(s *domain.Subscriber) string { return s.Documento }),
			users: users,
		},
		patients: NewStore(func(p *domain.Patient) string {
			if !p.IsActive {
				return ""
			}
			return p.SubscriberID + "/" + p.CPF
		}),
		anamneses:     NewStore[domain.Anamnesis](),
		appointments:  NewStore[domain.Appointment](),
		clinicalCosts: NewStore[domain.ClinicalCost](),
		fixedCosts:    NewStore[domain.FixedCost](),
		variableCosts: NewStore[domain.VariableCost](),
		insumos:       insumos,
		stock:         &StockStore{insumos: insumos, movements: NewStore[domain.StockMovement]()},
		payables:      NewStore[domain.Payable](),
		receivables:   NewStore[domain.Receivable](),
	}
}

func (m *memoryRepository) Users() repository.UserRepository { return m.users }

func (m *memoryRepository) Segments() repository.Store[domain.Segment] { return m.segments }

func (m *memoryRepository) Modules() repository.Store[domain.Module] { return m.modules }

func (m *memoryRepository) Plans() repository.Store[domain.Plan] { return m.plans }

func (m *memoryRepository) PlanModules() repository.Store[domain.PlanModule] { return m.planModules }

func (m *memoryRepository) Subscribers() repository.SubscriberRepository { return m.subscribers }

func (m *memoryRepository) Patients() repository.Store[domain.Patient] { return m.patients }

func (m *memoryRepository) Anamneses() repository.Store[domain.Anamnesis] { return m.anamneses }

func (m *memoryRepository) Appointments() repository.Store[domain.Appointment] {
	return m.appointments
}

func (m *memoryRepository) ClinicalCosts() repository.Store[domain.ClinicalCost] {
	return m.clinicalCosts
}

func (m *memoryRepository) FixedCosts() repository.Store[domain.FixedCost] { return m.fixedCosts }

func (m *memoryRepository) VariableCosts() repository.Store[domain.VariableCost] {
	return m.variableCosts
}

func (m *memoryRepository) Insumos() repository.Store[domain.Insumo] { return m.insumos }

func (m *memoryRepository) Stock() repository.StockRepository { return m.stock }

func (m *memoryRepository) Payables() repository.Store[domain.Payable] { return m.payables }

func (m *memoryRepository) Receivables() repository.Store[domain.Receivable] {
	return m.receivables
}

type UserStore struct {
	*Store[domain.User, *domain.User]
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, ok := s.find(func(u *domain.User) bool { return u.IsActive && u.Email == email })
	if !ok {
		return nil, domain.NewNotFoundError("user")
	}
	return u, nil
}

func (s *UserStore) RecordLogin(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.rows[id]
	if !ok {
		return domain.NewNotFoundError("user")
	}
	now := s.now()
	u.LastLoginAt = &now
	s.rows[id] = u
	return nil
}

type SubscriberStore struct {
	*Store[domain.Subscriber, *domain.Subscriber]
	users *UserStore
}

// CreateWithOwner holds both store locks so neither row becomes visible
// without the other.
func (s *SubscriberStore) CreateWithOwner(_ context.Context, sub *domain.Subscriber, owner *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users.mu.Lock()
	defer s.users.mu.Unlock()

	sub.Stamp(uuid.New().String(), "", s.now())
	owner.Stamp(uuid.New().String(), sub.ID, s.users.now())
	if s.conflicts(sub) || s.users.conflicts(owner) {
		return domain.NewConflictError("resource already exists", nil)
	}
	s.rows[sub.ID] = *sub
	s.users.rows[owner.ID] = *owner
	return nil
}

// StockStore serializes movements so the stock check and the ledger append
// happen as one step.
type StockStore struct {
	mu        sync.Mutex
	insumos   *Store[domain.Insumo, *domain.Insumo]
	movements *Store[domain.StockMovement, *domain.StockMovement]
}

func (s *StockStore) ApplyMovement(ctx context.Context, scope tenant.Scope, insumoID string, m *domain.StockMovement) (*domain.Insumo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	insumo, err := s.insumos.Update(ctx, scope, insumoID, func(i *domain.Insumo) error {
		return i.ApplyMovement(m)
	})
	if err != nil {
		return nil, err
	}
	if err := s.movements.insert(insumo.SubscriberID, m); err != nil {
		return nil, err
	}
	return insumo, nil
}

func (s *StockStore) ListMovements(ctx context.Context, scope tenant.Scope, insumoID string, page repository.Pagination) ([]domain.StockMovement, int64, error) {
	return s.movements.List(ctx, scope, repository.Query{
		Page:    page,
		Filters: []repository.Filter{repository.Eq("insumo_id", insumoID)},
	})
}

func (s *StockStore) SumMovements(ctx context.Context, scope tenant.Scope, filters ...repository.Filter) (decimal.Decimal, error) {
	return s.movements.Sum(ctx, scope, "valor_total", filters...)
}

// SetClock pins the time source of every store; tests use it to make
// timestamps deterministic.
func SetClock(repo repository.Repository, now func() time.Time) {
	m, ok := repo.(*memoryRepository)
	if !ok {
		return
	}
	m.users.now = now
	m.segments.now = now
	m.modules.now = now
	m.plans.now = now
	m.planModules.now = now
	m.subscribers.now = now
	m.patients.now = now
	m.anamneses.now = now
	m.appointments.now = now
	m.clinicalCosts.now = now
	m.fixedCosts.now = now
	m.variableCosts.now = now
	m.insumos.now = now
	m.stock.movements.now = now
	m.payables.now = now
	m.receivables.now = now
}
