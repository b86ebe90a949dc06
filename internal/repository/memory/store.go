// Package memory is an in-process implementation of the repository contracts.
// It backs APP_STORAGE=memory and the service and API tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
)

var errNoTenant = domain.NewForbiddenError("a subscriber is required for this operation")

type record[T any] interface {
	*T
	domain.Record
}

// Store keeps rows by value so callers never share memory with the store.
type Store[T any, PT record[T]] struct {
	mu           sync.RWMutex
	rows         map[string]T
	tenantScoped bool
	// unique keys must not repeat across rows; an empty key is never checked
	unique       []func(*T) string
	now          func() time.Time
}

func NewStore[T any, PT record[T]](unique ...func(*T) string) *Store[T, PT] {
	return &Store[T, PT]{
		rows:         make(map[string]T),
		tenantScoped: PT(new(T)).TenantScoped(),
		unique:       unique,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store[T, PT]) check(scope tenant.Scope) error {
	if s.tenantScoped && !scope.IsUnrestricted() && scope.TenantID() == "" {
		return errNoTenant
	}
	return nil
}

func (s *Store[T, PT]) visible(scope tenant.Scope, row *T) bool {
	return !s.tenantScoped || scope.Allows(PT(row).Tenant())
}

// conflicts must be called with the lock held.
func (s *Store[T, PT]) conflicts(candidate *T) bool {
	id := PT(candidate).GetID()
	for _, key := range s.unique {
		want := key(candidate)
		if want == "" {
			continue
		}
		for rowID, row := range s.rows {
			if rowID != id && key(&row) == want {
				return true
			}
		}
	}
	return false
}

func (s *Store[T, PT]) Create(_ context.Context, scope tenant.Scope, entity *T) error {
	if s.tenantScoped && scope.TenantID() == "" {
		return errNoTenant
	}
	return s.insert(scope.TenantID(), entity)
}

// insert stamps and stores entity for tenantID without consulting a scope.
func (s *Store[T, PT]) insert(tenantID string, entity *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	PT(entity).Stamp(uuid.New().String(), tenantID, s.now())
	if s.conflicts(entity) {
		return domain.NewConflictError("resource already exists", nil)
	}
	s.rows[PT(entity).GetID()] = *entity
	return nil
}

func (s *Store[T, PT]) lookup(scope tenant.Scope, id string, activeOnly bool) (T, error) {
	var zero T
	if err := s.check(scope); err != nil {
		return zero, err
	}
	row, ok := s.rows[id]
	if !ok || !s.visible(scope, &row) || (activeOnly && !PT(&row).Active()) {
		return zero, domain.NewNotFoundError("resource")
	}
	return row, nil
}

func (s *Store[T, PT]) GetByID(_ context.Context, scope tenant.Scope, id string) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, err := s.lookup(scope, id, true)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Store[T, PT]) FindByID(_ context.Context, scope tenant.Scope, id string) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, err := s.lookup(scope, id, false)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Store[T, PT]) Update(_ context.Context, scope tenant.Scope, id string, mutate func(*T) error) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, err := s.lookup(scope, id, true)
	if err != nil {
		return nil, err
	}
	orig := PT(&row)
	origID, origTenant, origCreated := orig.GetID(), orig.Tenant(), orig.Created()
	if err := mutate(&row); err != nil {
		return nil, err
	}
	// identity, ownership and creation time are not writable through Update
	PT(&row).Stamp(origID, origTenant, origCreated)
	PT(&row).Touch(s.now())
	if s.conflicts(&row) {
		return nil, domain.NewConflictError("resource already exists", nil)
	}
	s.rows[id] = row
	return &row, nil
}

func (s *Store[T, PT]) Delete(_ context.Context, scope tenant.Scope, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, err := s.lookup(scope, id, false)
	if err != nil {
		return err
	}
	if PT(&row).Active() {
		PT(&row).SetActive(false, s.now())
		s.rows[id] = row
	}
	return nil
}

func (s *Store[T, PT]) SetActive(_ context.Context, scope tenant.Scope, id string, active bool) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, err := s.lookup(scope, id, false)
	if err != nil {
		return nil, err
	}
	PT(&row).SetActive(active, s.now())
	s.rows[id] = row
	return &row, nil
}

// matching returns the visible active rows passing filters, ordered by
// creation time then id. Caller holds the lock.
func (s *Store[T, PT]) matching(scope tenant.Scope, filters []repository.Filter) ([]T, error) {
	if err := s.check(scope); err != nil {
		return nil, err
	}
	out := make([]T, 0, len(s.rows))
	for _, row := range s.rows {
		if !PT(&row).Active() || !s.visible(scope, &row) {
			continue
		}
		if matches(&row, filters) {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ci, cj := PT(&out[i]).Created(), PT(&out[j]).Created()
		if !ci.Equal(cj) {
			return ci.Before(cj)
		}
		return PT(&out[i]).GetID() < PT(&out[j]).GetID()
	})
	return out, nil
}

func (s *Store[T, PT]) List(_ context.Context, scope tenant.Scope, query repository.Query) ([]T, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.matching(scope, query.Filters)
	if err != nil {
		return nil, 0, err
	}
	return paginate(rows, query.Page), int64(len(rows)), nil
}

func (s *Store[T, PT]) Count(_ context.Context, scope tenant.Scope, filters ...repository.Filter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.matching(scope, filters)
	if err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}

func (s *Store[T, PT]) Sum(_ context.Context, scope tenant.Scope, column string, filters ...repository.Filter) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.matching(scope, filters)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for i := range rows {
		total = total.Add(numeric(&rows[i], column))
	}
	return total, nil
}

// find returns the first row satisfying pred, ignoring tenant scope.
func (s *Store[T, PT]) find(pred func(*T) bool) (*T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, row := range s.rows {
		if pred(&row) {
			return &row, true
		}
	}
	return nil, false
}

func paginate[T any](rows []T, p repository.Pagination) []T {
	offset, limit := p.Offset(), p.Limit()
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}
