package service

import (
	"context"

	"github.com/kingrain94/clinic-admin-api/internal/repository"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
)

// Draft builds a validated entity for Create.
type Draft[T any] interface {
	Build() (*T, error)
}

// Patch applies a partial update; fields left nil stay unchanged.
type Patch[T any] interface {
	Apply(*T) error
}

// Resource is the CRUD use case shared by every entity. Entity services embed
// it and add their own behavior on top.
type Resource[T any, D Draft[T], P Patch[T]] struct {
	store repository.Store[T]
}

func NewResource[T any, D Draft[T], P Patch[T]](store repository.Store[T]) *Resource[T, D, P] {
	return &Resource[T, D, P]{store: store}
}

func (r *Resource[T, D, P]) Create(ctx context.Context, scope tenant.Scope, draft D) (*T, error) {
	entity, err := draft.Build()
	if err != nil {
		return nil, err
	}
	if err := r.store.Create(ctx, scope, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *Resource[T, D, P]) Get(ctx context.Context, scope tenant.Scope, id string) (*T, error) {
	return r.store.GetByID(ctx, scope, id)
}

// Audit returns the row even when it has been deactivated.
func (r *Resource[T, D, P]) Audit(ctx context.Context, scope tenant.Scope, id string) (*T, error) {
	return r.store.FindByID(ctx, scope, id)
}

func (r *Resource[T, D, P]) Update(ctx context.Context, scope tenant.Scope, id string, patch P) (*T, error) {
	return r.store.Update(ctx, scope, id, patch.Apply)
}

func (r *Resource[T, D, P]) Delete(ctx context.Context, scope tenant.Scope, id string) error {
	return r.store.Delete(ctx, scope, id)
}

func (r *Resource[T, D, P]) Activate(ctx context.Context, scope tenant.Scope, id string) (*T, error) {
	return r.store.SetActive(ctx, scope, id, true)
}

func (r *Resource[T, D, P]) Deactivate(ctx context.Context, scope tenant.Scope, id string) (*T, error) {
	return r.store.SetActive(ctx, scope, id, false)
}

func (r *Resource[T, D, P]) List(ctx context.Context, scope tenant.Scope, query repository.Query) (*repository.Page[T], error) {
	items, total, err := r.store.List(ctx, scope, query)
	if err != nil {
		return nil, err
	}
	return repository.NewPage(items, total, query.Page), nil
}
