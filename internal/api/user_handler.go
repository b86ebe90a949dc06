package api

import (
	"context"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/service"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
	"github.com/kingrain94/clinic-admin-api/internal/utils"
)

// userResource adapts UserService to the collection routes. Every write
// depends on who asks, so the actor is read from the request context.
type userResource struct {
	*service.UserService
}

func actorFrom(ctx context.Context) (domain.Principal, error) {
	p, err := utils.GetPrincipalFromContext(ctx)
	if err != nil {
		return domain.Principal{}, domain.NewUnauthorizedError("not authenticated")
	}
	return p, nil
}

func (u userResource) Create(ctx context.Context, _ tenant.Scope, in service.NewUser) (*domain.User, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	return u.Register(ctx, actor, in)
}

func (u userResource) Update(ctx context.Context, _ tenant.Scope, id string, in service.UserChanges) (*domain.User, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	return u.Change(ctx, actor, id, in)
}

// Delete and the activation toggles are guarded like Update: an operator
// account is only touched by SUPER_ADMIN.
func (u userResource) Delete(ctx context.Context, _ tenant.Scope, id string) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	return u.Remove(ctx, actor, id)
}

func (u userResource) Activate(ctx context.Context, _ tenant.Scope, id string) (*domain.User, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	return u.Enable(ctx, actor, id)
}

func (u userResource) Deactivate(ctx context.Context, _ tenant.Scope, id string) (*domain.User, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	return u.Disable(ctx, actor, id)
}
