package service

import (
	"context"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
)

const minPasswordLength = 8

// NewUser is the create input; the password arrives in clear text.
// SubscriberID places the user in another tenant and is reserved to operators.
type NewUser struct {
	SubscriberID string
	Name         string
	Email        string
	Password     string
	Role         domain.Role
	Permissions  []string
}

// NewOwner is the first account of a subscriber being onboarded.
type NewOwner struct {
	Name     string
	Email    string
	Password string
}

type UserChanges struct {
	Name        *string
	Email       *string
	Password    *string
	Role        *domain.Role
	Permissions *[]string
}

type UserService struct {
	*Resource[domain.User, domain.UserDraft, domain.UserPatch]
	subscribers repository.Store[domain.Subscriber]
	hashCost    int
}

func NewUserService(repo repository.Repository) *UserService {
	return &UserService{
		Resource:    NewResource[domain.User, domain.UserDraft, domain.UserPatch](repo.Users()),
		subscribers: repo.Subscribers(),
		hashCost:    bcrypt.DefaultCost,
	}
}

// checkGrant enforces that only SUPER_ADMIN hands out the operator roles.
func checkGrant(actor domain.Principal, role domain.Role) error {
	if role.Elevated() && actor.Role != domain.RoleSuperAdmin {
		return domain.NewForbiddenError("only SUPER_ADMIN may grant the " + string(role) + " role")
	}
	return nil
}

func (s *UserService) hash(password string) (string, error) {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return "", domain.FieldError("password", "must have at least 8 characters")
	}
	// bcrypt ignores everything past 72 bytes
	if len(password) > 72 {
		return "", domain.FieldError("password", "must have at most 72 bytes")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", domain.NewInfrastructureError("hash password", err)
	}
	return string(h), nil
}

// targetScope resolves the tenant a new user is stamped with. Only operators
// may name a subscriber other than their own, and it must exist.
func (s *UserService) targetScope(ctx context.Context, actor domain.Principal, subscriberID string) (tenant.Scope, error) {
	if subscriberID == "" || subscriberID == actor.TenantID {
		return actor.Scope(), nil
	}
	if !actor.Role.Elevated() {
		return tenant.Scope{}, domain.NewForbiddenError("users can only be created in your own subscriber")
	}
	if err := exists(ctx, actor.Scope(), s.subscribers, subscriberID); err != nil {
		if domain.IsNotFound(err) {
			return tenant.Scope{}, domain.FieldError("subscriber_id", "subscriber not found")
		}
		return tenant.Scope{}, err
	}
	return tenant.For(subscriberID), nil
}

// Register creates a user inside the actor's tenant, or inside
// in.SubscriberID when an operator names one.
func (s *UserService) Register(ctx context.Context, actor domain.Principal, in NewUser) (*domain.User, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleCollaborator
	}
	if err := checkGrant(actor, role); err != nil {
		return nil, err
	}
	scope, err := s.targetScope(ctx, actor, in.SubscriberID)
	if err != nil {
		return nil, err
	}
	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}
	return s.Resource.Create(ctx, scope, domain.UserDraft{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		Permissions:  in.Permissions,
	})
}

func (s *UserService) Change(ctx context.Context, actor domain.Principal, id string, in UserChanges) (*domain.User, error) {
	patch := domain.UserPatch{
		Name:        in.Name,
		Email:       in.Email,
		Role:        in.Role,
		Permissions: in.Permissions,
	}
	if in.Role != nil {
		if err := checkGrant(actor, *in.Role); err != nil {
			return nil, err
		}
	}
	if in.Password != nil {
		hash, err := s.hash(*in.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}
	return s.store.Update(ctx, actor.Scope(), id, func(u *domain.User) error {
		// an operator account can only be edited by SUPER_ADMIN
		if err := checkGrant(actor, u.Role); err != nil {
			return err
		}
		return patch.Apply(u)
	})
}

// owner builds the unsaved DONO_ASSINANTE account for a new subscriber. The
// repository stamps its tenant when the subscriber row is written.
func (s *UserService) owner(in NewOwner) (*domain.User, error) {
	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}
	return domain.UserDraft{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         domain.RoleOwner,
	}.Build()
}

// guarded loads the target, inactive rows included, and refuses when the
// actor could not have granted its role.
func (s *UserService) guarded(ctx context.Context, actor domain.Principal, id string) error {
	u, err := s.store.FindByID(ctx, actor.Scope(), id)
	if err != nil {
		return err
	}
	return checkGrant(actor, u.Role)
}

func (s *UserService) Remove(ctx context.Context, actor domain.Principal, id string) error {
	if err := s.guarded(ctx, actor, id); err != nil {
		return err
	}
	return s.Resource.Delete(ctx, actor.Scope(), id)
}

func (s *UserService) Enable(ctx context.Context, actor domain.Principal, id string) (*domain.User, error) {
	if err := s.guarded(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.Resource.Activate(ctx, actor.Scope(), id)
}

func (s *UserService) Disable(ctx context.Context, actor domain.Principal, id string) (*domain.User, error) {
	if err := s.guarded(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.Resource.Deactivate(ctx, actor.Scope(), id)
}
