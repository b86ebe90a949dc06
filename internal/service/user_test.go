package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
	"github.com/kingrain94/clinic-admin-api/internal/repository/memory"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
)

type UserServiceTestSuite struct {
	suite.Suite
	repo     repository.Repository
	service  *UserService
	owner    domain.Principal
	admin    domain.Principal
	director domain.Principal
}

func (s *UserServiceTestSuite) SetupTest() {
	s.repo = memory.NewRepository()
	s.service = NewUserService(s.repo)
	s.service.hashCost = bcrypt.MinCost
	s.owner = domain.Principal{UserID: "owner-1", TenantID: "sub-a", Role: domain.RoleOwner}
	s.admin = domain.Principal{UserID: "admin-1", TenantID: "sub-a", Role: domain.RoleSuperAdmin}
	s.director = domain.Principal{UserID: "director-1", TenantID: "sub-a", Role: domain.RoleDirector}
}

func (s *UserServiceTestSuite) newSubscriber(documento string) *domain.Subscriber {
	sub, err := domain.SubscriberDraft{Nome: "Clinica Nova", Documento: documento}.Build()
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Subscribers().Create(context.Background(), tenant.Scope{}, sub))
	return sub
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) TestRegister_DefaultsToCollaborator() {
	// Act
	u, err := s.service.Register(context.Background(), s.owner, NewUser{
		Name:     "Carlos Assistente",
		Email:    "carlos@sorriso.com.br",
		Password: "senha-segura",
	})

	// Assert
	s.Require().NoError(err)
	s.Equal(domain.RoleCollaborator, u.Role)
	s.Equal("sub-a", u.SubscriberID)
	s.NotEqual("senha-segura", u.PasswordHash)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("senha-segura")))
}

func (s *UserServiceTestSuite) TestRegister_OnlySuperAdminGrantsElevatedRoles() {
	// Arrange
	in := NewUser{Name: "Diana Diretora", Email: "diana@plataforma.com", Password: "senha-segura", Role: domain.RoleDirector}

	// Act
	_, ownerErr := s.service.Register(context.Background(), s.owner, in)
	created, adminErr := s.service.Register(context.Background(), s.admin, in)

	// Assert
	s.Equal(domain.KindForbidden, domain.KindOf(ownerErr))
	s.Require().NoError(adminErr)
	s.Equal(domain.RoleDirector, created.Role)
}

func (s *UserServiceTestSuite) TestRegister_PasswordLength() {
	// Act
	_, short := s.service.Register(context.Background(), s.owner, NewUser{Name: "Carlos", Email: "c@x.com", Password: "curta"})
	_, long := s.service.Register(context.Background(), s.owner, NewUser{Name: "Carlos", Email: "c@x.com", Password: strings.Repeat("a", 73)})

	// Assert
	s.True(domain.IsValidation(short))
	s.True(domain.IsValidation(long))
}

func (s *UserServiceTestSuite) TestRegister_DuplicateEmail() {
	// Arrange
	in := NewUser{Name: "Carlos Assistente", Email: "carlos@sorriso.com.br", Password: "senha-segura"}
	_, err := s.service.Register(context.Background(), s.owner, in)
	s.Require().NoError(err)

	// Act
	_, err = s.service.Register(context.Background(), s.owner, in)

	// Assert
	s.Equal(domain.KindConflict, domain.KindOf(err))
}

func (s *UserServiceTestSuite) TestChange_OwnerCannotEditOperatorAccount() {
	// Arrange
	ctx := context.Background()
	director, err := s.service.Register(ctx, s.admin, NewUser{
		Name: "Diana Diretora", Email: "diana@plataforma.com", Password: "senha-segura", Role: domain.RoleDirector,
	})
	s.Require().NoError(err)
	name := "Outro Nome"

	// Act
	_, err = s.service.Change(ctx, s.owner, director.ID, UserChanges{Name: &name})

	// Assert
	s.Equal(domain.KindForbidden, domain.KindOf(err))
}

func (s *UserServiceTestSuite) TestChange_PasswordIsRehashed() {
	// Arrange
	ctx := context.Background()
	u, err := s.service.Register(ctx, s.owner, NewUser{Name: "Carlos Assistente", Email: "carlos@sorriso.com.br", Password: "senha-segura"})
	s.Require().NoError(err)
	next := "nova-senha-123"

	// Act
	changed, err := s.service.Change(ctx, s.owner, u.ID, UserChanges{Password: &next})

	// Assert
	s.Require().NoError(err)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(changed.PasswordHash), []byte(next)))
}

func (s *UserServiceTestSuite) TestChange_PromotionRequiresSuperAdmin() {
	// Arrange
	ctx := context.Background()
	u, err := s.service.Register(ctx, s.owner, NewUser{Name: "Carlos Assistente", Email: "carlos@sorriso.com.br", Password: "senha-segura"})
	s.Require().NoError(err)
	role := domain.RoleSuperAdmin

	// Act
	_, err = s.service.Change(ctx, s.owner, u.ID, UserChanges{Role: &role})

	// Assert
	s.Equal(domain.KindForbidden, domain.KindOf(err))
}

func (s *UserServiceTestSuite) TestRegister_OperatorNamesTheSubscriber() {
	// Arrange
	sub := s.newSubscriber("11222333000181")

	// Act
	u, err := s.service.Register(context.Background(), s.admin, NewUser{
		SubscriberID: sub.ID,
		Name:         "Joana Prado",
		Email:        "joana@nova.com.br",
		Password:     "senha-segura",
		Role:         domain.RoleOwner,
	})

	// Assert
	s.Require().NoError(err)
	s.Equal(sub.ID, u.SubscriberID)
	s.Equal(domain.RoleOwner, u.Role)
}

func (s *UserServiceTestSuite) TestRegister_OwnerCannotNameAnotherSubscriber() {
	// Arrange
	sub := s.newSubscriber("11222333000181")

	// Act
	_, err := s.service.Register(context.Background(), s.owner, NewUser{
		SubscriberID: sub.ID,
		Name:         "Intruso",
		Email:        "intruso@x.com",
		Password:     "senha-segura",
	})

	// Assert
	s.Equal(domain.KindForbidden, domain.KindOf(err))
}

func (s *UserServiceTestSuite) TestRegister_UnknownSubscriber() {
	// Act
	_, err := s.service.Register(context.Background(), s.admin, NewUser{
		SubscriberID: "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		Name:         "Joana Prado",
		Email:        "joana@nova.com.br",
		Password:     "senha-segura",
	})

	// Assert
	var de *domain.Error
	s.Require().ErrorAs(err, &de)
	s.Equal("subscriber not found", de.Fields["subscriber_id"])
}

func (s *UserServiceTestSuite) TestLifecycle_DirectorCannotTouchSuperAdmin() {
	// Arrange
	ctx := context.Background()
	root, err := s.service.Register(ctx, s.admin, NewUser{
		Name: "Raiz", Email: "raiz@plataforma.com", Password: "senha-segura", Role: domain.RoleSuperAdmin,
	})
	s.Require().NoError(err)

	// Act
	deleteErr := s.service.Remove(ctx, s.director, root.ID)
	_, deactivateErr := s.service.Disable(ctx, s.director, root.ID)
	_, activateErr := s.service.Enable(ctx, s.director, root.ID)

	// Assert
	s.Equal(domain.KindForbidden, domain.KindOf(deleteErr))
	s.Equal(domain.KindForbidden, domain.KindOf(deactivateErr))
	s.Equal(domain.KindForbidden, domain.KindOf(activateErr))
	still, err := s.service.Get(ctx, s.admin.Scope(), root.ID)
	s.Require().NoError(err)
	s.True(still.IsActive)
}

func (s *UserServiceTestSuite) TestLifecycle_OwnerManagesCollaborators() {
	// Arrange
	ctx := context.Background()
	u, err := s.service.Register(ctx, s.owner, NewUser{Name: "Carlos Assistente", Email: "carlos@sorriso.com.br", Password: "senha-segura"})
	s.Require().NoError(err)

	// Act
	disabled, disableErr := s.service.Disable(ctx, s.owner, u.ID)
	enabled, enableErr := s.service.Enable(ctx, s.owner, u.ID)
	removeErr := s.service.Remove(ctx, s.owner, u.ID)

	// Assert
	s.Require().NoError(disableErr)
	s.False(disabled.IsActive)
	s.Require().NoError(enableErr)
	s.True(enabled.IsActive)
	s.NoError(removeErr)
}

func (s *UserServiceTestSuite) TestLifecycle_MissingUser() {
	// Act
	err := s.service.Remove(context.Background(), s.owner, "missing")

	// Assert
	s.True(domain.IsNotFound(err))
}
