package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/mocks"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
)

type ResourceTestSuite struct {
	suite.Suite
	store    *mocks.Store[domain.Patient]
	resource *Resource[domain.Patient, domain.PatientDraft, domain.PatientPatch]
	scope    tenant.Scope
}

func (s *ResourceTestSuite) SetupTest() {
	s.store = new(mocks.Store[domain.Patient])
	s.resource = NewResource[domain.Patient, domain.PatientDraft, domain.PatientPatch](s.store)
	s.scope = tenant.For("sub-1")
}

func TestResource(t *testing.T) {
	suite.Run(t, new(ResourceTestSuite))
}

func (s *ResourceTestSuite) TestCreate_Success() {
	// Arrange
	ctx := context.Background()
	s.store.On("Create", ctx, s.scope, mock.AnythingOfType("*domain.Patient")).Return(nil)

	// Act
	patient, err := s.resource.Create(ctx, s.scope, domain.PatientDraft{Name: "Maria Souza", CPF: "529.982.247-25"})

	// Assert
	s.NoError(err)
	s.Equal("52998224725", patient.CPF)
	s.store.AssertExpectations(s.T())
}

func (s *ResourceTestSuite) TestCreate_InvalidDraftNeverReachesStore() {
	// Arrange
	ctx := context.Background()

	// Act
	patient, err := s.resource.Create(ctx, s.scope, domain.PatientDraft{Name: "Ma", CPF: "123"})

	// Assert
	s.Nil(patient)
	s.True(domain.IsValidation(err))
	s.store.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ResourceTestSuite) TestUpdate_AppliesPatch() {
	// Arrange
	ctx := context.Background()
	existing := &domain.Patient{Name: "Maria Souza", CPF: "52998224725"}
	name := "Maria Souza Lima"
	s.store.On("Update", ctx, s.scope, "p-1", mock.Anything).
		Return(func(_ context.Context, _ tenant.Scope, _ string, mutate func(*domain.Patient) error) (*domain.Patient, error) {
			if err := mutate(existing); err != nil {
				return nil, err
			}
			return existing, nil
		})

	// Act
	patient, err := s.resource.Update(ctx, s.scope, "p-1", domain.PatientPatch{Name: &name})

	// Assert
	s.NoError(err)
	s.Equal(name, patient.Name)
	s.Equal("52998224725", patient.CPF)
}

func (s *ResourceTestSuite) TestUpdate_InvalidPatchLeavesEntity() {
	// Arrange
	ctx := context.Background()
	existing := &domain.Patient{Name: "Maria Souza", CPF: "52998224725"}
	bad := "12345678900"
	s.store.On("Update", ctx, s.scope, "p-1", mock.Anything).
		Return(func(_ context.Context, _ tenant.Scope, _ string, mutate func(*domain.Patient) error) (*domain.Patient, error) {
			if err := mutate(existing); err != nil {
				return nil, err
			}
			return existing, nil
		})

	// Act
	_, err := s.resource.Update(ctx, s.scope, "p-1", domain.PatientPatch{CPF: &bad})

	// Assert
	s.True(domain.IsValidation(err))
	s.Equal("52998224725", existing.CPF)
}

func (s *ResourceTestSuite) TestGet_NotFound() {
	// Arrange
	ctx := context.Background()
	s.store.On("GetByID", ctx, s.scope, "missing").Return(nil, domain.NewNotFoundError("patient"))

	// Act
	patient, err := s.resource.Get(ctx, s.scope, "missing")

	// Assert
	s.Nil(patient)
	s.True(domain.IsNotFound(err))
	s.store.AssertExpectations(s.T())
}

func (s *ResourceTestSuite) TestDeactivateAndActivate() {
	// Arrange
	ctx := context.Background()
	inactive := &domain.Patient{Name: "Maria Souza"}
	active := &domain.Patient{Name: "Maria Souza"}
	active.IsActive = true
	s.store.On("SetActive", ctx, s.scope, "p-1", false).Return(inactive, nil).Once()
	s.store.On("SetActive", ctx, s.scope, "p-1", true).Return(active, nil).Once()

	// Act
	off, errOff := s.resource.Deactivate(ctx, s.scope, "p-1")
	on, errOn := s.resource.Activate(ctx, s.scope, "p-1")

	// Assert
	s.NoError(errOff)
	s.NoError(errOn)
	s.False(off.IsActive)
	s.True(on.IsActive)
	s.store.AssertExpectations(s.T())
}

func (s *ResourceTestSuite) TestAudit_UsesFindByID() {
	// Arrange
	ctx := context.Background()
	s.store.On("FindByID", ctx, s.scope, "p-1").Return(&domain.Patient{Name: "Maria Souza"}, nil)

	// Act
	patient, err := s.resource.Audit(ctx, s.scope, "p-1")

	// Assert
	s.NoError(err)
	s.Equal("Maria Souza", patient.Name)
	s.store.AssertNotCalled(s.T(), "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ResourceTestSuite) TestList_BuildsPage() {
	// Arrange
	ctx := context.Background()
	query := repository.Query{Page: repository.NewPagination(2, 2)}
	rows := []domain.Patient{{Name: "Ana Lima"}, {Name: "Bruno Reis"}}
	s.store.On("List", ctx, s.scope, query).Return(rows, int64(5), nil)

	// Act
	page, err := s.resource.List(ctx, s.scope, query)

	// Assert
	s.NoError(err)
	s.Len(page.Items, 2)
	s.Equal(int64(5), page.Total)
	s.Equal(2, page.Page)
	s.Equal(2, page.Size)
}

func (s *ResourceTestSuite) TestDelete_PassesThrough() {
	// Arrange
	ctx := context.Background()
	s.store.On("Delete", ctx, s.scope, "p-1").Return(nil)

	// Act
	err := s.resource.Delete(ctx, s.scope, "p-1")

	// Assert
	s.NoError(err)
	s.store.AssertExpectations(s.T())
}
