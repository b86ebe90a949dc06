package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
	"github.com/kingrain94/clinic-admin-api/internal/repository/memory"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
)

type ReceivableServiceTestSuite struct {
	suite.Suite
	repo     repository.Repository
	service  *ReceivableService
	scope    tenant.Scope
	patient  *domain.Patient
	stranger *domain.Patient
}

func (s *ReceivableServiceTestSuite) SetupTest() {
	ctx := context.Background()
	s.repo = memory.NewRepository()
	s.service = NewReceivableService(s.repo)
	s.scope = tenant.For("sub-a")

	patient, err := domain.PatientDraft{Name: "Maria Souza", CPF: "52998224725"}.Build()
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Patients().Create(ctx, s.scope, patient))
	s.patient = patient

	stranger, err := domain.PatientDraft{Name: "Joao Pereira", CPF: "11144477735"}.Build()
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Patients().Create(ctx, tenant.For("sub-b"), stranger))
	s.stranger = stranger
}

func TestReceivableService(t *testing.T) {
	suite.Run(t, new(ReceivableServiceTestSuite))
}

func (s *ReceivableServiceTestSuite) draft(patientID *string) domain.ReceivableDraft {
	return domain.ReceivableDraft{
		Description: "Tratamento de canal",
		Amount:      decimal.RequireFromString("450.00"),
		DueDate:     domain.NewDate(2030, time.March, 10),
		PatientID:   patientID,
	}
}

func (s *ReceivableServiceTestSuite) TestCreate_OwnPatient() {
	// Act
	r, err := s.service.Create(context.Background(), s.scope, s.draft(&s.patient.ID))

	// Assert
	s.Require().NoError(err)
	s.Equal(s.patient.ID, *r.PatientID)
	s.Equal("sub-a", r.SubscriberID)
}

func (s *ReceivableServiceTestSuite) TestCreate_WithoutPatient() {
	// Act
	r, err := s.service.Create(context.Background(), s.scope, s.draft(nil))

	// Assert
	s.Require().NoError(err)
	s.Nil(r.PatientID)
}

func (s *ReceivableServiceTestSuite) TestCreate_PatientOfAnotherTenant() {
	// Act
	r, err := s.service.Create(context.Background(), s.scope, s.draft(&s.stranger.ID))

	// Assert
	s.Nil(r)
	var de *domain.Error
	s.Require().ErrorAs(err, &de)
	s.Equal("patient not found", de.Fields["patient_id"])
}

func (s *ReceivableServiceTestSuite) TestCreate_OperatorCannotLinkForeignPatient() {
	// Arrange
	operator := tenant.Unrestricted("sub-ops", string(domain.RoleDirector))

	// Act
	_, err := s.service.Create(context.Background(), operator, s.draft(&s.stranger.ID))

	// Assert
	s.True(domain.IsValidation(err))
}

func (s *ReceivableServiceTestSuite) TestUpdate_PatientOfAnotherTenant() {
	// Arrange
	ctx := context.Background()
	r, err := s.service.Create(ctx, s.scope, s.draft(nil))
	s.Require().NoError(err)

	// Act
	_, err = s.service.Update(ctx, s.scope, r.ID, domain.ReceivablePatch{PatientID: &s.stranger.ID})

	// Assert
	s.True(domain.IsValidation(err))
	stored, getErr := s.repo.Receivables().GetByID(ctx, s.scope, r.ID)
	s.Require().NoError(getErr)
	s.Nil(stored.PatientID)
}

func (s *ReceivableServiceTestSuite) TestUpdate_OperatorLinksPatientOfTheReceivablesTenant() {
	// Arrange
	ctx := context.Background()
	r, err := s.service.Create(ctx, s.scope, s.draft(nil))
	s.Require().NoError(err)
	operator := tenant.Unrestricted("sub-ops", string(domain.RoleSuperAdmin))

	// Act
	updated, err := s.service.Update(ctx, operator, r.ID, domain.ReceivablePatch{PatientID: &s.patient.ID})

	// Assert
	s.Require().NoError(err)
	s.Equal(s.patient.ID, *updated.PatientID)
}

func (s *ReceivableServiceTestSuite) TestUpdate_OtherFieldsSkipThePatientCheck() {
	// Arrange
	ctx := context.Background()
	r, err := s.service.Create(ctx, s.scope, s.draft(&s.patient.ID))
	s.Require().NoError(err)
	notes := "Parcela 1 de 3"

	// Act
	updated, err := s.service.Update(ctx, s.scope, r.ID, domain.ReceivablePatch{Notes: &notes})

	// Assert
	s.Require().NoError(err)
	s.Equal(notes, updated.Notes)
	s.Equal(s.patient.ID, *updated.PatientID)
}
