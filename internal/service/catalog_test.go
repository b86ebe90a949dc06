package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
	"github.com/kingrain94/clinic-admin-api/internal/repository/memory"
	"github.com/kingrain94/clinic-admin-api/internal/service/session"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
)

type SubscriberServiceTestSuite struct {
	suite.Suite
	repo     repository.Repository
	service  *SubscriberService
	catalog  *Catalog
	operator tenant.Scope
	segment  *domain.Segment
	public   *domain.Plan
	private  *domain.Plan
}

func (s *SubscriberServiceTestSuite) SetupTest() {
	ctx := context.Background()
	s.repo = memory.NewRepository()
	users := NewUserService(s.repo)
	users.hashCost = bcrypt.MinCost
	s.service = NewSubscriberService(s.repo, users)
	s.catalog = NewCatalog(s.repo)
	s.operator = tenant.Unrestricted("", string(domain.RoleSuperAdmin))

	seg, err := domain.SegmentDraft{Nome: "Odontologia"}.Build()
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Segments().Create(ctx, s.operator, seg))
	s.segment = seg

	s.public = s.plan("Clinica Pro", true)
	s.private = s.plan("Rede Parceira", false)
}

func TestSubscriberService(t *testing.T) {
	suite.Run(t, new(SubscriberServiceTestSuite))
}

func (s *SubscriberServiceTestSuite) plan(nome string, publico bool) *domain.Plan {
	p, err := domain.PlanDraft{Nome: nome, Preco: decimal.RequireFromString("299.90"), Publico: publico}.Build()
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Plans().Create(context.Background(), s.operator, p))
	return p
}

func (s *SubscriberServiceTestSuite) signup(planID string) NewSubscriber {
	segmentID := s.segment.ID
	return NewSubscriber{
		Subscriber: domain.SubscriberDraft{
			Nome:      "Clinica Sorriso",
			Documento: "11222333000181",
			Email:     "contato@sorriso.com.br",
			SegmentID: &segmentID,
			PlanID:    &planID,
		},
		Owner: &NewOwner{Name: "Joana Prado", Email: "joana@sorriso.com.br", Password: "s3nh4-f0rte"},
	}
}

func (s *SubscriberServiceTestSuite) TestCreate_WithOwner() {
	// Arrange
	ctx := context.Background()
	auth := NewAuthService(s.repo, NewTokenManager("test-secret", 15*time.Minute, time.Hour), session.NewMemoryStore())

	// Act
	sub, err := s.service.Create(ctx, s.operator, s.signup(s.public.ID))

	// Assert
	s.Require().NoError(err)
	owner, err := s.repo.Users().GetByEmail(ctx, "joana@sorriso.com.br")
	s.Require().NoError(err)
	s.Equal(sub.ID, owner.SubscriberID)
	s.Equal(domain.RoleOwner, owner.Role)
	login, err := auth.Login(ctx, "joana@sorriso.com.br", "s3nh4-f0rte")
	s.Require().NoError(err)
	s.Equal(sub.ID, login.Principal.TenantID)
	s.Equal(s.segment.ID, login.Principal.SegmentID)
}

func (s *SubscriberServiceTestSuite) TestCreate_WithoutOwner() {
	// Arrange
	in := s.signup(s.public.ID)
	in.Owner = nil

	// Act
	sub, err := s.service.Create(context.Background(), s.operator, in)

	// Assert
	s.Require().NoError(err)
	s.Equal(domain.SubscriberPending, sub.Status)
	s.Equal(int64(0), s.countUsers())
}

func (s *SubscriberServiceTestSuite) TestCreate_InvalidOwnerIsReportedUnderOwner() {
	// Arrange
	in := s.signup(s.public.ID)
	in.Owner.Password = "curta"
	in.Subscriber.Documento = "123"

	// Act
	_, err := s.service.Create(context.Background(), s.operator, in)

	// Assert
	var de *domain.Error
	s.Require().ErrorAs(err, &de)
	s.Contains(de.Fields, "owner.password")
	s.Contains(de.Fields, "documento")
	s.Equal(int64(0), s.countSubscribers())
}

func (s *SubscriberServiceTestSuite) TestCreate_TakenOwnerEmailWritesNothing() {
	// Arrange
	ctx := context.Background()
	_, err := s.service.Create(ctx, s.operator, s.signup(s.public.ID))
	s.Require().NoError(err)
	again := s.signup(s.public.ID)
	again.Subscriber.Documento = "11444777000161"

	// Act
	_, err = s.service.Create(ctx, s.operator, again)

	// Assert
	s.Equal(domain.KindConflict, domain.KindOf(err))
	s.Equal(int64(1), s.countSubscribers())
	s.Equal(int64(1), s.countUsers())
}

func (s *SubscriberServiceTestSuite) TestOnboard_StartsActive() {
	// Act
	sub, err := s.service.Onboard(context.Background(), s.signup(s.public.ID))

	// Assert
	s.Require().NoError(err)
	s.Equal(domain.SubscriberActive, sub.Status)
	s.Equal(int64(1), s.countUsers())
}

func (s *SubscriberServiceTestSuite) TestOnboard_RejectsUnavailablePlans() {
	// Arrange
	ctx := context.Background()
	retired := s.plan("Plano Antigo", true)
	_, err := s.repo.Plans().SetActive(ctx, s.operator, retired.ID, false)
	s.Require().NoError(err)

	cases := []struct {
		name   string
		planID string
		want   string
	}{
		{"private plan", s.private.ID, "plan is not available for sign up"},
		{"inactive plan", retired.ID, "plan not found"},
		{"no plan", "", "is required"},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			// Act
			_, err := s.service.Onboard(ctx, s.signup(tc.planID))

			// Assert
			var de *domain.Error
			s.Require().ErrorAs(err, &de)
			s.Equal(tc.want, de.Fields["plan_id"])
		})
	}
	s.Equal(int64(0), s.countSubscribers())
}

func (s *SubscriberServiceTestSuite) TestOnboard_RequiresOwnerAndSegment() {
	// Arrange
	in := s.signup(s.public.ID)
	in.Owner = nil
	in.Subscriber.SegmentID = nil

	// Act
	_, err := s.service.Onboard(context.Background(), in)

	// Assert
	var de *domain.Error
	s.Require().ErrorAs(err, &de)
	s.Equal("is required", de.Fields["owner"])
	s.Equal("is required", de.Fields["segment_id"])
}

func (s *SubscriberServiceTestSuite) TestCatalog_PlansArePublicAndActive() {
	// Arrange
	ctx := context.Background()
	retired := s.plan("Plano Antigo", true)
	_, err := s.repo.Plans().SetActive(ctx, s.operator, retired.ID, false)
	s.Require().NoError(err)

	// Act
	page, err := s.catalog.Plans(ctx, repository.Query{Page: repository.NewPagination(1, 10)})

	// Assert
	s.Require().NoError(err)
	s.Require().Len(page.Items, 1)
	s.Equal(s.public.ID, page.Items[0].ID)
}

func (s *SubscriberServiceTestSuite) TestCatalog_PlanWithModules() {
	// Arrange
	ctx := context.Background()
	agenda, err := domain.ModuleDraft{Nome: "Agenda", Codigo: "AGENDA"}.Build()
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Modules().Create(ctx, s.operator, agenda))
	link, err := domain.PlanModuleDraft{PlanID: s.public.ID, ModuleID: agenda.ID, IsFree: true, TrialDays: 14}.Build()
	s.Require().NoError(err)
	s.Require().NoError(s.repo.PlanModules().Create(ctx, s.operator, link))

	// Act
	plan, offers, err := s.catalog.Plan(ctx, s.public.ID)
	_, _, privateErr := s.catalog.Plan(ctx, s.private.ID)

	// Assert
	s.Require().NoError(err)
	s.Equal(s.public.ID, plan.ID)
	s.Require().Len(offers, 1)
	s.Equal("AGENDA", offers[0].Module.Codigo)
	s.Equal(14, offers[0].Terms.TrialDays)
	s.True(domain.IsNotFound(privateErr))
}

func (s *SubscriberServiceTestSuite) countSubscribers() int64 {
	n, err := s.repo.Subscribers().Count(context.Background(), s.operator)
	s.Require().NoError(err)
	return n
}

func (s *SubscriberServiceTestSuite) countUsers() int64 {
	n, err := s.repo.Users().Count(context.Background(), s.operator)
	s.Require().NoError(err)
	return n
}
