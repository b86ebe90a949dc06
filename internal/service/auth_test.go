package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/mocks"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
	"github.com/kingrain94/clinic-admin-api/internal/repository/memory"
	"github.com/kingrain94/clinic-admin-api/internal/service/session"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
)

const testPassword = "s3nh4-f0rte"

type AuthServiceTestSuite struct {
	suite.Suite
	repo       repository.Repository
	tokens     *TokenManager
	service    *AuthService
	subscriber *domain.Subscriber
	owner      *domain.User
}

func (s *AuthServiceTestSuite) SetupTest() {
	ctx := context.Background()
	s.repo = memory.NewRepository()
	s.tokens = NewTokenManager("test-secret", 15*time.Minute, time.Hour)
	s.service = NewAuthService(s.repo, s.tokens, session.NewMemoryStore())

	all := tenant.Unrestricted("", string(domain.RoleSuperAdmin))
	seg, err := domain.SegmentDraft{Nome: "Odontologia"}.Build()
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Segments().Create(ctx, all, seg))

	sub, err := domain.SubscriberDraft{
		Nome:      "Clinica Sorriso",
		Documento: "11222333000181",
		SegmentID: &seg.ID,
		Status:    domain.SubscriberActive,
	}.Build()
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Subscribers().Create(ctx, all, sub))
	s.subscriber = sub

	users := NewUserService(s.repo)
	users.hashCost = bcrypt.MinCost
	owner, err := users.Register(ctx, domain.Principal{TenantID: sub.ID, Role: domain.RoleOwner}, NewUser{
		Name:     "Ana Dona",
		Email:    "ana@sorriso.com.br",
		Password: testPassword,
		Role:     domain.RoleOwner,
	})
	s.Require().NoError(err)
	s.owner = owner
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) TestLogin_Success() {
	// Act
	result, err := s.service.Login(context.Background(), "ANA@sorriso.com.br ", testPassword)

	// Assert
	s.Require().NoError(err)
	s.Equal(s.owner.ID, result.Principal.UserID)
	s.Equal(s.subscriber.ID, result.Principal.TenantID)
	s.Equal(*s.subscriber.SegmentID, result.Principal.SegmentID)
	s.Contains(result.Principal.Permissions, string(domain.PermCreatePatient))

	claims, err := s.tokens.Parse(result.Tokens.AccessToken, AccessToken)
	s.Require().NoError(err)
	s.Equal(s.owner.ID, claims.Subject)

	stored, err := s.repo.Users().GetByEmail(context.Background(), "ana@sorriso.com.br")
	s.Require().NoError(err)
	s.NotNil(stored.LastLoginAt)
}

func (s *AuthServiceTestSuite) TestLogin_WrongPassword() {
	// Act
	result, err := s.service.Login(context.Background(), "ana@sorriso.com.br", "wrong-password")

	// Assert
	s.Nil(result)
	s.Equal(domain.KindUnauthorized, domain.KindOf(err))
}

func (s *AuthServiceTestSuite) TestLogin_UnknownEmailLooksTheSame() {
	// Act
	_, unknown := s.service.Login(context.Background(), "nobody@sorriso.com.br", testPassword)
	_, wrong := s.service.Login(context.Background(), "ana@sorriso.com.br", "wrong-password")

	// Assert
	s.Equal(wrong.Error(), unknown.Error())
}

func (s *AuthServiceTestSuite) TestLogin_InactiveUser() {
	// Arrange
	ctx := context.Background()
	_, err := s.repo.Users().SetActive(ctx, tenant.For(s.subscriber.ID), s.owner.ID, false)
	s.Require().NoError(err)

	// Act
	_, err = s.service.Login(ctx, "ana@sorriso.com.br", testPassword)

	// Assert
	s.Equal(domain.KindUnauthorized, domain.KindOf(err))
}

func (s *AuthServiceTestSuite) TestRefresh_RotatesAndRevokes() {
	// Arrange
	ctx := context.Background()
	login, err := s.service.Login(ctx, "ana@sorriso.com.br", testPassword)
	s.Require().NoError(err)

	// Act
	rotated, err := s.service.Refresh(ctx, login.Tokens.RefreshToken)
	_, replay := s.service.Refresh(ctx, login.Tokens.RefreshToken)

	// Assert
	s.Require().NoError(err)
	s.NotEqual(login.Tokens.RefreshToken, rotated.Tokens.RefreshToken)
	s.Equal(domain.KindUnauthorized, domain.KindOf(replay))
}

func (s *AuthServiceTestSuite) TestRefresh_ConcurrentRotationIssuesOnePair() {
	// Arrange
	ctx := context.Background()
	login, err := s.service.Login(ctx, "ana@sorriso.com.br", testPassword)
	s.Require().NoError(err)
	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup

	// Act
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.service.Refresh(ctx, login.Tokens.RefreshToken)
		}()
	}
	wg.Wait()

	// Assert
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		s.Equal(domain.KindUnauthorized, domain.KindOf(err))
	}
	s.Equal(1, succeeded)
}

func (s *AuthServiceTestSuite) TestRefresh_AlreadyRevokedByStore() {
	// Arrange
	ctx := context.Background()
	sessions := new(mocks.SessionStore)
	svc := NewAuthService(s.repo, s.tokens, sessions)
	pair, err := s.tokens.Issue(s.owner.Principal(""))
	s.Require().NoError(err)
	sessions.On("Revoke", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("time.Duration")).Return(false, nil)

	// Act
	result, err := svc.Refresh(ctx, pair.RefreshToken)

	// Assert
	s.Nil(result)
	s.Equal(domain.KindUnauthorized, domain.KindOf(err))
	sessions.AssertExpectations(s.T())
}

func (s *AuthServiceTestSuite) TestRefresh_RejectsAccessToken() {
	// Arrange
	ctx := context.Background()
	login, err := s.service.Login(ctx, "ana@sorriso.com.br", testPassword)
	s.Require().NoError(err)

	// Act
	_, err = s.service.Refresh(ctx, login.Tokens.AccessToken)

	// Assert
	s.Equal(domain.KindUnauthorized, domain.KindOf(err))
}

func (s *AuthServiceTestSuite) TestRefresh_SessionStoreDown() {
	// Arrange
	ctx := context.Background()
	sessions := new(mocks.SessionStore)
	sessions.On("Revoke", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("time.Duration")).Return(false, errors.New("redis: connection refused"))
	svc := NewAuthService(s.repo, s.tokens, sessions)
	pair, err := s.tokens.Issue(s.owner.Principal(""))
	s.Require().NoError(err)

	// Act
	_, err = svc.Refresh(ctx, pair.RefreshToken)

	// Assert
	s.Equal(domain.KindInfrastructure, domain.KindOf(err))
	sessions.AssertExpectations(s.T())
}

func (s *AuthServiceTestSuite) TestLogout_RevokesRefreshToken() {
	// Arrange
	ctx := context.Background()
	sessions := new(mocks.SessionStore)
	svc := NewAuthService(s.repo, s.tokens, sessions)
	pair, err := s.tokens.Issue(s.owner.Principal(""))
	s.Require().NoError(err)
	claims, err := s.tokens.Parse(pair.RefreshToken, RefreshToken)
	s.Require().NoError(err)
	sessions.On("Revoke", ctx, claims.ID, mock.AnythingOfType("time.Duration")).Return(true, nil)

	// Act
	err = svc.Logout(ctx, pair.RefreshToken)

	// Assert
	s.NoError(err)
	sessions.AssertExpectations(s.T())
}

func (s *AuthServiceTestSuite) TestLogout_GarbageTokenIsIgnored() {
	// Arrange
	sessions := new(mocks.SessionStore)
	svc := NewAuthService(s.repo, s.tokens, sessions)

	// Act
	err := svc.Logout(context.Background(), "not-a-token")

	// Assert
	s.NoError(err)
	sessions.AssertNotCalled(s.T(), "Revoke", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AuthServiceTestSuite) TestDashboardType() {
	ctx := context.Background()
	segment := *s.subscriber.SegmentID
	cases := []struct {
		name      string
		principal domain.Principal
		want      string
	}{
		{"super admin", domain.Principal{Role: domain.RoleSuperAdmin}, DashboardAdmin},
		{"director", domain.Principal{Role: domain.RoleDirector}, DashboardAdmin},
		{"dental owner", domain.Principal{Role: domain.RoleOwner, TenantID: s.subscriber.ID, SegmentID: segment}, DashboardDental},
		{"owner without segment", domain.Principal{Role: domain.RoleOwner, TenantID: s.subscriber.ID}, DashboardClinic},
		{"collaborator", domain.Principal{Role: domain.RoleCollaborator, TenantID: s.subscriber.ID, SegmentID: segment}, DashboardCollaborator},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.Equal(tc.want, s.service.DashboardType(ctx, tc.principal))
		})
	}
}
