package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
	"github.com/kingrain94/clinic-admin-api/pkg/logger"
)

// SessionStore remembers revoked refresh tokens by jti. Revoke reports false
// when the token had already been revoked.
//
//go:generate mockery --name SessionStore --output ../mocks
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) (bool, error)
}

const (
	DashboardAdmin        = "admin_global"
	DashboardVeterinary   = "clinica_veterinaria"
	DashboardDental       = "clinica_odontologica"
	DashboardClinic       = "clinica_padrao"
	DashboardCollaborator = "usuario_clinica"
)

type AuthService struct {
	users       repository.UserRepository
	subscribers repository.Store[domain.Subscriber]
	segments    repository.Store[domain.Segment]
	tokens      *TokenManager
	sessions    SessionStore
	now         func() time.Time
}

func NewAuthService(repo repository.Repository, tokens *TokenManager, sessions SessionStore) *AuthService {
	return &AuthService{
		users:       repo.Users(),
		subscribers: repo.Subscribers(),
		segments:    repo.Segments(),
		tokens:      tokens,
		sessions:    sessions,
		now:         time.Now,
	}
}

// LoginResult is the issued session plus the identity it was issued for.
type LoginResult struct {
	Tokens    TokenPair
	User      *domain.User
	Principal domain.Principal
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if domain.IsNotFound(err) {
		return nil, errBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, errBadCredentials
	}

	principal := user.Principal(s.segmentOf(ctx, user.SubscriberID))
	pair, err := s.tokens.Issue(principal)
	if err != nil {
		return nil, domain.NewInfrastructureError("issue tokens", err)
	}
	if err := s.users.RecordLogin(ctx, user.ID); err != nil {
		logger.FromContext(ctx).Warnf("failed to record login for user %s: %v", user.ID, err)
	}
	return &LoginResult{Tokens: pair, User: user, Principal: principal}, nil
}

// segmentOf resolves the segment of the subscriber; a missing subscriber or
// segment just means none.
func (s *AuthService) segmentOf(ctx context.Context, subscriberID string) string {
	if subscriberID == "" {
		return ""
	}
	sub, err := s.subscribers.GetByID(ctx, tenant.For(subscriberID), subscriberID)
	if err != nil || sub.SegmentID == nil {
		return ""
	}
	return *sub.SegmentID
}

// Refresh rotates the session: the presented refresh token is revoked and a
// new pair is issued from the user's current state. Revoking is the claim on
// the token, so of two concurrent refreshes only one gets a new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := s.tokens.Parse(refreshToken, RefreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, tenant.For(claims.TenantID), claims.Subject)
	if domain.IsNotFound(err) {
		return nil, errUserInactive
	}
	if err != nil {
		return nil, err
	}

	claimed, err := s.revoke(ctx, claims)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, errRevoked
	}
	principal := user.Principal(s.segmentOf(ctx, user.SubscriberID))
	pair, err := s.tokens.Issue(principal)
	if err != nil {
		return nil, domain.NewInfrastructureError("issue tokens", err)
	}
	return &LoginResult{Tokens: pair, User: user, Principal: principal}, nil
}

// Logout revokes the refresh token. A missing or unreadable token has nothing
// left to revoke.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	claims, err := s.tokens.Parse(refreshToken, RefreshToken)
	if err != nil {
		return nil
	}
	_, err = s.revoke(ctx, claims)
	return err
}

// revoke reports whether this call revoked the token.
func (s *AuthService) revoke(ctx context.Context, claims *Claims) (bool, error) {
	ttl := time.Duration(0)
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(s.now())
	}
	newly, err := s.sessions.Revoke(ctx, claims.ID, ttl)
	if err != nil {
		return false, domain.NewInfrastructureError("revoke session", err)
	}
	return newly, nil
}

func (s *AuthService) Me(ctx context.Context, p domain.Principal) (*domain.User, error) {
	return s.users.GetByID(ctx, tenant.For(p.TenantID), p.UserID)
}

// DashboardType picks the frontend dashboard for the caller's role and, for
// subscriber owners, their segment.
func (s *AuthService) DashboardType(ctx context.Context, p domain.Principal) string {
	switch p.Role {
	case domain.RoleSuperAdmin, domain.RoleDirector:
		return DashboardAdmin
	case domain.RoleOwner:
	default:
		return DashboardCollaborator
	}

	if p.SegmentID == "" {
		return DashboardClinic
	}
	seg, err := s.segments.GetByID(ctx, tenant.For(p.TenantID), p.SegmentID)
	if err != nil {
		return DashboardClinic
	}
	name := strings.ToLower(seg.Nome)
	switch {
	case strings.Contains(name, "veterinaria"), strings.Contains(name, "veterinária"):
		return DashboardVeterinary
	case strings.Contains(name, "odontologia"), strings.Contains(name, "dental"):
		return DashboardDental
	}
	return DashboardClinic
}
