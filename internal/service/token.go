package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Claims is the JWT payload for both token types. The subject is the user id.
type Claims struct {
	TenantID    string    `json:"tenant_id"`
	SegmentID   string    `json:"segment_id,omitempty"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions,omitempty"`
	Type        TokenType `json:"typ"`
	jwt.RegisteredClaims
}

func (c *Claims) Principal() domain.Principal {
	return domain.Principal{
		UserID:      c.Subject,
		TenantID:    c.TenantID,
		SegmentID:   c.SegmentID,
		Role:        domain.Role(c.Role),
		Permissions: c.Permissions,
	}
}

type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// TokenManager signs and verifies HS256 session tokens.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (m *TokenManager) sign(p domain.Principal, typ TokenType, ttl time.Duration) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(ttl)
	claims := &Claims{
		TenantID:    p.TenantID,
		SegmentID:   p.SegmentID,
		Role:        string(p.Role),
		Permissions: p.Permissions,
		Type:        typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Issue signs a fresh access and refresh token for p.
func (m *TokenManager) Issue(p domain.Principal) (TokenPair, error) {
	access, accessExp, err := m.sign(p, AccessToken, m.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, refreshExp, err := m.sign(p, RefreshToken, m.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// IssueAccess signs a single access token with a custom lifetime.
func (m *TokenManager) IssueAccess(p domain.Principal, ttl time.Duration) (string, error) {
	token, _, err := m.sign(p, AccessToken, ttl)
	return token, err
}

// Parse verifies signature, expiry and token type.
func (m *TokenManager) Parse(token string, want TokenType) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errTokenExpired
		}
		return nil, errInvalidToken
	}
	if claims.Type != want || claims.Subject == "" {
		return nil, errInvalidToken
	}
	return claims, nil
}
