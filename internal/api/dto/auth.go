package dto

import (
	"time"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ana@clinica.com.br"`
	Password string `json:"password" binding:"required" example:"s3nh4-f0rte"`
}

// RefreshRequest is optional: browsers send the refresh_token cookie instead.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// SessionUser is what the frontend needs to pick a landing page.
type SessionUser struct {
	ID           string   `json:"id"`
	Name         string   `json:"name" example:"Ana Lima"`
	Email        string   `json:"email" example:"ana@clinica.com.br"`
	Role         string   `json:"role" example:"DONO_ASSINANTE"`
	SubscriberID *string  `json:"subscriber_id"`
	SegmentID    *string  `json:"segment_id"`
	Permissions  []string `json:"permissions"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func NewSessionUser(u *domain.User, p domain.Principal) SessionUser {
	return SessionUser{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         string(u.Role),
		SubscriberID: optional(p.TenantID),
		SegmentID:    optional(p.SegmentID),
		Permissions:  p.Permissions,
	}
}

type SessionResponse struct {
	Message     string      `json:"message" example:"login successful"`
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type" example:"bearer"`
	ExpiresAt   time.Time   `json:"expires_at"`
	User        SessionUser `json:"user"`
}

type DashboardTypeResponse struct {
	DashboardType string `json:"dashboard_type" example:"clinica_odontologica"`
}
