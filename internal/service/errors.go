package service

import "github.com/kingrain94/clinic-admin-api/internal/domain"

var (
	// Session errors
	errBadCredentials = domain.NewUnauthorizedError("invalid credentials")
	errRevoked        = domain.NewUnauthorizedError("session has been revoked")
	errUserInactive   = domain.NewUnauthorizedError("user is no longer active")

	// Token errors
	errInvalidToken = domain.NewUnauthorizedError("invalid or expired token")
	errTokenExpired = domain.NewUnauthorizedError("token expired")
)
