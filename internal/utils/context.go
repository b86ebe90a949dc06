package utils

import (
	"context"
	"errors"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
)

type ContextKey string

const (
	PrincipalKey ContextKey = "principal"
	RequestIDKey ContextKey = "request_id"
)

var (
	ErrNoPrincipalInContext = errors.New("no principal found in context")
	ErrInvalidPrincipalType = errors.New("invalid principal type")
)

func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, p)
}

func GetPrincipalFromContext(c context.Context) (domain.Principal, error) {
	v := c.Value(PrincipalKey)
	if v == nil {
		return domain.Principal{}, ErrNoPrincipalInContext
	}
	p, ok := v.(domain.Principal)
	if !ok {
		return domain.Principal{}, ErrInvalidPrincipalType
	}
	return p, nil
}

func GetRequestIDFromContext(c context.Context) string {
	id, _ := c.Value(RequestIDKey).(string)
	return id
}
