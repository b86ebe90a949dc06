package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kingrain94/clinic-admin-api/internal/api/dto"
	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
	"github.com/kingrain94/clinic-admin-api/internal/utils"
	"github.com/kingrain94/clinic-admin-api/pkg/logger"
)

type BaseHandler struct{}

func (h *BaseHandler) RequestCtx(ginCtx *gin.Context) context.Context {
	ctx := ginCtx.Request.Context()
	for k, v := range ginCtx.Keys {
		// Convert string keys to proper context key types to avoid collisions
		contextKey := utils.ContextKey(k)
		ctx = context.WithValue(ctx, contextKey, v)
	}
	return ctx
}

// Principal returns the authenticated caller or writes a 401.
func (h *BaseHandler) Principal(c *gin.Context) (domain.Principal, bool) {
	p, err := utils.GetPrincipalFromContext(h.RequestCtx(c))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Error{Detail: "not authenticated"})
		return domain.Principal{}, false
	}
	return p, true
}

// Scope resolves the tenant restriction of the request. Every unrestricted
// scope is logged.
func (h *BaseHandler) Scope(c *gin.Context) (tenant.Scope, bool) {
	p, ok := h.Principal(c)
	if !ok {
		return tenant.Scope{}, false
	}
	scope := p.Scope()
	if scope.IsUnrestricted() {
		logger.FromContext(c.Request.Context()).Info("unrestricted tenant scope",
			zap.String("user_id", p.UserID),
			zap.String("role", scope.GrantedTo()),
			zap.String("route", c.Request.Method+" "+c.FullPath()),
		)
	}
	return scope, true
}

func statusOf(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError is the only place domain errors become HTTP responses.
func (h *BaseHandler) respondError(c *gin.Context, err error) {
	var de *domain.Error
	if !errors.As(err, &de) || de.Kind == domain.KindInfrastructure {
		fields := []zap.Field{
			zap.String("operation", c.Request.Method+" "+c.FullPath()),
			zap.String("request_id", c.GetString(string(utils.RequestIDKey))),
		}
		if p, perr := utils.GetPrincipalFromContext(h.RequestCtx(c)); perr == nil {
			fields = append(fields, zap.String("tenant_id", p.TenantID), zap.String("user_id", p.UserID))
		}
		logger.FromContext(c.Request.Context()).Error("request failed", err, fields...)
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Error{Detail: "internal server error"})
		return
	}

	c.AbortWithStatusJSON(statusOf(de.Kind), dto.Error{Detail: de.Message, Errors: de.Fields})
}

func invalidField(field, message string) *domain.Error {
	return domain.FieldError(field, message)
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, invalidField(name, "must be a positive integer")
	}
	return n, nil
}

// pagination reads page and size. Sizes above the maximum are capped rather
// than rejected.
func (h *BaseHandler) pagination(c *gin.Context) (repository.Pagination, bool) {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		h.respondError(c, err)
		return repository.Pagination{}, false
	}
	size, err := queryInt(c, "size", repository.DefaultPageSize)
	if err != nil {
		h.respondError(c, err)
		return repository.Pagination{}, false
	}
	return repository.NewPagination(page, size), true
}

// queryDate parses an optional YYYY-MM-DD query parameter.
func queryDate(c *gin.Context, name string) (domain.Date, error) {
	raw := c.Query(name)
	if raw == "" {
		return domain.Date{}, nil
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		return domain.Date{}, invalidField(name, "must be a date in YYYY-MM-DD format")
	}
	return d, nil
}

func queryBool(c *gin.Context, name string) (*bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, invalidField(name, "must be true or false")
	}
	return &b, nil
}
