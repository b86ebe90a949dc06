package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/clinic-admin-api/internal/api/dto"
	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/service"
	"github.com/kingrain94/clinic-admin-api/internal/utils"
)

const AccessTokenCookie = "access_token"

type AuthMiddleware struct {
	tokens *service.TokenManager
}

func NewAuthMiddleware(tokens *service.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
	}
}

// bearer reads the session token from the cookie, falling back to the
// Authorization header.
func bearer(c *gin.Context) string {
	if token, err := c.Cookie(AccessTokenCookie); err == nil && token != "" {
		return token
	}
	parts := strings.Fields(c.GetHeader("Authorization"))
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

// Authenticate resolves the principal and stores it on the gin context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearer(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Error{Detail: "not authenticated"})
			return
		}

		claims, err := m.tokens.Parse(token, service.AccessToken)
		if err != nil {
			detail := "invalid or expired token"
			var de *domain.Error
			if errors.As(err, &de) {
				detail = de.Message
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Error{Detail: detail})
			return
		}

		c.Set(string(utils.PrincipalKey), claims.Principal())
		c.Next()
	}
}

func principal(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(string(utils.PrincipalKey))
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}

// RequireRole allows the request through when the principal has any of roles.
func (m *AuthMiddleware) RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Error{Detail: "not authenticated"})
			return
		}
		if !p.HasAnyRole(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.Error{Detail: "insufficient permissions"})
			return
		}
		c.Next()
	}
}

// RequirePermission checks an effective permission carried in the token.
func (m *AuthMiddleware) RequirePermission(perm domain.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Error{Detail: "not authenticated"})
			return
		}
		if !p.Can(perm) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.Error{Detail: "missing permission " + string(perm)})
			return
		}
		c.Next()
	}
}
