package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/clinic-admin-api/internal/api/dto"
	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/middleware"
	"github.com/kingrain94/clinic-admin-api/internal/service"
)

const RefreshTokenCookie = "refresh_token"

type AuthService interface {
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*service.LoginResult, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, p domain.Principal) (*domain.User, error)
	DashboardType(ctx context.Context, p domain.Principal) string
}

// LoginRecorder counts login outcomes; middleware.Metrics implements it.
type LoginRecorder interface {
	RecordLogin(success bool)
}

type AuthHandler struct {
	*BaseHandler
	service      AuthService
	logins       LoginRecorder
	cookieSecure bool
}

func NewAuthHandler(service AuthService, logins LoginRecorder, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		BaseHandler:  &BaseHandler{},
		service:      service,
		logins:       logins,
		cookieSecure: cookieSecure,
	}
}

func (h *AuthHandler) setCookie(c *gin.Context, name, value string, expires time.Time) {
	maxAge := -1
	if !expires.IsZero() {
		maxAge = max(int(time.Until(expires).Seconds()), 1)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", h.cookieSecure, true)
}

func (h *AuthHandler) startSession(c *gin.Context, result *service.LoginResult, message string) {
	h.setCookie(c, middleware.AccessTokenCookie, result.Tokens.AccessToken, result.Tokens.AccessExpiresAt)
	h.setCookie(c, RefreshTokenCookie, result.Tokens.RefreshToken, result.Tokens.RefreshExpiresAt)
	c.JSON(http.StatusOK, dto.SessionResponse{
		Message:     message,
		AccessToken: result.Tokens.AccessToken,
		TokenType:   "bearer",
		ExpiresAt:   result.Tokens.AccessExpiresAt,
		User:        dto.NewSessionUser(result.User, result.Principal),
	})
}

// refreshToken prefers the cookie and falls back to the JSON body.
func refreshToken(c *gin.Context) string {
	if token, err := c.Cookie(RefreshTokenCookie); err == nil && token != "" {
		return token
	}
	var req dto.RefreshRequest
	if c.Request.ContentLength != 0 && c.ShouldBindJSON(&req) == nil {
		return req.RefreshToken
	}
	return ""
}

// Login godoc
// @Summary Log in
// @Description Checks the credentials and starts a session. Tokens are set as http-only cookies and the access token is also returned for Bearer clients.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.Error
// @Failure 401 {object} dto.Error
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	req, err := bindJSON[dto.LoginRequest](c)
	if err != nil {
		h.bindError(c, err)
		return
	}

	result, err := h.service.Login(h.RequestCtx(c), req.Email, req.Password)
	h.logins.RecordLogin(err == nil)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.startSession(c, result, "login successful")
}

// RefreshToken godoc
// @Summary Rotate the session
// @Description Exchanges the refresh token for a new token pair. The presented refresh token is revoked.
// @Tags auth
// @Produce json
// @Param body body dto.RefreshRequest false "Refresh token, when not sent as cookie"
// @Success 200 {object} dto.SessionResponse
// @Failure 401 {object} dto.Error
// @Router /auth/refresh-token [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token := refreshToken(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Error{Detail: "refresh token not provided"})
		return
	}

	result, err := h.service.Refresh(h.RequestCtx(c), token)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.startSession(c, result, "token refreshed")
}

// Logout godoc
// @Summary Log out
// @Description Revokes the refresh token and clears the session cookies.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.Message
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.service.Logout(h.RequestCtx(c), refreshToken(c)); err != nil {
		h.respondError(c, err)
		return
	}

	h.setCookie(c, middleware.AccessTokenCookie, "", time.Time{})
	h.setCookie(c, RefreshTokenCookie, "", time.Time{})
	c.JSON(http.StatusOK, dto.Message{Message: "logout successful"})
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.Error
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}

	user, err := h.service.Me(h.RequestCtx(c), p)
	if domain.IsNotFound(err) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Error{Detail: "user is no longer active"})
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromUser(user))
}

// DashboardType godoc
// @Summary Dashboard for the current user
// @Description Picks the frontend dashboard from the role and, for subscriber owners, the segment.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardTypeResponse
// @Failure 401 {object} dto.Error
// @Router /auth/dashboard-type [get]
func (h *AuthHandler) DashboardType(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.DashboardTypeResponse{DashboardType: h.service.DashboardType(h.RequestCtx(c), p)})
}
