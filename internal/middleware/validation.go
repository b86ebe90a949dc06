package middleware

import (
	"net/http"
	"regexp"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kingrain94/clinic-admin-api/internal/api/dto"
	"github.com/kingrain94/clinic-admin-api/pkg/logger"
)

// Headers that carry opaque credentials; JWTs routinely contain "--".
var skippedHeaders = []string{"Authorization", "Cookie"}

var suspiciousPatterns = compilePatterns(
	// SQL injection
	`(?i)(\bUNION\b.*\bSELECT\b)`,
	`(?i)(\bINSERT\b.*\bINTO\b)`,
	`(?i)(\bDELETE\b.*\bFROM\b)`,
	`(?i)(\bDROP\b.*\bTABLE\b)`,
	`(?i)(\bALTER\b.*\bTABLE\b)`,
	`--`,
	`/\*.*\*/`,
	// XSS
	`(?i)<script.*?>`,
	`(?i)javascript:`,
	`(?i)on(load|click|error)=`,
	`(?i)<(iframe|object|embed).*?>`,
	// path traversal
	`\.\./`,
	`\.\.\\`,
	`(?i)%2e%2e(%2f|%5c)`,
)

func compilePatterns(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

type ValidationMiddleware struct {
	logger *logger.Logger
}

func NewValidationMiddleware(logger *logger.Logger) *ValidationMiddleware {
	return &ValidationMiddleware{
		logger: logger,
	}
}

// SanitizeInput strips null bytes and control characters from query values.
func (m *ValidationMiddleware) SanitizeInput() gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Request.URL.Query()
		changed := false
		for key, values := range query {
			for i, value := range values {
				if sanitized := sanitizeString(value); sanitized != value {
					m.logger.Info("Sanitized query parameter", zap.String("key", key))
					values[i] = sanitized
					changed = true
				}
			}
		}
		if changed {
			c.Request.URL.RawQuery = query.Encode()
		}
		c.Next()
	}
}

// ValidateContentType rejects request bodies that are not one of allowedTypes.
// Bodyless requests pass.
func (m *ValidationMiddleware) ValidateContentType(allowedTypes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength == 0 || c.Request.Method == http.MethodGet || c.Request.Method == http.MethodDelete {
			c.Next()
			return
		}

		contentType, _, _ := strings.Cut(c.GetHeader("Content-Type"), ";")
		contentType = strings.TrimSpace(contentType)
		if contentType == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.Error{Detail: "Content-Type header is required"})
			return
		}
		if !slices.Contains(allowedTypes, contentType) {
			c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, dto.Error{
				Detail: "unsupported Content-Type, expected one of " + strings.Join(allowedTypes, ", "),
			})
			return
		}
		c.Next()
	}
}

// ValidateRequestSize limits request body size
func (m *ValidationMiddleware) ValidateRequestSize(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.Error{Detail: "request body too large"})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}

// BlockSuspiciousPatterns rejects paths, query values and headers that look
// like injection or traversal attempts.
func (m *ValidationMiddleware) BlockSuspiciousPatterns() gin.HandlerFunc {
	return func(c *gin.Context) {
		block := func(where, key string) {
			m.logger.Warn("Blocked suspicious request",
				zap.String("where", where),
				zap.String("key", key),
				zap.String("ip", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.Error{Detail: "invalid request"})
		}

		if containsSuspiciousPattern(c.Request.URL.Path) {
			block("path", c.Request.URL.Path)
			return
		}
		for key, values := range c.Request.URL.Query() {
			for _, value := range values {
				if containsSuspiciousPattern(value) {
					block("query", key)
					return
				}
			}
		}
		for key, values := range c.Request.Header {
			if slices.ContainsFunc(skippedHeaders, func(h string) bool { return strings.EqualFold(h, key) }) {
				continue
			}
			for _, value := range values {
				if containsSuspiciousPattern(value) {
					block("header", key)
					return
				}
			}
		}
		c.Next()
	}
}

func sanitizeString(input string) string {
	return strings.Map(func(r rune) rune {
		if r >= 32 || r == '\n' || r == '\r' || r == '\t' {
			return r
		}
		return -1
	}, input)
}

func containsSuspiciousPattern(input string) bool {
	for _, pattern := range suspiciousPatterns {
		if pattern.MatchString(input) {
			return true
		}
	}
	return false
}
