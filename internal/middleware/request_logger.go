package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kingrain94/clinic-admin-api/internal/utils"
	"github.com/kingrain94/clinic-admin-api/pkg/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags the request with an id, attaches a request-scoped logger
// to its context and writes one line when the request completes.
func RequestLogger(base *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}
		c.Header(RequestIDHeader, requestID)
		c.Set(string(utils.RequestIDKey), requestID)

		reqLogger := base.With(
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), reqLogger))

		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if p, ok := principal(c); ok {
			fields = append(fields, zap.String("tenant_id", p.TenantID), zap.String("user_id", p.UserID))
		}
		switch status := c.Writer.Status(); {
		case status >= 500:
			reqLogger.Warn("request failed", fields...)
		default:
			reqLogger.Info("request completed", fields...)
		}
	}
}
