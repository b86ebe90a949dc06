package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/kingrain94/clinic-admin-api/internal/api/dto"
	"github.com/kingrain94/clinic-admin-api/internal/config"
	"github.com/kingrain94/clinic-admin-api/pkg/logger"
)

const rateWindow = time.Minute

type RateLimitMiddleware struct {
	redis  *redis.Client
	config *config.Config
	logger *logger.Logger
}

// NewRateLimitMiddleware builds the limiter. With a nil client every request
// passes; that is the APP_STORAGE=memory setup.
func NewRateLimitMiddleware(redis *redis.Client, config *config.Config, logger *logger.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		redis:  redis,
		config: config,
		logger: logger,
	}
}

// TenantRateLimit limits requests per subscriber. It runs after Authenticate.
func (m *RateLimitMiddleware) TenantRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Error{Detail: "not authenticated"})
			return
		}
		m.enforce(c, "rate_limit:tenant:"+p.TenantID, m.config.TenantRateLimit, "Rate limit exceeded")
	}
}

// GlobalRateLimit limits requests per client IP.
func (m *RateLimitMiddleware) GlobalRateLimit(limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		m.enforce(c, "rate_limit:global:"+c.ClientIP(), limit, "Global rate limit exceeded")
	}
}

// enforce counts the request in a fixed one-minute window. Redis failures
// let the request through.
func (m *RateLimitMiddleware) enforce(c *gin.Context, key string, limit int, message string) {
	if m.redis == nil || limit <= 0 {
		c.Next()
		return
	}
	ctx := c.Request.Context()
	reset := strconv.FormatInt(time.Now().Add(rateWindow).Unix(), 10)

	current, err := m.redis.Get(ctx, key).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		m.logger.Error("Redis error in rate limiting", err)
		c.Next()
		return
	}

	c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
	c.Header("X-RateLimit-Reset", reset)
	if current >= limit {
		c.Header("X-RateLimit-Remaining", "0")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.Error{
			Detail: fmt.Sprintf("%s: %d requests per minute", message, limit),
		})
		return
	}

	pipe := m.redis.Pipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rateWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		m.logger.Error("Redis pipeline error in rate limiting", err)
	}

	c.Header("X-RateLimit-Remaining", strconv.Itoa(max(limit-(current+1), 0)))
	c.Next()
}
