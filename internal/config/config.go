package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	ServerPort      int           `json:"server_port"`
	AppEnv          string        `json:"app_env"`
	Storage         string        `json:"storage"`
	JWTSecretKey    string        `json:"-"`
	AccessTokenTTL  time.Duration `json:"access_token_ttl"`
	RefreshTokenTTL time.Duration `json:"refresh_token_ttl"`
	CookieSecure    bool          `json:"cookie_secure"`
	TenantRateLimit int           `json:"tenant_rate_limit"`
	GlobalRateLimit int           `json:"global_rate_limit"`
	MaxRequestSize  int64         `json:"max_request_size"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:      getEnvIntWithDefault("SERVER_PORT", 10000),
		AppEnv:          getEnvWithDefault("APP_ENV", "development"),
		Storage:         strings.ToLower(getEnvWithDefault("APP_STORAGE", StoragePostgres)),
		JWTSecretKey:    os.Getenv("JWT_SECRET_KEY"),
		AccessTokenTTL:  getEnvDurationWithDefault("JWT_ACCESS_TTL", 30*time.Minute),
		RefreshTokenTTL: getEnvDurationWithDefault("JWT_REFRESH_TTL", 7*24*time.Hour),
		CookieSecure:    getEnvBoolWithDefault("COOKIE_SECURE", false),
		TenantRateLimit: getEnvIntWithDefault("TENANT_RATE_LIMIT", 1000),   // per tenant per minute
		GlobalRateLimit: getEnvIntWithDefault("GLOBAL_RATE_LIMIT", 10000), // per IP per minute
		MaxRequestSize:  int64(getEnvIntWithDefault("MAX_REQUEST_SIZE", 10*1024*1024)),
		ReadTimeout:     getEnvDurationWithDefault("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDurationWithDefault("HTTP_WRITE_TIMEOUT", 30*time.Second),
	}

	if cfg.Storage != StoragePostgres && cfg.Storage != StorageMemory {
		return nil, fmt.Errorf("APP_STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, cfg.Storage)
	}
	if cfg.JWTSecretKey == "" {
		if cfg.IsProduction() {
			return nil, errors.New("JWT_SECRET_KEY is required in production")
		}
		cfg.JWTSecretKey = "dev-secret-change-me"
	}
	if cfg.IsProduction() {
		cfg.CookieSecure = true
	}
	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvDurationWithDefault returns environment variable as duration or default if not set
func getEnvDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
