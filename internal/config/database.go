package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type ConnectionPoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

const connectTimeout = 5 * time.Second

// loadDatabaseConfig reads POSTGRES_<ROLE>_* variables. Unset reader values
// fall back to the writer's, so a single-node setup only configures the writer.
func loadDatabaseConfig(role string, fallback *DatabaseConfig) *DatabaseConfig {
	def := func(field, value string) string {
		return getEnvWithDefault("POSTGRES_"+role+"_"+field, value)
	}
	if fallback == nil {
		fallback = &DatabaseConfig{
			Host:    "localhost",
			Port:    "5432",
			User:    "postgres",
			DBName:  "clinic_admin",
			SSLMode: "disable",
		}
	}
	return &DatabaseConfig{
		Host:     def("HOST", fallback.Host),
		Port:     def("PORT", fallback.Port),
		User:     def("USER", fallback.User),
		Password: def("PASSWORD", fallback.Password),
		DBName:   def("DB_NAME", fallback.DBName),
		SSLMode:  def("SSL_MODE", fallback.SSLMode),
	}
}

func loadPoolConfig() *ConnectionPoolConfig {
	return &ConnectionPoolConfig{
		MaxOpenConns:    getEnvIntWithDefault("DB_MAX_OPEN_CONNS", 50),
		MaxIdleConns:    getEnvIntWithDefault("DB_MAX_IDLE_CONNS", 10),
		ConnMaxLifetime: getEnvDurationWithDefault("DB_CONN_MAX_LIFETIME", time.Hour),
		ConnMaxIdleTime: getEnvDurationWithDefault("DB_CONN_MAX_IDLE_TIME", 10*time.Minute),
	}
}

// gormLogLevel keeps SQL logging quiet unless DB_LOG_SQL is set.
func gormLogLevel() logger.LogLevel {
	if getEnvBoolWithDefault("DB_LOG_SQL", false) {
		return logger.Info
	}
	return logger.Warn
}

func (c *DatabaseConfig) dsn() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// open connects, tunes the pool and pings so a bad DSN fails at startup.
func open(role string, cfg *DatabaseConfig, pool *ConnectionPoolConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.dsn()), &gorm.Config{
		Logger:         logger.Default.LogMode(gormLogLevel()),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database %s@%s: %w", role, cfg.DBName, cfg.Host, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB for %s database: %w", role, err)
	}
	sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(pool.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", role, err)
	}
	return db, nil
}

// NewWriterDatabase opens the primary pool. Migrations and writes use it.
func NewWriterDatabase() (*gorm.DB, error) {
	return open("writer", loadDatabaseConfig("WRITER", nil), loadPoolConfig())
}

// NewReaderDatabase opens the replica pool used for listings and lookups.
func NewReaderDatabase() (*gorm.DB, error) {
	writer := loadDatabaseConfig("WRITER", nil)
	return open("reader", loadDatabaseConfig("READER", writer), loadPoolConfig())
}

type DatabaseConnections struct {
	Writer *gorm.DB
	Reader *gorm.DB
}

func NewDatabaseConnections() (*DatabaseConnections, error) {
	writer, err := NewWriterDatabase()
	if err != nil {
		return nil, err
	}

	reader, err := NewReaderDatabase()
	if err != nil {
		conns := &DatabaseConnections{Writer: writer}
		_ = conns.Close()
		return nil, err
	}

	return &DatabaseConnections{Writer: writer, Reader: reader}, nil
}

// Close closes both pools and reports every failure.
func (dc *DatabaseConnections) Close() error {
	var errs []error
	for role, db := range map[string]*gorm.DB{"writer": dc.Writer, "reader": dc.Reader} {
		if db == nil {
			continue
		}
		sqlDB, err := db.DB()
		if err != nil {
			continue
		}
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close %s database: %w", role, err))
		}
	}
	return errors.Join(errs...)
}
