package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kingrain94/clinic-admin-api/docs"
	"github.com/kingrain94/clinic-admin-api/internal/api"
	"github.com/kingrain94/clinic-admin-api/internal/archive"
	"github.com/kingrain94/clinic-admin-api/internal/config"
	"github.com/kingrain94/clinic-admin-api/internal/middleware"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
	"github.com/kingrain94/clinic-admin-api/internal/repository/memory"
	"github.com/kingrain94/clinic-admin-api/internal/repository/postgres"
	"github.com/kingrain94/clinic-admin-api/internal/service"
	"github.com/kingrain94/clinic-admin-api/internal/service/session"
	"github.com/kingrain94/clinic-admin-api/pkg/logger"
)

// @title           Clinic Admin API
// @version         1.0
// @description     Multi-tenant administration API for clinics: patients, appointments, costs, supplies, finance and reports.

// @host      localhost:10000
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @externalDocs.description  OpenAPI
// @externalDocs.url          https://swagger.io/resources/open-api/
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	appLogger := logger.NewLogger(os.Getenv("APP_ENV"))
	defer appLogger.Sync()

	cfg, err := config.Load()
	if err != nil {
		appLogger.Fatal("Failed to load config", err)
	}

	ctx := context.Background()

	repo, closeRepo, err := openRepository(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open repository", err)
	}
	defer closeRepo()

	redisClient, err := openRedis(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	var sessions service.SessionStore = session.NewMemoryStore()
	if redisClient != nil {
		defer redisClient.Close()
		sessions = session.NewRedisStore(redisClient)
	}

	reports, err := openArchive(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to configure report archive", err)
	}

	tokens := service.NewTokenManager(cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	metrics := middleware.NewMetrics()

	server := api.NewServer(
		cfg,
		api.NewServices(repo, tokens, sessions, reports),
		middleware.NewAuthMiddleware(tokens),
		middleware.NewRateLimitMiddleware(redisClient, cfg, appLogger),
		middleware.NewValidationMiddleware(appLogger),
		metrics,
		appLogger,
	)

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.ServerPort)
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http"}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      server.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Graceful shutdown
	go func() {
		appLogger.Info("HTTP server listening",
			zap.Int("port", cfg.ServerPort),
			zap.String("env", cfg.AppEnv),
			zap.String("storage", cfg.Storage),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}

	appLogger.Info("Server exiting")
}

func openRepository(cfg *config.Config, appLogger *logger.Logger) (repository.Repository, func(), error) {
	if cfg.Storage == config.StorageMemory {
		appLogger.Warn("Using in-memory storage; data is lost on restart")
		return memory.NewRepository(), func() {}, nil
	}

	dbConnections, err := config.NewDatabaseConnections()
	if err != nil {
		return nil, nil, err
	}
	appLogger.Info("Database connections established - writer and reader connected")

	return postgres.NewPostgresRepository(dbConnections), func() {
		if err := dbConnections.Close(); err != nil {
			appLogger.Error("Failed to close database connections", err)
		}
	}, nil
}

// openRedis returns a nil client when Redis is disabled. Rate limiting is then
// off and refresh tokens are revoked in process memory.
func openRedis(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) (*redis.Client, error) {
	redisConfig := config.DefaultRedisConfig()
	if redisConfig.Disabled || cfg.Storage == config.StorageMemory {
		appLogger.Warn("Redis disabled; rate limiting off and sessions kept in memory")
		return nil, nil
	}
	return redisConfig.GetClient(ctx)
}

func openArchive(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) (service.ReportArchive, error) {
	if cfg.Storage == config.StorageMemory {
		return archive.NewMemoryArchive(), nil
	}
	s3Config := config.DefaultS3Config()
	client, err := s3Config.GetClient(ctx)
	if err != nil {
		return nil, err
	}
	appLogger.Info("Report archive configured", zap.String("bucket", s3Config.BucketName))
	return archive.NewS3ReportArchiver(client, s3Config.BucketName, appLogger), nil
}
