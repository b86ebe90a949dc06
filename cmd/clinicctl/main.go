// Command clinicctl runs operator tasks against the clinic admin database.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kingrain94/clinic-admin-api/internal/config"
	"github.com/kingrain94/clinic-admin-api/internal/repository/postgres"
	"github.com/kingrain94/clinic-admin-api/internal/service"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
	"github.com/kingrain94/clinic-admin-api/pkg/logger"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}
	appLogger := logger.NewLogger(os.Getenv("APP_ENV"))
	defer appLogger.Sync()

	root := &cobra.Command{
		Use:           "clinicctl",
		Short:         "Operator commands for the clinic admin API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(migrateCmd(appLogger), seedCmd(appLogger), tokenCmd(appLogger))

	if err := root.ExecuteContext(context.Background()); err != nil {
		appLogger.Fatal("clinicctl failed", err)
	}
}

func migrateCmd(appLogger *logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or extend the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := config.NewWriterDatabase()
			if err != nil {
				return err
			}
			if err := postgres.Migrate(db); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			appLogger.Infof("schema migrated (%d tables)", len(postgres.Models()))
			return nil
		},
	}
}

func seedCmd(appLogger *logger.Logger) *cobra.Command {
	var (
		catalogPath string
		admin       AdminAccount
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the reference catalogue and the first SUPER_ADMIN",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := LoadCatalog(catalogPath)
			if err != nil {
				return err
			}
			conns, err := config.NewDatabaseConnections()
			if err != nil {
				return err
			}
			defer conns.Close()

			seeder := NewSeeder(postgres.NewPostgresRepository(conns), appLogger)
			return seeder.Seed(cmd.Context(), catalog, &admin)
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "configs/catalog.example.yaml", "catalogue YAML file")
	cmd.Flags().StringVar(&admin.Name, "admin-name", envOr("SEED_ADMIN_NAME", "Platform Admin"), "name of the first SUPER_ADMIN")
	cmd.Flags().StringVar(&admin.Email, "admin-email", os.Getenv("SEED_ADMIN_EMAIL"), "email of the first SUPER_ADMIN (env SEED_ADMIN_EMAIL); empty skips the account")
	cmd.Flags().StringVar(&admin.Password, "admin-password", os.Getenv("SEED_ADMIN_PASSWORD"), "password of the first SUPER_ADMIN (env SEED_ADMIN_PASSWORD)")
	return cmd
}

func tokenCmd(appLogger *logger.Logger) *cobra.Command {
	var (
		email string
		ttl   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print an access token for an existing user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return fmt.Errorf("--email is required")
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			conns, err := config.NewDatabaseConnections()
			if err != nil {
				return err
			}
			defer conns.Close()
			repo := postgres.NewPostgresRepository(conns)

			ctx := cmd.Context()
			user, err := repo.Users().GetByEmail(ctx, email)
			if err != nil {
				return fmt.Errorf("user %s: %w", email, err)
			}
			segmentID := ""
			if user.SubscriberID != "" {
				if sub, err := repo.Subscribers().GetByID(ctx, tenant.For(user.SubscriberID), user.SubscriberID); err == nil && sub.SegmentID != nil {
					segmentID = *sub.SegmentID
				}
			}

			tokens := service.NewTokenManager(cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
			token, err := tokens.IssueAccess(user.Principal(segmentID), ttl)
			if err != nil {
				return err
			}
			appLogger.Infof("issued %s token for %s, valid for %s", user.Role, email, ttl)
			fmt.Println(token)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "user email")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
