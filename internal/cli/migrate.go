package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"invite-quiz-service/internal/config"
	pgmigrations "invite-quiz-service/internal/infra/postgres/migrations"
	"invite-quiz-service/internal/lib/logger"
	"invite-quiz-service/internal/lib/sl"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

var errPostgresNotConfigured = errors.New("postgres url not configured")

// NewMigrateCmd applies database migrations.
func NewMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations(cmd.Context(), *configPath)
		},
	}
}

func runMigrations(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := logger.Setup(cfg.Env, cfg.Log.Path)
	if err != nil {
		return err
	}
	return runMigrationsWithConfig(ctx, cfg, log)
}

func runMigrationsWithConfig(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	if cfg.Postgres.URL == "" {
		return errPostgresNotConfigured
	}
	log = log.With(sl.Module("cli.migrate"))

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)

	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	if group.IsZero() {
		log.Info("no new migrations")
		return nil
	}
	log.Info("migrations applied", slog.String("group", group.String()))
	return nil
}
