package postgres_adapter

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"property-service/internal/core/port"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/tern/v2/migrate"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const (
	// "propsv" в ASCII hex
	migrationLockID             = 0x70726f707376
	migrationLockReleaseTimeout = 5 * time.Second
	migrationVersionTable       = "public.schema_version"
)

// RunMigrations применяет встроенные миграции под сессионной advisory-блокировкой,
// чтобы несколько реплик не мигрировали одновременно
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger port.LoggerPort) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection for migration: %w", err)
	}
	defer conn.Release()

	release, err := migrationLock(ctx, conn.Conn(), logger)
	if err != nil {
		return err
	}
	defer release()

	migrationFS, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	migrator, err := migrate.NewMigrator(ctx, conn.Conn(), migrationVersionTable)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	if err := migrator.LoadMigrations(migrationFS); err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	currentVersion, err := migrator.GetCurrentVersion(ctx)
	if err != nil {
		logger.Debug("Could not get current DB version (likely fresh DB)", port.Fields{"error": err.Error()})
	} else {
		logger.Info("Current DB version", port.Fields{"version": currentVersion, "target": len(migrator.Migrations)})
	}

	if err := migrator.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Database migrations applied", nil)
	return nil
}

func migrationLock(ctx context.Context, conn *pgx.Conn, logger port.LoggerPort) (func(), error) {
	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", migrationLockID); err != nil {
		return func() {}, fmt.Errorf("failed to acquire migration lock: %w", err)
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), migrationLockReleaseTimeout)
		defer cancel()

		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", migrationLockID); err != nil {
			logger.Error("Failed to release migration lock", err, nil)
		}
	}, nil
}
