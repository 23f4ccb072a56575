package postgres

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	"yanote/pkg/logger"
)

const (
	ErrCreateMigrationSource   = "failed to open migration source"
	ErrCreateMigrationInstance = "failed to create migration instance"
	ErrApplyMigrations         = "failed to apply migrations"
)

// MigrateFS применяет миграции, встроенные в бинарник.
func MigrateFS(ctx context.Context, dsn string, migrations fs.FS) error {
	log := logger.Log(ctx)

	src, err := iofs.New(migrations, ".")
	if err != nil {
		log.Error(ctx, ErrCreateMigrationSource, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCreateMigrationSource, err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		log.Error(ctx, ErrCreateMigrationInstance, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCreateMigrationInstance, err)
	}
	defer m.Close()

	return up(ctx, m)
}

func up(ctx context.Context, m *migrate.Migrate) error {
	log := logger.Log(ctx)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error(ctx, ErrApplyMigrations, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrApplyMigrations, err)
	}

	version, dirty, err := m.Version()
	if err == nil {
		log.Info(ctx, LogMigrationsApplied, zap.Uint("version", version), zap.Bool("dirty", dirty))
	} else {
		log.Info(ctx, LogMigrationsApplied)
	}
	return nil
}
