package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // драйвер postgres://
	_ "github.com/golang-migrate/migrate/v4/source/file"       // источник file://
	"go.uber.org/zap"

	"gotodo/pkg/logger"
	"gotodo/pkg/resilience"
)

// Константы для сообщений об ошибках миграций.
const (
	ErrCreateMigrationInstance = "failed to create migration instance"
	ErrApplyMigrations         = "failed to apply migrations"
)

// MigrateDSN применяет миграции из sourceURL к базе databaseURL.
// Создание экземпляра migrate повторяется по retryCfg, так как база может еще подниматься.
func MigrateDSN(ctx context.Context, databaseURL, sourceURL string, retryCfg resilience.RetryConfig) error {
	log := logger.Log(ctx).With(zap.String("source", sourceURL))

	var m *migrate.Migrate
	retry := resilience.NewRetry("postgres-migrate", retryCfg)
	err := retry.Execute(ctx, func(context.Context) error {
		var err error
		m, err = migrate.New(sourceURL, databaseURL)
		return err
	})
	if err != nil {
		log.Error(ctx, ErrCreateMigrationInstance, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCreateMigrationInstance, err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Warn(ctx, "failed to close migration instance",
				zap.NamedError("source_error", srcErr),
				zap.NamedError("database_error", dbErr))
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error(ctx, ErrApplyMigrations, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrApplyMigrations, err)
	}

	log.Info(ctx, LogMigrationsApplied)
	return nil
}
