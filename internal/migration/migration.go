package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/railzwaylabs/railzway-stripe/internal/payment/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const migrationTimeout = 2 * time.Minute

// Run brings the schema up to date. Postgres gets the embedded SQL
// migrations; the other drivers are migrated from the gorm models.
func Run(ctx context.Context, conn *gorm.DB, driver string, log *zap.Logger) error {
	if conn == nil {
		return errors.New("migration database handle is required")
	}

	if driver != "postgres" {
		log.Info("migrating schema from models", zap.String("driver", driver))
		return conn.WithContext(ctx).AutoMigrate(domain.Models()...)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, migrationTimeout)
	defer cancel()
	return RunMigrations(ctx, sqlDB, log)
}

// RunMigrations applies the embedded migrations under the migration lock
// and activates the bootstrap state the schema gate checks.
func RunMigrations(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	lock, err := lockSession(ctx, db, migrationLockKey)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := lock.Release(context.Background()); releaseErr != nil {
			log.Warn("failed to release migration lock", zap.Error(releaseErr))
		}
	}()

	fsys, err := sqlMigrations()
	if err != nil {
		return err
	}
	migrations, err := readUpMigrations(fsys)
	if err != nil {
		return err
	}
	latest := migrations[len(migrations)-1].version
	sum, err := checksum(fsys)
	if err != nil {
		return err
	}

	source, err := iofs.New(fsys, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: MigrationsTable})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}
	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	before, err := ensureNotDirty(migrator)
	if err != nil {
		return err
	}
	if upErr := migrator.Up(); upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	after, err := ensureNotDirty(migrator)
	if err != nil {
		return err
	}
	if after != latest {
		return fmt.Errorf("schema version mismatch after migrate: got %d want %d", after, latest)
	}

	if err := activateBootstrapState(ctx, lock, latest, sum, time.Now()); err != nil {
		return err
	}

	log.Info("migrations applied",
		zap.Uint("from_version", before),
		zap.Uint("version", latest),
		zap.String("table", MigrationsTable),
	)
	return nil
}

func ensureNotDirty(migrator *migrate.Migrate) (uint, error) {
	version, dirty, err := migrator.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, nil
		}
		return 0, fmt.Errorf("read migration version: %w", err)
	}
	if dirty {
		return 0, fmt.Errorf("database migrations are dirty at version %d", version)
	}
	return version, nil
}
