package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/railzwaylabs/railzway-stripe/internal/config"
	"github.com/railzwaylabs/railzway-stripe/internal/migration"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrBootstrapStateInactive = errors.New("bootstrap state is not active")
	ErrSchemaVersionMismatch  = errors.New("schema version mismatch")
	ErrSchemaChecksumMismatch = errors.New("schema checksum mismatch")
)

type SchemaGate interface {
	MustBeActive(ctx context.Context) error
}

type schemaGate struct {
	db               *gorm.DB
	expectedVersion  string
	expectedChecksum string
}

// NewSchemaGate checks the state recorded by the SQL migrations. Drivers
// migrated from models carry no state and always pass.
func NewSchemaGate(db *gorm.DB, cfg config.Config, log *zap.Logger) (SchemaGate, error) {
	if db == nil {
		return nil, errors.New("schema gate requires database handle")
	}
	if cfg.Database.Driver != "postgres" {
		log.Info("schema gate disabled", zap.String("driver", cfg.Database.Driver))
		return openGate{}, nil
	}

	latestVersion, err := migration.LatestMigrationVersion()
	if err != nil {
		return nil, err
	}
	expectedChecksum, err := migration.MigrationsChecksum()
	if err != nil {
		return nil, err
	}

	return newSchemaGate(db, fmt.Sprintf("%d", latestVersion), expectedChecksum), nil
}

func newSchemaGate(db *gorm.DB, version, checksum string) *schemaGate {
	return &schemaGate{db: db, expectedVersion: version, expectedChecksum: checksum}
}

func (g *schemaGate) MustBeActive(ctx context.Context) error {
	state, err := loadBootstrapState(ctx, g.db)
	if err != nil {
		return err
	}

	if state.Status != StatusActive {
		return fmt.Errorf("%w: status=%s", ErrBootstrapStateInactive, state.Status)
	}

	if state.SchemaVersion != g.expectedVersion {
		return fmt.Errorf("%w: state=%s expected=%s", ErrSchemaVersionMismatch, state.SchemaVersion, g.expectedVersion)
	}

	if state.Checksum != nil && strings.TrimSpace(*state.Checksum) != "" {
		if g.expectedChecksum == "" || *state.Checksum != g.expectedChecksum {
			return fmt.Errorf("%w: state=%s expected=%s", ErrSchemaChecksumMismatch, *state.Checksum, g.expectedChecksum)
		}
	}

	return nil
}

type openGate struct{}

func (openGate) MustBeActive(context.Context) error { return nil }
