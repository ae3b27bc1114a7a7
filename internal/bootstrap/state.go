package bootstrap

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/railzwaylabs/railzway-stripe/internal/migration"
	"gorm.io/gorm"
)

const (
	StatusInitializing = "initializing"
	StatusActive       = "active"
)

var ErrBootstrapStateNotFound = errors.New("bootstrap state not found")

// BootstrapState is the row the migrate command writes after a successful run.
type BootstrapState struct {
	Status        string     `gorm:"column:status"`
	SchemaVersion string     `gorm:"column:schema_version"`
	Checksum      *string    `gorm:"column:checksum"`
	ActivatedAt   *time.Time `gorm:"column:activated_at"`
}

func loadBootstrapState(ctx context.Context, db *gorm.DB) (*BootstrapState, error) {
	var rows []BootstrapState
	err := db.WithContext(ctx).
		Table(migration.BootstrapStateTable).
		Select("status, schema_version, checksum, activated_at").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrBootstrapStateNotFound
	}

	state := rows[0]
	state.Status = strings.ToLower(strings.TrimSpace(state.Status))
	state.SchemaVersion = strings.TrimSpace(state.SchemaVersion)
	if state.Checksum != nil {
		trimmed := strings.TrimSpace(*state.Checksum)
		state.Checksum = &trimmed
	}
	return &state, nil
}
