package migration

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	// MigrationsTable is golang-migrate's version table for this service.
	MigrationsTable = "stripe_schema_migrations"
	// BootstrapStateTable holds the single row describing the schema the
	// migrator last activated. The serve command's schema gate reads it.
	BootstrapStateTable = "stripe_bootstrap_state"

	statusActive = "active"
)

func activateBootstrapState(ctx context.Context, lock *sessionLock, version uint, checksum string, now time.Time) error {
	var sum any
	if c := strings.TrimSpace(checksum); c != "" {
		sum = c
	}

	_, err := lock.conn.ExecContext(ctx, `
		INSERT INTO `+BootstrapStateTable+` (id, status, schema_version, checksum, activated_at, created_at)
		VALUES (TRUE, $1, $2, $3, $4, $4)
		ON CONFLICT (id) DO UPDATE
		SET status = EXCLUDED.status,
		    schema_version = EXCLUDED.schema_version,
		    checksum = EXCLUDED.checksum,
		    activated_at = EXCLUDED.activated_at
	`, statusActive, fmt.Sprintf("%d", version), sum, now.UTC())
	if err != nil {
		return fmt.Errorf("activate bootstrap state: %w", err)
	}
	return nil
}
