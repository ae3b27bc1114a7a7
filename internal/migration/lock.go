package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// migrationLockKey is "rzstripe" read as a big-endian int64, so it never
// collides with locks taken by other services sharing the database.
const migrationLockKey int64 = 0x727a737472697065

var ErrMigrationLocked = errors.New("another migrator holds the migration lock")

// sessionLock is a postgres advisory lock pinned to one connection.
// Advisory locks belong to the session, so lock and unlock must share it.
type sessionLock struct {
	conn *sql.Conn
	key  int64
}

func lockSession(ctx context.Context, db *sql.DB, key int64) (*sessionLock, error) {
	if db == nil {
		return nil, errors.New("migration lock requires database handle")
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("reserve migration connection: %w", err)
	}

	var locked bool
	if err := conn.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", key).Scan(&locked); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("acquire migration lock: %w", err)
	}
	if !locked {
		_ = conn.Close()
		return nil, ErrMigrationLocked
	}
	return &sessionLock{conn: conn, key: key}, nil
}

// Release unlocks and hands the connection back to the pool.
func (l *sessionLock) Release(ctx context.Context) error {
	defer l.conn.Close()

	var released bool
	if err := l.conn.QueryRowContext(ctx, "SELECT pg_advisory_unlock($1)", l.key).Scan(&released); err != nil {
		return fmt.Errorf("release migration lock: %w", err)
	}
	if !released {
		return fmt.Errorf("migration lock %d was not held by this session", l.key)
	}
	return nil
}
