package migration

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
)

type upMigration struct {
	name    string
	version uint
}

// sqlMigrations is the embedded sql directory rooted at its files.
func sqlMigrations() (fs.FS, error) {
	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("open migrations: %w", err)
	}
	return sub, nil
}

// readUpMigrations lists the up files of fsys ordered by version. Two
// files claiming one version is an error.
func readUpMigrations(fsys fs.FS) ([]upMigration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	var out []upMigration
	owner := make(map[uint]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		version, ok := parseMigrationVersion(name)
		if !ok {
			return nil, fmt.Errorf("invalid migration filename: %s", name)
		}
		if prev, dup := owner[version]; dup {
			return nil, fmt.Errorf("migrations %s and %s share version %d", prev, name, version)
		}
		owner[version] = name
		out = append(out, upMigration{name: name, version: version})
	}
	if len(out) == 0 {
		return nil, errors.New("no embedded migrations found")
	}

	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })
	return out, nil
}

// LatestMigrationVersion returns the highest embedded migration version.
func LatestMigrationVersion() (uint, error) {
	fsys, err := sqlMigrations()
	if err != nil {
		return 0, err
	}
	migrations, err := readUpMigrations(fsys)
	if err != nil {
		return 0, err
	}
	return migrations[len(migrations)-1].version, nil
}

// MigrationsChecksum fingerprints every up migration, names included, so
// the schema gate notices an edited file as well as a new one.
func MigrationsChecksum() (string, error) {
	fsys, err := sqlMigrations()
	if err != nil {
		return "", err
	}
	return checksum(fsys)
}

func checksum(fsys fs.FS) (string, error) {
	migrations, err := readUpMigrations(fsys)
	if err != nil {
		return "", err
	}

	hasher := sha256.New()
	for _, m := range migrations {
		content, err := fs.ReadFile(fsys, m.name)
		if err != nil {
			return "", fmt.Errorf("read migration %s: %w", m.name, err)
		}
		_, _ = hasher.Write([]byte(m.name))
		_, _ = hasher.Write([]byte{0})
		_, _ = hasher.Write(content)
		_, _ = hasher.Write([]byte{0})
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

func parseMigrationVersion(name string) (uint, bool) {
	prefix, _, found := strings.Cut(name, "_")
	if !found || prefix == "" {
		return 0, false
	}
	parsed, err := strconv.ParseUint(prefix, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(parsed), true
}
