package sluggable

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

//go:embed data/sql/migrations/*/*.sql
var migrationsFS embed.FS

const migrationsRoot = "data/sql/migrations"

// statementSeparator splits migration files into individually executed statements.
const statementSeparator = "--bun:split"

// GetMigrationsFS returns the embedded migration files for this package
func GetMigrationsFS() embed.FS {
	return migrationsFS
}

// MigrationFiles lists the up migrations for a dialect directory ("sqlite" or
// "postgres") in apply order.
func MigrationFiles(dir string) ([]string, error) {
	entries, err := fs.ReadDir(migrationsFS, path.Join(migrationsRoot, dir))
	if err != nil {
		return nil, fmt.Errorf("sluggable: read migrations %q: %w", dir, err)
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		files = append(files, path.Join(migrationsRoot, dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// ApplyMigrations runs every embedded up migration for the database dialect.
// The statements are idempotent so the call is safe on every start.
func ApplyMigrations(ctx context.Context, db bun.IDB) error {
	dir, err := migrationsDir(db.Dialect().Name())
	if err != nil {
		return err
	}
	files, err := MigrationFiles(dir)
	if err != nil {
		return err
	}
	for _, file := range files {
		raw, err := migrationsFS.ReadFile(file)
		if err != nil {
			return fmt.Errorf("sluggable: read migration %s: %w", file, err)
		}
		for _, stmt := range strings.Split(string(raw), statementSeparator) {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("sluggable: apply migration %s: %w", path.Base(file), err)
			}
		}
	}
	return nil
}

func migrationsDir(name dialect.Name) (string, error) {
	switch name {
	case dialect.SQLite:
		return "sqlite", nil
	case dialect.PG:
		return "postgres", nil
	default:
		return "", fmt.Errorf("sluggable: no migrations for dialect %s", name)
	}
}
