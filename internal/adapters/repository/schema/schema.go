// Package schema applies numbered SQL migrations to a database/sql handle.
//
// Migration files are named "<version>_<name>.up.sql". Applied versions are
// kept in a schema_migrations table, and each file runs in its own
// transaction together with the row that records it.
package schema

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"slices"
	"strconv"
	"strings"
)

const upSuffix = ".up.sql"

// Dialect holds the statements that differ between SQL engines.
type Dialect struct {
	// CreateTable creates schema_migrations if it does not exist.
	CreateTable string
	// Record inserts one applied version, bound as the only argument.
	Record string
}

type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Load reads every up migration in fsys, ordered by version.
func Load(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	var all []Migration
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, upSuffix) {
			continue
		}
		prefix, _, ok := strings.Cut(name, "_")
		version, err := strconv.Atoi(prefix)
		if !ok || err != nil || version <= 0 {
			return nil, fmt.Errorf("migration %s has no version prefix", name)
		}
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		all = append(all, Migration{Version: version, Name: name, SQL: string(content)})
	}

	slices.SortFunc(all, func(a, b Migration) int { return a.Version - b.Version })
	for i := 1; i < len(all); i++ {
		if all[i].Version == all[i-1].Version {
			return nil, fmt.Errorf("migrations %s and %s share version %d", all[i-1].Name, all[i].Name, all[i].Version)
		}
	}
	return all, nil
}

// Apply runs the migrations in fsys newer than the recorded version and
// returns the versions it applied.
func Apply(ctx context.Context, db *sql.DB, fsys fs.FS, d Dialect) ([]int, error) {
	all, err := Load(fsys)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, d.CreateTable); err != nil {
		return nil, fmt.Errorf("failed to create schema_migrations table: %w", err)
	}
	var current int
	if err := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return nil, fmt.Errorf("failed to get current migration version: %w", err)
	}

	var applied []int
	for _, m := range all {
		if m.Version <= current {
			continue
		}
		if err := apply(ctx, db, d, m); err != nil {
			return applied, fmt.Errorf("failed to execute migration %s: %w", m.Name, err)
		}
		applied = append(applied, m.Version)
	}
	return applied, nil
}

func apply(ctx context.Context, db *sql.DB, d Dialect, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, d.Record, m.Version); err != nil {
		return err
	}
	return tx.Commit()
}
