package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/vncsmyrnk/cooperative/internal/adapters/repository/postgres/migrations"
	"github.com/vncsmyrnk/cooperative/internal/adapters/repository/schema"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return db, nil
}

var dialect = schema.Dialect{
	CreateTable: `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`,
	Record: `INSERT INTO schema_migrations (version) VALUES ($1)`,
}

// Migrate applies every embedded up migration that has not run yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := schema.Apply(ctx, db, migrations.FS, dialect)
	return err
}

func hasCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}

// columnTime matches the precision of a TIMESTAMPTZ column, which keeps
// microseconds only.
func columnTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
