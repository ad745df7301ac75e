package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/vncsmyrnk/cooperative/internal/adapters/repository/schema"
	"github.com/vncsmyrnk/cooperative/internal/adapters/repository/sqlite/migrations"
	"github.com/vncsmyrnk/cooperative/internal/core/ports"
)

var dialect = schema.Dialect{
	CreateTable: `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`,
	Record: `INSERT INTO schema_migrations (version) VALUES (?)`,
}

// Store gives access to the repositories backed by one SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the database file at path and runs pending
// migrations.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: path,
	}
	if _, err := schema.Apply(context.Background(), db, migrations.FS, dialect); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Subjects() ports.SubjectRepository {
	return &subjectRepository{db: s.db}
}

func (s *Store) Polls() ports.PollRepository {
	return &pollRepository{db: s.db}
}

func (s *Store) Votes() ports.VoteRepository {
	return &voteRepository{db: s.db}
}

func hasCode(err error, codes ...int) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	for _, code := range codes {
		if sqliteErr.Code() == code {
			return true
		}
	}
	return false
}

// Constraint errors may carry only the primary result code, so the message
// is checked as well.
func isUniqueViolation(err error) bool {
	return hasCode(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY) ||
		(hasCode(err, sqlite3.SQLITE_CONSTRAINT) && strings.Contains(err.Error(), "UNIQUE constraint failed"))
}

func isForeignKeyViolation(err error) bool {
	return hasCode(err, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY) ||
		(hasCode(err, sqlite3.SQLITE_CONSTRAINT) && strings.Contains(err.Error(), "FOREIGN KEY constraint failed"))
}

func toUnix(t time.Time) int64 {
	return t.UnixNano()
}

func fromUnix(n int64) time.Time {
	return time.Unix(0, n).UTC()
}
