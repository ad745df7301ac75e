// Package storage opens the repositories selected by configuration.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vncsmyrnk/cooperative/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/cooperative/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/cooperative/internal/adapters/repository/sqlite"
	"github.com/vncsmyrnk/cooperative/internal/config"
	"github.com/vncsmyrnk/cooperative/internal/core/ports"
)

type Store struct {
	Subjects ports.SubjectRepository
	Polls    ports.PollRepository
	Votes    ports.VoteRepository

	ping  func(ctx context.Context) error
	close func() error
}

// Open connects to the configured database. Postgres schemas are expected
// to be migrated already (see cmd/migrations); sqlite migrates on open.
func Open(ctx context.Context, db config.Database, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch db.Type {
	case config.DatabaseMemory, "":
		s := memory.NewStore()
		logger.Info("using in-memory store")
		return &Store{
			Subjects: s.Subjects(),
			Polls:    s.Polls(),
			Votes:    s.Votes(),
			ping:     s.Ping,
			close:    s.Close,
		}, nil

	case config.DatabasePostgres:
		conn, err := postgres.Open(ctx, db.URL)
		if err != nil {
			return nil, err
		}
		logger.Info("connected to postgres")
		return &Store{
			Subjects: postgres.NewSubjectRepository(conn),
			Polls:    postgres.NewPollRepository(conn),
			Votes:    postgres.NewVoteRepository(conn),
			ping:     conn.PingContext,
			close:    conn.Close,
		}, nil

	case config.DatabaseSQLite:
		path := db.URL
		if path == "" {
			path = config.Default().SQLitePath()
		}
		s, err := sqlite.NewStore(path)
		if err != nil {
			return nil, err
		}
		logger.Info("opened sqlite store", "path", s.Path())
		return &Store{
			Subjects: s.Subjects(),
			Polls:    s.Polls(),
			Votes:    s.Votes(),
			ping:     s.Ping,
			close:    s.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown database type %q", db.Type)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

func (s *Store) Close() error {
	return s.close()
}
