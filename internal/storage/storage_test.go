package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/cooperative/internal/config"
	"github.com/vncsmyrnk/cooperative/internal/core/domain"
)

func TestOpen_Memory(t *testing.T) {
	store, err := Open(context.Background(), config.Database{Type: config.DatabaseMemory}, nil)
	require.NoError(t, err)
	defer store.Close()

	assert.NoError(t, store.Ping(context.Background()))
	require.NoError(t, store.Subjects.Create(context.Background(), domain.Subject{ID: 1}))
}

func TestOpen_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cooperative.db")
	store, err := Open(context.Background(), config.Database{Type: config.DatabaseSQLite, URL: path}, nil)
	require.NoError(t, err)
	defer store.Close()

	assert.NoError(t, store.Ping(context.Background()))
	exists, err := store.Subjects.Exists(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(context.Background(), config.Database{Type: "mongo"}, nil)
	assert.Error(t, err)

	_, err = Open(context.Background(), config.Database{Type: config.DatabasePostgres}, nil)
	assert.Error(t, err)
}
