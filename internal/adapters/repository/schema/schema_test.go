package schema

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

var sqliteDialect = Dialect{
	CreateTable: `CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY)`,
	Record:      `INSERT INTO schema_migrations (version) VALUES (?)`,
}

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "schema.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func file(content string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(content)}
}

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"010_votes.up.sql":   file("CREATE TABLE votes (id INTEGER);"),
		"002_polls.up.sql":   file("CREATE TABLE polls (id INTEGER);"),
		"002_polls.down.sql": file("DROP TABLE polls;"),
		"embed.go":           file("package migrations"),
	}

	all, err := Load(fsys)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 2, all[0].Version)
	assert.Equal(t, "002_polls.up.sql", all[0].Name)
	assert.Equal(t, 10, all[1].Version)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(fstest.MapFS{"initial.up.sql": file("SELECT 1;")})
	assert.ErrorContains(t, err, "no version prefix")

	_, err = Load(fstest.MapFS{
		"001_a.up.sql": file("SELECT 1;"),
		"1_b.up.sql":   file("SELECT 1;"),
	})
	assert.ErrorContains(t, err, "share version 1")
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	fsys := fstest.MapFS{
		"001_subjects.up.sql": file("CREATE TABLE subjects (id INTEGER PRIMARY KEY);"),
		"002_polls.up.sql":    file("CREATE TABLE polls (id INTEGER PRIMARY KEY); CREATE INDEX polls_id ON polls (id);"),
	}

	applied, err := Apply(ctx, db, fsys, sqliteDialect)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, applied)

	applied, err = Apply(ctx, db, fsys, sqliteDialect)
	require.NoError(t, err)
	assert.Empty(t, applied)

	fsys["003_votes.up.sql"] = file("CREATE TABLE votes (id INTEGER PRIMARY KEY);")
	applied, err = Apply(ctx, db, fsys, sqliteDialect)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, applied)

	var version int
	require.NoError(t, db.QueryRow(`SELECT MAX(version) FROM schema_migrations`).Scan(&version))
	assert.Equal(t, 3, version)
}

func TestApply_FailedMigrationIsNotRecorded(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	fsys := fstest.MapFS{
		"001_subjects.up.sql": file("CREATE TABLE subjects (id INTEGER PRIMARY KEY);"),
		"002_broken.up.sql":   file("CREATE TABLE polls (id INTEGER PRIMARY KEY); NOT SQL;"),
	}

	applied, err := Apply(ctx, db, fsys, sqliteDialect)
	assert.ErrorContains(t, err, "002_broken.up.sql")
	assert.Equal(t, []int{1}, applied)

	var version int
	require.NoError(t, db.QueryRow(`SELECT MAX(version) FROM schema_migrations`).Scan(&version))
	assert.Equal(t, 1, version)

	var tables int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE name = 'polls'`).Scan(&tables))
	assert.Zero(t, tables)
}
