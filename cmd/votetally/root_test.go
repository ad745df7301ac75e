package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/cooperative/internal/adapters/repository/sqlite"
	"github.com/vncsmyrnk/cooperative/internal/core/domain"
)

func seedStore(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cooperative.db")

	store, err := sqlite.NewStore(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Subjects().Create(ctx, domain.Subject{ID: 1, Name: "assembly"}))

	start := time.Date(2100, 1, 1, 12, 0, 0, 0, time.UTC)
	for _, name := range []string{"roof", "budget"} {
		poll, err := store.Polls().Save(ctx, domain.Poll{Name: name, StartDate: start, EndDate: start.Add(time.Hour), SubjectID: 1})
		require.NoError(t, err)
		for i, agree := range []bool{true, true, false} {
			_, err := store.Votes().Create(ctx, domain.Vote{
				Voter:     uuid.New(),
				Agree:     agree,
				VoteDate:  start.Add(time.Duration(i) * time.Second),
				SubjectID: 1,
				PollID:    poll.ID,
			})
			require.NoError(t, err)
		}
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("COOPERATIVE_CONFIG", "")
	t.Setenv("DATABASE_TYPE", "")

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVoteTally_JSON(t *testing.T) {
	path := seedStore(t)

	out, err := execute(t, "--db-type", "sqlite", "--db-url", path, "--json", "1")
	require.NoError(t, err)

	var tallies []domain.PollTally
	require.NoError(t, json.Unmarshal([]byte(out), &tallies))
	require.Len(t, tallies, 2)
	assert.Equal(t, "roof", tallies[0].Poll.Name)
	assert.Equal(t, "budget", tallies[1].Poll.Name)
	for _, tally := range tallies {
		assert.Equal(t, domain.VoteCount{Agree: 2, Disagree: 1}, tally.Votes)
	}
}

func TestVoteTally_Table(t *testing.T) {
	path := seedStore(t)

	out, err := execute(t, "-t", "sqlite", "-d", path, "1")
	require.NoError(t, err)
	assert.Contains(t, out, "roof (pending) agree=2 disagree=1 total=3")
}

func TestVoteTally_UnknownSubject(t *testing.T) {
	path := seedStore(t)

	out, err := execute(t, "-t", "sqlite", "-d", path, "42")
	require.NoError(t, err)
	assert.Contains(t, out, "No polls found.")
}

func TestVoteTally_InvalidSubjectID(t *testing.T) {
	_, err := execute(t, "-t", "memory", "-5")
	assert.Error(t, err)

	_, err = execute(t, "-t", "memory", "abc")
	assert.ErrorIs(t, err, domain.ErrInvalidSubjectID)
}

// captureStdStreams points os.Stdout and os.Stderr at files until the test
// ends and returns readers for both.
func captureStdStreams(t *testing.T) (stdout, stderr func() string) {
	t.Helper()
	dir := t.TempDir()
	open := func(name string) *os.File {
		f, err := os.Create(filepath.Join(dir, name))
		require.NoError(t, err)
		t.Cleanup(func() { f.Close() })
		return f
	}
	outFile, errFile := open("stdout"), open("stderr")

	origOut, origErr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = outFile, errFile
	t.Cleanup(func() { os.Stdout, os.Stderr = origOut, origErr })

	read := func(f *os.File) func() string {
		return func() string {
			data, err := os.ReadFile(f.Name())
			require.NoError(t, err)
			return string(data)
		}
	}
	return read(outFile), read(errFile)
}

func TestVoteTally_JSONOnStdout(t *testing.T) {
	path := seedStore(t)
	t.Chdir(t.TempDir())
	t.Setenv("COOPERATIVE_CONFIG", "")
	stdout, stderr := captureStdStreams(t)

	cmd := newRootCmd()
	cmd.SetArgs([]string{"-t", "sqlite", "-d", path, "--json", "1"})
	require.NoError(t, cmd.Execute())

	var tallies []domain.PollTally
	require.NoError(t, json.Unmarshal([]byte(stdout()), &tallies))
	assert.Len(t, tallies, 2)

	logs := stderr()
	assert.Contains(t, logs, "vote tally completed")
	assert.NotContains(t, logs, `"votes"`)
}

func TestVoteTally_RejectsMemoryStore(t *testing.T) {
	out, err := execute(t, "1")
	assert.ErrorIs(t, err, errPersistentStoreRequired)
	assert.Empty(t, out)

	_, err = execute(t, "-t", "memory", "1")
	assert.ErrorIs(t, err, errPersistentStoreRequired)
}
