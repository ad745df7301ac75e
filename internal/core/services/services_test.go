package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/cooperative/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/cooperative/internal/core/domain"
	"github.com/vncsmyrnk/cooperative/internal/core/ports"
)

var errStoreDown = errors.New("store down")

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

type testServices struct {
	store    *memory.Store
	clock    *fixedClock
	subjects ports.SubjectService
	polls    ports.PollService
	votes    ports.VoteService
	tally    ports.TallyService
}

var baseTime = time.Date(2030, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestServices() *testServices {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	clock := &fixedClock{now: baseTime}

	subjects := NewSubjectService(store.Subjects(), logger)
	polls := NewPollService(store.Polls(), subjects, logger)
	votes := NewVoteService(store.Votes(), polls, clock, logger)
	return &testServices{
		store:    store,
		clock:    clock,
		subjects: subjects,
		polls:    polls,
		votes:    votes,
		tally:    NewTallyService(polls, votes, 2, logger),
	}
}

func (ts *testServices) mustCreateSubject(t *testing.T, id int64) {
	t.Helper()
	require.NoError(t, ts.subjects.CreateSubject(context.Background(), domain.Subject{ID: id, Name: "s"}))
}

func (ts *testServices) mustCreatePoll(t *testing.T, subjectID int64, start time.Time) *domain.Poll {
	t.Helper()
	poll, err := ts.polls.CreatePoll(context.Background(), ports.CreatePollInput{
		Name:      "p",
		StartDate: domain.Some(start),
		SubjectID: domain.Some(subjectID),
	})
	require.NoError(t, err)
	return poll
}

// failingSubjectRepository reports errStoreDown from every call.
type failingSubjectRepository struct {
	ports.SubjectRepository
}

func (failingSubjectRepository) Exists(context.Context, int64) (bool, error) {
	return false, errStoreDown
}

func (failingSubjectRepository) GetByID(context.Context, int64) (*domain.Subject, error) {
	return nil, errStoreDown
}

// racingSubjectRepository passes the existence pre-check but loses the
// insert to a concurrent writer.
type racingSubjectRepository struct {
	ports.SubjectRepository
}

func (racingSubjectRepository) Exists(context.Context, int64) (bool, error) {
	return false, nil
}

func (racingSubjectRepository) Create(context.Context, domain.Subject) error {
	return domain.ErrSubjectAlreadyExists
}
