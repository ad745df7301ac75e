package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/cooperative/internal/core/domain"
)

func TestSubjectRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Subjects()

	require.NoError(t, repo.Create(ctx, domain.Subject{ID: 2, Name: "b"}))
	require.NoError(t, repo.Create(ctx, domain.Subject{ID: 1, Name: "a"}))
	assert.ErrorIs(t, repo.Create(ctx, domain.Subject{ID: 1, Name: "dup"}), domain.ErrSubjectAlreadyExists)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Subject{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}, all)

	_, err = repo.Save(ctx, domain.Subject{ID: 2, Name: "a"})
	require.NoError(t, err)
	byName, err := repo.GetByName(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, byName, 2)

	require.NoError(t, repo.DeleteByID(ctx, 1))
	exists, err := repo.Exists(ctx, 1)
	require.NoError(t, err)
	assert.False(t, exists)

	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPollRepository_AssignsIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Polls()
	start := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	first, err := repo.Save(ctx, domain.Poll{SubjectID: 1, StartDate: start, EndDate: start.Add(time.Minute)})
	require.NoError(t, err)
	second, err := repo.Save(ctx, domain.Poll{SubjectID: 2, StartDate: start, EndDate: start.Add(time.Minute)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	got, err := repo.GetBySubjectIDAndID(ctx, 2, first.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "polls are scoped by subject")

	bySubject, err := repo.GetBySubjectID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []domain.Poll{*first}, bySubject)
}

func TestDeletePoll_RemovesVotes(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	start := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	kept, err := store.Polls().Save(ctx, domain.Poll{SubjectID: 1, StartDate: start, EndDate: start.Add(time.Minute)})
	require.NoError(t, err)
	removed, err := store.Polls().Save(ctx, domain.Poll{SubjectID: 1, StartDate: start, EndDate: start.Add(time.Minute)})
	require.NoError(t, err)

	for _, pollID := range []int64{kept.ID, removed.ID} {
		_, err := store.Votes().Create(ctx, domain.Vote{Voter: uuid.New(), SubjectID: 1, PollID: pollID, VoteDate: start})
		require.NoError(t, err)
	}

	require.NoError(t, store.Polls().DeleteBySubjectIDAndID(ctx, 1, removed.ID))

	votes, err := store.Votes().GetBySubjectIDPollID(ctx, 1, removed.ID)
	require.NoError(t, err)
	assert.Empty(t, votes)

	votes, err = store.Votes().GetBySubjectIDPollID(ctx, 1, kept.ID)
	require.NoError(t, err)
	assert.Len(t, votes, 1)
}

func TestVoteRepository(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	start := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	poll, err := store.Polls().Save(ctx, domain.Poll{SubjectID: 1, StartDate: start, EndDate: start.Add(time.Minute)})
	require.NoError(t, err)

	repo := store.Votes()
	vote := domain.Vote{Voter: uuid.New(), Agree: true, SubjectID: 1, PollID: poll.ID, VoteDate: start}
	_, err = repo.Create(ctx, vote)
	require.NoError(t, err)

	_, err = repo.Create(ctx, vote)
	assert.ErrorIs(t, err, domain.ErrVoteAlreadyExists)

	_, err = repo.Create(ctx, domain.Vote{Voter: uuid.New(), SubjectID: 1, PollID: 42})
	assert.ErrorIs(t, err, domain.ErrPollNotFound)

	later := domain.Vote{Voter: uuid.New(), SubjectID: 1, PollID: poll.ID, VoteDate: start.Add(time.Second)}
	_, err = repo.Create(ctx, later)
	require.NoError(t, err)

	votes, err := repo.GetBySubjectIDPollID(ctx, 1, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Vote{vote, later}, votes)

	got, err := repo.GetBySubjectIDPollIDVoter(ctx, 1, poll.ID, vote.Voter)
	require.NoError(t, err)
	assert.Equal(t, &vote, got)
}
