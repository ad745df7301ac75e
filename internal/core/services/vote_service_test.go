package services

import (
	"context"
	"math/rand/v2"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/cooperative/internal/core/domain"
	"github.com/vncsmyrnk/cooperative/internal/core/ports"
)

func voteInput(voter uuid.UUID, subjectID, pollID int64, agree bool) ports.CreateVoteInput {
	return ports.CreateVoteInput{
		Voter:     voter,
		Agree:     agree,
		SubjectID: domain.Some(subjectID),
		PollID:    domain.Some(pollID),
	}
}

func TestCreateVote_OncePerVoter(t *testing.T) {
	ctx := context.Background()
	ts := newTestServices()
	ts.mustCreateSubject(t, 1)
	poll := ts.mustCreatePoll(t, 1, baseTime)
	ts.clock.now = baseTime.Add(30 * time.Second)

	voter := uuid.New()
	vote, err := ts.votes.CreateVote(ctx, voteInput(voter, 1, poll.ID, true))
	require.NoError(t, err)
	assert.Equal(t, baseTime.Add(30*time.Second), vote.VoteDate)
	assert.Equal(t, voter, vote.Voter)
	assert.True(t, vote.Agree)

	_, err = ts.votes.CreateVote(ctx, voteInput(voter, 1, poll.ID, false))
	assert.ErrorIs(t, err, domain.ErrVoteAlreadyExists)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	stored, err := ts.votes.GetVoteBySubjectIDPollIDVoter(ctx, 1, poll.ID, voter)
	require.NoError(t, err)
	assert.Equal(t, vote, stored)
}

func TestCreateVote_ClosingBoundary(t *testing.T) {
	ctx := context.Background()
	ts := newTestServices()
	ts.mustCreateSubject(t, 1)
	poll := ts.mustCreatePoll(t, 1, baseTime)

	ts.clock.now = poll.EndDate.Add(-time.Nanosecond)
	_, err := ts.votes.CreateVote(ctx, voteInput(uuid.New(), 1, poll.ID, true))
	require.NoError(t, err)

	ts.clock.now = poll.EndDate
	_, err = ts.votes.CreateVote(ctx, voteInput(uuid.New(), 1, poll.ID, true))
	assert.ErrorIs(t, err, domain.ErrPollAlreadyEnded)

	ts.clock.now = poll.EndDate.Add(time.Hour)
	_, err = ts.votes.CreateVote(ctx, voteInput(uuid.New(), 1, poll.ID, true))
	assert.ErrorIs(t, err, domain.ErrPollAlreadyEnded)
}

func TestCreateVote_FailsFast(t *testing.T) {
	ctx := context.Background()
	ts := newTestServices()

	tests := []struct {
		name  string
		input ports.CreateVoteInput
		want  domain.Validation
	}{
		{"everything missing", ports.CreateVoteInput{}, domain.ValidationMissingVoter},
		{"missing subject", ports.CreateVoteInput{Voter: uuid.New()}, domain.ValidationMissingSubjectID},
		{"missing poll", ports.CreateVoteInput{Voter: uuid.New(), SubjectID: domain.Some(int64(1))}, domain.ValidationMissingPollID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.votes.CreateVote(ctx, tt.input)
			var validationErr *domain.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, []domain.Validation{tt.want}, validationErr.Violations)
		})
	}
}

func TestCreateVote_PollNotFound(t *testing.T) {
	ctx := context.Background()
	ts := newTestServices()
	ts.mustCreateSubject(t, 1)
	poll := ts.mustCreatePoll(t, 1, baseTime)

	_, err := ts.votes.CreateVote(ctx, voteInput(uuid.New(), 1, poll.ID+1, true))
	assert.ErrorIs(t, err, domain.ErrPollNotFound)

	// A missing subject surfaces as a missing poll.
	_, err = ts.votes.CreateVote(ctx, voteInput(uuid.New(), 2, poll.ID, true))
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
}

func TestCreateVote_ConcurrentDuplicates(t *testing.T) {
	ctx := context.Background()
	ts := newTestServices()
	ts.mustCreateSubject(t, 1)
	poll := ts.mustCreatePoll(t, 1, baseTime)

	voter := uuid.New()
	const attempts = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ts.votes.CreateVote(ctx, voteInput(voter, 1, poll.ID, true))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if assert.ErrorIs(t, err, domain.ErrVoteAlreadyExists) {
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)
}

func TestGetVotes(t *testing.T) {
	ctx := context.Background()
	ts := newTestServices()
	ts.mustCreateSubject(t, 1)
	poll := ts.mustCreatePoll(t, 1, baseTime)

	empty, err := ts.votes.GetVoteBySubjectIDPollID(ctx, 5, 5)
	require.NoError(t, err)
	assert.Empty(t, slices.Collect(empty))

	_, err = ts.votes.CreateVote(ctx, voteInput(uuid.New(), 1, poll.ID, true))
	require.NoError(t, err)
	_, err = ts.votes.CreateVote(ctx, voteInput(uuid.New(), 1, poll.ID, false))
	require.NoError(t, err)

	votes, err := ts.votes.GetVoteBySubjectIDPollID(ctx, 1, poll.ID)
	require.NoError(t, err)
	assert.Len(t, slices.Collect(votes), 2)

	missing, err := ts.votes.GetVoteBySubjectIDPollIDVoter(ctx, 1, poll.ID, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGetVoteCountForPoll(t *testing.T) {
	ctx := context.Background()
	ts := newTestServices()
	ts.mustCreateSubject(t, 1)
	poll := ts.mustCreatePoll(t, 1, baseTime)

	count, err := ts.votes.GetVoteCountForPoll(ctx, 1, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VoteCount{}, count)

	for _, agree := range []bool{true, false, true, true, false} {
		_, err := ts.votes.CreateVote(ctx, voteInput(uuid.New(), 1, poll.ID, agree))
		require.NoError(t, err)
	}

	count, err = ts.votes.GetVoteCountForPoll(ctx, 1, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VoteCount{Agree: 3, Disagree: 2}, count)
	assert.Equal(t, int64(5), count.Total())
}

func TestCountVotes_OrderIndependent(t *testing.T) {
	votes := make([]domain.Vote, 0, 50)
	for i := range 50 {
		votes = append(votes, domain.Vote{Voter: uuid.New(), Agree: i%3 == 0})
	}
	want := countVotes(slices.Values(votes))
	assert.Equal(t, domain.VoteCount{Agree: 17, Disagree: 33}, want)

	rng := rand.New(rand.NewPCG(1, 2))
	for range 10 {
		rng.Shuffle(len(votes), func(i, j int) { votes[i], votes[j] = votes[j], votes[i] })
		assert.Equal(t, want, countVotes(slices.Values(votes)))
	}
}

func TestTallySubject(t *testing.T) {
	ctx := context.Background()
	ts := newTestServices()
	ts.mustCreateSubject(t, 1)

	var polls []*domain.Poll
	for i := range 5 {
		poll := ts.mustCreatePoll(t, 1, baseTime)
		polls = append(polls, poll)
		for j := range i {
			_, err := ts.votes.CreateVote(ctx, voteInput(uuid.New(), 1, poll.ID, j%2 == 0))
			require.NoError(t, err)
		}
	}

	tallies, err := ts.tally.TallySubject(ctx, 1)
	require.NoError(t, err)
	require.Len(t, tallies, len(polls))
	for i, tally := range tallies {
		assert.Equal(t, polls[i].ID, tally.Poll.ID)
		assert.Equal(t, int64(i), tally.Votes.Total())
		assert.Equal(t, int64((i+1)/2), tally.Votes.Agree)
	}

	empty, err := ts.tally.TallySubject(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
