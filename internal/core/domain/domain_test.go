package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_JSON(t *testing.T) {
	var req struct {
		Name  Optional[string]    `json:"name"`
		Start Optional[time.Time] `json:"start"`
		ID    Optional[int64]     `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"name": null, "start": "2030-01-01T00:00:00Z"}`), &req))

	assert.False(t, req.Name.Set)
	assert.False(t, req.ID.Set)
	start, ok := req.Start.Get()
	assert.True(t, ok)
	assert.Equal(t, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), start)

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": null, "start": "2030-01-01T00:00:00Z", "id": null}`, string(data))

	assert.Error(t, json.Unmarshal([]byte(`{"id": "seven"}`), &req))
}

func TestOptional_OrElse(t *testing.T) {
	assert.Equal(t, 3, None[int]().OrElse(3))
	assert.Equal(t, 0, Some(0).OrElse(3))
}

func TestValidationError(t *testing.T) {
	err := NewValidationError(ValidationMissingStartDate, ValidationNameTooLong)

	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.True(t, err.Has(ValidationNameTooLong))
	assert.False(t, err.Has(ValidationMissingID))
	assert.Equal(t, "validation failed: MISSING_START_DATE, NAME_TOO_LONG", err.Error())

	var target *ValidationError
	wrapped := fmt.Errorf("create poll: %w", err)
	require.True(t, errors.As(wrapped, &target))
	assert.Len(t, target.Violations, 2)
}

func TestErrorKinds(t *testing.T) {
	assert.ErrorIs(t, ErrInvalidSubjectID, ErrWrongFormat)
	assert.ErrorIs(t, ErrSubjectAlreadyExists, ErrAlreadyExists)
	assert.ErrorIs(t, ErrVoteAlreadyExists, ErrAlreadyExists)
	assert.ErrorIs(t, ErrSubjectNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrPollNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrVoteNotFound, ErrNotFound)
	assert.NotErrorIs(t, ErrPollNotFound, ErrSubjectNotFound)
}

func TestPoll_StateAt(t *testing.T) {
	start := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	poll := Poll{StartDate: start, EndDate: start.Add(DefaultPollDuration)}

	assert.Equal(t, PollStatePending, poll.StateAt(start.Add(-time.Second)))
	assert.Equal(t, PollStateOpen, poll.StateAt(start))
	assert.Equal(t, PollStateOpen, poll.StateAt(poll.EndDate.Add(-time.Nanosecond)))
	assert.Equal(t, PollStateClosed, poll.StateAt(poll.EndDate))

	assert.False(t, poll.EndedAt(poll.EndDate.Add(-time.Nanosecond)))
	assert.True(t, poll.EndedAt(poll.EndDate))
}

func TestValidSubjectID(t *testing.T) {
	assert.True(t, ValidSubjectID(0))
	assert.True(t, ValidSubjectID(1<<62))
	assert.False(t, ValidSubjectID(-1))
}

func TestVoteCount_Add(t *testing.T) {
	var count VoteCount
	count.Add(Vote{Agree: true})
	count.Add(Vote{Agree: false})
	count.Add(Vote{Agree: true})

	assert.Equal(t, VoteCount{Agree: 2, Disagree: 1}, count)
	assert.Equal(t, int64(3), count.Total())
}
