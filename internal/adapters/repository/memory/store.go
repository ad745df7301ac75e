// Package memory keeps subjects, polls and votes in process memory. It backs
// the development server and the service tests.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/cooperative/internal/core/domain"
	"github.com/vncsmyrnk/cooperative/internal/core/ports"
)

type pollKey struct {
	subjectID int64
	id        int64
}

type voteKey struct {
	subjectID int64
	pollID    int64
	voter     uuid.UUID
}

// Store holds all three aggregates behind one lock so that deleting a poll
// and its votes is atomic.
type Store struct {
	mu         sync.RWMutex
	subjects   map[int64]domain.Subject
	polls      map[pollKey]domain.Poll
	votes      map[voteKey]domain.Vote
	lastPollID int64
}

func NewStore() *Store {
	return &Store{
		subjects: make(map[int64]domain.Subject),
		polls:    make(map[pollKey]domain.Poll),
		votes:    make(map[voteKey]domain.Vote),
	}
}

func (s *Store) Subjects() ports.SubjectRepository {
	return &subjectRepository{store: s}
}

func (s *Store) Polls() ports.PollRepository {
	return &pollRepository{store: s}
}

func (s *Store) Votes() ports.VoteRepository {
	return &voteRepository{store: s}
}

func (s *Store) Ping(_ context.Context) error {
	return nil
}

func (s *Store) Close() error {
	return nil
}

func sortedValues[K comparable, V any](m map[K]V, keep func(V) bool, compare func(a, b V) int) []V {
	result := make([]V, 0)
	for _, v := range m {
		if keep(v) {
			result = append(result, v)
		}
	}
	slices.SortFunc(result, compare)
	return result
}

func compareSubjects(a, b domain.Subject) int {
	return cmp.Compare(a.ID, b.ID)
}

func comparePolls(a, b domain.Poll) int {
	return cmp.Compare(a.ID, b.ID)
}

func compareVotes(a, b domain.Vote) int {
	if c := a.VoteDate.Compare(b.VoteDate); c != 0 {
		return c
	}
	return cmp.Compare(a.Voter.String(), b.Voter.String())
}
