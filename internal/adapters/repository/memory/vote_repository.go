package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/cooperative/internal/core/domain"
	"github.com/vncsmyrnk/cooperative/internal/core/ports"
)

var _ ports.VoteRepository = (*voteRepository)(nil)

type voteRepository struct {
	store *Store
}

func (r *voteRepository) Create(_ context.Context, vote domain.Vote) (*domain.Vote, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	key := voteKey{subjectID: vote.SubjectID, pollID: vote.PollID, voter: vote.Voter}
	if _, ok := r.store.votes[key]; ok {
		return nil, domain.ErrVoteAlreadyExists
	}
	if _, ok := r.store.polls[pollKey{subjectID: vote.SubjectID, id: vote.PollID}]; !ok {
		return nil, domain.ErrPollNotFound
	}
	r.store.votes[key] = vote
	return &vote, nil
}

func (r *voteRepository) GetBySubjectIDPollID(_ context.Context, subjectID, pollID int64) ([]domain.Vote, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return sortedValues(r.store.votes, func(v domain.Vote) bool {
		return v.SubjectID == subjectID && v.PollID == pollID
	}, compareVotes), nil
}

func (r *voteRepository) GetBySubjectIDPollIDVoter(_ context.Context, subjectID, pollID int64, voter uuid.UUID) (*domain.Vote, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	vote, ok := r.store.votes[voteKey{subjectID: subjectID, pollID: pollID, voter: voter}]
	if !ok {
		return nil, nil
	}
	return &vote, nil
}
