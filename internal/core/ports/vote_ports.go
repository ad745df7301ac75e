package ports

import (
	"context"
	"iter"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/cooperative/internal/core/domain"
)

type VoteRepository interface {
	// Create returns domain.ErrVoteAlreadyExists when the voter already
	// voted on the poll.
	Create(ctx context.Context, vote domain.Vote) (*domain.Vote, error)
	GetBySubjectIDPollID(ctx context.Context, subjectID, pollID int64) ([]domain.Vote, error)
	GetBySubjectIDPollIDVoter(ctx context.Context, subjectID, pollID int64, voter uuid.UUID) (*domain.Vote, error)
}

type CreateVoteInput struct {
	Voter     uuid.UUID
	Agree     bool
	SubjectID domain.Optional[int64]
	PollID    domain.Optional[int64]
}

type VoteService interface {
	CreateVote(ctx context.Context, input CreateVoteInput) (*domain.Vote, error)
	GetVoteBySubjectIDPollID(ctx context.Context, subjectID, pollID int64) (iter.Seq[domain.Vote], error)
	GetVoteBySubjectIDPollIDVoter(ctx context.Context, subjectID, pollID int64, voter uuid.UUID) (*domain.Vote, error)
	GetVoteCountForPoll(ctx context.Context, subjectID, pollID int64) (domain.VoteCount, error)
}
