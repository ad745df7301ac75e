package ports

import (
	"context"
	"iter"
	"time"

	"github.com/vncsmyrnk/cooperative/internal/core/domain"
)

type PollRepository interface {
	// Save inserts the poll when its ID is zero and assigns one, otherwise
	// it replaces the stored poll.
	Save(ctx context.Context, poll domain.Poll) (*domain.Poll, error)
	GetBySubjectID(ctx context.Context, subjectID int64) ([]domain.Poll, error)
	GetBySubjectIDAndName(ctx context.Context, subjectID int64, name string) ([]domain.Poll, error)
	GetBySubjectIDAndID(ctx context.Context, subjectID, id int64) (*domain.Poll, error)
	DeleteBySubjectIDAndID(ctx context.Context, subjectID, id int64) error
}

type CreatePollInput struct {
	Name      string
	StartDate domain.Optional[time.Time]
	EndDate   domain.Optional[time.Time]
	SubjectID domain.Optional[int64]
}

// UpdatePollInput only overrides the fields that are set.
type UpdatePollInput struct {
	ID        domain.Optional[int64]
	SubjectID domain.Optional[int64]
	Name      domain.Optional[string]
	StartDate domain.Optional[time.Time]
	EndDate   domain.Optional[time.Time]
}

// PollService lookups by subject are lenient and return an empty sequence
// for an unknown subject. GetPollByIDAndSubjectID is strict and returns
// domain.ErrSubjectNotFound instead.
type PollService interface {
	CreatePoll(ctx context.Context, input CreatePollInput) (*domain.Poll, error)
	GetPollBySubjectID(ctx context.Context, subjectID int64) (iter.Seq[domain.Poll], error)
	GetPollByNameAndSubjectID(ctx context.Context, name string, subjectID int64) (iter.Seq[domain.Poll], error)
	GetPollByIDAndSubjectID(ctx context.Context, id, subjectID int64) (*domain.Poll, error)
	UpdatePoll(ctx context.Context, input UpdatePollInput) (*domain.Poll, error)
	DeletePollByIDAndSubjectID(ctx context.Context, id, subjectID int64) error
}
