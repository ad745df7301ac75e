package ports

import (
	"context"
	"iter"

	"github.com/vncsmyrnk/cooperative/internal/core/domain"
)

type SubjectRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
	// Create inserts a new subject and returns domain.ErrSubjectAlreadyExists
	// when the id is taken.
	Create(ctx context.Context, subject domain.Subject) error
	// Save inserts or replaces the subject with the same id.
	Save(ctx context.Context, subject domain.Subject) (*domain.Subject, error)
	GetByID(ctx context.Context, id int64) (*domain.Subject, error)
	GetByName(ctx context.Context, name string) ([]domain.Subject, error)
	GetAll(ctx context.Context) ([]domain.Subject, error)
	DeleteByID(ctx context.Context, id int64) error
}

type SubjectService interface {
	CreateSubject(ctx context.Context, subject domain.Subject) error
	GetSubjectByID(ctx context.Context, id int64) (*domain.Subject, error)
	GetAllSubjects(ctx context.Context) (iter.Seq[domain.Subject], error)
	GetSubjectByName(ctx context.Context, name string) (iter.Seq[domain.Subject], error)
	UpdateSubject(ctx context.Context, subject domain.Subject) error
	DeleteSubject(ctx context.Context, id int64) error
}
