package memory

import (
	"context"

	"github.com/vncsmyrnk/cooperative/internal/core/domain"
	"github.com/vncsmyrnk/cooperative/internal/core/ports"
)

var _ ports.SubjectRepository = (*subjectRepository)(nil)

type subjectRepository struct {
	store *Store
}

func (r *subjectRepository) Exists(_ context.Context, id int64) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	_, ok := r.store.subjects[id]
	return ok, nil
}

func (r *subjectRepository) Create(_ context.Context, subject domain.Subject) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.subjects[subject.ID]; ok {
		return domain.ErrSubjectAlreadyExists
	}
	r.store.subjects[subject.ID] = subject
	return nil
}

func (r *subjectRepository) Save(_ context.Context, subject domain.Subject) (*domain.Subject, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.subjects[subject.ID] = subject
	return &subject, nil
}

func (r *subjectRepository) GetByID(_ context.Context, id int64) (*domain.Subject, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	subject, ok := r.store.subjects[id]
	if !ok {
		return nil, nil
	}
	return &subject, nil
}

func (r *subjectRepository) GetByName(_ context.Context, name string) ([]domain.Subject, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return sortedValues(r.store.subjects, func(s domain.Subject) bool {
		return s.Name == name
	}, compareSubjects), nil
}

func (r *subjectRepository) GetAll(_ context.Context) ([]domain.Subject, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return sortedValues(r.store.subjects, func(domain.Subject) bool {
		return true
	}, compareSubjects), nil
}

func (r *subjectRepository) DeleteByID(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.subjects, id)
	return nil
}
