package services

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"strconv"

	"github.com/vncsmyrnk/cooperative/internal/core/domain"
	"github.com/vncsmyrnk/cooperative/internal/core/ports"
)

type subjectService struct {
	repo   ports.SubjectRepository
	locks  *keyedMutex
	logger *slog.Logger
}

func NewSubjectService(repo ports.SubjectRepository, logger *slog.Logger) ports.SubjectService {
	return &subjectService{
		repo:   repo,
		locks:  newKeyedMutex(),
		logger: resolveLogger(logger),
	}
}

func (s *subjectService) CreateSubject(ctx context.Context, subject domain.Subject) error {
	if err := s.validateID(subject.ID); err != nil {
		return err
	}

	unlock := s.locks.Lock(subjectKey(subject.ID))
	defer unlock()

	exists, err := s.repo.Exists(ctx, subject.ID)
	if err != nil {
		return fmt.Errorf("failed to check subject: %w", err)
	}
	if exists {
		s.logger.Warn("subject already exists", "subject_id", subject.ID)
		return domain.ErrSubjectAlreadyExists
	}

	if err := s.repo.Create(ctx, subject); err != nil {
		if errors.Is(err, domain.ErrSubjectAlreadyExists) {
			s.logger.Warn("subject already exists", "subject_id", subject.ID)
			return err
		}
		return fmt.Errorf("failed to create subject: %w", err)
	}

	s.logger.Info("subject created", "subject_id", subject.ID, "name", subject.Name)
	return nil
}

func (s *subjectService) GetSubjectByID(ctx context.Context, id int64) (*domain.Subject, error) {
	if err := s.validateID(id); err != nil {
		return nil, err
	}

	subject, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}
	return subject, nil
}

func (s *subjectService) GetAllSubjects(ctx context.Context) (iter.Seq[domain.Subject], error) {
	subjects, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get subjects: %w", err)
	}
	return slices.Values(subjects), nil
}

func (s *subjectService) GetSubjectByName(ctx context.Context, name string) (iter.Seq[domain.Subject], error) {
	subjects, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get subjects by name: %w", err)
	}
	return slices.Values(subjects), nil
}

func (s *subjectService) UpdateSubject(ctx context.Context, subject domain.Subject) error {
	if err := s.validateID(subject.ID); err != nil {
		return err
	}

	unlock := s.locks.Lock(subjectKey(subject.ID))
	defer unlock()

	exists, err := s.repo.Exists(ctx, subject.ID)
	if err != nil {
		return fmt.Errorf("failed to check subject: %w", err)
	}
	if !exists {
		s.logger.Warn("subject to update not found", "subject_id", subject.ID)
		return domain.ErrSubjectNotFound
	}

	if _, err := s.repo.Save(ctx, subject); err != nil {
		return fmt.Errorf("failed to update subject: %w", err)
	}

	s.logger.Info("subject updated", "subject_id", subject.ID, "name", subject.Name)
	return nil
}

// DeleteSubject removes the subject only. Polls that reference it are kept.
func (s *subjectService) DeleteSubject(ctx context.Context, id int64) error {
	if err := s.validateID(id); err != nil {
		return err
	}

	unlock := s.locks.Lock(subjectKey(id))
	defer unlock()

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check subject: %w", err)
	}
	if !exists {
		s.logger.Warn("subject to delete not found", "subject_id", id)
		return domain.ErrSubjectNotFound
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
	}

	s.logger.Info("subject deleted", "subject_id", id)
	return nil
}

func (s *subjectService) validateID(id int64) error {
	if !domain.ValidSubjectID(id) {
		s.logger.Warn("invalid subject id", "subject_id", id)
		return domain.ErrInvalidSubjectID
	}
	return nil
}

func subjectKey(id int64) string {
	return "subject:" + strconv.FormatInt(id, 10)
}
