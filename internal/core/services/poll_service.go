package services

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"strconv"
	"unicode/utf8"

	"github.com/vncsmyrnk/cooperative/internal/core/domain"
	"github.com/vncsmyrnk/cooperative/internal/core/ports"
)

type pollService struct {
	repo     ports.PollRepository
	subjects ports.SubjectService
	locks    *keyedMutex
	logger   *slog.Logger
}

func NewPollService(repo ports.PollRepository, subjects ports.SubjectService, logger *slog.Logger) ports.PollService {
	return &pollService{
		repo:     repo,
		subjects: subjects,
		locks:    newKeyedMutex(),
		logger:   resolveLogger(logger),
	}
}

// CreatePoll reports every structural violation at once. A missing end date
// is filled in only after validation so that it never counts as invalid.
func (s *pollService) CreatePoll(ctx context.Context, input ports.CreatePollInput) (*domain.Poll, error) {
	if err := validatePollForCreate(input); err != nil {
		s.logger.Warn("poll create rejected", "subject_id", input.SubjectID.Value, "error", err)
		return nil, err
	}

	startDate := input.StartDate.Value
	poll := domain.Poll{
		Name:      input.Name,
		StartDate: startDate,
		EndDate:   input.EndDate.OrElse(startDate.Add(domain.DefaultPollDuration)),
		SubjectID: input.SubjectID.Value,
	}

	if err := s.requireSubject(ctx, poll.SubjectID); err != nil {
		return nil, err
	}

	created, err := s.repo.Save(ctx, poll)
	if err != nil {
		return nil, fmt.Errorf("failed to create poll: %w", err)
	}

	s.logger.Info("poll created",
		"poll_id", created.ID,
		"subject_id", created.SubjectID,
		"start_date", created.StartDate,
		"end_date", created.EndDate,
	)
	return created, nil
}

// GetPollBySubjectID yields nothing for a missing subject, including the
// polls a deleted subject left behind.
func (s *pollService) GetPollBySubjectID(ctx context.Context, subjectID int64) (iter.Seq[domain.Poll], error) {
	ok, err := s.subjectExists(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return slices.Values([]domain.Poll(nil)), nil
	}
	polls, err := s.repo.GetBySubjectID(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get polls: %w", err)
	}
	return slices.Values(polls), nil
}

func (s *pollService) GetPollByNameAndSubjectID(ctx context.Context, name string, subjectID int64) (iter.Seq[domain.Poll], error) {
	ok, err := s.subjectExists(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return slices.Values([]domain.Poll(nil)), nil
	}
	polls, err := s.repo.GetBySubjectIDAndName(ctx, subjectID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get polls by name: %w", err)
	}
	return slices.Values(polls), nil
}

func (s *pollService) GetPollByIDAndSubjectID(ctx context.Context, id, subjectID int64) (*domain.Poll, error) {
	if err := s.requireSubject(ctx, subjectID); err != nil {
		return nil, err
	}

	poll, err := s.repo.GetBySubjectIDAndID(ctx, subjectID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}
	return poll, nil
}

// UpdatePoll merges the supplied fields into the stored poll and validates
// the dates again on the merged result.
func (s *pollService) UpdatePoll(ctx context.Context, input ports.UpdatePollInput) (*domain.Poll, error) {
	if err := validatePollForUpdate(input); err != nil {
		s.logger.Warn("poll update rejected", "poll_id", input.ID.Value, "subject_id", input.SubjectID.Value, "error", err)
		return nil, err
	}

	id, subjectID := input.ID.Value, input.SubjectID.Value
	if err := s.requireSubject(ctx, subjectID); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(pollKey(subjectID, id))
	defer unlock()

	existing, err := s.repo.GetBySubjectIDAndID(ctx, subjectID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}
	if existing == nil {
		s.logger.Warn("poll to update not found", "poll_id", id, "subject_id", subjectID)
		return nil, domain.ErrPollNotFound
	}

	merged := *existing
	if name, ok := input.Name.Get(); ok {
		merged.Name = name
	}
	if startDate, ok := input.StartDate.Get(); ok {
		merged.StartDate = startDate
	}
	if endDate, ok := input.EndDate.Get(); ok {
		merged.EndDate = endDate
	}
	if !merged.StartDate.Before(merged.EndDate) {
		s.logger.Warn("poll update rejected", "poll_id", id, "subject_id", subjectID,
			"error", domain.ValidationEndDateEarlierThanStartDate)
		return nil, domain.NewValidationError(domain.ValidationEndDateEarlierThanStartDate)
	}

	updated, err := s.repo.Save(ctx, merged)
	if err != nil {
		return nil, fmt.Errorf("failed to update poll: %w", err)
	}

	s.logger.Info("poll updated", "poll_id", updated.ID, "subject_id", updated.SubjectID)
	return updated, nil
}

func (s *pollService) DeletePollByIDAndSubjectID(ctx context.Context, id, subjectID int64) error {
	if err := s.requireSubject(ctx, subjectID); err != nil {
		return err
	}

	unlock := s.locks.Lock(pollKey(subjectID, id))
	defer unlock()

	existing, err := s.repo.GetBySubjectIDAndID(ctx, subjectID, id)
	if err != nil {
		return fmt.Errorf("failed to get poll: %w", err)
	}
	if existing == nil {
		s.logger.Warn("poll to delete not found", "poll_id", id, "subject_id", subjectID)
		return domain.ErrPollNotFound
	}

	if err := s.repo.DeleteBySubjectIDAndID(ctx, subjectID, id); err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}

	s.logger.Info("poll deleted", "poll_id", id, "subject_id", subjectID)
	return nil
}

func (s *pollService) requireSubject(ctx context.Context, subjectID int64) error {
	subject, err := s.subjects.GetSubjectByID(ctx, subjectID)
	if err != nil {
		return err
	}
	if subject == nil {
		s.logger.Warn("subject not found", "subject_id", subjectID)
		return domain.ErrSubjectNotFound
	}
	return nil
}

func (s *pollService) subjectExists(ctx context.Context, subjectID int64) (bool, error) {
	if !domain.ValidSubjectID(subjectID) {
		return false, nil
	}
	subject, err := s.subjects.GetSubjectByID(ctx, subjectID)
	if err != nil {
		return false, err
	}
	return subject != nil, nil
}

func validatePollForCreate(input ports.CreatePollInput) error {
	var violations []domain.Validation
	if !input.StartDate.Set {
		violations = append(violations, domain.ValidationMissingStartDate)
	}
	if !input.SubjectID.Set {
		violations = append(violations, domain.ValidationMissingSubjectID)
	}
	if nameTooLong(input.Name) {
		violations = append(violations, domain.ValidationNameTooLong)
	}
	if input.StartDate.Set && input.EndDate.Set && !input.StartDate.Value.Before(input.EndDate.Value) {
		violations = append(violations, domain.ValidationEndDateEarlierThanStartDate)
	}
	if len(violations) > 0 {
		return domain.NewValidationError(violations...)
	}
	return nil
}

func validatePollForUpdate(input ports.UpdatePollInput) error {
	var violations []domain.Validation
	if !input.ID.Set {
		violations = append(violations, domain.ValidationMissingID)
	}
	if !input.SubjectID.Set {
		violations = append(violations, domain.ValidationMissingSubjectID)
	}
	if name, ok := input.Name.Get(); ok && nameTooLong(name) {
		violations = append(violations, domain.ValidationNameTooLong)
	}
	if len(violations) > 0 {
		return domain.NewValidationError(violations...)
	}
	return nil
}

func nameTooLong(name string) bool {
	return utf8.RuneCountInString(name) > domain.PollNameMaxLength
}

func pollKey(subjectID, id int64) string {
	return "poll:" + strconv.FormatInt(subjectID, 10) + ":" + strconv.FormatInt(id, 10)
}
