package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Callers match on these with errors.Is; the entity specific
// errors below wrap exactly one kind.
var (
	ErrWrongFormat      = errors.New("wrong format")
	ErrAlreadyExists    = errors.New("already exists")
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrPollAlreadyEnded = errors.New("poll already ended")
)

var (
	ErrInvalidSubjectID     = fmt.Errorf("subject id must be between 0 and 9223372036854775807: %w", ErrWrongFormat)
	ErrSubjectAlreadyExists = fmt.Errorf("subject %w", ErrAlreadyExists)
	ErrSubjectNotFound      = fmt.Errorf("subject %w", ErrNotFound)
	ErrPollNotFound         = fmt.Errorf("poll %w", ErrNotFound)
	ErrVoteAlreadyExists    = fmt.Errorf("vote %w", ErrAlreadyExists)
	ErrVoteNotFound         = fmt.Errorf("vote %w", ErrNotFound)
)

// Validation names a single violated poll or vote rule.
type Validation string

const (
	ValidationMissingID                   Validation = "MISSING_ID"
	ValidationMissingStartDate            Validation = "MISSING_START_DATE"
	ValidationMissingSubjectID            Validation = "MISSING_SUBJECT_ID"
	ValidationMissingPollID               Validation = "MISSING_POLL_ID"
	ValidationMissingVoter                Validation = "MISSING_VOTER"
	ValidationNameTooLong                 Validation = "NAME_TOO_LONG"
	ValidationEndDateEarlierThanStartDate Validation = "END_DATE_EARLIER_THAN_START_DATE"
)

// ValidationError carries every rule a request violated.
type ValidationError struct {
	Violations []Validation
}

func NewValidationError(violations ...Validation) *ValidationError {
	return &ValidationError{Violations: violations}
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		names[i] = string(v)
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(names, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Has reports whether v is among the violations.
func (e *ValidationError) Has(v Validation) bool {
	for _, got := range e.Violations {
		if got == v {
			return true
		}
	}
	return false
}
