package domain

import "time"

const (
	PollNameMaxLength   = 200
	DefaultPollDuration = 60 * time.Second
)

type Poll struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	SubjectID int64     `json:"subject_id"`
}

// PollState is derived from the poll dates and never stored.
type PollState string

const (
	PollStatePending PollState = "pending"
	PollStateOpen    PollState = "open"
	PollStateClosed  PollState = "closed"
)

// StateAt reports the poll state at now. EndDate is exclusive.
func (p Poll) StateAt(now time.Time) PollState {
	switch {
	case now.Before(p.StartDate):
		return PollStatePending
	case now.Before(p.EndDate):
		return PollStateOpen
	default:
		return PollStateClosed
	}
}

// EndedAt reports whether the poll no longer accepts votes at now.
func (p Poll) EndedAt(now time.Time) bool {
	return !now.Before(p.EndDate)
}
