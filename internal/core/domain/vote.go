package domain

import (
	"time"

	"github.com/google/uuid"
)

type Vote struct {
	Voter     uuid.UUID `json:"voter"`
	Agree     bool      `json:"agree"`
	VoteDate  time.Time `json:"vote_date"`
	SubjectID int64     `json:"subject_id"`
	PollID    int64     `json:"poll_id"`
}

type VoteCount struct {
	Agree    int64 `json:"agree"`
	Disagree int64 `json:"disagree"`
}

// Add counts a single vote.
func (c *VoteCount) Add(v Vote) {
	if v.Agree {
		c.Agree++
		return
	}
	c.Disagree++
}

func (c VoteCount) Total() int64 {
	return c.Agree + c.Disagree
}

// PollTally pairs a poll with its current vote count.
type PollTally struct {
	Poll  Poll      `json:"poll"`
	Votes VoteCount `json:"votes"`
}
