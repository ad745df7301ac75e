package memory

import (
	"context"

	"github.com/vncsmyrnk/cooperative/internal/core/domain"
	"github.com/vncsmyrnk/cooperative/internal/core/ports"
)

var _ ports.PollRepository = (*pollRepository)(nil)

type pollRepository struct {
	store *Store
}

func (r *pollRepository) Save(_ context.Context, poll domain.Poll) (*domain.Poll, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if poll.ID == 0 {
		r.store.lastPollID++
		poll.ID = r.store.lastPollID
	} else if poll.ID > r.store.lastPollID {
		r.store.lastPollID = poll.ID
	}
	r.store.polls[pollKey{subjectID: poll.SubjectID, id: poll.ID}] = poll
	return &poll, nil
}

func (r *pollRepository) GetBySubjectID(_ context.Context, subjectID int64) ([]domain.Poll, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return sortedValues(r.store.polls, func(p domain.Poll) bool {
		return p.SubjectID == subjectID
	}, comparePolls), nil
}

func (r *pollRepository) GetBySubjectIDAndName(_ context.Context, subjectID int64, name string) ([]domain.Poll, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return sortedValues(r.store.polls, func(p domain.Poll) bool {
		return p.SubjectID == subjectID && p.Name == name
	}, comparePolls), nil
}

func (r *pollRepository) GetBySubjectIDAndID(_ context.Context, subjectID, id int64) (*domain.Poll, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	poll, ok := r.store.polls[pollKey{subjectID: subjectID, id: id}]
	if !ok {
		return nil, nil
	}
	return &poll, nil
}

// DeleteBySubjectIDAndID removes the poll together with its votes.
func (r *pollRepository) DeleteBySubjectIDAndID(_ context.Context, subjectID, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.polls, pollKey{subjectID: subjectID, id: id})
	for key := range r.store.votes {
		if key.subjectID == subjectID && key.pollID == id {
			delete(r.store.votes, key)
		}
	}
	return nil
}
