package services

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/vncsmyrnk/cooperative/internal/core/domain"
	"github.com/vncsmyrnk/cooperative/internal/core/ports"
)

const defaultTallyConcurrency = 8

type tallyService struct {
	polls       ports.PollService
	votes       ports.VoteService
	concurrency int
	logger      *slog.Logger
}

func NewTallyService(polls ports.PollService, votes ports.VoteService, concurrency int, logger *slog.Logger) ports.TallyService {
	if concurrency <= 0 {
		concurrency = defaultTallyConcurrency
	}
	return &tallyService{
		polls:       polls,
		votes:       votes,
		concurrency: concurrency,
		logger:      resolveLogger(logger),
	}
}

// TallySubject counts the votes of every poll owned by the subject. The
// result is ordered by poll id.
func (s *tallyService) TallySubject(ctx context.Context, subjectID int64) ([]domain.PollTally, error) {
	seq, err := s.polls.GetPollBySubjectID(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	polls := slices.Collect(seq)
	tallies := make([]domain.PollTally, len(polls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, poll := range polls {
		g.Go(func() error {
			count, err := s.votes.GetVoteCountForPoll(gctx, poll.SubjectID, poll.ID)
			if err != nil {
				return fmt.Errorf("failed to tally poll %d: %w", poll.ID, err)
			}
			tallies[i] = domain.PollTally{Poll: poll, Votes: count}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(tallies, func(a, b domain.PollTally) int {
		return cmp.Compare(a.Poll.ID, b.Poll.ID)
	})
	s.logger.Info("subject tallied", "subject_id", subjectID, "polls", len(tallies))
	return tallies, nil
}
