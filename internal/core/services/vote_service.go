package services

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"strconv"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/cooperative/internal/core/domain"
	"github.com/vncsmyrnk/cooperative/internal/core/ports"
)

type voteService struct {
	voteRepo ports.VoteRepository
	polls    ports.PollService
	clock    ports.Clock
	locks    *keyedMutex
	logger   *slog.Logger
}

func NewVoteService(voteRepo ports.VoteRepository, polls ports.PollService, clock ports.Clock, logger *slog.Logger) ports.VoteService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &voteService{
		voteRepo: voteRepo,
		polls:    polls,
		clock:    clock,
		locks:    newKeyedMutex(),
		logger:   resolveLogger(logger),
	}
}

// CreateVote stops at the first missing field. The poll must still be open:
// a vote arriving at the poll end date or later is rejected.
func (s *voteService) CreateVote(ctx context.Context, input ports.CreateVoteInput) (*domain.Vote, error) {
	if err := validateVote(input); err != nil {
		s.logger.Warn("vote rejected", "error", err)
		return nil, err
	}

	subjectID, pollID := input.SubjectID.Value, input.PollID.Value
	poll, err := s.polls.GetPollByIDAndSubjectID(ctx, pollID, subjectID)
	if err != nil {
		if errors.Is(err, domain.ErrSubjectNotFound) {
			return nil, domain.ErrPollNotFound
		}
		return nil, err
	}
	if poll == nil {
		s.logger.Warn("vote rejected, poll not found", "subject_id", subjectID, "poll_id", pollID)
		return nil, domain.ErrPollNotFound
	}

	now := s.clock.Now()
	if poll.EndedAt(now) {
		s.logger.Warn("vote rejected, poll ended",
			"subject_id", subjectID,
			"poll_id", pollID,
			"end_date", poll.EndDate,
		)
		return nil, domain.ErrPollAlreadyEnded
	}

	unlock := s.locks.Lock(voteKey(subjectID, pollID, input.Voter))
	defer unlock()

	existing, err := s.voteRepo.GetBySubjectIDPollIDVoter(ctx, subjectID, pollID, input.Voter)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing vote: %w", err)
	}
	if existing != nil {
		s.logger.Warn("vote already exists", "subject_id", subjectID, "poll_id", pollID, "voter", input.Voter)
		return nil, domain.ErrVoteAlreadyExists
	}

	created, err := s.voteRepo.Create(ctx, domain.Vote{
		Voter:     input.Voter,
		Agree:     input.Agree,
		VoteDate:  now,
		SubjectID: subjectID,
		PollID:    pollID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrVoteAlreadyExists) {
			s.logger.Warn("vote already exists", "subject_id", subjectID, "poll_id", pollID, "voter", input.Voter)
			return nil, err
		}
		return nil, fmt.Errorf("failed to create vote: %w", err)
	}

	s.logger.Info("vote created",
		"subject_id", subjectID,
		"poll_id", pollID,
		"voter", created.Voter,
		"agree", created.Agree,
	)
	return created, nil
}

func (s *voteService) GetVoteBySubjectIDPollID(ctx context.Context, subjectID, pollID int64) (iter.Seq[domain.Vote], error) {
	votes, err := s.voteRepo.GetBySubjectIDPollID(ctx, subjectID, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to get votes: %w", err)
	}
	return slices.Values(votes), nil
}

func (s *voteService) GetVoteBySubjectIDPollIDVoter(ctx context.Context, subjectID, pollID int64, voter uuid.UUID) (*domain.Vote, error) {
	vote, err := s.voteRepo.GetBySubjectIDPollIDVoter(ctx, subjectID, pollID, voter)
	if err != nil {
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}
	return vote, nil
}

func (s *voteService) GetVoteCountForPoll(ctx context.Context, subjectID, pollID int64) (domain.VoteCount, error) {
	votes, err := s.GetVoteBySubjectIDPollID(ctx, subjectID, pollID)
	if err != nil {
		return domain.VoteCount{}, err
	}
	return countVotes(votes), nil
}

func countVotes(votes iter.Seq[domain.Vote]) domain.VoteCount {
	var count domain.VoteCount
	for vote := range votes {
		count.Add(vote)
	}
	return count
}

func validateVote(input ports.CreateVoteInput) error {
	if input.Voter == uuid.Nil {
		return domain.NewValidationError(domain.ValidationMissingVoter)
	}
	if !input.SubjectID.Set {
		return domain.NewValidationError(domain.ValidationMissingSubjectID)
	}
	if !input.PollID.Set {
		return domain.NewValidationError(domain.ValidationMissingPollID)
	}
	return nil
}

func voteKey(subjectID, pollID int64, voter uuid.UUID) string {
	return "vote:" + strconv.FormatInt(subjectID, 10) + ":" + strconv.FormatInt(pollID, 10) + ":" + voter.String()
}
