package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vncsmyrnk/cooperative/internal/core/domain"
	"github.com/vncsmyrnk/cooperative/internal/core/ports"
)

type voteRepository struct {
	db *sql.DB
}

var _ ports.VoteRepository = (*voteRepository)(nil)

func (r *voteRepository) Create(ctx context.Context, vote domain.Vote) (*domain.Vote, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO votes (subject_id, poll_id, voter, agree, vote_date) VALUES (?, ?, ?, ?, ?)
	`, vote.SubjectID, vote.PollID, vote.Voter.String(), vote.Agree, toUnix(vote.VoteDate))
	switch {
	case isUniqueViolation(err):
		return nil, domain.ErrVoteAlreadyExists
	case isForeignKeyViolation(err):
		return nil, domain.ErrPollNotFound
	case err != nil:
		return nil, fmt.Errorf("inserting vote: %w", err)
	}
	return &vote, nil
}

func (r *voteRepository) GetBySubjectIDPollID(ctx context.Context, subjectID, pollID int64) ([]domain.Vote, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT voter, agree, vote_date, subject_id, poll_id
		FROM votes WHERE subject_id = ? AND poll_id = ?
		ORDER BY vote_date, voter
	`, subjectID, pollID)
	if err != nil {
		return nil, fmt.Errorf("querying votes: %w", err)
	}
	defer rows.Close()

	votes := make([]domain.Vote, 0)
	for rows.Next() {
		vote, err := scanVote(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning vote: %w", err)
		}
		votes = append(votes, vote)
	}
	return votes, rows.Err()
}

func (r *voteRepository) GetBySubjectIDPollIDVoter(ctx context.Context, subjectID, pollID int64, voter uuid.UUID) (*domain.Vote, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT voter, agree, vote_date, subject_id, poll_id
		FROM votes WHERE subject_id = ? AND poll_id = ? AND voter = ?
	`, subjectID, pollID, voter.String())
	vote, err := scanVote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting vote: %w", err)
	}
	return &vote, nil
}

func scanVote(row rowScanner) (domain.Vote, error) {
	var (
		vote     domain.Vote
		voter    string
		voteDate int64
	)
	if err := row.Scan(&voter, &vote.Agree, &voteDate, &vote.SubjectID, &vote.PollID); err != nil {
		return domain.Vote{}, err
	}
	parsed, err := uuid.Parse(voter)
	if err != nil {
		return domain.Vote{}, fmt.Errorf("parsing voter: %w", err)
	}
	vote.Voter = parsed
	vote.VoteDate = fromUnix(voteDate)
	return vote, nil
}
