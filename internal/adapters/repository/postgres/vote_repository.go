package postgres

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

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

func (r *voteRepository) Create(ctx context.Context, vote domain.Vote) (*domain.Vote, error) {
	vote.VoteDate = columnTime(vote.VoteDate)

	query := `
		INSERT INTO votes (subject_id, poll_id, voter, agree, vote_date)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, vote.SubjectID, vote.PollID, vote.Voter, vote.Agree, vote.VoteDate)
	if err != nil {
		switch {
		case hasCode(err, codeUniqueViolation):
			return nil, domain.ErrVoteAlreadyExists
		case hasCode(err, codeForeignKeyViolation):
			return nil, domain.ErrPollNotFound
		}
		return nil, fmt.Errorf("failed to save vote: %w", err)
	}
	return &vote, nil
}

func (r *voteRepository) GetBySubjectIDPollID(ctx context.Context, subjectID, pollID int64) ([]domain.Vote, error) {
	query := `
		SELECT voter, agree, vote_date, subject_id, poll_id
		FROM votes
		WHERE subject_id = $1 AND poll_id = $2
		ORDER BY vote_date, voter
	`
	rows, err := r.db.QueryContext(ctx, query, subjectID, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to get votes: %w", err)
	}
	defer rows.Close()

	votes := make([]domain.Vote, 0)
	for rows.Next() {
		var vote domain.Vote
		if err := rows.Scan(&vote.Voter, &vote.Agree, &vote.VoteDate, &vote.SubjectID, &vote.PollID); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		vote.VoteDate = vote.VoteDate.UTC()
		votes = append(votes, vote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating votes: %w", err)
	}
	return votes, nil
}

func (r *voteRepository) GetBySubjectIDPollIDVoter(ctx context.Context, subjectID, pollID int64, voter uuid.UUID) (*domain.Vote, error) {
	query := `
		SELECT voter, agree, vote_date, subject_id, poll_id
		FROM votes
		WHERE subject_id = $1 AND poll_id = $2 AND voter = $3
	`
	var vote domain.Vote
	err := r.db.QueryRowContext(ctx, query, subjectID, pollID, voter).Scan(
		&vote.Voter, &vote.Agree, &vote.VoteDate, &vote.SubjectID, &vote.PollID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}
	vote.VoteDate = vote.VoteDate.UTC()
	return &vote, nil
}
