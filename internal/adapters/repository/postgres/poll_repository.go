package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vncsmyrnk/cooperative/internal/core/domain"
	"github.com/vncsmyrnk/cooperative/internal/core/ports"
)

const pollColumns = `id, subject_id, name, start_date, end_date`

type pollRepository struct {
	db *sql.DB
}

func NewPollRepository(db *sql.DB) ports.PollRepository {
	return &pollRepository{
		db: db,
	}
}

func (r *pollRepository) Save(ctx context.Context, poll domain.Poll) (*domain.Poll, error) {
	poll.StartDate = columnTime(poll.StartDate)
	poll.EndDate = columnTime(poll.EndDate)

	if poll.ID == 0 {
		query := `
			INSERT INTO polls (subject_id, name, start_date, end_date)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`
		err := r.db.QueryRowContext(ctx, query, poll.SubjectID, poll.Name, poll.StartDate, poll.EndDate).Scan(&poll.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert poll: %w", err)
		}
		return &poll, nil
	}

	query := `
		INSERT INTO polls (id, subject_id, name, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date
	`
	_, err := r.db.ExecContext(ctx, query, poll.ID, poll.SubjectID, poll.Name, poll.StartDate, poll.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to save poll: %w", err)
	}
	return &poll, nil
}

func (r *pollRepository) GetBySubjectID(ctx context.Context, subjectID int64) ([]domain.Poll, error) {
	query := `SELECT ` + pollColumns + ` FROM polls WHERE subject_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get polls: %w", err)
	}
	defer rows.Close()

	return scanPolls(rows)
}

func (r *pollRepository) GetBySubjectIDAndName(ctx context.Context, subjectID int64, name string) ([]domain.Poll, error) {
	query := `SELECT ` + pollColumns + ` FROM polls WHERE subject_id = $1 AND name = $2 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, subjectID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get polls by name: %w", err)
	}
	defer rows.Close()

	return scanPolls(rows)
}

func (r *pollRepository) GetBySubjectIDAndID(ctx context.Context, subjectID, id int64) (*domain.Poll, error) {
	query := `SELECT ` + pollColumns + ` FROM polls WHERE subject_id = $1 AND id = $2`

	var poll domain.Poll
	err := r.db.QueryRowContext(ctx, query, subjectID, id).Scan(
		&poll.ID, &poll.SubjectID, &poll.Name, &poll.StartDate, &poll.EndDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}
	normalizePoll(&poll)
	return &poll, nil
}

// DeleteBySubjectIDAndID relies on the votes foreign key to cascade.
func (r *pollRepository) DeleteBySubjectIDAndID(ctx context.Context, subjectID, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM polls WHERE subject_id = $1 AND id = $2`, subjectID, id)
	if err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}
	return nil
}

func scanPolls(rows *sql.Rows) ([]domain.Poll, error) {
	polls := make([]domain.Poll, 0)
	for rows.Next() {
		var poll domain.Poll
		if err := rows.Scan(&poll.ID, &poll.SubjectID, &poll.Name, &poll.StartDate, &poll.EndDate); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		normalizePoll(&poll)
		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating polls: %w", err)
	}
	return polls, nil
}

func normalizePoll(poll *domain.Poll) {
	poll.StartDate = poll.StartDate.UTC()
	poll.EndDate = poll.EndDate.UTC()
}
