package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vncsmyrnk/cooperative/internal/core/domain"
	"github.com/vncsmyrnk/cooperative/internal/core/ports"
)

type pollRepository struct {
	db *sql.DB
}

var _ ports.PollRepository = (*pollRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *pollRepository) Save(ctx context.Context, poll domain.Poll) (*domain.Poll, error) {
	if poll.ID == 0 {
		result, err := r.db.ExecContext(ctx, `
			INSERT INTO polls (subject_id, name, start_date, end_date) VALUES (?, ?, ?, ?)
		`, poll.SubjectID, poll.Name, toUnix(poll.StartDate), toUnix(poll.EndDate))
		if err != nil {
			return nil, fmt.Errorf("inserting poll: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("reading poll id: %w", err)
		}
		poll.ID = id
		return &poll, nil
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO polls (id, subject_id, name, start_date, end_date) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			start_date = excluded.start_date,
			end_date = excluded.end_date
	`, poll.ID, poll.SubjectID, poll.Name, toUnix(poll.StartDate), toUnix(poll.EndDate))
	if err != nil {
		return nil, fmt.Errorf("saving poll: %w", err)
	}
	return &poll, nil
}

func (r *pollRepository) GetBySubjectID(ctx context.Context, subjectID int64) ([]domain.Poll, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, subject_id, name, start_date, end_date
		FROM polls WHERE subject_id = ? ORDER BY id
	`, subjectID)
	if err != nil {
		return nil, fmt.Errorf("querying polls: %w", err)
	}
	defer rows.Close()
	return scanPolls(rows)
}

func (r *pollRepository) GetBySubjectIDAndName(ctx context.Context, subjectID int64, name string) ([]domain.Poll, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, subject_id, name, start_date, end_date
		FROM polls WHERE subject_id = ? AND name = ? ORDER BY id
	`, subjectID, name)
	if err != nil {
		return nil, fmt.Errorf("querying polls by name: %w", err)
	}
	defer rows.Close()
	return scanPolls(rows)
}

func (r *pollRepository) GetBySubjectIDAndID(ctx context.Context, subjectID, id int64) (*domain.Poll, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, subject_id, name, start_date, end_date
		FROM polls WHERE subject_id = ? AND id = ?
	`, subjectID, id)
	poll, err := scanPoll(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting poll: %w", err)
	}
	return &poll, nil
}

func (r *pollRepository) DeleteBySubjectIDAndID(ctx context.Context, subjectID, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM polls WHERE subject_id = ? AND id = ?`, subjectID, id); err != nil {
		return fmt.Errorf("deleting poll: %w", err)
	}
	return nil
}

func scanPoll(row rowScanner) (domain.Poll, error) {
	var (
		poll       domain.Poll
		start, end int64
	)
	if err := row.Scan(&poll.ID, &poll.SubjectID, &poll.Name, &start, &end); err != nil {
		return domain.Poll{}, err
	}
	poll.StartDate = fromUnix(start)
	poll.EndDate = fromUnix(end)
	return poll, nil
}

func scanPolls(rows *sql.Rows) ([]domain.Poll, error) {
	polls := make([]domain.Poll, 0)
	for rows.Next() {
		poll, err := scanPoll(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning poll: %w", err)
		}
		polls = append(polls, poll)
	}
	return polls, rows.Err()
}
