package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vncsmyrnk/cooperative/internal/core/domain"
	"github.com/vncsmyrnk/cooperative/internal/core/ports"
)

type subjectRepository struct {
	db *sql.DB
}

var _ ports.SubjectRepository = (*subjectRepository)(nil)

func (r *subjectRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM subjects WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking subject: %w", err)
	}
	return true, nil
}

func (r *subjectRepository) Create(ctx context.Context, subject domain.Subject) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO subjects (id, name) VALUES (?, ?)`, subject.ID, subject.Name)
	if isUniqueViolation(err) {
		return domain.ErrSubjectAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("inserting subject: %w", err)
	}
	return nil
}

func (r *subjectRepository) Save(ctx context.Context, subject domain.Subject) (*domain.Subject, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO subjects (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name
	`, subject.ID, subject.Name)
	if err != nil {
		return nil, fmt.Errorf("saving subject: %w", err)
	}
	return &subject, nil
}

func (r *subjectRepository) GetByID(ctx context.Context, id int64) (*domain.Subject, error) {
	var subject domain.Subject
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM subjects WHERE id = ?`, id).Scan(&subject.ID, &subject.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting subject: %w", err)
	}
	return &subject, nil
}

func (r *subjectRepository) GetByName(ctx context.Context, name string) ([]domain.Subject, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM subjects WHERE name = ? ORDER BY id`, name)
	if err != nil {
		return nil, fmt.Errorf("querying subjects by name: %w", err)
	}
	defer rows.Close()
	return scanSubjects(rows)
}

func (r *subjectRepository) GetAll(ctx context.Context) ([]domain.Subject, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM subjects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying subjects: %w", err)
	}
	defer rows.Close()
	return scanSubjects(rows)
}

func (r *subjectRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting subject: %w", err)
	}
	return nil
}

func scanSubjects(rows *sql.Rows) ([]domain.Subject, error) {
	subjects := make([]domain.Subject, 0)
	for rows.Next() {
		var subject domain.Subject
		if err := rows.Scan(&subject.ID, &subject.Name); err != nil {
			return nil, fmt.Errorf("scanning subject: %w", err)
		}
		subjects = append(subjects, subject)
	}
	return subjects, rows.Err()
}
