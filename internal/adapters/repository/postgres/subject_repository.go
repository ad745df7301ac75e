package postgres

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

func NewSubjectRepository(db *sql.DB) ports.SubjectRepository {
	return &subjectRepository{
		db: db,
	}
}

func (r *subjectRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT 1 FROM subjects WHERE id = $1 LIMIT 1`
	var exists int
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check subject: %w", err)
	}
	return true, nil
}

func (r *subjectRepository) Create(ctx context.Context, subject domain.Subject) error {
	query := `INSERT INTO subjects (id, name) VALUES ($1, $2)`
	_, err := r.db.ExecContext(ctx, query, subject.ID, subject.Name)
	if err != nil {
		if hasCode(err, codeUniqueViolation) {
			return domain.ErrSubjectAlreadyExists
		}
		return fmt.Errorf("failed to insert subject: %w", err)
	}
	return nil
}

func (r *subjectRepository) Save(ctx context.Context, subject domain.Subject) (*domain.Subject, error) {
	query := `
		INSERT INTO subjects (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
	`
	_, err := r.db.ExecContext(ctx, query, subject.ID, subject.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to save subject: %w", err)
	}
	return &subject, nil
}

func (r *subjectRepository) GetByID(ctx context.Context, id int64) (*domain.Subject, error) {
	query := `SELECT id, name FROM subjects WHERE id = $1`

	var subject domain.Subject
	err := r.db.QueryRowContext(ctx, query, id).Scan(&subject.ID, &subject.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}
	return &subject, nil
}

func (r *subjectRepository) GetByName(ctx context.Context, name string) ([]domain.Subject, error) {
	query := `SELECT id, name FROM subjects WHERE name = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get subjects by name: %w", err)
	}
	defer rows.Close()

	return scanSubjects(rows)
}

func (r *subjectRepository) GetAll(ctx context.Context) ([]domain.Subject, error) {
	query := `SELECT id, name FROM subjects ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all subjects: %w", err)
	}
	defer rows.Close()

	return scanSubjects(rows)
}

func (r *subjectRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
	}
	return nil
}

func scanSubjects(rows *sql.Rows) ([]domain.Subject, error) {
	subjects := make([]domain.Subject, 0)
	for rows.Next() {
		var subject domain.Subject
		if err := rows.Scan(&subject.ID, &subject.Name); err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		subjects = append(subjects, subject)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subjects: %w", err)
	}
	return subjects, nil
}
