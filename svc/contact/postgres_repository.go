package contact

import (
	"context"
	"embed"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Migrations holds the goose migrations of PostgresRepository, under
// MigrationsDir.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations.
const MigrationsDir = "migrations"

// DB is the subset of *pgxpool.Pool used by PostgresRepository.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresRepository archives submissions in the contact_submissions table.
type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const insertSubmission = `
INSERT INTO contact_submissions (id, form_id, first_name, last_name, email, message, submitted_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

func (r *PostgresRepository) Create(ctx context.Context, s Submission) error {
	_, err := r.db.Exec(ctx, insertSubmission,
		s.ID, s.FormID, s.FirstName, s.LastName, s.Email, s.Message, s.SubmittedAt)
	if err != nil {
		return errors.Join(ErrArchiveFailed, err)
	}
	return nil
}

const listSubmissions = `
SELECT id, form_id, first_name, last_name, email, message, submitted_at
FROM contact_submissions
ORDER BY submitted_at DESC
LIMIT $1`

func (r *PostgresRepository) List(ctx context.Context, limit int) ([]Submission, error) {
	rows, err := r.db.Query(ctx, listSubmissions, limit)
	if err != nil {
		return nil, errors.Join(ErrListFailed, err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Submission, error) {
		var s Submission
		err := row.Scan(&s.ID, &s.FormID, &s.FirstName, &s.LastName, &s.Email, &s.Message, &s.SubmittedAt)
		return s, err
	})
	if err != nil {
		return nil, errors.Join(ErrListFailed, err)
	}
	return out, nil
}
