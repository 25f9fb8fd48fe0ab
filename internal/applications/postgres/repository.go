// Package postgres provides PostgreSQL implementation of the applications repository.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/hirewire/jobboard/internal/applications"
	"github.com/hirewire/jobboard/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	uniqueViolation           = "23505"
	invalidTextRepresentation = "22P02"
)

// isMissingApplication treats a malformed id like an absent row: ids come
// from URL path segments, and text that cannot be a UUID names nothing.
func isMissingApplication(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation
}

// Repository implements the applications.Repository interface using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const applicationColumns = `id, job_id, candidate_id, status, name, experience, skills, education, resume_url, created_at, updated_at`

// CreateApplication inserts a new application. The unique constraint on
// (job_id, candidate_id) rejects duplicate submissions.
func (r *Repository) CreateApplication(ctx context.Context, application *domain.Application) error {
	query := `
		INSERT INTO applications (job_id, candidate_id, status, name, experience, skills, education, resume_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		application.JobID,
		application.CandidateID,
		application.Status,
		application.Name,
		application.Experience,
		application.Skills,
		application.Education,
		application.ResumeURL,
	).Scan(&application.ID, &application.CreatedAt, &application.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return applications.ErrAlreadyApplied
		}
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

// GetApplicationByID retrieves an application by its ID.
func (r *Repository) GetApplicationByID(ctx context.Context, id string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	application, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if isMissingApplication(err) {
			return nil, applications.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("get application by id: %w", err)
	}
	return application, nil
}

// ListApplicationsByCandidate retrieves a candidate's applications, newest first.
func (r *Repository) ListApplicationsByCandidate(ctx context.Context, candidateID string) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE candidate_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		return nil, fmt.Errorf("list applications by candidate: %w", err)
	}
	defer rows.Close()

	return collectApplications(rows)
}

// ListApplicationsByJob retrieves the applications for a job, oldest first.
func (r *Repository) ListApplicationsByJob(ctx context.Context, jobID string) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE job_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("list applications by job: %w", err)
	}
	defer rows.Close()

	return collectApplications(rows)
}

// UpdateApplicationStatus moves an application to a new pipeline status.
func (r *Repository) UpdateApplicationStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	query := `
		UPDATE applications
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + applicationColumns

	application, err := scanApplication(r.db.QueryRow(ctx, query, id, status))
	if err != nil {
		if isMissingApplication(err) {
			return nil, applications.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("update application status: %w", err)
	}
	return application, nil
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var application domain.Application
	err := row.Scan(
		&application.ID,
		&application.JobID,
		&application.CandidateID,
		&application.Status,
		&application.Name,
		&application.Experience,
		&application.Skills,
		&application.Education,
		&application.ResumeURL,
		&application.CreatedAt,
		&application.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func collectApplications(rows pgx.Rows) ([]domain.Application, error) {
	found := make([]domain.Application, 0)
	for rows.Next() {
		application, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		found = append(found, *application)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applications: %w", err)
	}
	return found, nil
}
