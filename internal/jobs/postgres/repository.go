// Package postgres provides PostgreSQL implementation of the jobs repository.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hirewire/jobboard/internal/domain"
	"github.com/hirewire/jobboard/internal/jobs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	foreignKeyViolation       = "23503"
	invalidTextRepresentation = "22P02"
)

// Repository implements the jobs.Repository interface using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const jobColumns = `id, title, description, location, requirements, is_open, recruiter_id, company_id, created_at, updated_at`

// CreateJob inserts a new job posting.
func (r *Repository) CreateJob(ctx context.Context, job *domain.Job) error {
	query := `
		INSERT INTO jobs (title, description, location, requirements, is_open, recruiter_id, company_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		job.Title,
		job.Description,
		job.Location,
		job.Requirements,
		job.IsOpen,
		job.RecruiterID,
		job.CompanyID,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return jobs.ErrCompanyNotFound
		}
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

// GetJobByID retrieves a job by its ID.
func (r *Repository) GetJobByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if isMissingJob(err) {
			return nil, jobs.ErrJobNotFound
		}
		return nil, fmt.Errorf("get job by id: %w", err)
	}
	return job, nil
}

// ListJobs retrieves jobs matching the filter, newest first.
func (r *Repository) ListJobs(ctx context.Context, filter jobs.Filter) ([]domain.Job, error) {
	var conditions []string
	var args []interface{}

	if filter.Location != nil {
		args = append(args, *filter.Location)
		conditions = append(conditions, fmt.Sprintf("location = $%d", len(args)))
	}
	if filter.CompanyID != nil {
		args = append(args, *filter.CompanyID)
		conditions = append(conditions, fmt.Sprintf("company_id = $%d", len(args)))
	}
	if filter.Search != nil {
		args = append(args, *filter.Search)
		conditions = append(conditions, fmt.Sprintf("title ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if filter.OpenOnly {
		conditions = append(conditions, "is_open = TRUE")
	}

	query := `SELECT ` + jobColumns + ` FROM jobs`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	return collectJobs(rows)
}

// ListJobsByRecruiter retrieves all jobs posted by a recruiter, newest first.
func (r *Repository) ListJobsByRecruiter(ctx context.Context, recruiterID string) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE recruiter_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, recruiterID)
	if err != nil {
		return nil, fmt.Errorf("list jobs by recruiter: %w", err)
	}
	defer rows.Close()

	return collectJobs(rows)
}

// UpdateHiringStatus sets whether a job accepts new applications.
func (r *Repository) UpdateHiringStatus(ctx context.Context, id string, isOpen bool) (*domain.Job, error) {
	query := `
		UPDATE jobs
		SET is_open = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + jobColumns

	job, err := scanJob(r.db.QueryRow(ctx, query, id, isOpen))
	if err != nil {
		if isMissingJob(err) {
			return nil, jobs.ErrJobNotFound
		}
		return nil, fmt.Errorf("update hiring status: %w", err)
	}
	return job, nil
}

// DeleteJob removes a job and reports the number of rows affected.
func (r *Repository) DeleteJob(ctx context.Context, id string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		if isMissingJob(err) {
			return 0, jobs.ErrJobNotFound
		}
		return 0, fmt.Errorf("delete job: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CountJobs returns the total number of jobs in storage.
func (r *Repository) CountJobs(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return count, nil
}

// isMissingJob treats a malformed id the same as an absent row: ids come
// from URL path segments, and text that cannot be a UUID cannot name a job.
func isMissingJob(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Description,
		&job.Location,
		&job.Requirements,
		&job.IsOpen,
		&job.RecruiterID,
		&job.CompanyID,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func collectJobs(rows pgx.Rows) ([]domain.Job, error) {
	found := make([]domain.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		found = append(found, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}
	return found, nil
}
