// Package postgres provides PostgreSQL implementation of the saved-jobs repository.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/hirewire/jobboard/internal/domain"
	"github.com/hirewire/jobboard/internal/savedjobs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	foreignKeyViolation       = "23503"
	invalidTextRepresentation = "22P02"
)

// isMissingJob reports whether the error means the job cannot exist: either
// the FK lookup failed or the id text cannot be a UUID at all.
func isMissingJob(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == foreignKeyViolation || pgErr.Code == invalidTextRepresentation
}

// Repository implements the savedjobs.Repository interface using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// DeleteSavedJob removes a bookmark, reporting the number of rows removed.
func (r *Repository) DeleteSavedJob(ctx context.Context, userID, jobID string) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`,
		userID, jobID,
	)
	if err != nil {
		if isMissingJob(err) {
			return 0, savedjobs.ErrJobNotFound
		}
		return 0, fmt.Errorf("delete saved job: %w", err)
	}
	return tag.RowsAffected(), nil
}

// InsertSavedJob creates a bookmark. A concurrent save of the same pair is
// absorbed by the unique constraint.
func (r *Repository) InsertSavedJob(ctx context.Context, userID, jobID string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO saved_jobs (user_id, job_id) VALUES ($1, $2)
		 ON CONFLICT ON CONSTRAINT saved_jobs_user_job_unique DO NOTHING`,
		userID, jobID,
	)
	if err != nil {
		if isMissingJob(err) {
			return savedjobs.ErrJobNotFound
		}
		return fmt.Errorf("insert saved job: %w", err)
	}
	return nil
}

// ListSavedJobs returns the user's saved jobs joined with the job rows,
// most recently saved first.
func (r *Repository) ListSavedJobs(ctx context.Context, userID string) ([]domain.Job, error) {
	query := `
		SELECT j.id, j.title, j.description, j.location, j.requirements, j.is_open,
		       j.recruiter_id, j.company_id, j.created_at, j.updated_at
		FROM saved_jobs s
		JOIN jobs j ON j.id = s.job_id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved jobs: %w", err)
	}
	defer rows.Close()

	found := make([]domain.Job, 0)
	for rows.Next() {
		var job domain.Job
		err := rows.Scan(
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
			return nil, fmt.Errorf("scan saved job: %w", err)
		}
		found = append(found, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saved jobs: %w", err)
	}
	return found, nil
}
