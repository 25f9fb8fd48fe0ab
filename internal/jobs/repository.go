package jobs

import (
	"context"

	"github.com/hirewire/jobboard/internal/domain"
)

// Repository defines the interface for job data operations.
type Repository interface {
	CreateJob(ctx context.Context, job *domain.Job) error
	GetJobByID(ctx context.Context, id string) (*domain.Job, error)
	ListJobs(ctx context.Context, filter Filter) ([]domain.Job, error)
	ListJobsByRecruiter(ctx context.Context, recruiterID string) ([]domain.Job, error)
	UpdateHiringStatus(ctx context.Context, id string, isOpen bool) (*domain.Job, error)

	// DeleteJob removes a job and reports how many rows were affected.
	DeleteJob(ctx context.Context, id string) (int64, error)
	// CountJobs returns the total number of jobs in storage.
	CountJobs(ctx context.Context) (int, error)
}

// Filter represents filter criteria for listing jobs.
type Filter struct {
	Location  *string
	CompanyID *string
	Search    *string
	OpenOnly  bool
}
