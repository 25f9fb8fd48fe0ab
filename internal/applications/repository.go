package applications

import (
	"context"

	"github.com/hirewire/jobboard/internal/domain"
)

// Repository defines the interface for application data operations.
type Repository interface {
	CreateApplication(ctx context.Context, application *domain.Application) error
	GetApplicationByID(ctx context.Context, id string) (*domain.Application, error)
	ListApplicationsByCandidate(ctx context.Context, candidateID string) ([]domain.Application, error)
	ListApplicationsByJob(ctx context.Context, jobID string) ([]domain.Application, error)
	UpdateApplicationStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error)
}

// JobReader is the slice of the jobs module the applications service needs:
// ownership and open/closed checks before touching application rows.
type JobReader interface {
	GetJobByID(ctx context.Context, id string) (*domain.Job, error)
}
