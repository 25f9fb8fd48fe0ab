package savedjobs

import (
	"context"

	"github.com/hirewire/jobboard/internal/domain"
)

// Repository defines the interface for saved-job data operations.
type Repository interface {
	// DeleteSavedJob removes a bookmark and reports how many rows it
	// removed. Zero rows means the job was not saved.
	DeleteSavedJob(ctx context.Context, userID, jobID string) (int64, error)
	// InsertSavedJob creates a bookmark. Inserting an already-saved pair is
	// a no-op, not an error.
	InsertSavedJob(ctx context.Context, userID, jobID string) error
	// ListSavedJobs returns the saved jobs for a user joined with the job
	// rows, most recently saved first.
	ListSavedJobs(ctx context.Context, userID string) ([]domain.Job, error)
}
