// Package savedjobs provides the save/unsave bookmark toggle for jobs.
package savedjobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/hirewire/jobboard/internal/domain"
)

// ErrJobNotFound is returned when toggling a bookmark for a job that does
// not exist.
var ErrJobNotFound = errors.New("job not found")

// Service contains business logic for job bookmarks.
type Service struct {
	repo Repository
}

// NewService creates a new saved-jobs service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Toggle flips the bookmark state for (userID, jobID) and reports the
// resulting state: true when the job is now saved, false when it is now
// unsaved. The unique constraint on the pair makes the operation converge
// under concurrent calls: delete first, and only insert when nothing was
// deleted.
func (s *Service) Toggle(ctx context.Context, userID, jobID string) (bool, error) {
	deleted, err := s.repo.DeleteSavedJob(ctx, userID, jobID)
	if err != nil {
		return false, fmt.Errorf("unsave job: %w", err)
	}
	if deleted > 0 {
		return false, nil
	}

	if err := s.repo.InsertSavedJob(ctx, userID, jobID); err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return false, err
		}
		return false, fmt.Errorf("save job: %w", err)
	}
	return true, nil
}

// List returns the user's saved jobs.
func (s *Service) List(ctx context.Context, userID string) ([]domain.Job, error) {
	return s.repo.ListSavedJobs(ctx, userID)
}
