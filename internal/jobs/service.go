// Package jobs provides HTTP handlers and business logic for job postings.
package jobs

import (
	"context"
	"fmt"

	"github.com/hirewire/jobboard/internal/directory"
	"github.com/hirewire/jobboard/internal/domain"
)

// DirectoryResolver resolves identity-directory users in batches. A nil
// resolver is valid: every lookup then falls back to the placeholder
// recruiter identity.
type DirectoryResolver interface {
	ResolveMany(ctx context.Context, ids []string, opts directory.ResolveOptions) map[string]*domain.DirectoryUser
}

// Service contains business logic for job postings.
type Service struct {
	repo        Repository
	resolver    DirectoryResolver
	resolveOpts directory.ResolveOptions
}

// NewService creates a new jobs service.
func NewService(repo Repository, resolver DirectoryResolver, resolveOpts directory.ResolveOptions) *Service {
	return &Service{
		repo:        repo,
		resolver:    resolver,
		resolveOpts: resolveOpts,
	}
}

// Create posts a new job on behalf of the given recruiter. New jobs start
// open for applications.
func (s *Service) Create(ctx context.Context, recruiterID string, job *domain.Job) error {
	job.RecruiterID = recruiterID
	job.IsOpen = true

	if err := s.repo.CreateJob(ctx, job); err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

// Get retrieves a single job by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Job, error) {
	return s.repo.GetJobByID(ctx, id)
}

// List retrieves jobs matching the filter, without recruiter identity.
func (s *Service) List(ctx context.Context, filter Filter) ([]domain.Job, error) {
	return s.repo.ListJobs(ctx, filter)
}

// ListWithRecruiters retrieves jobs matching the filter and joins each with
// its recruiter's directory identity. Directory failures never fail the
// listing: affected jobs carry the placeholder identity instead.
func (s *Service) ListWithRecruiters(ctx context.Context, filter Filter) ([]domain.EnrichedJob, error) {
	found, err := s.repo.ListJobs(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return s.enrich(ctx, found), nil
}

// ListByRecruiter retrieves all jobs posted by the given recruiter.
func (s *Service) ListByRecruiter(ctx context.Context, recruiterID string) ([]domain.Job, error) {
	return s.repo.ListJobsByRecruiter(ctx, recruiterID)
}

// UpdateHiringStatus opens or closes a job for applications. Only the
// recruiter who posted the job may change it.
func (s *Service) UpdateHiringStatus(ctx context.Context, recruiterID, jobID string, isOpen bool) (*domain.Job, error) {
	job, err := s.repo.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.RecruiterID != recruiterID {
		return nil, ErrNotJobOwner
	}

	updated, err := s.repo.UpdateHiringStatus(ctx, jobID, isOpen)
	if err != nil {
		return nil, fmt.Errorf("update hiring status: %w", err)
	}
	return updated, nil
}

func (s *Service) enrich(ctx context.Context, found []domain.Job) []domain.EnrichedJob {
	enriched := make([]domain.EnrichedJob, 0, len(found))

	var resolved map[string]*domain.DirectoryUser
	if s.resolver != nil && len(found) > 0 {
		ids := make([]string, 0, len(found))
		for _, job := range found {
			ids = append(ids, job.RecruiterID)
		}
		resolved = s.resolver.ResolveMany(ctx, ids, s.resolveOpts)
	}

	for _, job := range found {
		enriched = append(enriched, job.Enrich(resolved[job.RecruiterID]))
	}
	return enriched
}
