// Package applications provides HTTP handlers and business logic for job applications.
package applications

import (
	"context"
	"errors"
	"fmt"

	"github.com/hirewire/jobboard/internal/domain"
	"github.com/hirewire/jobboard/internal/jobs"
)

// Service contains business logic for applications.
type Service struct {
	repo      Repository
	jobReader JobReader
}

// NewService creates a new applications service.
func NewService(repo Repository, jobReader JobReader) *Service {
	return &Service{
		repo:      repo,
		jobReader: jobReader,
	}
}

// Apply submits an application to a job on behalf of a candidate. A
// candidate can hold at most one application per job; a second submission
// is rejected, not overwritten.
func (s *Service) Apply(ctx context.Context, candidateID string, application *domain.Application) error {
	job, err := s.jobReader.GetJobByID(ctx, application.JobID)
	if err != nil {
		if errors.Is(err, jobs.ErrJobNotFound) {
			return ErrJobNotFound
		}
		return fmt.Errorf("get job: %w", err)
	}
	if !job.IsOpen {
		return ErrJobClosed
	}

	application.CandidateID = candidateID
	application.Status = domain.ApplicationStatusApplied

	if err := s.repo.CreateApplication(ctx, application); err != nil {
		if errors.Is(err, ErrAlreadyApplied) {
			return err
		}
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

// ListOwn returns the candidate's applications.
func (s *Service) ListOwn(ctx context.Context, candidateID string) ([]domain.Application, error) {
	return s.repo.ListApplicationsByCandidate(ctx, candidateID)
}

// ListForJob returns the applications for a job. Only the recruiter who
// posted the job may read them.
func (s *Service) ListForJob(ctx context.Context, recruiterID, jobID string) ([]domain.Application, error) {
	job, err := s.jobReader.GetJobByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, jobs.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	if job.RecruiterID != recruiterID {
		return nil, ErrNotJobOwner
	}

	return s.repo.ListApplicationsByJob(ctx, jobID)
}

// UpdateStatus moves an application through the hiring pipeline. Only the
// recruiter who posted the job may change it.
func (s *Service) UpdateStatus(ctx context.Context, recruiterID, applicationID string, status domain.ApplicationStatus) (*domain.Application, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	application, err := s.repo.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	job, err := s.jobReader.GetJobByID(ctx, application.JobID)
	if err != nil {
		if errors.Is(err, jobs.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	if job.RecruiterID != recruiterID {
		return nil, ErrNotJobOwner
	}

	updated, err := s.repo.UpdateApplicationStatus(ctx, applicationID, status)
	if err != nil {
		return nil, fmt.Errorf("update application status: %w", err)
	}
	return updated, nil
}
