package domain

import "time"

// ApplicationStatus tracks a candidate's progress through a job's pipeline.
type ApplicationStatus string

// Application statuses.
const (
	ApplicationStatusApplied      ApplicationStatus = "applied"
	ApplicationStatusInterviewing ApplicationStatus = "interviewing"
	ApplicationStatusHired        ApplicationStatus = "hired"
	ApplicationStatusRejected     ApplicationStatus = "rejected"
)

// IsValid checks if the application status is valid.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusApplied, ApplicationStatusInterviewing,
		ApplicationStatusHired, ApplicationStatusRejected:
		return true
	}
	return false
}

// Application represents a candidate's application to a job.
type Application struct {
	ID          string            `json:"id"`
	JobID       string            `json:"job_id"`
	CandidateID string            `json:"candidate_id"`
	Status      ApplicationStatus `json:"status"`
	Name        string            `json:"name"`
	Experience  int               `json:"experience"`
	Skills      string            `json:"skills"`
	Education   string            `json:"education"`
	ResumeURL   string            `json:"resume_url"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
