package domain

import "time"

// Job represents a posted job opening.
type Job struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	Requirements string    `json:"requirements"`
	IsOpen       bool      `json:"is_open"`
	RecruiterID  string    `json:"recruiter_id"`
	CompanyID    string    `json:"company_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RecruiterFallback is substituted for recruiter identity fields when the
// directory lookup for a job's recruiter fails or finds nothing.
const RecruiterFallback = "N/A"

// EnrichedJob is a job joined with its recruiter's directory identity.
type EnrichedJob struct {
	Job
	RecruiterEmail string `json:"recruiter_email"`
	RecruiterName  string `json:"recruiter_name"`
}

// Enrich attaches recruiter identity to a job, falling back to
// RecruiterFallback when the directory had no answer.
func (j Job) Enrich(u *DirectoryUser) EnrichedJob {
	e := EnrichedJob{
		Job:            j,
		RecruiterEmail: RecruiterFallback,
		RecruiterName:  RecruiterFallback,
	}
	if u != nil {
		if u.Email != "" {
			e.RecruiterEmail = u.Email
		}
		if u.Name != "" {
			e.RecruiterName = u.Name
		}
	}
	return e
}
