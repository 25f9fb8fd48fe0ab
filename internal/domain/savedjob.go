package domain

import "time"

// SavedJob is a bookmark linking a user to a job. A (user, job) pair is
// unique at the storage layer; the toggle relies on that constraint rather
// than on a prior read.
type SavedJob struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	JobID     string    `json:"job_id"`
	CreatedAt time.Time `json:"created_at"`
}
