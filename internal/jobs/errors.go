package jobs

import "errors"

var (
	// ErrJobNotFound is returned when a job does not exist.
	ErrJobNotFound = errors.New("job not found")
	// ErrNotJobOwner is returned when a recruiter acts on a job posted by
	// someone else.
	ErrNotJobOwner = errors.New("job belongs to another recruiter")
	// ErrCompanyNotFound is returned when a job references a company that
	// does not exist.
	ErrCompanyNotFound = errors.New("company not found")
)
