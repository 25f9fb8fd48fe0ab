package applications

import "errors"

var (
	// ErrApplicationNotFound is returned when an application does not exist.
	ErrApplicationNotFound = errors.New("application not found")
	// ErrAlreadyApplied is returned when a candidate applies to the same job
	// twice.
	ErrAlreadyApplied = errors.New("already applied to this job")
	// ErrJobNotFound is returned when applying to a job that does not exist.
	ErrJobNotFound = errors.New("job not found")
	// ErrJobClosed is returned when applying to a job that is no longer
	// accepting applications.
	ErrJobClosed = errors.New("job is closed for applications")
	// ErrNotJobOwner is returned when a recruiter acts on applications for a
	// job posted by someone else.
	ErrNotJobOwner = errors.New("job belongs to another recruiter")
	// ErrInvalidStatus is returned when setting a status outside the pipeline
	// enumeration.
	ErrInvalidStatus = errors.New("invalid application status")
)
