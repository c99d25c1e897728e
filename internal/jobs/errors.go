package jobs

import "errors"

var (
	// ErrNotFound indicates the job does not exist.
	ErrNotFound = errors.New("job not found")
	// ErrInvalidInput indicates a validation failure.
	ErrInvalidInput = errors.New("invalid input")
)
