package cancellation

import "errors"

var (
	// ErrResourceNotFound is returned when the API answers without a result.
	// The message is surfaced to the pipeline as is.
	ErrResourceNotFound  = errors.New("Resource not found")
	ErrEmptyRequest      = errors.New("cancellation request is empty")
	ErrMissingRunID      = errors.New("cancellation request is missing githubRunId")
	ErrMissingRunAttempt = errors.New("cancellation request is missing githubRunAttempt")
)
