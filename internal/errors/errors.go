// internal/errors/errors.go
package errors

import (
	"errors"
	"fmt"
)

// ErrNoDefaultRepository is returned when an operation needs the configured repository and none is set.
var ErrNoDefaultRepository = errors.New("no default repository configured, set GITHUB_REPOSITORY to 'owner/name'")

// ErrInvalidRepoFormat is returned when a repository string is not in 'owner/name' format.
type ErrInvalidRepoFormat struct {
	Repo string
}

func (e *ErrInvalidRepoFormat) Error() string {
	return fmt.Sprintf("invalid repository format: %q, expected 'owner/name'", e.Repo)
}

// TransportError is returned when a listing could not be fetched completely.
// StatusCode is zero when no HTTP response was received.
type TransportError struct {
	Kind       string
	Endpoint   string
	Page       int
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: %s page %d: status %d: %v", e.Kind, e.Endpoint, e.Page, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s page %d: %v", e.Kind, e.Endpoint, e.Page, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ConflictResolutionError is returned when the store rejects an upsert batch.
type ConflictResolutionError struct {
	Kind string
	Rows int
	Err  error
}

func (e *ConflictResolutionError) Error() string {
	return fmt.Sprintf("reconcile %s (%d rows): %v", e.Kind, e.Rows, e.Err)
}

func (e *ConflictResolutionError) Unwrap() error {
	return e.Err
}
