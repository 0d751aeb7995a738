package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrNoSession      = errors.New("not signed in")
	ErrStorageFull    = errors.New("local draft storage is full")
	ErrDraftCorrupted = errors.New("stored draft is corrupted")
)

// ValidationError represents a precondition failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// TransportError represents a non-success response from the remote
// content API. Message is sourced from the response body when the API
// provided one, else a generic status-based message.
type TransportError struct {
	Status  int
	Message string
}

func (e *TransportError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote API error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("remote API error (%d)", e.Status)
}

// RenameIncompleteError represents a rename whose second phase failed:
// the post was created at the new path but deleting the old one did
// not succeed, so both paths may now exist.
type RenameIncompleteError struct {
	OldPath string
	NewPath string
	NewSHA  string
	Cause   error
}

func (e *RenameIncompleteError) Error() string {
	return fmt.Sprintf("rename incomplete: %s was created but %s could not be removed (%v); verify the repository state",
		e.NewPath, e.OldPath, e.Cause)
}

func (e *RenameIncompleteError) Unwrap() error {
	return e.Cause
}
