package session

import (
	"errors"
	"fmt"
)

var (
	// ErrStale is returned when an AI response arrives after a newer request
	// for the same target; the response is discarded
	ErrStale = errors.New("superseded by a newer request")
	// ErrNoSuggestion is returned when the collaborator had nothing usable
	ErrNoSuggestion = errors.New("no suggestion available")
	// ErrInvalidWeight rejects non-positive or non-finite body weights
	ErrInvalidWeight = errors.New("weight must be a positive number")
)

// PersistenceError reports aggregates that could not be written. The
// in-memory state keeps the change.
type PersistenceError struct {
	Keys []string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %v: %v", e.Keys, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
