package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no task or project has the requested id
var ErrNotFound = errors.New("not found")

// ValidationError reports a rejected input field. The operation that
// returned it left the collections unchanged.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func errRequired(field string) error {
	return &ValidationError{Field: field, Reason: "must not be empty"}
}
