package vacancy

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every *ValidationError.
var ErrValidation = errors.New("vacancy validation failed")

// ValidationError reports a required field that could not be populated.
type ValidationError struct {
	Field  Field
	Reason string
	Value  string
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %s %s (%q)", ErrValidation, e.Field, e.Reason, e.Value)
	}
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// RecordError locates a validation failure within a batch.
type RecordError struct {
	Index int
	ID    string
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("listing %d (id %q): %v", e.Index, e.ID, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
