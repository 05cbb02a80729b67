package store

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDate = errors.New("invalid date")
)

// ValidationError wraps the field errors produced by settings validation.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid settings: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// MigrationReport summarizes a legacy import: how many days were written
// and how many were skipped because the intensity mapping already had an
// entry for them. Conflicting days are never overwritten.
type MigrationReport struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
