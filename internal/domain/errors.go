package domain

import (
	"errors"
	"fmt"
)

// Common domain errors surfaced during exam definition construction.
// The scoring path itself never returns errors: degraded input always
// grades as "no point" and every call produces a valid Report.
var (
	// ErrNoBands indicates a cutoff table was built with no bands.
	ErrNoBands = errors.New("cutoff table requires at least one band")

	// ErrInvalidBand indicates a band whose max is below its min.
	ErrInvalidBand = errors.New("invalid band boundaries")

	// ErrBandOverlap indicates bands that are out of order or overlapping.
	ErrBandOverlap = errors.New("bands must be declared in ascending, non-overlapping order")

	// ErrUnknownLevel indicates a level value outside S1-S5.
	ErrUnknownLevel = errors.New("unknown level")
)

// ValidationError collects the failures found while validating an exam
// definition, so callers see every problem at once rather than one per
// attempt.
type ValidationError struct {
	// Entity names the definition part that failed validation.
	Entity string

	// Errors contains the individual validation failure messages.
	Errors []string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation error for %s: %s", e.Entity, e.Errors[0])
	}
	return fmt.Sprintf("validation errors for %s: %v", e.Entity, e.Errors)
}

// AddError adds a new failure message to the validation error.
func (e *ValidationError) AddError(msg string) { e.Errors = append(e.Errors, msg) }

// HasErrors reports whether any failures were recorded.
func (e *ValidationError) HasErrors() bool { return len(e.Errors) > 0 }

// NewValidationError creates a ValidationError for the given entity.
func NewValidationError(entity string) *ValidationError {
	return &ValidationError{Entity: entity, Errors: make([]string, 0)}
}
