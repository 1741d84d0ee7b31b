package search

import (
	"errors"
	"fmt"
)

// Phase identifies where in the pipeline a failure occurred.
type Phase string

const (
	// PhaseGenerate covers Problem.NewCandidate calls.
	PhaseGenerate Phase = "generate"
	// PhaseValidate covers constraint evaluation.
	PhaseValidate Phase = "validate"
	// PhaseSelect covers goal evaluation during reduction.
	PhaseSelect Phase = "select"
)

// ErrorCode categorizes search errors.
type ErrorCode string

const (
	// ErrCodeInvalidConfig indicates a caller-input error (negative
	// batch size or worker count), reported before any work starts.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"

	// ErrCodeCollaboratorPanic indicates a panic inside user-supplied
	// generation, constraint, or goal code. Not recovered or retried
	// internally; surfaced whole, tagged with phase and worker.
	ErrCodeCollaboratorPanic ErrorCode = "COLLABORATOR_PANIC"
)

// SearchError is the structured error type for engine failures.
type SearchError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Worker is the index of the worker the failure occurred in.
	// Sequential runs use worker 0.
	Worker int

	// Phase is the pipeline phase the failure occurred in
	// (collaborator failures only).
	Phase Phase

	// Value is the recovered panic value (collaborator failures only).
	Value any
}

// Error implements the error interface.
func (e *SearchError) Error() string {
	switch e.Code {
	case ErrCodeCollaboratorPanic:
		return fmt.Sprintf("%s: %s (worker=%d, phase=%s): %v", e.Code, e.Message, e.Worker, e.Phase, e.Value)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// NewConfigError creates a SearchError for an invalid configuration value.
func NewConfigError(field string, value int) *SearchError {
	return &SearchError{
		Code:    ErrCodeInvalidConfig,
		Message: fmt.Sprintf("%s must be non-negative, got %d", field, value),
	}
}

// NewCollaboratorError creates a SearchError for a recovered panic in
// user-supplied code.
func NewCollaboratorError(worker int, phase Phase, value any) *SearchError {
	return &SearchError{
		Code:    ErrCodeCollaboratorPanic,
		Message: "panic in user-supplied code",
		Worker:  worker,
		Phase:   phase,
		Value:   value,
	}
}

// IsConfigError returns true if the error is an invalid-configuration
// error. Uses errors.As to handle wrapped errors.
func IsConfigError(err error) bool {
	var se *SearchError
	if errors.As(err, &se) {
		return se.Code == ErrCodeInvalidConfig
	}
	return false
}

// IsCollaboratorError returns true if the error wraps a recovered
// collaborator panic, possibly inside an aggregate from a parallel run.
func IsCollaboratorError(err error) bool {
	var se *SearchError
	if errors.As(err, &se) {
		return se.Code == ErrCodeCollaboratorPanic
	}
	return false
}
