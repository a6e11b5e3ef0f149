package application

import (
	"errors"
	"fmt"

	"componentdiff/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNotFound       = domain.ErrNotFound
	ErrParse          = domain.ErrParse
	ErrNoInstances    = domain.ErrNoInstances
	ErrInvalidDefault = errors.New("invalid default")
)

// Re-export typed errors produced by the document store
type (
	ParseError    = domain.ParseError
	NotFoundError = domain.NotFoundError
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DefaultError represents a default document that cannot serve as a baseline
type DefaultError struct {
	Path   string
	Reason string
	Err    error
}

func (e *DefaultError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid default %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid default %s: %s", e.Path, e.Reason)
}

func (e *DefaultError) Unwrap() error {
	return e.Err
}

func (e *DefaultError) Is(target error) bool {
	return target == ErrInvalidDefault
}

// ApplyError represents a failure to write a default into one target document
type ApplyError struct {
	Path string
	Err  error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("cannot apply default to %s: %v", e.Path, e.Err)
}

func (e *ApplyError) Unwrap() error {
	return e.Err
}
