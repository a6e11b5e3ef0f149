package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the store contract and the commands
var (
	ErrNotFound = errors.New("not found")
	ErrParse    = errors.New("parse error")
)

// ParseError reports a malformed document
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// NotFoundError reports a missing default, document or component instance
type NotFoundError struct {
	What string // e.g. "default document", "rates component"
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found in %s", e.What, e.Path)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
