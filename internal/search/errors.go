package search

import (
	"errors"
	"fmt"
)

var (
	// ErrRootNotFound indicates the search root does not exist.
	ErrRootNotFound = errors.New("search root not found")

	// ErrInvalidPattern indicates a regular expression or ignore glob that does not compile.
	ErrInvalidPattern = errors.New("invalid pattern")
)

// NotFoundError is returned when the search root does not exist.
type NotFoundError struct {
	Root string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrRootNotFound, e.Root)
}

// Is reports ErrRootNotFound so callers can use errors.Is.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrRootNotFound
}

// PatternError is returned when a pattern fails to compile.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("%s %q: %v", ErrInvalidPattern, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// Is reports ErrInvalidPattern so callers can use errors.Is.
func (e *PatternError) Is(target error) bool {
	return target == ErrInvalidPattern
}
