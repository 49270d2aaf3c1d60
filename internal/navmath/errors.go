package navmath

import (
	"errors"
	"fmt"
)

// Error categories. Callers test with errors.Is; every error returned by the
// navigation packages wraps exactly one of these.
var (
	// ErrParse marks malformed text input (timestamps, time of day).
	ErrParse = errors.New("parse failure")

	// ErrPrecondition marks input rejected before any computation
	// (too few sights, wrong sample count for an integration rule).
	ErrPrecondition = errors.New("precondition violated")

	// ErrLookup marks a table or catalog lookup that found nothing.
	ErrLookup = errors.New("lookup failed")
)

// ParseError describes malformed text input.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %s", e.Input, e.Reason)
}

// Unwrap lets errors.Is(err, ErrParse) match.
func (e *ParseError) Unwrap() error {
	return ErrParse
}
