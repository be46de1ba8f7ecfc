package service

import (
	"errors"
	"fmt"
)

// Error kinds returned by the services. Callers distinguish them with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
)

// ErrMissingServings is returned when a recipe has no usable serving count to
// scale from.
var ErrMissingServings = fmt.Errorf("%w: recipe has no stored serving count", ErrInvalidArgument)

func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...)
}

func conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConflict}, args...)...)
}
