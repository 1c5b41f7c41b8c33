package script

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyScript indicates a script with no tokens.
	ErrEmptyScript = errors.New("script: no tokens")

	// ErrInvalidScript indicates a script containing unknown tokens.
	ErrInvalidScript = errors.New("script: invalid tokens")

	// ErrBusy indicates that another script holds the run-lock.
	ErrBusy = errors.New("script: another script is running")
)

// ValidationError lists every unknown token of a script, in order of first
// appearance.
type ValidationError struct {
	Invalid []string
}

func (e *ValidationError) Error() string {
	return "script: invalid tokens: " + strings.Join(e.Invalid, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidScript
}
