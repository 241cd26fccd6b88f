package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrFormat indicates a malformed config or catalog file
	ErrFormat = errors.New("malformed file")

	// ErrParse indicates user-entered text could not be parsed
	ErrParse = errors.New("invalid input")

	// ErrSourceNotFound indicates a source index or name did not resolve
	ErrSourceNotFound = errors.New("source not found")

	// ErrTypeOutOfRange indicates a type index outside the loaded type list
	ErrTypeOutOfRange = errors.New("type index out of range")
)

// FormatError describes a malformed row in a config or catalog file.
// It is fatal to startup: no partial catalog is usable.
type FormatError struct {
	File   string // Path or logical name of the file
	Line   int    // 1-based line number, 0 when not line specific
	Field  string // Column name, empty when the whole row is at fault
	Reason string
	Err    error // Underlying parse error, if any
}

func (e *FormatError) Error() string {
	msg := e.File
	if e.Line > 0 {
		msg = fmt.Sprintf("%s:%d", msg, e.Line)
	}
	if e.Field != "" {
		msg += ": " + e.Field
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the underlying error
func (e *FormatError) Unwrap() error { return e.Err }

// Is reports ErrFormat so callers can match without a type assertion
func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// ParseError describes a user-entered time string that could not be parsed.
// Recoverable: the previous value stays in place.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid time %q: %v", e.Input, e.Err)
}

// Unwrap exposes the underlying error
func (e *ParseError) Unwrap() error { return e.Err }

// Is reports ErrParse so callers can match without a type assertion
func (e *ParseError) Is(target error) bool { return target == ErrParse }
