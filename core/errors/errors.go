// Package errors provides the error taxonomy shared by the dra packages.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrInvalidInput indicates a query that could not be parsed
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidRange indicates a range whose end precedes its start
	ErrInvalidRange = errors.New("invalid range")
	// ErrUnavailable indicates the verse store could not be opened or queried
	ErrUnavailable = errors.New("store unavailable")
	// ErrUsage indicates missing or conflicting command-line arguments
	ErrUsage = errors.New("usage error")
)

// Exit codes returned by the CLI.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ParseKind classifies a ParseError.
type ParseKind int

const (
	// InvalidFormat means the token sequence does not follow the reference grammar.
	InvalidFormat ParseKind = iota
	// NotANumber means a chapter or verse token is not a usable integer.
	NotANumber
)

func (k ParseKind) String() string {
	switch k {
	case InvalidFormat:
		return "invalid format"
	case NotANumber:
		return "not a number"
	default:
		return "unknown"
	}
}

// ParseError represents a reference string that could not be parsed
type ParseError struct {
	Kind    ParseKind // What went wrong
	Query   string    // The full query string
	Token   string    // Offending token, if known
	Message string    // Error details
	Err     error     // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("invalid query %q: %s: %q", e.Query, e.Message, e.Token)
	}
	return fmt.Sprintf("invalid query %q: %s", e.Query, e.Message)
}

func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidInput, e.Err}
	}
	return []error{ErrInvalidInput}
}

// RangeError represents a range whose end precedes its start
type RangeError struct {
	Field string // "chapter" or "verse"
	Start int
	End   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("query range invalid: end_%s %d precedes start_%s %d", e.Field, e.End, e.Field, e.Start)
}

func (e *RangeError) Unwrap() error {
	return ErrInvalidRange
}

// StoreError represents a failure to open or query the verse store
type StoreError struct {
	Op   string // Operation being performed (e.g., "open", "query", "scan")
	Path string // Store path, if known
	Err  error  // Underlying driver error
}

func (e *StoreError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("store %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrUnavailable, e.Err}
	}
	return []error{ErrUnavailable}
}

// ArgError represents missing or conflicting command-line arguments
type ArgError struct {
	Message string
}

func (e *ArgError) Error() string {
	return e.Message
}

func (e *ArgError) Unwrap() error {
	return ErrUsage
}

// Helper functions for creating common errors

// NewParse creates a ParseError
func NewParse(kind ParseKind, query, token, message string) *ParseError {
	return &ParseError{
		Kind:    kind,
		Query:   query,
		Token:   token,
		Message: message,
	}
}

// NewRange creates a RangeError
func NewRange(field string, start, end int) *RangeError {
	return &RangeError{
		Field: field,
		Start: start,
		End:   end,
	}
}

// NewStore creates a StoreError
func NewStore(op, path string, err error) *StoreError {
	return &StoreError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// NewArg creates an ArgError
func NewArg(message string) *ArgError {
	return &ArgError{Message: message}
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		return ExitUsage
	default:
		return ExitFailure
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
