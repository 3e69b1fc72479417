package code

import (
	"errors"
	"fmt"
)

// Sentinel errors for error classification.
var (
	// ErrCodeExecution indicates an error during code snippet execution,
	// such as syntax errors or runtime exceptions in the snippet.
	ErrCodeExecution = errors.New("code execution error")

	// ErrConfiguration indicates an invalid or incomplete configuration.
	ErrConfiguration = errors.New("configuration error")

	// ErrLimitExceeded indicates that an execution limit was reached,
	// such as the timeout or the console line cap.
	ErrLimitExceeded = errors.New("limit exceeded")
)

// CodeError represents an error that occurred during code snippet execution.
// It includes optional source location information for debugging.
type CodeError struct {
	// Name is the error's class as the snippet's language names it
	// (e.g. "TypeError"). Empty when the language has no such notion.
	Name string

	// Message describes the error. For thrown Error objects this is the
	// object's message; for other thrown values it is their string form.
	Message string

	// Line is the 1-based line number where the error occurred.
	// Zero indicates the line is unknown.
	Line int

	// Column is the 1-based column number where the error occurred.
	// Zero indicates the column is unknown.
	Column int

	// Err is the underlying error, if any.
	Err error
}

// Error returns the error message, prefixed by the error name and followed by
// line and column if available.
func (e *CodeError) Error() string {
	msg := e.Message
	if e.Name != "" {
		msg = e.Name + ": " + msg
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s (line %d, col %d)", msg, e.Line, e.Column)
	}
	return msg
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *CodeError) Unwrap() error {
	return e.Err
}

// Is reports whether this error matches the target.
// CodeError matches ErrCodeExecution to allow sentinel-style error checking.
func (e *CodeError) Is(target error) bool {
	return target == ErrCodeExecution
}
