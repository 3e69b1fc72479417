package runtime

import (
	"errors"
	"fmt"
)

var (
	// ErrRuntimeUnavailable is returned when no runtime or backend is configured.
	ErrRuntimeUnavailable = errors.New("runtime unavailable")

	// ErrUnsupportedLanguage is returned when no backend serves the requested language.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrInvalidRequest is returned when an ExecuteRequest fails validation.
	ErrInvalidRequest = errors.New("invalid execute request")

	// ErrTimeout is returned when an execution is interrupted by its deadline.
	ErrTimeout = errors.New("execution timeout")

	// ErrResourceLimit is returned when an execution is stopped by a limit
	// other than the deadline.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrSandboxViolation is returned when a snippet requests a capability its
	// profile does not grant (e.g. a forbidden import).
	ErrSandboxViolation = errors.New("sandbox violation")

	// ErrScript classifies faults raised by the snippet itself.
	ErrScript = errors.New("script error")
)

// ScriptError is a fault raised by the snippet: a thrown value, a panic, or a
// syntax error.
type ScriptError struct {
	// Name is the error class ("TypeError", "SyntaxError"); may be empty.
	Name string

	// Message is the error description.
	Message string

	// Line and Column locate the fault (1-based); zero when unknown.
	Line   int
	Column int

	// Err is the interpreter's original error.
	Err error
}

func (e *ScriptError) Error() string {
	msg := e.Message
	if e.Name != "" {
		msg = e.Name + ": " + msg
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s at %d:%d", msg, e.Line, e.Column)
	}
	return msg
}

func (e *ScriptError) Unwrap() error { return e.Err }

// Is makes ScriptError match ErrScript.
func (e *ScriptError) Is(target error) bool { return target == ErrScript }
