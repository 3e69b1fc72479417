package runtime

import "context"

// Backend executes snippets of one or more languages.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use; each call
//   gets its own interpreter.
// - Context: must interrupt the snippet when ctx is done and return ErrTimeout
//   (deadline) or the context error (cancellation).
// - Errors: snippet faults return *ScriptError.
type Backend interface {
	// Kind returns the backend kind identifier.
	Kind() BackendKind

	// Languages returns the language names this backend accepts.
	Languages() []string

	// Execute runs the request's snippet.
	Execute(ctx context.Context, req ExecuteRequest) (ExecuteResult, error)
}

// Logger is the interface backends log through.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: logging must be best-effort and must not panic.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
