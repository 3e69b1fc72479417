package code

import "context"

// Engine is the pluggable code execution engine that runs code snippets.
// Implementations are responsible for parsing and executing the code in the
// specified language.
//
// The Engine should:
//   - Execute the code in a fresh scope that cannot reach host globals
//   - Write every console call to the provided Console
//   - Report the snippet's completion value
//   - Return snippet faults as *CodeError with line/column info when available
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines and return an error wrapping
//   ctx.Err() when interrupted.
// - Errors: snippet failures return *CodeError; callers use errors.As.
// - Ownership: params and console are read-only; the Completion is caller-owned.
type Engine interface {
	// Execute runs a code snippet, writing its output to console.
	Execute(ctx context.Context, params ExecuteParams, console Console) (Completion, error)
}
