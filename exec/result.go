package exec

import (
	"time"

	"github.com/jonwraymond/codelab/code"
	"github.com/jonwraymond/codelab/lint"
	"github.com/jonwraymond/tooldiscovery/index"
)

// Result represents the outcome of one run.
type Result struct {
	// Outcome is the displayable result of the run.
	Outcome code.ExecuteResult

	// Diagnostics are the lint hints for the executed source.
	Diagnostics []lint.Diagnostic

	// Duration is how long the run took, including linting.
	Duration time.Duration

	// Error is non-nil when the run failed beyond the snippet itself:
	// a limit was hit, the run was canceled, or no backend served the
	// language. Snippet faults leave it nil and live in Outcome.
	Error error
}

// OK returns true if the run neither faulted nor failed.
func (r Result) OK() bool {
	return r.Error == nil && !r.Outcome.Failed()
}

// Text renders the outcome as the output panel shows it.
func (r Result) Text() string {
	return r.Outcome.Text()
}

// ToolSummary is an alias to index.Summary for search results.
type ToolSummary = index.Summary
