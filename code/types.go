package code

import (
	"strings"
	"time"
)

// Kind discriminates the variants of an ExecuteResult.
type Kind string

const (
	// KindCapturedOutput means the snippet logged one or more lines.
	KindCapturedOutput Kind = "captured_output"

	// KindReturnedValue means nothing was logged but the completion value was defined.
	KindReturnedValue Kind = "returned_value"

	// KindNoOutput means nothing was logged and the completion value was undefined.
	KindNoOutput Kind = "no_output"

	// KindFault means the snippet raised an error or hit an execution limit.
	KindFault Kind = "fault"
)

// Fault messages produced by the executor itself.
const (
	FaultTimeout     = "timeout"
	FaultOutputLimit = "output limit exceeded"
	FaultCanceled    = "canceled"
)

// NoOutputText is what the output panel shows for KindNoOutput.
const NoOutputText = "Code executed successfully!"

// ExecuteParams specifies the parameters for executing a code snippet.
type ExecuteParams struct {
	// Language specifies the programming language of the code snippet.
	// If empty, the executor's default language is used.
	Language string `json:"language"`

	// Code is the source code to execute.
	Code string `json:"code"`

	// Timeout specifies the maximum duration for execution.
	// If zero, the executor's default timeout is used.
	Timeout time.Duration `json:"timeout"`

	// MaxOutputLines caps the number of console lines.
	// If zero, the executor's configured limit applies (or unlimited if none).
	MaxOutputLines int `json:"maxOutputLines,omitempty"`
}

// Completion is what an Engine reports for a snippet that ran to the end.
type Completion struct {
	// Value is the stringified completion value of the snippet.
	Value string

	// Defined reports whether the completion value was defined.
	// An undefined completion resolves to KindNoOutput.
	Defined bool
}

// ExecuteResult contains the outcome of executing a code snippet.
type ExecuteResult struct {
	// Kind selects which of the fields below is meaningful.
	Kind Kind `json:"kind"`

	// Lines holds the captured console lines for KindCapturedOutput.
	Lines []string `json:"lines,omitempty"`

	// Value holds the stringified completion value for KindReturnedValue.
	Value string `json:"value,omitempty"`

	// Fault holds the error description for KindFault.
	Fault string `json:"fault,omitempty"`

	// Language is the language the snippet was executed as.
	Language string `json:"language,omitempty"`

	// DurationMs is the total execution time in milliseconds.
	DurationMs int64 `json:"durationMs"`
}

// CapturedOutput returns a KindCapturedOutput result.
func CapturedOutput(lines ...string) ExecuteResult {
	return ExecuteResult{Kind: KindCapturedOutput, Lines: lines}
}

// ReturnedValue returns a KindReturnedValue result.
func ReturnedValue(v string) ExecuteResult {
	return ExecuteResult{Kind: KindReturnedValue, Value: v}
}

// NoOutput returns a KindNoOutput result.
func NoOutput() ExecuteResult {
	return ExecuteResult{Kind: KindNoOutput}
}

// Fault returns a KindFault result.
func Fault(msg string) ExecuteResult {
	return ExecuteResult{Kind: KindFault, Fault: msg}
}

// Failed reports whether the result is a fault.
func (r ExecuteResult) Failed() bool {
	return r.Kind == KindFault
}

// HasOutput reports whether the result has something to display.
// The zero ExecuteResult has no output.
func (r ExecuteResult) HasOutput() bool {
	return r.Kind != ""
}

// Text renders the result the way the output panel displays it.
func (r ExecuteResult) Text() string {
	switch r.Kind {
	case KindCapturedOutput:
		return strings.Join(r.Lines, "\n")
	case KindReturnedValue:
		return r.Value
	case KindNoOutput:
		return NoOutputText
	case KindFault:
		return "Error: " + r.Fault
	}
	return ""
}

// resolve picks the result variant for a snippet that completed without fault.
func resolve(lines []string, c Completion) ExecuteResult {
	switch {
	case len(lines) > 0:
		return CapturedOutput(lines...)
	case c.Defined:
		return ReturnedValue(c.Value)
	default:
		return NoOutput()
	}
}
