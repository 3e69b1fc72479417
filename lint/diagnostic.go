package lint

import "strings"

// Severity indicates how strongly a diagnostic should be presented.
type Severity uint8

const (
	// SeverityInfo is for purely informational hints.
	SeverityInfo Severity = iota
	// SeverityWarning is for advisory hints that never block execution.
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	}
	return "unknown"
}

// Code identifies the rule that produced a diagnostic.
type Code string

const (
	CodeConsoleTypo  Code = "L001"
	CodeFunctionTypo Code = "L002"
	CodeIfParens     Code = "L003"
)

// Fix is a suggested textual replacement.
type Fix struct {
	// Find is the literal text to replace.
	Find string `json:"find"`

	// Replace is the suggested replacement.
	Replace string `json:"replace"`
}

// Diagnostic is an advisory message produced by a rule.
type Diagnostic struct {
	// Severity of the hint. All default rules emit SeverityWarning.
	Severity Severity `json:"severity"`

	// Code identifies the rule.
	Code Code `json:"code"`

	// Message is the user-facing text.
	Message string `json:"message"`

	// Line is the 1-based line the hint refers to.
	// Zero means the rule does not localize.
	Line int `json:"line,omitempty"`

	// Fix is the suggested replacement, if the rule has one.
	Fix *Fix `json:"fix,omitempty"`
}

// Apply returns source with the diagnostic's fix applied to every occurrence.
// The source is returned unchanged when the diagnostic carries no fix.
func (d Diagnostic) Apply(source string) string {
	if d.Fix == nil || d.Fix.Find == "" {
		return source
	}
	return strings.ReplaceAll(source, d.Fix.Find, d.Fix.Replace)
}
