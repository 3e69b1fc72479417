package lint

import (
	"fmt"
	"strings"
)

// Rule inspects a source text and reports zero or more diagnostics.
//
// Contract:
// - Purity: Check must not retain or mutate shared state.
// - Errors: rules never fail; a rule that cannot decide reports nothing.
type Rule interface {
	// Code returns the identifier of the diagnostics this rule emits.
	Code() Code

	// Check returns the diagnostics for source, in source order.
	Check(source string) []Diagnostic
}

// substringRule flags sources that contain a literal typo.
type substringRule struct {
	code    Code
	find    string
	replace string
	message string
}

func (r substringRule) Code() Code { return r.code }

func (r substringRule) Check(source string) []Diagnostic {
	if !strings.Contains(source, r.find) {
		return nil
	}
	return []Diagnostic{{
		Severity: SeverityWarning,
		Code:     r.code,
		Message:  r.message,
		Fix:      &Fix{Find: r.find, Replace: r.replace},
	}}
}

// ifParensRule flags "if" lines that carry neither a brace nor a parenthesis.
type ifParensRule struct{}

func (ifParensRule) Code() Code { return CodeIfParens }

func (ifParensRule) Check(source string) []Diagnostic {
	var out []Diagnostic
	for i, line := range strings.Split(source, "\n") {
		if !strings.HasPrefix(strings.TrimSpace(line), "if") {
			continue
		}
		if strings.Contains(line, "{") || strings.Contains(line, "(") {
			continue
		}
		out = append(out, Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeIfParens,
			Message:  fmt.Sprintf("Line %d: if statement might be missing parentheses", i+1),
			Line:     i + 1,
		})
	}
	return out
}

// ConsoleTypoRule reports "consol.log" and suggests "console.log".
func ConsoleTypoRule() Rule {
	return substringRule{
		code:    CodeConsoleTypo,
		find:    "consol.log",
		replace: "console.log",
		message: "Line: Did you mean 'console.log'?",
	}
}

// FunctionTypoRule reports "functio " and suggests "function".
func FunctionTypoRule() Rule {
	return substringRule{
		code:    CodeFunctionTypo,
		find:    "functio ",
		replace: "function ",
		message: "Line: Did you mean 'function'?",
	}
}

// IfParensRule reports if statements that might be missing parentheses.
func IfParensRule() Rule {
	return ifParensRule{}
}

// DefaultRules returns the editor's rule set in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		ConsoleTypoRule(),
		FunctionTypoRule(),
		IfParensRule(),
	}
}
