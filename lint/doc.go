// Package lint provides the heuristic linter behind the editor's "Issues Found"
// panel.
//
// The linter is intentionally naive. It looks for a fixed set of literal
// substrings and one line-shape rule, and reports friendly hints rather than
// correctness guarantees. False positives and false negatives are expected.
//
// # Rules
//
// The default rule set, applied independently and accumulated in order:
//
//   - [CodeConsoleTypo]: the source contains "consol.log".
//   - [CodeFunctionTypo]: the source contains "functio " (with the trailing space).
//   - [CodeIfParens]: a line whose trimmed text starts with "if" and which
//     contains neither "{" nor "(".
//
// # Usage
//
//	diags := lint.Lint(source)
//	for _, d := range diags {
//	    fmt.Println(d.Message)
//	}
//
// [Lint] is pure: it never fails, has no side effects, and returns equal results
// for equal input.
package lint
