// Package exec provides a unified facade for the codelab playground.
//
// The exec package wires the pieces a playground needs into one value: the
// heuristic linter, the analysis panel, sandboxed snippet execution, editing
// sessions, and discovery of the playground's own tools.
//
// # Overview
//
// An [Exec] instance handles the complete workflow:
//
//   - Linting a snippet for common typos
//   - Analyzing a snippet's size and complexity
//   - Running a snippet behind the runtime boundary
//   - Starting editing sessions that lint on change and run on request
//   - Searching and describing the lint, analyze and run tools
//   - Calling those tools by ID with JSON-style arguments
//
// # Basic Usage
//
//	ex, err := exec.New(exec.Options{})
//	if err != nil {
//	    return err
//	}
//
//	res, err := ex.Run(ctx, exec.CodeParams{Code: "console.log('hi')"})
//	fmt.Println(res.Text()) // hi
//
// # Sessions
//
//	s, _ := ex.NewSession()
//	s.OnSourceChange("console.log(1 + 1)")
//	s.OnRunRequested(ctx)
//	fmt.Println(s.Output()) // 2
//
// # Tool Calls
//
//	out, err := ex.CallTool(ctx, "codelab:run", map[string]any{"source": "1+1"})
//	// out is a code.ExecuteResult holding the value "2"
//
// # Integration
//
// The exec package integrates with:
//
//   - [github.com/jonwraymond/codelab/runtime] for backend routing and profiles
//   - [github.com/jonwraymond/codelab/code] for result resolution and limits
//   - [github.com/jonwraymond/codelab/catalog] for tool discovery
//   - [github.com/jonwraymond/codelab/session] for editing sessions
//   - [github.com/jonwraymond/codelab/toolbox] for dispatch by tool ID
package exec
