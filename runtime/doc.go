// Package runtime provides the execution boundary that snippets run behind.
//
// A [Backend] executes one language inside an embedded interpreter. Each
// execution gets a fresh interpreter with its own global scope, so a snippet
// cannot reach or mutate host state, and nothing it defines survives into the
// next run. Console output is written to the [OutputSink] carried by the
// request rather than to a process-wide stream.
//
// # Security Profiles
//
// Three profiles tune what a backend exposes:
//
//   - [ProfileDev]: the full language surface, including every standard
//     package the interpreter ships.
//   - [ProfileStandard]: the default; dynamic code construction stays available
//     but host packages are restricted to an allow-list.
//   - [ProfileHardened]: additionally removes dynamic evaluation facilities.
//
// # Limits
//
// Every backend honours the request's deadline by interrupting the interpreter.
// [Limits] adds a console line cap and a call stack cap.
//
// # Errors
//
// Snippet faults are returned as [*ScriptError] (matching [ErrScript]).
// Interrupted executions return [ErrTimeout] or [ErrResourceLimit]; requests for
// languages no backend serves return [ErrUnsupportedLanguage].
package runtime
