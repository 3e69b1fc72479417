// Package code provides the snippet evaluator: the orchestration layer that runs
// a learner's snippet through a pluggable [Engine] and resolves the outcome into
// an [ExecuteResult].
//
// # Architecture
//
// The package defines three main interfaces:
//
//   - [Console]: the output sink handed to an engine for exactly one execution.
//     Every console call becomes one captured line.
//
//   - [Engine]: the pluggable execution engine that runs a snippet and writes
//     its console output to the sink it was given.
//
//   - [Executor]: the main entry point that applies defaults, enforces limits,
//     and resolves the result.
//
// Output is captured through a sink passed in by construction. No process-wide
// output function is replaced, so there is nothing to restore after a run and
// concurrent executions cannot see each other's output.
//
// # Result Resolution
//
// An execution resolves to exactly one [Kind], in precedence order:
//
//   - [KindFault]: the snippet threw, failed to parse, or hit a limit. Output
//     captured before the fault is not part of the result.
//   - [KindCapturedOutput]: the snippet logged at least one line.
//   - [KindReturnedValue]: the snippet's completion value was defined.
//   - [KindNoOutput]: none of the above.
//
// # Execution Limits
//
// The executor enforces two limits:
//
//   - Timeout: applied via context deadline; resolves to Fault("timeout") and
//     returns [ErrLimitExceeded].
//   - MaxOutputLines: caps the console; resolves to
//     Fault("output limit exceeded") and returns [ErrLimitExceeded].
//
// Snippet faults are results, not Go errors: [Executor.ExecuteCode] returns a
// nil error when the snippet itself throws.
package code
