package code

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Executor is the main entry point for executing code snippets.
// It orchestrates configuration, limits, and result resolution.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines; deadline exceeded is wrapped with ErrLimitExceeded.
// - Errors: snippet faults are reported in the result with a nil error;
//   configuration and limit failures also return a non-nil error.
// - Ownership: params are read-only; returned ExecuteResult is caller-owned.
type Executor interface {
	// ExecuteCode runs a code snippet with the given parameters.
	// It applies configuration defaults, enforces limits, and resolves the
	// outcome into exactly one result kind.
	ExecuteCode(ctx context.Context, params ExecuteParams) (ExecuteResult, error)
}

// DefaultExecutor is the standard implementation of Executor.
type DefaultExecutor struct {
	cfg Config
}

// NewDefaultExecutor creates a new DefaultExecutor with the given configuration.
// Returns ErrConfiguration if any required field is missing.
func NewDefaultExecutor(cfg Config) (*DefaultExecutor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &DefaultExecutor{cfg: cfg}, nil
}

// ExecuteCode runs a code snippet with the given parameters.
func (e *DefaultExecutor) ExecuteCode(ctx context.Context, params ExecuteParams) (ExecuteResult, error) {
	// Apply defaults from config
	if params.Language == "" {
		params.Language = e.cfg.DefaultLanguage
	}
	if params.Timeout == 0 {
		params.Timeout = e.cfg.DefaultTimeout
	}

	// Resolve MaxOutputLines (params capped by config)
	maxLines := params.MaxOutputLines
	if e.cfg.MaxOutputLines > 0 {
		if maxLines <= 0 || maxLines > e.cfg.MaxOutputLines {
			maxLines = e.cfg.MaxOutputLines
		}
	}
	params.MaxOutputLines = maxLines

	if strings.TrimSpace(params.Code) == "" {
		result := NoOutput()
		result.Language = params.Language
		return result, nil
	}

	console := newConsole(maxLines)

	// Create context with timeout
	var cancel context.CancelFunc
	if params.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, params.Timeout)
		defer cancel()
	}

	start := time.Now()
	completion, err := e.cfg.Engine.Execute(ctx, params, console)
	duration := time.Since(start).Milliseconds()

	result, err := e.resolve(ctx, params, console, completion, err)
	result.Language = params.Language
	result.DurationMs = duration

	// Log execution summary if logger present
	if e.cfg.Logger != nil {
		e.cfg.Logger.Logf("executed %s snippet in %dms: %s", params.Language, duration, result.Kind)
	}

	return result, err
}

// resolve maps the engine outcome to a result. Faults take precedence over
// captured output.
func (e *DefaultExecutor) resolve(ctx context.Context, params ExecuteParams, console *consoleImpl, c Completion, err error) (ExecuteResult, error) {
	if err == nil {
		return resolve(console.Lines(), c), nil
	}

	// Output cap and deadline are checked before the snippet's own fault:
	// engines report an interrupted run as whatever error unwound the snippet.
	if console.Exceeded() {
		return Fault(FaultOutputLimit), fmt.Errorf("%w: max output lines (%d) exceeded",
			ErrLimitExceeded, params.MaxOutputLines)
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return Fault(FaultTimeout), fmt.Errorf("%w: timeout after %v", ErrLimitExceeded, params.Timeout)
	}
	if errors.Is(err, context.Canceled) {
		return Fault(FaultCanceled), err
	}
	if errors.Is(err, ErrLimitExceeded) {
		return Fault(err.Error()), err
	}

	var codeErr *CodeError
	if errors.As(err, &codeErr) {
		return Fault(codeErr.Message), nil
	}

	// Configuration or engine failures: surface the error to both the result
	// and the caller.
	return Fault(err.Error()), err
}
