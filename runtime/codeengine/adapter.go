// Package codeengine provides an adapter that implements code.Engine
// using runtime.Runtime for execution.
package codeengine

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonwraymond/codelab/code"
	"github.com/jonwraymond/codelab/runtime"
)

// Config configures an Engine.
type Config struct {
	// Runtime is the runtime.Runtime to use for execution.
	Runtime runtime.Runtime

	// Profile is the security profile to use for execution.
	Profile runtime.SecurityProfile

	// MaxCallStackSize is forwarded to backends as a limit. Zero keeps the
	// backend default.
	MaxCallStackSize int
}

// Engine implements code.Engine using a runtime.Runtime backend.
type Engine struct {
	runtime          runtime.Runtime
	profile          runtime.SecurityProfile
	maxCallStackSize int
}

// New creates a new Engine with the given configuration.
func New(cfg Config) (*Engine, error) {
	if cfg.Runtime == nil {
		return nil, runtime.ErrRuntimeUnavailable
	}

	profile := cfg.Profile
	if profile == "" {
		profile = runtime.ProfileStandard
	}
	if !profile.IsValid() {
		return nil, fmt.Errorf("%w: unknown profile %q", code.ErrConfiguration, profile)
	}

	return &Engine{
		runtime:          cfg.Runtime,
		profile:          profile,
		maxCallStackSize: cfg.MaxCallStackSize,
	}, nil
}

// Execute implements code.Engine by delegating to the underlying runtime.
// The console doubles as the runtime's output sink.
func (e *Engine) Execute(ctx context.Context, params code.ExecuteParams, console code.Console) (code.Completion, error) {
	if e.runtime == nil {
		return code.Completion{}, runtime.ErrRuntimeUnavailable
	}

	req := runtime.ExecuteRequest{
		Language: params.Language,
		Code:     params.Code,
		Timeout:  params.Timeout,
		Limits: runtime.Limits{
			MaxOutputLines:   params.MaxOutputLines,
			MaxCallStackSize: e.maxCallStackSize,
		},
		Profile: e.profile,
		Output:  console,
	}

	result, err := e.runtime.Execute(ctx, req)
	if err != nil {
		return code.Completion{}, mapError(err)
	}

	return code.Completion{Value: result.Value, Defined: result.Defined}, nil
}

// mapError converts runtime errors to code errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	// Map timeout and resource limit errors to ErrLimitExceeded
	if errors.Is(err, runtime.ErrTimeout) {
		return fmt.Errorf("%w: %w", code.ErrLimitExceeded, err)
	}
	if errors.Is(err, runtime.ErrResourceLimit) {
		return fmt.Errorf("%w: %w", code.ErrLimitExceeded, err)
	}

	// Snippet faults and sandbox refusals are the learner's to see.
	var scriptErr *runtime.ScriptError
	if errors.As(err, &scriptErr) {
		return &code.CodeError{
			Name:    scriptErr.Name,
			Message: scriptErr.Message,
			Line:    scriptErr.Line,
			Column:  scriptErr.Column,
			Err:     err,
		}
	}
	if errors.Is(err, runtime.ErrSandboxViolation) {
		return &code.CodeError{Message: err.Error(), Err: err}
	}

	// Return other errors as-is
	return err
}

var _ code.Engine = (*Engine)(nil)
