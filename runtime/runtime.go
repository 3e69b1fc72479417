package runtime

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Runtime executes snippets by routing them to a backend.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines.
// - Errors: unsupported languages return ErrUnsupportedLanguage.
type Runtime interface {
	Execute(ctx context.Context, req ExecuteRequest) (ExecuteResult, error)
}

// RuntimeConfig configures a DefaultRuntime.
type RuntimeConfig struct {
	// Backends serve the languages they declare. When two backends declare
	// the same language the first one wins.
	Backends []Backend

	// DefaultProfile applies to requests that carry no profile.
	// Default: ProfileStandard.
	DefaultProfile SecurityProfile

	// Logger is optional.
	Logger Logger
}

// DefaultRuntime routes requests to backends by language.
type DefaultRuntime struct {
	byLanguage     map[string]Backend
	defaultProfile SecurityProfile
	logger         Logger
}

// NewDefaultRuntime creates a DefaultRuntime from cfg.
func NewDefaultRuntime(cfg RuntimeConfig) *DefaultRuntime {
	profile := cfg.DefaultProfile
	if profile == "" {
		profile = ProfileStandard
	}

	byLanguage := make(map[string]Backend)
	for _, b := range cfg.Backends {
		if b == nil {
			continue
		}
		for _, lang := range b.Languages() {
			key := normalizeLanguage(lang)
			if _, taken := byLanguage[key]; !taken {
				byLanguage[key] = b
			}
		}
	}

	return &DefaultRuntime{
		byLanguage:     byLanguage,
		defaultProfile: profile,
		logger:         cfg.Logger,
	}
}

// Languages returns the accepted language names, sorted.
func (r *DefaultRuntime) Languages() []string {
	out := make([]string, 0, len(r.byLanguage))
	for lang := range r.byLanguage {
		out = append(out, lang)
	}
	slices.Sort(out)
	return out
}

// Execute validates req, applies the default profile and timeout, and
// delegates to the backend serving req.Language.
func (r *DefaultRuntime) Execute(ctx context.Context, req ExecuteRequest) (ExecuteResult, error) {
	if len(r.byLanguage) == 0 {
		return ExecuteResult{}, ErrRuntimeUnavailable
	}
	if req.Profile == "" {
		req.Profile = r.defaultProfile
	}
	if err := req.Validate(); err != nil {
		return ExecuteResult{}, err
	}

	backend, ok := r.byLanguage[normalizeLanguage(req.Language)]
	if !ok {
		return ExecuteResult{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, req.Language)
	}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := backend.Execute(ctx, req)
	if result.Duration == 0 {
		result.Duration = time.Since(start)
	}

	if r.logger != nil {
		if err != nil {
			r.logger.Warn("snippet execution failed",
				"backend", backend.Kind(),
				"profile", req.Profile,
				"error", err)
		} else {
			r.logger.Info("snippet executed",
				"backend", backend.Kind(),
				"profile", req.Profile,
				"duration", result.Duration)
		}
	}

	return result, err
}

func normalizeLanguage(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}

var _ Runtime = (*DefaultRuntime)(nil)
