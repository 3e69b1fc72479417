package exec

import (
	"context"
	"fmt"
	"time"

	"github.com/jonwraymond/codelab/analysis"
	"github.com/jonwraymond/codelab/catalog"
	"github.com/jonwraymond/codelab/code"
	"github.com/jonwraymond/codelab/lint"
	"github.com/jonwraymond/codelab/runtime"
	"github.com/jonwraymond/codelab/runtime/backend/golang"
	"github.com/jonwraymond/codelab/runtime/backend/javascript"
	"github.com/jonwraymond/codelab/runtime/codeengine"
	"github.com/jonwraymond/codelab/session"
	"github.com/jonwraymond/codelab/toolbox"
	"github.com/jonwraymond/tooldiscovery/tooldoc"
)

// Exec is the unified facade for the playground.
// It combines linting, analysis, execution, sessions, tool discovery and
// tool dispatch into a single API.
type Exec struct {
	runtime  *runtime.DefaultRuntime
	executor code.Executor
	catalog  *catalog.Catalog
	toolbox  *toolbox.Box
	opts     Options
}

// New creates a new Exec instance with the given options.
func New(opts Options) (*Exec, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	opts.applyDefaults()

	backends := opts.Backends
	if len(backends) == 0 {
		backends = []runtime.Backend{
			javascript.New(javascript.Config{Logger: opts.Logger}),
			golang.New(golang.Config{Logger: opts.Logger}),
		}
	}

	rt := runtime.NewDefaultRuntime(runtime.RuntimeConfig{
		Backends:       backends,
		DefaultProfile: opts.SecurityProfile,
		Logger:         opts.Logger,
	})

	engine, err := codeengine.New(codeengine.Config{
		Runtime:          rt,
		Profile:          opts.SecurityProfile,
		MaxCallStackSize: opts.MaxCallStackSize,
	})
	if err != nil {
		return nil, err
	}

	var codeLogger code.Logger
	if opts.Logger != nil {
		codeLogger = logfAdapter{opts.Logger}
	}
	executor, err := code.NewDefaultExecutor(code.Config{
		Engine:          engine,
		DefaultTimeout:  opts.DefaultTimeout,
		DefaultLanguage: opts.DefaultLanguage,
		MaxOutputLines:  opts.MaxOutputLines,
		Logger:          codeLogger,
	})
	if err != nil {
		return nil, err
	}

	cat, err := catalog.New(catalog.Options{
		Lexical:   opts.LexicalSearch,
		Languages: rt.Languages(),
	})
	if err != nil {
		return nil, err
	}

	e := &Exec{
		runtime:  rt,
		executor: executor,
		catalog:  cat,
		opts:     opts,
	}
	if e.toolbox, err = e.newToolbox(); err != nil {
		return nil, err
	}
	return e, nil
}

// Lint returns the diagnostics for source.
func (e *Exec) Lint(source string) []lint.Diagnostic {
	return e.opts.Linter.Lint(source)
}

// Analyze returns the analysis report for source.
func (e *Exec) Analyze(source string) analysis.Report {
	return analysis.Analyze(source)
}

// Run lints and executes a snippet. Snippet faults are reported in the
// result's Outcome with a nil error.
func (e *Exec) Run(ctx context.Context, params CodeParams) (Result, error) {
	start := time.Now()
	diags := e.Lint(params.Code)

	outcome, err := e.executor.ExecuteCode(ctx, code.ExecuteParams{
		Language:       params.Language,
		Code:           params.Code,
		Timeout:        params.Timeout,
		MaxOutputLines: params.MaxOutputLines,
	})

	return Result{
		Outcome:     outcome,
		Diagnostics: diags,
		Duration:    time.Since(start),
		Error:       err,
	}, err
}

// NewSession starts an editing session backed by this instance's executor
// and linter. opts may adjust the session config; the executor cannot be
// replaced.
func (e *Exec) NewSession(opts ...func(*session.Config)) (*session.Session, error) {
	cfg := session.Config{
		Linter: e.opts.Linter,
		Logger: e.opts.Logger,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.Executor = e.executor
	return session.New(cfg)
}

// SearchTools finds playground tools matching a query.
func (e *Exec) SearchTools(ctx context.Context, query string, limit int) ([]ToolSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.catalog.Search(query, limit)
}

// GetToolDoc retrieves tool documentation at the specified detail level.
func (e *Exec) GetToolDoc(ctx context.Context, toolID string, level tooldoc.DetailLevel) (tooldoc.ToolDoc, error) {
	if err := ctx.Err(); err != nil {
		return tooldoc.ToolDoc{}, err
	}
	return e.catalog.Describe(toolID, level)
}

// Languages returns the snippet languages the configured backends accept.
func (e *Exec) Languages() []string {
	return e.runtime.Languages()
}

// Catalog returns the tool catalog.
func (e *Exec) Catalog() *catalog.Catalog {
	return e.catalog
}

// Executor returns the code executor.
// This allows advanced usage patterns like wiring custom sessions.
func (e *Exec) Executor() code.Executor {
	return e.executor
}

// logfAdapter presents a Logger as a code.Logger.
type logfAdapter struct {
	l Logger
}

func (a logfAdapter) Logf(format string, args ...any) {
	a.l.Info(fmt.Sprintf(format, args...))
}
