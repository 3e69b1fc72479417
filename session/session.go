package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/jonwraymond/codelab/code"
	"github.com/jonwraymond/codelab/lint"
)

// DefaultSource is the editor's welcome snippet.
const DefaultSource = `// Welcome to CodeLearner Editor!
// Write your JavaScript code here

function greet(name) {
  return ` + "`Hello, ${name}! Welcome to coding!`" + `;
}

console.log(greet("Developer"));`

var (
	// ErrRunInProgress is returned when a run is requested while another is
	// outstanding.
	ErrRunInProgress = errors.New("run already in progress")

	// ErrNoExecutor is returned by New when no executor is configured.
	ErrNoExecutor = errors.New("session requires an executor")
)

// State is the session's run state.
type State int

const (
	StateIdle State = iota
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	}
	return "unknown"
}

// Logger is the interface sessions log through.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: logging must be best-effort and must not panic.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config configures a Session.
type Config struct {
	// Executor runs the source. Required.
	Executor code.Executor

	// Linter checks the source on every change.
	// Default: lint.New() with the default rules.
	Linter *lint.Linter

	// DefaultSource is the initial source and the target of a reset.
	// Default: DefaultSource
	DefaultSource string

	// Language is the language runs are executed as. Empty defers to the
	// executor's default.
	Language string

	// Timeout bounds each run. Zero defers to the executor's default.
	Timeout time.Duration

	// OnChange, if set, receives the raw text of every source change.
	OnChange func(source string)

	// Logger is optional.
	Logger Logger
}

// Run records one execution.
type Run struct {
	// ID uniquely identifies the run.
	ID string

	// Source is the text that was executed.
	Source string

	// Result is the outcome.
	Result code.ExecuteResult

	// Started is when the run began.
	Started time.Time
}

// Session is one editing session.
type Session struct {
	cfg  Config
	runs *semaphore.Weighted

	mu          sync.Mutex
	source      string
	diagnostics []lint.Diagnostic
	result      code.ExecuteResult
	state       State
	last        *Run
}

// New creates a session holding the default source.
func New(cfg Config) (*Session, error) {
	if cfg.Executor == nil {
		return nil, ErrNoExecutor
	}
	if cfg.Linter == nil {
		cfg.Linter = lint.New()
	}
	if cfg.DefaultSource == "" {
		cfg.DefaultSource = DefaultSource
	}
	return &Session{
		cfg:    cfg,
		runs:   semaphore.NewWeighted(1),
		source: cfg.DefaultSource,
	}, nil
}

// OnSourceChange replaces the source, replaces the diagnostics with a fresh
// lint of text, and forwards text to the listener.
func (s *Session) OnSourceChange(text string) {
	diags := s.cfg.Linter.Lint(text)

	s.mu.Lock()
	s.source = text
	s.diagnostics = diags
	s.mu.Unlock()

	if s.cfg.OnChange != nil {
		s.cfg.OnChange(text)
	}
}

// OnRunRequested executes the current source and stores the result.
//
// The returned result is always displayable: failures resolve to a fault
// result. The error is non-nil for ErrRunInProgress and for failures the
// executor reports beyond the snippet itself (limits, cancellation).
func (s *Session) OnRunRequested(ctx context.Context) (code.ExecuteResult, error) {
	if !s.runs.TryAcquire(1) {
		return code.ExecuteResult{}, ErrRunInProgress
	}
	defer s.runs.Release(1)

	run := &Run{ID: uuid.NewString(), Started: time.Now()}

	s.mu.Lock()
	run.Source = s.source
	s.state = StateRunning
	s.result = code.ExecuteResult{}
	s.mu.Unlock()

	res, err := s.cfg.Executor.ExecuteCode(ctx, code.ExecuteParams{
		Language: s.cfg.Language,
		Code:     run.Source,
		Timeout:  s.cfg.Timeout,
	})
	if res.Kind == "" && err != nil {
		res = code.Fault(err.Error())
	}
	run.Result = res

	s.mu.Lock()
	s.state = StateIdle
	s.result = res
	s.last = run
	s.mu.Unlock()

	if s.cfg.Logger != nil {
		args := []any{
			"run", run.ID,
			"language", res.Language,
			"kind", res.Kind,
			"durationMs", res.DurationMs,
		}
		if err != nil {
			s.cfg.Logger.Warn("run failed", append(args, "error", err)...)
		} else {
			s.cfg.Logger.Info("run finished", args...)
		}
	}

	return res, err
}

// OnResetRequested restores the default source and clears the result and
// diagnostics.
func (s *Session) OnResetRequested() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = s.cfg.DefaultSource
	s.diagnostics = nil
	s.result = code.ExecuteResult{}
}

// OnClearOutput clears the result and leaves the source and diagnostics.
func (s *Session) OnClearOutput() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = code.ExecuteResult{}
}

// Source returns the current source text.
func (s *Session) Source() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

// Diagnostics returns a copy of the current diagnostics.
func (s *Session) Diagnostics() []lint.Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]lint.Diagnostic(nil), s.diagnostics...)
}

// Result returns the current result. Its Kind is empty when there is none.
func (s *Session) Result() code.ExecuteResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// LastRun returns the most recent run, or nil before the first.
func (s *Session) LastRun() *Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return nil
	}
	run := *s.last
	return &run
}

// State returns the run state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Running reports whether a run is outstanding. Editors disable their run
// trigger while it is true.
func (s *Session) Running() bool {
	return s.State() == StateRunning
}

// Output renders the current result the way the output panel shows it.
// It is empty when there is no result.
func (s *Session) Output() string {
	res := s.Result()
	if !res.HasOutput() {
		return ""
	}
	return res.Text()
}

// Succeeded reports whether the success indicator is lit: there are no
// diagnostics and the current result is displayable output rather than a
// fault.
func (s *Session) Succeeded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.diagnostics) == 0 && s.result.HasOutput() && !s.result.Failed()
}
