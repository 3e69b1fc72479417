package exec

import (
	"errors"
	"fmt"
	"time"

	"github.com/jonwraymond/codelab/lint"
	"github.com/jonwraymond/codelab/runtime"
)

// Default configuration values.
const (
	DefaultLanguage       = "javascript"
	DefaultTimeout        = 5 * time.Second
	DefaultMaxOutputLines = 1000
)

// Errors returned by Options validation.
var (
	ErrInvalidProfile = errors.New("exec: unknown security profile")
	ErrInvalidLimit   = errors.New("exec: limits must not be negative")
)

// Logger is the interface the facade and everything it wires log through.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: logging must be best-effort and must not panic.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Options configures an Exec instance.
type Options struct {
	// Backends execute snippets. The first backend declaring a language
	// serves it.
	// Default: the JavaScript (goja) and Go (yaegi) backends.
	Backends []runtime.Backend

	// SecurityProfile applies to every run.
	// Default: runtime.ProfileStandard
	SecurityProfile runtime.SecurityProfile

	// DefaultLanguage for runs that do not name one.
	// Default: "javascript"
	DefaultLanguage string

	// DefaultTimeout for runs that do not set one.
	// Default: 5s
	DefaultTimeout time.Duration

	// MaxOutputLines caps console lines per run.
	// Default: 1000
	MaxOutputLines int

	// MaxCallStackSize caps interpreter call depth. Zero keeps the backend
	// default.
	MaxCallStackSize int

	// Linter checks sources for Lint, Run and new sessions.
	// Default: lint.New() with the default rules.
	Linter *lint.Linter

	// DisabledTools names catalog tools that CallTool refuses. The tools
	// stay searchable.
	DisabledTools []string

	// LexicalSearch switches tool search from BM25 to lexical matching.
	LexicalSearch bool

	// Logger is optional.
	Logger Logger
}

// validate checks option values.
func (o *Options) validate() error {
	if o.SecurityProfile != "" && !o.SecurityProfile.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidProfile, o.SecurityProfile)
	}
	if o.DefaultTimeout < 0 || o.MaxOutputLines < 0 || o.MaxCallStackSize < 0 {
		return ErrInvalidLimit
	}
	return nil
}

// applyDefaults sets default values for unset optional fields.
func (o *Options) applyDefaults() {
	if o.SecurityProfile == "" {
		o.SecurityProfile = runtime.ProfileStandard
	}
	if o.DefaultLanguage == "" {
		o.DefaultLanguage = DefaultLanguage
	}
	if o.DefaultTimeout == 0 {
		o.DefaultTimeout = DefaultTimeout
	}
	if o.MaxOutputLines == 0 {
		o.MaxOutputLines = DefaultMaxOutputLines
	}
	if o.Linter == nil {
		o.Linter = lint.New()
	}
}

// CodeParams configures a code execution request.
type CodeParams struct {
	// Language specifies the snippet language.
	// If empty, Options.DefaultLanguage is used.
	Language string

	// Code is the source code to execute.
	Code string

	// Timeout overrides Options.DefaultTimeout for this execution.
	// If zero, the default timeout is used.
	Timeout time.Duration

	// MaxOutputLines lowers Options.MaxOutputLines for this execution.
	// If zero, the configured limit is used.
	MaxOutputLines int
}
