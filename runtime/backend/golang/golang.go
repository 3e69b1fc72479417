// Package golang provides a backend that runs Go snippets in an embedded yaegi
// interpreter.
//
// Snippets are statement lists, optionally preceded by imports:
//
//	import (
//		"fmt"
//		"strings"
//	)
//	fmt.Println(strings.ToUpper("hi"))
//
// Imports are evaluated first, then the statements run as one block. Function
// declarations are not accepted at the top level; use function literals.
//
// Anything written to standard output becomes console output, one sink line per
// printed line. When the last statement is an expression other than a fmt call,
// its value is the completion value.
package golang

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"strings"
	"time"

	"github.com/traefik/yaegi/interp"

	"github.com/jonwraymond/codelab/runtime"
	"github.com/jonwraymond/codelab/runtime/backend/shared"
)

// Logger is the interface for logging.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: logging must be best-effort and must not panic.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config configures a Go backend.
type Config struct {
	// AllowedPackages lists importable packages under the standard and
	// hardened profiles.
	// Default: DefaultAllowedPackages
	AllowedPackages []string

	// Logger is an optional logger for backend events.
	Logger Logger
}

// Backend executes Go snippets in yaegi.
type Backend struct {
	allowed map[string]bool
	logger  Logger
}

// New creates a new Go backend with the given configuration.
func New(cfg Config) *Backend {
	pkgs := cfg.AllowedPackages
	if len(pkgs) == 0 {
		pkgs = DefaultAllowedPackages
	}
	allowed := make(map[string]bool, len(pkgs))
	for _, p := range pkgs {
		allowed[p] = true
	}
	return &Backend{allowed: allowed, logger: cfg.Logger}
}

// Kind returns the backend kind identifier.
func (b *Backend) Kind() runtime.BackendKind {
	return runtime.BackendGo
}

// Languages returns the language names this backend accepts.
func (b *Backend) Languages() []string {
	return []string{"go", "golang"}
}

// Execute runs a Go snippet.
func (b *Backend) Execute(ctx context.Context, req runtime.ExecuteRequest) (runtime.ExecuteResult, error) {
	if err := req.Validate(); err != nil {
		return runtime.ExecuteResult{}, err
	}

	profile := req.Profile
	if profile == "" {
		profile = runtime.ProfileStandard
	}

	var allowed map[string]bool
	if profile != runtime.ProfileDev {
		allowed = b.allowed
		if err := checkImports(req.Code, allowed); err != nil {
			return runtime.ExecuteResult{}, err
		}
	}
	if profile == runtime.ProfileHardened {
		if err := checkGoroutines(req.Code); err != nil {
			return runtime.ExecuteResult{}, err
		}
	}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return runtime.ExecuteResult{}, contextError(err)
	}

	// A refusing sink stops the interpreter through this context.
	runCtx, stopRun := context.WithCancel(ctx)
	defer stopRun()
	out := shared.NewLineWriter(req.Output, func(error) { stopRun() })

	i := interp.New(interp.Options{Stdout: out, Stderr: out})
	if err := i.Use(symbolsFor(allowed)); err != nil {
		return runtime.ExecuteResult{}, fmt.Errorf("load symbols: %w", err)
	}

	start := time.Now()
	value, evalErr := evalSnippet(runCtx, i, req.Code)
	flushErr := out.Flush()

	result := runtime.ExecuteResult{
		Duration: time.Since(start),
		Backend:  b.backendInfo(profile),
	}

	err := b.classify(ctx, out, evalErr, flushErr)
	if err != nil {
		if b.logger != nil {
			b.logger.Warn("go snippet failed", "profile", profile, "error", err)
		}
		return result, err
	}

	if value.IsValid() && value.CanInterface() && reportsValue(req.Code) {
		result.Value = fmt.Sprint(value.Interface())
		result.Defined = true
	}
	return result, nil
}

// evalSnippet evaluates the import declarations, then the statements.
func evalSnippet(ctx context.Context, i *interp.Interpreter, code string) (reflect.Value, error) {
	decls, body := splitSnippet(code)
	if strings.TrimSpace(decls) != "" {
		if _, err := i.EvalWithContext(ctx, decls); err != nil {
			return reflect.Value{}, err
		}
	}
	if strings.TrimSpace(body) == "" {
		return reflect.Value{}, nil
	}
	return i.EvalWithContext(ctx, body)
}

func (b *Backend) classify(ctx context.Context, out *shared.LineWriter, evalErr, flushErr error) error {
	if sinkErr := out.Err(); sinkErr != nil {
		return fmt.Errorf("%w: %w", runtime.ErrResourceLimit, sinkErr)
	}
	if err := ctx.Err(); err != nil {
		return contextError(err)
	}
	if evalErr != nil {
		return scriptError(evalErr)
	}
	return flushErr
}

func (b *Backend) backendInfo(profile runtime.SecurityProfile) runtime.BackendInfo {
	return runtime.BackendInfo{
		Kind:      runtime.BackendGo,
		Readiness: runtime.ReadinessBeta,
		Details: map[string]any{
			"engine":  "yaegi",
			"profile": string(profile),
		},
	}
}

func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", runtime.ErrTimeout, err)
	}
	return err
}

// scriptError converts an interpreter error ("_.go:2:3: undefined: x").
func scriptError(err error) *runtime.ScriptError {
	line, col, msg := shared.SplitPosition(err.Error())
	name := ""
	if rest, ok := strings.CutPrefix(msg, "panic: "); ok {
		name, msg = "panic", rest
	}
	return &runtime.ScriptError{Name: name, Message: msg, Line: line, Column: col, Err: err}
}

// reportsValue reports whether the snippet ends in an expression whose value
// should be shown. Calls into fmt are excluded since they print instead.
func reportsValue(code string) bool {
	_, stmts := splitSnippet(code)
	body := "package snippet\nfunc _() {\n" + stmts + "\n}\n"
	f, err := parser.ParseFile(token.NewFileSet(), "", body, 0)
	if err != nil || len(f.Decls) == 0 {
		return false
	}
	fn, ok := f.Decls[0].(*ast.FuncDecl)
	if !ok || fn.Body == nil || len(fn.Body.List) == 0 {
		return false
	}
	stmt, ok := fn.Body.List[len(fn.Body.List)-1].(*ast.ExprStmt)
	if !ok {
		return false
	}
	if call, ok := stmt.X.(*ast.CallExpr); ok {
		if sel, ok := call.Fun.(*ast.SelectorExpr); ok {
			if pkg, ok := sel.X.(*ast.Ident); ok && pkg.Name == "fmt" {
				return false
			}
		}
	}
	return true
}
