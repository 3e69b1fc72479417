// Package javascript provides a backend that runs JavaScript snippets in an
// embedded goja interpreter. Every execution gets a fresh interpreter, so
// snippets share no globals with each other or with the host.
package javascript

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dop251/goja"

	"github.com/jonwraymond/codelab/runtime"
	"github.com/jonwraymond/codelab/runtime/backend/shared"
)

// DefaultMaxCallStackSize caps call depth when neither the config nor the
// request sets one.
const DefaultMaxCallStackSize = 10000

// scriptName labels positions in thrown errors.
const scriptName = "main.js"

// consoleMethods are the console functions exposed to snippets. All of them
// write to the request's output sink.
var consoleMethods = []string{"log", "info", "warn", "error", "debug"}

// hardenedRemovals are globals deleted under ProfileHardened.
var hardenedRemovals = []string{"eval", "Function"}

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

// Config configures a JavaScript backend.
type Config struct {
	// MaxCallStackSize caps call depth.
	// Default: DefaultMaxCallStackSize
	MaxCallStackSize int

	// Logger is an optional logger for backend events.
	Logger Logger
}

// Backend executes JavaScript snippets in goja.
type Backend struct {
	maxCallStackSize int
	logger           Logger
}

// New creates a new JavaScript backend with the given configuration.
func New(cfg Config) *Backend {
	maxStack := cfg.MaxCallStackSize
	if maxStack <= 0 {
		maxStack = DefaultMaxCallStackSize
	}
	return &Backend{
		maxCallStackSize: maxStack,
		logger:           cfg.Logger,
	}
}

// Kind returns the backend kind identifier.
func (b *Backend) Kind() runtime.BackendKind {
	return runtime.BackendJavaScript
}

// Languages returns the language names this backend accepts.
func (b *Backend) Languages() []string {
	return []string{"javascript", "js"}
}

// Execute runs a JavaScript snippet.
//
// The completion value of the script becomes the result value. Thrown values
// are returned as *runtime.ScriptError. Deadline expiry returns
// runtime.ErrTimeout; a refusing output sink returns runtime.ErrResourceLimit.
func (b *Backend) Execute(ctx context.Context, req runtime.ExecuteRequest) (runtime.ExecuteResult, error) {
	if err := req.Validate(); err != nil {
		return runtime.ExecuteResult{}, err
	}

	profile := req.Profile
	if profile == "" {
		profile = runtime.ProfileStandard
	}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	select {
	case <-ctx.Done():
		return runtime.ExecuteResult{}, contextError(ctx.Err())
	default:
	}

	start := time.Now()

	vm, err := b.newVM(req, profile)
	if err != nil {
		return runtime.ExecuteResult{}, err
	}

	// Converting the completion value or a thrown value can call back into
	// the snippet and must finish before the watcher stops.
	stop := watchContext(ctx, vm)
	value, runErr := vm.RunScript(scriptName, req.Code)

	result := runtime.ExecuteResult{
		Backend: b.backendInfo(profile),
	}
	if runErr == nil && value != nil && !goja.IsUndefined(value) {
		result.Value, runErr = hostString(vm, value)
		result.Defined = runErr == nil
	}
	if runErr != nil {
		runErr = classify(vm, runErr, maxConversionDepth)
	}
	stop()
	result.Duration = time.Since(start)

	if runErr != nil {
		if b.logger != nil {
			b.logger.Warn("javascript snippet failed", "profile", profile, "error", runErr)
		}
		return result, runErr
	}
	return result, nil
}

func (b *Backend) newVM(req runtime.ExecuteRequest, profile runtime.SecurityProfile) (*goja.Runtime, error) {
	vm := goja.New()

	maxStack := b.maxCallStackSize
	if req.Limits.MaxCallStackSize > 0 {
		maxStack = req.Limits.MaxCallStackSize
	}
	vm.SetMaxCallStackSize(maxStack)

	if err := vm.Set("console", newConsole(vm, req.Output)); err != nil {
		return nil, fmt.Errorf("install console: %w", err)
	}

	if profile == runtime.ProfileHardened {
		global := vm.GlobalObject()
		for _, name := range hardenedRemovals {
			if err := global.Delete(name); err != nil {
				return nil, fmt.Errorf("remove %s: %w", name, err)
			}
		}
	}
	return vm, nil
}

func (b *Backend) backendInfo(profile runtime.SecurityProfile) runtime.BackendInfo {
	return runtime.BackendInfo{
		Kind:      runtime.BackendJavaScript,
		Readiness: runtime.ReadinessStable,
		Details: map[string]any{
			"engine":           "goja",
			"profile":          string(profile),
			"maxCallStackSize": b.maxCallStackSize,
		},
	}
}

// newConsole builds the console object. A sink refusal interrupts the VM so
// the snippet cannot swallow it with try/catch.
func newConsole(vm *goja.Runtime, sink runtime.OutputSink) *goja.Object {
	console := vm.NewObject()
	write := func(call goja.FunctionCall) goja.Value {
		args := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			args[i] = stringify(vm, arg)
		}
		if err := sink.Log(args...); err != nil {
			vm.Interrupt(fmt.Errorf("%w: %w", runtime.ErrResourceLimit, err))
		}
		return goja.Undefined()
	}
	for _, name := range consoleMethods {
		_ = console.Set(name, write)
	}
	return console
}

// stringify converts a console argument the way Array.prototype.join does.
// It runs inside the snippet, so a failing conversion is thrown back to it.
func stringify(vm *goja.Runtime, v goja.Value) string {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return ""
	}
	defer func() {
		if x := recover(); x != nil {
			if isPrimitiveFailure(x) {
				panic(vm.NewTypeError(noPrimitiveMessage))
			}
			panic(x)
		}
	}()
	return v.String()
}

// noPrimitiveMessage replaces goja's description of an object with neither a
// usable toString nor valueOf.
const noPrimitiveMessage = "Cannot convert object to primitive value"

// maxConversionDepth bounds how many nested throws from toString or error
// getters are followed before giving up on a description.
const maxConversionDepth = 3

// primitiveFailurePrefix starts goja's TypeError for an object without a
// primitive value.
const primitiveFailurePrefix = "Could not convert "

// isPrimitiveFailure reports whether x, recovered inside a native function,
// is goja's own TypeError for an object without a primitive value. Values the
// snippet throws arrive as *goja.Exception instead.
func isPrimitiveFailure(x any) bool {
	obj, ok := x.(*goja.Object)
	if !ok || obj.ClassName() != "Error" {
		return false
	}
	v := obj.Get("message")
	if v == nil {
		return false
	}
	msg, ok := v.Export().(string)
	return ok && strings.HasPrefix(msg, primitiveFailurePrefix)
}

// guard runs f against an idle vm. Whatever the snippet throws comes back as
// an error, and so do interrupts and stack overflows.
func guard(vm *goja.Runtime, f func()) (err error) {
	defer func() {
		if x := recover(); x != nil {
			e, ok := x.(error)
			if !ok {
				panic(x)
			}
			err = e
		}
	}()
	if ex := vm.Try(f); ex != nil {
		return ex
	}
	return nil
}

// hostString converts v the way String(v) does, outside a running script.
func hostString(vm *goja.Runtime, v goja.Value) (string, error) {
	var s string
	err := guard(vm, func() { s = v.String() })
	return s, err
}

// watchContext interrupts vm when ctx is done. The returned func stops the
// watcher.
func watchContext(ctx context.Context, vm *goja.Runtime) func() {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()
	return func() {
		close(done)
	}
}

func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", runtime.ErrTimeout, err)
	}
	return err
}

// classify maps goja errors to runtime errors. depth limits how far a thrown
// value that fails to convert is chased.
func classify(vm *goja.Runtime, err error, depth int) error {
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		cause, _ := interrupted.Value().(error)
		switch {
		case cause == nil:
			return fmt.Errorf("%w: %v", runtime.ErrResourceLimit, interrupted.Value())
		case errors.Is(cause, context.DeadlineExceeded):
			return fmt.Errorf("%w: %w", runtime.ErrTimeout, cause)
		default:
			return cause
		}
	}

	var overflow *goja.StackOverflowError
	if errors.As(err, &overflow) {
		return &runtime.ScriptError{
			Name:    "RangeError",
			Message: "Maximum call stack size exceeded",
			Err:     err,
		}
	}

	var exception *goja.Exception
	if errors.As(err, &exception) {
		return exceptionError(vm, exception, depth)
	}

	return &runtime.ScriptError{Message: err.Error(), Err: err}
}

// exceptionError converts a thrown value. Error objects contribute their name
// and message; any other thrown value is converted with String(). When that
// conversion throws in turn, the second exception describes the fault.
func exceptionError(vm *goja.Runtime, ex *goja.Exception, depth int) error {
	se := &runtime.ScriptError{Err: ex}

	var convErr error
	switch val := ex.Value().(type) {
	case nil:
		se.Message = ex.Error()
	case *goja.Object:
		switch {
		case depth <= 0:
			se.Name, se.Message = "TypeError", noPrimitiveMessage
		case val.ClassName() == "Error":
			convErr = guard(vm, func() {
				se.Name = stringify(vm, val.Get("name"))
				se.Message = stringify(vm, val.Get("message"))
			})
			if se.Name == "TypeError" && strings.HasPrefix(se.Message, primitiveFailurePrefix) {
				se.Message = noPrimitiveMessage
			}
		default:
			se.Message, convErr = hostString(vm, val)
		}
	default:
		se.Message = val.String()
	}
	if convErr != nil {
		return classify(vm, convErr, depth-1)
	}

	if frames := ex.Stack(); len(frames) > 0 {
		pos := frames[0].Position()
		se.Line, se.Column = pos.Line, pos.Column
	}

	// Compile errors carry their position inside the message.
	if se.Name == "SyntaxError" {
		msg := strings.TrimPrefix(se.Message, "SyntaxError: ")
		line, col, rest := shared.SplitPosition(msg)
		if line > 0 {
			se.Line, se.Column = line, col
			msg = strings.TrimSpace(strings.TrimSuffix(rest, " at"))
		}
		se.Message = msg
	}
	return se
}
