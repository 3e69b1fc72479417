package javascript

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/jonwraymond/codelab/runtime"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var errSinkFull = errors.New("sink full")

// testSink records console lines and refuses after max lines when max > 0.
type testSink struct {
	mu    sync.Mutex
	lines []string
	max   int
}

func (s *testSink) Log(args ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.max > 0 && len(s.lines) >= s.max {
		return errSinkFull
	}
	s.lines = append(s.lines, strings.Join(args, " "))
	return nil
}

func (s *testSink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

type mockLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *mockLogger) Info(msg string, _ ...any)  { l.add("INFO: " + msg) }
func (l *mockLogger) Warn(msg string, _ ...any)  { l.add("WARN: " + msg) }
func (l *mockLogger) Error(msg string, _ ...any) { l.add("ERROR: " + msg) }

func (l *mockLogger) add(m string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, m)
}

func run(t *testing.T, b *Backend, src string, opts ...func(*runtime.ExecuteRequest)) (runtime.ExecuteResult, *testSink, error) {
	t.Helper()
	sink := &testSink{}
	req := runtime.ExecuteRequest{Language: "javascript", Code: src, Output: sink}
	for _, opt := range opts {
		opt(&req)
	}
	res, err := b.Execute(context.Background(), req)
	return res, sink, err
}

func TestBackendImplementsInterface(t *testing.T) {
	t.Helper()
	var _ runtime.Backend = (*Backend)(nil)
}

func TestBackendKind(t *testing.T) {
	b := New(Config{})
	if b.Kind() != runtime.BackendJavaScript {
		t.Errorf("Kind() = %v, want %v", b.Kind(), runtime.BackendJavaScript)
	}
	if diff := cmp.Diff([]string{"javascript", "js"}, b.Languages()); diff != "" {
		t.Errorf("Languages() (-want +got):\n%s", diff)
	}
}

func TestBackendRequiresCode(t *testing.T) {
	b := New(Config{})
	_, err := b.Execute(context.Background(), runtime.ExecuteRequest{Output: &testSink{}})
	if !errors.Is(err, runtime.ErrInvalidRequest) {
		t.Errorf("Execute() without code error = %v, want %v", err, runtime.ErrInvalidRequest)
	}
}

func TestBackendRequiresOutput(t *testing.T) {
	b := New(Config{})
	_, err := b.Execute(context.Background(), runtime.ExecuteRequest{Code: "1"})
	if !errors.Is(err, runtime.ErrInvalidRequest) {
		t.Errorf("Execute() without output error = %v, want %v", err, runtime.ErrInvalidRequest)
	}
}

func TestExecute_ConsoleOutput(t *testing.T) {
	res, sink, err := run(t, New(Config{}), "console.log('a'); console.log('b')")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, sink.Lines()); diff != "" {
		t.Errorf("lines (-want +got):\n%s", diff)
	}
	if res.Defined {
		t.Errorf("Defined = true, want false for console.log completion")
	}
}

func TestExecute_ConsoleMethodsAndArguments(t *testing.T) {
	src := `
console.info("info", 1);
console.warn("warn", true);
console.error("error", undefined, null);
console.debug({}, [1, 2]);
console.log();
`
	_, sink, err := run(t, New(Config{}), src)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want := []string{
		"info 1",
		"warn true",
		"error  ",
		"[object Object] 1,2",
		"",
	}
	if diff := cmp.Diff(want, sink.Lines()); diff != "" {
		t.Errorf("lines (-want +got):\n%s", diff)
	}
}

func TestExecute_CompletionValue(t *testing.T) {
	tests := []struct {
		src         string
		wantValue   string
		wantDefined bool
	}{
		{"1+1", "2", true},
		{"'hi'", "hi", true},
		{"null", "null", true},
		{"let x;", "", false},
		{"var y = 3; y * 2", "6", true},
		{"undefined", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			res, _, err := run(t, New(Config{}), tt.src)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if res.Value != tt.wantValue || res.Defined != tt.wantDefined {
				t.Errorf("result = (%q, %v), want (%q, %v)", res.Value, res.Defined, tt.wantValue, tt.wantDefined)
			}
		})
	}
}

func TestExecute_ThrownValues(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantName string
		wantMsg  string
		wantLine int
	}{
		{"error object", "throw new Error('boom')", "Error", "boom", 1},
		{"type error", "\nnull.x", "TypeError", "Cannot read property 'x'", 2},
		{"reference error", "missing()", "ReferenceError", "missing is not defined", 1},
		{"thrown string", "throw 'plain'", "", "plain", 1},
		{"thrown number", "throw 42", "", "42", 1},
		{"thrown null", "throw null", "", "null", 1},
		{"thrown undefined", "throw undefined", "", "undefined", 1},
		{"thrown object", "throw {toString() { return 'custom' }}", "", "custom", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, New(Config{}), tt.src)
			var se *runtime.ScriptError
			if !errors.As(err, &se) {
				t.Fatalf("Execute() error = %v, want *runtime.ScriptError", err)
			}
			if !errors.Is(err, runtime.ErrScript) {
				t.Errorf("errors.Is(err, ErrScript) = false")
			}
			if se.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", se.Name, tt.wantName)
			}
			if !strings.HasPrefix(se.Message, tt.wantMsg) {
				t.Errorf("Message = %q, want prefix %q", se.Message, tt.wantMsg)
			}
			if se.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", se.Line, tt.wantLine)
			}
		})
	}
}

func TestExecute_SyntaxError(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantMsg  string
		wantLine int
	}{
		{"single error", "let = ;", "Unexpected token ;", 1},
		{"second line", "var a = 1;\nvar b = ;", "Unexpected token ; (and 1 more errors)", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, New(Config{}), tt.src)
			var se *runtime.ScriptError
			if !errors.As(err, &se) {
				t.Fatalf("Execute() error = %v, want *runtime.ScriptError", err)
			}
			if se.Name != "SyntaxError" {
				t.Errorf("Name = %q, want SyntaxError", se.Name)
			}
			if se.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", se.Message, tt.wantMsg)
			}
			if se.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", se.Line, tt.wantLine)
			}
		})
	}
}

func TestExecute_ConversionFaults(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantName string
		wantMsg  string
	}{
		{"null prototype completion", "Object.create(null)", "TypeError", "Cannot convert object to primitive value"},
		{"throwing toString completion", "({toString() { throw new Error('ts') }})", "Error", "ts"},
		{"null prototype thrown", "throw Object.create(null)", "TypeError", "Cannot convert object to primitive value"},
		{"thrown toString throws", "throw {toString() { throw 1 }}", "", "1"},
		{"nested toString throws", "throw {toString() { throw {toString() { throw 2 }} }}", "", "2"},
		{"rethrowing itself", "var o = {toString() { throw o }}; throw o", "TypeError", "Cannot convert object to primitive value"},
		{"recursive toString", "({toString() { return String(this) }})", "RangeError", "Maximum call stack size exceeded"},
		{"error message getter throws", "var e = new Error('x'); Object.defineProperty(e, 'message', {get() { throw new RangeError('getter') }}); throw e", "RangeError", "getter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, _, err := run(t, New(Config{MaxCallStackSize: 200}), tt.src)
			var se *runtime.ScriptError
			if !errors.As(err, &se) {
				t.Fatalf("Execute() error = %v, want *runtime.ScriptError", err)
			}
			if se.Name != tt.wantName || se.Message != tt.wantMsg {
				t.Errorf("fault = (%q, %q), want (%q, %q)", se.Name, se.Message, tt.wantName, tt.wantMsg)
			}
			if res.Defined {
				t.Errorf("Defined = true for a failed conversion")
			}
		})
	}
}

func TestExecute_ConversionTimeout(t *testing.T) {
	_, _, err := run(t, New(Config{}), "({toString() { for (;;) {} }})", func(r *runtime.ExecuteRequest) {
		r.Timeout = 50 * time.Millisecond
	})
	if !errors.Is(err, runtime.ErrTimeout) {
		t.Fatalf("Execute() error = %v, want %v", err, runtime.ErrTimeout)
	}
}

func TestExecute_ConsoleUnconvertibleArgument(t *testing.T) {
	_, _, err := run(t, New(Config{}), "console.log(Object.create(null))")
	var se *runtime.ScriptError
	if !errors.As(err, &se) {
		t.Fatalf("Execute() error = %v, want *runtime.ScriptError", err)
	}
	if se.Name != "TypeError" || se.Message != "Cannot convert object to primitive value" {
		t.Errorf("fault = (%q, %q), want TypeError: Cannot convert object to primitive value", se.Name, se.Message)
	}

	_, sink, err := run(t, New(Config{}), `
try { console.log(Object.create(null)) } catch (e) { console.log(e.name + ": " + e.message) }
try { console.log({toString() { throw new Error("inner") }}) } catch (e) { console.log(e.message) }
`)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want := []string{"TypeError: Cannot convert object to primitive value", "inner"}
	if diff := cmp.Diff(want, sink.Lines()); diff != "" {
		t.Errorf("lines (-want +got):\n%s", diff)
	}
}

func TestExecute_CaughtErrorDoesNotFail(t *testing.T) {
	res, sink, err := run(t, New(Config{}), "try { throw new Error('x') } catch (e) { console.log(e.message) }; 'done'")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if diff := cmp.Diff([]string{"x"}, sink.Lines()); diff != "" {
		t.Errorf("lines (-want +got):\n%s", diff)
	}
	if res.Value != "done" {
		t.Errorf("Value = %q, want done", res.Value)
	}
}

func TestExecute_FreshGlobalsPerRun(t *testing.T) {
	b := New(Config{})
	if _, _, err := run(t, b, "var leaked = 1; globalThis.other = 2"); err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	res, _, err := run(t, b, "typeof leaked + ',' + typeof other")
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if res.Value != "undefined,undefined" {
		t.Errorf("Value = %q, want undefined,undefined", res.Value)
	}
}

func TestExecute_RecoversAfterFault(t *testing.T) {
	b := New(Config{})
	if _, _, err := run(t, b, "throw new Error('boom')"); err == nil {
		t.Fatal("expected error from throwing snippet")
	}
	_, sink, err := run(t, b, "console.log('ok')")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if diff := cmp.Diff([]string{"ok"}, sink.Lines()); diff != "" {
		t.Errorf("lines (-want +got):\n%s", diff)
	}
}

func TestExecute_Timeout(t *testing.T) {
	logger := &mockLogger{}
	b := New(Config{Logger: logger})
	start := time.Now()
	_, _, err := run(t, b, "while(true){}", func(r *runtime.ExecuteRequest) {
		r.Timeout = 50 * time.Millisecond
	})
	if !errors.Is(err, runtime.ErrTimeout) {
		t.Fatalf("Execute() error = %v, want %v", err, runtime.ErrTimeout)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("interrupt took %v", elapsed)
	}
	if len(logger.messages) == 0 || !strings.HasPrefix(logger.messages[0], "WARN") {
		t.Errorf("logger messages = %v, want a warning", logger.messages)
	}
}

func TestExecute_TimeoutCannotBeCaught(t *testing.T) {
	_, _, err := run(t, New(Config{}), "while(true){ try { for(;;){} } catch (e) {} }", func(r *runtime.ExecuteRequest) {
		r.Timeout = 50 * time.Millisecond
	})
	if !errors.Is(err, runtime.ErrTimeout) {
		t.Fatalf("Execute() error = %v, want %v", err, runtime.ErrTimeout)
	}
}

func TestExecute_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err := New(Config{}).Execute(ctx, runtime.ExecuteRequest{Code: "for(;;){}", Output: &testSink{}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Execute() error = %v, want context.Canceled", err)
	}
	if errors.Is(err, runtime.ErrTimeout) {
		t.Errorf("cancellation reported as timeout")
	}
}

func TestExecute_AlreadyExpired(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), -time.Second)
	defer cancel()
	_, err := New(Config{}).Execute(ctx, runtime.ExecuteRequest{Code: "1", Output: &testSink{}})
	if !errors.Is(err, runtime.ErrTimeout) {
		t.Fatalf("Execute() error = %v, want %v", err, runtime.ErrTimeout)
	}
}

func TestExecute_SinkRefusalStopsSnippet(t *testing.T) {
	sink := &testSink{max: 3}
	_, err := New(Config{}).Execute(context.Background(), runtime.ExecuteRequest{
		Code:   "for (let i = 0; ; i++) { try { console.log(i) } catch (e) {} }",
		Output: sink,
	})
	if !errors.Is(err, runtime.ErrResourceLimit) {
		t.Fatalf("Execute() error = %v, want %v", err, runtime.ErrResourceLimit)
	}
	if !errors.Is(err, errSinkFull) {
		t.Errorf("error should wrap the sink error, got %v", err)
	}
	if diff := cmp.Diff([]string{"0", "1", "2"}, sink.Lines()); diff != "" {
		t.Errorf("lines (-want +got):\n%s", diff)
	}
}

func TestExecute_CallStackLimit(t *testing.T) {
	_, _, err := run(t, New(Config{MaxCallStackSize: 100}), "function f(){ return f() } f()")
	var se *runtime.ScriptError
	if !errors.As(err, &se) {
		t.Fatalf("Execute() error = %v, want *runtime.ScriptError", err)
	}
	if se.Name != "RangeError" {
		t.Errorf("Name = %q, want RangeError", se.Name)
	}
}

func TestExecute_RequestCallStackLimitOverridesConfig(t *testing.T) {
	src := "function depth(n){ return n === 0 ? 0 : 1 + depth(n-1) } depth(500)"
	if _, _, err := run(t, New(Config{MaxCallStackSize: 100}), src); err == nil {
		t.Fatal("expected overflow with config limit 100")
	}
	res, _, err := run(t, New(Config{MaxCallStackSize: 100}), src, func(r *runtime.ExecuteRequest) {
		r.Limits.MaxCallStackSize = 1000
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Value != "500" {
		t.Errorf("Value = %q, want 500", res.Value)
	}
}

func TestExecute_Profiles(t *testing.T) {
	tests := []struct {
		profile runtime.SecurityProfile
		want    string
	}{
		{runtime.ProfileDev, "function,function"},
		{runtime.ProfileStandard, "function,function"},
		{runtime.ProfileHardened, "undefined,undefined"},
	}
	for _, tt := range tests {
		t.Run(string(tt.profile), func(t *testing.T) {
			res, _, err := run(t, New(Config{}), "typeof eval + ',' + typeof Function", func(r *runtime.ExecuteRequest) {
				r.Profile = tt.profile
			})
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if res.Value != tt.want {
				t.Errorf("Value = %q, want %q", res.Value, tt.want)
			}
			if got := res.Backend.Details["profile"]; got != string(tt.profile) {
				t.Errorf("Backend profile = %v, want %v", got, tt.profile)
			}
		})
	}
}

func TestExecute_ConcurrentRunsAreIsolated(t *testing.T) {
	b := New(Config{})
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := range 8 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sink := &testSink{}
			_, err := b.Execute(context.Background(), runtime.ExecuteRequest{
				Code:   fmt.Sprintf("var id = %d; console.log(id)", n),
				Output: sink,
			})
			if err != nil {
				errs <- err
				return
			}
			if got := sink.Lines(); len(got) != 1 || got[0] != fmt.Sprint(n) {
				errs <- fmt.Errorf("run %d lines = %v", n, got)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
