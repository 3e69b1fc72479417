package code

import (
	"context"
	"sync"
	"testing"
)

// mockEngine implements Engine for testing.
type mockEngine struct {
	mu sync.Mutex

	// Configurable behavior
	lines      []string
	completion Completion
	err        error
	executeFn  func(ctx context.Context, params ExecuteParams, console Console) (Completion, error)

	// Call tracking
	executeCalls []executeCall
}

type executeCall struct {
	params ExecuteParams
}

func (m *mockEngine) Execute(ctx context.Context, params ExecuteParams, console Console) (Completion, error) {
	m.mu.Lock()
	m.executeCalls = append(m.executeCalls, executeCall{params: params})
	fn := m.executeFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, params, console)
	}
	for _, line := range m.lines {
		if err := console.Log(line); err != nil {
			return Completion{}, err
		}
	}
	return m.completion, m.err
}

func (m *mockEngine) calls() []executeCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]executeCall(nil), m.executeCalls...)
}

// recordingLogger captures log lines.
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Logf(format string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, format)
}

func (l *recordingLogger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lines)
}

func newTestExecutor(t *testing.T, engine Engine, opts ...func(*Config)) *DefaultExecutor {
	t.Helper()
	cfg := Config{Engine: engine}
	for _, opt := range opts {
		opt(&cfg)
	}
	exec, err := NewDefaultExecutor(cfg)
	if err != nil {
		t.Fatalf("NewDefaultExecutor() error = %v", err)
	}
	return exec
}
