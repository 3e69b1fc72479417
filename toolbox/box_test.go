package toolbox

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type mockHandler struct {
	mu    sync.Mutex
	calls []map[string]any
	out   any
	err   error
}

func (m *mockHandler) handle(_ context.Context, args map[string]any) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, args)
	return m.out, m.err
}

func TestBox_Register(t *testing.T) {
	box := New("test")
	h := &mockHandler{}

	if err := box.Register("echo", h.handle); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := box.Register("echo", h.handle); !errors.Is(err, ErrToolExists) {
		t.Errorf("Register() duplicate error = %v, want ErrToolExists", err)
	}
	if err := box.Register("", h.handle); err == nil {
		t.Error("Register() with empty name should fail")
	}
	if err := box.Register("nil", nil); err == nil {
		t.Error("Register() with nil handler should fail")
	}
}

func TestBox_Names(t *testing.T) {
	box := New("test")
	h := &mockHandler{}
	for _, name := range []string{"run", "analyze", "lint"} {
		_ = box.Register(name, h.handle)
	}
	if diff := cmp.Diff([]string{"analyze", "lint", "run"}, box.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if box.Namespace() != "test" {
		t.Errorf("Namespace() = %q, want test", box.Namespace())
	}
}

func TestBox_Call(t *testing.T) {
	box := New("test")
	h := &mockHandler{out: "handled"}
	_ = box.Register("echo", h.handle)

	for _, id := range []string{"test:echo", "echo"} {
		out, err := box.Call(context.Background(), id, map[string]any{"message": "hi"})
		if err != nil {
			t.Fatalf("Call(%q) error = %v", id, err)
		}
		if out != "handled" {
			t.Errorf("Call(%q) = %v, want handled", id, out)
		}
	}
	if len(h.calls) != 2 || h.calls[0]["message"] != "hi" {
		t.Errorf("calls = %+v, want two with message", h.calls)
	}
}

func TestBox_CallNilArgs(t *testing.T) {
	box := New("test")
	h := &mockHandler{}
	_ = box.Register("echo", h.handle)

	if _, err := box.Call(context.Background(), "test:echo", nil); err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if h.calls[0] == nil {
		t.Error("handler received nil args")
	}
}

func TestBox_CallErrors(t *testing.T) {
	box := New("test")
	h := &mockHandler{err: errors.New("handler failed")}
	_ = box.Register("echo", h.handle)
	_ = box.Register("off", h.handle)
	_ = box.SetEnabled("off", false)

	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		ctx  context.Context
		id   string
		want error
	}{
		{name: "unknown tool", ctx: context.Background(), id: "test:missing", want: ErrToolNotFound},
		{name: "other namespace", ctx: context.Background(), id: "other:echo", want: ErrToolNotFound},
		{name: "disabled", ctx: context.Background(), id: "test:off", want: ErrToolDisabled},
		{name: "canceled", ctx: canceled, id: "test:echo", want: context.Canceled},
		{name: "empty id", ctx: context.Background(), id: "", want: ErrInvalidToolID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := box.Call(tt.ctx, tt.id, nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("Call() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := box.Call(context.Background(), "test:echo", nil); err == nil || err.Error() != "handler failed" {
		t.Errorf("Call() error = %v, want handler error", err)
	}
}

func TestBox_SetEnabled(t *testing.T) {
	box := New("test")
	h := &mockHandler{}
	_ = box.Register("echo", h.handle)

	if !box.Enabled("echo") {
		t.Error("new tool should be enabled")
	}
	if err := box.SetEnabled("echo", false); err != nil {
		t.Fatalf("SetEnabled() error = %v", err)
	}
	if box.Enabled("echo") {
		t.Error("Enabled() = true after disabling")
	}
	if err := box.SetEnabled("missing", false); !errors.Is(err, ErrToolNotFound) {
		t.Errorf("SetEnabled(missing) error = %v, want ErrToolNotFound", err)
	}
	if box.Enabled("missing") {
		t.Error("Enabled(missing) = true")
	}
}

func TestFormatToolID(t *testing.T) {
	if got := FormatToolID("codelab", "run"); got != "codelab:run" {
		t.Errorf("FormatToolID() = %q, want codelab:run", got)
	}
	if got := FormatToolID("", "run"); got != "run" {
		t.Errorf("FormatToolID() = %q, want run", got)
	}
}

func TestBox_Concurrent(t *testing.T) {
	box := New("test")
	h := &mockHandler{out: 1}
	_ = box.Register("echo", h.handle)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%5 == 0 {
				_ = box.SetEnabled("echo", true)
			}
			_, _ = box.Call(context.Background(), "test:echo", nil)
			_ = box.Names()
		}(i)
	}
	wg.Wait()
	if len(h.calls) != 20 {
		t.Errorf("calls = %d, want 20", len(h.calls))
	}
}
