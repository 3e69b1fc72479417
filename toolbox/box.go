package toolbox

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/jonwraymond/toolfoundation/model"
)

// Common errors for dispatch.
var (
	ErrToolNotFound  = errors.New("tool not found")
	ErrToolDisabled  = errors.New("tool disabled")
	ErrToolExists    = errors.New("tool already registered")
	ErrInvalidToolID = errors.New("invalid tool ID format")
)

// Handler is the function signature for tool handlers.
type Handler func(ctx context.Context, args map[string]any) (any, error)

type entry struct {
	handler Handler
	enabled bool
}

// Box is a namespace of tool handlers. It is safe for concurrent use.
type Box struct {
	namespace string

	mu    sync.RWMutex
	tools map[string]*entry
}

// New creates an empty box for namespace.
func New(namespace string) *Box {
	return &Box{
		namespace: namespace,
		tools:     make(map[string]*entry),
	}
}

// Namespace returns the box's namespace.
func (b *Box) Namespace() string {
	return b.namespace
}

// Register adds an enabled handler under name.
func (b *Box) Register(name string, h Handler) error {
	if name == "" {
		return fmt.Errorf("tool name is required")
	}
	if h == nil {
		return fmt.Errorf("tool %q: handler is nil", name)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.tools[name]; exists {
		return fmt.Errorf("%w: %s", ErrToolExists, name)
	}
	b.tools[name] = &entry{handler: h, enabled: true}
	return nil
}

// SetEnabled switches a registered tool on or off.
func (b *Box) SetEnabled(name string, enabled bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.tools[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	e.enabled = enabled
	return nil
}

// Enabled reports whether name is registered and enabled.
func (b *Box) Enabled(name string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	e, ok := b.tools[name]
	return ok && e.enabled
}

// Names returns registered tool names sorted for deterministic output.
func (b *Box) Names() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, 0, len(b.tools))
	for name := range b.tools {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Call resolves id and invokes its handler.
func (b *Box) Call(ctx context.Context, id string, args map[string]any) (any, error) {
	ns, name, err := ParseToolID(id)
	if err != nil {
		return nil, err
	}
	if ns != "" && ns != b.namespace {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, id)
	}

	b.mu.RLock()
	e, ok := b.tools[name]
	var (
		h       Handler
		enabled bool
	)
	if ok {
		h, enabled = e.handler, e.enabled
	}
	b.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, id)
	}
	if !enabled {
		return nil, fmt.Errorf("%w: %s", ErrToolDisabled, id)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if args == nil {
		args = map[string]any{}
	}
	return h(ctx, args)
}

// ParseToolID splits a tool ID into namespace and tool name. The namespace
// is empty for bare names.
func ParseToolID(id string) (namespace, name string, err error) {
	namespace, name, err = model.ParseToolID(id)
	if err != nil || name == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidToolID, id)
	}
	return namespace, name, nil
}

// FormatToolID builds a tool ID from namespace and tool name.
func FormatToolID(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + ":" + name
}
