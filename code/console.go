package code

import (
	"fmt"
	"strings"
	"sync"
)

// Console is the output sink exposed to a snippet during one execution.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: Log returns ErrLimitExceeded once the line cap is reached; engines
//   should stop the snippet when that happens.
// - Ownership: args are read-only.
type Console interface {
	// Log appends one line: args joined by a single space.
	Log(args ...string) error
}

// consoleImpl collects lines for a single execution.
type consoleImpl struct {
	mu       sync.Mutex
	lines    []string
	maxLines int
	exceeded bool
}

// newConsole creates a Console with the given line cap. Zero means unlimited.
func newConsole(maxLines int) *consoleImpl {
	return &consoleImpl{maxLines: maxLines}
}

func (c *consoleImpl) Log(args ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.maxLines > 0 && len(c.lines) >= c.maxLines {
		c.exceeded = true
		return fmt.Errorf("%w: max output lines (%d) exceeded", ErrLimitExceeded, c.maxLines)
	}
	c.lines = append(c.lines, strings.Join(args, " "))
	return nil
}

// Lines returns a copy of the captured lines.
func (c *consoleImpl) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.lines...)
}

// Exceeded reports whether a Log call was rejected by the line cap.
func (c *consoleImpl) Exceeded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exceeded
}
