// Package shared provides common utilities for backend implementations.
package shared

import (
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/jonwraymond/codelab/runtime"
)

// JoinArgs joins console arguments with a single space.
func JoinArgs(args []string) string {
	return strings.Join(args, " ")
}

// LineWriter adapts an OutputSink to io.Writer for interpreters that write
// console output to a stream.
//
// Behavior:
//   - Each complete "\n"-terminated line is forwarded to the sink as one entry
//   - A trailing "\r" is dropped from every line
//   - Partial lines are buffered until the next newline or Flush
//   - Once the sink refuses a line, every further write fails with that error
//     and OnRefuse (if set) runs once
type LineWriter struct {
	Sink runtime.OutputSink

	// OnRefuse is called once when the sink first returns an error.
	OnRefuse func(err error)

	mu      sync.Mutex
	pending strings.Builder
	err     error
}

// NewLineWriter creates a LineWriter writing to sink.
func NewLineWriter(sink runtime.OutputSink, onRefuse func(error)) *LineWriter {
	return &LineWriter{Sink: sink, OnRefuse: onRefuse}
}

// Write implements io.Writer.
func (w *LineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.err != nil {
		return 0, w.err
	}

	w.pending.Write(p)
	buffered := w.pending.String()
	idx := strings.LastIndexByte(buffered, '\n')
	if idx < 0 {
		return len(p), nil
	}

	complete, rest := buffered[:idx], buffered[idx+1:]
	w.pending.Reset()
	w.pending.WriteString(rest)

	for _, line := range strings.Split(complete, "\n") {
		if err := w.emit(line); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// Flush forwards any buffered partial line.
func (w *LineWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.err != nil {
		return w.err
	}
	if w.pending.Len() == 0 {
		return nil
	}
	line := w.pending.String()
	w.pending.Reset()
	return w.emit(line)
}

// Err returns the sink error that stopped the writer, if any.
func (w *LineWriter) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

func (w *LineWriter) emit(line string) error {
	if err := w.Sink.Log(strings.TrimSuffix(line, "\r")); err != nil {
		w.err = err
		if w.OnRefuse != nil {
			w.OnRefuse(err)
		}
		return err
	}
	return nil
}

var positionPattern = regexp.MustCompile(`(?:^|[\s(])(?:[^\s:()]*:)?(?:\s*Line\s+)?(\d+):(\d+):?\s*`)

// SplitPosition extracts a "file:line:col:", "file: Line line:col" or
// "line:col:" location from an interpreter error message.
//
// Returns:
//   - line, col: the first location found, or zeros
//   - msg: the message with that location removed
func SplitPosition(text string) (line, col int, msg string) {
	loc := positionPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return 0, 0, strings.TrimSpace(text)
	}
	line, _ = strconv.Atoi(text[loc[2]:loc[3]])
	col, _ = strconv.Atoi(text[loc[4]:loc[5]])
	msg = strings.TrimSpace(text[:loc[0]] + " " + text[loc[1]:])
	return line, col, msg
}
