package exec

import (
	"context"
	"time"

	"github.com/jonwraymond/codelab/catalog"
	"github.com/jonwraymond/codelab/toolbox"
)

// newToolbox registers a handler for every catalog tool and applies
// Options.DisabledTools.
func (e *Exec) newToolbox() (*toolbox.Box, error) {
	box := toolbox.New(catalog.Namespace)
	handlers := map[string]toolbox.Handler{
		catalog.ToolLint:    e.lintTool,
		catalog.ToolAnalyze: e.analyzeTool,
		catalog.ToolRun:     e.runTool,
	}
	for _, def := range e.catalog.Definitions() {
		if err := box.Register(def.Tool.Name, handlers[def.Tool.Name]); err != nil {
			return nil, err
		}
	}
	for _, name := range e.opts.DisabledTools {
		if err := box.SetEnabled(name, false); err != nil {
			return nil, err
		}
	}
	return box, nil
}

// CallTool invokes a playground tool by ID with JSON-style arguments, as an
// MCP client or a generic tool runner would.
func (e *Exec) CallTool(ctx context.Context, toolID string, args map[string]any) (any, error) {
	return e.toolbox.Call(ctx, toolID, args)
}

// Toolbox returns the tool dispatcher.
func (e *Exec) Toolbox() *toolbox.Box {
	return e.toolbox
}

func (e *Exec) lintTool(_ context.Context, args map[string]any) (any, error) {
	src, err := toolbox.String(args, "source")
	if err != nil {
		return nil, err
	}
	return e.Lint(src), nil
}

func (e *Exec) analyzeTool(_ context.Context, args map[string]any) (any, error) {
	src, err := toolbox.String(args, "source")
	if err != nil {
		return nil, err
	}
	return e.Analyze(src), nil
}

func (e *Exec) runTool(ctx context.Context, args map[string]any) (any, error) {
	src, err := toolbox.String(args, "source")
	if err != nil {
		return nil, err
	}
	lang, err := toolbox.OptionalString(args, "language")
	if err != nil {
		return nil, err
	}
	ms, err := toolbox.OptionalInt(args, "timeoutMs")
	if err != nil {
		return nil, err
	}
	if ms < 0 {
		return nil, ErrInvalidLimit
	}

	res, err := e.Run(ctx, CodeParams{
		Language: lang,
		Code:     src,
		Timeout:  time.Duration(ms) * time.Millisecond,
	})
	return res.Outcome, err
}
