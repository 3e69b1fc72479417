package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/codelab/analysis"
	"github.com/jonwraymond/codelab/catalog"
	"github.com/jonwraymond/codelab/exec"
	"github.com/jonwraymond/codelab/lint"
)

// Defaults for the advertised implementation.
const (
	DefaultName    = "codelab"
	DefaultVersion = "v0.1.0"
)

// ErrNoExec is returned by New when no facade is configured.
var ErrNoExec = errors.New("mcpserver: exec facade is required")

// Logger is the interface the server logs tool calls through.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config configures a Server.
type Config struct {
	// Exec serves every tool call. Required.
	Exec *exec.Exec

	// Name and Version identify the server to clients.
	// Defaults: DefaultName, DefaultVersion.
	Name    string
	Version string

	// Logger is optional.
	Logger Logger
}

// SourceInput is the input of the lint and analyze tools.
type SourceInput struct {
	Source string `json:"source"`
}

// RunInput is the input of the run tool.
type RunInput struct {
	Source    string `json:"source"`
	Language  string `json:"language,omitempty"`
	TimeoutMs int    `json:"timeoutMs,omitempty"`
}

// LintOutput is the structured output of the lint tool.
type LintOutput struct {
	Diagnostics []lint.Diagnostic `json:"diagnostics"`
}

// AnalyzeOutput is the structured output of the analyze tool.
type AnalyzeOutput struct {
	Report analysis.Report `json:"report"`
	Score  int             `json:"score"`
}

// RunOutput is the structured output of the run tool.
type RunOutput struct {
	Kind        string            `json:"kind"`
	Text        string            `json:"text"`
	Lines       []string          `json:"lines,omitempty"`
	Value       string            `json:"value,omitempty"`
	Fault       string            `json:"fault,omitempty"`
	Language    string            `json:"language,omitempty"`
	DurationMs  int64             `json:"durationMs"`
	Diagnostics []lint.Diagnostic `json:"diagnostics,omitempty"`
}

// Server is an MCP server backed by an exec facade.
type Server struct {
	ex     *exec.Exec
	srv    *mcp.Server
	logger Logger
}

// New creates a server and registers the catalog's enabled tools.
func New(cfg Config) (*Server, error) {
	if cfg.Exec == nil {
		return nil, ErrNoExec
	}
	if cfg.Name == "" {
		cfg.Name = DefaultName
	}
	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}

	s := &Server{
		ex:     cfg.Exec,
		srv:    mcp.NewServer(&mcp.Implementation{Name: cfg.Name, Version: cfg.Version}, nil),
		logger: cfg.Logger,
	}

	for _, def := range cfg.Exec.Catalog().Definitions() {
		tool := def.Tool
		if !cfg.Exec.Toolbox().Enabled(tool.Name) {
			continue
		}
		switch tool.Name {
		case catalog.ToolLint:
			mcp.AddTool(s.srv, &tool, s.lint)
		case catalog.ToolAnalyze:
			mcp.AddTool(s.srv, &tool, s.analyze)
		case catalog.ToolRun:
			mcp.AddTool(s.srv, &tool, s.run)
		default:
			return nil, fmt.Errorf("mcpserver: no handler for tool %q", tool.Name)
		}
	}
	return s, nil
}

// MCP returns the underlying SDK server.
func (s *Server) MCP() *mcp.Server {
	return s.srv
}

// Run serves a single session over t until the client disconnects or ctx is
// done.
func (s *Server) Run(ctx context.Context, t mcp.Transport) error {
	return s.srv.Run(ctx, t)
}

// RunStdio serves over stdin and stdout.
func (s *Server) RunStdio(ctx context.Context) error {
	return s.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) lint(_ context.Context, _ *mcp.CallToolRequest, in SourceInput) (*mcp.CallToolResult, LintOutput, error) {
	diags := s.ex.Lint(in.Source)
	if diags == nil {
		diags = []lint.Diagnostic{}
	}
	return nil, LintOutput{Diagnostics: diags}, nil
}

func (s *Server) analyze(_ context.Context, _ *mcp.CallToolRequest, in SourceInput) (*mcp.CallToolResult, AnalyzeOutput, error) {
	report := s.ex.Analyze(in.Source)
	return nil, AnalyzeOutput{Report: report, Score: report.Score()}, nil
}

func (s *Server) run(ctx context.Context, _ *mcp.CallToolRequest, in RunInput) (*mcp.CallToolResult, RunOutput, error) {
	if in.TimeoutMs < 0 {
		return nil, RunOutput{}, fmt.Errorf("timeoutMs must not be negative, got %d", in.TimeoutMs)
	}

	res, err := s.ex.Run(ctx, exec.CodeParams{
		Language: in.Language,
		Code:     in.Source,
		Timeout:  time.Duration(in.TimeoutMs) * time.Millisecond,
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("run tool failed", "language", in.Language, "error", err)
	}

	out := RunOutput{
		Kind:        string(res.Outcome.Kind),
		Text:        res.Text(),
		Lines:       res.Outcome.Lines,
		Value:       res.Outcome.Value,
		Fault:       res.Outcome.Fault,
		Language:    res.Outcome.Language,
		DurationMs:  res.Outcome.DurationMs,
		Diagnostics: res.Diagnostics,
	}
	if !res.Outcome.Failed() {
		return nil, out, nil
	}
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: out.Text}},
	}, out, nil
}
