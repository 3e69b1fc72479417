package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/codelab/exec"
	"github.com/jonwraymond/codelab/mcpserver"
	"github.com/jonwraymond/tooldiscovery/tooldoc"
)

func newLintCmd(a *app) *cobra.Command {
	var (
		asJSON bool
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "lint [file]",
		Short: "Check a snippet for common typos",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			diags := a.ex.Lint(src)
			if asJSON {
				if err := writeJSON(cmd.OutOrStdout(), diags); err != nil {
					return err
				}
			} else {
				renderDiagnostics(cmd.OutOrStdout(), diags)
			}
			if strict && len(diags) > 0 {
				return errReported
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print diagnostics as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when there are diagnostics")
	return cmd
}

func newAnalyzeCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Show size, complexity and suggestions for a snippet",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			report := a.ex.Analyze(src)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			renderReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func newRunCmd(a *app) *cobra.Command {
	var (
		asJSON   bool
		maxLines int
	)
	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Run a snippet and print its output",
		Long: `Runs a snippet in the embedded sandbox.

Console output is printed line by line. Without output the completion value
is printed, and without either "Code executed successfully!". A snippet that
throws prints only its error and exits non-zero.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			res, err := a.ex.Run(ctx, exec.CodeParams{
				Code:           src,
				MaxOutputLines: maxLines,
			})
			if err != nil {
				a.logger.Debug("run failed", "error", err)
			}

			if asJSON {
				if jerr := writeJSON(cmd.OutOrStdout(), res.Outcome); jerr != nil {
					return jerr
				}
			} else {
				renderDiagnostics(cmd.ErrOrStderr(), res.Diagnostics)
				renderResult(cmd.OutOrStdout(), res.Outcome)
			}
			if !res.OK() {
				return errReported
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	cmd.Flags().IntVar(&maxLines, "max-lines", 0, "lower the console line cap for this run")
	return cmd
}

func newToolsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Discover the playground's tools",
	}

	var limit int
	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Search tools by keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.ex.SearchTools(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tools found")
				return nil
			}
			for i, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s - %s\n", i+1, infoColor.Sprint(r.ID), r.ShortDescription)
			}
			return nil
		},
	}
	search.Flags().IntVar(&limit, "limit", 5, "maximum number of results")

	var full bool
	describe := &cobra.Command{
		Use:   "describe <id>",
		Short: "Show a tool's documentation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := tooldoc.DetailSummary
			if full {
				level = tooldoc.DetailFull
			}
			doc, err := a.ex.GetToolDoc(cmd.Context(), args[0], level)
			if err != nil {
				return err
			}
			renderDoc(cmd.OutOrStdout(), doc)
			return nil
		},
	}
	describe.Flags().BoolVar(&full, "full", false, "include notes and schema")

	var rawArgs string
	call := &cobra.Command{
		Use:   "call <id>",
		Short: "Call a tool with JSON arguments and print its JSON result",
		Example: `  codelab tools call codelab:run --args '{"source": "1+1"}'
  codelab tools call lint --args '{"source": "consol.log(1)"}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var toolArgs map[string]any
			if err := json.Unmarshal([]byte(rawArgs), &toolArgs); err != nil {
				return fmt.Errorf("invalid --args: %w", err)
			}
			out, err := a.ex.CallTool(cmd.Context(), args[0], toolArgs)
			if out != nil {
				if jerr := writeJSON(cmd.OutOrStdout(), out); jerr != nil {
					return jerr
				}
			}
			return err
		},
	}
	call.Flags().StringVar(&rawArgs, "args", "{}", "tool arguments as a JSON object")

	cmd.AddCommand(search, describe, call)
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve lint, analyze and run over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv, err := mcpserver.New(mcpserver.Config{
				Exec:    a.ex,
				Version: version,
				Logger:  a.logger.Named("mcp"),
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.logger.Info("serving MCP on stdio", "languages", a.ex.Languages())
			if err := srv.RunStdio(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
