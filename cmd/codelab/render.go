package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/jonwraymond/codelab/analysis"
	"github.com/jonwraymond/codelab/code"
	"github.com/jonwraymond/codelab/lint"
	"github.com/jonwraymond/tooldiscovery/tooldoc"
)

var (
	warnColor    = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	dimColor     = color.New(color.Faint)
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderDiagnostics(w io.Writer, diags []lint.Diagnostic) {
	if len(diags) == 0 {
		successColor.Fprintln(w, "No issues found")
		return
	}
	for _, d := range diags {
		c := infoColor
		if d.Severity == lint.SeverityWarning {
			c = warnColor
		}
		fmt.Fprintf(w, "%s %s", c.Sprint(d.Code), d.Message)
		if d.Fix != nil {
			dimColor.Fprintf(w, " (replace %q with %q)", d.Fix.Find, d.Fix.Replace)
		}
		fmt.Fprintln(w)
	}
}

func levelColor(l analysis.Level) *color.Color {
	switch l {
	case analysis.LevelSuccess:
		return successColor
	case analysis.LevelWarning:
		return warnColor
	case analysis.LevelError:
		return errorColor
	}
	return infoColor
}

func renderReport(w io.Writer, r analysis.Report) {
	fmt.Fprintf(w, "Lines: %d  Characters: %d  Words: %d\n",
		r.Stats.Lines, r.Stats.Characters, r.Stats.Words)

	c := successColor
	switch r.Band {
	case analysis.BandModerate:
		c = warnColor
	case analysis.BandComplex:
		c = errorColor
	}
	fmt.Fprintf(w, "Complexity: %s/100 %s\n", c.Sprint(r.Score()), r.Band.Message())

	for _, s := range r.Suggestions {
		fmt.Fprintf(w, "  %s %s\n", levelColor(s.Level).Sprint(s.Title()+":"), s.Message)
	}
}

func renderResult(w io.Writer, res code.ExecuteResult) {
	switch res.Kind {
	case code.KindFault:
		errorColor.Fprintln(w, res.Text())
	case code.KindNoOutput:
		successColor.Fprintln(w, res.Text())
	default:
		fmt.Fprintln(w, res.Text())
	}
}

func renderDoc(w io.Writer, doc tooldoc.ToolDoc) {
	if doc.Tool != nil {
		fmt.Fprintf(w, "%s\n", infoColor.Sprint(doc.Tool.Name))
		if doc.Tool.Description != "" {
			fmt.Fprintln(w, doc.Tool.Description)
		}
	}
	if doc.Summary != "" {
		fmt.Fprintf(w, "Summary: %s\n", doc.Summary)
	}
	if doc.Notes != "" {
		fmt.Fprintf(w, "Notes: %s\n", doc.Notes)
	}
}
