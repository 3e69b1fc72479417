// Package analysis computes the superficial statistics and canned suggestions
// shown by the code analysis panel.
//
// None of this is static analysis. Counts are textual, the complexity score is
// a weighted sum of line and word counts, and suggestions are triggered by
// substring checks.
package analysis

import (
	"math"
	"strings"
	"unicode/utf8"
)

// MaxComplexity caps the complexity score.
const MaxComplexity = 100

// Stats holds textual counts for a source text.
type Stats struct {
	// Lines is the number of newline-separated lines. An empty source has one line.
	Lines int `json:"lines"`

	// Characters is the number of runes.
	Characters int `json:"characters"`

	// Words is the number of whitespace-separated fields.
	Words int `json:"words"`
}

// Band classifies a complexity score.
type Band string

const (
	BandSimple   Band = "simple"
	BandModerate Band = "moderate"
	BandComplex  Band = "complex"
)

// Message returns the panel text for the band.
func (b Band) Message() string {
	switch b {
	case BandSimple:
		return "Simple and clean code structure"
	case BandModerate:
		return "Moderate complexity - good balance"
	case BandComplex:
		return "Complex code - consider breaking into smaller functions"
	}
	return ""
}

// Report is the full analysis of one source text.
type Report struct {
	Stats       Stats        `json:"stats"`
	Complexity  float64      `json:"complexity"`
	Band        Band         `json:"band"`
	Suggestions []Suggestion `json:"suggestions"`
}

// Score returns the complexity rounded to the nearest integer, as displayed.
func (r Report) Score() int {
	return int(math.Round(r.Complexity))
}

// Count returns the textual counts for source.
func Count(source string) Stats {
	return Stats{
		Lines:      strings.Count(source, "\n") + 1,
		Characters: utf8.RuneCountInString(source),
		Words:      len(strings.Fields(source)),
	}
}

// Complexity returns min(100, lines*2 + words*0.5).
func Complexity(s Stats) float64 {
	return math.Min(MaxComplexity, float64(s.Lines)*2+float64(s.Words)*0.5)
}

// Classify returns the band for a complexity score.
func Classify(score float64) Band {
	switch {
	case score < 30:
		return BandSimple
	case score < 70:
		return BandModerate
	default:
		return BandComplex
	}
}

// Analyze computes the full report for source.
func Analyze(source string) Report {
	stats := Count(source)
	score := Complexity(stats)
	return Report{
		Stats:       stats,
		Complexity:  score,
		Band:        Classify(score),
		Suggestions: Suggest(source),
	}
}
