package analysis

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Level is the visual treatment of a suggestion.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Suggestion is one entry of the suggestions list.
type Suggestion struct {
	Kind    string `json:"type"`
	Message string `json:"message"`
	Level   Level  `json:"severity"`
}

// Title returns the kind capitalized for display ("best-practice" -> "Best-Practice").
// A Caser holds state, so each call gets its own.
func (s Suggestion) Title() string {
	return cases.Title(language.English).String(s.Kind)
}

var baseSuggestions = []Suggestion{
	{Kind: "improvement", Message: "Consider adding comments to explain complex logic", Level: LevelInfo},
	{Kind: "performance", Message: "Good use of built-in JavaScript methods", Level: LevelSuccess},
	{Kind: "style", Message: "Variable names are descriptive and clear", Level: LevelSuccess},
}

// Suggest returns the fixed suggestions followed by the content-triggered ones.
func Suggest(source string) []Suggestion {
	out := append([]Suggestion(nil), baseSuggestions...)
	if strings.Contains(source, "console.log") {
		out = append(out, Suggestion{
			Kind:    "debugging",
			Message: "Remember to remove console.log statements in production",
			Level:   LevelWarning,
		})
	}
	if strings.Contains(source, "function") {
		out = append(out, Suggestion{
			Kind:    "best-practice",
			Message: "Great! You're using functions to organize your code",
			Level:   LevelSuccess,
		})
	}
	return out
}
