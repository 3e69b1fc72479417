package lint

// Linter applies a fixed list of rules to source texts.
// A Linter is immutable and safe for concurrent use.
type Linter struct {
	rules []Rule
}

// New creates a Linter with the given rules. With no rules it uses DefaultRules.
func New(rules ...Rule) *Linter {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Linter{rules: append([]Rule(nil), rules...)}
}

// Lint runs every rule against source and accumulates their diagnostics.
// Rules never short-circuit one another. The result is nil for clean input.
func (l *Linter) Lint(source string) []Diagnostic {
	var out []Diagnostic
	for _, r := range l.rules {
		out = append(out, r.Check(source)...)
	}
	return out
}

// Rules returns a copy of the linter's rules.
func (l *Linter) Rules() []Rule {
	return append([]Rule(nil), l.rules...)
}

var defaultLinter = New()

// Lint runs the default rule set against source.
func Lint(source string) []Diagnostic {
	return defaultLinter.Lint(source)
}
