package golang

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/jonwraymond/codelab/runtime"
)

// DefaultAllowedPackages are the standard packages snippets may import under
// the standard and hardened profiles.
var DefaultAllowedPackages = []string{
	"bytes",
	"encoding/base64",
	"encoding/json",
	"errors",
	"fmt",
	"math",
	"path",
	"regexp",
	"sort",
	"strconv",
	"strings",
	"time",
	"unicode",
	"unicode/utf8",
}

// parseImports extracts the import paths declared by a snippet. Both single
// imports and import blocks are recognized, with or without an alias.
func parseImports(code string) []string {
	var imports []string
	inBlock := false
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "import ("):
			inBlock = true
			if rest := strings.TrimPrefix(trimmed, "import ("); strings.Contains(rest, ")") {
				inBlock = false
				for _, spec := range strings.Split(strings.TrimSuffix(rest, ")"), ";") {
					if pkg := importPath(spec); pkg != "" {
						imports = append(imports, pkg)
					}
				}
			}
		case inBlock && strings.HasPrefix(trimmed, ")"):
			inBlock = false
		case inBlock:
			if pkg := importPath(trimmed); pkg != "" {
				imports = append(imports, pkg)
			}
		case strings.HasPrefix(trimmed, "import "):
			if pkg := importPath(strings.TrimPrefix(trimmed, "import ")); pkg != "" {
				imports = append(imports, pkg)
			}
		}
	}
	return imports
}

// importPath returns the quoted path of one import spec ("fmt", f "fmt").
func importPath(spec string) string {
	if i := strings.Index(spec, "//"); i >= 0 {
		spec = spec[:i]
	}
	start := strings.IndexByte(spec, '"')
	end := strings.LastIndexByte(spec, '"')
	if start < 0 || end <= start {
		return ""
	}
	return spec[start+1 : end]
}

// splitSnippet separates import declarations from statements. Both halves
// keep the snippet's line count so interpreter positions stay accurate.
func splitSnippet(code string) (decls, body string) {
	lines := strings.Split(code, "\n")
	declLines := make([]string, len(lines))
	bodyLines := make([]string, len(lines))
	inBlock := false
	for n, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "import ("):
			inBlock = !strings.Contains(trimmed, ")")
			declLines[n] = line
		case inBlock:
			if strings.HasPrefix(trimmed, ")") {
				inBlock = false
			}
			declLines[n] = line
		case strings.HasPrefix(trimmed, "import "):
			declLines[n] = line
		default:
			bodyLines[n] = line
		}
	}
	return strings.Join(declLines, "\n"), strings.Join(bodyLines, "\n")
}

// checkImports rejects imports outside allowed.
func checkImports(code string, allowed map[string]bool) error {
	var forbidden []string
	for _, pkg := range parseImports(code) {
		if !allowed[pkg] {
			forbidden = append(forbidden, pkg)
		}
	}
	if len(forbidden) > 0 {
		return fmt.Errorf("%w: forbidden imports %v (allowed: %v)",
			runtime.ErrSandboxViolation, forbidden, slices.Sorted(maps.Keys(allowed)))
	}
	return nil
}

// checkGoroutines rejects go statements, which would outlive an interrupt.
func checkGoroutines(code string) error {
	for n, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "go ") || strings.HasPrefix(trimmed, "go\t") {
			return fmt.Errorf("%w: goroutines are not allowed (line %d)", runtime.ErrSandboxViolation, n+1)
		}
	}
	return nil
}

// symbolsFor returns the interpreter exports for the allowed packages.
// A nil allow-list yields the full standard library.
func symbolsFor(allowed map[string]bool) interp.Exports {
	if allowed == nil {
		return stdlib.Symbols
	}
	exports := make(interp.Exports)
	for key, symbols := range stdlib.Symbols {
		idx := strings.LastIndexByte(key, '/')
		if idx < 0 {
			continue
		}
		if allowed[key[:idx]] {
			exports[key] = symbols
		}
	}
	return exports
}
