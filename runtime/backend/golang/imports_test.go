package golang

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jonwraymond/codelab/runtime"
)

func TestParseImports(t *testing.T) {
	tests := []struct {
		name string
		code string
		want []string
	}{
		{"none", "x := 1", nil},
		{"single", `import "fmt"`, []string{"fmt"}},
		{"aliased", `import s "strings"`, []string{"strings"}},
		{"block", "import (\n\t\"fmt\"\n\tj \"encoding/json\" // codec\n)\n", []string{"fmt", "encoding/json"}},
		{"one line block", `import ("fmt"; "os")`, []string{"fmt", "os"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parseImports(tt.code)); diff != "" {
				t.Errorf("parseImports (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitSnippet(t *testing.T) {
	code := "import (\n\t\"fmt\"\n)\nfmt.Println(1)\nimport \"strings\"\n_ = strings.ToUpper"
	decls, body := splitSnippet(code)

	wantDecls := "import (\n\t\"fmt\"\n)\n\nimport \"strings\"\n"
	wantBody := "\n\n\nfmt.Println(1)\n\n_ = strings.ToUpper"
	if decls != wantDecls {
		t.Errorf("decls = %q, want %q", decls, wantDecls)
	}
	if body != wantBody {
		t.Errorf("body = %q, want %q", body, wantBody)
	}
}

func TestCheckImports(t *testing.T) {
	allowed := map[string]bool{"fmt": true, "strings": true}

	if err := checkImports("import \"fmt\"\nimport \"strings\"", allowed); err != nil {
		t.Errorf("allowed imports error = %v", err)
	}

	err := checkImports("import (\n\"fmt\"\n\"os/exec\"\n)", allowed)
	if !errors.Is(err, runtime.ErrSandboxViolation) {
		t.Fatalf("forbidden import error = %v, want %v", err, runtime.ErrSandboxViolation)
	}
}

func TestCheckGoroutines(t *testing.T) {
	if err := checkGoroutines("x := 1\ngoal := 2"); err != nil {
		t.Errorf("identifier starting with go rejected: %v", err)
	}
	err := checkGoroutines("x := 1\n\tgo func() {}()")
	if !errors.Is(err, runtime.ErrSandboxViolation) {
		t.Errorf("go statement error = %v, want %v", err, runtime.ErrSandboxViolation)
	}
}

func TestSymbolsFor(t *testing.T) {
	exports := symbolsFor(map[string]bool{"fmt": true, "encoding/json": true})

	for _, key := range []string{"fmt/fmt", "encoding/json/json"} {
		if _, ok := exports[key]; !ok {
			t.Errorf("exports missing %q", key)
		}
	}
	for _, key := range []string{"os/os", "os/exec/exec", "net/http/http"} {
		if _, ok := exports[key]; ok {
			t.Errorf("exports should not contain %q", key)
		}
	}
}

func TestReportsValue(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"1+1", true},
		{"x := 2\nx * 3", true},
		{"import \"strings\"\nstrings.ToUpper(\"a\")", true},
		{"import \"fmt\"\nfmt.Println(1)", false},
		{"x := 1", false},
		{"", false},
		{"func f() {}", false},
	}
	for _, tt := range tests {
		if got := reportsValue(tt.code); got != tt.want {
			t.Errorf("reportsValue(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
