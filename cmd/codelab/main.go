// Command codelab lints, analyzes and runs code snippets, and serves the
// same operations over MCP.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			color.New(color.FgRed).Fprintln(os.Stderr, "codelab:", err)
		}
		os.Exit(1)
	}
}

// version is overridden at build time via -ldflags.
var version = "0.1.0-dev"

func versionString() string {
	return fmt.Sprintf("%s (go snippets beta)", version)
}
