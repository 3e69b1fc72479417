package catalog

import "github.com/modelcontextprotocol/go-sdk/mcp"

func sourceSchema(extra map[string]any) map[string]any {
	props := map[string]any{
		"source": map[string]any{
			"type":        "string",
			"description": "Snippet source text",
		},
	}
	for k, v := range extra {
		props[k] = v
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   []string{"source"},
	}
}

// Definitions returns the playground tool definitions. languages, when not
// empty, is advertised as the run tool's language enum.
func Definitions(languages []string) []Definition {
	language := map[string]any{
		"type":        "string",
		"description": "Snippet language; defaults to javascript",
	}
	if len(languages) > 0 {
		language["enum"] = languages
	}

	return []Definition{
		{
			Tool: mcp.Tool{
				Name:        ToolLint,
				Description: "Check a code snippet for common typos and missing parentheses",
				InputSchema: sourceSchema(nil),
			},
			Tags:    []string{"lint", "diagnostics", "typo", "editor"},
			Summary: "Heuristic linter returning advisory diagnostics",
			Notes: "Reports L001 for consol.log, L002 for functio, and L003 for an if " +
				"line with neither parentheses nor a brace. Diagnostics never block a run.",
		},
		{
			Tool: mcp.Tool{
				Name:        ToolAnalyze,
				Description: "Measure a code snippet and suggest improvements",
				InputSchema: sourceSchema(nil),
			},
			Tags:    []string{"analyze", "complexity", "statistics", "suggestions"},
			Summary: "Line, character and word counts with a complexity score",
			Notes: "Complexity is min(100, lines*2 + words*0.5); below 30 is simple, " +
				"below 70 moderate, otherwise complex.",
		},
		{
			Tool: mcp.Tool{
				Name:        ToolRun,
				Description: "Execute a code snippet in a sandbox and return its console output or value",
				InputSchema: sourceSchema(map[string]any{
					"language": language,
					"timeoutMs": map[string]any{
						"type":        "integer",
						"description": "Execution timeout in milliseconds",
					},
				}),
			},
			Tags:    []string{"run", "execute", "evaluate", "sandbox", "console"},
			Summary: "Sandboxed snippet execution",
			Notes: "Console output wins over the completion value. A snippet that " +
				"throws reports only the error. Runs that exceed the timeout report " +
				"a timeout fault.",
		},
	}
}
