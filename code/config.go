package code

import (
	"fmt"
	"strings"
	"time"
)

// DefaultLanguage is used when neither the params nor the config name one.
const DefaultLanguage = "javascript"

// Config holds the configuration for a code executor.
type Config struct {
	// Engine is the pluggable code execution engine.
	// Required.
	Engine Engine

	// DefaultTimeout is the default execution timeout when not specified
	// in ExecuteParams. If zero, no default timeout is applied.
	DefaultTimeout time.Duration

	// DefaultLanguage is the default language when not specified in
	// ExecuteParams. Defaults to "javascript" if empty.
	DefaultLanguage string

	// MaxOutputLines limits the number of console lines per execution.
	// Zero means unlimited.
	MaxOutputLines int

	// Logger is an optional logger for observability.
	Logger Logger
}

// Validate checks that all required fields are set.
// Returns ErrConfiguration if any required field is missing or invalid.
func (c *Config) Validate() error {
	var problems []string

	if c.Engine == nil {
		problems = append(problems, "missing required fields: Engine")
	}
	if c.DefaultTimeout < 0 {
		problems = append(problems, "DefaultTimeout must not be negative")
	}
	if c.MaxOutputLines < 0 {
		problems = append(problems, "MaxOutputLines must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrConfiguration, strings.Join(problems, "; "))
	}
	return nil
}

// applyDefaults sets default values for optional fields.
func (c *Config) applyDefaults() {
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = DefaultLanguage
	}
}
