// Package config loads the codelab command's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/codelab/exec"
	"github.com/jonwraymond/codelab/internal/logging"
	"github.com/jonwraymond/codelab/runtime"
	"github.com/jonwraymond/codelab/runtime/backend/golang"
	"github.com/jonwraymond/codelab/runtime/backend/javascript"
)

// Search modes.
const (
	SearchBM25    = "bm25"
	SearchLexical = "lexical"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all codelab configuration.
type Config struct {
	// Language is the default snippet language.
	Language string `yaml:"language"`

	// Timeout is the default run timeout, as a Go duration string.
	Timeout string `yaml:"timeout"`

	// Profile is the security profile: dev, standard or hardened.
	Profile string `yaml:"profile"`

	// MaxOutputLines caps console lines per run.
	MaxOutputLines int `yaml:"max_output_lines"`

	// MaxCallStackSize caps interpreter call depth. Zero keeps the backend
	// default.
	MaxCallStackSize int `yaml:"max_call_stack_size"`

	// Search selects the tool search ranking: bm25 or lexical.
	Search string `yaml:"search"`

	// DisabledTools names tools that "tools call" refuses.
	DisabledTools []string `yaml:"disabled_tools,omitempty"`

	Go GoConfig `yaml:"go"`

	Logging LoggingConfig `yaml:"logging"`
}

// GoConfig configures the Go snippet backend.
type GoConfig struct {
	// AllowedPackages replaces the default import allow-list when set.
	AllowedPackages []string `yaml:"allowed_packages,omitempty"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Language:       exec.DefaultLanguage,
		Timeout:        exec.DefaultTimeout.String(),
		Profile:        string(runtime.ProfileStandard),
		MaxOutputLines: exec.DefaultMaxOutputLines,
		Search:         SearchBM25,
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies CODELAB_* environment variables.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CODELAB_PROFILE"); v != "" {
		c.Profile = v
	}
	if v := os.Getenv("CODELAB_TIMEOUT"); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv("CODELAB_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var problems []string

	if _, err := c.TimeoutDuration(); err != nil {
		problems = append(problems, err.Error())
	}
	if !runtime.SecurityProfile(c.Profile).IsValid() {
		problems = append(problems, fmt.Sprintf("unknown profile %q", c.Profile))
	}
	if c.MaxOutputLines < 0 {
		problems = append(problems, "max_output_lines must not be negative")
	}
	if c.MaxCallStackSize < 0 {
		problems = append(problems, "max_call_stack_size must not be negative")
	}
	if c.Search != SearchBM25 && c.Search != SearchLexical {
		problems = append(problems, fmt.Sprintf("unknown search mode %q", c.Search))
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// TimeoutDuration parses Timeout. An empty value means the exec default.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return exec.DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return d, nil
}

// ExecOptions validates the configuration and converts it to facade options
// with both backends built from it.
func (c *Config) ExecOptions(logger exec.Logger) (exec.Options, error) {
	if err := c.Validate(); err != nil {
		return exec.Options{}, err
	}
	timeout, _ := c.TimeoutDuration()

	return exec.Options{
		Backends: []runtime.Backend{
			javascript.New(javascript.Config{
				MaxCallStackSize: c.MaxCallStackSize,
				Logger:           logger,
			}),
			golang.New(golang.Config{
				AllowedPackages: c.Go.AllowedPackages,
				Logger:          logger,
			}),
		},
		SecurityProfile:  runtime.SecurityProfile(c.Profile),
		DefaultLanguage:  c.Language,
		DefaultTimeout:   timeout,
		MaxOutputLines:   c.MaxOutputLines,
		MaxCallStackSize: c.MaxCallStackSize,
		DisabledTools:    c.DisabledTools,
		LexicalSearch:    c.Search == SearchLexical,
		Logger:           logger,
	}, nil
}
