package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jonwraymond/codelab/exec"
	"github.com/jonwraymond/codelab/internal/config"
	"github.com/jonwraymond/codelab/internal/logging"
)

// errReported marks failures whose output was already written.
var errReported = errors.New("reported")

// app holds the state shared by every subcommand.
type app struct {
	configPath string
	verbose    bool
	colorMode  string
	profile    string
	language   string
	timeout    time.Duration

	cfg    *config.Config
	logger *logging.Logger
	ex     *exec.Exec
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "codelab",
		Short: "Code playground: lint, analyze and run snippets",
		Long: `codelab is a small code playground.

It lints snippets for common typos, measures them for the analysis panel,
and runs JavaScript (and, in beta, Go) snippets in an embedded sandbox.
The same operations are available to MCP clients through "codelab serve".

Sources are read from a file argument or from stdin when it is piped.`,
		Version:           versionString(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "codelab.yaml", "path to the YAML config file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&a.colorMode, "color", "auto", "colorize output (auto|on|off)")
	flags.StringVar(&a.profile, "profile", "", "security profile (dev|standard|hardened)")
	flags.StringVarP(&a.language, "language", "l", "", "snippet language")
	flags.DurationVar(&a.timeout, "timeout", 0, "run timeout")

	root.AddCommand(
		newLintCmd(a),
		newAnalyzeCmd(a),
		newRunCmd(a),
		newToolsCmd(a),
		newServeCmd(a),
	)
	return root
}

// setup loads the config, applies flag overrides and builds the facade.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	switch a.colorMode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
	default:
		return fmt.Errorf("invalid --color %q (want auto, on or off)", a.colorMode)
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.profile != "" {
		cfg.Profile = a.profile
	}
	if a.language != "" {
		cfg.Language = a.language
	}
	if a.timeout != 0 {
		cfg.Timeout = a.timeout.String()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging.Level, a.verbose)
	if err != nil {
		return err
	}

	opts, err := cfg.ExecOptions(logger)
	if err != nil {
		return err
	}
	ex, err := exec.New(opts)
	if err != nil {
		return err
	}

	a.cfg, a.logger, a.ex = cfg, logger, ex
	logger.Debug("configured", "config", a.configPath, "profile", cfg.Profile, "language", cfg.Language)
	return nil
}
