package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"demystify-mtg/demystify/pkg/cli"
	"demystify-mtg/demystify/pkg/config"
	"demystify-mtg/demystify/pkg/mtg"
	"demystify-mtg/demystify/pkg/mtg/parser"
	"demystify-mtg/demystify/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool

	// logger is built from the loaded configuration before every command.
	logger = logging.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "demystify",
	Short: "Demystify - trigger clause parser for Magic: The Gathering rules text",
	Long: `Demystify parses the trigger clauses of Magic: The Gathering abilities into
typed syntax trees.

Every clause starts with the objects it is about and continues with either
an event or a condition:
  - Events: entering or leaving a zone, dying, phasing in or out
  - Conditions: having a keyword ability, having counters

Clauses can be parsed one at a time or in bulk from a corpus of cards, with
results stored in SQLite and parse outcomes exported as Prometheus metrics.`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadRuntime,
}

// Execute runs the root command and exits with a code derived from the
// error: 2 for clauses that failed to parse, 1 for anything else.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var pf *cli.ParseFailure
		if !errors.As(err, &pf) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (defaults apply when empty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadRuntime loads the configuration, applies environment overrides and
// installs it as the global configuration, then builds the logger.
func loadRuntime(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("config", err.Error())
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	l, err := logging.New(logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
		Writer:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	config.SetConfig(cfg)
	logger = l
	logger.Debug("configuration loaded", "path", cfgFile, "command", cmd.Name())
	return nil
}

// newParser returns a parser configured from cfg. A positive maxTokens
// overrides the configured limit; strict only ever turns strict mode on.
func newParser(cfg *config.Config, maxTokens int, strict bool) *parser.Parser {
	limit := cfg.Parser.TokenLimit()
	if maxTokens > 0 {
		limit = maxTokens
	}
	return mtg.NewParser().
		WithMaxTokens(limit).
		WithStrictMode(cfg.Parser.Strict || strict)
}
