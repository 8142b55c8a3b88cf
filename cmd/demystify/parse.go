package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"demystify-mtg/demystify/pkg/cli"
	"demystify-mtg/demystify/pkg/config"
	"demystify-mtg/demystify/pkg/mtg"
)

var parseFlags struct {
	format    string
	strict    bool
	maxTokens int
	names     []string
}

var parseCmd = &cobra.Command{
	Use:   "parse [clause]",
	Short: "Parse one trigger clause",
	Long: `Parse one trigger clause and print its syntax tree.

The clause is taken from the arguments, joined with spaces, or read from
stdin when no arguments are given. "~" and "it" refer to the card itself;
--name adds names that do the same.

Syntax errors are printed with the failing line and a caret under the first
token that did not match, and exit with status 2.

Examples:
  # S-expression output
  demystify parse "~ dies"

  # Name the card instead of using ~
  demystify parse --name "Wall of Omens" "Wall of Omens enters the battlefield"

  # JSON output
  echo "another creature phases out" | demystify parse --format json`,
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseFlags.format, "format", "o", "text", "output format: text, json, yaml")
	parseCmd.Flags().BoolVar(&parseFlags.strict, "strict", false, "reject trailing punctuation")
	parseCmd.Flags().IntVar(&parseFlags.maxTokens, "max-tokens", 0, "maximum tokens per clause (0 uses the configured limit)")
	parseCmd.Flags().StringSliceVarP(&parseFlags.names, "name", "n", nil, "names that refer to the card itself")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(parseFlags.format)
	if err != nil {
		return err
	}
	if format == cli.FormatTable || format == cli.FormatCSV {
		return cli.NewConfigError("format", fmt.Sprintf("%s output is not supported for a single clause", format))
	}

	text := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return cli.NewCommandError("parse", fmt.Errorf("failed to read stdin: %w", err))
		}
		text = string(data)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return cli.NewCommandError("parse", fmt.Errorf("no clause given"))
	}

	p := newParser(config.GetConfig(), parseFlags.maxTokens, parseFlags.strict)
	tree, err := mtg.Parse(p, text, parseFlags.names...)
	if err != nil {
		logger.Debug("clause rejected", "clause", text, "error", err)
		return err
	}

	logger.Debug("clause parsed", "branch", mtg.Branch(tree), "form", mtg.Form(tree))
	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), tree)
}
