package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"demystify-mtg/demystify/pkg/batch"
	"demystify-mtg/demystify/pkg/cli"
	"demystify-mtg/demystify/pkg/config"
	"demystify-mtg/demystify/pkg/store"
)

var resultsFlags struct {
	db       string
	run      string
	list     bool
	limit    int
	failures bool
	prune    time.Duration
	format   string
}

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Query stored batch runs",
	Long: `Query the batch runs stored by "demystify batch --store".

Without flags the latest run is shown with every clause and its tree.

Examples:
  # Latest run
  demystify results --db demystify.db

  # List recent runs
  demystify results --list --limit 10

  # Failures of a specific run as CSV
  demystify results --run 2f1c... --failures --format csv

  # Delete runs older than 30 days
  demystify results --prune 720h`,
	Args: cobra.NoArgs,
	RunE: runResults,
}

func init() {
	rootCmd.AddCommand(resultsCmd)

	resultsCmd.Flags().StringVar(&resultsFlags.db, "db", "", "SQLite database (defaults to storage.path)")
	resultsCmd.Flags().StringVar(&resultsFlags.run, "run", "", "run id (defaults to the latest run)")
	resultsCmd.Flags().BoolVar(&resultsFlags.list, "list", false, "list run summaries")
	resultsCmd.Flags().IntVar(&resultsFlags.limit, "limit", 20, "maximum runs to list")
	resultsCmd.Flags().BoolVar(&resultsFlags.failures, "failures", false, "show only failed clauses")
	resultsCmd.Flags().DurationVar(&resultsFlags.prune, "prune", 0, "delete runs older than this duration")
	resultsCmd.Flags().StringVarP(&resultsFlags.format, "format", "o", "table", "output format: table, csv, json, yaml")
}

func runResults(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(resultsFlags.format)
	if err != nil {
		return err
	}
	if format == cli.FormatText {
		format = cli.FormatTable
	}

	cfg := config.GetConfig()
	path := resultsFlags.db
	if path == "" {
		path = cfg.Storage.Path
	}
	if _, err := os.Stat(path); err != nil {
		return cli.NewCommandError("results", fmt.Errorf("no results database at %s: %w", path, err))
	}

	st, err := store.OpenWithConfig(store.Config{Path: path, BusyTimeout: cfg.Storage.BusyTimeout})
	if err != nil {
		return cli.NewCommandError("results", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	formatter := cli.NewFormatter(format)

	switch {
	case resultsFlags.prune > 0:
		n, err := st.DeleteBefore(ctx, time.Now().Add(-resultsFlags.prune))
		if err != nil {
			return cli.NewCommandError("results", err)
		}
		logger.Info("pruned runs", "deleted", n, "older_than", resultsFlags.prune)
		_, err = fmt.Fprintf(out, "deleted %d run(s)\n", n)
		return err

	case resultsFlags.list:
		sums, err := st.ListRuns(ctx, resultsFlags.limit)
		if err != nil {
			return cli.NewCommandError("results", err)
		}
		return formatter.FormatTo(out, batch.Summaries(sums))
	}

	var run *batch.Run
	if resultsFlags.run != "" {
		run, err = st.GetRun(ctx, resultsFlags.run)
	} else {
		run, err = st.LatestRun(ctx)
	}
	if errors.Is(err, store.ErrRunNotFound) {
		return cli.NewCommandError("results", fmt.Errorf("no stored run matches %q", resultsFlags.run))
	}
	if err != nil {
		return cli.NewCommandError("results", err)
	}

	if resultsFlags.failures {
		failures, err := st.Failures(ctx, run.Summary.RunID)
		if err != nil {
			return cli.NewCommandError("results", err)
		}
		run.Results = failures
	}
	return formatter.FormatTo(out, run)
}
