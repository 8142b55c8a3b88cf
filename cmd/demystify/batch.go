package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"demystify-mtg/demystify/pkg/batch"
	"demystify-mtg/demystify/pkg/cli"
	"demystify-mtg/demystify/pkg/config"
	"demystify-mtg/demystify/pkg/store"
	"demystify-mtg/demystify/pkg/telemetry/health"
	"demystify-mtg/demystify/pkg/telemetry/metrics"
	"demystify-mtg/demystify/pkg/telemetry/tracing"
	"demystify-mtg/demystify/pkg/watch"
)

var batchFlags struct {
	workers     int
	failFast    bool
	strict      bool
	maxTokens   int
	store       string
	watch       bool
	metricsAddr string
	format      string
	progress    bool
}

var batchCmd = &cobra.Command{
	Use:   "batch <corpus.yaml>",
	Short: "Parse every trigger clause of a card corpus",
	Long: `Parse every trigger clause of a card corpus in parallel.

The corpus is a YAML file listing cards and their trigger clauses:

  cards:
    - name: Thalia, Guardian of Thraben
      triggers:
        - "Thalia leaves the battlefield"

A card's name, and the part of it before a comma, refer to the card itself.
The command exits with status 2 when any clause fails to parse.

Examples:
  # Parse with 8 workers and print the failures
  demystify batch cards.yaml --workers 8

  # Store results for later inspection with "demystify results"
  demystify batch cards.yaml --store demystify.db

  # Re-run on every change to the corpus and serve metrics
  demystify batch cards.yaml --watch --metrics-addr :9090

  # Table of every clause and its tree
  demystify batch cards.yaml --format table`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVarP(&batchFlags.workers, "workers", "w", 0, "parallel workers (0 uses the configured count)")
	batchCmd.Flags().BoolVar(&batchFlags.failFast, "fail-fast", false, "stop at the first clause that fails")
	batchCmd.Flags().BoolVar(&batchFlags.strict, "strict", false, "reject trailing punctuation")
	batchCmd.Flags().IntVar(&batchFlags.maxTokens, "max-tokens", 0, "maximum tokens per clause (0 uses the configured limit)")
	batchCmd.Flags().StringVar(&batchFlags.store, "store", "", "SQLite database to store results in")
	batchCmd.Flags().BoolVar(&batchFlags.watch, "watch", false, "re-run whenever the corpus file changes")
	batchCmd.Flags().StringVar(&batchFlags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	batchCmd.Flags().StringVarP(&batchFlags.format, "format", "o", "text", "output format: text, json, yaml, table, csv")
	batchCmd.Flags().BoolVar(&batchFlags.progress, "progress", true, "show a progress bar on stderr")
}

func runBatch(cmd *cobra.Command, args []string) error {
	path := args[0]

	format, err := cli.ParseOutputFormat(batchFlags.format)
	if err != nil {
		return err
	}

	// Flags override a copy of the global configuration.
	cfg := *config.GetConfig()
	if batchFlags.workers > 0 {
		cfg.Batch.Workers = batchFlags.workers
	}
	if batchFlags.failFast {
		cfg.Batch.FailFast = true
	}
	if batchFlags.store != "" {
		cfg.Storage.Enabled = true
		cfg.Storage.Path = batchFlags.store
	}
	if batchFlags.metricsAddr != "" {
		cfg.Telemetry.Metrics.Enabled = true
		cfg.Telemetry.Metrics.ListenAddress = batchFlags.metricsAddr
	}
	if err := config.Validate(&cfg); err != nil {
		return cli.NewConfigError("flags", err.Error())
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	var st *store.SQLiteStore
	if cfg.Storage.Enabled {
		st, err = store.OpenWithConfig(store.Config{
			Path:        cfg.Storage.Path,
			BusyTimeout: cfg.Storage.BusyTimeout,
		})
		if err != nil {
			return cli.NewCommandError("batch", err)
		}
		defer st.Close()
	}

	tracer, err := tracing.New(&cfg.Telemetry.Tracing, Version)
	if err != nil {
		return cli.NewCommandError("batch", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("failed to flush traces", "error", err)
		}
	}()

	tracker := health.NewRunTracker()
	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	}
	if collector != nil && cfg.Telemetry.Metrics.ListenAddress != "" {
		routes := healthRoutes(path, st, tracker)
		go func() {
			logger.Info("serving metrics", "address", cfg.Telemetry.Metrics.ListenAddress, "path", cfg.Telemetry.Metrics.Path)
			if err := collector.Serve(ctx, cfg.Telemetry.Metrics.ListenAddress, cfg.Telemetry.Metrics.Path, routes...); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	runner := batch.NewRunner(newParser(&cfg, batchFlags.maxTokens, batchFlags.strict)).
		WithWorkers(cfg.Batch.Workers).
		WithFailFast(cfg.Batch.FailFast).
		WithLogger(logger).
		WithMetrics(collector).
		WithTracer(tracer)
	if batchFlags.progress {
		runner = runner.WithProgress(cli.NewProgressReporter(cmd.ErrOrStderr()))
	}

	job := &batchJob{
		path:    path,
		runner:  runner,
		store:   st,
		tracker: tracker,
		out:     cmd.OutOrStdout(),
		format:  format,
	}

	if !batchFlags.watch {
		return job.run(ctx)
	}

	if err := job.run(ctx); err != nil && !isParseFailure(err) {
		return err
	}

	w, err := watch.New(watch.Config{Path: path, Debounce: cfg.Watch.Debounce}, logger)
	if err != nil {
		return cli.NewCommandError("batch", err)
	}
	defer w.Stop()

	return w.Watch(ctx, func(ctx context.Context) error {
		err := job.run(ctx)
		switch {
		case err == nil:
			collector.RecordReload(metrics.OutcomeOK)
		case isParseFailure(err):
			collector.RecordReload(metrics.OutcomeSyntax)
			return nil
		default:
			collector.RecordReload(metrics.OutcomeInternal)
		}
		return err
	})
}

// batchJob loads, parses, stores and prints one run of a corpus.
type batchJob struct {
	path    string
	runner  *batch.Runner
	store   *store.SQLiteStore
	tracker *health.RunTracker
	out     io.Writer
	format  cli.OutputFormat
}

func (j *batchJob) run(ctx context.Context) error {
	corpus, err := batch.LoadCorpus(j.path)
	if err != nil {
		return cli.NewCommandError("batch", err)
	}

	run, runErr := j.runner.Run(ctx, corpus, j.path)
	if run == nil {
		return cli.NewCommandError("batch", runErr)
	}
	j.tracker.Record(run.Summary.RunID, run.Summary.Status)

	if j.store != nil {
		// A canceled run is still stored, so save with a context that
		// outlives the signal.
		if err := j.store.SaveRun(context.WithoutCancel(ctx), run); err != nil {
			return cli.NewCommandError("batch", err)
		}
		logger.Info("run stored", "run_id", run.Summary.RunID, "path", j.store.Path())
	}

	if err := printRun(j.out, j.format, run); err != nil {
		return err
	}

	if runErr != nil {
		return runErr
	}
	if run.Summary.Failed > 0 {
		return &cli.ParseFailure{Failed: run.Summary.Failed, Total: run.Summary.Total}
	}
	return nil
}

// printRun writes a run in the requested format. Text output lists the
// failures followed by the summary line.
func printRun(w io.Writer, format cli.OutputFormat, run *batch.Run) error {
	if format != cli.FormatText {
		return cli.NewFormatter(format).FormatTo(w, run)
	}

	styles := cli.NewStyles(w)
	for _, f := range run.Failures() {
		line := fmt.Sprintf("%s #%d %q: %d:%d %s", f.Card, f.Index, f.Clause, f.Line, f.Column, f.Error)
		fmt.Fprintln(w, styles.Failed.Render(line))
	}
	_, err := fmt.Fprintln(w, styles.Status(run.Summary.Status, run.Summary.String()))
	return err
}

// healthRoutes serves /healthz, /readyz and /version next to the metrics
// endpoint. Readiness requires a readable corpus, a reachable store when
// one is configured, and a completed run.
func healthRoutes(corpus string, st *store.SQLiteStore, tracker *health.RunTracker) []metrics.Route {
	checker := health.New(2 * time.Second)
	checker.Register("corpus", health.FileCheck(corpus))
	checker.Register("last_run", tracker.Check)
	if st != nil {
		checker.Register("store", health.PingCheck(st))
	}

	var routes []metrics.Route
	for pattern, h := range checker.Handlers(health.VersionInfo{Version: Version, Commit: GitCommit, BuildTime: BuildDate}) {
		routes = append(routes, metrics.Route{Pattern: pattern, Handler: h})
	}
	return routes
}

func isParseFailure(err error) bool {
	var pf *cli.ParseFailure
	return errors.As(err, &pf)
}
