package batch

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"demystify-mtg/demystify/pkg/cli"
	"demystify-mtg/demystify/pkg/mtg"
	"demystify-mtg/demystify/pkg/mtg/parser"
	"demystify-mtg/demystify/pkg/telemetry/logging"
	"demystify-mtg/demystify/pkg/telemetry/metrics"
	"demystify-mtg/demystify/pkg/telemetry/tracing"
)

// DefaultWorkers is the worker count used when none is configured.
const DefaultWorkers = 4

// Runner parses every trigger clause of a corpus with a pool of workers.
// A Runner is safe for concurrent use; each Run call has its own pool.
type Runner struct {
	parser   *parser.Parser
	workers  int
	failFast bool
	logger   *logging.Logger
	metrics  *metrics.Collector
	tracer   *tracing.Tracer
	progress cli.ProgressReporter
	now      func() time.Time
}

// NewRunner creates a runner around p. A nil parser uses mtg.NewParser.
func NewRunner(p *parser.Parser) *Runner {
	if p == nil {
		p = mtg.NewParser()
	}
	return &Runner{
		parser:  p,
		workers: DefaultWorkers,
		logger:  logging.Nop(),
		now:     time.Now,
	}
}

// WithWorkers sets the number of concurrent workers. Values below 1 are
// treated as 1.
func (r *Runner) WithWorkers(n int) *Runner {
	if n < 1 {
		n = 1
	}
	r.workers = n
	return r
}

// WithFailFast stops dispatching clauses after the first failure.
func (r *Runner) WithFailFast(failFast bool) *Runner {
	r.failFast = failFast
	return r
}

// WithLogger sets the logger. A nil logger discards output.
func (r *Runner) WithLogger(logger *logging.Logger) *Runner {
	if logger == nil {
		logger = logging.Nop()
	}
	r.logger = logger
	return r
}

// WithMetrics records parse and run metrics on c. A nil collector disables
// recording.
func (r *Runner) WithMetrics(c *metrics.Collector) *Runner {
	r.metrics = c
	return r
}

// WithTracer records each run and clause as spans. A nil tracer disables
// tracing.
func (r *Runner) WithTracer(t *tracing.Tracer) *Runner {
	r.tracer = t
	return r
}

// WithProgress reports the number of finished clauses to p.
func (r *Runner) WithProgress(p cli.ProgressReporter) *Runner {
	r.progress = p
	return r
}

type job struct {
	slot   int
	card   Card
	index  int
	clause string
}

// Run parses the corpus. name identifies the corpus in logs and summaries.
//
// Results are returned in corpus order. When ctx is canceled the partial
// run is returned together with ctx.Err(). A fail-fast stop is not an
// error; it shows up as StatusFailed with Skipped > 0.
func (r *Runner) Run(ctx context.Context, corpus *Corpus, name string) (*Run, error) {
	runID := uuid.NewString()
	started := r.now()

	total := corpus.Clauses()

	ctx, span := r.tracer.Start(ctx, "batch.run",
		trace.WithAttributes(tracing.RunAttributes(runID, name, total, r.workers)...))
	defer span.End()

	ctx = logging.WithRunID(ctx, runID)
	ctx = logging.WithCorpus(ctx, name)
	log := r.logger.WithContext(ctx)

	log.Info("batch run started", "clauses", total, "workers", r.workers, "fail_fast", r.failFast)

	// Workers stop early on fail-fast via stop, but the caller's ctx
	// decides whether the run counts as canceled.
	workCtx, stop := context.WithCancel(ctx)
	defer stop()

	results := make([]Result, total)
	done := make([]bool, total)
	jobs := make(chan job)

	var finished int64
	if r.progress != nil {
		r.progress.Start(int64(total))
	}

	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				res := r.parseOne(workCtx, j)
				results[j.slot] = res
				done[j.slot] = true

				n := atomic.AddInt64(&finished, 1)
				if r.progress != nil {
					r.progress.Update(n)
				}
				if !res.OK() && r.failFast {
					stop()
				}
			}
		}()
	}

	slot := 0
dispatch:
	for _, card := range corpus.Cards {
		for i, clause := range card.Triggers {
			if workCtx.Err() != nil {
				break dispatch
			}
			select {
			case <-workCtx.Done():
				break dispatch
			case jobs <- job{slot: slot, card: card, index: i, clause: clause}:
			}
			slot++
		}
	}
	close(jobs)
	wg.Wait()

	if r.progress != nil {
		r.progress.Finish()
	}

	run := &Run{Results: make([]Result, 0, total)}
	for i := range results {
		if done[i] {
			run.Results = append(run.Results, results[i])
		}
	}

	run.Summary = Summarize(run.Results, total)
	run.Summary.RunID = runID
	run.Summary.Corpus = name
	run.Summary.Started = started
	run.Summary.Duration = r.now().Sub(started)

	ctxErr := ctx.Err()
	switch {
	case ctxErr != nil:
		run.Summary.Status = StatusCanceled
	case run.Summary.Failed > 0:
		run.Summary.Status = StatusFailed
	default:
		run.Summary.Status = StatusOK
	}
	r.metrics.RecordRun(run.Summary.Status, run.Summary.Duration)
	span.SetAttributes(tracing.RunResultAttributes(run.Summary.Status, run.Summary.Parsed, run.Summary.Failed)...)
	tracing.SetError(span, ctxErr)

	log.Info("batch run finished",
		"status", run.Summary.Status,
		"parsed", run.Summary.Parsed,
		"failed", run.Summary.Failed,
		"skipped", run.Summary.Skipped,
		"duration", run.Summary.Duration,
	)

	if ctxErr != nil {
		return run, ctxErr
	}
	return run, nil
}

func (r *Runner) parseOne(ctx context.Context, j job) Result {
	r.metrics.ClauseStarted()
	defer r.metrics.ClauseFinished()

	ctx, span := r.tracer.Start(ctx, "parse.clause",
		trace.WithAttributes(tracing.ClauseAttributes(j.card.Name, j.index, j.clause)...))
	defer span.End()

	start := time.Now()
	tree, err := mtg.Parse(r.parser, j.clause, j.card.SelfNames()...)
	res := newResult(j.card.Name, j.index, j.clause, tree, err)
	res.Duration = time.Since(start)

	span.SetAttributes(tracing.OutcomeAttributes(res.Outcome(), res.Branch, res.Form)...)
	if err != nil {
		tracing.SetError(span, err)
	}

	r.metrics.RecordParse(res.Outcome(), res.Branch, res.Form, res.Duration)
	if res.Outcome() == metrics.OutcomeSyntax {
		r.metrics.RecordSyntaxError(res.Expected)
	}

	if !res.OK() {
		ctx = logging.WithCard(ctx, j.card.Name)
		ctx = logging.WithClause(ctx, j.clause)
		r.logger.DebugContext(ctx, "clause did not parse",
			"error_kind", res.Kind,
			"error", res.Error,
			"column", res.Column,
		)
	}
	return res
}
