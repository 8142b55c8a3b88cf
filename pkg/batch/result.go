package batch

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"demystify-mtg/demystify/pkg/mtg"
	"demystify-mtg/demystify/pkg/mtg/ast"
	mtgErrors "demystify-mtg/demystify/pkg/mtg/errors"
	"demystify-mtg/demystify/pkg/telemetry/metrics"
)

// Run statuses.
const (
	StatusOK       = "ok"
	StatusFailed   = "failed"
	StatusCanceled = "canceled"
)

// Result is the outcome of parsing one trigger clause.
type Result struct {
	Card     string        `yaml:"card" json:"card"`
	Index    int           `yaml:"index" json:"index"` // Position of the clause on its card
	Clause   string        `yaml:"clause" json:"clause"`
	Tree     string        `yaml:"tree,omitempty" json:"tree,omitempty"` // S-expression
	Branch   string        `yaml:"branch,omitempty" json:"branch,omitempty"`
	Form     string        `yaml:"form,omitempty" json:"form,omitempty"`
	Error    string        `yaml:"error,omitempty" json:"error,omitempty"`
	Kind     string        `yaml:"error_kind,omitempty" json:"error_kind,omitempty"`
	Expected string        `yaml:"expected,omitempty" json:"expected,omitempty"`
	Line     int           `yaml:"line,omitempty" json:"line,omitempty"`
	Column   int           `yaml:"column,omitempty" json:"column,omitempty"`
	Duration time.Duration `yaml:"-" json:"-"`
}

// OK returns true if the clause parsed.
func (r Result) OK() bool {
	return r.Error == ""
}

// Outcome returns the metrics outcome label for the result.
func (r Result) Outcome() string {
	switch {
	case r.OK():
		return metrics.OutcomeOK
	case r.Kind == string(mtgErrors.ErrorTypeSyntax):
		return metrics.OutcomeSyntax
	case r.Kind == string(mtgErrors.ErrorTypeLexical):
		return metrics.OutcomeLexical
	case r.Kind == string(mtgErrors.ErrorTypeLimit):
		return metrics.OutcomeLimit
	}
	return metrics.OutcomeInternal
}

func newResult(card string, index int, clause string, tree *ast.Node, err error) Result {
	r := Result{Card: card, Index: index, Clause: clause}
	if err == nil {
		r.Tree = tree.String()
		r.Branch = mtg.Branch(tree)
		r.Form = mtg.Form(tree)
		return r
	}

	var e *mtgErrors.Error
	if errors.As(err, &e) {
		r.Error = e.Message
		r.Kind = string(e.Type)
		r.Line = e.Pos.Line
		r.Column = e.Pos.Column
		if len(e.Expected) > 0 {
			r.Expected = e.Expected[0]
		}
		return r
	}
	r.Error = err.Error()
	return r
}

// Summary aggregates the results of a run.
type Summary struct {
	RunID    string         `yaml:"run_id" json:"run_id"`
	Corpus   string         `yaml:"corpus" json:"corpus"`
	Started  time.Time      `yaml:"started" json:"started"`
	Duration time.Duration  `yaml:"duration" json:"duration"`
	Status   string         `yaml:"status" json:"status"`
	Total    int            `yaml:"total" json:"total"` // Clauses in the corpus
	Parsed   int            `yaml:"parsed" json:"parsed"`
	Failed   int            `yaml:"failed" json:"failed"`
	Skipped  int            `yaml:"skipped" json:"skipped"` // Not attempted after fail-fast or cancellation
	ByBranch map[string]int `yaml:"by_branch,omitempty" json:"by_branch,omitempty"`
	ByForm   map[string]int `yaml:"by_form,omitempty" json:"by_form,omitempty"`
	ByError  map[string]int `yaml:"by_error,omitempty" json:"by_error,omitempty"` // Keyed by error kind
}

// Summarize counts results into a Summary. Total is the number of clauses
// in the corpus, which may exceed len(results) when a run stopped early.
func Summarize(results []Result, total int) Summary {
	s := Summary{
		Total:    total,
		ByBranch: make(map[string]int),
		ByForm:   make(map[string]int),
		ByError:  make(map[string]int),
	}
	for _, r := range results {
		if r.OK() {
			s.Parsed++
			s.ByBranch[r.Branch]++
			s.ByForm[r.Form]++
			continue
		}
		s.Failed++
		kind := r.Kind
		if kind == "" {
			kind = "other"
		}
		s.ByError[kind]++
	}
	s.Skipped = total - len(results)
	return s
}

// Run is a completed batch run.
type Run struct {
	Summary Summary  `yaml:"summary" json:"summary"`
	Results []Result `yaml:"results" json:"results"` // In corpus order
}

// Failures returns the results that did not parse.
func (r *Run) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// Header implements cli.Tabular.
func (r *Run) Header() []string {
	return []string{"CARD", "#", "CLAUSE", "RESULT"}
}

// Rows implements cli.Tabular. Parsed clauses show their tree, failed
// clauses their position and error.
func (r *Run) Rows() [][]string {
	rows := make([][]string, 0, len(r.Results))
	for _, res := range r.Results {
		outcome := res.Tree
		if !res.OK() {
			outcome = fmt.Sprintf("%d:%d %s", res.Line, res.Column, res.Error)
		}
		rows = append(rows, []string{res.Card, strconv.Itoa(res.Index), res.Clause, outcome})
	}
	return rows
}

// Summaries is a list of run summaries, newest first.
type Summaries []Summary

// Header implements cli.Tabular.
func (s Summaries) Header() []string {
	return []string{"RUN", "STARTED", "CORPUS", "STATUS", "PARSED", "FAILED", "SKIPPED"}
}

// Rows implements cli.Tabular.
func (s Summaries) Rows() [][]string {
	rows := make([][]string, 0, len(s))
	for _, sum := range s {
		rows = append(rows, []string{
			sum.RunID,
			sum.Started.Format(time.RFC3339),
			sum.Corpus,
			sum.Status,
			strconv.Itoa(sum.Parsed),
			strconv.Itoa(sum.Failed),
			strconv.Itoa(sum.Skipped),
		})
	}
	return rows
}

// String renders a one-line summary.
func (s Summary) String() string {
	return fmt.Sprintf("run %s: %s, %d parsed, %d failed, %d skipped of %d clauses in %s",
		s.RunID, s.Status, s.Parsed, s.Failed, s.Skipped, s.Total, s.Duration.Round(time.Microsecond))
}
