package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"demystify-mtg/demystify/pkg/batch"
	"demystify-mtg/demystify/pkg/cli"
	"demystify-mtg/demystify/pkg/telemetry/health"
)

const corpusYAML = `
cards:
  - name: Wall of Omens
    triggers:
      - "~ enters the battlefield"
  - name: Thalia, Guardian of Thraben
    triggers:
      - "Thalia leaves the battlefield"
      - "another creature dies"
  - name: Oblivion Ring
    triggers:
      - "~ phases sideways"
      - "~ has flying"
`

func writeCorpus(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cards.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBatchCommand_Text(t *testing.T) {
	corpus := writeCorpus(t, "cards:\n  - name: Bear\n    triggers: [\"~ dies\", \"~ phases in\"]\n")

	out, err := execute(t, "", "batch", corpus)
	if err != nil {
		t.Fatalf("batch error = %v", err)
	}
	if !strings.Contains(out, "ok, 2 parsed, 0 failed, 0 skipped of 2 clauses") {
		t.Errorf("output = %q", out)
	}
}

func TestBatchCommand_Failures(t *testing.T) {
	corpus := writeCorpus(t, corpusYAML)

	out, err := execute(t, "", "batch", "--workers", "2", corpus)
	var pf *cli.ParseFailure
	if !errors.As(err, &pf) {
		t.Fatalf("error = %v, want ParseFailure", err)
	}
	if pf.Failed != 1 || pf.Total != 5 {
		t.Errorf("ParseFailure = %+v", pf)
	}
	if cli.ExitCode(err) != cli.ExitParseError {
		t.Errorf("ExitCode() = %d", cli.ExitCode(err))
	}
	if !strings.Contains(out, `Oblivion Ring #0 "~ phases sideways": 1:10`) {
		t.Errorf("output does not list the failure:\n%s", out)
	}
}

func TestBatchCommand_MissingCorpus(t *testing.T) {
	_, err := execute(t, "", "batch", filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
	if cli.ExitCode(err) != cli.ExitError {
		t.Errorf("ExitCode() = %d", cli.ExitCode(err))
	}
}

func TestBatchAndResults(t *testing.T) {
	corpus := writeCorpus(t, corpusYAML)
	db := filepath.Join(t.TempDir(), "results.db")

	out, err := execute(t, "", "batch", "--store", db, "--format", "json", corpus)
	if !errors.As(err, new(*cli.ParseFailure)) {
		t.Fatalf("batch error = %v, want ParseFailure", err)
	}
	var run batch.Run
	if err := json.Unmarshal([]byte(out), &run); err != nil {
		t.Fatalf("batch output is not JSON: %v\n%s", err, out)
	}
	if len(run.Results) != 5 || run.Summary.RunID == "" {
		t.Fatalf("run = %+v", run.Summary)
	}

	t.Run("latest as csv", func(t *testing.T) {
		out, err := execute(t, "", "results", "--db", db, "--format", "csv")
		if err != nil {
			t.Fatalf("results error = %v", err)
		}
		lines := strings.Split(strings.TrimSpace(out), "\n")
		if len(lines) != 6 || lines[0] != "CARD,#,CLAUSE,RESULT" {
			t.Errorf("csv output:\n%s", out)
		}
	})

	t.Run("failures of run", func(t *testing.T) {
		out, err := execute(t, "", "results", "--db", db, "--run", run.Summary.RunID, "--failures", "--format", "json")
		if err != nil {
			t.Fatalf("results error = %v", err)
		}
		var got batch.Run
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("results output is not JSON: %v", err)
		}
		if len(got.Results) != 1 || got.Results[0].Clause != "~ phases sideways" {
			t.Errorf("failures = %+v", got.Results)
		}
	})

	t.Run("list", func(t *testing.T) {
		out, err := execute(t, "", "results", "--db", db, "--list", "--format", "json")
		if err != nil {
			t.Fatalf("results error = %v", err)
		}
		var sums []batch.Summary
		if err := json.Unmarshal([]byte(out), &sums); err != nil {
			t.Fatalf("results output is not JSON: %v", err)
		}
		if len(sums) != 1 || sums[0].RunID != run.Summary.RunID || sums[0].Failed != 1 {
			t.Errorf("summaries = %+v", sums)
		}
	})

	t.Run("unknown run", func(t *testing.T) {
		if _, err := execute(t, "", "results", "--db", db, "--run", "nope"); err == nil {
			t.Error("expected error for unknown run")
		}
	})

	t.Run("prune", func(t *testing.T) {
		out, err := execute(t, "", "results", "--db", db, "--prune", "1ns")
		if err != nil {
			t.Fatalf("results error = %v", err)
		}
		if strings.TrimSpace(out) != "deleted 1 run(s)" {
			t.Errorf("output = %q", out)
		}
	})
}

func TestResultsCommand_NoDatabase(t *testing.T) {
	_, err := execute(t, "", "results", "--db", filepath.Join(t.TempDir(), "none.db"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}

func TestBatchCommand_Metrics(t *testing.T) {
	corpus := writeCorpus(t, "cards:\n  - name: Bear\n    triggers: [\"~ dies\"]\n")

	if _, err := execute(t, "", "batch", "--metrics-addr", "127.0.0.1:0", corpus); err != nil {
		t.Fatalf("batch error = %v", err)
	}
}

func TestHealthRoutes(t *testing.T) {
	corpus := writeCorpus(t, corpusYAML)
	tracker := health.NewRunTracker()

	mux := http.NewServeMux()
	routes := healthRoutes(corpus, nil, tracker)
	if len(routes) != 3 {
		t.Fatalf("routes = %d, want 3", len(routes))
	}
	for _, r := range routes {
		mux.Handle(r.Pattern, r.Handler)
	}

	ready := func() int {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		return rec.Code
	}

	if code := ready(); code != http.StatusServiceUnavailable {
		t.Errorf("/readyz before a run = %d, want 503", code)
	}
	tracker.Record("run-1", "failed")
	if code := ready(); code != http.StatusOK {
		t.Errorf("/readyz after a run = %d, want 200", code)
	}

	if err := os.Remove(corpus); err != nil {
		t.Fatal(err)
	}
	if code := ready(); code != http.StatusServiceUnavailable {
		t.Errorf("/readyz without a corpus = %d, want 503", code)
	}
}
