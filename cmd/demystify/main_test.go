package main

import (
	"bytes"
	"strings"
	"testing"
)

// execute runs the root command with args and stdin, returning stdout.
// Flag variables are reset first since cobra keeps them between runs.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cfgFile = ""
	verbose = false
	parseFlags.format = "text"
	parseFlags.strict = false
	parseFlags.maxTokens = 0
	parseFlags.names = nil
	batchFlags.workers = 0
	batchFlags.failFast = false
	batchFlags.strict = false
	batchFlags.maxTokens = 0
	batchFlags.store = ""
	batchFlags.watch = false
	batchFlags.metricsAddr = ""
	batchFlags.format = "text"
	batchFlags.progress = false
	resultsFlags.db = ""
	resultsFlags.run = ""
	resultsFlags.list = false
	resultsFlags.limit = 20
	resultsFlags.failures = false
	resultsFlags.prune = 0
	resultsFlags.format = "table"

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), err
}
