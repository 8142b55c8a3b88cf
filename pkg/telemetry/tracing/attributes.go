package tracing

import "go.opentelemetry.io/otel/attribute"

// Span attribute keys.
const (
	AttrRunID       = "demystify.run_id"
	AttrCorpus      = "demystify.corpus"
	AttrClauses     = "demystify.clauses"
	AttrWorkers     = "demystify.workers"
	AttrStatus      = "demystify.status"
	AttrParsed      = "demystify.parsed"
	AttrFailed      = "demystify.failed"
	AttrCard        = "demystify.card"
	AttrClauseIndex = "demystify.clause.index"
	AttrClause      = "demystify.clause.text"
	AttrOutcome     = "demystify.outcome"
	AttrBranch      = "demystify.branch"
	AttrForm        = "demystify.form"
)

// RunAttributes describes a batch run at its start.
func RunAttributes(runID, corpus string, clauses, workers int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrRunID, runID),
		attribute.String(AttrCorpus, corpus),
		attribute.Int(AttrClauses, clauses),
		attribute.Int(AttrWorkers, workers),
	}
}

// RunResultAttributes describes how a batch run ended.
func RunResultAttributes(status string, parsed, failed int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrStatus, status),
		attribute.Int(AttrParsed, parsed),
		attribute.Int(AttrFailed, failed),
	}
}

// ClauseAttributes identifies one trigger clause.
func ClauseAttributes(card string, index int, clause string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrCard, card),
		attribute.Int(AttrClauseIndex, index),
		attribute.String(AttrClause, clause),
	}
}

// OutcomeAttributes describes how a clause parsed. Branch and form are
// omitted when empty.
func OutcomeAttributes(outcome, branch, form string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{attribute.String(AttrOutcome, outcome)}
	if branch != "" {
		attrs = append(attrs, attribute.String(AttrBranch, branch))
	}
	if form != "" {
		attrs = append(attrs, attribute.String(AttrForm, form))
	}
	return attrs
}
