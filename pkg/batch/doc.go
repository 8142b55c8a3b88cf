// Package batch parses every trigger clause of a card corpus.
//
// A corpus is a YAML file listing cards and their trigger clauses:
//
//	cards:
//	  - name: Thalia, Guardian of Thraben
//	    triggers:
//	      - "Thalia leaves the battlefield"
//
// The card's name, and its short name before a comma, lex as SELF in its
// own clauses.
//
// # Running
//
//	runner := batch.NewRunner(mtg.NewParser()).
//	    WithWorkers(8).
//	    WithLogger(logger).
//	    WithMetrics(collector)
//
//	run, err := runner.Run(ctx, corpus, "cards.yaml")
//
// Results come back in corpus order with a Summary counting parses per
// branch, per event form and per error kind. Each run gets a UUID that is
// attached to its log records and stored with its results.
package batch
