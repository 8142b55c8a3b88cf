// Demystify parses the trigger clauses of Magic: The Gathering rules text
// into typed syntax trees.
//
// A trigger clause is the part of an ability that says when it happens,
// such as "whenever another creature dies" or "when ~ phases out". Each
// clause parses into either an event (something happens to an object) or
// a condition (a statement about game state).
//
// Usage:
//
//	# Parse one clause and print its S-expression
//	demystify parse "~ enters the battlefield"
//
//	# Parse a clause that names its card
//	demystify parse --name "Thalia" "Thalia leaves the battlefield"
//
//	# Parse every clause of a corpus file and store the results
//	demystify batch cards.yaml --store demystify.db
//
//	# Re-run the corpus whenever it changes, exposing Prometheus metrics
//	demystify batch cards.yaml --watch --metrics-addr :9090
//
//	# Show the failures of the latest stored run
//	demystify results --failures
package main

func main() {
	Execute()
}
