// Package ast provides the Abstract Syntax Tree for trigger clauses of
// Magic card rules text.
//
// A trigger describes when a triggered ability fires. It wraps either an
// Event (something happens to an object) or a Condition (a statement about
// game state that is true or false).
//
// # Core Types
//
// Node: an immutable tagged node with a Kind, ordered children, and an
// optional literal payload (NUMBER carries an int, keyword and counter
// terminals carry their text)
//
// Kind: the closed set of node variants
//
// Visitor: one method per trigger-grammar variant, plus VisitOpaque for
// subtrees built by the subset, keyword and counter productions
//
// # Tree Shapes
//
// The parser builds these shapes, and consumers may rely on the child order:
//
//	TRIGGER
//	├── subset | zone-subset (opaque)
//	└── EVENT | CONDITION
//
//	EVENT
//	└── ENTER (destination, FROM?) | LEAVE (zone-subset) | PHASE (IN|OUT)
//
//	FROM
//	└── zone-subset | ANYWHERE
//
//	CONDITION
//	└── HAS (keyword-ref) | counter-count subtree
//
// The shorthand "dies" is always built as
//
//	(ENTER (ZONE_SET NUMBER=1 GRAVEYARD) (FROM BATTLEFIELD))
//
// # Basic Usage
//
//	tree, err := mtg.ParseText("~ enters the battlefield")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(tree) // (TRIGGER (SUBSET SELF[~]) (EVENT (ENTER BATTLEFIELD)))
//
//	event := tree.Child(1)
//	if event.Kind() == ast.KindEvent {
//	    fmt.Println("event:", event.Child(0).Kind())
//	}
//
// # Immutability
//
// Node fields are unexported. Once a production returns a node it is never
// modified, so trees may be shared freely between goroutines.
package ast
