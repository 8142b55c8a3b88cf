// Package mtg parses the trigger clauses of Magic: The Gathering rules text.
//
// A trigger clause such as "~ dies" or "~ has flying" describes when a
// triggered ability fires. Parsing it yields a TRIGGER tree holding the
// subject of the clause and either an EVENT (something happens to the
// subject) or a CONDITION (something is true of it).
//
// # Architecture
//
// The package is organized into subpackages:
//
// - token: token kinds, source positions and the forward-only Cursor
// - lexer: tokenizes rules text with a fixed vocabulary
// - parser: the trigger grammar (events, conditions, shorthand expansion)
// - productions: subject, zone, keyword and counter rules
// - ast: immutable trees, visitors and S-expression/YAML/JSON rendering
// - errors: rich error types with positions and suggestions
//
// # Basic Usage
//
//	tree, err := mtg.ParseText("~ dies")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(tree)
//	// (TRIGGER (SUBSET SELF[~]) (EVENT (ENTER (ZONE_SET NUMBER=1 GRAVEYARD) (FROM BATTLEFIELD))))
//
// Parse with a configured parser and a card name standing for "~":
//
//	p := mtg.NewParser().WithMaxTokens(64).WithStrictMode(true)
//	tree, err := mtg.Parse(p, "Grizzly Bears dies", "Grizzly Bears")
package mtg
