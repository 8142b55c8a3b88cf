// Package parser builds trigger trees from classified tokens.
//
// A trigger clause is a subset followed by either an event or a
// condition:
//
//	trigger   := subset (event | condition)
//	event     := enter | leave | die | phase
//	enter     := (ENTER | (IS | ARE) PUT (INTO | ONTO)) zone-subset from?
//	from      := FROM (ANYWHERE | zone-subset)
//	leave     := LEAVE zone-subset
//	die       := DIE
//	phase     := PHASE (IN | OUT)
//	condition := HAS (keyword-ref | has-counters)
//
// The subset, zone-subset, keyword-ref and has-counters rules are not
// implemented here. They are supplied through the Productions interface
// and their subtrees are attached as they are returned.
//
// # Basic Usage
//
//	p := parser.NewParser(productions.New())
//	tree, err := p.ParseClause(tokens)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(tree)
//	// (TRIGGER (SUBSET SELF[~]) (EVENT (ENTER (ZONE_SET NUMBER=1 GRAVEYARD) (FROM BATTLEFIELD))))
//
// # Tree Shapes
//
//	~ enters the battlefield        (EVENT (ENTER BATTLEFIELD))
//	... from anywhere               (ENTER <zone> (FROM ANYWHERE))
//	~ leaves the battlefield        (EVENT (LEAVE BATTLEFIELD))
//	~ dies                          (EVENT (ENTER (ZONE_SET NUMBER=1 GRAVEYARD) (FROM BATTLEFIELD)))
//	~ phases out                    (EVENT (PHASE OUT))
//	~ has flying                    (CONDITION (HAS <keyword>))
//	~ has three or more counters    (CONDITION <counters>)
//
// # Errors
//
// When no rule matches, the parser returns an *errors.Error of type
// ErrorTypeSyntax positioned at the first unmatched token. Errors from
// the productions are returned as they are. No partial tree is ever
// returned with an error.
package parser
