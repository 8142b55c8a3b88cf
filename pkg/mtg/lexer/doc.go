// Package lexer tokenizes rules text for the trigger parser.
//
// Words are looked up in a fixed dictionary of rules-text vocabulary.
// Present-tense verb forms share a kind ("enter" and "enters" are both
// ENTER), multi-word keywords such as "first strike" lex as one token,
// and power/toughness counters such as "+1/+1" lex as COUNTER_TYPE.
// Card names registered with WithSelfNames lex as SELF.
//
//	toks, err := lexer.New().WithSelfNames("Grizzly Bears").Lex("Grizzly Bears dies")
package lexer
