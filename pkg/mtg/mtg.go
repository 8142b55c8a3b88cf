package mtg

import (
	"strings"

	"demystify-mtg/demystify/pkg/mtg/ast"
	mtgErrors "demystify-mtg/demystify/pkg/mtg/errors"
	"demystify-mtg/demystify/pkg/mtg/lexer"
	"demystify-mtg/demystify/pkg/mtg/parser"
	"demystify-mtg/demystify/pkg/mtg/productions"
	"demystify-mtg/demystify/pkg/mtg/token"
)

// NewParser returns a trigger parser wired to the reference productions.
func NewParser() *parser.Parser {
	return parser.NewParser(productions.New())
}

// ParseText is a convenience function that lexes and parses one trigger
// clause with the default parser.
func ParseText(text string) (*ast.Node, error) {
	return Parse(NewParser(), text)
}

// ParseTokens parses an already tokenized trigger clause with the default
// parser.
func ParseTokens(tokens []token.Token) (*ast.Node, error) {
	return NewParser().ParseClause(tokens)
}

// Parse lexes text and parses it with p. Occurrences of selfNames in the
// text lex as SELF, so a clause may name its card instead of using "~".
// Lexical and syntax errors come back with the source line and a caret
// rendered into their context.
func Parse(p *parser.Parser, text string, selfNames ...string) (*ast.Node, error) {
	toks, err := lexer.New().WithSelfNames(selfNames...).Lex(text)
	if err != nil {
		return nil, mtgErrors.WithSource(err, text)
	}

	tree, err := p.ParseClause(toks)
	if err != nil {
		return nil, mtgErrors.WithSource(err, text)
	}
	return tree, nil
}

// Branch returns "event" or "condition" for a TRIGGER tree, or "" for
// anything else.
func Branch(tree *ast.Node) string {
	if tree == nil || tree.Kind() != ast.KindTrigger {
		return ""
	}
	switch tree.Child(1).Kind() {
	case ast.KindEvent:
		return "event"
	case ast.KindCondition:
		return "condition"
	}
	return ""
}

// Form returns the name of the production that built a TRIGGER tree's
// branch: enter, leave, phase, has or counters.
func Form(tree *ast.Node) string {
	if Branch(tree) == "" {
		return ""
	}
	inner := tree.Child(1).Child(0)
	if inner == nil {
		return ""
	}
	switch inner.Kind() {
	case ast.KindEnter, ast.KindLeave, ast.KindPhase, ast.KindHas:
		return strings.ToLower(inner.Kind().String())
	case ast.KindCounters:
		return "counters"
	}
	return ""
}
