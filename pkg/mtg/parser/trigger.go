package parser

import (
	"demystify-mtg/demystify/pkg/mtg/ast"
	mtgErrors "demystify-mtg/demystify/pkg/mtg/errors"
	"demystify-mtg/demystify/pkg/mtg/token"
)

// Tokens that select a branch once the leading subset is parsed.
var (
	eventStarts     = []token.Kind{token.KindEnter, token.KindIs, token.KindAre, token.KindLeave, token.KindDie, token.KindPhase}
	conditionStarts = []token.Kind{token.KindHas}
)

// triggerExpected lists the continuations of a subset in error messages.
var triggerExpected = []string{"enters", "is put", "are put", "leaves", "dies", "phases", "has"}

// ParseTrigger parses one trigger clause starting at the cursor:
//
//	trigger := subset (event | condition)
//
// The subset is parsed once, before the branch is chosen, and the branch
// is then selected by the single token that follows it. ParseTrigger
// stops after the branch; it does not require the cursor to be at the end.
func (p *Parser) ParseTrigger(c *token.Cursor) (*ast.Node, error) {
	start := c.Peek()

	subset, err := p.prods.Subset(c)
	if err != nil {
		return nil, err
	}

	var branch *ast.Node
	switch next := c.Peek(); {
	case next.Is(eventStarts...):
		branch, err = p.parseEvent(c)
	case next.Is(conditionStarts...):
		branch, err = p.parseCondition(c)
	default:
		return nil, mtgErrors.NewSyntaxError(next, triggerExpected...)
	}
	if err != nil {
		return nil, err
	}

	return ast.New(ast.KindTrigger, c.SpanFrom(start), subset, branch), nil
}
