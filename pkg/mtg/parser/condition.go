package parser

import (
	"demystify-mtg/demystify/pkg/mtg/ast"
	mtgErrors "demystify-mtg/demystify/pkg/mtg/errors"
	"demystify-mtg/demystify/pkg/mtg/token"
)

// parseCondition parses
//
//	condition := HAS keyword-ref   -> CONDITION(HAS(keyword-ref))
//	           | HAS has-counters  -> CONDITION(has-counters)
//
// The counter form returns the counter subtree directly; no HAS node is
// built for it. The keyword form is checked first.
func (p *Parser) parseCondition(c *token.Cursor) (*ast.Node, error) {
	start := c.Next() // HAS

	var (
		inner *ast.Node
		err   error
	)
	switch next := c.Peek(); {
	case p.prods.StartsKeywordRef(next):
		var ref *ast.Node
		ref, err = p.prods.KeywordRef(c)
		if err == nil {
			inner = ast.New(ast.KindHas, c.SpanFrom(start), ref)
		}
	case p.prods.StartsCounters(next):
		inner, err = p.prods.HasCounters(c)
	default:
		return nil, mtgErrors.NewSyntaxError(next, "a keyword ability", "a counter count")
	}
	if err != nil {
		return nil, err
	}

	return ast.New(ast.KindCondition, c.SpanFrom(start), inner), nil
}
