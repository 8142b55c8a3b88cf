package parser

import (
	"demystify-mtg/demystify/pkg/mtg/ast"
	mtgErrors "demystify-mtg/demystify/pkg/mtg/errors"
	"demystify-mtg/demystify/pkg/mtg/token"
)

// eventForm is one alternative of the event grammar.
type eventForm struct {
	name   string
	starts []token.Kind
	parse  func(p *Parser, c *token.Cursor) (*ast.Node, error)
}

// eventForms are tried in this order. The zone transfers come first
// (destination, departure, die), then phasing. Their leading tokens never
// overlap, so the first form whose start set matches is the only one.
var eventForms = []eventForm{
	{name: "destination", starts: []token.Kind{token.KindEnter, token.KindIs, token.KindAre}, parse: (*Parser).parseEnter},
	{name: "departure", starts: []token.Kind{token.KindLeave}, parse: (*Parser).parseLeave},
	{name: "die", starts: []token.Kind{token.KindDie}, parse: (*Parser).parseDie},
	{name: "phase", starts: []token.Kind{token.KindPhase}, parse: (*Parser).parsePhase},
}

// EventForm returns the name of the event form t starts, or "" if none.
func EventForm(t token.Token) string {
	for _, f := range eventForms {
		if t.Is(f.starts...) {
			return f.name
		}
	}
	return ""
}

// parseEvent parses
//
//	event := enter | leave | die | phase
//
// and wraps the result in an EVENT node.
func (p *Parser) parseEvent(c *token.Cursor) (*ast.Node, error) {
	start := c.Peek()

	for _, f := range eventForms {
		if !start.Is(f.starts...) {
			continue
		}
		inner, err := f.parse(p, c)
		if err != nil {
			return nil, err
		}
		return ast.New(ast.KindEvent, c.SpanFrom(start), inner), nil
	}

	return nil, mtgErrors.NewSyntaxError(start, "enters", "is put", "are put", "leaves", "dies", "phases")
}

// parseEnter parses the destination form
//
//	enter := (ENTER | (IS | ARE) PUT (INTO | ONTO)) zone-subset from?
//
// The FROM child is omitted entirely when there is no FROM clause.
func (p *Parser) parseEnter(c *token.Cursor) (*ast.Node, error) {
	start := c.Peek()

	if _, ok := c.Accept(token.KindEnter); !ok {
		c.Next() // IS or ARE
		if tok, ok := c.Accept(token.KindPut); !ok {
			return nil, mtgErrors.NewSyntaxError(tok, "put")
		}
		if tok, ok := c.Accept(token.KindInto, token.KindOnto); !ok {
			return nil, mtgErrors.NewSyntaxError(tok, "into", "onto")
		}
	}

	dest, err := p.prods.ZoneSubset(c)
	if err != nil {
		return nil, err
	}

	from, err := p.parseFrom(c)
	if err != nil {
		return nil, err
	}

	return ast.New(ast.KindEnter, c.SpanFrom(start), dest, from), nil
}

// parseFrom parses the optional source of a zone transfer
//
//	from := FROM (ANYWHERE | zone-subset)
//
// It returns a nil node, and consumes nothing, when the next token is not FROM.
func (p *Parser) parseFrom(c *token.Cursor) (*ast.Node, error) {
	start, ok := c.Accept(token.KindFrom)
	if !ok {
		return nil, nil
	}

	if tok, ok := c.Accept(token.KindAnywhere); ok {
		return ast.New(ast.KindFrom, c.SpanFrom(start), marker(ast.KindAnywhere, tok)), nil
	}

	src, err := p.prods.ZoneSubset(c)
	if err != nil {
		return nil, err
	}
	return ast.New(ast.KindFrom, c.SpanFrom(start), src), nil
}

// parseLeave parses the departure form
//
//	leave := LEAVE zone-subset
func (p *Parser) parseLeave(c *token.Cursor) (*ast.Node, error) {
	start := c.Next()

	zone, err := p.prods.ZoneSubset(c)
	if err != nil {
		return nil, err
	}
	return ast.New(ast.KindLeave, c.SpanFrom(start), zone), nil
}

// parseDie parses the bare DIE shorthand and returns its expansion.
func (p *Parser) parseDie(c *token.Cursor) (*ast.Node, error) {
	tok := c.Next()
	node, ok := expand(tok)
	if !ok {
		return nil, mtgErrors.NewSyntaxError(tok, "dies")
	}
	return node, nil
}

// parsePhase parses
//
//	phase := PHASE (IN | OUT)
//
// The PHASE token is consumed but not kept in the tree.
func (p *Parser) parsePhase(c *token.Cursor) (*ast.Node, error) {
	start := c.Next()

	tok, ok := c.Accept(token.KindIn, token.KindOut)
	if !ok {
		return nil, mtgErrors.NewSyntaxError(tok, "in", "out")
	}

	dir := ast.KindIn
	if tok.Kind == token.KindOut {
		dir = ast.KindOut
	}
	return ast.New(ast.KindPhase, c.SpanFrom(start), marker(dir, tok)), nil
}
