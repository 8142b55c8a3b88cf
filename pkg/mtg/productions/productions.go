package productions

import (
	"strings"

	"demystify-mtg/demystify/pkg/mtg/ast"
	mtgErrors "demystify-mtg/demystify/pkg/mtg/errors"
	"demystify-mtg/demystify/pkg/mtg/lexer"
	"demystify-mtg/demystify/pkg/mtg/parser"
	"demystify-mtg/demystify/pkg/mtg/token"
)

// Rules implements parser.Productions for the vocabulary of the lexer
// package.
type Rules struct{}

var _ parser.Productions = Rules{}

// New returns the reference productions.
func New() Rules {
	return Rules{}
}

// zoneMarkers maps zone words to their terminal kinds.
var zoneMarkers = map[string]ast.Kind{
	"battlefield":  ast.KindBattlefield,
	"graveyard":    ast.KindGraveyard,
	"graveyards":   ast.KindGraveyard,
	"hand":         ast.KindHand,
	"hands":        ast.KindHand,
	"library":      ast.KindLibrary,
	"libraries":    ast.KindLibrary,
	"exile":        ast.KindExile,
	"stack":        ast.KindStack,
	"command zone": ast.KindCommand,
}

// Subset parses
//
//	subset := SELF | DETERMINER? PLAYER_POSS? OBJ_TYPE+
func (Rules) Subset(c *token.Cursor) (*ast.Node, error) {
	start := c.Peek()

	if tok, ok := c.Accept(token.KindSelf); ok {
		return ast.New(ast.KindSubset, tok.Span, ast.NewText(ast.KindSelf, tok.Text, tok.Span)), nil
	}

	var parts []*ast.Node
	if det, ok := c.Accept(token.KindDeterminer); ok {
		parts = append(parts, text(ast.KindDeterminer, det))
	}
	if poss, ok := c.Accept(token.KindPlayerPoss); ok {
		parts = append(parts, text(ast.KindPlayer, poss))
	}

	types := 0
	for {
		tok, ok := c.Accept(token.KindObjectType)
		if !ok {
			break
		}
		parts = append(parts, text(ast.KindObjectType, tok))
		types++
	}
	if types == 0 {
		return nil, mtgErrors.NewSyntaxError(c.Peek(), "~", "an object type")
	}

	return ast.New(ast.KindSubset, c.SpanFrom(start), parts...), nil
}

// ZoneSubset parses
//
//	zone-subset := DETERMINER? ZONE                 -> zone
//	             | (a | an | NUMBER) ZONE           -> ZONE_SET(NUMBER, zone)
//	             | DETERMINER? PLAYER_POSS ZONE     -> ZONE_SET(PLAYER, zone)
func (Rules) ZoneSubset(c *token.Cursor) (*ast.Node, error) {
	start := c.Peek()

	det, hasDet := c.Accept(token.KindDeterminer)

	var qualifier *ast.Node
	switch next := c.Peek(); {
	case next.Is(token.KindPlayerPoss):
		c.Next()
		qualifier = text(ast.KindPlayer, next)
	case !hasDet && next.Is(token.KindNumber):
		n, ok := lexer.NumberValue(next.Text)
		if !ok {
			return nil, mtgErrors.NewSyntaxError(next, "a number")
		}
		c.Next()
		qualifier = ast.NewNumber(n, next.Span)
	case hasDet && isIndefinite(det):
		qualifier = ast.NewNumber(1, det.Span)
	}

	zone, ok := c.Accept(token.KindZone)
	if !ok {
		return nil, mtgErrors.NewSyntaxError(zone, "a zone")
	}
	kind, ok := zoneMarkers[strings.Join(strings.Fields(strings.ToLower(zone.Text)), " ")]
	if !ok {
		return nil, mtgErrors.NewSyntaxError(zone, "a zone")
	}
	marker := ast.NewMarker(kind, zone.Span)

	if qualifier == nil {
		return marker, nil
	}
	return ast.New(ast.KindZoneSet, c.SpanFrom(start), qualifier, marker), nil
}

// KeywordRef parses a single keyword ability.
func (Rules) KeywordRef(c *token.Cursor) (*ast.Node, error) {
	tok, ok := c.Accept(token.KindAbility)
	if !ok {
		return nil, mtgErrors.NewSyntaxError(tok, "a keyword ability")
	}
	return ast.NewText(ast.KindKeyword, strings.ToLower(tok.Text), tok.Span), nil
}

// HasCounters parses the counter count following HAS:
//
//	has-counters := (NUMBER | a | an) (OR (MORE | FEWER))? COUNTER_TYPE? COUNTER (ON SELF)?
//
// and returns COUNTERS(NUMBER, COUNTER_TYPE?, COMPARISON?).
func (Rules) HasCounters(c *token.Cursor) (*ast.Node, error) {
	start := c.Peek()

	var count *ast.Node
	switch {
	case start.Is(token.KindNumber):
		n, ok := lexer.NumberValue(start.Text)
		if !ok {
			return nil, mtgErrors.NewSyntaxError(start, "a number")
		}
		count = ast.NewNumber(n, start.Span)
	case isIndefinite(start):
		count = ast.NewNumber(1, start.Span)
	default:
		return nil, mtgErrors.NewSyntaxError(start, "a number")
	}
	c.Next()

	var cmp *ast.Node
	if or, ok := c.Accept(token.KindOr); ok {
		dir, ok := c.Accept(token.KindMore, token.KindFewer)
		if !ok {
			return nil, mtgErrors.NewSyntaxError(dir, "more", "fewer")
		}
		word := "or more"
		if dir.Kind == token.KindFewer {
			word = "or fewer"
		}
		cmp = ast.NewText(ast.KindComparison, word, or.Span.Join(dir.Span))
	}

	var typ *ast.Node
	if t, ok := c.Accept(token.KindCounterType); ok {
		typ = ast.NewText(ast.KindCounterType, strings.ToLower(t.Text), t.Span)
	}

	if tok, ok := c.Accept(token.KindCounter); !ok {
		return nil, mtgErrors.NewSyntaxError(tok, "counter", "counters")
	}

	if _, ok := c.Accept(token.KindOn); ok {
		if tok, ok := c.Accept(token.KindSelf); !ok {
			return nil, mtgErrors.NewSyntaxError(tok, "it")
		}
	}

	return ast.New(ast.KindCounters, c.SpanFrom(start), count, typ, cmp), nil
}

// StartsKeywordRef reports whether t is a keyword ability.
func (Rules) StartsKeywordRef(t token.Token) bool {
	return t.Is(token.KindAbility)
}

// StartsCounters reports whether t can begin a counter count.
func (Rules) StartsCounters(t token.Token) bool {
	return t.Is(token.KindNumber) || isIndefinite(t)
}

func isIndefinite(t token.Token) bool {
	if !t.Is(token.KindDeterminer) {
		return false
	}
	w := strings.ToLower(t.Text)
	return w == "a" || w == "an"
}

func text(kind ast.Kind, tok token.Token) *ast.Node {
	return ast.NewText(kind, strings.ToLower(tok.Text), tok.Span)
}
