package parser

import (
	"demystify-mtg/demystify/pkg/mtg/ast"
	"demystify-mtg/demystify/pkg/mtg/token"
)

// desugar maps shorthand tokens to their canonical expansion. Every
// synthetic node of an expansion carries the span of the shorthand token.
var desugar = map[token.Kind]func(token.Span) *ast.Node{
	// "dies": put into exactly one graveyard from the battlefield.
	token.KindDie: func(s token.Span) *ast.Node {
		return ast.New(ast.KindEnter, s,
			ast.New(ast.KindZoneSet, s,
				ast.NewNumber(1, s),
				ast.NewMarker(ast.KindGraveyard, s),
			),
			ast.New(ast.KindFrom, s,
				ast.NewMarker(ast.KindBattlefield, s),
			),
		)
	},
}

// expand returns the expansion of a shorthand token.
func expand(tok token.Token) (*ast.Node, bool) {
	fn, ok := desugar[tok.Kind]
	if !ok {
		return nil, false
	}
	return fn(tok.Span), true
}

// Expand returns the canonical tree a shorthand token kind lowers to,
// spanning span. It returns false for kinds that are not shorthands.
func Expand(kind token.Kind, span token.Span) (*ast.Node, bool) {
	return expand(token.Token{Kind: kind, Span: span})
}

// marker builds a payload-free terminal from the token it stands for.
func marker(kind ast.Kind, tok token.Token) *ast.Node {
	return ast.NewMarker(kind, tok.Span)
}
