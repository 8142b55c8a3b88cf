package parser

import (
	"fmt"

	"demystify-mtg/demystify/pkg/mtg/ast"
	mtgErrors "demystify-mtg/demystify/pkg/mtg/errors"
	"demystify-mtg/demystify/pkg/mtg/token"
)

// DefaultMaxTokens is the token limit applied by ParseClause unless
// changed with WithMaxTokens.
const DefaultMaxTokens = 256

// Productions are the grammar rules the trigger parser delegates to.
// Each production reads from the cursor and returns a finished subtree,
// which the parser attaches as a child without looking inside it.
// Errors returned by a production are passed to the caller unchanged.
type Productions interface {
	// Subset parses the object selector that leads every trigger.
	Subset(c *token.Cursor) (*ast.Node, error)
	// ZoneSubset parses a zone selector (destination or source of a move).
	ZoneSubset(c *token.Cursor) (*ast.Node, error)
	// KeywordRef parses a reference to a keyword ability.
	KeywordRef(c *token.Cursor) (*ast.Node, error)
	// HasCounters parses a counter count. The HAS token is already consumed.
	HasCounters(c *token.Cursor) (*ast.Node, error)

	// StartsKeywordRef reports whether t can begin a keyword reference.
	StartsKeywordRef(t token.Token) bool
	// StartsCounters reports whether t can begin a counter count.
	StartsCounters(t token.Token) bool
}

// Parser parses trigger clauses into TRIGGER-rooted trees.
// A Parser holds configuration only, so one instance can be used by any
// number of goroutines as long as each parse has its own Cursor.
type Parser struct {
	prods     Productions
	maxTokens int  // Maximum clause length for ParseClause (0 disables)
	strict    bool // Reject trailing punctuation after the trigger
}

// NewParser creates a parser that delegates to the given productions.
func NewParser(prods Productions) *Parser {
	return &Parser{
		prods:     prods,
		maxTokens: DefaultMaxTokens,
		strict:    false,
	}
}

// WithMaxTokens sets the maximum number of tokens ParseClause accepts.
// A value of 0 disables the limit.
func (p *Parser) WithMaxTokens(n int) *Parser {
	p.maxTokens = n
	return p
}

// WithStrictMode makes ParseClause reject trailing commas and periods
// after the trigger instead of skipping them.
func (p *Parser) WithStrictMode(strict bool) *Parser {
	p.strict = strict
	return p
}

// ParseClause parses a complete trigger clause. Unlike ParseTrigger it
// requires every token to be consumed; leftover tokens are reported as a
// syntax error at the first one.
func (p *Parser) ParseClause(tokens []token.Token) (*ast.Node, error) {
	c := token.NewCursor(tokens)

	if p.maxTokens > 0 && c.Len() > p.maxTokens {
		return nil, &mtgErrors.Error{
			Type:    mtgErrors.ErrorTypeLimit,
			Message: fmt.Sprintf("clause has %d tokens, maximum is %d", c.Len(), p.maxTokens),
			Pos:     c.Pos(),
		}
	}

	tree, err := p.ParseTrigger(c)
	if err != nil {
		return nil, err
	}

	if !p.strict {
		for {
			if _, ok := c.Accept(token.KindComma, token.KindPeriod); !ok {
				break
			}
		}
	}
	if !c.AtEnd() {
		return nil, mtgErrors.NewSyntaxError(c.Peek(), "end of clause")
	}

	return tree, nil
}
