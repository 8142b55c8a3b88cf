package token

// Cursor is a forward-only reader over an immutable token sequence.
// It never rewinds: productions choose between alternatives by looking
// ahead with Peek and PeekN before they consume anything.
//
// A Cursor is owned by one parse and must not be shared between goroutines.
type Cursor struct {
	tokens []Token
	index  int
	eof    Token
}

// NewCursor returns a cursor positioned at the first token.
// A trailing KindEOF token in tokens is treated as the end of input.
func NewCursor(tokens []Token) *Cursor {
	if n := len(tokens); n > 0 && tokens[n-1].Kind == KindEOF {
		eof := tokens[n-1]
		return &Cursor{tokens: tokens[:n-1], eof: eof}
	}

	end := Pos{Offset: 0, Line: 1, Column: 1}
	if n := len(tokens); n > 0 {
		end = tokens[n-1].Span.End
	}
	return &Cursor{
		tokens: tokens,
		eof:    Token{Kind: KindEOF, Span: Span{Start: end, End: end}},
	}
}

// Peek returns the next token without consuming it.
// At the end of input it returns a KindEOF token.
func (c *Cursor) Peek() Token {
	return c.PeekN(0)
}

// PeekN returns the token n positions ahead (PeekN(0) == Peek()).
func (c *Cursor) PeekN(n int) Token {
	if i := c.index + n; i < len(c.tokens) {
		return c.tokens[i]
	}
	return c.eof
}

// Next consumes and returns the next token.
// At the end of input it returns KindEOF and does not advance.
func (c *Cursor) Next() Token {
	t := c.Peek()
	if c.index < len(c.tokens) {
		c.index++
	}
	return t
}

// Accept consumes the next token if it has one of the given kinds.
func (c *Cursor) Accept(kinds ...Kind) (Token, bool) {
	t := c.Peek()
	if t.Is(kinds...) {
		c.index++
		return t, true
	}
	return t, false
}

// AtEnd returns true if all tokens have been consumed.
func (c *Cursor) AtEnd() bool {
	return c.index >= len(c.tokens)
}

// Index returns the number of tokens consumed so far.
func (c *Cursor) Index() int {
	return c.index
}

// Len returns the number of tokens in the sequence, excluding EOF.
func (c *Cursor) Len() int {
	return len(c.tokens)
}

// Pos returns the position of the next token.
func (c *Cursor) Pos() Pos {
	return c.Peek().Pos()
}

// Last returns the most recently consumed token.
// Before anything is consumed it returns the EOF token.
func (c *Cursor) Last() Token {
	if c.index == 0 {
		return c.eof
	}
	return c.tokens[c.index-1]
}

// SpanFrom returns the span covering start through the last consumed token.
func (c *Cursor) SpanFrom(start Token) Span {
	if c.index == 0 {
		return start.Span
	}
	return start.Span.Join(c.Last().Span)
}
