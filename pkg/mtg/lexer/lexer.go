package lexer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	mtgErrors "demystify-mtg/demystify/pkg/mtg/errors"
	"demystify-mtg/demystify/pkg/mtg/token"
)

// ptPattern matches power/toughness counter types such as +1/+1 and -0/-2.
var ptPattern = regexp.MustCompile(`^[+-]\d+/[+-]\d+$`)

// Lexer turns rules text into classified tokens.
type Lexer struct {
	selfNames [][]token.Token // Scanned card names that lex as SELF
}

// New creates a lexer with no card names.
func New() *Lexer {
	return &Lexer{}
}

// WithSelfNames makes occurrences of the given card names lex as a single
// SELF token, the same way "~" does. Names are scanned like rules text, so
// punctuation inside a name ("Thalia, Guardian of Thraben") must appear in
// the text as well. Names that do not scan, or do not start with a word,
// are ignored.
func (l *Lexer) WithSelfNames(names ...string) *Lexer {
	for _, name := range names {
		s := &scanner{src: name, line: 1, col: 1}
		toks, err := s.scan()
		if err != nil || len(toks) == 0 || toks[0].Kind != token.KindWord {
			continue
		}
		l.selfNames = append(l.selfNames, toks)
	}
	return l
}

// Lex tokenizes src with a default lexer.
func Lex(src string) ([]token.Token, error) {
	return New().Lex(src)
}

// Lex tokenizes src. The returned slice always ends with a KindEOF token
// positioned at the end of the text. Reminder text in parentheses is
// skipped. Words that are not in the dictionary become KindWord tokens.
func (l *Lexer) Lex(src string) ([]token.Token, error) {
	s := &scanner{src: src, line: 1, col: 1}

	raw, err := s.scan()
	if err != nil {
		return nil, err
	}

	out := make([]token.Token, 0, len(raw)+1)
	for i := 0; i < len(raw); {
		if raw[i].Kind != token.KindWord {
			out = append(out, raw[i])
			i++
			continue
		}
		if n := matchName(raw[i:], l.selfNames); n > 0 {
			out = append(out, l.join(src, raw[i:i+n], token.KindSelf))
			i += n
			continue
		}
		if n := matchAny(raw[i:], phrases); n > 0 {
			kind := dictionary[normalize(joinWords(raw[i:i+n]))]
			out = append(out, l.join(src, raw[i:i+n], kind))
			i += n
			continue
		}
		out = append(out, classify(raw[i]))
		i++
	}

	markCounterTypes(out)

	end := s.pos()
	out = append(out, token.Token{Kind: token.KindEOF, Span: token.Span{Start: end, End: end}})
	return out, nil
}

// join merges consecutive word tokens into one, keeping the source text
// between them.
func (l *Lexer) join(src string, words []token.Token, kind token.Kind) token.Token {
	span := words[0].Span.Join(words[len(words)-1].Span)
	return token.Token{
		Kind: kind,
		Text: src[span.Start.Offset:span.End.Offset],
		Span: span,
	}
}

// matchAny returns the length of the first candidate that words start
// with, or 0.
func matchAny(words []token.Token, candidates [][]string) int {
	for _, cand := range candidates {
		if len(cand) > len(words) {
			continue
		}
		ok := true
		for i, w := range cand {
			if words[i].Kind != token.KindWord || normalize(words[i].Text) != w {
				ok = false
				break
			}
		}
		if ok {
			return len(cand)
		}
	}
	return 0
}

// matchName returns the length of the longest name that toks start with,
// or 0. Words compare case-insensitively, punctuation by kind.
func matchName(toks []token.Token, names [][]token.Token) int {
	best := 0
	for _, name := range names {
		if len(name) > len(toks) || len(name) <= best {
			continue
		}
		ok := true
		for i, want := range name {
			if toks[i].Kind != want.Kind || normalize(toks[i].Text) != normalize(want.Text) {
				ok = false
				break
			}
		}
		if ok {
			best = len(name)
		}
	}
	return best
}

func joinWords(words []token.Token) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}

// classify assigns a kind to a single raw word.
func classify(t token.Token) token.Token {
	word := normalize(t.Text)
	if kind, ok := dictionary[word]; ok {
		t.Kind = kind
		return t
	}
	switch {
	case ptPattern.MatchString(word):
		t.Kind = token.KindCounterType
	default:
		if _, ok := NumberValue(word); ok {
			t.Kind = token.KindNumber
		}
	}
	return t
}

// markCounterTypes reclassifies named counters ("charge counter") and
// leaves every other word alone.
func markCounterTypes(toks []token.Token) {
	for i := 0; i+1 < len(toks); i++ {
		if toks[i+1].Kind == token.KindCounter && counterNames[normalize(toks[i].Text)] {
			toks[i].Kind = token.KindCounterType
		}
	}
}

// normalize lowercases a word and folds typographic apostrophes.
func normalize(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "’", "'"))
}

// scanner splits source text into words and punctuation while tracking
// positions.
type scanner struct {
	src       string
	off       int
	line, col int
}

func (s *scanner) pos() token.Pos {
	return token.Pos{Offset: s.off, Line: s.line, Column: s.col}
}

func (s *scanner) peek() (rune, int) {
	return utf8.DecodeRuneInString(s.src[s.off:])
}

func (s *scanner) advance() rune {
	r, size := s.peek()
	s.off += size
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return r
}

func (s *scanner) scan() ([]token.Token, error) {
	var out []token.Token
	for s.off < len(s.src) {
		r, _ := s.peek()
		start := s.pos()

		switch {
		case unicode.IsSpace(r):
			s.advance()
		case r == '(':
			if err := s.skipReminder(); err != nil {
				return nil, err
			}
		case r == ',':
			s.advance()
			out = append(out, token.Token{Kind: token.KindComma, Text: ",", Span: token.Span{Start: start, End: s.pos()}})
		case r == '.' || r == ';' || r == ':':
			s.advance()
			out = append(out, token.Token{Kind: token.KindPeriod, Text: string(r), Span: token.Span{Start: start, End: s.pos()}})
		case isWordRune(r):
			for s.off < len(s.src) {
				if r, _ := s.peek(); !isWordRune(r) {
					break
				}
				s.advance()
			}
			end := s.pos()
			out = append(out, token.Token{Kind: token.KindWord, Text: s.src[start.Offset:end.Offset], Span: token.Span{Start: start, End: end}})
		default:
			return nil, &mtgErrors.Error{
				Type:    mtgErrors.ErrorTypeLexical,
				Message: fmt.Sprintf("unexpected character %q", r),
				Pos:     start,
			}
		}
	}
	return out, nil
}

// skipReminder consumes a parenthesized reminder, which may nest.
func (s *scanner) skipReminder() error {
	start := s.pos()
	depth := 0
	for s.off < len(s.src) {
		switch s.advance() {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return nil
			}
		}
	}
	return &mtgErrors.Error{
		Type:    mtgErrors.ErrorTypeLexical,
		Message: "unterminated reminder text",
		Pos:     start,
	}
}

func isWordRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case '\'', '’', '-', '+', '/', '~', '{', '}':
		return true
	}
	return false
}
