package token

import "fmt"

// Kind represents the terminal symbol a word of rules text was classified as.
// Every surface form of a word maps to one kind, eg. both "enter" and
// "enters" are KindEnter.
type Kind string

const (
	KindEOF Kind = "EOF" // End of the token sequence

	// Event and condition keywords consumed directly by the trigger grammar.
	KindEnter    Kind = "ENTER"
	KindIs       Kind = "IS"
	KindAre      Kind = "ARE"
	KindPut      Kind = "PUT"
	KindInto     Kind = "INTO"
	KindOnto     Kind = "ONTO"
	KindFrom     Kind = "FROM"
	KindAnywhere Kind = "ANYWHERE"
	KindLeave    Kind = "LEAVE"
	KindDie      Kind = "DIE"
	KindPhase    Kind = "PHASE"
	KindIn       Kind = "IN"
	KindOut      Kind = "OUT"
	KindHas      Kind = "HAS"

	// Word classes used by the subset, zone-subset, keyword and counter
	// productions. The literal text tells members of a class apart.
	KindSelf        Kind = "SELF"         // ~, it
	KindDeterminer  Kind = "DETERMINER"   // a, an, another, each, target, the, that
	KindObjectType  Kind = "OBJ_TYPE"     // creature, artifact, permanent, card, ...
	KindPlayer      Kind = "PLAYER"       // you, opponent, player
	KindPlayerPoss  Kind = "PLAYER_POSS"  // your, opponent's, owner's
	KindZone        Kind = "ZONE"         // battlefield, graveyard, hand, ...
	KindAbility     Kind = "ABILITY"      // flying, first strike, ...
	KindNumber      Kind = "NUMBER"       // one, two, 3, no, ...
	KindCounterType Kind = "COUNTER_TYPE" // +1/+1, -1/-1, charge, ...
	KindCounter     Kind = "COUNTER"      // counter, counters
	KindOr          Kind = "OR"
	KindMore        Kind = "MORE"
	KindFewer       Kind = "FEWER"
	KindOn          Kind = "ON"
	KindComma       Kind = "COMMA"
	KindPeriod      Kind = "PERIOD"
	KindWord        Kind = "WORD" // Any word not in the dictionary
)

// Pos is a position in the source text. Offset is a 0-based byte offset,
// Line and Column are 1-based.
type Pos struct {
	Offset int
	Line   int
	Column int
}

// String returns "line:column".
func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid returns true if the position points into a source text.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

// Span is a half-open byte range [Start, End) of the source text.
type Span struct {
	Start Pos
	End   Pos
}

// Join returns the smallest span covering both s and other.
func (s Span) Join(other Span) Span {
	out := s
	if other.Start.Offset < out.Start.Offset {
		out.Start = other.Start
	}
	if other.End.Offset > out.End.Offset {
		out.End = other.End
	}
	return out
}

// String returns the span as "line:col-line:col".
func (s Span) String() string {
	return s.Start.String() + "-" + s.End.String()
}

// Token is a classified lexical unit. Tokens are immutable once produced.
type Token struct {
	Kind Kind   // Terminal symbol
	Text string // Literal source text
	Span Span   // Source range
}

// Pos returns the start position of the token.
func (t Token) Pos() Pos {
	return t.Span.Start
}

// Is returns true if the token has any of the given kinds.
func (t Token) Is(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// String returns a debug representation of the token.
func (t Token) String() string {
	if t.Kind == KindEOF {
		return "EOF"
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
}
