package parser

import (
	stderrors "errors"
	"strconv"
	"strings"
	"sync"
	"testing"

	"demystify-mtg/demystify/pkg/mtg/ast"
	mtgErrors "demystify-mtg/demystify/pkg/mtg/errors"
	"demystify-mtg/demystify/pkg/mtg/token"
)

var (
	errSubset = stderrors.New("stub: subset expected")
	errZone   = stderrors.New("stub: zone expected")
)

var testKinds = map[string]token.Kind{
	"~":        token.KindSelf,
	"creature": token.KindObjectType,
	"enters":   token.KindEnter,
	"is":       token.KindIs,
	"are":      token.KindAre,
	"put":      token.KindPut,
	"into":     token.KindInto,
	"onto":     token.KindOnto,
	"from":     token.KindFrom,
	"anywhere": token.KindAnywhere,
	"leaves":   token.KindLeave,
	"dies":     token.KindDie,
	"phases":   token.KindPhase,
	"in":       token.KindIn,
	"out":      token.KindOut,
	"has":      token.KindHas,

	"battlefield": token.KindZone,
	"graveyard":   token.KindZone,
	"exile":       token.KindZone,
	"flying":      token.KindAbility,
	"two":         token.KindNumber,
	"+1/+1":       token.KindCounterType,
	"counters":    token.KindCounter,
	".":           token.KindPeriod,
}

// tokens splits src on spaces and classifies each word with testKinds.
func tokens(src string) []token.Token {
	var out []token.Token
	offset := 0
	for _, w := range strings.Split(src, " ") {
		if w == "" {
			offset++
			continue
		}
		kind, ok := testKinds[w]
		if !ok {
			kind = token.KindWord
		}
		out = append(out, token.Token{
			Kind: kind,
			Text: w,
			Span: token.Span{
				Start: token.Pos{Offset: offset, Line: 1, Column: offset + 1},
				End:   token.Pos{Offset: offset + len(w), Line: 1, Column: offset + len(w) + 1},
			},
		})
		offset += len(w) + 1
	}
	return out
}

// stubProductions implements just enough of each production to drive the
// trigger grammar.
type stubProductions struct{}

func (stubProductions) Subset(c *token.Cursor) (*ast.Node, error) {
	start := c.Peek()
	var parts []*ast.Node
	for {
		tok, ok := c.Accept(token.KindSelf, token.KindObjectType)
		if !ok {
			break
		}
		kind := ast.KindObjectType
		if tok.Kind == token.KindSelf {
			kind = ast.KindSelf
		}
		parts = append(parts, ast.NewText(kind, tok.Text, tok.Span))
	}
	if len(parts) == 0 {
		return nil, errSubset
	}
	return ast.New(ast.KindSubset, c.SpanFrom(start), parts...), nil
}

func (stubProductions) ZoneSubset(c *token.Cursor) (*ast.Node, error) {
	tok, ok := c.Accept(token.KindZone)
	if !ok {
		return nil, errZone
	}
	return ast.NewMarker(ast.Kind(strings.ToUpper(tok.Text)), tok.Span), nil
}

func (stubProductions) KeywordRef(c *token.Cursor) (*ast.Node, error) {
	tok := c.Next()
	return ast.NewText(ast.KindKeyword, tok.Text, tok.Span), nil
}

func (stubProductions) HasCounters(c *token.Cursor) (*ast.Node, error) {
	start := c.Next()
	num := ast.NewNumber(2, start.Span)
	typ, ok := c.Accept(token.KindCounterType)
	if !ok {
		return nil, mtgErrors.NewSyntaxError(typ, "counter type")
	}
	c.Accept(token.KindCounter)
	return ast.New(ast.KindCounters, c.SpanFrom(start), num, ast.NewText(ast.KindCounterType, typ.Text, typ.Span)), nil
}

func (stubProductions) StartsKeywordRef(t token.Token) bool { return t.Kind == token.KindAbility }
func (stubProductions) StartsCounters(t token.Token) bool   { return t.Kind == token.KindNumber }

func newTestParser() *Parser {
	return NewParser(stubProductions{})
}

const dieEvent = "(EVENT (ENTER (ZONE_SET NUMBER=1 GRAVEYARD) (FROM BATTLEFIELD)))"

func TestParseClause_Shapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"enters", "~ enters battlefield", "(TRIGGER (SUBSET SELF[~]) (EVENT (ENTER BATTLEFIELD)))"},
		{"enters from zone", "~ enters battlefield from graveyard", "(TRIGGER (SUBSET SELF[~]) (EVENT (ENTER BATTLEFIELD (FROM GRAVEYARD))))"},
		{"enters from anywhere", "~ enters battlefield from anywhere", "(TRIGGER (SUBSET SELF[~]) (EVENT (ENTER BATTLEFIELD (FROM ANYWHERE))))"},
		{"is put into", "~ is put into graveyard from battlefield", "(TRIGGER (SUBSET SELF[~]) (EVENT (ENTER GRAVEYARD (FROM BATTLEFIELD))))"},
		{"are put onto", "creature creature are put onto battlefield", "(TRIGGER (SUBSET OBJ_TYPE[creature] OBJ_TYPE[creature]) (EVENT (ENTER BATTLEFIELD)))"},
		{"leaves", "~ leaves battlefield", "(TRIGGER (SUBSET SELF[~]) (EVENT (LEAVE BATTLEFIELD)))"},
		{"dies", "~ dies", "(TRIGGER (SUBSET SELF[~]) " + dieEvent + ")"},
		{"phases in", "~ phases in", "(TRIGGER (SUBSET SELF[~]) (EVENT (PHASE IN)))"},
		{"phases out", "~ phases out", "(TRIGGER (SUBSET SELF[~]) (EVENT (PHASE OUT)))"},
		{"has keyword", "~ has flying", "(TRIGGER (SUBSET SELF[~]) (CONDITION (HAS KEYWORD[flying])))"},
		{"has counters", "~ has two +1/+1 counters", "(TRIGGER (SUBSET SELF[~]) (CONDITION (COUNTERS NUMBER=2 COUNTER_TYPE[+1/+1])))"},
	}

	p := newTestParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := p.ParseClause(tokens(tt.input))
			if err != nil {
				t.Fatalf("ParseClause(%q) failed: %v", tt.input, err)
			}
			if got := tree.String(); got != tt.want {
				t.Errorf("ParseClause(%q)\n got: %s\nwant: %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseClause_TriggerInvariants(t *testing.T) {
	inputs := []string{
		"~ enters battlefield",
		"~ is put into graveyard from anywhere",
		"~ leaves exile",
		"creature dies",
		"~ phases out",
		"~ has flying",
		"~ has two +1/+1 counters",
	}

	p := newTestParser()
	for _, input := range inputs {
		tree, err := p.ParseClause(tokens(input))
		if err != nil {
			t.Fatalf("ParseClause(%q) failed: %v", input, err)
		}
		if tree.Kind() != ast.KindTrigger {
			t.Errorf("%q: root kind = %s, want TRIGGER", input, tree.Kind())
		}
		if tree.Len() != 2 {
			t.Fatalf("%q: TRIGGER has %d children, want 2", input, tree.Len())
		}
		if tree.Child(0).Kind() != ast.KindSubset {
			t.Errorf("%q: first child = %s, want SUBSET", input, tree.Child(0).Kind())
		}
		if k := tree.Child(1).Kind(); k != ast.KindEvent && k != ast.KindCondition {
			t.Errorf("%q: second child = %s, want EVENT or CONDITION", input, k)
		}
	}
}

func TestParseClause_NoFromChild(t *testing.T) {
	for _, input := range []string{"~ enters battlefield", "~ is put into exile", "~ are put onto battlefield"} {
		tree, err := newTestParser().ParseClause(tokens(input))
		if err != nil {
			t.Fatalf("ParseClause(%q) failed: %v", input, err)
		}
		enter := tree.Child(1).Child(0)
		if enter.Kind() != ast.KindEnter {
			t.Fatalf("%q: inner kind = %s, want ENTER", input, enter.Kind())
		}
		if enter.Len() != 1 || enter.Find(ast.KindFrom) != nil {
			t.Errorf("%q: ENTER should have only the destination, got %s", input, enter)
		}
	}
}

func TestParseClause_FromAnywhere(t *testing.T) {
	tree, err := newTestParser().ParseClause(tokens("~ enters battlefield from anywhere"))
	if err != nil {
		t.Fatalf("ParseClause() failed: %v", err)
	}
	from := tree.Child(1).Child(0).Find(ast.KindFrom)
	if from == nil {
		t.Fatal("ENTER has no FROM child")
	}
	if from.Len() != 1 || from.Child(0).Kind() != ast.KindAnywhere {
		t.Errorf("FROM = %s, want (FROM ANYWHERE)", from)
	}
	if !from.Child(0).IsLeaf() {
		t.Error("ANYWHERE should be a terminal marker")
	}
}

func TestParseClause_DieIndependentOfSubset(t *testing.T) {
	p := newTestParser()
	for _, input := range []string{"~ dies", "creature dies", "creature creature dies"} {
		tree, err := p.ParseClause(tokens(input))
		if err != nil {
			t.Fatalf("ParseClause(%q) failed: %v", input, err)
		}
		if got := tree.Child(1).String(); got != dieEvent {
			t.Errorf("%q: event = %s, want %s", input, got, dieEvent)
		}
	}
}

func TestParseClause_DieSpans(t *testing.T) {
	toks := tokens("~ dies")
	die := toks[1]
	tree, err := newTestParser().ParseClause(toks)
	if err != nil {
		t.Fatalf("ParseClause() failed: %v", err)
	}

	enter := tree.Child(1).Child(0)
	ast.Inspect(enter, func(n *ast.Node) bool {
		if n.Span() != die.Span {
			t.Errorf("%s span = %s, want %s", n.Kind(), n.Span(), die.Span)
		}
		return true
	})
}

func TestParseClause_EnterAndDieAgree(t *testing.T) {
	p := newTestParser()
	for _, input := range []string{"~ enters battlefield", "~ dies"} {
		tree, err := p.ParseClause(tokens(input))
		if err != nil {
			t.Fatalf("ParseClause(%q) failed: %v", input, err)
		}
		event := tree.Child(1)
		if event.Kind() != ast.KindEvent || event.Child(0).Kind() != ast.KindEnter {
			t.Errorf("%q: got %s, want an EVENT wrapping ENTER", input, event)
		}
	}
}

func TestParseClause_PhaseDropsKeyword(t *testing.T) {
	tree, err := newTestParser().ParseClause(tokens("~ phases out"))
	if err != nil {
		t.Fatalf("ParseClause() failed: %v", err)
	}
	phase := tree.Child(1).Child(0)
	if phase.Kind() != ast.KindPhase || phase.Len() != 1 {
		t.Fatalf("got %s, want (PHASE OUT)", phase)
	}
	if phase.Child(0).Kind() != ast.KindOut {
		t.Errorf("direction = %s, want OUT", phase.Child(0).Kind())
	}
	if phase.Child(0).Text() != "" {
		t.Errorf("direction marker should carry no text, got %q", phase.Child(0).Text())
	}
}

func TestParseClause_HasAsymmetry(t *testing.T) {
	p := newTestParser()

	keyword, err := p.ParseClause(tokens("~ has flying"))
	if err != nil {
		t.Fatalf("ParseClause(keyword) failed: %v", err)
	}
	if k := keyword.Child(1).Child(0).Kind(); k != ast.KindHas {
		t.Errorf("keyword condition inner = %s, want HAS", k)
	}

	counters, err := p.ParseClause(tokens("~ has two +1/+1 counters"))
	if err != nil {
		t.Fatalf("ParseClause(counters) failed: %v", err)
	}
	cond := counters.Child(1)
	if k := cond.Child(0).Kind(); k != ast.KindCounters {
		t.Errorf("counter condition inner = %s, want the counter subtree", k)
	}
	ast.Inspect(cond, func(n *ast.Node) bool {
		if n.Kind() == ast.KindHas {
			t.Errorf("counter condition contains a HAS node: %s", cond)
		}
		return true
	})
}

func TestParseClause_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCol   int
		wantFound token.Kind
		wantExp   string
	}{
		{"subset only", "~", 2, token.KindEOF, "dies"},
		{"unknown verb", "~ flies", 3, token.KindWord, "enters"},
		{"is without put", "~ is taken", 6, token.KindWord, "put"},
		{"put without into", "~ is put under battlefield", 10, token.KindWord, "onto"},
		{"phase without direction", "~ phases sideways", 10, token.KindWord, "out"},
		{"phase at end", "~ phases", 9, token.KindEOF, "in"},
		{"has nothing", "~ has banana", 7, token.KindWord, "a keyword ability"},
		{"trailing tokens", "~ dies now", 8, token.KindWord, "end of clause"},
	}

	p := newTestParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := p.ParseClause(tokens(tt.input))
			if tree != nil {
				t.Errorf("ParseClause(%q) returned a tree with an error: %s", tt.input, tree)
			}
			if !mtgErrors.IsSyntax(err) {
				t.Fatalf("ParseClause(%q) error = %v, want a syntax error", tt.input, err)
			}

			var e *mtgErrors.Error
			stderrors.As(err, &e)
			if e.Pos.Column != tt.wantCol {
				t.Errorf("Pos.Column = %d, want %d", e.Pos.Column, tt.wantCol)
			}
			if e.Found.Kind != tt.wantFound {
				t.Errorf("Found.Kind = %s, want %s", e.Found.Kind, tt.wantFound)
			}
			found := false
			for _, exp := range e.Expected {
				if exp == tt.wantExp {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected = %v, want it to include %q", e.Expected, tt.wantExp)
			}
		})
	}
}

func TestParseClause_Suggestion(t *testing.T) {
	_, err := newTestParser().ParseClause(tokens("~ entres battlefield"))
	var e *mtgErrors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("error = %v, want *errors.Error", err)
	}
	if e.Suggestion != "Did you mean 'enters'?" {
		t.Errorf("Suggestion = %q", e.Suggestion)
	}
}

func TestParseClause_CollaboratorErrorsPassThrough(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"subset", "banana enters battlefield", errSubset},
		{"destination", "~ enters nowhere", errZone},
		{"source", "~ enters battlefield from", errZone},
		{"departure", "~ leaves", errZone},
	}

	p := newTestParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := p.ParseClause(tokens(tt.input))
			if tree != nil {
				t.Errorf("got a tree with an error: %s", tree)
			}
			if err != tt.want {
				t.Errorf("error = %v, want %v unchanged", err, tt.want)
			}
			if mtgErrors.IsSyntax(err) {
				t.Error("collaborator error was converted to a syntax error")
			}
		})
	}
}

func TestParseTrigger_LeavesRemainder(t *testing.T) {
	c := token.NewCursor(tokens("~ dies now"))
	tree, err := newTestParser().ParseTrigger(c)
	if err != nil {
		t.Fatalf("ParseTrigger() failed: %v", err)
	}
	if tree.Kind() != ast.KindTrigger {
		t.Errorf("root = %s, want TRIGGER", tree.Kind())
	}
	if c.Index() != 2 {
		t.Errorf("cursor index = %d, want 2", c.Index())
	}
	if c.Peek().Text != "now" {
		t.Errorf("next token = %s, want the unparsed word", c.Peek())
	}
}

func TestParseClause_TrailingPunctuation(t *testing.T) {
	toks := tokens("~ dies .")

	if _, err := newTestParser().ParseClause(toks); err != nil {
		t.Errorf("ParseClause() with trailing period failed: %v", err)
	}

	_, err := newTestParser().WithStrictMode(true).ParseClause(toks)
	if !mtgErrors.IsSyntax(err) {
		t.Errorf("strict ParseClause() error = %v, want a syntax error", err)
	}
}

func TestParseClause_MaxTokens(t *testing.T) {
	p := newTestParser().WithMaxTokens(2)

	_, err := p.ParseClause(tokens("~ enters battlefield"))
	if !mtgErrors.HasType(err, mtgErrors.ErrorTypeLimit) {
		t.Fatalf("error = %v, want a limit error", err)
	}

	if _, err := p.ParseClause(tokens("~ dies")); err != nil {
		t.Errorf("ParseClause() within limit failed: %v", err)
	}

	if _, err := p.WithMaxTokens(0).ParseClause(tokens("~ enters battlefield from anywhere")); err != nil {
		t.Errorf("ParseClause() with no limit failed: %v", err)
	}
}

func TestParseClause_ExplicitEOF(t *testing.T) {
	toks := tokens("~")
	eof := token.Pos{Offset: 5, Line: 2, Column: 1}
	toks = append(toks, token.Token{Kind: token.KindEOF, Span: token.Span{Start: eof, End: eof}})

	_, err := newTestParser().ParseClause(toks)
	var e *mtgErrors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("error = %v, want *errors.Error", err)
	}
	if e.Pos != eof {
		t.Errorf("Pos = %v, want the EOF token position %v", e.Pos, eof)
	}
}

func TestParser_Concurrent(t *testing.T) {
	p := newTestParser()
	inputs := []string{"~ dies", "~ has flying", "~ phases in", "~ leaves exile"}

	var wg sync.WaitGroup
	errs := make(chan error, 4*len(inputs))
	for i := 0; i < 4; i++ {
		for _, input := range inputs {
			wg.Add(1)
			go func(input string) {
				defer wg.Done()
				if _, err := p.ParseClause(tokens(input)); err != nil {
					errs <- err
				}
			}(input)
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent parse failed: %v", err)
	}
}

func TestEventForm(t *testing.T) {
	tests := []struct {
		kind token.Kind
		want string
	}{
		{token.KindEnter, "destination"},
		{token.KindIs, "destination"},
		{token.KindAre, "destination"},
		{token.KindLeave, "departure"},
		{token.KindDie, "die"},
		{token.KindPhase, "phase"},
		{token.KindHas, ""},
	}

	for _, tt := range tests {
		if got := EventForm(token.Token{Kind: tt.kind}); got != tt.want {
			t.Errorf("EventForm(%s) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestExpand(t *testing.T) {
	span := token.Span{Start: token.Pos{Line: 1, Column: 3}, End: token.Pos{Offset: 4, Line: 1, Column: 7}}

	node, ok := Expand(token.KindDie, span)
	if !ok {
		t.Fatal("Expand(DIE) = false")
	}
	if got, want := "(EVENT "+node.String()+")", dieEvent; got != want {
		t.Errorf("Expand(DIE) = %s, want %s", got, want)
	}

	n, _ := node.Child(0).Child(0).Value()
	if got := strconv.Itoa(n); got != "1" {
		t.Errorf("ZONE_SET number = %s, want 1", got)
	}

	if _, ok := Expand(token.KindEnter, span); ok {
		t.Error("Expand(ENTER) should not be a shorthand")
	}

	a, _ := Expand(token.KindDie, span)
	b, _ := Expand(token.KindDie, span)
	if a == b {
		t.Error("Expand should build a fresh tree each call")
	}
}
