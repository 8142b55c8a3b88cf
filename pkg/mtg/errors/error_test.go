package errors

import (
	"fmt"
	"strings"
	"testing"

	"demystify-mtg/demystify/pkg/mtg/token"
)

func word(kind token.Kind, text string, offset int) token.Token {
	return token.Token{
		Kind: kind,
		Text: text,
		Span: token.Span{
			Start: token.Pos{Offset: offset, Line: 1, Column: offset + 1},
			End:   token.Pos{Offset: offset + len(text), Line: 1, Column: offset + len(text) + 1},
		},
	}
}

func TestNewSyntaxError(t *testing.T) {
	err := NewSyntaxError(word(token.KindWord, "inn", 9), "in", "out")

	if err.Type != ErrorTypeSyntax {
		t.Errorf("Type = %q, want %q", err.Type, ErrorTypeSyntax)
	}
	if err.Pos.Column != 10 {
		t.Errorf("Pos.Column = %d, want 10", err.Pos.Column)
	}
	if want := `unexpected "inn", expected in or out`; err.Message != want {
		t.Errorf("Message = %q, want %q", err.Message, want)
	}
	if err.Suggestion != "Did you mean 'in'?" {
		t.Errorf("Suggestion = %q", err.Suggestion)
	}
}

func TestNewSyntaxError_EOF(t *testing.T) {
	eof := token.Token{Kind: token.KindEOF, Span: token.Span{Start: token.Pos{Offset: 1, Line: 1, Column: 2}}}
	err := NewSyntaxError(eof, "enters", "leaves", "dies")

	if !strings.Contains(err.Message, "end of clause") {
		t.Errorf("Message = %q, want mention of end of clause", err.Message)
	}
	if !strings.Contains(err.Message, "enters, leaves or dies") {
		t.Errorf("Message = %q, want joined alternatives", err.Message)
	}
	if err.Suggestion != "" {
		t.Errorf("Suggestion = %q, want none at end of clause", err.Suggestion)
	}
	if !strings.Contains(err.Error(), "at 1:2") {
		t.Errorf("Error() = %q, want position", err.Error())
	}
}

func TestIsSyntax(t *testing.T) {
	syntax := NewSyntaxError(word(token.KindWord, "x", 0), "in")
	wrapped := fmt.Errorf("card %q: %w", "Test", syntax)
	limit := &Error{Type: ErrorTypeLimit, Message: "too long"}

	if !IsSyntax(syntax) || !IsSyntax(wrapped) {
		t.Error("IsSyntax() = false for a syntax error")
	}
	if IsSyntax(limit) || IsSyntax(fmt.Errorf("plain")) {
		t.Error("IsSyntax() = true for a non-syntax error")
	}
	if !HasType(limit, ErrorTypeLimit) {
		t.Error("HasType(limit) = false")
	}
}

func TestSuggestKeyword(t *testing.T) {
	tests := []struct {
		word     string
		expected []string
		want     string
	}{
		{"entres", []string{"enters", "leaves"}, "Did you mean 'enters'?"},
		{"levaes", []string{"enters", "leaves"}, "Did you mean 'leaves'?"},
		{"creature", []string{"in", "out"}, ""},
		{"in", []string{"in", "out"}, ""},
		{"", []string{"in"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := SuggestKeyword(tt.word, tt.expected); got != tt.want {
				t.Errorf("SuggestKeyword(%q) = %q, want %q", tt.word, got, tt.want)
			}
		})
	}
}

func TestExtractContext(t *testing.T) {
	ctx := ExtractContext("~ phases inn", token.Pos{Offset: 9, Line: 1, Column: 10}, 0)
	lines := strings.Split(strings.TrimRight(ctx, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("context has %d lines, want 2:\n%s", len(lines), ctx)
	}
	if !strings.HasPrefix(lines[0], "-> 1 | ~ phases inn") {
		t.Errorf("line 0 = %q", lines[0])
	}
	caret := strings.Index(lines[1], "^")
	bar := strings.Index(lines[1], "| ")
	if caret-(bar+2) != 9 {
		t.Errorf("caret at column %d, want 9 after the bar: %q", caret-(bar+2), lines[1])
	}
}

func TestWithSource(t *testing.T) {
	err := NewSyntaxError(word(token.KindWord, "inn", 9), "in", "out")
	got := WithSource(err, "~ phases inn")

	e, ok := got.(*Error)
	if !ok {
		t.Fatalf("WithSource() returned %T", got)
	}
	if e.Context == "" {
		t.Error("Context should be rendered")
	}
	if err.Context != "" {
		t.Error("WithSource() must not modify the original error")
	}

	plain := fmt.Errorf("plain")
	if WithSource(plain, "text") != plain {
		t.Error("WithSource() should return non-*Error values unchanged")
	}
}

func TestErrorList(t *testing.T) {
	el := NewErrorList()
	if el.ToError() != nil {
		t.Error("empty list ToError() should be nil")
	}

	el.AddError(ErrorTypeSyntax, "bad", token.Pos{Line: 1, Column: 1})
	el.AddError(ErrorTypeLimit, "long", token.Pos{})

	if el.Count() != 2 {
		t.Errorf("Count() = %d, want 2", el.Count())
	}
	if len(el.ByType(ErrorTypeSyntax)) != 1 {
		t.Error("ByType(syntax) should return 1 error")
	}
	if el.HasErrorType(ErrorTypeIO) {
		t.Error("HasErrorType(io) = true")
	}
	if !strings.Contains(el.Error(), "Found 2 error(s)") {
		t.Errorf("Error() = %q", el.Error())
	}
}
