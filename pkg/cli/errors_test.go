package cli

import (
	"errors"
	"fmt"
	"testing"

	mtgErrors "demystify-mtg/demystify/pkg/mtg/errors"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("format", "unknown output format")

	expected := "config error in format: unknown output format"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestCommandError(t *testing.T) {
	inner := errors.New("boom")
	err := NewCommandError("parse", inner)

	if err.Error() != "command parse failed: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("CommandError should unwrap to the inner error")
	}
}

func TestExitCode(t *testing.T) {
	syntax := &mtgErrors.Error{Type: mtgErrors.ErrorTypeSyntax, Message: "bad"}
	lexical := &mtgErrors.Error{Type: mtgErrors.ErrorTypeLexical, Message: "bad"}
	io := &mtgErrors.Error{Type: mtgErrors.ErrorTypeIO, Message: "bad"}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"syntax", syntax, ExitParseError},
		{"wrapped lexical", NewCommandError("parse", lexical), ExitParseError},
		{"batch failures", fmt.Errorf("run: %w", &ParseFailure{Failed: 1, Total: 3}), ExitParseError},
		{"io", io, ExitError},
		{"config", NewConfigError("format", "bad"), ExitError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseFailure(t *testing.T) {
	err := &ParseFailure{Failed: 2, Total: 10}
	if err.Error() != "2 of 10 clauses failed to parse" {
		t.Errorf("Error() = %q", err.Error())
	}
}
