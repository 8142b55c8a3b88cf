package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"demystify-mtg/demystify/pkg/mtg/token"
)

// ErrorType categorizes the type of error encountered while lexing or parsing.
type ErrorType string

const (
	ErrorTypeSyntax  ErrorType = "syntax"  // Tokens match no production
	ErrorTypeLexical ErrorType = "lexical" // Source text could not be tokenized
	ErrorTypeLimit   ErrorType = "limit"   // Input exceeds a configured bound
	ErrorTypeIO      ErrorType = "io"      // File I/O error
)

// Error represents a rich error with position, context, and suggestions.
type Error struct {
	Type       ErrorType   // Category of error
	Message    string      // Error message
	Pos        token.Pos   // Position of the first unmatched token
	Found      token.Token // Token found at Pos (KindEOF at end of input)
	Expected   []string    // Alternatives that would have matched
	Context    string      // Rendered source line with a caret
	Suggestion string      // Suggested fix (optional)
}

// Error implements the error interface.
// It returns a formatted error message with position and context.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s", e.Type, e.Message))

	if e.Pos.IsValid() {
		sb.WriteString(fmt.Sprintf(" at %s", e.Pos))
	}

	if e.Context != "" {
		sb.WriteString("\n  |\n")
		sb.WriteString(e.Context)
		sb.WriteString("  |")
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("\n  = suggestion: %s", e.Suggestion))
	}

	return sb.String()
}

// NewSyntaxError creates a syntax error for an unexpected token.
// The suggestion is filled in when the found word is close to one of the
// expected keywords.
func NewSyntaxError(found token.Token, expected ...string) *Error {
	return &Error{
		Type:       ErrorTypeSyntax,
		Message:    fmt.Sprintf("unexpected %s, expected %s", describe(found), joinAlternatives(expected)),
		Pos:        found.Pos(),
		Found:      found,
		Expected:   expected,
		Suggestion: SuggestKeyword(found.Text, expected),
	}
}

// IsSyntax returns true if err is, or wraps, an ErrorTypeSyntax error.
func IsSyntax(err error) bool {
	return HasType(err, ErrorTypeSyntax)
}

// HasType returns true if err is, or wraps, an *Error of the given type.
func HasType(err error, errType ErrorType) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type == errType
	}
	return false
}

func describe(t token.Token) string {
	if t.Kind == token.KindEOF {
		return "end of clause"
	}
	return fmt.Sprintf("%q", t.Text)
}

func joinAlternatives(alts []string) string {
	switch len(alts) {
	case 0:
		return "nothing"
	case 1:
		return alts[0]
	default:
		return strings.Join(alts[:len(alts)-1], ", ") + " or " + alts[len(alts)-1]
	}
}

// ErrorList represents a collection of errors, eg. from a batch of clauses.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*Error, 0),
	}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// AddError creates and adds a new error with the given parameters.
func (el *ErrorList) AddError(errType ErrorType, message string, pos token.Pos) {
	el.Add(&Error{
		Type:    errType,
		Message: message,
		Pos:     pos,
	})
}

// HasErrors returns true if the error list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Error implements the error interface.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d error(s):\n\n", el.Count()))

	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("Error %d:\n", i+1))
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}

	return sb.String()
}

// ToError returns nil if the error list is empty, otherwise the list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// ByType returns all errors of the given type.
func (el *ErrorList) ByType(errType ErrorType) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Type == errType {
			result = append(result, err)
		}
	}
	return result
}

// HasErrorType returns true if the list contains at least one error of the given type.
func (el *ErrorList) HasErrorType(errType ErrorType) bool {
	for _, err := range el.Errors {
		if err.Type == errType {
			return true
		}
	}
	return false
}
