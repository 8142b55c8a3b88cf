package errors

import (
	"fmt"
	"strings"

	"demystify-mtg/demystify/pkg/mtg/token"
)

// ExtractContext renders the source lines around pos for error display.
// The error line is marked with "->" and a caret is drawn under the column.
func ExtractContext(source string, pos token.Pos, contextLines int) string {
	if !pos.IsValid() || source == "" {
		return ""
	}

	lines := strings.Split(source, "\n")

	errorLine := pos.Line - 1 // Convert to 0-based index
	if errorLine >= len(lines) {
		return ""
	}
	startLine := errorLine - contextLines
	endLine := errorLine + contextLines

	if startLine < 0 {
		startLine = 0
	}
	if endLine >= len(lines) {
		endLine = len(lines) - 1
	}

	var sb strings.Builder
	maxLineNumWidth := len(fmt.Sprintf("%d", endLine+1))

	for i := startLine; i <= endLine; i++ {
		lineNumStr := fmt.Sprintf("%*d", maxLineNumWidth, i+1)
		prefix := "  "
		if i == errorLine {
			prefix = "->"
		}

		sb.WriteString(fmt.Sprintf("%s %s | %s\n", prefix, lineNumStr, lines[i]))

		if i == errorLine && pos.Column > 0 {
			padding := strings.Repeat(" ", pos.Column-1)
			sb.WriteString(fmt.Sprintf("   %s | %s^\n", strings.Repeat(" ", maxLineNumWidth), padding))
		}
	}

	return sb.String()
}

// WithSource returns err with its Context rendered from the source text.
// Errors that are not *Error are returned unchanged.
func WithSource(err error, source string) error {
	e, ok := err.(*Error)
	if !ok {
		return err
	}
	out := *e
	out.Context = ExtractContext(source, e.Pos, 0)
	return &out
}
