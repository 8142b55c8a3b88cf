package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles colors text output. Colors are only emitted when the writer is a
// terminal, so redirected output and test buffers get plain text.
type Styles struct {
	OK     lipgloss.Style
	Failed lipgloss.Style
	Muted  lipgloss.Style
}

// NewStyles creates styles that detect color support on w.
func NewStyles(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)
	return &Styles{
		OK: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42")),
		Failed: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		Muted: r.NewStyle().
			Foreground(lipgloss.Color("241")),
	}
}

// Status renders a line in the style matching a run or parse status.
// "ok" is green, anything else red.
func (s *Styles) Status(status, line string) string {
	if status == "ok" {
		return s.OK.Render(line)
	}
	return s.Failed.Render(line)
}
