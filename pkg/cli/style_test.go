package cli

import (
	"bytes"
	"testing"
)

func TestStyles_PlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := NewStyles(&buf)

	tests := []struct {
		status string
		line   string
	}{
		{"ok", "run abc: ok"},
		{"failed", "run abc: failed"},
		{"canceled", "run abc: canceled"},
	}
	for _, tt := range tests {
		if got := s.Status(tt.status, tt.line); got != tt.line {
			t.Errorf("Status(%q) = %q, want plain %q", tt.status, got, tt.line)
		}
	}
	if got := s.Muted.Render("hint"); got != "hint" {
		t.Errorf("Muted = %q", got)
	}
}
