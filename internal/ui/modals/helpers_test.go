package modals

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestTruncatePath(t *testing.T) {
	tests := []struct {
		path     string
		maxWidth int
		want     string
	}{
		{"report.pdf", 20, "report.pdf"},
		{"quarterly-report-final.pdf", 12, "...final.pdf"},
		{"abc", 2, "..."},
	}
	for _, tt := range tests {
		if got := TruncatePath(tt.path, tt.maxWidth); got != tt.want {
			t.Errorf("TruncatePath(%q, %d) = %q, want %q", tt.path, tt.maxWidth, got, tt.want)
		}
	}
}

func TestSelectableLines_Offset(t *testing.T) {
	lines := selectableLines([]string{"c.txt", "d.txt"}, 2, 3)
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	if !strings.HasPrefix(ansi.Strip(lines[1]), "> d.txt") {
		t.Errorf("selected line = %q", ansi.Strip(lines[1]))
	}
	if !strings.HasPrefix(ansi.Strip(lines[0]), "  c.txt") {
		t.Errorf("unselected line = %q", ansi.Strip(lines[0]))
	}
}
