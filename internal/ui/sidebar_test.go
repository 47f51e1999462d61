package ui

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/nexara/nexara/internal/history"
)

func testEntries(n int) []history.Entry {
	entries := make([]history.Entry, n)
	for i := range entries {
		entries[i] = history.Entry{
			ID:        int64(1000 + i),
			Title:     fmt.Sprintf("question %d", i),
			Timestamp: "10:00:00",
		}
	}
	return entries
}

func TestNewSidebar(t *testing.T) {
	sidebar := NewSidebar()
	if sidebar == nil {
		t.Fatal("NewSidebar() returned nil")
	}
	if state, text := sidebar.FilePanel(); state != FileNone || text != "" {
		t.Errorf("FilePanel() = %v, %q; want empty", state, text)
	}
	if _, ok := sidebar.SelectedEntry(); ok {
		t.Error("empty sidebar should have no selected entry")
	}
}

func TestSidebar_SetSize(t *testing.T) {
	sidebar := NewSidebar()
	sidebar.SetSize(40, 24)

	if sidebar.Width() != 40 {
		t.Errorf("Width() should return 40, got %d", sidebar.Width())
	}
	if sidebar.height != 24 {
		t.Errorf("Expected height 24, got %d", sidebar.height)
	}
}

func TestSidebar_FocusState(t *testing.T) {
	sidebar := NewSidebar()
	if sidebar.IsFocused() {
		t.Error("sidebar should start unfocused")
	}
	sidebar.SetFocused(true)
	if !sidebar.IsFocused() {
		t.Error("SetFocused(true) did not stick")
	}
}

func TestSidebar_FilePanel(t *testing.T) {
	tests := []struct {
		name  string
		apply func(*Sidebar)
		state FileState
		text  string
	}{
		{"processing", func(s *Sidebar) { s.SetFileProcessing("report.pdf") }, FileProcessing, "Processing report.pdf..."},
		{"ready", func(s *Sidebar) { s.SetFileReady("report.pdf") }, FileReady, "report.pdf (Ready)"},
		{"error", func(s *Sidebar) { s.SetFileError("bad format") }, FileError, "Error: bad format"},
		{"cleared", func(s *Sidebar) { s.SetFileReady("x"); s.ClearFiles() }, FileNone, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSidebar()
			s.SetSize(40, 24)
			tt.apply(s)
			state, text := s.FilePanel()
			if state != tt.state || text != tt.text {
				t.Errorf("FilePanel() = %v, %q; want %v, %q", state, text, tt.state, tt.text)
			}
			if tt.text != "" && !strings.Contains(ansi.Strip(s.View()), tt.text) {
				t.Errorf("view missing %q", tt.text)
			}
		})
	}
}

func TestSidebar_ViewEmptyHistory(t *testing.T) {
	s := NewSidebar()
	s.SetSize(40, 24)
	view := ansi.Strip(s.View())
	for _, want := range []string{"Documents", "History", "No documents yet", "No questions yet."} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestSidebar_ViewShowsEntries(t *testing.T) {
	s := NewSidebar()
	s.SetSize(40, 24)
	s.SetHistory(testEntries(3))

	view := ansi.Strip(s.View())
	for i := 0; i < 3; i++ {
		if want := fmt.Sprintf("question %d", i); !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if !strings.Contains(view, "10:00:00") {
		t.Error("view should show timestamps when there is room")
	}
}

func TestSidebar_Navigation(t *testing.T) {
	s := NewSidebar()
	s.SetSize(40, 24)
	s.SetFocused(true)
	s.SetHistory(testEntries(3))

	down := tea.KeyPressMsg{Code: tea.KeyDown}
	up := tea.KeyPressMsg{Code: tea.KeyUp}

	s.Update(down)
	s.Update(down)
	s.Update(down) // clamped at the last entry
	if e, _ := s.SelectedEntry(); e.ID != 1002 {
		t.Errorf("selected %d, want 1002", e.ID)
	}

	s.Update(up)
	if e, _ := s.SelectedEntry(); e.ID != 1001 {
		t.Errorf("selected %d, want 1001", e.ID)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyHome})
	if e, _ := s.SelectedEntry(); e.ID != 1000 {
		t.Errorf("home selected %d, want 1000", e.ID)
	}
}

func TestSidebar_UnfocusedIgnoresKeys(t *testing.T) {
	s := NewSidebar()
	s.SetSize(40, 24)
	s.SetHistory(testEntries(3))

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("unfocused sidebar should not activate entries")
	}
}

func TestSidebar_EnterActivates(t *testing.T) {
	s := NewSidebar()
	s.SetSize(40, 24)
	s.SetFocused(true)
	s.SetHistory(testEntries(3))
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should return a command")
	}
	msg, ok := cmd().(HistoryActivatedMsg)
	if !ok || msg.Entry.ID != 1001 {
		t.Errorf("got %#v, want entry 1001", msg)
	}
}

func TestSidebar_EnterOnEmptyHistory(t *testing.T) {
	s := NewSidebar()
	s.SetSize(40, 24)
	s.SetFocused(true)

	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("nothing to activate")
	}
}

func TestSidebar_ClickActivates(t *testing.T) {
	s := NewSidebar()
	s.SetSize(40, 24)
	s.SetHistory(testEntries(3))

	// Border, four header lines, then the entries.
	_, cmd := s.Update(tea.MouseClickMsg{X: 2, Y: 1 + sidebarHeaderLines + 2, Button: tea.MouseLeft})
	if cmd == nil {
		t.Fatal("clicking an entry should return a command")
	}
	msg := cmd().(HistoryActivatedMsg)
	if msg.Entry.ID != 1002 {
		t.Errorf("activated %d, want 1002", msg.Entry.ID)
	}

	if _, cmd := s.Update(tea.MouseClickMsg{X: 2, Y: 2, Button: tea.MouseLeft}); cmd != nil {
		t.Error("clicking the documents panel should not activate anything")
	}
	if _, cmd := s.Update(tea.MouseClickMsg{X: 2, Y: 1 + sidebarHeaderLines + 5, Button: tea.MouseLeft}); cmd != nil {
		t.Error("clicking below the last entry should not activate anything")
	}
}

func TestSidebar_SetHistoryClampsSelection(t *testing.T) {
	s := NewSidebar()
	s.SetSize(40, 24)
	s.SetFocused(true)
	s.SetHistory(testEntries(5))
	for i := 0; i < 4; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}

	s.SetHistory(testEntries(2))
	if e, ok := s.SelectedEntry(); !ok || e.ID != 1001 {
		t.Errorf("selection should clamp to the last entry, got %d, %v", e.ID, ok)
	}
}

func TestSidebar_ScrollsToSelection(t *testing.T) {
	s := NewSidebar()
	// Inner height 8: four header lines leave room for four entries.
	s.SetSize(40, 10)
	s.SetFocused(true)
	s.SetHistory(testEntries(10))

	for i := 0; i < 9; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	view := ansi.Strip(s.View())
	if !strings.Contains(view, "question 9") {
		t.Errorf("selected entry should be visible:\n%s", view)
	}
	if strings.Contains(view, "question 0") {
		t.Errorf("first entry should have scrolled out:\n%s", view)
	}
	if idx, ok := s.EntryAt(1 + sidebarHeaderLines); !ok || idx != 6 {
		t.Errorf("EntryAt(first visible row) = %d, %v; want 6", idx, ok)
	}
}
