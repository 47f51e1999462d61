package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/nexara/nexara/internal/history"
	"github.com/nexara/nexara/internal/keys"
)

// FileState is what the documents panel is showing.
type FileState int

const (
	FileNone FileState = iota
	FileProcessing
	FileReady
	FileError
)

// HistoryActivatedMsg is emitted when a history entry is chosen with enter or a click.
type HistoryActivatedMsg struct {
	Entry history.Entry
}

// sidebarHeaderLines is the documents block plus the history title:
// "Documents", file row, blank, "History".
const sidebarHeaderLines = 4

// Sidebar represents the left panel: the documents panel above the prompt history
type Sidebar struct {
	width   int
	height  int
	focused bool

	fileState FileState
	fileText  string

	entries      []history.Entry
	selectedIdx  int
	scrollOffset int
}

// NewSidebar creates a new sidebar
func NewSidebar() *Sidebar {
	return &Sidebar{}
}

// SetSize sets the sidebar dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.clampScroll()
}

// Width returns the sidebar width
func (s *Sidebar) Width() int {
	return s.width
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state
func (s *Sidebar) IsFocused() bool {
	return s.focused
}

// SetFileProcessing shows name as being indexed.
func (s *Sidebar) SetFileProcessing(name string) {
	s.fileState = FileProcessing
	s.fileText = "Processing " + name + "..."
}

// SetFileReady shows name as indexed.
func (s *Sidebar) SetFileReady(name string) {
	s.fileState = FileReady
	s.fileText = name + " (Ready)"
}

// SetFileError shows why the last upload failed.
func (s *Sidebar) SetFileError(msg string) {
	s.fileState = FileError
	s.fileText = "Error: " + msg
}

// ClearFiles empties the documents panel.
func (s *Sidebar) ClearFiles() {
	s.fileState = FileNone
	s.fileText = ""
}

// FilePanel returns the documents panel state and its text.
func (s *Sidebar) FilePanel() (FileState, string) {
	return s.fileState, s.fileText
}

// SetHistory replaces the history list. The selection stays on the same
// position, clamped to the new length.
func (s *Sidebar) SetHistory(entries []history.Entry) {
	s.entries = entries
	if s.selectedIdx >= len(entries) {
		s.selectedIdx = max(len(entries)-1, 0)
	}
	s.clampScroll()
}

// History returns the entries being displayed.
func (s *Sidebar) History() []history.Entry {
	return s.entries
}

// SelectedEntry returns the highlighted history entry, if any.
func (s *Sidebar) SelectedEntry() (history.Entry, bool) {
	if s.selectedIdx < 0 || s.selectedIdx >= len(s.entries) {
		return history.Entry{}, false
	}
	return s.entries[s.selectedIdx], true
}

func (s *Sidebar) visibleEntries() int {
	return max(GetViewContext().InnerHeight(s.height)-sidebarHeaderLines, 1)
}

// clampScroll keeps the selected entry inside the visible window.
func (s *Sidebar) clampScroll() {
	visible := s.visibleEntries()
	if s.selectedIdx < s.scrollOffset {
		s.scrollOffset = s.selectedIdx
	} else if s.selectedIdx >= s.scrollOffset+visible {
		s.scrollOffset = s.selectedIdx - visible + 1
	}
	maxScroll := max(len(s.entries)-visible, 0)
	s.scrollOffset = min(max(s.scrollOffset, 0), maxScroll)
}

// EntryAt returns the history entry drawn at the panel relative row y
// (row 0 is the top border).
func (s *Sidebar) EntryAt(y int) (int, bool) {
	row := y - 1 - sidebarHeaderLines
	if row < 0 || row >= s.visibleEntries() {
		return 0, false
	}
	idx := s.scrollOffset + row
	if idx >= len(s.entries) {
		return 0, false
	}
	return idx, true
}

func (s *Sidebar) activate(idx int) tea.Cmd {
	if idx < 0 || idx >= len(s.entries) {
		return nil
	}
	s.selectedIdx = idx
	s.clampScroll()
	entry := s.entries[idx]
	return func() tea.Msg { return HistoryActivatedMsg{Entry: entry} }
}

// Update handles messages
func (s *Sidebar) Update(msg tea.Msg) (*Sidebar, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseClickMsg:
		if msg.Button != tea.MouseLeft {
			return s, nil
		}
		if idx, ok := s.EntryAt(msg.Y); ok {
			return s, s.activate(idx)
		}

	case tea.KeyPressMsg:
		if !s.focused {
			return s, nil
		}
		switch msg.String() {
		case keys.Up, "k":
			if s.selectedIdx > 0 {
				s.selectedIdx--
				s.clampScroll()
			}
		case keys.Down, "j":
			if s.selectedIdx < len(s.entries)-1 {
				s.selectedIdx++
				s.clampScroll()
			}
		case keys.Home, "g":
			s.selectedIdx = 0
			s.clampScroll()
		case keys.End, "G":
			s.selectedIdx = max(len(s.entries)-1, 0)
			s.clampScroll()
		case keys.Enter:
			return s, s.activate(s.selectedIdx)
		}
	}

	return s, nil
}

func (s *Sidebar) renderFileRow(width int) string {
	var row string
	switch s.fileState {
	case FileProcessing:
		row = StatusLoadingStyle.Render("◌ " + s.fileText)
	case FileReady:
		row = StatusReadyStyle.Render("✓ " + s.fileText)
	case FileError:
		row = StatusErrorStyle.Render("✕ " + s.fileText)
	default:
		row = SidebarMetaStyle.Render("No documents yet")
	}
	return ansi.Truncate(row, width, "…")
}

func (s *Sidebar) renderEntry(e history.Entry, selected bool, width int) string {
	style := SidebarItemStyle
	if selected {
		style = SidebarSelectedStyle
	}
	// Item styles pad one cell on each side.
	inner := max(width-2, 1)

	title := e.Title
	stamp := e.Timestamp
	titleWidth := inner
	if stamp != "" && inner > len(stamp)+8 {
		titleWidth = inner - len(stamp) - 1
	} else {
		stamp = ""
	}
	title = ansi.Truncate(title, titleWidth, "…")
	gap := inner - ansi.StringWidth(title) - len(stamp)

	line := title + strings.Repeat(" ", max(gap, 0))
	if stamp != "" {
		if selected {
			line += stamp
		} else {
			line += SidebarMetaStyle.Render(stamp)
		}
	}
	return style.Width(width).Render(line)
}

// View renders the sidebar
func (s *Sidebar) View() string {
	ctx := GetViewContext()

	style := PanelStyle
	if s.focused {
		style = PanelFocusedStyle
	}

	innerWidth := ctx.InnerWidth(s.width)
	innerHeight := ctx.InnerHeight(s.height)

	lines := []string{
		PanelTitleStyle.Render("Documents"),
		s.renderFileRow(innerWidth),
		"",
		PanelTitleStyle.Render("History"),
	}

	if len(s.entries) == 0 {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("No questions yet."))
	} else {
		end := min(s.scrollOffset+s.visibleEntries(), len(s.entries))
		for i := s.scrollOffset; i < end; i++ {
			selected := s.focused && i == s.selectedIdx
			lines = append(lines, s.renderEntry(s.entries[i], selected, innerWidth))
		}
	}

	if len(lines) > innerHeight {
		lines = lines[:innerHeight]
	}

	return style.Width(s.width).Height(s.height).Render(strings.Join(lines, "\n"))
}
