package modals

import (
	"fmt"
	"io"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// helpShortcutItem wraps a HelpShortcut for use in a bubbles list.
type helpShortcutItem struct {
	shortcut HelpShortcut
}

func (i helpShortcutItem) FilterValue() string {
	return i.shortcut.Key + " " + i.shortcut.Desc
}

// helpSectionItem is a section header. It is not filterable.
type helpSectionItem struct {
	title string
}

func (i helpSectionItem) FilterValue() string { return "" }

// helpDelegate renders help list items.
type helpDelegate struct{}

func (d helpDelegate) Height() int                             { return 1 }
func (d helpDelegate) Spacing() int                            { return 0 }
func (d helpDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

const helpKeyColumn = 14

func (d helpDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	switch i := item.(type) {
	case helpSectionItem:
		fmt.Fprint(w, lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary).
			Render(i.title))

	case helpShortcutItem:
		keyStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Width(helpKeyColumn)
		descStyle := lipgloss.NewStyle().Foreground(ColorText)
		prefix := "  "
		if index == m.Index() {
			keyStyle = keyStyle.Foreground(ColorTextInverse).Background(ColorPrimary)
			descStyle = descStyle.Foreground(ColorTextInverse).Background(ColorPrimary)
			prefix = "> "
		}
		fmt.Fprint(w, prefix+keyStyle.Render(i.shortcut.Key)+descStyle.Render(i.shortcut.Desc))
	}
}

// HelpState wraps a bubbles list.Model for the help modal.
type HelpState struct {
	list list.Model
}

func (*HelpState) modalState() {}

func (s *HelpState) Title() string { return "Keyboard Shortcuts" }

func (s *HelpState) Help() string {
	if s.list.SettingFilter() {
		return "Type to filter  Enter: apply  Esc: cancel"
	}
	return "/: filter  up/down: navigate  Enter: run  Esc: close"
}

func (s *HelpState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.list.View(), help)
}

func (s *HelpState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

// SetSize fits the list into the space the modal is given.
func (s *HelpState) SetSize(width, height int) {
	// Title and help line, each with a margin
	const overhead = 4
	s.list.SetSize(width, max(min(height-overhead, HelpModalMaxVisible), 1))
}

// SelectedShortcut returns the highlighted shortcut, or nil when a section
// header is highlighted or the list is empty.
func (s *HelpState) SelectedShortcut() *HelpShortcut {
	if si, ok := s.list.SelectedItem().(helpShortcutItem); ok {
		return &si.shortcut
	}
	return nil
}

// IsFiltering returns whether the user is currently typing in the filter.
func (s *HelpState) IsFiltering() bool {
	return s.list.SettingFilter()
}

// NewHelpState creates a HelpState listing sections in order.
func NewHelpState(sections []HelpSection) *HelpState {
	var items []list.Item
	for _, section := range sections {
		items = append(items, helpSectionItem{title: section.Title})
		for _, shortcut := range section.Shortcuts {
			items = append(items, helpShortcutItem{shortcut: shortcut})
		}
	}

	l := list.New(items, helpDelegate{}, ModalWidth, HelpModalMaxVisible)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.SetFilteringEnabled(true)

	// Start on the first shortcut, not a header
	for i, item := range items {
		if _, ok := item.(helpShortcutItem); ok {
			l.Select(i)
			break
		}
	}

	return &HelpState{list: l}
}
