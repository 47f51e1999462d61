package modals

import (
	"path/filepath"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nexara/nexara/internal/keys"
)

// PathPurpose says what happens to the file once a path is confirmed.
type PathPurpose int

const (
	// PurposeAttach previews the file for the next message.
	PurposeAttach PathPurpose = iota
	// PurposeUpload sends the file to the backend for indexing.
	PurposeUpload
)

// maxCompletionsShown keeps the modal compact.
const maxCompletionsShown = 5

// PathState is the modal for typing a file path, with tab completion.
type PathState struct {
	Purpose PathPurpose
	Input   textinput.Model

	completer       *PathCompleter
	showingOptions  bool
	completionIndex int
}

func (*PathState) modalState() {}

func (s *PathState) Title() string {
	if s.Purpose == PurposeUpload {
		return "Upload Document"
	}
	return "Attach File"
}

func (s *PathState) Help() string {
	if s.showingOptions {
		return "up/down to select, Tab to confirm, Esc to cancel"
	}
	if s.Purpose == PurposeUpload {
		return "Tab to complete path, Enter to upload, Esc to cancel"
	}
	return "Tab to complete path, Enter to attach, Esc to cancel"
}

func (s *PathState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	var hint string
	if s.Purpose == PurposeUpload {
		hint = "The file is indexed so you can ask about it."
	} else {
		hint = "The file is previewed with your next message."
	}
	description := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginBottom(1).
		Render(hint)

	content := lipgloss.JoinVertical(lipgloss.Left, description, s.Input.View())

	if s.showingOptions {
		if options := s.renderCompletionOptions(); options != "" {
			label := lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				MarginTop(1).
				Render("Completions:")
			content = lipgloss.JoinVertical(lipgloss.Left, content, label, options)
		}
	}

	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, content, help)
}

// renderCompletionOptions shows a window of matches around the selection.
func (s *PathState) renderCompletionOptions() string {
	matches := s.completer.Matches()
	if len(matches) == 0 {
		return ""
	}
	start := 0
	if s.completionIndex >= maxCompletionsShown {
		start = s.completionIndex - maxCompletionsShown + 1
	}
	end := min(start+maxCompletionsShown, len(matches))

	names := make([]string, 0, end-start)
	for _, match := range matches[start:end] {
		display := filepath.Base(strings.TrimSuffix(match, "/"))
		if strings.HasSuffix(match, "/") {
			display += "/"
		}
		names = append(names, TruncatePath(display, ModalInputWidth-2))
	}
	lines := selectableLines(names, start, s.completionIndex)
	if len(matches) > maxCompletionsShown {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("  ("+strconv.Itoa(len(matches))+" total, scroll with up/down)"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (s *PathState) setValue(v string) {
	s.Input.SetValue(v)
	s.Input.CursorEnd()
}

func (s *PathState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		key := keyMsg.String()

		if s.showingOptions {
			matches := s.completer.Matches()
			switch key {
			case keys.Up:
				if s.completionIndex > 0 {
					s.completionIndex--
				}
				return s, nil
			case keys.Down:
				if s.completionIndex < len(matches)-1 {
					s.completionIndex++
				}
				return s, nil
			case keys.Tab:
				if s.completionIndex < len(matches) {
					s.setValue(matches[s.completionIndex])
				}
				s.showingOptions = false
				s.completer.Reset()
				return s, nil
			default:
				// Any other key closes the list and edits the input.
				s.showingOptions = false
				s.completer.Reset()
			}
		}

		if key == keys.Tab {
			s.complete()
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	return s, cmd
}

// complete fills in a single match, or the common prefix of several and
// then lists them.
func (s *PathState) complete() {
	current := s.Input.Value()
	s.completer.Generate(current)
	matches := s.completer.Matches()

	switch len(matches) {
	case 0:
		return
	case 1:
		s.setValue(matches[0])
		s.completer.Reset()
		return
	}

	if common := s.completer.CommonPrefix(); common != "" && common != current {
		s.setValue(common)
		s.completer.Generate(common)
	}
	if len(s.completer.Matches()) > 1 {
		s.showingOptions = true
		s.completionIndex = 0
	}
}

// ShowingOptions reports whether the completion list is open.
func (s *PathState) ShowingOptions() bool {
	return s.showingOptions
}

// DismissOptions closes the completion list, leaving the modal open.
func (s *PathState) DismissOptions() {
	s.showingOptions = false
	s.completer.Reset()
}

// GetPath returns the entered path with ~ expanded, or "" if nothing was typed.
func (s *PathState) GetPath() string {
	path := strings.TrimSpace(s.Input.Value())
	if path == "" {
		return ""
	}
	return ExpandHome(path)
}

// NewPathState creates a new PathState
func NewPathState(purpose PathPurpose) *PathState {
	ti := textinput.New()
	ti.Placeholder = "~/Documents/report.pdf"
	ti.CharLimit = ModalInputCharLimit
	ti.SetWidth(ModalInputWidth)
	ti.Focus()

	return &PathState{
		Purpose:   purpose,
		Input:     ti,
		completer: NewPathCompleter(),
	}
}
