package modals

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// WelcomeState is shown once, on the first run.
type WelcomeState struct {
	ServerURL string
}

func (*WelcomeState) modalState() {}

func (s *WelcomeState) Title() string { return "Welcome to nexara" }

func (s *WelcomeState) Help() string {
	return "Press Enter or Esc to continue"
}

func (s *WelcomeState) Render() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary).
		MarginBottom(1).
		Render(s.Title())

	intro := lipgloss.NewStyle().
		Foreground(ColorText).
		Width(ModalInputWidth).
		Render("Chat with your documents. Upload a file to have it indexed, then ask questions about it.")

	server := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginTop(1).
		Render("Backend: " + s.ServerURL)

	gettingStarted := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginTop(1).
		Render("Getting started:")

	shortcuts := lipgloss.NewStyle().
		Foreground(ColorText).
		Render("  ctrl+u  Upload a document\n  enter   Send a question\n  ctrl+o  Attach a file to preview\n  f1      All shortcuts")

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		intro,
		server,
		gettingStarted,
		shortcuts,
		help,
	)
}

func (s *WelcomeState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	return s, nil
}

// NewWelcomeState creates a new WelcomeState
func NewWelcomeState(serverURL string) *WelcomeState {
	return &WelcomeState{ServerURL: serverURL}
}
