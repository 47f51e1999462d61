package ui

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nexara/nexara/internal/ui/modals"
)

// Modal represents a popup dialog with type-safe state management.
// The State field is nil when no modal is visible.
type Modal struct {
	State modals.ModalState
	error string
}

// NewModal creates a new modal
func NewModal() *Modal {
	return &Modal{}
}

// Show displays a modal with the given state
func (m *Modal) Show(state modals.ModalState) {
	m.State = state
	m.error = ""
}

// Hide hides the modal
func (m *Modal) Hide() {
	m.State = nil
	m.error = ""
}

// IsVisible returns whether the modal is visible
func (m *Modal) IsVisible() bool {
	return m.State != nil
}

// SetError sets an error message shown under the modal content
func (m *Modal) SetError(err string) {
	m.error = err
}

// GetError returns the current error message
func (m *Modal) GetError() string {
	return m.error
}

// Update handles messages by delegating to the current state
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m.State == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.State, cmd = m.State.Update(msg)
	return m, cmd
}

// View renders the modal centered on the screen
func (m *Modal) View(screenWidth, screenHeight int) string {
	if m.State == nil {
		return ""
	}

	if sized, ok := m.State.(modals.ModalWithSize); ok {
		sized.SetSize(ModalWidth-6, screenHeight-6)
	}

	content := m.State.Render()
	if m.error != "" {
		content += "\n" + StatusErrorStyle.Render(m.error)
	}

	return lipgloss.Place(
		screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		ModalStyle.Render(content),
	)
}

// RefreshModalStyles hands the current theme to the modals package.
func RefreshModalStyles() {
	modals.SetStyles(
		ModalTitleStyle, ModalHelpStyle, SidebarItemStyle, SidebarSelectedStyle, StatusErrorStyle,
		ColorPrimary, ColorSecondary, ColorText, ColorTextMuted, ColorTextInverse, ColorWarning,
		ModalInputWidth, ModalInputCharLimit, ModalWidth,
	)
}
