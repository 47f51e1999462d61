package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nexara/nexara/internal/ui"
)

// View renders the app. This is the core Bubble Tea view function.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the current view as a string.
// This is useful for tests.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Overlay modal if visible
	if m.modal.IsVisible() {
		return m.modal.View(m.width, m.height)
	}

	m.updateFooterContext()

	panels := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.sidebar.View(),
		m.chat.View(),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		panels,
		m.footer.View(),
	)
}

// updateFooterContext updates the footer with current context for conditional bindings
func (m *Model) updateFooterContext() {
	_, hasReply := m.chat.LastAIMessage()
	m.footer.SetContext(m.focus == FocusHistory, m.state.Attachment != nil, hasReply)
}

// updateSizes updates component sizes based on terminal dimensions
func (m *Model) updateSizes() {
	ctx := ui.GetViewContext()
	ctx.UpdateTerminalSize(m.width, m.height)

	m.header.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.sidebar.SetSize(ctx.SidebarWidth, ctx.ContentHeight)
	m.chat.SetSize(ctx.ChatWidth, ctx.ContentHeight)
}
