package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/nexara/nexara/internal/ui"
)

// routeMouseEvents sends mouse events to the panel under the pointer, with
// coordinates made relative to that panel. The second result reports whether
// msg was a mouse event.
func (m *Model) routeMouseEvents(msg tea.Msg) (tea.Cmd, bool) {
	sidebarWidth := m.sidebar.Width()

	switch mouseMsg := msg.(type) {
	case tea.MouseClickMsg:
		if mouseMsg.X < sidebarWidth {
			sidebar, cmd := m.sidebar.Update(m.adjustMouseClickMsg(mouseMsg, 0))
			m.sidebar = sidebar
			return cmd, true
		}
		chat, cmd := m.chat.Update(m.adjustMouseClickMsg(mouseMsg, sidebarWidth))
		m.chat = chat
		return cmd, true

	case tea.MouseWheelMsg:
		// Only the transcript scrolls with the wheel.
		if mouseMsg.X >= sidebarWidth {
			chat, cmd := m.chat.Update(msg)
			m.chat = chat
			return cmd, true
		}
		return nil, true

	case tea.MouseMotionMsg, tea.MouseReleaseMsg:
		return nil, true
	}

	return nil, false
}

// adjustMouseClickMsg makes click coordinates relative to a panel that
// starts at column left, below the header.
func (m *Model) adjustMouseClickMsg(msg tea.MouseClickMsg, left int) tea.MouseClickMsg {
	return tea.MouseClickMsg{
		X:      msg.X - left,
		Y:      msg.Y - ui.HeaderHeight,
		Button: msg.Button,
		Mod:    msg.Mod,
	}
}
