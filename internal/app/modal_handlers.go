package app

import (
	tea "charm.land/bubbletea/v2"

	perrors "github.com/nexara/nexara/internal/errors"
	"github.com/nexara/nexara/internal/keys"
	"github.com/nexara/nexara/internal/logger"
	"github.com/nexara/nexara/internal/prefs"
	"github.com/nexara/nexara/internal/ui/modals"
)

// handleModalKey routes modal key events to the appropriate handler based on modal state type.
// Enter and Escape are handled here; every other key goes to the modal itself.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch s := m.modal.State.(type) {
	case *modals.PathState:
		return m.handlePathModal(key, msg, s)
	case *modals.SettingsState:
		return m.handleSettingsModal(key, msg, s)
	case *modals.WelcomeState:
		return m.handleWelcomeModal(key, msg, s)
	case *modals.HelpState:
		return m.handleHelpModal(key, msg, s)
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handlePathModal handles key events for the attach and upload modals.
func (m *Model) handlePathModal(key string, msg tea.KeyPressMsg, state *modals.PathState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		if state.ShowingOptions() {
			state.DismissOptions()
			return m, nil
		}
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		if state.ShowingOptions() {
			state.DismissOptions()
			return m, nil
		}
		path := state.GetPath()
		if path == "" {
			m.modal.SetError("Enter a file path")
			return m, nil
		}
		if err := checkFile(path); err != nil {
			m.modal.SetError(perrors.UserMessage(err, "Cannot read "+path))
			return m, nil
		}
		m.modal.Hide()
		if state.Purpose == modals.PurposeUpload {
			return m, m.HandleFiles([]string{path})
		}
		return m, loadPreview(path)
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleSettingsModal handles key events for the Settings modal.
func (m *Model) handleSettingsModal(key string, msg tea.KeyPressMsg, state *modals.SettingsState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		if err := state.Validate(); err != nil {
			m.modal.SetError(err.Error())
			return m, nil
		}

		var cmds []tea.Cmd
		if state.ServerURLChanged() {
			cmds = append(cmds, m.switchServer(state.GetServerURL()))
		}
		if state.ThemeChanged() {
			m.applyTheme(prefs.Theme(state.GetTheme()))
		}
		m.config.SetNotificationsEnabled(state.GetNotificationsEnabled())

		if err := m.saveConfig(); err != nil {
			logger.WithComponent("app").Error("failed to save settings", "error", err)
			m.modal.SetError("Failed to save: " + err.Error())
			return m, tea.Batch(cmds...)
		}
		m.modal.Hide()
		cmds = append(cmds, m.ShowFlashSuccess("Settings saved"))
		return m, tea.Batch(cmds...)
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleWelcomeModal handles key events for the Welcome modal.
func (m *Model) handleWelcomeModal(key string, _ tea.KeyPressMsg, _ *modals.WelcomeState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Enter, keys.Escape:
		m.config.MarkWelcomeShown()
		m.modal.Hide()
		return m, m.saveConfigOrFlash()
	}
	return m, nil
}

// handleHelpModal handles key events for the Help modal.
func (m *Model) handleHelpModal(key string, msg tea.KeyPressMsg, state *modals.HelpState) (tea.Model, tea.Cmd) {
	// While filtering, forward all keys to the list (Esc cancels filter, Enter applies)
	if state.IsFiltering() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		return m, cmd
	}

	switch key {
	case keys.Escape, keys.F1, "q":
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		shortcut := state.SelectedShortcut()
		if shortcut == nil {
			return m, nil
		}
		m.modal.Hide()
		if isDisplayOnly(shortcut.Key) {
			return m, nil
		}
		triggered := shortcut.Key
		return m, func() tea.Msg {
			return HelpShortcutTriggeredMsg{Key: triggered}
		}
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleHelpShortcutTrigger runs a shortcut picked in the help modal.
func (m *Model) handleHelpShortcutTrigger(key string) (tea.Model, tea.Cmd) {
	result, cmd, _ := m.ExecuteShortcut(key)
	return result, cmd
}
