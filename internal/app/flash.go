package app

import (
	tea "charm.land/bubbletea/v2"

	perrors "github.com/nexara/nexara/internal/errors"
	"github.com/nexara/nexara/internal/logger"
	"github.com/nexara/nexara/internal/ui"
)

// ShowFlash displays a flash message in the footer and returns a command to start the auto-dismiss timer
func (m *Model) ShowFlash(text string, flashType ui.FlashType) tea.Cmd {
	m.footer.SetFlash(text, flashType)
	return ui.FlashTick()
}

// ShowFlashError displays an error flash message
func (m *Model) ShowFlashError(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashError)
}

// ShowFlashFromError flashes the user-facing message carried by err, or
// fallback when it has none.
func (m *Model) ShowFlashFromError(err error, fallback string) tea.Cmd {
	return m.ShowFlashError(perrors.UserMessage(err, fallback))
}

// ShowFlashSuccess displays a success flash message
func (m *Model) ShowFlashSuccess(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashSuccess)
}

func (m *Model) handleFlashTick() {
	m.footer.ClearIfExpired()
}

// saveConfigOrFlash saves the config and flashes an error if that fails
func (m *Model) saveConfigOrFlash() tea.Cmd {
	if err := m.saveConfig(); err != nil {
		logger.WithComponent("app").Error("failed to save config", "error", err)
		return m.ShowFlashError("Failed to save configuration")
	}
	return nil
}
