package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	perrors "github.com/nexara/nexara/internal/errors"
	"github.com/nexara/nexara/internal/history"
	"github.com/nexara/nexara/internal/logger"
	"github.com/nexara/nexara/internal/prefs"
	"github.com/nexara/nexara/internal/preview"
	"github.com/nexara/nexara/internal/ui"
	"github.com/nexara/nexara/internal/ui/modals"
)

// =============================================================================
// Status
// =============================================================================

func statusKind(text string) ui.StatusKind {
	switch text {
	case StatusInitializing, StatusUploading:
		return ui.StatusBusy
	case StatusUploadFailed, StatusUnreachable:
		return ui.StatusFailed
	default:
		return ui.StatusReady
	}
}

// setStatus changes the status line.
func (m *Model) setStatus(text string) {
	if m.state.Status != text {
		logger.WithComponent("app").Debug("status", "from", m.state.Status, "to", text)
	}
	m.state.Status = text
	m.header.SetStatus(text, statusKind(text))
}

// revertStatusAfter schedules a return to StatusReady. The revert is
// skipped if the status has changed in the meantime.
func revertStatusAfter(d time.Duration, from string) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return StatusRevertMsg{From: from}
	})
}

func (m *Model) handleStatusRevert(msg StatusRevertMsg) {
	if m.state.Status == msg.From {
		m.setStatus(StatusReady)
	}
}

func (m *Model) checkHealth() tea.Cmd {
	b := m.backend
	return func() tea.Msg {
		return HealthCheckedMsg{Err: b.Health(context.Background())}
	}
}

func (m *Model) handleHealthChecked(msg HealthCheckedMsg) {
	// An upload started before the check settled owns the status line.
	if m.state.Status != StatusInitializing {
		return
	}
	if msg.Err != nil {
		logger.WithComponent("app").Warn("backend health check failed", "error", msg.Err)
		m.setStatus(StatusUnreachable)
		return
	}
	m.setStatus(StatusReady)
}

// =============================================================================
// Focus Management
// =============================================================================

func (m *Model) setFocus(f Focus) tea.Cmd {
	m.focus = f
	m.sidebar.SetFocused(f == FocusHistory)
	return m.chat.SetFocused(f == FocusChat)
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == FocusChat {
		return m.setFocus(FocusHistory)
	}
	return m.setFocus(FocusChat)
}

// =============================================================================
// Theme
// =============================================================================

// ToggleTheme switches between light and dark and persists the choice.
func (m *Model) ToggleTheme() {
	m.applyTheme(m.state.Theme.Toggle())
}

func (m *Model) applyTheme(t prefs.Theme) {
	m.state.Theme = t
	ui.SetTheme(t)
	m.chat.RefreshStyles()
	m.prefs.SetTheme(t)
	logger.WithComponent("app").Info("theme applied", "theme", t)
}

// =============================================================================
// Clear
// =============================================================================

// Clear empties the transcript and documents panel and asks the backend to
// forget every indexed document. The backend request is not waited on; its
// failure is only logged.
func (m *Model) Clear() tea.Cmd {
	m.state.Messages = nil
	m.state.CopyGen = make(map[string]int)
	m.chat.SetMessages(nil)

	b := m.backend
	request := func() tea.Msg {
		return ClearDoneMsg{Err: b.Clear(context.Background())}
	}

	m.setFilePanel(FilePanel{})
	m.setStatus(StatusCleared)
	m.AddMessage(GreetingMessage, ui.SenderAI)

	return tea.Batch(request, revertStatusAfter(ClearedRevertDelay, StatusCleared))
}

func (m *Model) handleClearDone(msg ClearDoneMsg) {
	if msg.Err != nil {
		logger.WithComponent("app").Error("failed to clear backend", "error", msg.Err)
	}
}

// =============================================================================
// History
// =============================================================================

// activateHistory puts a remembered prompt back into the input.
func (m *Model) activateHistory(e history.Entry) tea.Cmd {
	m.chat.SetInput(history.InputText(e))
	return m.setFocus(FocusChat)
}

// =============================================================================
// Attachment
// =============================================================================

func (m *Model) setAttachment(p *preview.Preview) {
	m.state.Attachment = p
	m.chat.SetAttachment(p)
}

// loadPreview builds the attachment preview for path off the update loop.
func loadPreview(path string) tea.Cmd {
	return func() tea.Msg {
		p, err := preview.Load([]string{path})
		return PreviewLoadedMsg{Path: path, Preview: p, Err: err}
	}
}

func (m *Model) handlePreviewLoaded(msg PreviewLoadedMsg) tea.Cmd {
	if msg.Err != nil {
		logger.WithComponent("app").Warn("preview failed", "path", msg.Path, "error", msg.Err)
		return m.ShowFlashFromError(msg.Err, "Could not read "+filepath.Base(msg.Path))
	}
	m.setAttachment(msg.Preview)
	return nil
}

// dismissAttachment drops the pending attachment without sending it.
func (m *Model) dismissAttachment() {
	if m.state.Attachment != nil {
		logger.WithComponent("app").Debug("attachment dismissed", "file", m.state.Attachment.Name)
	}
	m.setAttachment(nil)
}

// =============================================================================
// Pasted paths
// =============================================================================

// droppedPath returns the file a paste names, if the whole paste is the path
// of an existing regular file. Terminals deliver dropped files this way,
// sometimes quoted or with backslash-escaped spaces.
func droppedPath(text string) (string, bool) {
	p := strings.TrimSpace(text)
	if p == "" || strings.ContainsAny(p, "\n\r") {
		return "", false
	}
	if len(p) >= 2 && (p[0] == '\'' || p[0] == '"') && p[len(p)-1] == p[0] {
		p = p[1 : len(p)-1]
	} else {
		p = strings.ReplaceAll(p, `\ `, " ")
	}
	p = strings.TrimPrefix(p, "file://")
	p = modals.ExpandHome(p)

	info, err := os.Stat(p)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return p, true
}

// =============================================================================
// Startup
// =============================================================================

// handleStartupModals shows the welcome modal to first-time users
func (m *Model) handleStartupModals() (tea.Model, tea.Cmd) {
	if !m.config.HasSeenWelcome() {
		logger.WithComponent("app").Info("showing welcome modal")
		m.modal.Show(modals.NewWelcomeState(m.config.GetServerURL()))
	}
	return m, nil
}

// saveConfig writes the config when it has a home. Ephemeral runs have none.
func (m *Model) saveConfig() error {
	if m.config.FilePath() == "" {
		return nil
	}
	return m.config.Save()
}

// switchServer points the model at a new backend and rechecks its health.
func (m *Model) switchServer(serverURL string) tea.Cmd {
	m.config.SetServerURL(serverURL)
	m.backend = m.newBackend(serverURL)
	m.header.SetServer(serverURL)
	m.setStatus(StatusInitializing)
	logger.WithComponent("app").Info("server changed", "server", serverURL)
	return m.checkHealth()
}

// checkFile reports why path cannot be attached or uploaded.
func checkFile(path string) error {
	const op = perrors.Op("app.checkFile")
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return perrors.FileNotFound(op, path)
	}
	if err != nil {
		return perrors.FileReadFailed(op, path, err)
	}
	if info.IsDir() {
		return perrors.E(op, perrors.KindInvalid, perrors.Msg(filepath.Base(path)+" is a directory"))
	}
	return nil
}
