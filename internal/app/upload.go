package app

import (
	"context"
	"fmt"
	"path/filepath"

	tea "charm.land/bubbletea/v2"

	"github.com/nexara/nexara/internal/backend"
	perrors "github.com/nexara/nexara/internal/errors"
	"github.com/nexara/nexara/internal/logger"
	"github.com/nexara/nexara/internal/notification"
	"github.com/nexara/nexara/internal/ui"
)

// HandleFiles uploads the first of paths for indexing. The rest are ignored.
func (m *Model) HandleFiles(paths []string) tea.Cmd {
	if len(paths) == 0 {
		return nil
	}
	path := paths[0]
	name := filepath.Base(path)
	if len(paths) > 1 {
		logger.WithComponent("upload").Debug("ignoring extra files", "count", len(paths)-1)
	}

	m.state.UploadGen++
	gen := m.state.UploadGen

	m.setStatus(StatusInitializing)
	m.setFilePanel(FilePanel{Kind: ui.FileProcessing, Name: name})
	m.setStatus(StatusUploading)

	logger.WithComponent("upload").Info("upload issued", "file", name, "gen", gen)

	b := m.backend
	return func() tea.Msg {
		result, err := b.Upload(context.Background(), path)
		return UploadDoneMsg{Gen: gen, Name: name, Result: result, Err: err}
	}
}

// handleUploadDone renders a settled upload. Only the newest upload may
// change the status line and documents panel; every upload reports in the
// transcript.
func (m *Model) handleUploadDone(msg UploadDoneMsg) (tea.Model, tea.Cmd) {
	log := logger.WithComponent("upload")
	current := msg.Gen == m.state.UploadGen
	if !current {
		log.Info("stale upload settled", "file", msg.Name, "gen", msg.Gen, "latest", m.state.UploadGen)
	}

	var cmds []tea.Cmd

	if msg.Err != nil {
		reason := perrors.UserMessage(msg.Err, backend.UploadFailedMessage)
		log.Warn("upload failed", "file", msg.Name, "error", msg.Err)
		if current {
			m.setFilePanel(FilePanel{Kind: ui.FileError, Name: msg.Name, Err: reason})
			m.setStatus(StatusUploadFailed)
		}
		m.AddMessage(fmt.Sprintf(uploadFailureFmt, reason), ui.SenderAI)
		cmds = append(cmds, m.notify(func(s notification.Sender) error {
			return notification.UploadFailed(s, msg.Name, reason)
		}))
		return m, tea.Batch(cmds...)
	}

	if current {
		m.setFilePanel(FilePanel{Kind: ui.FileReady, Name: msg.Name})
		m.setStatus(StatusIndexed)
		cmds = append(cmds, revertStatusAfter(IndexedRevertDelay, StatusIndexed))
	}
	m.AddMessage(fmt.Sprintf(uploadSuccessFmt, msg.Name), ui.SenderAI)
	cmds = append(cmds, m.notify(func(s notification.Sender) error {
		return notification.UploadIndexed(s, msg.Name)
	}))
	return m, tea.Batch(cmds...)
}

// notify sends a desktop notification when they are enabled.
func (m *Model) notify(send func(notification.Sender) error) tea.Cmd {
	if !m.config.GetNotificationsEnabled() {
		return nil
	}
	n := m.notifier
	return func() tea.Msg {
		// Failures are logged by the sender.
		_ = send(n)
		return nil
	}
}

// setFilePanel records what the documents panel shows and draws it.
func (m *Model) setFilePanel(p FilePanel) {
	m.state.File = p
	switch p.Kind {
	case ui.FileProcessing:
		m.sidebar.SetFileProcessing(p.Name)
	case ui.FileReady:
		m.sidebar.SetFileReady(p.Name)
	case ui.FileError:
		m.sidebar.SetFileError(p.Err)
	default:
		m.sidebar.ClearFiles()
	}
}
