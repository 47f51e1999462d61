package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/nexara/nexara/internal/keys"
	"github.com/nexara/nexara/internal/logger"
	"github.com/nexara/nexara/internal/ui"
)

// Update handles messages. This is the core Bubble Tea update function that routes
// all messages to appropriate handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.PasteMsg:
		if result, cmd := m.handlePaste(msg); result != nil {
			return result, cmd
		}

	case tea.KeyPressMsg:
		if result, cmd := m.handleKeyPress(msg); result != nil {
			return result, cmd
		}
		// Key not handled by handleKeyPress, let it fall through to focused panel

	case StartupModalMsg:
		return m.handleStartupModals()

	case StartupUploadsMsg:
		return m, m.HandleFiles(msg.Paths)

	case HealthCheckedMsg:
		m.handleHealthChecked(msg)
		return m, nil

	case UploadDoneMsg:
		return m.handleUploadDone(msg)

	case ChatReplyMsg:
		return m.handleChatReply(msg)

	case ClearDoneMsg:
		m.handleClearDone(msg)
		return m, nil

	case StatusRevertMsg:
		m.handleStatusRevert(msg)
		return m, nil

	case CopyRevertMsg:
		m.handleCopyRevert(msg)
		return m, nil

	case PreviewLoadedMsg:
		return m, m.handlePreviewLoaded(msg)

	case HelpShortcutTriggeredMsg:
		return m.handleHelpShortcutTrigger(msg.Key)

	case ui.CopyMessageMsg:
		return m, m.copyMessage(msg.ID)

	case ui.HistoryActivatedMsg:
		return m, m.activateHistory(msg.Entry)

	case ui.FlashTickMsg:
		m.handleFlashTick()
		return m, nil

	case ui.SpinnerTickMsg:
		// The waiting indicator animates regardless of focus.
		chat, cmd := m.chat.Update(msg)
		m.chat = chat
		return m, cmd
	}

	// Update modal
	if m.modal.IsVisible() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		return m, cmd
	}

	// Route mouse events to the panel under the pointer
	if cmd, handled := m.routeMouseEvents(msg); handled {
		return m, cmd
	}

	// Update focused panel for other messages
	if m.focus == FocusHistory {
		sidebar, cmd := m.sidebar.Update(msg)
		m.sidebar = sidebar
		cmds = append(cmds, cmd)
	} else {
		chat, cmd := m.chat.Update(msg)
		m.chat = chat
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handlePaste turns a pasted file path into an upload. Any other paste
// falls through to the input.
func (m *Model) handlePaste(msg tea.PasteMsg) (tea.Model, tea.Cmd) {
	if m.modal.IsVisible() || m.focus != FocusChat {
		return nil, nil
	}
	path, ok := droppedPath(msg.Content)
	if !ok {
		logger.WithComponent("app").Debug("paste", "len", len(msg.Content))
		return nil, nil
	}
	logger.WithComponent("app").Info("dropped file", "path", path)
	return m, m.HandleFiles([]string{path})
}

// handleKeyPress handles all keyboard input.
// Returns (model, cmd) if the key was handled, or (nil, nil) if it should fall through
// to the focused panel for handling.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	logger.WithComponent("app").Debug("key", "key", key, "focus", m.focus, "modal", m.modal.IsVisible())

	// ctrl+c always quits, even over a modal
	if key == keys.CtrlC {
		return m, tea.Quit
	}

	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	if key == keys.Escape && m.focus == FocusHistory {
		return m, m.setFocus(FocusChat)
	}

	if result, cmd, handled := m.ExecuteShortcut(key); handled {
		return result, cmd
	}

	if key == keys.Enter && m.focus == FocusChat {
		return m, m.SendMessage(nil)
	}

	return nil, nil
}
