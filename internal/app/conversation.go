package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/nexara/nexara/internal/backend"
	perrors "github.com/nexara/nexara/internal/errors"
	"github.com/nexara/nexara/internal/logger"
	"github.com/nexara/nexara/internal/ui"
)

// SendMessage sends text, or the input field when text is nil, together with
// the pending attachment. With neither text nor attachment it does nothing.
func (m *Model) SendMessage(text *string) tea.Cmd {
	var outgoing string
	if text != nil {
		outgoing = strings.TrimSpace(*text)
	} else {
		outgoing = m.chat.InputValue()
	}
	attachment := m.state.Attachment
	if outgoing == "" && attachment == nil {
		return nil
	}

	shown := outgoing
	if shown == "" {
		shown = fmt.Sprintf(attachmentOnlyText, attachment.Name)
	}
	m.AddMessage(shown, ui.SenderUser)
	m.history.Record(outgoing)
	m.chat.ClearInput()

	var attachmentPath string
	if attachment != nil {
		attachmentPath = attachment.Path
		m.setAttachment(nil)
	}

	m.state.PendingChats++
	spin := m.chat.SetPending(m.state.PendingChats)

	logger.WithComponent("chat").Info("message sent",
		"chars", len(outgoing),
		"attachment", attachmentPath != "",
		"pending", m.state.PendingChats,
	)

	b := m.backend
	request := func() tea.Msg {
		result, err := b.Chat(context.Background(), outgoing, attachmentPath)
		return ChatReplyMsg{Result: result, Err: err}
	}
	return tea.Batch(spin, request)
}

// handleChatReply renders a settled chat request. Replies are appended in
// the order they settle.
func (m *Model) handleChatReply(msg ChatReplyMsg) (tea.Model, tea.Cmd) {
	m.state.PendingChats = max(m.state.PendingChats-1, 0)
	m.chat.SetPending(m.state.PendingChats)

	if msg.Err != nil {
		logger.WithComponent("chat").Warn("chat failed", "error", msg.Err, "kind", perrors.GetKind(msg.Err))
		m.AddMessage(perrors.UserMessage(msg.Err, backend.ChatFailedMessage), ui.SenderAI)
		return m, nil
	}

	var reply string
	if msg.Result != nil {
		reply = msg.Result.Text()
	}
	m.AddMessage(reply, ui.SenderAI)
	return m, nil
}

// AddMessage appends a message to the transcript and scrolls to it.
func (m *Model) AddMessage(text string, sender ui.Sender) ui.Message {
	msg := ui.NewMessage(text, sender)
	m.state.Messages = append(m.state.Messages, msg)
	m.chat.SetMessages(append([]ui.Message(nil), m.state.Messages...))
	return msg
}

func (m *Model) findMessage(id string) (ui.Message, bool) {
	for _, msg := range m.state.Messages {
		if msg.ID == id {
			return msg, true
		}
	}
	return ui.Message{}, false
}

// copyMessage puts an AI message on the clipboard and flags its control as
// copied for ui.CopiedIndicatorDuration.
func (m *Model) copyMessage(id string) tea.Cmd {
	msg, ok := m.findMessage(id)
	if !ok || msg.Sender != ui.SenderAI {
		return nil
	}
	if err := m.clipboard.WriteText(msg.Text); err != nil {
		logger.WithComponent("chat").Warn("copy failed", "error", err)
		return m.ShowFlashFromError(err, "Could not copy to clipboard")
	}

	m.state.CopyGen[id]++
	gen := m.state.CopyGen[id]
	m.chat.SetCopied(id, true)
	return tea.Tick(ui.CopiedIndicatorDuration, func(time.Time) tea.Msg {
		return CopyRevertMsg{ID: id, Gen: gen}
	})
}

func (m *Model) handleCopyRevert(msg CopyRevertMsg) {
	if m.state.CopyGen[msg.ID] != msg.Gen {
		return
	}
	delete(m.state.CopyGen, msg.ID)
	m.chat.SetCopied(msg.ID, false)
}

// copyLastReply copies the newest AI message.
func (m *Model) copyLastReply() tea.Cmd {
	msg, ok := m.chat.LastAIMessage()
	if !ok {
		return nil
	}
	return m.copyMessage(msg.ID)
}
