package ui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/nexara/nexara/internal/logger"
	"github.com/nexara/nexara/internal/preview"
	"github.com/nexara/nexara/internal/ui/modals"
)

const (
	copyLabel   = "⧉ copy"
	copiedLabel = "✓ copied"
)

// Chat represents the right panel: transcript, attachment preview and input
type Chat struct {
	viewport viewport.Model
	input    textarea.Model
	width    int
	height   int
	focused  bool

	messages []Message
	copied   map[string]bool
	// copyRows maps a content line to the id of the AI message whose copy
	// control is drawn on it.
	copyRows map[int]string

	attachment *preview.Preview

	pending     int
	waitStart   time.Time
	waitingVerb string
	frame       int
	spinnerID   int
}

// NewChat creates a new chat panel
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = "Ask a question about your documents..."
	ti.CharLimit = 0
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""
	// Enter sends; these insert a line break instead.
	ti.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("shift+enter", "alt+enter"))
	modals.ApplyTextareaStyles(&ti)

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{
		viewport: vp,
		input:    ti,
		copied:   make(map[string]bool),
		copyRows: make(map[int]string),
	}
	c.updateContent(true)
	return c
}

// SetSize sets the chat panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.layout()
}

// layout recomputes inner sizes; the preview strip takes space from the transcript.
func (c *Chat) layout() {
	l := c.regions()
	c.viewport.SetWidth(l.ViewportWidth)
	c.viewport.SetHeight(l.ViewportHeight)
	c.input.SetWidth(l.InputWidth)

	logger.WithComponent("ui").Debug("chat layout", "outer_w", c.width, "outer_h", c.height,
		"viewport_w", l.ViewportWidth, "viewport_h", l.ViewportHeight)
	c.updateContent(false)
}

func (c *Chat) regions() ChatLayout {
	return GetViewContext().ChatLayout(c.width, c.height, c.previewHeight())
}

func (c *Chat) previewHeight() int {
	if c.attachment == nil {
		return 0
	}
	return lipgloss.Height(c.renderPreview())
}

// SetFocused sets the focus state
func (c *Chat) SetFocused(focused bool) tea.Cmd {
	c.focused = focused
	if focused {
		return c.input.Focus()
	}
	c.input.Blur()
	return nil
}

// IsFocused returns the focus state
func (c *Chat) IsFocused() bool {
	return c.focused
}

// SetMessages replaces the transcript and scrolls to the newest message.
func (c *Chat) SetMessages(messages []Message) {
	c.messages = messages
	for id := range c.copied {
		if !c.hasMessage(id) {
			delete(c.copied, id)
		}
	}
	c.updateContent(true)
}

func (c *Chat) hasMessage(id string) bool {
	for _, m := range c.messages {
		if m.ID == id {
			return true
		}
	}
	return false
}

// Messages returns the transcript being displayed.
func (c *Chat) Messages() []Message {
	return c.messages
}

// SetCopied switches the copy control of one message between its two states.
func (c *Chat) SetCopied(id string, copied bool) {
	if copied {
		c.copied[id] = true
	} else {
		delete(c.copied, id)
	}
	c.updateContent(false)
}

// IsCopied reports whether the message currently shows "copied".
func (c *Chat) IsCopied(id string) bool {
	return c.copied[id]
}

// LastAIMessage returns the newest AI message, if any.
func (c *Chat) LastAIMessage() (Message, bool) {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Sender == SenderAI {
			return c.messages[i], true
		}
	}
	return Message{}, false
}

// SetAttachment shows the preview strip for p, or hides it when p is nil.
func (c *Chat) SetAttachment(p *preview.Preview) {
	c.attachment = p
	c.layout()
}

// Attachment returns the file shown in the preview strip.
func (c *Chat) Attachment() *preview.Preview {
	return c.attachment
}

// SetPending sets how many replies are outstanding. Going from none to some
// starts the waiting indicator and returns the command that animates it.
func (c *Chat) SetPending(n int) tea.Cmd {
	if n < 0 {
		n = 0
	}
	was := c.pending
	c.pending = n
	var cmd tea.Cmd
	if was == 0 && n > 0 {
		c.waitStart = time.Now()
		c.waitingVerb = randomWaitingVerb()
		c.frame = 0
		c.spinnerID++
		cmd = c.spinnerTick()
	}
	c.updateContent(was == 0 && n > 0)
	return cmd
}

// Pending returns the number of outstanding replies.
func (c *Chat) Pending() int {
	return c.pending
}

func (c *Chat) spinnerTick() tea.Cmd {
	return SpinnerTick(c.spinnerID)
}

// InputValue returns the input text with surrounding whitespace removed.
func (c *Chat) InputValue() string {
	return strings.TrimSpace(c.input.Value())
}

// ClearInput clears the input field
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// SetInput replaces the input text and puts the cursor at its end.
func (c *Chat) SetInput(value string) {
	c.input.SetValue(value)
	c.input.MoveToEnd()
}

// InsertInput inserts text at the cursor, as a paste would.
func (c *Chat) InsertInput(text string) {
	c.input.InsertString(text)
}

// CopyTargetAt returns the message whose copy control is drawn at the panel
// relative row y (row 0 is the top border).
func (c *Chat) CopyTargetAt(y int) (string, bool) {
	line := y - 1 + c.viewport.YOffset()
	if y < 1 || y > c.viewport.Height() {
		return "", false
	}
	id, ok := c.copyRows[line]
	return id, ok
}

func (c *Chat) renderEmpty() string {
	return lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		Render("Upload a document, then ask about it...")
}

func (c *Chat) renderAvatar(s Sender) string {
	if s == SenderAI {
		return ChatAssistantAvatarStyle.Render(s.Avatar())
	}
	return ChatUserAvatarStyle.Render(s.Avatar())
}

func (c *Chat) renderBody(msg Message, width int) string {
	if msg.Sender == SenderAI {
		return renderMarkdown(strings.TrimSpace(msg.Text), width)
	}
	return ChatMessageStyle.Render(wrapText(msg.Text, width))
}

func (c *Chat) renderCopyControl(id string) string {
	if c.copied[id] {
		return ChatCopiedStyle.Render(copiedLabel)
	}
	return ChatCopyStyle.Render(copyLabel)
}

// updateContent re-renders the transcript. toBottom forces a scroll to the
// newest line; otherwise the view only follows if it was already there.
func (c *Chat) updateContent(toBottom bool) {
	wrapWidth := c.viewport.Width()
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}

	c.copyRows = make(map[int]string)
	var sb strings.Builder

	if len(c.messages) == 0 && c.pending == 0 {
		sb.WriteString(c.renderEmpty())
	}

	for i, msg := range c.messages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(c.renderAvatar(msg.Sender))
		sb.WriteString("\n")
		sb.WriteString(c.renderBody(msg, wrapWidth))

		if msg.Sender == SenderAI {
			sb.WriteString("\n")
			c.copyRows[strings.Count(sb.String(), "\n")] = msg.ID
			sb.WriteString(c.renderCopyControl(msg.ID))
		}
	}

	if c.pending > 0 {
		if len(c.messages) > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(c.renderAvatar(SenderAI))
		sb.WriteString("\n")
		sb.WriteString(renderWaiting(c.waitingVerb, c.frame, time.Since(c.waitStart)))
		if c.pending > 1 {
			sb.WriteString(SidebarMetaStyle.Render(fmt.Sprintf("  %d replies pending", c.pending)))
		}
	}

	follow := toBottom || c.viewport.AtBottom()
	c.viewport.SetContent(sb.String())
	if follow {
		c.viewport.GotoBottom()
	}
}

// renderPreview draws the attachment strip: a thumbnail for images, an icon
// for everything else.
func (c *Chat) renderPreview() string {
	p := c.attachment
	if p == nil {
		return ""
	}

	name := lipgloss.NewStyle().Foreground(ColorText).Bold(true).Render(p.Name)
	meta := SidebarMetaStyle.Render(fmt.Sprintf("%s · %s", p.ContentType, humanize.Bytes(uint64(p.Size))))
	dismiss := FooterKeyStyle.Render("ctrl+x") + FooterDescStyle.Render(" remove")
	info := lipgloss.JoinVertical(lipgloss.Left, name, meta, dismiss)

	var visual string
	if p.IsImage() && p.Thumbnail != nil {
		visual = renderThumbnail(p.Thumbnail)
	} else {
		glyph := lipgloss.NewStyle().
			Foreground(ColorTextInverse).
			Background(ColorSecondary).
			Bold(true).
			Padding(0, 1).
			Render(p.Icon.Glyph)
		visual = lipgloss.JoinVertical(lipgloss.Center, glyph, SidebarMetaStyle.Render(p.Icon.Label))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, visual, "  ", info)
	return PreviewStyle.Width(c.width).Render(body)
}

// Update handles messages
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	switch msg := msg.(type) {
	case SpinnerTickMsg:
		if msg.ID != c.spinnerID || c.pending == 0 {
			return c, nil
		}
		c.frame++
		c.updateContent(false)
		return c, c.spinnerTick()

	case tea.MouseClickMsg:
		if msg.Button == tea.MouseLeft {
			if id, ok := c.CopyTargetAt(msg.Y); ok {
				return c, func() tea.Msg { return CopyMessageMsg{ID: id} }
			}
		}
		return c, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "pgup", "pgdown", "ctrl+up", "ctrl+down", "home", "end":
			var cmd tea.Cmd
			c.viewport, cmd = c.viewport.Update(msg)
			return c, cmd
		}
		if !c.focused {
			return c, nil
		}
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd

	case tea.PasteMsg:
		if !c.focused {
			return c, nil
		}
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd
	}

	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	return c, cmd
}

// View renders the chat panel
func (c *Chat) View() string {
	panelStyle := PanelStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
	}

	parts := []string{panelStyle.Width(c.width).Height(c.regions().TranscriptHeight).Render(c.viewport.View())}
	if c.attachment != nil {
		parts = append(parts, c.renderPreview())
	}

	inputStyle := ChatInputStyle
	if c.focused {
		inputStyle = ChatInputFocusedStyle
	}
	parts = append(parts, inputStyle.Width(c.width).Render(c.input.View()))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// RefreshStyles reapplies theme colors that the input captured when built.
func (c *Chat) RefreshStyles() {
	modals.ApplyTextareaStyles(&c.input)
	c.updateContent(false)
}
