package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FlashType picks the icon and color of a flash message.
type FlashType int

const (
	FlashError FlashType = iota
	FlashWarning
	FlashInfo
	FlashSuccess
)

// FlashMessage is a transient footer notice that replaces the bindings.
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has outlived its duration.
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) > f.Duration
}

// FlashTickMsg asks the app to drop an expired flash.
type FlashTickMsg time.Time

// FlashTick returns a command that fires once the default flash has expired.
func FlashTick() tea.Cmd {
	return tea.Tick(DefaultFlashDuration+100*time.Millisecond, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width          int
	historyFocused bool // Whether the history list has focus
	hasAttachment  bool // Whether a file is pending for the next message
	hasReply       bool // Whether there is an AI message to copy
	flashMessage   *FlashMessage
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(historyFocused, hasAttachment, hasReply bool) {
	f.historyFocused = historyFocused
	f.hasAttachment = hasAttachment
	f.hasReply = hasReply
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetFlash shows text for DefaultFlashDuration
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows text for d
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// ClearFlash removes the flash message
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is showing
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearIfExpired drops an expired flash and reports whether it did
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

// Bindings returns the shortcuts shown for the current context
func (f *Footer) Bindings() []KeyBinding {
	if f.historyFocused {
		return []KeyBinding{
			{Key: "↑/↓", Desc: "select"},
			{Key: "enter", Desc: "reuse prompt"},
			{Key: "tab/esc", Desc: "back to input"},
			{Key: "ctrl+c", Desc: "quit"},
		}
	}

	bindings := []KeyBinding{
		{Key: "enter", Desc: "send"},
		{Key: "shift+enter", Desc: "newline"},
		{Key: "ctrl+o", Desc: "attach"},
	}
	if f.hasAttachment {
		bindings = append(bindings, KeyBinding{Key: "ctrl+x", Desc: "remove file"})
	}
	bindings = append(bindings, KeyBinding{Key: "ctrl+u", Desc: "upload"})
	if f.hasReply {
		bindings = append(bindings, KeyBinding{Key: "ctrl+y", Desc: "copy reply"})
	}
	return append(bindings,
		KeyBinding{Key: "ctrl+l", Desc: "clear"},
		KeyBinding{Key: "ctrl+t", Desc: "theme"},
		KeyBinding{Key: "tab", Desc: "history"},
		KeyBinding{Key: "f1", Desc: "help"},
	)
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil {
		return FooterStyle.Width(f.width).Render(f.renderFlash())
	}

	var parts []string
	for _, b := range f.Bindings() {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")
	return FooterStyle.Width(f.width).MaxHeight(FooterHeight).Render(content)
}

func (f *Footer) renderFlash() string {
	var icon string
	style := lipgloss.NewStyle().Bold(true)
	switch f.flashMessage.Type {
	case FlashError:
		icon = "✕"
		style = style.Foreground(ColorError)
	case FlashWarning:
		icon = "⚠"
		style = style.Foreground(ColorWarning)
	case FlashSuccess:
		icon = "✓"
		style = style.Foreground(ColorSuccess)
	default:
		icon = "ℹ"
		style = style.Foreground(ColorSecondary)
	}
	return style.Render(icon + " " + f.flashMessage.Text)
}
