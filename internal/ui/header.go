package ui

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

// StatusKind picks the color of the status indicator.
type StatusKind int

const (
	StatusReady StatusKind = iota
	StatusBusy
	StatusFailed
)

const headerTitle = " nexara"

// Header represents the top header bar: title on the left, backend status
// on the right.
type Header struct {
	width      int
	status     string
	statusKind StatusKind
	server     string
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetStatus sets the status text and its kind
func (h *Header) SetStatus(text string, kind StatusKind) {
	h.status = text
	h.statusKind = kind
}

// Status returns the status text currently shown
func (h *Header) Status() string {
	return h.status
}

// SetServer sets the backend address shown next to the title
func (h *Header) SetServer(addr string) {
	h.server = addr
}

// View renders the header
func (h *Header) View() string {
	left := headerTitle
	if h.server != "" {
		left += "  " + h.server
	}
	var right string
	if h.status != "" {
		right = "● " + h.status + " "
	}

	paddingLen := h.width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if paddingLen < 1 {
		// Drop the server address before the status.
		left = headerTitle
		paddingLen = max(h.width-runewidth.StringWidth(left)-runewidth.StringWidth(right), 0)
	}

	fullContent := left + strings.Repeat(" ", paddingLen) + right
	return h.renderGradient(fullContent, len([]rune(fullContent))-len([]rune(right)))
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

func (h *Header) statusColor() color.Color {
	switch h.statusKind {
	case StatusBusy:
		return ColorWarning
	case StatusFailed:
		return ColorError
	default:
		return ColorSuccess
	}
}

// renderGradient renders content over a gradient from the primary color to
// the background. Runes from statusStart on use the status color.
func (h *Header) renderGradient(content string, statusStart int) string {
	if len(content) == 0 {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	endR, endG, endB := parseHexColor(theme.Bg)
	textColor := lipgloss.Color(theme.Text)
	mutedColor := lipgloss.Color(theme.TextMuted)

	runes := []rune(content)
	width := len(runes)
	titleEnd := len([]rune(headerTitle))
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)
		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))).
			Bold(i < titleEnd)

		switch {
		case i >= statusStart:
			style = style.Foreground(h.statusColor())
		case i >= titleEnd:
			style = style.Foreground(mutedColor)
		default:
			style = style.Foreground(textColor)
		}

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
