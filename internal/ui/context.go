package ui

import (
	"sync"

	"github.com/nexara/nexara/internal/logger"
)

// ViewContext holds centralized layout calculations.
// All size calculations should go through this to avoid duplication.
type ViewContext struct {
	// Terminal dimensions
	TerminalWidth  int
	TerminalHeight int

	// Calculated dimensions
	HeaderHeight  int
	FooterHeight  int
	ContentHeight int
	SidebarWidth  int
	ChatWidth     int

	mu sync.Mutex
}

var ctx *ViewContext
var ctxOnce sync.Once

// GetViewContext returns the singleton ViewContext instance
func GetViewContext() *ViewContext {
	ctxOnce.Do(func() {
		ctx = &ViewContext{
			HeaderHeight: HeaderHeight,
			FooterHeight: FooterHeight,
		}
	})
	return ctx
}

// UpdateTerminalSize splits the terminal into header, footer, the history
// sidebar and the chat panel. Tiny terminals are clamped to a usable minimum.
func (v *ViewContext) UpdateTerminalSize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	width = max(width, MinTerminalWidth)
	height = max(height, MinTerminalHeight)

	v.TerminalWidth = width
	v.TerminalHeight = height
	v.HeaderHeight = HeaderHeight
	v.FooterHeight = FooterHeight
	v.ContentHeight = height - v.HeaderHeight - v.FooterHeight

	v.SidebarWidth = min(width/SidebarWidthRatio, MaxSidebarWidth)
	v.ChatWidth = width - v.SidebarWidth

	logger.WithComponent("ui").Debug("terminal resized",
		"width", width,
		"height", height,
		"content_h", v.ContentHeight,
		"sidebar_w", v.SidebarWidth,
		"chat_w", v.ChatWidth,
	)
}

// InnerWidth returns the usable width inside a panel with borders
func (v *ViewContext) InnerWidth(panelWidth int) int {
	return max(panelWidth-BorderSize, 1)
}

// InnerHeight returns the usable height inside a panel with borders
func (v *ViewContext) InnerHeight(panelHeight int) int {
	return max(panelHeight-BorderSize, 1)
}

// ChatLayout divides a chat panel. From the top: the bordered transcript,
// the attachment strip and the input box.
type ChatLayout struct {
	TranscriptHeight int // outer height of the bordered transcript panel
	ViewportWidth    int
	ViewportHeight   int
	InputWidth       int
}

// ChatLayout lays out a chat panel of the given outer size. previewHeight is
// 0 when nothing is attached.
func (v *ViewContext) ChatLayout(width, height, previewHeight int) ChatLayout {
	transcript := height - InputTotalHeight - previewHeight
	return ChatLayout{
		TranscriptHeight: transcript,
		ViewportWidth:    v.InnerWidth(width),
		ViewportHeight:   v.InnerHeight(transcript),
		InputWidth:       max(v.InnerWidth(width)-InputPaddingWidth, 1),
	}
}
