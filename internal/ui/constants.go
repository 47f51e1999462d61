package ui

import "time"

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// SidebarWidthRatio is the denominator for sidebar width (1/3 of total width)
	SidebarWidthRatio = 3

	// MaxSidebarWidth keeps the history titles from stretching on wide terminals
	MaxSidebarWidth = 44

	// TextareaHeight is the number of lines for the chat input textarea
	TextareaHeight = 3

	// TextareaBorderHeight is the border size around the textarea
	TextareaBorderHeight = 2

	// InputPaddingWidth is the horizontal padding inside the input area (Padding(0, 1) = 1 left + 1 right)
	InputPaddingWidth = 2

	// InputTotalHeight is the total height of the input area (textarea + borders)
	InputTotalHeight = TextareaHeight + TextareaBorderHeight

	// DefaultWrapWidth is the default width for text wrapping when viewport width is unknown
	DefaultWrapWidth = 80

	// MinTerminalWidth and MinTerminalHeight clamp layout math on tiny terminals
	MinTerminalWidth  = 40
	MinTerminalHeight = 12
)

// Modal dimensions
const (
	// ModalWidth is the default width of modals
	ModalWidth = 60

	// ModalInputCharLimit is the character limit for modal text inputs
	ModalInputCharLimit = 1024

	// ModalInputWidth is the width of modal text inputs
	ModalInputWidth = 50
)

// Timings
const (
	// CopiedIndicatorDuration is how long an AI message shows "copied".
	CopiedIndicatorDuration = 2 * time.Second

	// DefaultFlashDuration is how long a footer flash stays up.
	DefaultFlashDuration = 4 * time.Second
)
