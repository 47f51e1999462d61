// Package ui provides the user interface components for the nexara TUI.
//
// # Overview
//
// The ui package implements the visual components of nexara using the Bubble Tea
// framework and Lipgloss styling library. Components hold only what they draw;
// the app package owns the chat state and pushes it in.
//
// # Layout System
//
// The layout is organized as follows:
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header: title, server, status (1 line)              │
//	├─────────────────┬───────────────────────────────────┤
//	│ Documents       │ Transcript                        │
//	│ History         │                                   │
//	│ (1/3 width,     ├───────────────────────────────────┤
//	│  capped)        │ Attachment preview (optional)     │
//	│                 ├───────────────────────────────────┤
//	│                 │ Input                             │
//	├─────────────────┴───────────────────────────────────┤
//	│ Footer: shortcuts or a flash message (1 line)       │
//	└─────────────────────────────────────────────────────┘
//
// # Components
//
// ViewContext: Singleton that manages centralized layout calculations.
//
// Header: Title, backend address and the status indicator on a gradient.
//
// Footer: Context-aware shortcuts, replaced by a flash message while one is live.
//
// Sidebar: The documents panel (processing, ready or error) above the prompt
// history. Enter or a click on a history entry emits HistoryActivatedMsg.
//
// Chat: The transcript viewport, the attachment preview strip and the input
// textarea. AI replies are rendered as markdown with a copy control that emits
// CopyMessageMsg when clicked.
//
// Modal: Hosts one modals.ModalState at a time (path entry, settings, help,
// welcome).
//
// # Focus System
//
// The input is focused by default. Tab moves focus to the history list and
// Tab or Esc moves it back.
//
// # Styles
//
// Styles are package variables regenerated from the active Theme by SetTheme,
// which also refreshes the modals package. Two themes exist, light and dark.
package ui
