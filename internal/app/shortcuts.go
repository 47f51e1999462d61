package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/nexara/nexara/internal/keys"
	"github.com/nexara/nexara/internal/logger"
	"github.com/nexara/nexara/internal/prefs"
	"github.com/nexara/nexara/internal/ui/modals"
)

// Shortcut represents a keyboard shortcut with its metadata and handler.
// This is the single source of truth for all shortcuts in the application.
type Shortcut struct {
	Key         string                              // The key binding (e.g., "ctrl+u")
	DisplayKey  string                              // Display name in help; defaults to Key
	Description string                              // Human-readable description
	Category    string                              // Section for help modal grouping
	Handler     func(m *Model) (tea.Model, tea.Cmd) // Action to perform
	Condition   func(m *Model) bool                 // Optional extra condition
}

// Categories for organizing shortcuts in the help modal
const (
	CategoryDocuments  = "Documents"
	CategoryChat       = "Chat"
	CategoryNavigation = "Navigation"
	CategoryGeneral    = "General"
)

// categoryOrder defines the display order of categories in the help modal
var categoryOrder = []string{
	CategoryDocuments,
	CategoryChat,
	CategoryNavigation,
	CategoryGeneral,
}

// ShortcutRegistry is the central registry of all keyboard shortcuts.
// Add new shortcuts here and they will automatically appear in the help modal
// and be executable from both direct key presses and the help modal.
var ShortcutRegistry = []Shortcut{
	// Documents
	{
		Key:         keys.CtrlU,
		Description: "Upload a document for indexing",
		Category:    CategoryDocuments,
		Handler:     shortcutUpload,
	},
	{
		Key:         keys.CtrlO,
		Description: "Attach a file to the next message",
		Category:    CategoryDocuments,
		Handler:     shortcutAttach,
	},
	{
		Key:         keys.CtrlX,
		Description: "Remove the attached file",
		Category:    CategoryDocuments,
		Handler:     shortcutDismissAttachment,
		Condition:   func(m *Model) bool { return m.state.Attachment != nil },
	},

	// Chat
	{
		Key:         keys.CtrlY,
		Description: "Copy the last reply",
		Category:    CategoryChat,
		Handler:     shortcutCopyLastReply,
		Condition: func(m *Model) bool {
			_, ok := m.chat.LastAIMessage()
			return ok
		},
	},
	{
		Key:         keys.CtrlL,
		Description: "Clear conversation and documents",
		Category:    CategoryChat,
		Handler:     shortcutClear,
	},

	// Navigation
	{
		Key:         keys.Tab,
		Description: "Switch between input and history",
		Category:    CategoryNavigation,
		Handler:     shortcutToggleFocus,
	},

	// General
	{
		Key:         keys.CtrlT,
		Description: "Toggle light/dark theme",
		Category:    CategoryGeneral,
		Handler:     shortcutTheme,
	},
	{
		Key:         keys.CtrlS,
		Description: "Settings",
		Category:    CategoryGeneral,
		Handler:     shortcutSettings,
	},
	{
		Key:         keys.CtrlC,
		Description: "Quit",
		Category:    CategoryGeneral,
		Handler:     shortcutQuit,
	},
}

// helpShortcut is kept out of ShortcutRegistry because its handler reads the
// registry.
var helpShortcut = Shortcut{
	Key:         keys.F1,
	Description: "Show this help",
	Category:    CategoryGeneral,
}

// DisplayOnlyShortcuts are listed in the help modal but have no handler.
var DisplayOnlyShortcuts = []Shortcut{
	{DisplayKey: "enter", Description: "Send message", Category: CategoryChat},
	{DisplayKey: "shift+enter", Description: "New line", Category: CategoryChat},
	{DisplayKey: "pgup/pgdown", Description: "Scroll transcript", Category: CategoryChat},
	{DisplayKey: "click copy", Description: "Copy a reply", Category: CategoryChat},
	{DisplayKey: "paste a path", Description: "Upload the pasted file", Category: CategoryDocuments},
	{DisplayKey: "↑/↓", Description: "Select a history entry", Category: CategoryNavigation},
	{DisplayKey: "esc", Description: "Back to the input", Category: CategoryNavigation},
}

// isShortcutApplicable checks if a shortcut is applicable given the current model state.
func (m *Model) isShortcutApplicable(s Shortcut) bool {
	return s.Condition == nil || s.Condition(m)
}

// ExecuteShortcut finds and executes a shortcut by key.
// Returns (model, cmd, true) if the shortcut was found and executed.
// Returns (model, nil, false) if the shortcut was not found or its condition failed.
func (m *Model) ExecuteShortcut(key string) (tea.Model, tea.Cmd, bool) {
	if key == helpShortcut.Key {
		result, cmd := shortcutHelp(m)
		return result, cmd, true
	}

	for _, s := range ShortcutRegistry {
		if s.Key != key {
			continue
		}
		if !m.isShortcutApplicable(s) {
			logger.WithComponent("shortcuts").Debug("condition failed", "key", key)
			return m, nil, false
		}
		logger.WithComponent("shortcuts").Debug("executing", "key", key)
		result, cmd := s.Handler(m)
		return result, cmd, true
	}
	return m, nil, false
}

// getApplicableHelpSections builds the help modal sections from the
// shortcuts whose conditions currently hold, plus the display-only ones.
func (m *Model) getApplicableHelpSections(registry []Shortcut, displayOnly []Shortcut) []modals.HelpSection {
	categories := make(map[string][]modals.HelpShortcut)

	add := func(s Shortcut) {
		displayKey := s.DisplayKey
		if displayKey == "" {
			displayKey = s.Key
		}
		categories[s.Category] = append(categories[s.Category], modals.HelpShortcut{
			Key:  displayKey,
			Desc: s.Description,
		})
	}

	for _, s := range registry {
		if m.isShortcutApplicable(s) {
			add(s)
		}
	}
	for _, s := range displayOnly {
		add(s)
	}

	var sections []modals.HelpSection
	for _, cat := range categoryOrder {
		if shortcuts := categories[cat]; len(shortcuts) > 0 {
			sections = append(sections, modals.HelpSection{
				Title:     cat,
				Shortcuts: shortcuts,
			})
		}
	}
	return sections
}

// isDisplayOnly reports whether key names a help entry with no handler.
func isDisplayOnly(key string) bool {
	for _, s := range DisplayOnlyShortcuts {
		if s.DisplayKey == key {
			return true
		}
	}
	return false
}

// =============================================================================
// Shortcut Handlers
// =============================================================================

func shortcutUpload(m *Model) (tea.Model, tea.Cmd) {
	state := modals.NewPathState(modals.PurposeUpload)
	m.modal.Show(state)
	return m, state.Input.Focus()
}

func shortcutAttach(m *Model) (tea.Model, tea.Cmd) {
	state := modals.NewPathState(modals.PurposeAttach)
	m.modal.Show(state)
	return m, state.Input.Focus()
}

func shortcutDismissAttachment(m *Model) (tea.Model, tea.Cmd) {
	m.dismissAttachment()
	return m, nil
}

func shortcutCopyLastReply(m *Model) (tea.Model, tea.Cmd) {
	return m, m.copyLastReply()
}

func shortcutClear(m *Model) (tea.Model, tea.Cmd) {
	return m, m.Clear()
}

func shortcutToggleFocus(m *Model) (tea.Model, tea.Cmd) {
	return m, m.toggleFocus()
}

func shortcutTheme(m *Model) (tea.Model, tea.Cmd) {
	m.ToggleTheme()
	return m, nil
}

func shortcutSettings(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewSettingsState(
		m.config.GetServerURL(),
		string(m.state.Theme),
		[]string{string(prefs.ThemeDark), string(prefs.ThemeLight)},
		m.config.GetNotificationsEnabled(),
	))
	return m, nil
}

func shortcutHelp(m *Model) (tea.Model, tea.Cmd) {
	allShortcuts := append(append([]Shortcut(nil), ShortcutRegistry...), helpShortcut)
	sections := m.getApplicableHelpSections(allShortcuts, DisplayOnlyShortcuts)
	m.modal.Show(modals.NewHelpState(sections))
	return m, nil
}

func shortcutQuit(m *Model) (tea.Model, tea.Cmd) {
	return m, tea.Quit
}
