package prefs

import (
	"encoding/json"

	"github.com/nexara/nexara/internal/logger"
)

// Theme is the light/dark display mode.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme is used when nothing has been persisted yet.
const DefaultTheme = ThemeDark

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// Valid reports whether t is one of the known themes.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Preferences reads and writes the theme setting on top of a Store.
type Preferences struct {
	store Store
}

// New wraps store.
func New(store Store) *Preferences {
	return &Preferences{store: store}
}

// Store returns the underlying store.
func (p *Preferences) Store() Store {
	return p.store
}

// Theme returns the persisted theme, or DefaultTheme when absent or unreadable.
func (p *Preferences) Theme() Theme {
	raw, ok := p.store.Get(KeyTheme)
	if !ok {
		return DefaultTheme
	}
	var t Theme
	if err := json.Unmarshal(raw, &t); err != nil || !t.Valid() {
		logger.WithComponent("prefs").Warn("ignoring stored theme", "value", string(raw))
		return DefaultTheme
	}
	return t
}

// SetTheme persists t. Write failures are logged and otherwise ignored:
// the in-memory choice still applies for the rest of the session.
func (p *Preferences) SetTheme(t Theme) {
	raw, _ := json.Marshal(t)
	if err := p.store.Set(KeyTheme, raw); err != nil {
		logger.WithComponent("prefs").Error("failed to persist theme", "theme", string(t), "error", err)
	}
}
