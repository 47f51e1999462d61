// Package history keeps the bounded list of recently sent prompts.
//
// The list is newest-first, capped at MaxEntries, and written back to the
// preference store as a whole on every change. Entries are never edited;
// the oldest one is evicted when a new prompt pushes the list over capacity.
package history

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/rivo/uniseg"

	"github.com/nexara/nexara/internal/logger"
	"github.com/nexara/nexara/internal/prefs"
)

const (
	// MaxEntries is the number of prompts kept.
	MaxEntries = 10
	// TitleLimit is the number of characters of a prompt kept in its title.
	TitleLimit = 30
	// Ellipsis marks a truncated title.
	Ellipsis = "..."
	// TimestampLayout formats Entry.Timestamp.
	TimestampLayout = "15:04:05"
)

// Entry is one remembered prompt.
type Entry struct {
	ID        int64  `json:"id"` // unix milliseconds at creation
	Title     string `json:"title"`
	Timestamp string `json:"timestamp"`
}

// Title shortens text to TitleLimit user-perceived characters, appending
// Ellipsis when anything was cut.
func Title(text string) string {
	if uniseg.GraphemeClusterCount(text) <= TitleLimit {
		return text
	}
	var b strings.Builder
	g := uniseg.NewGraphemes(text)
	for n := 0; n < TitleLimit && g.Next(); n++ {
		b.WriteString(g.Str())
	}
	return b.String() + Ellipsis
}

// InputText is the text placed back into the input when e is activated.
// Every ellipsis is dropped, not only the one Title appended.
func InputText(e Entry) string {
	return strings.ReplaceAll(e.Title, Ellipsis, "")
}

// Manager owns the prompt list.
type Manager struct {
	store prefs.Store
	now   func() time.Time

	mu       sync.Mutex
	entries  []Entry
	onChange func([]Entry)
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager loads the persisted list from store.
func NewManager(store prefs.Store, opts ...Option) *Manager {
	m := &Manager{store: store, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	m.entries = load(store)
	return m
}

func load(store prefs.Store) []Entry {
	raw, ok := store.Get(prefs.KeyHistory)
	if !ok {
		return []Entry{}
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		logger.WithComponent("history").Warn("discarding unreadable history", "error", err)
		return []Entry{}
	}
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries
}

// OnChange registers fn to be called with the new list after every Record.
func (m *Manager) OnChange(fn func([]Entry)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

// Entries returns a copy of the list, newest first.
func (m *Manager) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Len returns the number of entries.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Record remembers text as the newest prompt. Blank text is ignored and
// reported as false.
func (m *Manager) Record(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	m.mu.Lock()
	now := m.now()
	entry := Entry{
		ID:        now.UnixMilli(),
		Title:     Title(text),
		Timestamp: now.Format(TimestampLayout),
	}
	entries := make([]Entry, 0, MaxEntries)
	entries = append(entries, entry)
	entries = append(entries, m.entries...)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	m.entries = entries
	snapshot := make([]Entry, len(entries))
	copy(snapshot, entries)
	onChange := m.onChange
	m.mu.Unlock()

	m.persist(snapshot)
	if onChange != nil {
		onChange(snapshot)
	}
	return true
}

func (m *Manager) persist(entries []Entry) {
	raw, err := json.Marshal(entries)
	if err != nil {
		logger.WithComponent("history").Error("failed to encode history", "error", err)
		return
	}
	if err := m.store.Set(prefs.KeyHistory, raw); err != nil {
		logger.WithComponent("history").Error("failed to persist history", "error", err)
	}
}
