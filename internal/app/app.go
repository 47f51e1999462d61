package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/nexara/nexara/internal/backend"
	"github.com/nexara/nexara/internal/clipboard"
	"github.com/nexara/nexara/internal/config"
	"github.com/nexara/nexara/internal/history"
	"github.com/nexara/nexara/internal/logger"
	"github.com/nexara/nexara/internal/notification"
	"github.com/nexara/nexara/internal/prefs"
	"github.com/nexara/nexara/internal/ui"
)

// Focus represents which panel is focused
type Focus int

const (
	FocusChat Focus = iota
	FocusHistory
)

func (f Focus) String() string {
	if f == FocusHistory {
		return "history"
	}
	return "chat"
}

// Backend is the document-chat service. *backend.Client implements it.
type Backend interface {
	Upload(ctx context.Context, path string) (*backend.UploadResult, error)
	Chat(ctx context.Context, message, attachmentPath string) (*backend.ChatResult, error)
	Clear(ctx context.Context) error
	Health(ctx context.Context) error
}

// BackendFactory builds a Backend for a server address. It is used when the
// address is changed from the settings modal.
type BackendFactory func(serverURL string) Backend

// Clipboard receives copied replies.
type Clipboard interface {
	WriteText(text string) error
}

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	version string
	header  *ui.Header
	footer  *ui.Footer
	sidebar *ui.Sidebar
	chat    *ui.Chat
	modal   *ui.Modal

	width  int
	height int
	focus  Focus

	backend    Backend
	newBackend BackendFactory
	clipboard  Clipboard
	notifier   notification.Sender
	prefs      *prefs.Preferences
	history    *history.Manager

	historyOpts []history.Option

	// Uploads queued by --upload, issued once the first frame is drawn.
	startupUploads []string

	state State
}

// Option configures a Model.
type Option func(*Model)

// WithBackend sets the service the model talks to.
func WithBackend(b Backend) Option {
	return func(m *Model) { m.backend = b }
}

// WithBackendFactory sets how a new Backend is built after the server
// address changes.
func WithBackendFactory(f BackendFactory) Option {
	return func(m *Model) { m.newBackend = f }
}

// WithClipboard replaces the system clipboard.
func WithClipboard(c Clipboard) Option {
	return func(m *Model) { m.clipboard = c }
}

// WithNotifier replaces desktop notifications.
func WithNotifier(n notification.Sender) Option {
	return func(m *Model) { m.notifier = n }
}

// WithStore sets where the theme and prompt history are kept.
func WithStore(s prefs.Store) Option {
	return func(m *Model) { m.prefs = prefs.New(s) }
}

// WithHistoryClock overrides the clock used to stamp history entries.
func WithHistoryClock(now func() time.Time) Option {
	return func(m *Model) { m.historyOpts = append(m.historyOpts, history.WithClock(now)) }
}

// WithStartupUploads queues files to upload as soon as the app starts.
func WithStartupUploads(paths []string) Option {
	return func(m *Model) { m.startupUploads = paths }
}

// New creates a new app model
func New(cfg *config.Config, version string, opts ...Option) *Model {
	m := &Model{
		config:  cfg,
		version: version,
		header:  ui.NewHeader(),
		footer:  ui.NewFooter(),
		sidebar: ui.NewSidebar(),
		chat:    ui.NewChat(),
		modal:   ui.NewModal(),
		focus:   FocusChat,
		state:   newState(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.newBackend == nil {
		timeout := cfg.Timeout()
		m.newBackend = func(serverURL string) Backend {
			return backend.New(serverURL, backend.WithTimeout(timeout), backend.WithUserAgent("nexara/"+version))
		}
	}
	if m.backend == nil {
		m.backend = m.newBackend(cfg.GetServerURL())
	}
	if m.clipboard == nil {
		m.clipboard = clipboard.System{}
	}
	if m.notifier == nil {
		m.notifier = notification.Desktop{}
	}
	if m.prefs == nil {
		m.prefs = prefs.New(prefs.NewMemoryStore())
	}

	m.history = history.NewManager(m.prefs.Store(), m.historyOpts...)
	m.history.OnChange(m.sidebar.SetHistory)
	m.sidebar.SetHistory(m.history.Entries())

	// Applied palette and persisted value start out in agreement.
	m.state.Theme = m.prefs.Theme()
	ui.SetTheme(m.state.Theme)
	m.chat.RefreshStyles()

	m.header.SetServer(cfg.GetServerURL())
	m.setStatus(StatusInitializing)
	m.AddMessage(GreetingMessage, ui.SenderAI)
	m.chat.SetFocused(true)
	m.sidebar.SetFocused(false)

	logger.WithComponent("app").Info("model created",
		"server", cfg.GetServerURL(),
		"theme", m.state.Theme,
		"history", len(m.history.Entries()),
	)
	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.checkHealth(),
		func() tea.Msg { return StartupModalMsg{} },
		m.chat.SetFocused(true),
	}
	if len(m.startupUploads) > 0 {
		paths := m.startupUploads
		m.startupUploads = nil
		cmds = append(cmds, func() tea.Msg { return StartupUploadsMsg{Paths: paths} })
	}
	return tea.Batch(cmds...)
}

// State returns a copy of the session state.
func (m *Model) State() State {
	return m.state.clone()
}

// Status returns the status line text.
func (m *Model) Status() string {
	return m.state.Status
}

// Focus returns which panel has the keyboard.
func (m *Model) Focus() Focus {
	return m.focus
}

// History returns the prompt history manager.
func (m *Model) History() *history.Manager {
	return m.history
}
