// Package clipboard writes text to the system clipboard.
package clipboard

import (
	"sync"

	"golang.design/x/clipboard"

	perrors "github.com/nexara/nexara/internal/errors"
	"github.com/nexara/nexara/internal/logger"
)

var (
	initOnce sync.Once
	initErr  error
)

// Init initializes the clipboard. It is safe to call multiple times; the
// first result is remembered.
func Init() error {
	initOnce.Do(func() {
		if err := clipboard.Init(); err != nil {
			logger.Warn("Clipboard: failed to initialize: %v", err)
			initErr = perrors.E(perrors.Op("clipboard.Init"), perrors.KindClipboard,
				perrors.Msg("clipboard unavailable"), err)
			return
		}
		logger.Debug("Clipboard: initialized")
	})
	return initErr
}

// System is the clipboard of the machine running the TUI.
type System struct{}

// WriteText replaces the clipboard contents with text.
func (System) WriteText(text string) error {
	if err := Init(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	logger.Debug("Clipboard: wrote %d bytes", len(text))
	return nil
}

// Memory is an in-process clipboard, used when the system one is unavailable
// and in tests.
type Memory struct {
	mu   sync.Mutex
	text string
}

// WriteText stores text.
func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// Text returns the last written text.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}
