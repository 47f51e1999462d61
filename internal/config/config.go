package config

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"

	perrors "github.com/nexara/nexara/internal/errors"
)

const (
	// DefaultServerURL is where the document-chat backend listens by default.
	DefaultServerURL = "http://localhost:8000"

	// DefaultTimeoutSeconds bounds a single backend request. Indexing a large
	// document can take a while, so this is generous.
	DefaultTimeoutSeconds = 120

	// HomeEnv overrides the config directory (default ~/.nexara).
	HomeEnv = "NEXARA_HOME"
)

// Config holds the application configuration
type Config struct {
	ServerURL            string `json:"server_url" env:"NEXARA_SERVER_URL"`
	TimeoutSeconds       int    `json:"timeout_seconds,omitempty" env:"NEXARA_TIMEOUT_SECONDS"`
	NotificationsEnabled bool   `json:"notifications_enabled,omitempty" env:"NEXARA_NOTIFICATIONS"` // Desktop notification when an upload finishes
	WelcomeShown         bool   `json:"welcome_shown,omitempty"`

	mu       sync.RWMutex
	filePath string
}

// Dir returns the directory holding config.json and prefs.json.
func Dir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".nexara"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Default returns a config with every field at its default and no file path.
func Default() *Config {
	return &Config{
		ServerURL:      DefaultServerURL,
		TimeoutSeconds: DefaultTimeoutSeconds,
	}
}

// Load reads the config from disk (or starts from defaults if it doesn't
// exist) and overlays NEXARA_* environment variables.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, perrors.ConfigLoadFailed("~/.nexara", err)
	}
	return LoadFile(path)
}

// LoadFile is Load with an explicit path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	cfg.filePath = path

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, perrors.ConfigLoadFailed(path, err)
	}
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, perrors.ConfigLoadFailed(path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, perrors.ConfigLoadFailed("environment", err)
	}

	cfg.ensureDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ensureDefaults fills fields that an older or hand-edited file left empty.
// Only called from LoadFile, before the config is shared.
func (c *Config) ensureDefaults() {
	if c.ServerURL == "" {
		c.ServerURL = DefaultServerURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
}

// Validate checks that the config is usable.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.ServerURL == "" {
		return perrors.ConfigInvalid("server_url is empty")
	}
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return perrors.ConfigInvalid("server_url must be an http(s) URL, got " + c.ServerURL)
	}
	if c.TimeoutSeconds < 0 {
		return perrors.ConfigInvalid("timeout_seconds must not be negative")
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.filePath == "" {
		return perrors.ConfigSaveFailed("", perrors.E(perrors.KindConfig, "config has no file path"))
	}
	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}
	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// SetFilePath sets where Save writes. Used by tests.
func (c *Config) SetFilePath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filePath = path
}

// FilePath returns where Save writes.
func (c *Config) FilePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// GetServerURL returns the backend base URL
func (c *Config) GetServerURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ServerURL
}

// SetServerURL overrides the backend base URL (e.g. from --server)
func (c *Config) SetServerURL(u string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ServerURL = u
}

// Timeout returns the per-request timeout
func (c *Config) Timeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// HasSeenWelcome returns whether the greeting has been shown on a previous run
func (c *Config) HasSeenWelcome() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.WelcomeShown
}

// MarkWelcomeShown marks the greeting as shown
func (c *Config) MarkWelcomeShown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.WelcomeShown = true
}
