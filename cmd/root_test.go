package cmd

import (
	"strings"
	"testing"

	"github.com/nexara/nexara/internal/config"
	"github.com/nexara/nexara/internal/prefs"
)

func TestDebugFlagDefaultTrue(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("debug")
	if flag == nil {
		t.Fatal("--debug flag not found")
	}
	if flag.DefValue != "true" {
		t.Errorf("--debug default = %q, want %q", flag.DefValue, "true")
	}
}

func TestQuietFlagExists(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("quiet")
	if flag == nil {
		t.Fatal("--quiet flag not found")
	}
	if flag.DefValue != "false" {
		t.Errorf("--quiet default = %q, want %q", flag.DefValue, "false")
	}
	if flag.Shorthand != "q" {
		t.Errorf("--quiet shorthand = %q, want %q", flag.Shorthand, "q")
	}
}

func TestUploadFlagRepeatable(t *testing.T) {
	flag := rootCmd.Flags().Lookup("upload")
	if flag == nil {
		t.Fatal("--upload flag not found")
	}
	if flag.Value.Type() != "stringArray" {
		t.Errorf("--upload type = %q, want stringArray", flag.Value.Type())
	}
}

func TestInitConfig_DefaultDebugEnabled(t *testing.T) {
	// Save and restore package state
	origDebug, origQuiet := debugMode, quietMode
	defer func() { debugMode, quietMode = origDebug, origQuiet }()

	debugMode = true
	quietMode = false

	// Should not panic
	initConfig()
}

func TestInitConfig_QuietOverridesDebug(t *testing.T) {
	origDebug, origQuiet := debugMode, quietMode
	defer func() { debugMode, quietMode = origDebug, origQuiet }()

	debugMode = true
	quietMode = true

	// Should not panic - quiet should take precedence
	initConfig()
}

func TestVersionTemplate(t *testing.T) {
	origV, origC, origD := version, commit, date
	defer SetVersionInfo(origV, origC, origD)

	SetVersionInfo("1.2.3", "none", "unknown")
	if got := versionTemplate(); got != "nexara 1.2.3\n" {
		t.Errorf("versionTemplate() = %q", got)
	}

	SetVersionInfo("1.2.3", "abc123", "2026-01-01")
	if got := versionTemplate(); !strings.Contains(got, "commit: abc123") {
		t.Errorf("versionTemplate() = %q, want commit line", got)
	}
}

func TestLoadConfig_ServerOverride(t *testing.T) {
	resetFlags(t)
	t.Setenv(config.HomeEnv, t.TempDir())
	serverURL = "http://example.test:9000"

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.GetServerURL() != "http://example.test:9000" {
		t.Errorf("server = %q", cfg.GetServerURL())
	}
}

func TestLoadConfig_InvalidServer(t *testing.T) {
	resetFlags(t)
	t.Setenv(config.HomeEnv, t.TempDir())
	serverURL = "not a url"

	if _, err := loadConfig(); err == nil {
		t.Error("expected an error for an invalid --server")
	}
}

func TestLoadConfig_Ephemeral(t *testing.T) {
	resetFlags(t)
	ephemeral = true

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.FilePath() != "" {
		t.Errorf("ephemeral config should have no file, got %q", cfg.FilePath())
	}

	store, err := openStore()
	if err != nil {
		t.Fatalf("openStore() error = %v", err)
	}
	if _, ok := store.(*prefs.MemoryStore); !ok {
		t.Errorf("ephemeral store = %T, want *prefs.MemoryStore", store)
	}
}

func TestOpenStore_UsesConfigDir(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	t.Setenv(config.HomeEnv, dir)

	store, err := openStore()
	if err != nil {
		t.Fatalf("openStore() error = %v", err)
	}
	fs, ok := store.(*prefs.FileStore)
	if !ok {
		t.Fatalf("store = %T, want *prefs.FileStore", store)
	}
	if fs.Path() != prefs.DefaultPath(dir) {
		t.Errorf("store path = %q, want %q", fs.Path(), prefs.DefaultPath(dir))
	}
}
