package cmd

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexara/nexara/internal/config"
	"github.com/nexara/nexara/internal/history"
	"github.com/nexara/nexara/internal/logger"
	"github.com/nexara/nexara/internal/mockserver"
	"github.com/nexara/nexara/internal/prefs"
)

func TestMain(m *testing.M) {
	// Keep test runs out of the default log file
	logger.Reset()
	logger.Init(os.DevNull)

	code := m.Run()

	logger.Reset()
	os.Exit(code)
}

// resetFlags puts the package-level flag values back to their defaults.
// Cobra keeps values between Execute calls.
func resetFlags(t *testing.T) {
	t.Helper()
	serverURL, ephemeral, attachPath, uploadPaths, skipConfirm = "", false, "", nil, false
	t.Setenv("NEXARA_SERVER_URL", "")
	t.Cleanup(func() {
		serverURL, ephemeral, attachPath, uploadPaths, skipConfirm = "", false, "", nil, false
	})
}

// executeCommand runs the root command with args and returns its output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// startBackend serves the in-memory backend and points a fresh config home
// at it.
func startBackend(t *testing.T) (*mockserver.Server, string) {
	t.Helper()
	t.Setenv(config.HomeEnv, t.TempDir())
	backend := mockserver.New()
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)
	return backend, srv.URL
}

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestStatusCommand(t *testing.T) {
	_, url := startBackend(t)

	out, err := executeCommand(t, "status", "--server", url)
	require.NoError(t, err)
	assert.Equal(t, url+": System Ready\n", out)
}

func TestStatusCommand_Unreachable(t *testing.T) {
	t.Setenv(config.HomeEnv, t.TempDir())
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	_, err := executeCommand(t, "status", "--server", url)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Server Unreachable")
}

func TestUploadCommand(t *testing.T) {
	backend, url := startBackend(t)
	path := writeDoc(t, "notes.txt", "The launch is in May.")

	out, err := executeCommand(t, "upload", "--server", url, path)
	require.NoError(t, err)
	assert.Contains(t, out, "Processing notes.txt...")
	assert.Contains(t, out, "notes.txt (Ready)")
	assert.Equal(t, []string{"notes.txt"}, backend.Documents())
}

func TestUploadCommand_IndexingFailure(t *testing.T) {
	_, url := startBackend(t)
	path := writeDoc(t, "blob.bin", "\x00\x01")

	_, err := executeCommand(t, "upload", "--server", url, path)
	require.Error(t, err)
	assert.Equal(t, "couldn't process blob.bin: "+mockserver.IndexingFailedMessage, err.Error())
}

func TestUploadCommand_MissingFile(t *testing.T) {
	_, url := startBackend(t)

	_, err := executeCommand(t, "upload", "--server", url, filepath.Join(t.TempDir(), "gone.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestAskCommand_RecordsHistory(t *testing.T) {
	_, url := startBackend(t)

	out, err := executeCommand(t, "ask", "--server", url, "What", "is", "indexed?")
	require.NoError(t, err)
	assert.Contains(t, out, "I don't have any documents yet")

	dir, err := config.Dir()
	require.NoError(t, err)
	entries := history.NewManager(prefs.NewFileStore(prefs.DefaultPath(dir))).Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "What is indexed?", entries[0].Title)

	out, err = executeCommand(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, " 1. What is indexed?")
}

func TestAskCommand_AfterUpload(t *testing.T) {
	_, url := startBackend(t)
	doc := writeDoc(t, "report.pdf", "%PDF-1.4")
	image := writeDoc(t, "chart.png", "not really a png")

	_, err := executeCommand(t, "upload", "--server", url, doc)
	require.NoError(t, err)

	out, err := executeCommand(t, "ask", "--server", url, "--attach", image, "Summarize")
	require.NoError(t, err)
	assert.Contains(t, out, "Based on report.pdf")
	assert.Contains(t, out, "I also received chart.png")
}

func TestAskCommand_NothingToSend(t *testing.T) {
	_, url := startBackend(t)

	_, err := executeCommand(t, "ask", "--server", url, "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to send")
}

func TestAskCommand_Ephemeral(t *testing.T) {
	_, url := startBackend(t)

	_, err := executeCommand(t, "ask", "--ephemeral", "--server", url, "hello")
	require.NoError(t, err)

	dir, err := config.Dir()
	require.NoError(t, err)
	_, statErr := os.Stat(prefs.DefaultPath(dir))
	assert.True(t, os.IsNotExist(statErr), "ephemeral runs must not write prefs")
}

func TestClearCommand(t *testing.T) {
	backend, url := startBackend(t)
	doc := writeDoc(t, "report.pdf", "%PDF-1.4")

	_, err := executeCommand(t, "upload", "--server", url, doc)
	require.NoError(t, err)
	require.Len(t, backend.Documents(), 1)

	out, err := executeCommand(t, "clear", "--server", url)
	require.NoError(t, err)
	assert.Equal(t, "Knowledge cleared.\n", out)
	assert.Empty(t, backend.Documents())
}

func TestHistoryCommand_Empty(t *testing.T) {
	t.Setenv(config.HomeEnv, t.TempDir())

	out, err := executeCommand(t, "history")
	require.NoError(t, err)
	assert.Equal(t, "No prompts yet.\n", out)
}
