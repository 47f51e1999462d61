package app

import (
	"time"

	"github.com/nexara/nexara/internal/backend"
	"github.com/nexara/nexara/internal/prefs"
	"github.com/nexara/nexara/internal/preview"
	"github.com/nexara/nexara/internal/ui"
)

// Status line texts.
const (
	StatusInitializing = "Initializing..."
	StatusUploading    = "Uploading..."
	StatusReady        = "System Ready"
	StatusIndexed      = "File Indexed"
	StatusUploadFailed = "Upload Failed"
	StatusCleared      = "Knowledge Cleared"
	StatusUnreachable  = "Server Unreachable"
)

// Fixed transcript texts.
const (
	GreetingMessage    = "Hello! I'm your advanced RAG assistant. Upload your documents to begin."
	uploadSuccessFmt   = "I have successfully processed \"%s\". You can now ask questions about it!"
	uploadFailureFmt   = "Sorry, I couldn't process the file: %s"
	attachmentOnlyText = "(sent %s)"
)

// How long a transient status stays up before it goes back to StatusReady.
const (
	IndexedRevertDelay = 3 * time.Second
	ClearedRevertDelay = 2 * time.Second
)

// FilePanel is what the documents panel shows about the latest upload.
type FilePanel struct {
	Kind ui.FileState
	Name string
	Err  string
}

// State is everything the session controller owns. The ui components are a
// projection of it.
type State struct {
	Messages   []ui.Message
	Status     string
	File       FilePanel
	Attachment *preview.Preview
	Theme      prefs.Theme

	// UploadGen numbers uploads in the order they were issued. A result
	// whose generation is older than this no longer owns the status line
	// or the documents panel.
	UploadGen int

	// PendingChats counts chat requests that have not settled.
	PendingChats int

	// CopyGen numbers copies per message so that an older revert timer
	// cannot clear a newer "copied" indicator.
	CopyGen map[string]int
}

func newState() State {
	return State{
		Theme:   prefs.DefaultTheme,
		CopyGen: make(map[string]int),
	}
}

func (s State) clone() State {
	out := s
	out.Messages = append([]ui.Message(nil), s.Messages...)
	out.CopyGen = make(map[string]int, len(s.CopyGen))
	for k, v := range s.CopyGen {
		out.CopyGen[k] = v
	}
	return out
}

// StartupModalMsg is sent on app start to show the welcome modal
type StartupModalMsg struct{}

// StartupUploadsMsg carries the files given with --upload.
type StartupUploadsMsg struct {
	Paths []string
}

// HealthCheckedMsg reports whether the backend answered /health.
type HealthCheckedMsg struct {
	Err error
}

// UploadDoneMsg is sent when an upload request settles.
type UploadDoneMsg struct {
	Gen    int
	Name   string
	Result *backend.UploadResult
	Err    error
}

// ChatReplyMsg is sent when a chat request settles.
type ChatReplyMsg struct {
	Result *backend.ChatResult
	Err    error
}

// ClearDoneMsg is sent when the backend clear request settles.
type ClearDoneMsg struct {
	Err error
}

// StatusRevertMsg puts the status back to StatusReady if it still reads From.
type StatusRevertMsg struct {
	From string
}

// CopyRevertMsg hides the "copied" indicator of a message.
type CopyRevertMsg struct {
	ID  string
	Gen int
}

// PreviewLoadedMsg is sent when an attachment preview has been built.
type PreviewLoadedMsg struct {
	Path    string
	Preview *preview.Preview
	Err     error
}

// HelpShortcutTriggeredMsg runs a shortcut chosen in the help modal.
type HelpShortcutTriggeredMsg struct {
	Key string
}
