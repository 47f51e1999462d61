package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
)

func TestNewFooter(t *testing.T) {
	footer := NewFooter()
	if footer == nil {
		t.Fatal("NewFooter() returned nil")
	}
	if len(footer.Bindings()) == 0 {
		t.Error("Expected default bindings")
	}
	if footer.flashMessage != nil {
		t.Error("Expected no flash message initially")
	}
}

func TestFooter_SetFlash(t *testing.T) {
	footer := NewFooter()

	footer.SetFlash("Test error message", FlashError)

	if footer.flashMessage == nil {
		t.Fatal("Expected flash message to be set")
	}
	if footer.flashMessage.Text != "Test error message" {
		t.Errorf("Expected text 'Test error message', got %q", footer.flashMessage.Text)
	}
	if footer.flashMessage.Duration != DefaultFlashDuration {
		t.Errorf("Expected duration %v, got %v", DefaultFlashDuration, footer.flashMessage.Duration)
	}
}

func TestFooter_ClearFlash(t *testing.T) {
	footer := NewFooter()

	footer.SetFlash("Test message", FlashInfo)
	if !footer.HasFlash() {
		t.Error("Expected HasFlash() to return true")
	}

	footer.ClearFlash()
	if footer.HasFlash() {
		t.Error("Expected HasFlash() to return false after ClearFlash()")
	}
}

func TestFlashMessage_IsExpired(t *testing.T) {
	msg := &FlashMessage{Text: "Test", CreatedAt: time.Now(), Duration: 5 * time.Second}
	if msg.IsExpired() {
		t.Error("New message should not be expired")
	}

	expired := &FlashMessage{Text: "Test", CreatedAt: time.Now().Add(-10 * time.Second), Duration: 5 * time.Second}
	if !expired.IsExpired() {
		t.Error("Old message should be expired")
	}
}

func TestFooter_ClearIfExpired(t *testing.T) {
	footer := NewFooter()

	footer.SetFlash("Not expired", FlashInfo)
	if footer.ClearIfExpired() {
		t.Error("Should not clear non-expired message")
	}

	footer.flashMessage = &FlashMessage{
		Text:      "Expired",
		CreatedAt: time.Now().Add(-10 * time.Second),
		Duration:  5 * time.Second,
	}
	if !footer.ClearIfExpired() {
		t.Error("Should clear expired message")
	}
	if footer.HasFlash() {
		t.Error("Flash should be cleared")
	}
}

func TestFooter_FlashReplacesBindings(t *testing.T) {
	footer := NewFooter()
	footer.SetWidth(200)

	if !strings.Contains(ansi.Strip(footer.View()), "send") {
		t.Error("Bindings should show without a flash")
	}

	footer.SetFlash("Clipboard unavailable", FlashError)
	view := ansi.Strip(footer.View())
	if !strings.Contains(view, "✕ Clipboard unavailable") {
		t.Errorf("Flash should be visible, got %q", view)
	}
	if strings.Contains(view, "send") {
		t.Error("Bindings should be hidden while a flash is showing")
	}
}

func TestFooter_FlashTypes(t *testing.T) {
	tests := []struct {
		name         string
		flashType    FlashType
		expectedIcon string
	}{
		{"Error", FlashError, "✕"},
		{"Warning", FlashWarning, "⚠"},
		{"Info", FlashInfo, "ℹ"},
		{"Success", FlashSuccess, "✓"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			footer := NewFooter()
			footer.SetWidth(80)
			footer.SetFlash("Test message", tt.flashType)

			if !strings.Contains(footer.View(), tt.expectedIcon) {
				t.Errorf("Expected %s flash to contain icon %q", tt.name, tt.expectedIcon)
			}
		})
	}
}

func TestFlashTick(t *testing.T) {
	if FlashTick() == nil {
		t.Error("FlashTick() should return a command")
	}
}

func bindingKeys(f *Footer) []string {
	var out []string
	for _, b := range f.Bindings() {
		out = append(out, b.Key)
	}
	return out
}

func hasKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func TestFooter_ContextualBindings(t *testing.T) {
	footer := NewFooter()

	footer.SetContext(false, false, false)
	got := bindingKeys(footer)
	if hasKey(got, "ctrl+x") {
		t.Error("remove-file binding should only show with an attachment")
	}
	if hasKey(got, "ctrl+y") {
		t.Error("copy binding should only show when there is a reply")
	}

	footer.SetContext(false, true, true)
	got = bindingKeys(footer)
	if !hasKey(got, "ctrl+x") || !hasKey(got, "ctrl+y") {
		t.Errorf("expected attachment and copy bindings, got %v", got)
	}

	footer.SetContext(true, true, true)
	got = bindingKeys(footer)
	if hasKey(got, "ctrl+o") {
		t.Error("input bindings should be hidden while history is focused")
	}
	if !hasKey(got, "enter") {
		t.Error("history should offer enter to reuse a prompt")
	}
}
