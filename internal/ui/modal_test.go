package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/nexara/nexara/internal/prefs"
	"github.com/nexara/nexara/internal/ui/modals"
)

func TestModal_ShowHide(t *testing.T) {
	m := NewModal()
	if m.IsVisible() {
		t.Error("new modal should be hidden")
	}
	if m.View(80, 24) != "" {
		t.Error("hidden modal should render nothing")
	}

	m.Show(modals.NewPathState(modals.PurposeUpload))
	if !m.IsVisible() {
		t.Error("Show should make the modal visible")
	}
	if view := ansi.Strip(m.View(80, 24)); !strings.Contains(view, "Upload Document") {
		t.Errorf("modal view missing title:\n%s", view)
	}

	m.Hide()
	if m.IsVisible() || m.State != nil {
		t.Error("Hide should clear the state")
	}
}

func TestModal_Error(t *testing.T) {
	m := NewModal()
	m.Show(modals.NewPathState(modals.PurposeAttach))
	m.SetError("file not found: x.pdf")

	if m.GetError() != "file not found: x.pdf" {
		t.Errorf("GetError() = %q", m.GetError())
	}
	if view := ansi.Strip(m.View(80, 24)); !strings.Contains(view, "file not found: x.pdf") {
		t.Errorf("modal view missing error:\n%s", view)
	}

	m.Show(modals.NewPathState(modals.PurposeAttach))
	if m.GetError() != "" {
		t.Error("showing a new modal should clear the error")
	}
}

func TestModal_UpdateWhenHidden(t *testing.T) {
	m := NewModal()
	if _, cmd := m.Update(nil); cmd != nil {
		t.Error("hidden modal should ignore messages")
	}
}

func TestRefreshModalStyles(t *testing.T) {
	SetTheme(prefs.ThemeLight)
	t.Cleanup(func() { SetTheme(prefs.DefaultTheme) })

	if modals.ModalWidth != ModalWidth {
		t.Errorf("modals.ModalWidth = %d, want %d", modals.ModalWidth, ModalWidth)
	}
	if modals.ColorPrimary != ColorPrimary {
		t.Error("modal colors should follow the theme")
	}
}
