package modals

import (
	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/nexara/nexara/internal/keys"
)

// initHuhForm initializes a huh form eagerly so it renders correctly
// immediately. Call this in every modal constructor after creating the form.
func initHuhForm(form *huh.Form) {
	form.Init()
}

// huhFormUpdate is the common Update logic for huh-based modals.
// Enter and Escape belong to the app-layer modal handlers; everything else
// goes to the form.
func huhFormUpdate(form *huh.Form, msg tea.Msg) (*huh.Form, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Enter, keys.Escape:
			return form, nil
		}
	}

	m, cmd := form.Update(msg)
	if f, ok := m.(*huh.Form); ok {
		form = f
	}
	return form, cmd
}

// ModalTheme returns a huh theme that matches the current modal color palette.
// Forms pick it up when they are built, so a theme switch applies to the
// next modal opened.
func ModalTheme() huh.Theme {
	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		t := huh.ThemeBase(isDark)

		// Focused field: left border indicator
		t.Focused.Base = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(ColorPrimary)
		t.Focused.Card = t.Focused.Base
		t.Focused.Title = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
		t.Focused.Description = lipgloss.NewStyle().Foreground(ColorTextMuted).Italic(true)
		t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(ColorWarning).SetString(" *")
		t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(ColorWarning)

		t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(ColorPrimary).SetString("> ")
		t.Focused.NextIndicator = lipgloss.NewStyle().Foreground(ColorPrimary).MarginLeft(1).SetString("→")
		t.Focused.PrevIndicator = lipgloss.NewStyle().Foreground(ColorPrimary).MarginRight(1).SetString("←")
		t.Focused.Option = lipgloss.NewStyle().Foreground(ColorText)

		t.Focused.FocusedButton = lipgloss.NewStyle().
			Padding(0, 2).
			MarginRight(1).
			Foreground(ColorTextInverse).
			Background(ColorPrimary)
		t.Focused.BlurredButton = lipgloss.NewStyle().
			Padding(0, 2).
			MarginRight(1).
			Foreground(ColorTextMuted)

		t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(ColorPrimary)
		t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(ColorTextMuted)
		t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(ColorPrimary)
		t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(ColorText)

		// Blurred field: no border, same indent
		t.Blurred = t.Focused
		t.Blurred.Base = lipgloss.NewStyle().
			PaddingLeft(2)
		t.Blurred.Card = t.Blurred.Base
		t.Blurred.NextIndicator = lipgloss.NewStyle()
		t.Blurred.PrevIndicator = lipgloss.NewStyle()

		t.Group.Title = lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true)
		t.Group.Description = lipgloss.NewStyle().Foreground(ColorTextMuted)

		t.FieldSeparator = lipgloss.NewStyle().SetString("\n")
		t.Help = help.New().Styles

		return t
	})
}
