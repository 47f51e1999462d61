package modals

import (
	"errors"
	"net/url"
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

// SettingsState is the settings modal: backend address, theme and
// desktop notifications.
type SettingsState struct {
	serverURL     string
	theme         string
	notifications bool

	originalServerURL string
	originalTheme     string

	form *huh.Form
}

func (*SettingsState) modalState() {}

func (s *SettingsState) Title() string { return "Settings" }

func (s *SettingsState) Help() string {
	return "Tab: next field  Enter: save  Esc: cancel"
}

func (s *SettingsState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *SettingsState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// Validate reports why the entered values cannot be saved.
func (s *SettingsState) Validate() error {
	return validateServerURL(s.serverURL)
}

// GetServerURL returns the entered backend address without surrounding space.
func (s *SettingsState) GetServerURL() string {
	return strings.TrimSpace(s.serverURL)
}

// ServerURLChanged reports whether the backend address was edited.
func (s *SettingsState) ServerURLChanged() bool {
	return s.GetServerURL() != s.originalServerURL
}

// GetTheme returns the selected theme name.
func (s *SettingsState) GetTheme() string {
	return s.theme
}

// ThemeChanged reports whether a different theme was picked.
func (s *SettingsState) ThemeChanged() bool {
	return s.theme != s.originalTheme
}

// GetNotificationsEnabled returns whether notifications are enabled
func (s *SettingsState) GetNotificationsEnabled() bool {
	return s.notifications
}

func validateServerURL(v string) error {
	u, err := url.Parse(strings.TrimSpace(v))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New("enter an http(s) address, e.g. http://localhost:8000")
	}
	return nil
}

// NewSettingsState creates the settings modal. themes lists the selectable
// theme names in display order.
func NewSettingsState(serverURL, theme string, themes []string, notifications bool) *SettingsState {
	s := &SettingsState{
		serverURL:         serverURL,
		theme:             theme,
		notifications:     notifications,
		originalServerURL: serverURL,
		originalTheme:     theme,
	}

	themeOptions := make([]huh.Option[string], len(themes))
	for i, name := range themes {
		themeOptions[i] = huh.NewOption(strings.ToUpper(name[:1])+name[1:], name)
	}

	s.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Server").
			Description("Address of the document-chat backend").
			Placeholder("http://localhost:8000").
			CharLimit(ModalInputCharLimit).
			Validate(validateServerURL).
			Value(&s.serverURL),
		huh.NewSelect[string]().
			Title("Theme").
			Options(themeOptions...).
			Value(&s.theme),
		huh.NewConfirm().
			Title("Desktop notifications").
			Description("Notify when a document finishes indexing").
			Affirmative("On").
			Negative("Off").
			Value(&s.notifications),
	)).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalInputWidth).
		WithLayout(huh.LayoutStack)

	initHuhForm(s.form)
	return s
}
