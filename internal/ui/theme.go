package ui

import (
	"charm.land/lipgloss/v2"

	"github.com/nexara/nexara/internal/prefs"
)

// Theme defines a complete color palette for the application.
type Theme struct {
	// Name is the display name of the theme
	Name string

	// Primary is the main accent color (used for focus, highlights, headers)
	Primary string
	// Secondary is the secondary accent color (used for assistant messages, info)
	Secondary string

	// Background colors
	Bg         string // Main background
	BgSelected string // Selected item background (defaults to Primary if empty)

	// Text colors
	Text        string // Primary text
	TextMuted   string // Secondary/muted text
	TextInverse string // Text on colored backgrounds

	// Semantic colors
	User      string // User avatar and labels
	Assistant string // AI avatar and labels
	Warning   string
	Error     string
	Success   string

	// Border colors
	Border      string // Default borders
	BorderFocus string // Focused element borders (defaults to Primary if empty)

	// Markdown colors
	MarkdownH1       string
	MarkdownH2       string
	MarkdownH3       string
	MarkdownCode     string // Inline code
	MarkdownCodeBg   string // Code background
	MarkdownLink     string
	MarkdownListItem string

	// CodeStyle is the chroma style used for fenced code blocks.
	CodeStyle string
}

// GetBgSelected returns the selected background color, defaulting to Primary
func (t Theme) GetBgSelected() string {
	if t.BgSelected != "" {
		return t.BgSelected
	}
	return t.Primary
}

// GetBorderFocus returns the focused border color, defaulting to Primary
func (t Theme) GetBorderFocus() string {
	if t.BorderFocus != "" {
		return t.BorderFocus
	}
	return t.Primary
}

// BuiltinThemes holds the palette for each persisted theme value.
var BuiltinThemes = map[prefs.Theme]Theme{
	prefs.ThemeDark: {
		Name:             "Dark",
		Primary:          "#6366F1",
		Secondary:        "#22D3EE",
		Bg:               "#0F172A",
		BgSelected:       "#1E293B",
		Text:             "#F1F5F9",
		TextMuted:        "#94A3B8",
		TextInverse:      "#0F172A",
		User:             "#A78BFA",
		Assistant:        "#22D3EE",
		Warning:          "#F59E0B",
		Error:            "#F87171",
		Success:          "#34D399",
		Border:           "#334155",
		MarkdownH1:       "#A5B4FC",
		MarkdownH2:       "#C4B5FD",
		MarkdownH3:       "#67E8F9",
		MarkdownCode:     "#67E8F9",
		MarkdownCodeBg:   "#1E1E2E",
		MarkdownLink:     "#67E8F9",
		MarkdownListItem: "#818CF8",
		CodeStyle:        "monokai",
	},
	prefs.ThemeLight: {
		Name:             "Light",
		Primary:          "#4F46E5",
		Secondary:        "#0891B2",
		Bg:               "#FFFFFF",
		BgSelected:       "#E0E7FF",
		Text:             "#1F2937",
		TextMuted:        "#6B7280",
		TextInverse:      "#FFFFFF",
		User:             "#7C3AED",
		Assistant:        "#0891B2",
		Warning:          "#D97706",
		Error:            "#DC2626",
		Success:          "#059669",
		Border:           "#D1D5DB",
		BorderFocus:      "#4F46E5",
		MarkdownH1:       "#4F46E5",
		MarkdownH2:       "#7C3AED",
		MarkdownH3:       "#0891B2",
		MarkdownCode:     "#059669",
		MarkdownCodeBg:   "#F3F4F6",
		MarkdownLink:     "#0891B2",
		MarkdownListItem: "#4F46E5",
		CodeStyle:        "github",
	},
}

// GetTheme returns the palette for name, falling back to the default theme.
func GetTheme(name prefs.Theme) Theme {
	if theme, ok := BuiltinThemes[name]; ok {
		return theme
	}
	return BuiltinThemes[prefs.DefaultTheme]
}

var (
	currentTheme     = BuiltinThemes[prefs.DefaultTheme]
	currentThemeName = prefs.DefaultTheme
)

// CurrentTheme returns the currently active theme
func CurrentTheme() Theme {
	return currentTheme
}

// CurrentThemeName returns which persisted theme value is applied.
func CurrentThemeName() prefs.Theme {
	return currentThemeName
}

// SetTheme sets the active theme and regenerates all styles
func SetTheme(name prefs.Theme) {
	if !name.Valid() {
		name = prefs.DefaultTheme
	}
	currentThemeName = name
	currentTheme = GetTheme(name)
	regenerateStyles()
	RefreshModalStyles()
}

// regenerateStyles updates all style variables based on the current theme
func regenerateStyles() {
	t := currentTheme

	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorBorder = lipgloss.Color(t.Border)
	ColorBorderFocus = lipgloss.Color(t.GetBorderFocus())
	ColorBg = lipgloss.Color(t.Bg)
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorTextInverse = lipgloss.Color(t.TextInverse)
	ColorUser = lipgloss.Color(t.User)
	ColorAssistant = lipgloss.Color(t.Assistant)
	ColorWarning = lipgloss.Color(t.Warning)
	ColorError = lipgloss.Color(t.Error)
	ColorSuccess = lipgloss.Color(t.Success)

	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus)

	PanelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)

	SidebarItemStyle = lipgloss.NewStyle().
		Foreground(ColorText).
		Padding(0, 1)

	SidebarSelectedStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(t.GetBgSelected())).
		Foreground(lipgloss.Color(t.Text)).
		Bold(true).
		Padding(0, 1)

	SidebarMetaStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	ChatUserAvatarStyle = lipgloss.NewStyle().
		Foreground(ColorTextInverse).
		Background(ColorUser).
		Bold(true).
		Padding(0, 1)

	ChatAssistantAvatarStyle = lipgloss.NewStyle().
		Foreground(ColorTextInverse).
		Background(ColorAssistant).
		Bold(true).
		Padding(0, 1)

	ChatMessageStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	ChatCopyStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	ChatCopiedStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true)

	ChatInputStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)

	ChatInputFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus).
		Padding(0, 1)

	PreviewStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorSecondary).
		Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2).
		Width(ModalWidth)

	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)

	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		MarginTop(1)

	StatusLoadingStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Italic(true)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	StatusReadyStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)

	MarkdownH1Style = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.MarkdownH1)).
		MarginTop(1)

	MarkdownH2Style = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.MarkdownH2)).
		MarginTop(1)

	MarkdownH3Style = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.MarkdownH3))

	MarkdownBoldStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText)

	MarkdownItalicStyle = lipgloss.NewStyle().
		Italic(true).
		Foreground(ColorText)

	MarkdownInlineCodeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.MarkdownCode)).
		Background(lipgloss.Color(t.MarkdownCodeBg))

	MarkdownListBulletStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.MarkdownListItem))

	MarkdownBlockquoteStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		BorderLeft(true).
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(ColorTextMuted).
		PaddingLeft(1)

	MarkdownHRStyle = lipgloss.NewStyle().
		Foreground(ColorBorder)

	MarkdownLinkStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.MarkdownLink)).
		Underline(true)
}

func init() {
	regenerateStyles()
	RefreshModalStyles()
}
