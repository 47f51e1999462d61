package modals

import (
	"image/color"

	"charm.land/bubbles/v2/textarea"
	"charm.land/lipgloss/v2"
)

// Style variables - these will be set by the parent ui package via SetStyles
var (
	ModalTitleStyle      lipgloss.Style
	ModalHelpStyle       lipgloss.Style
	SidebarItemStyle     lipgloss.Style
	SidebarSelectedStyle lipgloss.Style
	StatusErrorStyle     lipgloss.Style

	ColorPrimary     color.Color
	ColorSecondary   color.Color
	ColorText        color.Color
	ColorTextMuted   color.Color
	ColorTextInverse color.Color
	ColorWarning     color.Color

	ModalInputWidth     int
	ModalInputCharLimit int
	ModalWidth          int
)

// HelpModalMaxVisible is the number of rows the shortcut list shows at once.
const HelpModalMaxVisible = 14

// SetStyles sets the style variables from the parent ui package.
// This must be called before rendering any modals, and again after a theme change.
func SetStyles(
	modalTitle, modalHelp, sidebarItem, sidebarSelected, statusError lipgloss.Style,
	primary, secondary, text, textMuted, textInverse, warning color.Color,
	inputWidth, inputCharLimit, modalWidth int,
) {
	ModalTitleStyle = modalTitle
	ModalHelpStyle = modalHelp
	SidebarItemStyle = sidebarItem
	SidebarSelectedStyle = sidebarSelected
	StatusErrorStyle = statusError

	ColorPrimary = primary
	ColorSecondary = secondary
	ColorText = text
	ColorTextMuted = textMuted
	ColorTextInverse = textInverse
	ColorWarning = warning

	ModalInputWidth = inputWidth
	ModalInputCharLimit = inputCharLimit
	ModalWidth = modalWidth
}

// ApplyTextareaStyles configures a textarea with transparent background styles
// so it matches the terminal background instead of the default black.
func ApplyTextareaStyles(ta *textarea.Model) {
	styles := ta.Styles()

	baseStyle := lipgloss.NewStyle()
	textStyle := lipgloss.NewStyle().
		Foreground(ColorText)
	placeholderStyle := lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	styles.Focused.Base = baseStyle
	styles.Focused.Text = textStyle
	styles.Focused.Placeholder = placeholderStyle
	styles.Focused.CursorLine = textStyle
	styles.Focused.Prompt = textStyle

	// Blurred keeps the same colors
	styles.Blurred = styles.Focused

	ta.SetStyles(styles)
}
