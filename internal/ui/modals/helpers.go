package modals

import (
	"github.com/mattn/go-runewidth"
)

// selectableLines renders items as a list with the selected one highlighted.
// offset is the position of items[0] in the full list, so selected can be
// given as an index into the full list.
func selectableLines(items []string, offset, selected int) []string {
	lines := make([]string, 0, len(items))
	for i, item := range items {
		style := SidebarItemStyle
		prefix := "  "
		if offset+i == selected {
			style = SidebarSelectedStyle
			prefix = "> "
		}
		lines = append(lines, style.Render(prefix+item))
	}
	return lines
}

// TruncatePath shortens path from the beginning with an ellipsis so it fits
// in maxWidth cells.
func TruncatePath(path string, maxWidth int) string {
	width := runewidth.StringWidth(path)
	if width <= maxWidth {
		return path
	}
	if maxWidth <= 3 {
		return "..."
	}
	return "..." + runewidth.TruncateLeft(path, width-maxWidth+3, "")
}
