package preview

import (
	"path/filepath"
	"strings"
)

// IconKind is the family of document icon shown for a non-image file.
type IconKind int

const (
	IconGeneric IconKind = iota
	IconPDF
	IconWord
	IconSpreadsheet
	IconSlides
	IconCode
)

// Icon is what the preview strip shows in place of a thumbnail.
type Icon struct {
	Kind  IconKind
	Glyph string
	Label string
}

var icons = map[IconKind]Icon{
	IconGeneric:     {IconGeneric, "▤", "File"},
	IconPDF:         {IconPDF, "▣", "PDF"},
	IconWord:        {IconWord, "W", "Word"},
	IconSpreadsheet: {IconSpreadsheet, "▦", "Spreadsheet"},
	IconSlides:      {IconSlides, "▶", "Slides"},
	IconCode:        {IconCode, "</>", "Code"},
}

// iconByExt is keyed by lower-cased extension without the dot.
var iconByExt = map[string]IconKind{
	"pdf":  IconPDF,
	"doc":  IconWord,
	"docx": IconWord,
	"xls":  IconSpreadsheet,
	"xlsx": IconSpreadsheet,
	"csv":  IconSpreadsheet,
	"ppt":  IconSlides,
	"pptx": IconSlides,
	"py":   IconCode,
	"js":   IconCode,
	"css":  IconCode,
	"html": IconCode,
}

// IconFor picks the icon for a file name by its extension.
func IconFor(name string) Icon {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if kind, ok := iconByExt[ext]; ok {
		return icons[kind]
	}
	return icons[IconGeneric]
}
