package ui

import (
	"image"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

// renderThumbnail draws img with half-block cells: each cell carries the
// upper pixel as foreground and the lower pixel as background.
func renderThumbnail(img image.Image) string {
	if img == nil {
		return ""
	}
	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteString("\n")
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(opaque(img.At(x, y)))
			if y+1 < b.Max.Y {
				style = style.Background(opaque(img.At(x, y+1)))
			}
			sb.WriteString(style.Render("▀"))
		}
	}
	return sb.String()
}

// opaque drops alpha so terminals get a plain RGB color.
func opaque(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0xff}
}
