package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// DrawText draws text from (x, y), clipped to width cells, and returns the
// number of cells used. Grapheme clusters are measured with uniseg, and tabs
// are drawn as a single blank.
func DrawText(screen tcell.Screen, x, y, width int, text string, style tcell.Style) int {
	used := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		w := gr.Width()
		runes := gr.Runes()
		if runes[0] == '\t' {
			runes, w = []rune{' '}, 1
		}
		if used+w > width {
			break
		}
		screen.SetContent(x+used, y, runes[0], runes[1:], style)
		used += w
	}
	return used
}

// FillRow paints width cells of row y starting at x.
func FillRow(screen tcell.Screen, x, y, width int, style tcell.Style) {
	for i := 0; i < width; i++ {
		screen.SetContent(x+i, y, ' ', nil, style)
	}
}
