package tui

import (
	"github.com/bethropolis/quill/internal/types"
	"github.com/rivo/uniseg"
)

// Viewport is the first visible line and visual column of the text area.
type Viewport struct {
	Top  int
	Left int
}

// Follow scrolls the viewport so the cursor stays visible with scrollOff
// lines of context. width and height are the text area size.
func (v *Viewport) Follow(lines []string, cursor types.Position, width, height, scrollOff, tabWidth int) {
	if height <= 0 || width <= 0 {
		return
	}
	off := scrollOff
	if max := (height - 1) / 2; off > max {
		off = max
	}
	if cursor.Line < v.Top+off {
		v.Top = cursor.Line - off
	}
	// Context below the cursor is limited to the lines that exist.
	below := off
	if rest := len(lines) - 1 - cursor.Line; rest < below {
		below = rest
	}
	if below < 0 {
		below = 0
	}
	if cursor.Line > v.Top+height-1-below {
		v.Top = cursor.Line - height + 1 + below
	}
	if v.Top < 0 {
		v.Top = 0
	}

	col := 0
	if cursor.Line >= 0 && cursor.Line < len(lines) {
		col = VisualColumn(lines[cursor.Line], cursor.Col, tabWidth)
	}
	if col < v.Left {
		v.Left = col
	}
	if col >= v.Left+width {
		v.Left = col - width + 1
	}
	if v.Left < 0 {
		v.Left = 0
	}
}

// VisualColumn returns the screen column of rune index col in line,
// expanding tabs to the next multiple of tabWidth.
func VisualColumn(line string, col, tabWidth int) int {
	if col <= 0 {
		return 0
	}
	x, runes := 0, 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() && runes < col {
		x += clusterWidth(gr.Runes(), gr.Width(), x, tabWidth)
		runes += len(gr.Runes())
	}
	return x
}

func clusterWidth(runes []rune, width, x, tabWidth int) int {
	if len(runes) == 1 && runes[0] == '\t' {
		if tabWidth <= 0 {
			tabWidth = 1
		}
		return tabWidth - x%tabWidth
	}
	return width
}
