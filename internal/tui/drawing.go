// internal/tui/drawing.go
package tui

import (
	"fmt"

	"github.com/bethropolis/quill/internal/highlight"
	"github.com/bethropolis/quill/internal/theme"
	"github.com/bethropolis/quill/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

const lineNumberPadding = 1

// View is everything needed to draw the document area.
type View struct {
	Lines        []string
	Cursor       types.Position
	Selection    types.Range // normalized
	HasSelection bool
	Highlights   highlight.Result
	Theme        *theme.Theme
	TabWidth     int
	Viewport     Viewport
}

// GutterWidth returns the width of the line number column, or 0 if the
// screen is too narrow to show it.
func GutterWidth(lineCount, width int) int {
	if lineCount < 1 {
		lineCount = 1
	}
	gutter := len(fmt.Sprint(lineCount)) + lineNumberPadding
	if gutter >= width {
		return 0
	}
	return gutter
}

// isPositionWithin checks if pos is within the half-open range [start, end).
func isPositionWithin(pos, start, end types.Position) bool {
	if pos.Line < start.Line || pos.Line > end.Line {
		return false
	}
	if pos.Line == start.Line && pos.Col < start.Col {
		return false
	}
	if pos.Line == end.Line && pos.Col >= end.Col {
		return false
	}
	return true
}

// DrawDocument draws the visible lines into the top height rows and places
// the terminal cursor.
func DrawDocument(screen tcell.Screen, v View, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	th := v.Theme
	if th == nil {
		th = &theme.QuillDark
	}
	defaultStyle := th.GetStyle("Default")
	lineNumberStyle := th.GetStyle("LineNumber")
	selectionStyle := th.GetStyle("Selection")

	gutter := GutterWidth(len(v.Lines), width)
	digits := gutter - lineNumberPadding
	textWidth := width - gutter

	for screenY := 0; screenY < height; screenY++ {
		lineIdx := screenY + v.Viewport.Top
		for x := 0; x < width; x++ {
			screen.SetContent(x, screenY, ' ', nil, defaultStyle)
		}
		if lineIdx >= len(v.Lines) {
			continue
		}

		if gutter > 0 {
			numStyle := lineNumberStyle
			if lineIdx == v.Cursor.Line {
				numStyle = numStyle.Bold(true)
			}
			for i, r := range fmt.Sprintf("%*d", digits, lineIdx+1) {
				screen.SetContent(i, screenY, r, nil, numStyle)
			}
		}

		spans := v.Highlights[lineIdx]
		visualX, runeIdx := 0, 0
		gr := uniseg.NewGraphemes(v.Lines[lineIdx])
		for gr.Next() {
			runes := gr.Runes()
			w := clusterWidth(runes, gr.Width(), visualX, v.TabWidth)
			screenX := visualX - v.Viewport.Left + gutter

			if visualX+w > v.Viewport.Left && screenX < width {
				style := defaultStyle
				for _, span := range spans {
					if runeIdx >= span.StartCol && runeIdx < span.EndCol {
						style = th.GetStyle(span.StyleName)
						break
					}
				}
				pos := types.Position{Line: lineIdx, Col: runeIdx}
				if v.HasSelection && isPositionWithin(pos, v.Selection.Start, v.Selection.End) {
					style = selectionStyle
				}
				drawCluster(screen, screenX, screenY, gutter, width, runes, w, style)
			}

			visualX += w
			runeIdx += len(runes)
			if visualX >= v.Viewport.Left+textWidth {
				break
			}
		}
	}

	drawCursor(screen, v, gutter, width, height)
}

// drawCluster draws one grapheme cluster, clipping cells outside [minX, maxX).
func drawCluster(screen tcell.Screen, x, y, minX, maxX int, runes []rune, w int, style tcell.Style) {
	if runes[0] == '\t' {
		for i := 0; i < w; i++ {
			if cx := x + i; cx >= minX && cx < maxX {
				screen.SetContent(cx, y, ' ', nil, style)
			}
		}
		return
	}
	if x >= minX && x < maxX {
		screen.SetContent(x, y, runes[0], runes[1:], style)
	}
	// Fill the remaining cells of wide characters.
	for i := 1; i < w; i++ {
		if cx := x + i; cx >= minX && cx < maxX {
			screen.SetContent(cx, y, ' ', nil, style)
		}
	}
}

func drawCursor(screen tcell.Screen, v View, gutter, width, height int) {
	line := ""
	if v.Cursor.Line >= 0 && v.Cursor.Line < len(v.Lines) {
		line = v.Lines[v.Cursor.Line]
	}
	x := VisualColumn(line, v.Cursor.Col, v.TabWidth) - v.Viewport.Left + gutter
	y := v.Cursor.Line - v.Viewport.Top
	if x < gutter || x >= width || y < 0 || y >= height {
		screen.HideCursor()
		return
	}
	screen.ShowCursor(x, y)
}
