// internal/buffer/slice_buffer.go
package buffer

import (
	"bytes"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/types"
)

// SliceBuffer stores the document as a slice of lines with rune-indexed columns.
// It always holds at least one (possibly empty) line.
type SliceBuffer struct {
	lines [][]byte

	cursor    types.Position
	anchor    types.Position // Selection anchor, valid while selecting
	selecting bool
	wantCol   int // Preferred column for vertical motion
}

// NewSliceBuffer creates an empty SliceBuffer.
func NewSliceBuffer() *SliceBuffer {
	return &SliceBuffer{lines: [][]byte{{}}}
}

// NewSliceBufferFromText creates a buffer holding text, cursor at (0,0).
func NewSliceBufferFromText(text string) *SliceBuffer {
	sb := NewSliceBuffer()
	sb.ReplaceAll(text)
	return sb
}

// --- Reading ---

func (sb *SliceBuffer) Lines() [][]byte {
	return sb.lines
}

func (sb *SliceBuffer) LineCount() int {
	return len(sb.lines)
}

func (sb *SliceBuffer) Line(index int) ([]byte, error) {
	if index < 0 || index >= len(sb.lines) {
		return nil, fmt.Errorf("line index %d out of bounds (0-%d)", index, len(sb.lines)-1)
	}
	return sb.lines[index], nil
}

// LineLength returns the rune count of a line, 0 for out-of-range lines.
func (sb *SliceBuffer) LineLength(index int) int {
	if index < 0 || index >= len(sb.lines) {
		return 0
	}
	return utf8.RuneCount(sb.lines[index])
}

// Bytes joins the lines with '\n'.
func (sb *SliceBuffer) Bytes() []byte {
	return bytes.Join(sb.lines, []byte{'\n'})
}

func (sb *SliceBuffer) Text() string {
	return string(sb.Bytes())
}

func (sb *SliceBuffer) Cursor() types.Position {
	return sb.cursor
}

// CursorPosition returns the cursor as (line, column), both 0-indexed.
func (sb *SliceBuffer) CursorPosition() (int, int) {
	return sb.cursor.Line, sb.cursor.Col
}

// Selection returns the normalized selection, if one is active and non-empty.
func (sb *SliceBuffer) Selection() (types.Range, bool) {
	if !sb.selecting || sb.anchor == sb.cursor {
		return types.Range{}, false
	}
	return types.Range{Start: sb.anchor, End: sb.cursor}.Normalized(), true
}

// SelectedText returns the text covered by the selection.
func (sb *SliceBuffer) SelectedText() string {
	r, ok := sb.Selection()
	if !ok {
		return ""
	}
	return string(sb.extract(r))
}

// --- Whole-document replacement ---

// ReplaceAll swaps the content wholesale and resets cursor and selection.
func (sb *SliceBuffer) ReplaceAll(text string) {
	parts := bytes.Split([]byte(text), []byte{'\n'})
	lines := make([][]byte, len(parts))
	for i, p := range parts {
		line := make([]byte, len(p))
		copy(line, p)
		lines[i] = line
	}
	sb.lines = lines
	sb.cursor = types.Position{}
	sb.anchor = types.Position{}
	sb.selecting = false
	sb.wantCol = 0
}

// --- Actions ---

// Perform applies an action and reports whether the content changed.
func (sb *SliceBuffer) Perform(a Action) bool {
	switch act := a.(type) {
	case Move:
		sb.selecting = false
		sb.MoveCursor(act.Motion)
	case MoveTo:
		sb.selecting = false
		sb.MoveTo(act.Position)
	case Select:
		if !sb.selecting {
			sb.anchor = sb.cursor
			sb.selecting = true
		}
		sb.move(act.Motion)
	case SelectAll:
		sb.anchor = types.Position{}
		sb.selecting = true
		sb.move(MotionDocumentEnd)
	case Insert:
		return sb.Insert(act.Text)
	case Paste:
		return sb.Insert(act.Text)
	case Enter:
		return sb.Insert("\n")
	case Backspace:
		return sb.deleteAround(false)
	case DeleteForward:
		return sb.deleteAround(true)
	case DeleteRange:
		return sb.Delete(act.Range)
	default:
		logger.Warnf("SliceBuffer.Perform: unsupported action %T", a)
	}
	return false
}

// Insert writes text at the cursor, replacing the active selection.
// The cursor ends after the inserted text.
func (sb *SliceBuffer) Insert(text string) bool {
	changed := sb.deleteSelection()
	if text == "" {
		return changed
	}
	sb.cursor = sb.insertAt(sb.clamp(sb.cursor), []byte(text))
	sb.wantCol = sb.cursor.Col
	return true
}

// Delete removes r after clamping both ends into the document.
func (sb *SliceBuffer) Delete(r types.Range) bool {
	sb.selecting = false
	return sb.deleteRange(r)
}

// MoveCursor moves the cursor by a motion without touching content.
func (sb *SliceBuffer) MoveCursor(m Motion) {
	sb.selecting = false
	sb.move(m)
}

// MoveTo places the cursor at pos, clamped to the document.
func (sb *SliceBuffer) MoveTo(pos types.Position) {
	sb.cursor = sb.clamp(pos)
	sb.wantCol = sb.cursor.Col
}

// --- Internals ---

// clamp pulls a position into [0, LineCount) x [0, LineLength].
func (sb *SliceBuffer) clamp(pos types.Position) types.Position {
	if pos.Line < 0 {
		return types.Position{}
	}
	if pos.Line >= len(sb.lines) {
		last := len(sb.lines) - 1
		return types.Position{Line: last, Col: sb.LineLength(last)}
	}
	if pos.Col < 0 {
		pos.Col = 0
	}
	if n := sb.LineLength(pos.Line); pos.Col > n {
		pos.Col = n
	}
	return pos
}

// byteOffset converts a rune column on a line to a byte offset, clamped to the line end.
func byteOffset(line []byte, col int) int {
	off := 0
	for i := 0; i < col && off < len(line); i++ {
		_, size := utf8.DecodeRune(line[off:])
		off += size
	}
	return off
}

// insertAt splices text into the document at pos and returns the end position.
func (sb *SliceBuffer) insertAt(pos types.Position, text []byte) types.Position {
	line := sb.lines[pos.Line]
	off := byteOffset(line, pos.Col)

	head := append([]byte{}, line[:off]...)
	tail := append([]byte{}, line[off:]...)
	parts := bytes.Split(text, []byte{'\n'})

	if len(parts) == 1 {
		sb.lines[pos.Line] = append(append(head, parts[0]...), tail...)
		return types.Position{Line: pos.Line, Col: pos.Col + utf8.RuneCount(parts[0])}
	}

	newLines := make([][]byte, 0, len(parts))
	newLines = append(newLines, append(head, parts[0]...))
	for _, p := range parts[1 : len(parts)-1] {
		newLines = append(newLines, append([]byte{}, p...))
	}
	last := parts[len(parts)-1]
	newLines = append(newLines, append(append([]byte{}, last...), tail...))

	rest := append([][]byte{}, sb.lines[pos.Line+1:]...)
	sb.lines = append(append(sb.lines[:pos.Line], newLines...), rest...)

	return types.Position{Line: pos.Line + len(parts) - 1, Col: utf8.RuneCount(last)}
}

// deleteRange removes [start, end) and shifts the cursor so it stays on the same text.
func (sb *SliceBuffer) deleteRange(r types.Range) bool {
	r = types.Range{Start: sb.clamp(r.Start), End: sb.clamp(r.End)}.Normalized()
	if r.Empty() {
		return false
	}
	start, end := r.Start, r.End

	startLine := sb.lines[start.Line]
	endLine := sb.lines[end.Line]
	merged := append(append([]byte{}, startLine[:byteOffset(startLine, start.Col)]...),
		endLine[byteOffset(endLine, end.Col):]...)

	rest := append([][]byte{}, sb.lines[end.Line+1:]...)
	sb.lines = append(append(sb.lines[:start.Line], merged), rest...)

	switch c := sb.cursor; {
	case c.Before(start):
	case c.Before(end):
		sb.cursor = start
	case c.Line == end.Line:
		sb.cursor = types.Position{Line: start.Line, Col: start.Col + c.Col - end.Col}
	default:
		sb.cursor.Line -= end.Line - start.Line
	}
	sb.cursor = sb.clamp(sb.cursor)
	sb.wantCol = sb.cursor.Col
	return true
}

// deleteSelection removes the active selection, if any.
func (sb *SliceBuffer) deleteSelection() bool {
	r, ok := sb.Selection()
	sb.selecting = false
	if !ok {
		return false
	}
	changed := sb.deleteRange(r)
	sb.cursor = sb.clamp(r.Start)
	return changed
}

// deleteAround implements Backspace (forward=false) and Delete (forward=true).
func (sb *SliceBuffer) deleteAround(forward bool) bool {
	if sb.deleteSelection() {
		return true
	}
	from := sb.clamp(sb.cursor)
	var to types.Position
	if forward {
		to = sb.step(from, MotionRight)
	} else {
		to = sb.step(from, MotionLeft)
	}
	return sb.deleteRange(types.Range{Start: from, End: to})
}

func (sb *SliceBuffer) move(m Motion) {
	sb.cursor = sb.step(sb.clamp(sb.cursor), m)
	if m != MotionUp && m != MotionDown {
		sb.wantCol = sb.cursor.Col
	}
}

// step computes the position reached from p by one motion.
func (sb *SliceBuffer) step(p types.Position, m Motion) types.Position {
	switch m {
	case MotionLeft:
		if p.Col > 0 {
			p.Col--
		} else if p.Line > 0 {
			p.Line--
			p.Col = sb.LineLength(p.Line)
		}
	case MotionRight:
		if p.Col < sb.LineLength(p.Line) {
			p.Col++
		} else if p.Line < len(sb.lines)-1 {
			p.Line++
			p.Col = 0
		}
	case MotionUp:
		if p.Line == 0 {
			return types.Position{}
		}
		p = sb.clamp(types.Position{Line: p.Line - 1, Col: sb.wantCol})
	case MotionDown:
		if p.Line == len(sb.lines)-1 {
			return types.Position{Line: p.Line, Col: sb.LineLength(p.Line)}
		}
		p = sb.clamp(types.Position{Line: p.Line + 1, Col: sb.wantCol})
	case MotionHome:
		p.Col = 0
	case MotionEnd:
		p.Col = sb.LineLength(p.Line)
	case MotionWordLeft:
		p = sb.wordLeft(p)
	case MotionWordRight:
		p = sb.wordRight(p)
	case MotionDocumentStart:
		p = types.Position{}
	case MotionDocumentEnd:
		last := len(sb.lines) - 1
		p = types.Position{Line: last, Col: sb.LineLength(last)}
	}
	return p
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (sb *SliceBuffer) wordLeft(p types.Position) types.Position {
	if p.Col == 0 {
		return sb.step(p, MotionLeft)
	}
	runes := []rune(string(sb.lines[p.Line]))
	col := p.Col
	for col > 0 && !isWordRune(runes[col-1]) {
		col--
	}
	for col > 0 && isWordRune(runes[col-1]) {
		col--
	}
	return types.Position{Line: p.Line, Col: col}
}

func (sb *SliceBuffer) wordRight(p types.Position) types.Position {
	runes := []rune(string(sb.lines[p.Line]))
	if p.Col >= len(runes) {
		return sb.step(p, MotionRight)
	}
	col := p.Col
	for col < len(runes) && !isWordRune(runes[col]) {
		col++
	}
	for col < len(runes) && isWordRune(runes[col]) {
		col++
	}
	return types.Position{Line: p.Line, Col: col}
}

// extract copies the text inside a normalized, clamped range.
func (sb *SliceBuffer) extract(r types.Range) []byte {
	var out bytes.Buffer
	for line := r.Start.Line; line <= r.End.Line; line++ {
		b := sb.lines[line]
		from, to := 0, len(b)
		if line == r.Start.Line {
			from = byteOffset(b, r.Start.Col)
		}
		if line == r.End.Line {
			to = byteOffset(b, r.End.Col)
		}
		out.Write(b[from:to])
		if line < r.End.Line {
			out.WriteByte('\n')
		}
	}
	return out.Bytes()
}

// Ensure SliceBuffer satisfies the Buffer interface
var _ Buffer = (*SliceBuffer)(nil)
