// internal/buffer/buffer.go
package buffer

import "github.com/bethropolis/quill/internal/types"

// Reader is the read-only view of a document that renderers and highlighters use.
type Reader interface {
	Lines() [][]byte
	Line(index int) ([]byte, error)
	LineCount() int
	LineLength(index int) int
	Bytes() []byte
	Text() string
	Cursor() types.Position
	CursorPosition() (line, col int)
	Selection() (types.Range, bool)
	SelectedText() string
}

// Buffer is a Reader that can be edited in place.
type Buffer interface {
	Reader
	Insert(text string) bool
	Delete(r types.Range) bool
	MoveCursor(m Motion)
	MoveTo(pos types.Position)
	ReplaceAll(text string)
	Perform(a Action) bool
}
