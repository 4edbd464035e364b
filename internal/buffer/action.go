// internal/buffer/action.go
package buffer

import "github.com/bethropolis/quill/internal/types"

// Motion is a cursor movement relative to the current position.
type Motion int

const (
	MotionLeft Motion = iota
	MotionRight
	MotionUp
	MotionDown
	MotionHome // Beginning of line
	MotionEnd  // End of line
	MotionWordLeft
	MotionWordRight
	MotionDocumentStart
	MotionDocumentEnd
)

var motionNames = [...]string{"left", "right", "up", "down", "home", "end", "word-left", "word-right", "doc-start", "doc-end"}

func (m Motion) String() string {
	if int(m) >= 0 && int(m) < len(motionNames) {
		return motionNames[m]
	}
	return "unknown"
}

// Action is one atomic operation performed on a buffer.
// IsEdit reports whether the action counts as modifying the document.
type Action interface {
	IsEdit() bool
}

// Move moves the cursor and clears any selection.
type Move struct{ Motion Motion }

// MoveTo places the cursor at an absolute position, clamped.
type MoveTo struct{ Position types.Position }

// Select extends the selection with a motion.
type Select struct{ Motion Motion }

// SelectAll selects the whole document.
type SelectAll struct{}

// Insert types text at the cursor, replacing the selection.
type Insert struct{ Text string }

// Paste inserts clipboard text at the cursor, replacing the selection.
type Paste struct{ Text string }

// Enter breaks the line at the cursor.
type Enter struct{}

// Backspace deletes the selection or the character before the cursor.
type Backspace struct{}

// DeleteForward deletes the selection or the character after the cursor.
type DeleteForward struct{}

// DeleteRange removes an explicit range.
type DeleteRange struct{ Range types.Range }

func (Move) IsEdit() bool          { return false }
func (MoveTo) IsEdit() bool        { return false }
func (Select) IsEdit() bool        { return false }
func (SelectAll) IsEdit() bool     { return false }
func (Insert) IsEdit() bool        { return true }
func (Paste) IsEdit() bool         { return true }
func (Enter) IsEdit() bool         { return true }
func (Backspace) IsEdit() bool     { return true }
func (DeleteForward) IsEdit() bool { return true }
func (DeleteRange) IsEdit() bool   { return true }
