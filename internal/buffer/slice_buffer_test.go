package buffer

import (
	"math/rand"
	"testing"

	"github.com/bethropolis/quill/internal/types"
)

func pos(line, col int) types.Position { return types.Position{Line: line, Col: col} }

func checkCursorInvariant(t *testing.T, sb *SliceBuffer) {
	t.Helper()
	c := sb.Cursor()
	if c.Line < 0 || c.Line >= sb.LineCount() {
		t.Fatalf("cursor line %d outside [0,%d)", c.Line, sb.LineCount())
	}
	if c.Col < 0 || c.Col > sb.LineLength(c.Line) {
		t.Fatalf("cursor col %d outside [0,%d] on line %d", c.Col, sb.LineLength(c.Line), c.Line)
	}
}

func TestSliceBuffer_NewIsEmpty(t *testing.T) {
	sb := NewSliceBuffer()
	if sb.LineCount() != 1 || sb.Text() != "" {
		t.Fatalf("expected one empty line, got %d lines %q", sb.LineCount(), sb.Text())
	}
	if l, c := sb.CursorPosition(); l != 0 || c != 0 {
		t.Fatalf("cursor=(%d,%d), want (0,0)", l, c)
	}
}

func TestSliceBuffer_ReplaceAllRoundTrips(t *testing.T) {
	for _, text := range []string{"", "hello", "a\nb", "trailing\n", "\n\n", "crlf\r\nline", "héllo\nwörld"} {
		sb := NewSliceBuffer()
		sb.MoveTo(pos(5, 5))
		sb.ReplaceAll(text)
		if got := sb.Text(); got != text {
			t.Fatalf("Text()=%q, want %q", got, text)
		}
		if sb.Cursor() != pos(0, 0) {
			t.Fatalf("cursor=%v after ReplaceAll, want (0,0)", sb.Cursor())
		}
	}
}

func TestSliceBuffer_Insert(t *testing.T) {
	tests := []struct {
		name       string
		initial    string
		at         types.Position
		insert     string
		wantText   string
		wantCursor types.Position
	}{
		{"into empty", "", pos(0, 0), "hello", "hello", pos(0, 5)},
		{"middle of line", "held", pos(0, 3), "lo wor", "hello word", pos(0, 9)},
		{"newline splits", "abcd", pos(0, 2), "\n", "ab\ncd", pos(1, 0)},
		{"multi-line text", "start end", pos(0, 6), "one\ntwo\nthree ", "start one\ntwo\nthree end", pos(2, 6)},
		{"unicode columns", "héllo", pos(0, 2), "X", "héXllo", pos(0, 3)},
		{"clamped position", "ab\ncd", pos(9, 9), "!", "ab\ncd!", pos(1, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sb := NewSliceBufferFromText(tt.initial)
			sb.MoveTo(tt.at)
			if !sb.Insert(tt.insert) {
				t.Fatalf("Insert reported no change")
			}
			if got := sb.Text(); got != tt.wantText {
				t.Fatalf("text=%q, want %q", got, tt.wantText)
			}
			if sb.Cursor() != tt.wantCursor {
				t.Fatalf("cursor=%v, want %v", sb.Cursor(), tt.wantCursor)
			}
			checkCursorInvariant(t, sb)
		})
	}
}

func TestSliceBuffer_DeleteClampsAndAdjustsCursor(t *testing.T) {
	tests := []struct {
		name       string
		initial    string
		cursor     types.Position
		r          types.Range
		wantText   string
		wantCursor types.Position
		wantChange bool
	}{
		{"single line", "hello world", pos(0, 11), types.Range{Start: pos(0, 5), End: pos(0, 11)}, "hello", pos(0, 5), true},
		{"reversed range", "hello world", pos(0, 0), types.Range{Start: pos(0, 11), End: pos(0, 5)}, "hello", pos(0, 0), true},
		{"join lines", "ab\ncd", pos(1, 1), types.Range{Start: pos(0, 2), End: pos(1, 0)}, "abcd", pos(0, 3), true},
		{"cursor after range on later line", "a\nb\nc\nd", pos(3, 1), types.Range{Start: pos(0, 1), End: pos(2, 0)}, "ac\nd", pos(1, 1), true},
		{"out of range clamps to end", "abc", pos(0, 0), types.Range{Start: pos(0, 1), End: pos(50, 50)}, "a", pos(0, 0), true},
		{"negative clamps to start", "abc", pos(0, 3), types.Range{Start: pos(-4, -4), End: pos(0, 1)}, "bc", pos(0, 2), true},
		{"empty range", "abc", pos(0, 1), types.Range{Start: pos(0, 2), End: pos(0, 2)}, "abc", pos(0, 1), false},
		{"cursor inside range", "abcdef", pos(0, 3), types.Range{Start: pos(0, 1), End: pos(0, 5)}, "af", pos(0, 1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sb := NewSliceBufferFromText(tt.initial)
			sb.MoveTo(tt.cursor)
			if got := sb.Delete(tt.r); got != tt.wantChange {
				t.Fatalf("Delete changed=%v, want %v", got, tt.wantChange)
			}
			if got := sb.Text(); got != tt.wantText {
				t.Fatalf("text=%q, want %q", got, tt.wantText)
			}
			if sb.Cursor() != tt.wantCursor {
				t.Fatalf("cursor=%v, want %v", sb.Cursor(), tt.wantCursor)
			}
			checkCursorInvariant(t, sb)
		})
	}
}

func TestSliceBuffer_BackspaceAndDeleteForward(t *testing.T) {
	sb := NewSliceBufferFromText("ab\ncd")
	sb.MoveTo(pos(1, 0))

	if !sb.Perform(Backspace{}) {
		t.Fatalf("expected backspace to join lines")
	}
	if sb.Text() != "abcd" || sb.Cursor() != pos(0, 2) {
		t.Fatalf("after backspace text=%q cursor=%v", sb.Text(), sb.Cursor())
	}

	if !sb.Perform(DeleteForward{}) {
		t.Fatalf("expected delete forward to remove a rune")
	}
	if sb.Text() != "abd" || sb.Cursor() != pos(0, 2) {
		t.Fatalf("after delete text=%q cursor=%v", sb.Text(), sb.Cursor())
	}

	sb.MoveTo(pos(0, 0))
	if sb.Perform(Backspace{}) {
		t.Fatalf("backspace at document start should not change content")
	}
	sb.Perform(Move{Motion: MotionDocumentEnd})
	if sb.Perform(DeleteForward{}) {
		t.Fatalf("delete at document end should not change content")
	}
}

func TestSliceBuffer_Motions(t *testing.T) {
	sb := NewSliceBufferFromText("first line\nab\nthird line")
	sb.MoveTo(pos(0, 8))

	sb.MoveCursor(MotionDown)
	if sb.Cursor() != pos(1, 2) {
		t.Fatalf("down onto short line: cursor=%v, want (1,2)", sb.Cursor())
	}
	sb.MoveCursor(MotionDown)
	if sb.Cursor() != pos(2, 8) {
		t.Fatalf("down keeps preferred column: cursor=%v, want (2,8)", sb.Cursor())
	}
	sb.MoveCursor(MotionHome)
	sb.MoveCursor(MotionLeft)
	if sb.Cursor() != pos(1, 2) {
		t.Fatalf("left wraps to previous line end: cursor=%v", sb.Cursor())
	}
	sb.MoveCursor(MotionRight)
	if sb.Cursor() != pos(2, 0) {
		t.Fatalf("right wraps to next line start: cursor=%v", sb.Cursor())
	}
	sb.MoveCursor(MotionWordRight)
	if sb.Cursor() != pos(2, 5) {
		t.Fatalf("word right: cursor=%v, want (2,5)", sb.Cursor())
	}
	sb.MoveCursor(MotionWordRight)
	if sb.Cursor() != pos(2, 10) {
		t.Fatalf("word right: cursor=%v, want (2,10)", sb.Cursor())
	}
	sb.MoveCursor(MotionWordLeft)
	if sb.Cursor() != pos(2, 6) {
		t.Fatalf("word left: cursor=%v, want (2,6)", sb.Cursor())
	}
	sb.MoveCursor(MotionDocumentStart)
	if sb.Cursor() != pos(0, 0) {
		t.Fatalf("document start: cursor=%v", sb.Cursor())
	}
	sb.MoveCursor(MotionUp)
	if sb.Cursor() != pos(0, 0) {
		t.Fatalf("up on first line: cursor=%v", sb.Cursor())
	}
}

func TestSliceBuffer_SelectionReplacedByInsert(t *testing.T) {
	sb := NewSliceBufferFromText("hello world")
	sb.MoveTo(pos(0, 6))
	sb.Perform(Select{Motion: MotionEnd})

	r, ok := sb.Selection()
	if !ok || r != (types.Range{Start: pos(0, 6), End: pos(0, 11)}) {
		t.Fatalf("selection=%v ok=%v", r, ok)
	}
	if got := sb.SelectedText(); got != "world" {
		t.Fatalf("SelectedText=%q, want world", got)
	}

	sb.Perform(Paste{Text: "there"})
	if sb.Text() != "hello there" {
		t.Fatalf("text=%q, want %q", sb.Text(), "hello there")
	}
	if _, ok := sb.Selection(); ok {
		t.Fatalf("expected selection cleared after paste")
	}
}

func TestSliceBuffer_SelectAllThenBackspace(t *testing.T) {
	sb := NewSliceBufferFromText("one\ntwo\nthree")
	sb.Perform(SelectAll{})
	if got := sb.SelectedText(); got != "one\ntwo\nthree" {
		t.Fatalf("SelectedText=%q", got)
	}
	if !sb.Perform(Backspace{}) {
		t.Fatalf("expected change")
	}
	if sb.Text() != "" || sb.Cursor() != pos(0, 0) {
		t.Fatalf("text=%q cursor=%v", sb.Text(), sb.Cursor())
	}
}

func TestSliceBuffer_MoveClearsSelection(t *testing.T) {
	sb := NewSliceBufferFromText("abc")
	sb.Perform(Select{Motion: MotionRight})
	sb.Perform(Move{Motion: MotionRight})
	if _, ok := sb.Selection(); ok {
		t.Fatalf("expected move to clear selection")
	}
}

func TestAction_IsEdit(t *testing.T) {
	edits := []Action{Insert{Text: "x"}, Paste{Text: "x"}, Enter{}, Backspace{}, DeleteForward{}, DeleteRange{}}
	for _, a := range edits {
		if !a.IsEdit() {
			t.Fatalf("%T should be an edit", a)
		}
	}
	moves := []Action{Move{}, MoveTo{}, Select{}, SelectAll{}}
	for _, a := range moves {
		if a.IsEdit() {
			t.Fatalf("%T should not be an edit", a)
		}
	}
}

// Random edit sequences must never break the cursor invariant.
func TestSliceBuffer_CursorInvariantUnderRandomEdits(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	sb := NewSliceBufferFromText("seed\ntext")
	snippets := []string{"a", "\n", "héé", "x\ny\nz", ""}

	for i := 0; i < 2000; i++ {
		switch rng.Intn(7) {
		case 0:
			sb.Insert(snippets[rng.Intn(len(snippets))])
		case 1:
			sb.Delete(types.Range{
				Start: pos(rng.Intn(8)-2, rng.Intn(12)-2),
				End:   pos(rng.Intn(8)-2, rng.Intn(12)-2),
			})
		case 2:
			sb.Perform(Backspace{})
		case 3:
			sb.Perform(DeleteForward{})
		case 4:
			sb.MoveTo(pos(rng.Intn(10)-3, rng.Intn(10)-3))
		case 5:
			sb.Perform(Select{Motion: Motion(rng.Intn(10))})
		case 6:
			sb.MoveCursor(Motion(rng.Intn(10)))
		}
		checkCursorInvariant(t, sb)
	}
}
