package session

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bethropolis/quill/internal/buffer"
	"github.com/bethropolis/quill/internal/event"
	"github.com/bethropolis/quill/internal/gateway"
	"github.com/bethropolis/quill/internal/types"
)

// memFS is an in-memory gateway.FileSystem. When gate is non-nil every
// operation blocks until a value is received from it.
type memFS struct {
	mu       sync.Mutex
	files    map[string]string
	writeErr error
	reads    int
	writes   int
	gate     chan struct{}
}

func newMemFS() *memFS { return &memFS{files: map[string]string{}} }

func (m *memFS) ReadText(path string) (string, error) {
	if m.gate != nil {
		<-m.gate
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	content, ok := m.files[path]
	if !ok {
		return "", &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return content, nil
}

func (m *memFS) WriteText(path, content string) error {
	if m.gate != nil {
		<-m.gate
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.writeErr != nil {
		return m.writeErr
	}
	m.files[path] = content
	return nil
}

func (m *memFS) counts() (reads, writes int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads, m.writes
}

func newController(t *testing.T, picker gateway.StaticPicker, fsys gateway.FileSystem) *Controller {
	t.Helper()
	c := New(Options{Gateway: gateway.New(picker, fsys)})
	t.Cleanup(c.Shutdown)
	return c
}

func await(t *testing.T, c *Controller) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if !c.Await(ctx) {
		t.Fatalf("no completion delivered (busy=%v)", c.Session().Busy())
	}
}

func typeText(c *Controller, text string) {
	c.Update(Edit{Action: buffer.Insert{Text: text}})
}

func TestController_NewDocumentThenInsert(t *testing.T) {
	c := newController(t, gateway.StaticPicker{}, newMemFS())
	c.Update(NewDocument{})
	typeText(c, "hello")

	snap := c.Snapshot()
	if !snap.Dirty || snap.Text != "hello" {
		t.Fatalf("dirty=%v text=%q, want dirty and %q", snap.Dirty, snap.Text, "hello")
	}
	if snap.Path != "" || snap.Busy {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestController_OpenMissingFile(t *testing.T) {
	c := newController(t, gateway.StaticPicker{OpenPath: "/missing.txt"}, newMemFS())
	typeText(c, "keep me")

	c.Update(OpenRequested{})
	if !c.Session().Busy() {
		t.Fatalf("expected busy after open request")
	}
	await(t, c)

	s := c.Session()
	if s.Busy() {
		t.Fatalf("expected idle after completion")
	}
	if !gateway.IsReadFailure(s.LastError(), gateway.KindNotFound) {
		t.Fatalf("lastError=%v, want read failure (not found)", s.LastError())
	}
	if got := s.Buffer().Text(); got != "keep me" {
		t.Fatalf("buffer changed to %q", got)
	}
	if !s.Dirty() {
		t.Fatalf("failed open must not clear dirty")
	}
}

func TestController_SaveUntitledPromptsForPath(t *testing.T) {
	fsys := newMemFS()
	c := newController(t, gateway.StaticPicker{SavePath: "/tmp/x.txt"}, fsys)
	typeText(c, "draft")

	c.Update(SaveRequested{})
	await(t, c)

	snap := c.Snapshot()
	if snap.Path != "/tmp/x.txt" || snap.Dirty || snap.LastError != nil {
		t.Fatalf("snapshot=%+v", snap)
	}
	if fsys.files["/tmp/x.txt"] != "draft" {
		t.Fatalf("written=%q", fsys.files["/tmp/x.txt"])
	}
	if snap.Highlight.Extension != "txt" {
		t.Fatalf("highlight extension=%q", snap.Highlight.Extension)
	}
}

func TestController_SaveWhileBusyIsDropped(t *testing.T) {
	fsys := newMemFS()
	fsys.gate = make(chan struct{})
	fsys.files["/doc.txt"] = "x"
	c := newController(t, gateway.StaticPicker{}, fsys)
	c.Update(OpenPathRequested{Path: "/doc.txt"})
	fsys.gate <- struct{}{}
	await(t, c)

	typeText(c, "edit ")
	c.Update(SaveRequested{})
	c.Update(SaveRequested{})
	c.Update(SaveAsRequested{})
	c.Update(OpenRequested{})

	if got := c.Stats().Dropped; got != 3 {
		t.Fatalf("dropped=%d, want 3", got)
	}
	fsys.gate <- struct{}{}
	await(t, c)

	if _, writes := fsys.counts(); writes != 1 {
		t.Fatalf("writes=%d, want exactly one gateway save", writes)
	}
	if c.Session().Dirty() {
		t.Fatalf("expected clean after save")
	}
}

func TestController_SaveFailureKeepsDirty(t *testing.T) {
	fsys := newMemFS()
	fsys.writeErr = os.ErrPermission
	c := newController(t, gateway.StaticPicker{}, fsys)
	fsys.files["/ro.txt"] = "orig"
	c.Update(OpenPathRequested{Path: "/ro.txt"})
	await(t, c)
	typeText(c, "change ")

	c.Update(SaveRequested{})
	await(t, c)

	s := c.Session()
	if !s.Dirty() || s.Busy() {
		t.Fatalf("dirty=%v busy=%v, want dirty and idle", s.Dirty(), s.Busy())
	}
	if !gateway.IsWriteFailure(s.LastError(), gateway.KindPermissionDenied) {
		t.Fatalf("lastError=%v, want write failure (permission denied)", s.LastError())
	}
	if s.Path() != "/ro.txt" {
		t.Fatalf("path=%q", s.Path())
	}
}

func TestController_NewDocumentWhileBusyIsNoop(t *testing.T) {
	fsys := newMemFS()
	fsys.gate = make(chan struct{})
	c := newController(t, gateway.StaticPicker{SavePath: "/a.txt"}, fsys)
	typeText(c, "content")

	c.Update(SaveRequested{})
	before := c.Snapshot()
	c.Update(NewDocument{})
	after := c.Snapshot()

	if after.Text != before.Text || after.Path != before.Path || after.Dirty != before.Dirty || !after.Busy {
		t.Fatalf("NewDocument while busy changed state: before=%+v after=%+v", before, after)
	}
	fsys.gate <- struct{}{}
	await(t, c)
}

func TestController_DirtyPersistsUntilSuccess(t *testing.T) {
	fsys := newMemFS()
	c := newController(t, gateway.StaticPicker{}, fsys)

	actions := []buffer.Action{
		buffer.Insert{Text: "a"},
		buffer.Move{Motion: buffer.MotionHome},
		buffer.Backspace{},
		buffer.MoveTo{Position: types.Position{Line: 3, Col: 9}},
		buffer.Enter{},
		buffer.SelectAll{},
	}
	for i, a := range actions {
		c.Update(Edit{Action: a})
		if !c.Session().Dirty() {
			t.Fatalf("clean after action %d (%T)", i, a)
		}
	}
	c.Update(OpenPathRequested{Path: "/nope"})
	await(t, c)
	if !c.Session().Dirty() {
		t.Fatalf("failed open cleared dirty")
	}
}

func TestController_CursorMovesDoNotDirty(t *testing.T) {
	fsys := newMemFS()
	fsys.files["/f.go"] = "package f\n\nfunc F() {}\n"
	c := newController(t, gateway.StaticPicker{}, fsys)
	c.Update(OpenPathRequested{Path: "/f.go"})
	await(t, c)

	for i := 0; i < 2; i++ {
		c.Update(Edit{Action: buffer.MoveTo{Position: types.Position{Line: 2, Col: 4}}})
	}
	c.Update(Edit{Action: buffer.Move{Motion: buffer.MotionDocumentEnd}})
	c.Update(Edit{Action: buffer.Select{Motion: buffer.MotionLeft}})

	snap := c.Snapshot()
	if snap.Dirty {
		t.Fatalf("cursor movement marked the session dirty")
	}
	if snap.Highlight.Extension != "go" {
		t.Fatalf("highlight=%+v", snap.Highlight)
	}
}

func TestController_OpenReplacesBufferAndCleans(t *testing.T) {
	fsys := newMemFS()
	fsys.files["/b.txt"] = "line one\nline two"
	c := newController(t, gateway.StaticPicker{OpenPath: "/b.txt"}, fsys)
	typeText(c, "scratch")
	c.Update(Edit{Action: buffer.SelectAll{}})

	c.Update(OpenRequested{})
	await(t, c)

	snap := c.Snapshot()
	if snap.Text != "line one\nline two" || snap.Dirty || snap.Path != "/b.txt" {
		t.Fatalf("snapshot=%+v", snap)
	}
	if snap.Cursor != (types.Position{}) || snap.HasSelection {
		t.Fatalf("cursor=%v selection=%v, want reset", snap.Cursor, snap.HasSelection)
	}
	if len(snap.Lines) != 2 || snap.Lines[1] != "line two" {
		t.Fatalf("lines=%q", snap.Lines)
	}
}

func TestController_SaveUsesTextAtRequestTime(t *testing.T) {
	fsys := newMemFS()
	fsys.gate = make(chan struct{})
	c := newController(t, gateway.StaticPicker{SavePath: "/s.txt"}, fsys)
	typeText(c, "first")

	c.Update(SaveRequested{})
	typeText(c, " second")
	fsys.gate <- struct{}{}
	await(t, c)

	if got := fsys.files["/s.txt"]; got != "first" {
		t.Fatalf("saved %q, want text captured at request", got)
	}
	if !c.Session().Dirty() {
		t.Fatalf("edits made during the save must keep the session dirty")
	}
	if c.Session().Path() != "/s.txt" {
		t.Fatalf("path=%q", c.Session().Path())
	}
}

func TestController_StaleCompletionIgnored(t *testing.T) {
	c := newController(t, gateway.StaticPicker{}, newMemFS())
	typeText(c, "mine")

	c.Update(OpenCompleted{Document: gateway.Document{Path: "/x", Content: "theirs"}})
	c.Update(SaveCompleted{Path: "/y"})

	snap := c.Snapshot()
	if snap.Text != "mine" || snap.Path != "" || !snap.Dirty {
		t.Fatalf("stale completion applied: %+v", snap)
	}
	if got := c.Stats().Stale; got != 2 {
		t.Fatalf("stale=%d, want 2", got)
	}
}

func TestController_CancelledSaveAs(t *testing.T) {
	fsys := newMemFS()
	c := newController(t, gateway.StaticPicker{}, fsys)
	typeText(c, "x")

	c.Update(SaveAsRequested{})
	await(t, c)

	snap := c.Snapshot()
	if !errors.Is(snap.LastError, gateway.ErrDialogCancelled) {
		t.Fatalf("lastError=%v", snap.LastError)
	}
	if snap.ErrorText() != "cancelled" {
		t.Fatalf("ErrorText=%q", snap.ErrorText())
	}
	if !snap.Dirty || !snap.CanSave() {
		t.Fatalf("cancel must leave the session dirty and saveable")
	}
	if _, writes := fsys.counts(); writes != 0 {
		t.Fatalf("writes=%d after cancel", writes)
	}

	typeText(c, "y")
	if c.Session().LastError() != nil {
		t.Fatalf("modifying edit should clear the error")
	}
}

func TestController_ThemeSelected(t *testing.T) {
	bus := event.NewManager()
	var themes []string
	bus.Subscribe(event.TypeThemeChanged, func(e event.Event) bool {
		themes = append(themes, e.Data.(event.ThemeChangedData).Theme)
		return false
	})
	c := New(Options{Gateway: gateway.New(gateway.StaticPicker{}, newMemFS()), Events: bus})
	defer c.Shutdown()

	if got := c.Snapshot().Highlight.Theme; got != "solarized-dark" {
		t.Fatalf("default theme=%q", got)
	}
	c.Update(ThemeSelected{Theme: "monokai"})
	if got := c.Snapshot().Highlight.Theme; got != "monokai" {
		t.Fatalf("theme=%q", got)
	}
	if len(themes) != 1 || themes[0] != "monokai" {
		t.Fatalf("bus themes=%v", themes)
	}
}

func TestController_BusEvents(t *testing.T) {
	bus := event.NewManager()
	var seen []event.Type
	record := func(e event.Event) bool {
		seen = append(seen, e.Type)
		return false
	}
	for _, typ := range []event.Type{event.TypeBusyChanged, event.TypeBufferSaved, event.TypeBufferModified, event.TypeOperationFailed} {
		bus.Subscribe(typ, record)
	}
	fsys := newMemFS()
	c := New(Options{Gateway: gateway.New(gateway.StaticPicker{SavePath: "/e.txt"}, fsys), Events: bus})
	defer c.Shutdown()

	typeText(c, "a")
	c.Update(SaveRequested{})
	await(t, c)

	want := []event.Type{event.TypeBufferModified, event.TypeBusyChanged, event.TypeBusyChanged, event.TypeBufferSaved}
	if len(seen) != len(want) {
		t.Fatalf("events=%v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("events=%v, want %v", seen, want)
		}
	}
}

func TestController_RoundTripOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "round.txt")
	c := newController(t, gateway.StaticPicker{SavePath: path}, nil)
	content := "alpha\nbeta\n\ngamma é\n"
	typeText(c, content)

	c.Update(SaveRequested{})
	await(t, c)
	c.Update(NewDocument{})
	if c.Snapshot().Text != "" {
		t.Fatalf("new document not empty")
	}
	c.Update(OpenPathRequested{Path: path})
	await(t, c)

	if got := c.Snapshot().Text; got != content {
		t.Fatalf("round trip text=%q, want %q", got, content)
	}
}

func TestController_AwaitWhenIdle(t *testing.T) {
	c := newController(t, gateway.StaticPicker{}, newMemFS())
	if c.Await(context.Background()) {
		t.Fatalf("Await must return false when nothing is in flight")
	}
}
