package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bethropolis/quill/internal/config"
	"github.com/bethropolis/quill/internal/gateway"
	"github.com/gdamore/tcell/v2"
)

func newTestApp(t *testing.T, picker gateway.StaticPicker) *App {
	t.Helper()
	cfg := config.NewDefaultConfig()
	cfg.Editor.SystemClipboard = false
	cfg.Autosave.Enabled = false

	screen := tcell.NewSimulationScreen("UTF-8")
	a, err := NewApp(Options{
		Config:  cfg,
		Screen:  screen,
		Gateway: gateway.New(picker, nil),
	})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	screen.SetSize(40, 6)
	t.Cleanup(a.shutdown)
	return a
}

func (a *App) press(keys ...*tcell.EventKey) {
	for _, k := range keys {
		a.handleKey(k)
	}
}

func typeText(text string) []*tcell.EventKey {
	var keys []*tcell.EventKey
	for _, r := range text {
		keys = append(keys, tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	return keys
}

func ctrl(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModCtrl) }

func key(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }

func (a *App) await(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if !a.controller.Await(ctx) {
		t.Fatalf("expected an operation to complete")
	}
}

func (a *App) row(y int) string {
	screen := a.tuiManager.GetScreen()
	width, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func TestApp_TypeAndSaveUntitled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.go")
	a := newTestApp(t, gateway.StaticPicker{SavePath: path})

	a.press(typeText("hi")...)
	if !a.controller.Session().Dirty() {
		t.Fatalf("expected dirty after typing")
	}

	a.press(ctrl(tcell.KeyCtrlS))
	a.press(ctrl(tcell.KeyCtrlS))
	if got := a.controller.Stats().Dropped; got != 1 {
		t.Fatalf("Dropped=%d, want 1", got)
	}
	a.await(t)

	snap := a.controller.Snapshot()
	if snap.Dirty || snap.Path != path {
		t.Fatalf("after save: dirty=%v path=%q", snap.Dirty, snap.Path)
	}
	if snap.Highlight.Extension != "go" {
		t.Fatalf("extension=%q, want go", snap.Highlight.Extension)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hi" {
		t.Fatalf("file=%q, want hi", data)
	}
}

func TestApp_QuitRefusedWhileDirty(t *testing.T) {
	a := newTestApp(t, gateway.StaticPicker{})

	a.press(key(tcell.KeyEscape))
	if !a.quit {
		t.Fatalf("clean document should quit")
	}

	a.quit = false
	a.press(typeText("x")...)
	a.press(ctrl(tcell.KeyCtrlW))
	if a.quit {
		t.Fatalf("dirty document should not quit")
	}
	a.press(ctrl(tcell.KeyCtrlQ))
	if !a.quit {
		t.Fatalf("force quit should quit")
	}
}

func TestApp_CopyCutPaste(t *testing.T) {
	a := newTestApp(t, gateway.StaticPicker{})
	text := func() string { return a.controller.Session().Buffer().Text() }

	a.press(typeText("abc")...)
	a.press(ctrl(tcell.KeyCtrlA), ctrl(tcell.KeyCtrlC), key(tcell.KeyEnd), ctrl(tcell.KeyCtrlV))
	if got := text(); got != "abcabc" {
		t.Fatalf("after copy/paste text=%q", got)
	}

	a.press(ctrl(tcell.KeyCtrlA), ctrl(tcell.KeyCtrlX))
	if got := text(); got != "" {
		t.Fatalf("after cut text=%q", got)
	}
	a.press(ctrl(tcell.KeyCtrlV))
	if got := text(); got != "abcabc" {
		t.Fatalf("after paste text=%q", got)
	}
}

func TestApp_CycleTheme(t *testing.T) {
	a := newTestApp(t, gateway.StaticPicker{})
	before := a.controller.Session().Highlight().Style
	a.press(key(tcell.KeyF2))
	after := a.controller.Session().Highlight().Style
	if before == after {
		t.Fatalf("theme did not change from %q", before)
	}
}

func TestApp_OpenFailureShownInStatusBar(t *testing.T) {
	a := newTestApp(t, gateway.StaticPicker{OpenPath: filepath.Join(t.TempDir(), "missing.txt")})

	a.press(ctrl(tcell.KeyCtrlO))
	a.await(t)
	if a.controller.Session().LastError() == nil {
		t.Fatalf("expected an open failure")
	}

	a.draw()
	status := a.row(5)
	if !strings.HasPrefix(status, "New file -- ") {
		t.Fatalf("status=%q", status)
	}
}

func TestApp_DrawShowsDocument(t *testing.T) {
	a := newTestApp(t, gateway.StaticPicker{})
	a.statusBar.ResetTemporaryMessage()
	a.press(typeText("hello")...)
	a.draw()

	if got := a.row(0); got != "1 hello" {
		t.Fatalf("row 0=%q", got)
	}
	status := a.row(5)
	if !strings.HasPrefix(status, "New file [Modified]") || !strings.HasSuffix(status, "1:6") {
		t.Fatalf("status=%q", status)
	}
}
