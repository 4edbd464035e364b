package app

import (
	"github.com/bethropolis/quill/internal/config"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/session"
	"github.com/bethropolis/quill/internal/statusbar"
	"github.com/bethropolis/quill/internal/tui"
)

// draw clears the screen and redraws all components from a snapshot.
func (a *App) draw() {
	snap := a.controller.Snapshot()
	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()
	viewHeight := height - config.StatusBarHeight
	tabWidth := a.cfg.Editor.TabWidth

	gutter := tui.GutterWidth(len(snap.Lines), width)
	a.viewport.Follow(snap.Lines, snap.Cursor, width-gutter, viewHeight, a.cfg.Editor.ScrollOff, tabWidth)
	logger.DebugTagf("draw", "draw: screen %dx%d, viewport %+v", width, height, a.viewport)

	a.statusBar.SetState(statusState(snap))

	a.tuiManager.Clear()
	tui.DrawDocument(screen, tui.View{
		Lines:        snap.Lines,
		Cursor:       snap.Cursor,
		Selection:    snap.Selection,
		HasSelection: snap.HasSelection,
		Highlights:   a.highlights.Current(),
		Theme:        a.activeTheme,
		TabWidth:     tabWidth,
		Viewport:     a.viewport,
	}, width, viewHeight)
	a.statusBar.Draw(screen, width, height)
	a.tuiManager.Show()
}

func statusState(snap session.Snapshot) statusbar.State {
	return statusbar.State{
		Path:   snap.Path,
		Dirty:  snap.Dirty,
		Busy:   snap.Busy,
		Cursor: snap.Cursor,
		Error:  snap.ErrorText(),
		Theme:  snap.Highlight.Style,
	}
}

// applyTheme combines the UI theme with the styles of the session's
// highlight theme and pushes the result to the screen and status bar.
func (a *App) applyTheme() {
	ui := a.themeManager.Current()
	a.activeTheme = ui.WithSyntax(a.controller.Session().Highlight().ChromaStyle())

	a.tuiManager.SetStyle(a.activeTheme.GetStyle("Default"))
	sbConfig := statusbar.DefaultConfig()
	sbConfig.StyleDefault = a.activeTheme.GetStyle("StatusBar")
	sbConfig.StyleModified = a.activeTheme.GetStyle("StatusBarModified")
	sbConfig.StyleMessage = a.activeTheme.GetStyle("StatusBarMessage")
	sbConfig.StyleError = a.activeTheme.GetStyle("StatusBarError")
	sbConfig.MessageTimeout = config.MessageTimeout
	a.statusBar.SetConfig(sbConfig)
}

// requestRedraw sends a redraw signal non-blockingly. Safe from any goroutine.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default:
	}
}
