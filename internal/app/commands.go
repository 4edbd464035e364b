package app

import (
	"github.com/bethropolis/quill/internal/buffer"
	"github.com/bethropolis/quill/internal/highlight"
	"github.com/bethropolis/quill/internal/input"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/session"
	"github.com/gdamore/tcell/v2"
)

// handleKey decodes a key press and carries out its action.
func (a *App) handleKey(ev *tcell.EventKey) {
	ae := a.input.ProcessEvent(ev)
	switch ae.Action {
	case input.ActionUnknown:
		return
	case input.ActionQuit:
		a.requestQuit(false)
	case input.ActionForceQuit:
		a.requestQuit(true)
	case input.ActionCopy:
		a.copySelection(false)
	case input.ActionCut:
		a.copySelection(true)
	case input.ActionPaste:
		a.paste()
	case input.ActionCycleTheme:
		a.cycleTheme()
	default:
		if sev, ok := ae.SessionEvent(); ok {
			a.update(sev)
		}
	}
}

// update passes ev to the controller and reports requests it dropped.
func (a *App) update(ev session.Event) {
	dropped := a.controller.Stats().Dropped
	a.controller.Update(ev)
	if a.controller.Stats().Dropped > dropped {
		a.statusBar.SetTemporaryMessage("Busy: wait for the current operation to finish")
	}
}

// requestQuit quits unless the document has unsaved changes and force is false.
func (a *App) requestQuit(force bool) {
	if !force && a.controller.Session().Dirty() {
		a.statusBar.SetTemporaryMessage("Unsaved changes: Ctrl+S to save, Ctrl+Q to quit without saving")
		return
	}
	logger.Debugf("App: quit requested (force=%v)", force)
	a.quit = true
}

func (a *App) copySelection(cut bool) {
	text := a.controller.Session().Buffer().SelectedText()
	if text == "" {
		a.statusBar.SetTemporaryMessage("Nothing selected")
		return
	}
	a.clipboard.Copy(text)
	if cut {
		// Backspace removes the selection.
		a.update(session.Edit{Action: buffer.Backspace{}})
		a.statusBar.SetTemporaryMessage("Cut %d characters", len([]rune(text)))
		return
	}
	a.statusBar.SetTemporaryMessage("Copied %d characters", len([]rune(text)))
}

func (a *App) paste() {
	text := a.clipboard.Paste()
	if text == "" {
		return
	}
	a.update(session.Edit{Action: buffer.Paste{Text: text}})
}

// cycleTheme switches to the next highlight theme in sorted order.
func (a *App) cycleTheme() {
	themes := highlight.Themes()
	if len(themes) == 0 {
		return
	}
	current := a.controller.Session().Highlight().Style
	next := themes[0]
	for i, name := range themes {
		if name == current {
			next = themes[(i+1)%len(themes)]
			break
		}
	}
	a.update(session.ThemeSelected{Theme: next})
	a.statusBar.SetTemporaryMessage("Theme: %s", next)
}
