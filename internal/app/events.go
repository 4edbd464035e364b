package app

import (
	"github.com/bethropolis/quill/internal/event"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/tui"
)

// subscribe wires the app's reactions to session notifications.
func (a *App) subscribe() {
	a.eventManager.Subscribe(event.TypeBufferModified, a.handleContentChanged)
	a.eventManager.Subscribe(event.TypeBufferLoaded, a.handleContentChanged)
	// Save As may change the extension and with it the language.
	a.eventManager.Subscribe(event.TypeBufferSaved, a.handleContentChanged)
	a.eventManager.Subscribe(event.TypeThemeChanged, a.handleThemeChanged)
	a.eventManager.Subscribe(event.TypeOperationFailed, a.handleOperationFailed)
}

func (a *App) handleContentChanged(e event.Event) bool {
	if data, ok := e.Data.(event.BufferLoadedData); ok {
		a.viewport = tui.Viewport{}
		logger.DebugTagf("app", "App: loaded '%s'", data.FilePath)
	}
	a.requestHighlight()
	return false
}

func (a *App) handleThemeChanged(e event.Event) bool {
	a.applyTheme()
	a.requestHighlight()
	return false
}

func (a *App) handleOperationFailed(e event.Event) bool {
	if data, ok := e.Data.(event.OperationFailedData); ok {
		logger.DebugTagf("app", "App: %s failed: %v", data.Operation, data.Err)
	}
	// The error stays visible in the status bar; drop any transient message.
	a.statusBar.ResetTemporaryMessage()
	return false
}

// requestHighlight schedules highlighting of the current document.
func (a *App) requestHighlight() {
	s := a.controller.Session()
	a.highlights.Request(s.Highlight(), s.Buffer().Text())
}
