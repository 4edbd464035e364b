// internal/app/editor_api.go
package app

import (
	"github.com/bethropolis/quill/internal/event"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/plugin"
)

// Ensure appEditorAPI implements the plugin.EditorAPI interface.
var _ plugin.EditorAPI = (*appEditorAPI)(nil)

// appEditorAPI is the plugins' view of the application.
type appEditorAPI struct {
	app *App
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

// Run queues fn for the main loop. The queue is bounded; when it is full
// the task is dropped.
func (api *appEditorAPI) Run(fn func(ctrl plugin.Controller)) {
	task := func() { fn(api.app.controller) }
	select {
	case api.app.tasks <- task:
	default:
		logger.Warnf("EditorAPI: task queue full, dropping plugin task")
	}
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
	api.app.requestRedraw()
}
