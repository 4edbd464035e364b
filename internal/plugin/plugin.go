// internal/plugin/plugin.go
package plugin

import (
	"github.com/bethropolis/quill/internal/event"
	"github.com/bethropolis/quill/internal/session"
)

// Controller is the part of the session controller plugins may use.
// *session.Controller implements it.
type Controller interface {
	Session() *session.Session
	Update(ev session.Event)
}

// EditorAPI defines the methods plugins can use to interact with the editor.
type EditorAPI interface {
	// Run queues fn to run on the UI loop with the session controller.
	// It is safe to call from any goroutine and never blocks.
	Run(fn func(ctrl Controller))

	// SubscribeEvent registers a bus handler. Handlers run on the UI loop.
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// SetStatusMessage shows a temporary message in the status bar.
	SetStatusMessage(format string, args ...interface{})
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the editor is closing.
	Shutdown() error
}
