// internal/input/action.go
package input

import (
	"github.com/bethropolis/quill/internal/buffer"
	"github.com/bethropolis/quill/internal/session"
)

// Action is an application-level command decoded from a key.
type Action int

const (
	ActionUnknown Action = iota
	ActionQuit           // Quit, refusing while the document is dirty
	ActionForceQuit      // Quit without checking modified status
	ActionNew
	ActionOpen
	ActionSave
	ActionSaveAs
	ActionCopy
	ActionCut
	ActionPaste
	ActionCycleTheme
	ActionEdit // Carries a buffer action
)

// ActionEvent is a decoded key press.
type ActionEvent struct {
	Action Action
	Edit   buffer.Action // Set for ActionEdit
}

// SessionEvent converts the action into a controller event, if it is one.
// Clipboard, theme and quit actions are handled by the application.
func (ae ActionEvent) SessionEvent() (session.Event, bool) {
	switch ae.Action {
	case ActionNew:
		return session.NewDocument{}, true
	case ActionOpen:
		return session.OpenRequested{}, true
	case ActionSave:
		return session.SaveRequested{}, true
	case ActionSaveAs:
		return session.SaveAsRequested{}, true
	case ActionEdit:
		if ae.Edit != nil {
			return session.Edit{Action: ae.Edit}, true
		}
	}
	return nil, false
}
