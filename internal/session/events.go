package session

import (
	"fmt"

	"github.com/bethropolis/quill/internal/buffer"
	"github.com/bethropolis/quill/internal/gateway"
)

// Event is an input to Controller.Update: either a user intent or the
// completion of a file operation.
type Event interface {
	sessionEvent()
}

// NewDocument discards the document and starts an untitled one.
type NewDocument struct{}

// OpenRequested asks the gateway to pick and read a file.
type OpenRequested struct{}

// OpenPathRequested reads a known path without a dialog.
type OpenPathRequested struct{ Path string }

// OpenCompleted delivers the outcome of an open.
type OpenCompleted struct {
	Document gateway.Document
	Err      error
}

// SaveRequested writes the document to its path, prompting if untitled.
type SaveRequested struct{}

// SaveAsRequested always prompts for a destination.
type SaveAsRequested struct{}

// SaveCompleted delivers the outcome of a save.
type SaveCompleted struct {
	Path string
	Err  error
}

// Edit applies a buffer action.
type Edit struct{ Action buffer.Action }

// ThemeSelected switches the highlight theme.
type ThemeSelected struct{ Theme string }

func (NewDocument) sessionEvent()       {}
func (OpenRequested) sessionEvent()     {}
func (OpenPathRequested) sessionEvent() {}
func (OpenCompleted) sessionEvent()     {}
func (SaveRequested) sessionEvent()     {}
func (SaveAsRequested) sessionEvent()   {}
func (SaveCompleted) sessionEvent()     {}
func (Edit) sessionEvent()              {}
func (ThemeSelected) sessionEvent()     {}

func (e OpenPathRequested) String() string { return fmt.Sprintf("OpenPathRequested(%s)", e.Path) }
func (e Edit) String() string              { return fmt.Sprintf("Edit(%T)", e.Action) }
