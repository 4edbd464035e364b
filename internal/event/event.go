// internal/event/event.go
package event

import (
	"github.com/bethropolis/quill/internal/types"
)

// Type identifies the kind of bus notification.
type Type int

const (
	TypeUnknown Type = iota

	// Session
	TypeBufferModified  // Buffer content changed through an edit
	TypeBufferLoaded    // A file was opened into the buffer
	TypeBufferSaved     // The buffer was written to disk
	TypeCursorMoved     // Cursor position changed
	TypeOperationFailed // An open or save finished with an error
	TypeBusyChanged     // The session entered or left the busy state

	// Application
	TypeAppReady
	TypeAppQuit

	TypeThemeChanged // Highlight or UI theme switched
)

var typeNames = map[Type]string{
	TypeUnknown:         "unknown",
	TypeBufferModified:  "buffer-modified",
	TypeBufferLoaded:    "buffer-loaded",
	TypeBufferSaved:     "buffer-saved",
	TypeCursorMoved:     "cursor-moved",
	TypeOperationFailed: "operation-failed",
	TypeBusyChanged:     "busy-changed",
	TypeAppReady:        "app-ready",
	TypeAppQuit:         "app-quit",
	TypeThemeChanged:    "theme-changed",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Event is the structure passed through the bus.
type Event struct {
	Type Type
	Data interface{}
}

// BufferModifiedData describes an edit that changed content.
type BufferModifiedData struct {
	Cursor types.Position
	Lines  int
}

// BufferLoadedData contains the opened path.
type BufferLoadedData struct {
	FilePath string
}

// BufferSavedData contains the written path.
type BufferSavedData struct {
	FilePath string
}

// CursorMovedData contains the new cursor position.
type CursorMovedData struct {
	NewPosition types.Position
}

// OperationFailedData carries the error recorded on the session.
type OperationFailedData struct {
	Operation string // "open" or "save"
	Err       error
}

// BusyChangedData reports the new busy state.
type BusyChangedData struct {
	Busy bool
}

// ThemeChangedData names the theme now in effect.
type ThemeChangedData struct {
	Theme string
}
