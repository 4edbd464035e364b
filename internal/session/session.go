// Package session holds the state of one editing session and the
// controller that owns all of its transitions.
package session

import (
	"github.com/bethropolis/quill/internal/buffer"
	"github.com/bethropolis/quill/internal/highlight"
)

// State of the session with respect to file operations.
type State int

const (
	Idle State = iota
	Busy
)

func (s State) String() string {
	if s == Busy {
		return "busy"
	}
	return "idle"
}

// Session is one document with its file lifecycle.
// It is mutated only by the Controller.
type Session struct {
	path      string // "" means untitled
	dirty     bool
	state     State
	lastError error
	theme     string
	buf       buffer.Buffer
	edits     uint64 // count of modifying edits, never reset
}

func newSession(theme string) *Session {
	if theme == "" {
		theme = highlight.DefaultTheme
	}
	return &Session{theme: theme, buf: buffer.NewSliceBuffer()}
}

// Path returns the file path, or "" for an untitled document.
func (s *Session) Path() string { return s.path }

// Dirty reports unsaved edits since the last successful load or save.
func (s *Session) Dirty() bool { return s.dirty }

// Busy reports whether an open or save is in flight.
func (s *Session) Busy() bool { return s.state == Busy }

func (s *Session) State() State { return s.state }

// LastError returns the most recent failure, or nil.
func (s *Session) LastError() error { return s.lastError }

// Theme returns the highlight theme name.
func (s *Session) Theme() string { return s.theme }

// Buffer returns a read-only view of the document.
func (s *Session) Buffer() buffer.Reader { return s.buf }

// Highlight derives the highlighting configuration from path and theme.
func (s *Session) Highlight() highlight.Config {
	return highlight.Select(highlight.ExtensionOf(s.path), s.theme)
}
