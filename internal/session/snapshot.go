package session

import (
	"errors"

	"github.com/bethropolis/quill/internal/gateway"
	"github.com/bethropolis/quill/internal/highlight"
	"github.com/bethropolis/quill/internal/types"
)

// Snapshot is a read-only copy of the session for rendering.
type Snapshot struct {
	Path         string
	Dirty        bool
	Busy         bool
	Cursor       types.Position
	Text         string
	Lines        []string
	Highlight    highlight.Config
	LastError    error
	Selection    types.Range
	HasSelection bool
}

// Snapshot copies the current state.
func (c *Controller) Snapshot() Snapshot {
	s := c.session
	raw := s.buf.Lines()
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = string(l)
	}
	sel, hasSel := s.buf.Selection()
	return Snapshot{
		Path:         s.path,
		Dirty:        s.dirty,
		Busy:         s.Busy(),
		Cursor:       s.buf.Cursor(),
		Text:         s.buf.Text(),
		Lines:        lines,
		Highlight:    s.Highlight(),
		LastError:    s.lastError,
		Selection:    sel,
		HasSelection: hasSel,
	}
}

// CanSave reports whether a save action should be offered.
func (s Snapshot) CanSave() bool { return s.Dirty && !s.Busy }

// ErrorText is the message shown for LastError. A dismissed dialog is not
// an I/O failure and reads "cancelled".
func (s Snapshot) ErrorText() string {
	switch {
	case s.LastError == nil:
		return ""
	case errors.Is(s.LastError, gateway.ErrDialogCancelled):
		return "cancelled"
	default:
		return s.LastError.Error()
	}
}
