// Package clipboard keeps copied text for cut, copy and paste edits.
package clipboard

import (
	"sync"

	"github.com/atotto/clipboard"
	"github.com/bethropolis/quill/internal/logger"
)

// Clipboard stores text in an internal register and, when enabled,
// mirrors it to the system clipboard.
type Clipboard struct {
	mu       sync.Mutex
	system   bool
	register string
}

// New creates a clipboard. The system clipboard is used only if requested
// and supported on this platform.
func New(useSystem bool) *Clipboard {
	if useSystem && clipboard.Unsupported {
		logger.Warnf("Clipboard: system clipboard unsupported, using internal register")
		useSystem = false
	}
	return &Clipboard{system: useSystem}
}

// UsesSystem reports whether the system clipboard is mirrored.
func (c *Clipboard) UsesSystem() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.system
}

// Copy stores text. Empty text is ignored.
func (c *Clipboard) Copy(text string) {
	if text == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.register = text
	if !c.system {
		return
	}
	if err := clipboard.WriteAll(text); err != nil {
		logger.Warnf("Clipboard: write to system clipboard failed: %v", err)
	}
	logger.DebugTagf("clipboard", "Copied %d bytes", len(text))
}

// Paste returns the system clipboard content if available, else the register.
func (c *Clipboard) Paste() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.system {
		text, err := clipboard.ReadAll()
		if err == nil && text != "" {
			return text
		}
		if err != nil {
			logger.Warnf("Clipboard: read from system clipboard failed: %v", err)
		}
	}
	return c.register
}
