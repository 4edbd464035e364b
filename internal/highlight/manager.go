package highlight

import (
	"context"
	"sync"
	"time"

	"github.com/bethropolis/quill/internal/logger"
)

// DebounceDuration is how long the manager waits for edits to settle.
const DebounceDuration = 65 * time.Millisecond

type request struct {
	cfg  Config
	text string
	seq  uint64
}

// Manager runs debounced background highlighting and keeps the latest result.
type Manager struct {
	highlighter *Highlighter
	appRedraw   func()

	work sync.Mutex // serialises use of highlighter

	mu      sync.Mutex
	timer   *time.Timer
	cancel  context.CancelFunc
	pending *request
	seq     uint64
	applied uint64
	result  Result
	closed  bool
}

// NewManager creates a highlighting manager. redraw is called from a
// background goroutine after each completed run.
func NewManager(h *Highlighter, redraw func()) *Manager {
	return &Manager{highlighter: h, appRedraw: redraw}
}

// Request schedules highlighting of text, replacing any pending request.
func (m *Manager) Request(cfg Config, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.seq++
	m.pending = &request{cfg: cfg, text: text, seq: m.seq}

	if m.timer != nil {
		m.timer.Reset(DebounceDuration)
		return
	}
	logger.DebugTagf("highlight", "HighlightingManager: starting debounce timer (%v)", DebounceDuration)
	m.timer = time.AfterFunc(DebounceDuration, m.run)
}

func (m *Manager) run() {
	m.mu.Lock()
	m.timer = nil
	req := m.pending
	m.pending = nil
	if req == nil || m.closed {
		m.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.mu.Unlock()

	m.work.Lock()
	result, err := m.highlighter.Highlight(ctx, req.cfg, req.text)
	m.work.Unlock()
	cancel()

	m.mu.Lock()
	if err != nil {
		if ctx.Err() == nil {
			logger.Warnf("HighlightingManager: background highlighting failed: %v", err)
		}
	} else if req.seq > m.applied {
		m.result = result
		m.applied = req.seq
	}
	closed := m.closed
	m.mu.Unlock()

	if !closed && m.appRedraw != nil {
		m.appRedraw()
	}
}

// Current returns the most recent completed result.
func (m *Manager) Current() Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.result
}

// Shutdown cancels any pending or running task.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	logger.DebugTagf("highlight", "HighlightingManager: shut down")
}
