package session

import (
	"context"
	"sync"

	"github.com/bethropolis/quill/internal/buffer"
	"github.com/bethropolis/quill/internal/event"
	"github.com/bethropolis/quill/internal/gateway"
	"github.com/bethropolis/quill/internal/logger"
)

// Gateway performs the file operations the controller requests.
// *gateway.Gateway implements it.
type Gateway interface {
	Open(ctx context.Context) (gateway.Document, error)
	Load(ctx context.Context, path string) (gateway.Document, error)
	Save(ctx context.Context, path string, content string) (string, error)
}

// Options configure a Controller.
type Options struct {
	Gateway Gateway        // required
	Events  *event.Manager // optional notification bus
	Theme   string         // highlight theme; empty selects the default
}

// Stats counts requests the controller did not act on.
type Stats struct {
	Dropped int // file requests issued while busy
	Stale   int // completions that arrived while idle
}

// Controller owns the session and is its only mutator. Update must be
// called from a single goroutine; file operations run on their own
// goroutine and report back through Completions.
type Controller struct {
	session     *Session
	gw          Gateway
	events      *event.Manager
	completions chan Event

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	savedEdits uint64 // session.edits when the in-flight save was requested
	stats      Stats
}

// New creates a controller with an empty untitled document.
func New(opts Options) *Controller {
	if opts.Gateway == nil {
		panic("session.New: Gateway is required")
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		session:     newSession(opts.Theme),
		gw:          opts.Gateway,
		events:      opts.Events,
		completions: make(chan Event, 1),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Completions delivers finished file operations. The UI loop must pass
// every received event back to Update.
func (c *Controller) Completions() <-chan Event { return c.completions }

// Session returns the session for read-only use.
func (c *Controller) Session() *Session { return c.session }

func (c *Controller) Stats() Stats { return c.stats }

// Update is the single transition function of the session.
func (c *Controller) Update(ev Event) {
	switch e := ev.(type) {
	case NewDocument:
		if c.gate(e) {
			c.newDocument()
		}
	case OpenRequested:
		if c.gate(e) {
			c.start("open", func(ctx context.Context) Event {
				doc, err := c.gw.Open(ctx)
				return OpenCompleted{Document: doc, Err: err}
			})
		}
	case OpenPathRequested:
		if c.gate(e) {
			path := e.Path
			c.start("open", func(ctx context.Context) Event {
				doc, err := c.gw.Load(ctx, path)
				return OpenCompleted{Document: doc, Err: err}
			})
		}
	case SaveRequested:
		if c.gate(e) {
			c.startSave(c.session.path)
		}
	case SaveAsRequested:
		if c.gate(e) {
			c.startSave("")
		}
	case OpenCompleted:
		if c.finish(e) {
			c.opened(e)
		}
	case SaveCompleted:
		if c.finish(e) {
			c.saved(e)
		}
	case Edit:
		c.edit(e.Action)
	case ThemeSelected:
		c.session.theme = e.Theme
		c.events.Dispatch(event.TypeThemeChanged, event.ThemeChangedData{Theme: e.Theme})
	default:
		logger.Warnf("Controller: unhandled event %T", ev)
	}
}

// gate reports whether a file request may proceed; requests while busy
// are dropped.
func (c *Controller) gate(ev Event) bool {
	if c.session.Busy() {
		c.stats.Dropped++
		logger.DebugTagf("session", "Controller: dropped %T while busy", ev)
		return false
	}
	return true
}

// finish reports whether a completion belongs to the operation in flight.
func (c *Controller) finish(ev Event) bool {
	if !c.session.Busy() {
		c.stats.Stale++
		logger.Warnf("Controller: ignoring %T while idle", ev)
		return false
	}
	c.setBusy(false)
	return true
}

func (c *Controller) setBusy(busy bool) {
	if busy {
		c.session.state = Busy
	} else {
		c.session.state = Idle
	}
	c.events.Dispatch(event.TypeBusyChanged, event.BusyChangedData{Busy: busy})
}

func (c *Controller) start(op string, run func(ctx context.Context) Event) {
	c.session.lastError = nil
	c.setBusy(true)
	logger.DebugTagf("session", "Controller: %s started", op)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.completions <- run(c.ctx)
	}()
}

func (c *Controller) startSave(path string) {
	text := c.session.buf.Text()
	c.savedEdits = c.session.edits
	c.start("save", func(ctx context.Context) Event {
		written, err := c.gw.Save(ctx, path, text)
		return SaveCompleted{Path: written, Err: err}
	})
}

func (c *Controller) newDocument() {
	s := c.session
	s.buf.ReplaceAll("")
	s.path = ""
	s.dirty = false
	s.lastError = nil
	logger.DebugTagf("session", "Controller: new document")
	c.events.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{FilePath: ""})
	c.events.Dispatch(event.TypeCursorMoved, event.CursorMovedData{NewPosition: s.buf.Cursor()})
}

func (c *Controller) opened(e OpenCompleted) {
	s := c.session
	if e.Err != nil {
		c.fail("open", e.Err)
		return
	}
	s.path = e.Document.Path
	s.buf.ReplaceAll(e.Document.Content)
	s.dirty = false
	s.lastError = nil
	logger.Infof("Opened '%s' (%d lines)", s.path, s.buf.LineCount())
	c.events.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{FilePath: s.path})
	c.events.Dispatch(event.TypeCursorMoved, event.CursorMovedData{NewPosition: s.buf.Cursor()})
}

func (c *Controller) saved(e SaveCompleted) {
	s := c.session
	if e.Err != nil {
		c.fail("save", e.Err)
		return
	}
	s.path = e.Path
	// Edits made while the save was in flight are not on disk.
	s.dirty = s.edits != c.savedEdits
	s.lastError = nil
	logger.Infof("Saved '%s'", s.path)
	c.events.Dispatch(event.TypeBufferSaved, event.BufferSavedData{FilePath: s.path})
}

func (c *Controller) fail(op string, err error) {
	c.session.lastError = err
	logger.Warnf("Controller: %s failed: %v", op, err)
	c.events.Dispatch(event.TypeOperationFailed, event.OperationFailedData{Operation: op, Err: err})
}

func (c *Controller) edit(a buffer.Action) {
	s := c.session
	before := s.buf.Cursor()
	changed := s.buf.Perform(a)
	if a.IsEdit() {
		s.edits++
		s.dirty = true
		s.lastError = nil
	}
	if changed {
		c.events.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Cursor: s.buf.Cursor(), Lines: s.buf.LineCount()})
	}
	if after := s.buf.Cursor(); after != before {
		c.events.Dispatch(event.TypeCursorMoved, event.CursorMovedData{NewPosition: after})
	}
}

// Await blocks until the in-flight operation completes and applies it.
// It returns false if nothing is in flight or ctx ends first.
func (c *Controller) Await(ctx context.Context) bool {
	if !c.session.Busy() {
		return false
	}
	select {
	case ev := <-c.completions:
		c.Update(ev)
		return true
	case <-ctx.Done():
		return false
	}
}

// Shutdown cancels the context of an in-flight operation and waits for it
// to post its completion. The completion is left on the channel.
func (c *Controller) Shutdown() {
	c.cancel()
	c.wg.Wait()
}
