package autosave

import (
	"sync"
	"time"

	"github.com/bethropolis/quill/internal/config"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/plugin"
	"github.com/bethropolis/quill/internal/session"
)

// Ensure AutoSave implements plugin.Plugin
var _ plugin.Plugin = (*AutoSave)(nil)

// AutoSave periodically requests a save of a modified document that
// already has a path. The request goes through the controller, so a tick
// that lands while an operation is in flight is simply skipped.
type AutoSave struct {
	api plugin.EditorAPI

	enabled  bool
	interval time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New creates the plugin from the autosave configuration.
func New(cfg config.AutosaveConfig) *AutoSave {
	interval := cfg.Interval
	if interval < config.MinAutosaveInterval {
		interval = config.DefaultAutosaveInterval
	}
	return &AutoSave{enabled: cfg.Enabled, interval: interval}
}

// Name returns the unique name of the plugin.
func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize starts the saver loop if enabled.
func (p *AutoSave) Initialize(api plugin.EditorAPI) error {
	p.api = api
	logger.Infof("%s initialized. Enabled: %v, Interval: %v", p.Name(), p.enabled, p.interval)

	if p.enabled {
		p.stopChan = make(chan struct{})
		p.wg.Add(1)
		go p.saverLoop(p.interval)
	}
	return nil
}

// Shutdown signals the saver goroutine to stop and waits for it.
func (p *AutoSave) Shutdown() error {
	if p.stopChan != nil {
		close(p.stopChan)
		p.wg.Wait()
		p.stopChan = nil
		logger.Debugf("%s: Saver goroutine stopped.", p.Name())
	}
	return nil
}

func (p *AutoSave) saverLoop(interval time.Duration) {
	defer p.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.api.Run(p.saveIfModified)
		case <-p.stopChan:
			return
		}
	}
}

// saveIfModified runs on the UI loop.
func (p *AutoSave) saveIfModified(ctrl plugin.Controller) {
	s := ctrl.Session()
	switch {
	case !s.Dirty():
		return
	case s.Path() == "":
		logger.DebugTagf("autosave", "%s: document has no path, skipping", p.Name())
		return
	case s.Busy():
		logger.DebugTagf("autosave", "%s: operation in flight, skipping", p.Name())
		return
	}
	logger.Infof("%s: Auto-saving '%s'", p.Name(), s.Path())
	ctrl.Update(session.SaveRequested{})
}
