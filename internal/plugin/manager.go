// internal/plugin/manager.go
package plugin

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bethropolis/quill/internal/logger"
)

// Manager handles the registration, initialization, and lifecycle of plugins.
// Plugins are initialized in registration order and shut down in reverse.
type Manager struct {
	mu          sync.RWMutex
	plugins     map[string]Plugin
	order       []string
	initialized []Plugin
}

// NewManager creates a new plugin manager.
func NewManager() *Manager {
	return &Manager{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin instance to the manager.
// This should be called before InitializePlugins.
func (m *Manager) Register(p Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := p.Name()
	if name == "" {
		return fmt.Errorf("plugin registration failed: plugin name cannot be empty")
	}
	if _, exists := m.plugins[name]; exists {
		return fmt.Errorf("plugin registration failed: plugin named '%s' already registered", name)
	}

	m.plugins[name] = p
	m.order = append(m.order, name)
	logger.DebugTagf("plugin", "Plugin Manager: Registered plugin '%s'", name)
	return nil
}

// InitializePlugins calls Initialize on every registered plugin. A plugin
// that fails to initialize is logged and skipped; it will not be shut down.
func (m *Manager) InitializePlugins(api EditorAPI) {
	m.mu.RLock()
	toInit := make([]Plugin, 0, len(m.order))
	for _, name := range m.order {
		toInit = append(toInit, m.plugins[name])
	}
	m.mu.RUnlock()

	logger.Debugf("Plugin Manager: Initializing %d plugins...", len(toInit))
	var ok []Plugin
	for _, p := range toInit {
		if err := p.Initialize(api); err != nil {
			logger.Errorf("Plugin Manager: Failed to initialize plugin '%s': %v", p.Name(), err)
			continue
		}
		ok = append(ok, p)
	}

	m.mu.Lock()
	m.initialized = ok
	m.mu.Unlock()
}

// ShutdownPlugins shuts down initialized plugins in reverse order and
// returns their joined errors.
func (m *Manager) ShutdownPlugins() error {
	m.mu.Lock()
	toStop := m.initialized
	m.initialized = nil
	m.mu.Unlock()

	var errs []error
	for i := len(toStop) - 1; i >= 0; i-- {
		p := toStop[i]
		if err := p.Shutdown(); err != nil {
			logger.Errorf("Plugin Manager: Error shutting down plugin '%s': %v", p.Name(), err)
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// GetPlugin retrieves a registered plugin by name.
func (m *Manager) GetPlugin(name string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.plugins[name]
	return p, ok
}
