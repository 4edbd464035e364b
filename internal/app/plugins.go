package app

import (
	"errors"
	"fmt"

	"github.com/bethropolis/quill/internal/config"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/plugin"
	"github.com/bethropolis/quill/plugins/autosave"
	"github.com/bethropolis/quill/plugins/wordcount"
)

// registerPlugins registers all built-in plugins with the manager.
func registerPlugins(pm *plugin.Manager, cfg *config.Config) error {
	if pm == nil {
		return fmt.Errorf("plugin manager is nil")
	}

	plugins := []plugin.Plugin{
		wordcount.New(),
		autosave.New(cfg.Autosave),
	}

	var errs []error
	for _, p := range plugins {
		logger.Debugf("Registering plugin: %s", p.Name())
		if err := pm.Register(p); err != nil {
			errs = append(errs, fmt.Errorf("failed to register plugin '%s': %w", p.Name(), err))
		}
	}
	return errors.Join(errs...)
}
