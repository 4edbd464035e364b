package gateway

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/bethropolis/quill/internal/logger"
	"github.com/sqweek/dialog"
)

// NativePicker shows the platform file dialogs.
type NativePicker struct {
	// Filters restricts the open dialog, e.g. {"Text", {"txt", "md"}}.
	Filters []Filter
}

// Filter is a named set of file extensions without dots.
type Filter struct {
	Description string
	Extensions  []string
}

// PickOpenPath shows the "open" dialog.
func (p NativePicker) PickOpenPath(ctx context.Context) (string, bool) {
	b := dialog.File().Title("Choose a text file...")
	for _, f := range p.Filters {
		b = b.Filter(f.Description, f.Extensions...)
	}
	return pickResult(b.Load())
}

// PickSavePath shows the "save as" dialog.
func (p NativePicker) PickSavePath(ctx context.Context) (string, bool) {
	return pickResult(dialog.File().Title("Choose a file name...").Save())
}

func pickResult(path string, err error) (string, bool) {
	if err != nil {
		if !errors.Is(err, dialog.ErrCancelled) {
			logger.Warnf("NativePicker: dialog failed: %v", err)
		}
		return "", false
	}
	if path == "" {
		return "", false
	}
	return filepath.Clean(path), true
}

// StaticPicker answers with fixed paths; an empty path means "cancelled".
// Used for headless runs and tests.
type StaticPicker struct {
	OpenPath string
	SavePath string
}

func (p StaticPicker) PickOpenPath(ctx context.Context) (string, bool) {
	return p.OpenPath, p.OpenPath != ""
}

func (p StaticPicker) PickSavePath(ctx context.Context) (string, bool) {
	return p.SavePath, p.SavePath != ""
}
