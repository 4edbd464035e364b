// Package gateway performs the file operations of an editing session:
// picking a path through a dialog, reading and writing text.
// It never touches session or buffer state; it only returns results.
package gateway

import (
	"context"
	"fmt"

	"github.com/bethropolis/quill/internal/logger"
)

// Picker is the file-selection dialog collaborator.
// ok is false when the user dismissed the dialog.
type Picker interface {
	PickOpenPath(ctx context.Context) (path string, ok bool)
	PickSavePath(ctx context.Context) (path string, ok bool)
}

// FileSystem is the text storage collaborator.
type FileSystem interface {
	ReadText(path string) (string, error)
	WriteText(path string, content string) error
}

// Document is the result of a successful open.
type Document struct {
	Path    string
	Content string
}

// Gateway wires a Picker and a FileSystem together.
type Gateway struct {
	picker Picker
	fs     FileSystem
}

// New creates a gateway. A nil FileSystem means the OS filesystem.
func New(picker Picker, fsys FileSystem) *Gateway {
	if fsys == nil {
		fsys = OSFileSystem{}
	}
	if picker == nil {
		picker = StaticPicker{}
	}
	return &Gateway{picker: picker, fs: fsys}
}

// Open asks the picker for a path, then reads it.
func (g *Gateway) Open(ctx context.Context) (Document, error) {
	path, ok := g.picker.PickOpenPath(ctx)
	if !ok {
		logger.DebugTagf("gateway", "Open: dialog dismissed")
		return Document{}, ErrDialogCancelled
	}
	return g.Load(ctx, path)
}

// Load reads a known path without prompting.
func (g *Gateway) Load(ctx context.Context, path string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, readFailed(path, err)
	}
	content, err := g.fs.ReadText(path)
	if err != nil {
		logger.DebugTagf("gateway", "Load: reading '%s' failed: %v", path, err)
		return Document{}, readFailed(path, err)
	}
	logger.DebugTagf("gateway", "Load: read %d bytes from '%s'", len(content), path)
	return Document{Path: path, Content: content}, nil
}

// Save writes content to path, prompting for a destination when path is empty.
// On success it returns the path actually written.
func (g *Gateway) Save(ctx context.Context, path string, content string) (string, error) {
	if path == "" {
		picked, ok := g.picker.PickSavePath(ctx)
		if !ok {
			logger.DebugTagf("gateway", "Save: dialog dismissed")
			return "", ErrDialogCancelled
		}
		path = picked
	}
	if err := ctx.Err(); err != nil {
		return "", writeFailed(path, err)
	}
	if err := g.fs.WriteText(path, content); err != nil {
		logger.DebugTagf("gateway", "Save: writing '%s' failed: %v", path, err)
		return "", writeFailed(path, fmt.Errorf("write text: %w", err))
	}
	logger.DebugTagf("gateway", "Save: wrote %d bytes to '%s'", len(content), path)
	return path, nil
}
