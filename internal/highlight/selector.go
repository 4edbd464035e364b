// Package highlight picks highlighting configuration for a document and
// computes per-line styled ranges for the view.
package highlight

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const (
	// DefaultExtension is used when a path has no extension.
	DefaultExtension = "txt"
	// DefaultTheme is the highlight theme used when none is configured.
	DefaultTheme = "solarized-dark"
)

// Config is the highlighting configuration derived from an extension and
// a theme. It is a plain value and is never persisted.
type Config struct {
	Extension string // without dot, lower case
	Theme     string // requested theme
	Language  string // resolved lexer name
	Style     string // resolved style name
}

// Select derives the configuration for a file extension and theme name.
// It is total: unknown extensions get the plain-text lexer and unknown
// themes get the fallback style.
func Select(extension, theme string) Config {
	ext := strings.ToLower(strings.TrimPrefix(extension, "."))
	if ext == "" {
		ext = DefaultExtension
	}
	if theme == "" {
		theme = DefaultTheme
	}
	return Config{
		Extension: ext,
		Theme:     theme,
		Language:  lexerFor(ext).Config().Name,
		Style:     styles.Get(theme).Name,
	}
}

// ExtensionOf returns the extension of path without the dot, or
// DefaultExtension if there is none.
func ExtensionOf(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return DefaultExtension
	}
	return strings.ToLower(ext)
}

// Themes lists the available highlight theme names, sorted.
func Themes() []string {
	names := styles.Names()
	sort.Strings(names)
	return names
}

// Lexer returns the chroma lexer for the configuration.
func (c Config) Lexer() chroma.Lexer {
	return chroma.Coalesce(lexerFor(c.Extension))
}

// ChromaStyle returns the chroma style for the configuration.
func (c Config) ChromaStyle() *chroma.Style {
	return styles.Get(c.Style)
}

func lexerFor(ext string) chroma.Lexer {
	if l := lexers.Match("file." + ext); l != nil {
		return l
	}
	if l := lexers.Get(ext); l != nil {
		return l
	}
	return lexers.Fallback
}
