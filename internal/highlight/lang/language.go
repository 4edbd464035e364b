package lang

import (
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

// Language represents a programming language with its tree-sitter highlighting configuration.
type Language struct {
	// Name is the display name of the language
	Name string

	// TreeSitterLang is the tree-sitter language instance
	TreeSitterLang *sitter.Language

	// Extensions lists file extensions (without dot) mapped to this language
	Extensions []string

	// Query is the highlight query source; capture names become style names
	Query string

	once     sync.Once
	compiled *sitter.Query
	err      error
}

// CompiledQuery parses the highlight query once and caches the result.
func (l *Language) CompiledQuery() (*sitter.Query, error) {
	l.once.Do(func() {
		if l.TreeSitterLang == nil || l.Query == "" {
			l.err = fmt.Errorf("language %s has no grammar or query", l.Name)
			return
		}
		l.compiled, l.err = sitter.NewQuery([]byte(l.Query), l.TreeSitterLang)
		if l.err != nil {
			l.err = fmt.Errorf("compile %s highlight query: %w", l.Name, l.err)
		}
	})
	return l.compiled, l.err
}
