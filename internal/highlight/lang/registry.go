package lang

import (
	"strings"
	"sync"

	"github.com/bethropolis/quill/internal/logger"
)

var registry struct {
	sync.RWMutex
	languages     []*Language
	extToLanguage map[string]*Language
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Register adds a language to the registry
func Register(lang *Language) {
	registry.Lock()
	defer registry.Unlock()

	if registry.extToLanguage == nil {
		registry.extToLanguage = make(map[string]*Language)
	}
	registry.languages = append(registry.languages, lang)

	for _, ext := range lang.Extensions {
		key := normalizeExt(ext)
		if existing, ok := registry.extToLanguage[key]; ok {
			logger.Warnf("Extension %s already registered to %s, overriding with %s",
				key, existing.Name, lang.Name)
		}
		registry.extToLanguage[key] = lang
	}

	logger.DebugTagf("highlight", "Registered language: %s with extensions: %v", lang.Name, lang.Extensions)
}

// ForExtension returns the language registered for ext, or nil.
func ForExtension(ext string) *Language {
	registry.RLock()
	defer registry.RUnlock()
	return registry.extToLanguage[normalizeExt(ext)]
}

// All returns all registered languages
func All() []*Language {
	registry.RLock()
	defer registry.RUnlock()

	result := make([]*Language, len(registry.languages))
	copy(result, registry.languages)
	return result
}
