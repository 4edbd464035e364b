package wordcount

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/bethropolis/quill/internal/event"
	"github.com/bethropolis/quill/internal/plugin"
)

// Ensure WordCount implements plugin.Plugin
var _ plugin.Plugin = (*WordCount)(nil)

// WordCount reports line, word and byte counts in the status bar each time
// the document is saved.
type WordCount struct {
	api plugin.EditorAPI
}

// New creates a new instance of the WordCount plugin.
func New() *WordCount {
	return &WordCount{}
}

// Name returns the unique name of the plugin.
func (p *WordCount) Name() string {
	return "wordcount"
}

// Initialize subscribes to save notifications.
func (p *WordCount) Initialize(api plugin.EditorAPI) error {
	if api == nil {
		return fmt.Errorf("wordcount: nil editor API")
	}
	p.api = api
	api.SubscribeEvent(event.TypeBufferSaved, p.onSaved)
	return nil
}

// Shutdown performs cleanup (nothing needed for this simple plugin).
func (p *WordCount) Shutdown() error {
	return nil
}

func (p *WordCount) onSaved(e event.Event) bool {
	data, ok := e.Data.(event.BufferSavedData)
	if !ok {
		return false
	}
	p.api.Run(func(ctrl plugin.Controller) {
		st := Count(ctrl.Session().Buffer().Text())
		p.api.SetStatusMessage("Saved %s (%s)", data.FilePath, st)
	})
	return false
}

// Stats are the counts for one document.
type Stats struct {
	Lines int
	Words int
	Bytes int
}

func (s Stats) String() string {
	return fmt.Sprintf("Lines: %d, Words: %d, Bytes: %d", s.Lines, s.Words, s.Bytes)
}

// Count computes Stats for text. An empty document has one line.
func Count(text string) Stats {
	return Stats{
		Lines: strings.Count(text, "\n") + 1,
		Words: len(strings.FieldsFunc(text, unicode.IsSpace)),
		Bytes: len(text),
	}
}
