// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bethropolis/quill/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

const (
	// PathLimit is the longest path shown in full.
	PathLimit = 60
	// PathTail is how much of a long path stays visible.
	PathTail = 40

	untitled = "New file"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style
	StyleModified  tcell.Style
	StyleMessage   tcell.Style
	StyleError     tcell.Style
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue),
		StyleModified:  tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlue).Bold(true),
		StyleMessage:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true),
		StyleError:     tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed).Bold(true),
		MessageTimeout: 4 * time.Second,
	}
}

// State is what the status bar shows about the session.
type State struct {
	Path   string
	Dirty  bool
	Busy   bool
	Cursor types.Position
	Error  string
	Theme  string
}

// StatusBar represents the UI component for the status line.
type StatusBar struct {
	config Config
	mu     sync.RWMutex

	state State

	tempMessage     string
	tempMessageTime time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{config: config}
}

// SetConfig replaces the styles, e.g. after a theme change.
func (sb *StatusBar) SetConfig(config Config) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.config = config
}

// SetState replaces the displayed session state.
func (sb *StatusBar) SetState(st State) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.state = st
}

// SetTemporaryMessage displays a message for a configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = time.Now()
}

// ResetTemporaryMessage clears any temporary message being displayed
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// DisplayPath shortens long paths to an ellipsis followed by their tail.
// Lengths are counted in grapheme clusters.
func DisplayPath(path string) string {
	if path == "" {
		return untitled
	}
	if uniseg.GraphemeClusterCount(path) <= PathLimit {
		return path
	}
	var clusters []string
	gr := uniseg.NewGraphemes(path)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	return "…" + strings.Join(clusters[len(clusters)-PathTail:], "")
}

// Sections returns the left and right status texts for st.
func Sections(st State) (left, right string) {
	var b strings.Builder
	b.WriteString(DisplayPath(st.Path))
	if st.Dirty {
		b.WriteString(" [Modified]")
	}
	if st.Busy {
		b.WriteString(" [working…]")
	}
	if st.Error != "" {
		b.WriteString(" -- ")
		b.WriteString(st.Error)
	}
	right = fmt.Sprintf("%s  %s", st.Theme, st.Cursor)
	return b.String(), strings.TrimSpace(right)
}

// Draw renders the status bar onto the last screen row.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	sb.mu.Lock()
	isTempMsgActive := !sb.tempMessageTime.IsZero() && time.Since(sb.tempMessageTime) <= sb.config.MessageTimeout
	if !sb.tempMessageTime.IsZero() && !isTempMsgActive {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	st := sb.state
	msg := sb.tempMessage
	cfg := sb.config
	sb.mu.Unlock()

	left, right := Sections(st)
	style := cfg.StyleDefault
	switch {
	case isTempMsgActive:
		left = msg
		style = cfg.StyleMessage
	case st.Error != "":
		style = cfg.StyleError
	case st.Dirty:
		style = cfg.StyleModified
	}

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
	rightWidth := uniseg.StringWidth(right)
	leftEnd := width
	if rightWidth+1 < width {
		leftEnd = width - rightWidth - 1
		drawText(screen, width-rightWidth, y, width, right, style)
	}
	drawText(screen, 0, y, leftEnd, left, style)
}

// drawText draws grapheme clusters from x until limit using their visual width.
func drawText(screen tcell.Screen, x, y, limit int, text string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusterWidth := gr.Width()
		if x+clusterWidth > limit {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(x, y, runes[0], runes[1:], style)
		}
		x += clusterWidth
	}
	return x
}
