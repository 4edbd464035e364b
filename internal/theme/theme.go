// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Theme maps style names to terminal styles. UI elements use capitalised
// names ("Default", "StatusBar"); syntax styles use highlight capture names.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle resolves name, falling back to its base name (before the first
// dot) and then to "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}
	if dot := strings.Index(name, "."); dot != -1 {
		if style, ok := t.Styles[name[:dot]]; ok {
			return style
		}
	}
	if style, ok := t.Styles["Default"]; ok {
		return style
	}
	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// WithSyntax returns a copy of t whose syntax styles come from a chroma
// style. UI styles from t are kept.
func (t *Theme) WithSyntax(style *chroma.Style) *Theme {
	out := &Theme{Name: t.Name, IsDark: t.IsDark, Styles: make(map[string]tcell.Style, len(t.Styles)+len(syntaxTokens))}
	for name, s := range t.Styles {
		out.Styles[name] = s
	}
	if style == nil {
		return out
	}
	base := t.GetStyle("Default")
	for name, tok := range syntaxTokens {
		out.Styles[name] = convertEntry(style.Get(tok), base)
	}
	return out
}

// syntaxTokens maps highlight style names to chroma token types.
var syntaxTokens = map[string]chroma.TokenType{
	"keyword":  chroma.Keyword,
	"string":   chroma.LiteralString,
	"comment":  chroma.Comment,
	"number":   chroma.LiteralNumber,
	"function": chroma.NameFunction,
	"type":     chroma.NameClass,
	"operator": chroma.Operator,
	"constant": chroma.NameConstant,
}

func convertEntry(e chroma.StyleEntry, base tcell.Style) tcell.Style {
	s := base
	if e.Colour.IsSet() {
		s = s.Foreground(chromaColor(e.Colour))
	}
	if e.Bold == chroma.Yes {
		s = s.Bold(true)
	}
	if e.Italic == chroma.Yes {
		s = s.Italic(true)
	}
	if e.Underline == chroma.Yes {
		s = s.Underline(true)
	}
	return s
}

func chromaColor(c chroma.Colour) tcell.Color {
	return tcell.NewRGBColor(int32(c.Red()), int32(c.Green()), int32(c.Blue()))
}

// QuillDark is the built-in UI theme.
var QuillDark = newQuillDark()

func newQuillDark() Theme {
	bar := tcell.NewHexColor(0x2a2f38)
	fg := tcell.NewHexColor(0xc5cdd9)
	muted := tcell.NewHexColor(0x5c6370)
	yellow := tcell.NewHexColor(0xe5c07b)
	red := tcell.NewHexColor(0xe06c75)
	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(fg)

	return Theme{
		Name:   "Quill Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			"Default":           base,
			"Selection":         base.Reverse(true),
			"LineNumber":        base.Foreground(muted),
			"StatusBar":         tcell.StyleDefault.Background(bar).Foreground(fg),
			"StatusBarModified": tcell.StyleDefault.Background(bar).Foreground(yellow).Bold(true),
			"StatusBarMessage":  tcell.StyleDefault.Background(bar).Foreground(fg).Bold(true),
			"StatusBarError":    tcell.StyleDefault.Background(red).Foreground(tcell.ColorBlack).Bold(true),
		},
	}
}
