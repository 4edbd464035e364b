package highlight

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/bethropolis/quill/internal/highlight/lang"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/types"
	sitter "github.com/smacker/go-tree-sitter"
)

// Result maps line number -> styled ranges on that line.
type Result map[int][]types.StyledRange

// Highlighter computes styled ranges for a whole document.
// Each call reparses the full text.
type Highlighter struct {
	parser *sitter.Parser
}

// NewHighlighter creates a new highlighter instance.
func NewHighlighter() *Highlighter {
	RegisterLanguages()
	return &Highlighter{parser: sitter.NewParser()}
}

// Highlight returns the styled ranges for text. Languages in the tree-sitter
// registry are parsed with their grammar; everything else is tokenised by
// the chroma lexer chosen for cfg.
// A Highlighter is not safe for concurrent use.
func (h *Highlighter) Highlight(ctx context.Context, cfg Config, text string) (Result, error) {
	if l := lang.ForExtension(cfg.Extension); l != nil {
		result, err := h.highlightTree(ctx, l, text)
		if err == nil {
			return result, nil
		}
		if ctx.Err() != nil {
			return nil, err
		}
		logger.Warnf("Highlighter: tree-sitter failed for %s, using lexer: %v", l.Name, err)
	}
	return highlightTokens(cfg.Lexer(), text)
}

func (h *Highlighter) highlightTree(ctx context.Context, l *lang.Language, text string) (Result, error) {
	query, err := l.CompiledQuery()
	if err != nil {
		return nil, err
	}
	h.parser.SetLanguage(l.TreeSitterLang)

	source := []byte(text)
	tree, err := h.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing failed: %w", err)
	}
	defer tree.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(query, tree.RootNode())

	lines := strings.Split(text, "\n")
	highlights := make(Result)
	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, capture := range match.Captures {
			style := captureNameToStyleName(query.CaptureNameForId(capture.Index))
			start, end := capture.Node.StartPoint(), capture.Node.EndPoint()
			addSpan(highlights, lines, int(start.Row), int(start.Column), int(end.Row), int(end.Column), style)
		}
	}
	logger.DebugTagf("highlight", "Highlighter: %s produced highlights on %d lines", l.Name, len(highlights))
	return highlights, nil
}

// highlightTokens walks chroma tokens, tracking line and rune column.
func highlightTokens(lexer chroma.Lexer, text string) (Result, error) {
	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		return nil, fmt.Errorf("tokenise: %w", err)
	}
	highlights := make(Result)
	line, col := 0, 0
	for _, tok := range it.Tokens() {
		style := tokenStyleName(tok.Type)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				line++
				col = 0
			}
			n := utf8.RuneCountInString(part)
			if style != "" && n > 0 {
				highlights[line] = append(highlights[line], types.StyledRange{StartCol: col, EndCol: col + n, StyleName: style})
			}
			col += n
		}
	}
	return highlights, nil
}

// addSpan records a capture given as byte columns, splitting it over every
// line it covers.
func addSpan(h Result, lines []string, startRow, startByte, endRow, endByte int, style string) {
	for row := startRow; row <= endRow && row < len(lines); row++ {
		line := []byte(lines[row])
		from, to := 0, utf8.RuneCount(line)
		if row == startRow {
			from = byteOffsetToRuneIndex(line, startByte)
		}
		if row == endRow {
			to = byteOffsetToRuneIndex(line, endByte)
		}
		if to <= from {
			continue
		}
		h[row] = append(h[row], types.StyledRange{StartCol: from, EndCol: to, StyleName: style})
	}
}

// captureNameToStyleName maps "@keyword.control" to "keyword".
func captureNameToStyleName(captureName string) string {
	captureName = strings.TrimPrefix(captureName, "@")
	if dot := strings.Index(captureName, "."); dot != -1 {
		return captureName[:dot]
	}
	return captureName
}

// tokenStyleName maps a chroma token type to the same style names the
// tree-sitter queries use. Unstyled tokens return "".
func tokenStyleName(t chroma.TokenType) string {
	switch {
	case t.InCategory(chroma.Keyword):
		return "keyword"
	case t.InCategory(chroma.Comment):
		return "comment"
	case t.InSubCategory(chroma.LiteralString):
		return "string"
	case t.InSubCategory(chroma.LiteralNumber):
		return "number"
	case t == chroma.NameFunction:
		return "function"
	case t == chroma.NameClass || t == chroma.KeywordType:
		return "type"
	case t.InCategory(chroma.Operator):
		return "operator"
	}
	return ""
}

func byteOffsetToRuneIndex(line []byte, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(line) {
		byteOffset = len(line)
	}
	return utf8.RuneCount(line[:byteOffset])
}
