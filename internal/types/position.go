// internal/types/position.go
package types

import "fmt"

// Position is a cursor or text position within a document.
// Line is the 0-based line index.
// Col is the 0-based rune index within the line.
type Position struct {
	Line int
	Col  int
}

// Before reports whether p sorts strictly before other.
func (p Position) Before(other Position) bool {
	return p.Line < other.Line || (p.Line == other.Line && p.Col < other.Col)
}

// String renders the position 1-indexed, the way it is shown to users.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Col+1)
}

// Range is a half-open span [Start, End) between two positions.
type Range struct {
	Start Position
	End   Position
}

// Normalized returns the range with Start <= End.
func (r Range) Normalized() Range {
	if r.End.Before(r.Start) {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

// Empty reports whether the range covers no text.
func (r Range) Empty() bool {
	return r.Start == r.End
}
