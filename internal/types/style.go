package types

// StyledRange is a styled span on a single line, in rune columns [StartCol, EndCol).
type StyledRange struct {
	StartCol  int
	EndCol    int
	StyleName string
}
