package types

import "fmt"

// Position is a caret location: 0-based line and 0-based rune column.
type Position struct {
	Line int
	Col  int
}

// Before reports whether p comes before other in document order.
func (p Position) Before(other Position) bool {
	return p.Line < other.Line || (p.Line == other.Line && p.Col < other.Col)
}

// String renders the position 1-based, the way the status bar shows it.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Col+1)
}
