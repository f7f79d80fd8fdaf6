package find

import "fmt"

// Span is a half-open [Start, End) interval of rune offsets into the text
// a search ran against.
type Span struct {
	Start int
	End   int
}

// Len returns the number of runes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Empty reports whether the span is a zero-width match.
func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) String() string {
	return fmt.Sprintf("{%d,%d}", s.Start, s.End)
}
