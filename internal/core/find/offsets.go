package find

import "unicode/utf8"

// offsetConverter maps byte offsets to rune offsets for one text. Queries
// are expected in non-decreasing order, which match locations are, so the
// whole conversion is a single pass over the text.
type offsetConverter struct {
	text     string
	lastByte int
	lastRune int
}

func newOffsetConverter(text string) *offsetConverter {
	return &offsetConverter{text: text}
}

func (c *offsetConverter) runeOffset(byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(c.text) {
		byteOffset = len(c.text)
	}
	if byteOffset < c.lastByte {
		c.lastByte, c.lastRune = 0, 0
	}
	c.lastRune += utf8.RuneCountInString(c.text[c.lastByte:byteOffset])
	c.lastByte = byteOffset
	return c.lastRune
}

// ByteOffset returns the byte offset of the rune at runeOffset in text,
// clamped to len(text).
func ByteOffset(text string, runeOffset int) int {
	if runeOffset <= 0 {
		return 0
	}
	n := 0
	for i := range text {
		if n == runeOffset {
			return i
		}
		n++
	}
	return len(text)
}
