// Package core implements the text area the user edits: the rune buffer,
// the caret, the selection, the viewport and clipboard operations.
package core

import (
	"strings"

	"github.com/bethropolis/seek/internal/config"
	"github.com/bethropolis/seek/internal/core/find"
	"github.com/bethropolis/seek/internal/event"
	"github.com/bethropolis/seek/internal/logger"
	"github.com/bethropolis/seek/internal/types"
)

// Editor is the editable text area. Offsets are rune offsets, the same unit
// find.Span uses, so a match can be applied as a selection directly.
type Editor struct {
	text   []rune
	caret  int
	anchor int // selection anchor, -1 when nothing is selected

	ViewportY  int // first visible line
	ViewportX  int // first visible visual column
	viewWidth  int
	viewHeight int
	ScrollOff  int
	TabWidth   int

	eventManager *event.Manager
	clipboard    *Clipboard
}

// NewEditor creates an empty editor.
func NewEditor(events *event.Manager, clip *Clipboard) *Editor {
	if clip == nil {
		clip = NewClipboard(false)
	}
	return &Editor{
		anchor:       -1,
		ScrollOff:    config.DefaultScrollOff,
		TabWidth:     config.DefaultTabWidth,
		eventManager: events,
		clipboard:    clip,
	}
}

// SetText replaces the whole buffer, e.g. after loading a file. The caret
// moves to the start and no modification event is sent.
func (e *Editor) SetText(s string) {
	e.text = []rune(s)
	e.caret = 0
	e.anchor = -1
	e.ViewportY, e.ViewportX = 0, 0
}

// Text returns the buffer as a string.
func (e *Editor) Text() string {
	return string(e.text)
}

// Len returns the buffer length in runes.
func (e *Editor) Len() int {
	return len(e.text)
}

// Caret returns the caret rune offset.
func (e *Editor) Caret() int {
	return e.caret
}

// CaretPosition returns the caret as line and column.
func (e *Editor) CaretPosition() types.Position {
	return e.OffsetToPosition(e.caret)
}

// SetCaret moves the caret, clamped to the buffer, and clears the selection.
func (e *Editor) SetCaret(offset int) {
	e.caret = e.clamp(offset)
	e.anchor = -1
	e.ScrollToCaret()
}

// --- Selection ---

// Selection returns the selected range, normalized so Start <= End.
func (e *Editor) Selection() (find.Span, bool) {
	if e.anchor < 0 || e.anchor == e.caret {
		return find.Span{}, false
	}
	if e.anchor < e.caret {
		return find.Span{Start: e.anchor, End: e.caret}, true
	}
	return find.Span{Start: e.caret, End: e.anchor}, true
}

// HasSelection reports whether a non-empty range is selected.
func (e *Editor) HasSelection() bool {
	_, ok := e.Selection()
	return ok
}

// Select highlights span the way a search result is shown: the range
// [Start, End) is selected and the caret sits at End.
func (e *Editor) Select(span find.Span) {
	start, end := e.clamp(span.Start), e.clamp(span.End)
	if start > end {
		start, end = end, start
	}
	e.anchor = start
	e.caret = end
	e.ScrollToCaret()
	logger.Debugf("Editor: selected %v, caret %d", find.Span{Start: start, End: end}, end)
}

// ClearSelection drops the selection, keeping the caret.
func (e *Editor) ClearSelection() {
	e.anchor = -1
}

// SelectedText returns the selected text, or "".
func (e *Editor) SelectedText() string {
	span, ok := e.Selection()
	if !ok {
		return ""
	}
	return string(e.text[span.Start:span.End])
}

// --- Line geometry ---

// LineCount returns the number of lines; an empty buffer has one.
func (e *Editor) LineCount() int {
	n := 1
	for _, r := range e.text {
		if r == '\n' {
			n++
		}
	}
	return n
}

// lineBounds returns the rune range [start, end) of line, without its newline.
func (e *Editor) lineBounds(line int) (start, end int) {
	current := 0
	start = 0
	for i, r := range e.text {
		if r != '\n' {
			continue
		}
		if current == line {
			return start, i
		}
		current++
		start = i + 1
	}
	if current == line {
		return start, len(e.text)
	}
	return len(e.text), len(e.text)
}

// Line returns the runes of line without the trailing newline.
func (e *Editor) Line(line int) []rune {
	start, end := e.lineBounds(line)
	return e.text[start:end]
}

// LineStart returns the rune offset where line begins.
func (e *Editor) LineStart(line int) int {
	start, _ := e.lineBounds(line)
	return start
}

// OffsetToPosition converts a rune offset to line and column.
func (e *Editor) OffsetToPosition(offset int) types.Position {
	offset = e.clamp(offset)
	pos := types.Position{}
	for _, r := range e.text[:offset] {
		if r == '\n' {
			pos.Line++
			pos.Col = 0
		} else {
			pos.Col++
		}
	}
	return pos
}

// PositionToOffset converts line and column to a rune offset, clamping both.
func (e *Editor) PositionToOffset(pos types.Position) int {
	if pos.Line < 0 {
		return 0
	}
	if last := e.LineCount() - 1; pos.Line > last {
		pos.Line = last
		pos.Col = len(e.text)
	}
	start, end := e.lineBounds(pos.Line)
	col := pos.Col
	if col < 0 {
		col = 0
	}
	if start+col > end {
		return end
	}
	return start + col
}

func (e *Editor) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(e.text) {
		return len(e.text)
	}
	return offset
}

// --- Editing ---

// InsertText inserts s at the caret, replacing the selection if there is one.
func (e *Editor) InsertText(s string) {
	if s == "" && !e.HasSelection() {
		return
	}
	e.deleteSelection()
	ins := []rune(s)
	buf := make([]rune, 0, len(e.text)+len(ins))
	buf = append(buf, e.text[:e.caret]...)
	buf = append(buf, ins...)
	buf = append(buf, e.text[e.caret:]...)
	e.text = buf
	e.caret += len(ins)
	e.modified()
}

// InsertRune inserts a single rune at the caret.
func (e *Editor) InsertRune(r rune) {
	e.InsertText(string(r))
}

// InsertNewLine inserts a line break at the caret.
func (e *Editor) InsertNewLine() {
	e.InsertText("\n")
}

// DeleteBackward removes the selection, or the rune before the caret.
func (e *Editor) DeleteBackward() {
	if e.deleteSelection() {
		e.modified()
		return
	}
	if e.caret == 0 {
		return
	}
	e.text = append(e.text[:e.caret-1], e.text[e.caret:]...)
	e.caret--
	e.modified()
}

// DeleteForward removes the selection, or the rune under the caret.
func (e *Editor) DeleteForward() {
	if e.deleteSelection() {
		e.modified()
		return
	}
	if e.caret >= len(e.text) {
		return
	}
	e.text = append(e.text[:e.caret], e.text[e.caret+1:]...)
	e.modified()
}

// deleteSelection removes the selected runes without notifying.
func (e *Editor) deleteSelection() bool {
	span, ok := e.Selection()
	e.anchor = -1
	if !ok {
		return false
	}
	e.text = append(e.text[:span.Start], e.text[span.End:]...)
	e.caret = span.Start
	return true
}

func (e *Editor) modified() {
	e.anchor = -1
	e.ScrollToCaret()
	if e.eventManager != nil {
		e.eventManager.Dispatch(event.TypeDocumentModified, event.DocumentData{})
	}
}

// --- Clipboard ---

// Copy puts the selection on the clipboard. It reports whether anything
// was selected.
func (e *Editor) Copy() (bool, error) {
	text := e.SelectedText()
	if text == "" {
		return false, nil
	}
	return true, e.clipboard.Write(text)
}

// Cut copies the selection and removes it.
func (e *Editor) Cut() (bool, error) {
	ok, err := e.Copy()
	if !ok || err != nil {
		return ok, err
	}
	e.DeleteBackward()
	return true, nil
}

// Paste inserts the clipboard text at the caret.
func (e *Editor) Paste() (bool, error) {
	text, err := e.clipboard.Read()
	if err != nil {
		return false, err
	}
	if text == "" {
		return false, nil
	}
	e.InsertText(strings.ReplaceAll(text, "\r\n", "\n"))
	return true, nil
}
