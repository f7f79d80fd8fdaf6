package core

import (
	"github.com/bethropolis/seek/internal/config"
	"github.com/bethropolis/seek/internal/types"
	"github.com/rivo/uniseg"
)

// Direction names a caret movement.
type Direction int

const (
	MoveLeft Direction = iota
	MoveRight
	MoveUp
	MoveDown
	MoveHome
	MoveEnd
	MovePageUp
	MovePageDown
	MoveDocStart
	MoveDocEnd
)

// Move moves the caret. With extend set the selection grows from the
// current anchor (or from the caret if nothing is selected); otherwise the
// selection is dropped.
func (e *Editor) Move(dir Direction, extend bool) {
	if extend {
		if e.anchor < 0 {
			e.anchor = e.caret
		}
	} else {
		e.anchor = -1
	}

	pos := e.CaretPosition()
	switch dir {
	case MoveLeft:
		e.caret = e.clamp(e.caret - 1)
	case MoveRight:
		e.caret = e.clamp(e.caret + 1)
	case MoveUp:
		pos.Line--
		e.caret = e.verticalTarget(pos)
	case MoveDown:
		pos.Line++
		e.caret = e.verticalTarget(pos)
	case MovePageUp:
		pos.Line -= e.pageSize()
		e.caret = e.verticalTarget(pos)
	case MovePageDown:
		pos.Line += e.pageSize()
		e.caret = e.verticalTarget(pos)
	case MoveHome:
		e.caret = e.LineStart(pos.Line)
	case MoveEnd:
		_, end := e.lineBounds(pos.Line)
		e.caret = end
	case MoveDocStart:
		e.caret = 0
	case MoveDocEnd:
		e.caret = len(e.text)
	}
	e.ScrollToCaret()
}

// verticalTarget keeps the column when possible and clamps the line; moving
// above the first line lands at the start, below the last at the end.
func (e *Editor) verticalTarget(pos types.Position) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= e.LineCount() {
		return len(e.text)
	}
	return e.PositionToOffset(pos)
}

func (e *Editor) pageSize() int {
	if e.viewHeight > 1 {
		return e.viewHeight - 1
	}
	return 1
}

// SetViewSize records the terminal size. The last StatusBarHeight rows are
// reserved for the status bar.
func (e *Editor) SetViewSize(width, height int) {
	e.viewWidth = width
	e.viewHeight = height - config.StatusBarHeight
	if e.viewHeight < 0 {
		e.viewHeight = 0
	}
	if e.ScrollOff*2 >= e.viewHeight && e.viewHeight > 0 {
		e.ScrollOff = (e.viewHeight - 1) / 2
	}
	e.ScrollToCaret()
}

// ViewSize returns the text area size in cells.
func (e *Editor) ViewSize() (width, height int) {
	return e.viewWidth, e.viewHeight
}

// ScrollToCaret adjusts the viewport so the caret stays visible with
// ScrollOff lines of context.
func (e *Editor) ScrollToCaret() {
	if e.viewHeight <= 0 || e.viewWidth <= 0 {
		return
	}
	pos := e.CaretPosition()

	if pos.Line < e.ViewportY+e.ScrollOff {
		e.ViewportY = pos.Line - e.ScrollOff
	}
	if pos.Line >= e.ViewportY+e.viewHeight-e.ScrollOff {
		e.ViewportY = pos.Line - e.viewHeight + e.ScrollOff + 1
	}
	if maxY := e.LineCount() - 1; e.ViewportY > maxY {
		e.ViewportY = maxY
	}
	if e.ViewportY < 0 {
		e.ViewportY = 0
	}

	col := VisualColumn(e.Line(pos.Line), pos.Col, e.TabWidth)
	if col < e.ViewportX {
		e.ViewportX = col
	}
	if col >= e.ViewportX+e.viewWidth {
		e.ViewportX = col - e.viewWidth + 1
	}
}

// VisualColumn returns the screen column of rune index col in line, counting
// wide graphemes as two cells and tabs as tabWidth cells.
func VisualColumn(line []rune, col, tabWidth int) int {
	if col <= 0 {
		return 0
	}
	if col > len(line) {
		col = len(line)
	}
	visual := 0
	runeIndex := 0
	state := -1
	rest := string(line)
	for len(rest) > 0 && runeIndex < col {
		var cluster string
		var width int
		cluster, rest, width, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if cluster == "\t" {
			width = tabWidth
		}
		visual += width
		runeIndex += len([]rune(cluster))
	}
	return visual
}
