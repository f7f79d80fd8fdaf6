package tui

import (
	"fmt"
	"strconv"

	"github.com/bethropolis/seek/internal/config"
	"github.com/bethropolis/seek/internal/core"
	"github.com/bethropolis/seek/internal/core/find"
	"github.com/bethropolis/seek/internal/theme"
	"github.com/rivo/uniseg"
)

const gutterPadding = 1

// Highlights are the search matches to paint. Matches must be ordered and
// disjoint; Current indexes the active one or is -1.
type Highlights struct {
	Matches []find.Span
	Current int
}

// GutterWidth returns the width of the line number column for lineCount
// lines, or 0 when the screen is too narrow for it.
func GutterWidth(lineCount, width int) int {
	if lineCount < 1 {
		lineCount = 1
	}
	w := len(strconv.Itoa(lineCount)) + gutterPadding
	if w >= width {
		return 0
	}
	return w
}

// firstMatchEndingAfter returns the index of the first match that ends
// after offset.
func firstMatchEndingAfter(matches []find.Span, offset int) int {
	for i, m := range matches {
		if m.End > offset {
			return i
		}
	}
	return len(matches)
}

// DrawBuffer draws the visible lines of editor with line numbers, match
// highlights and the selection.
func DrawBuffer(t *TUI, editor *core.Editor, th *theme.Theme, hl Highlights) {
	if th == nil {
		th = theme.DevComfortDark
	}
	defaultStyle := th.GetStyle(theme.Default)
	lineNumberStyle := th.GetStyle(theme.LineNumber)
	selectionStyle := th.GetStyle(theme.Selection)
	matchStyle := th.GetStyle(theme.MatchHighlight)
	currentStyle := th.GetStyle(theme.CurrentMatch)

	width, height := t.Size()
	viewHeight := height - config.StatusBarHeight
	if viewHeight <= 0 || width <= 0 {
		return
	}

	lineCount := editor.LineCount()
	gutter := GutterWidth(lineCount, width)
	textWidth := width - gutter
	viewX := editor.ViewportX
	sel, hasSel := editor.Selection()
	caretLine := editor.CaretPosition().Line

	lineStart := editor.LineStart(editor.ViewportY)
	m := firstMatchEndingAfter(hl.Matches, lineStart)

	for screenY := 0; screenY < viewHeight; screenY++ {
		lineIdx := editor.ViewportY + screenY
		for x := 0; x < width; x++ {
			t.screen.SetContent(x, screenY, ' ', nil, defaultStyle)
		}
		if lineIdx >= lineCount {
			continue
		}

		if gutter > 0 {
			numStyle := lineNumberStyle
			if lineIdx == caretLine {
				numStyle = numStyle.Bold(true)
			}
			num := fmt.Sprintf("%*d", gutter-gutterPadding, lineIdx+1)
			for i, r := range num {
				t.screen.SetContent(i, screenY, r, nil, numStyle)
			}
		}

		line := editor.Line(lineIdx)
		offset := lineStart
		visualX := 0
		state := -1
		rest := string(line)
		for len(rest) > 0 && visualX < viewX+textWidth {
			var cluster string
			var w int
			cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
			runes := []rune(cluster)
			isTab := cluster == "\t"
			if isTab {
				w = editor.TabWidth
			}

			for m < len(hl.Matches) && hl.Matches[m].End <= offset {
				m++
			}
			inMatch := m < len(hl.Matches) && hl.Matches[m].Start <= offset
			style := defaultStyle
			if inMatch {
				style = matchStyle
			}
			if hasSel && sel.Start <= offset && offset < sel.End {
				style = selectionStyle
			}
			if inMatch && m == hl.Current {
				style = currentStyle
			}

			screenX := visualX - viewX + gutter
			for i := 0; i < w; i++ {
				x := screenX + i
				if x < gutter || x >= width {
					continue
				}
				if i == 0 && !isTab {
					t.screen.SetContent(x, screenY, runes[0], runes[1:], style)
				} else if isTab || screenX < gutter {
					t.screen.SetContent(x, screenY, ' ', nil, style)
				}
			}

			visualX += w
			offset += len(runes)
		}
		lineStart += len(line) + 1
	}
}

// DrawCursor places the terminal cursor at the caret, or hides it when the
// caret is scrolled out of view.
func DrawCursor(t *TUI, editor *core.Editor) {
	width, height := t.Size()
	viewHeight := height - config.StatusBarHeight
	gutter := GutterWidth(editor.LineCount(), width)

	pos := editor.CaretPosition()
	col := core.VisualColumn(editor.Line(pos.Line), pos.Col, editor.TabWidth)
	screenX := col - editor.ViewportX + gutter
	screenY := pos.Line - editor.ViewportY

	if screenX < gutter || screenX >= width || screenY < 0 || screenY >= viewHeight {
		t.screen.HideCursor()
		return
	}
	t.screen.ShowCursor(screenX, screenY)
}
