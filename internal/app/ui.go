package app

import (
	"time"

	"github.com/bethropolis/seek/internal/config"
	"github.com/bethropolis/seek/internal/statusbar"
	"github.com/bethropolis/seek/internal/tui"
)

// messageSlack delays the expiry redraw past the message timeout.
const messageSlack = 50 * time.Millisecond

// draw redraws the text area, the status bar and the cursor.
func (a *App) draw() {
	width, height := a.tuiManager.Size()
	gutter := tui.GutterWidth(a.editor.LineCount(), width)
	a.editor.SetViewSize(width-gutter, height)
	a.updateStatusBarContent()

	nav := a.session.Navigator()
	current := -1
	if index, _, ok := nav.Position(); ok {
		current = index
	}

	a.tuiManager.Clear()
	tui.DrawBuffer(a.tuiManager, a.editor, a.activeTheme, tui.Highlights{
		Matches: nav.Matches(),
		Current: current,
	})
	a.statusBar.Draw(a.tuiManager.GetScreen(), width, height)
	if col, ok := a.statusBar.PromptCursor(); ok {
		a.tuiManager.GetScreen().ShowCursor(col, height-1)
	} else {
		tui.DrawCursor(a.tuiManager, a.editor)
	}
	a.tuiManager.Show()
}

// updateStatusBarContent pushes the current state to the status bar.
func (a *App) updateStatusBarContent() {
	a.statusBar.SetFileInfo(a.session.Path(), a.session.Modified())
	a.statusBar.SetCursorInfo(a.editor.CaretPosition())

	if a.prompt.active() {
		a.statusBar.SetPrompt(a.prompt.label(), a.prompt.text())
	} else {
		a.statusBar.ClearPrompt()
	}

	info := statusbar.SearchInfo{Index: -1}
	nav := a.session.Navigator()
	if !a.searchStale && nav.Pattern() != "" {
		index, count, ok := nav.Position()
		info.Pattern = nav.Pattern()
		info.Literal = nav.Literal()
		info.Count = count
		if ok {
			info.Index = index
		}
	}
	a.statusBar.SetSearchInfo(info)
}

// setMessage shows a temporary message and schedules the redraw that
// clears it.
func (a *App) setMessage(format string, args ...any) {
	a.statusBar.SetTemporaryMessage(format, args...)
	a.messageExpiry.Debounce(config.MessageTimeout+messageSlack, a.wake)
}

func (a *App) setError(format string, args ...any) {
	a.statusBar.SetError(format, args...)
	a.messageExpiry.Debounce(config.MessageTimeout+messageSlack, a.wake)
}
