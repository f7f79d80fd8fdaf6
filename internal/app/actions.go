package app

import (
	"errors"

	"github.com/bethropolis/seek/internal/core"
	"github.com/bethropolis/seek/internal/core/find"
	"github.com/bethropolis/seek/internal/document"
	"github.com/bethropolis/seek/internal/input"
	"github.com/bethropolis/seek/internal/logger"
	"github.com/gdamore/tcell/v2"
)

var moveDirections = map[input.Action]core.Direction{
	input.ActionMoveUp:       core.MoveUp,
	input.ActionMoveDown:     core.MoveDown,
	input.ActionMoveLeft:     core.MoveLeft,
	input.ActionMoveRight:    core.MoveRight,
	input.ActionMovePageUp:   core.MovePageUp,
	input.ActionMovePageDown: core.MovePageDown,
	input.ActionMoveHome:     core.MoveHome,
	input.ActionMoveEnd:      core.MoveEnd,
	input.ActionMoveDocStart: core.MoveDocStart,
	input.ActionMoveDocEnd:   core.MoveDocEnd,
}

// handleKey routes a key to the prompt when one is open, else to the editor.
func (a *App) handleKey(ev *tcell.EventKey) {
	actionEvent := a.inputProcessor.ProcessEvent(ev)
	logger.DebugTagf("input", "App: key %s -> %s", ev.Name(), actionEvent.Action)
	if a.prompt.active() {
		a.handlePromptAction(actionEvent)
		return
	}
	a.handleAction(actionEvent)
}

func (a *App) handleAction(ev input.ActionEvent) {
	if ev.Action != input.ActionQuit {
		a.session.DisarmQuit()
	}

	if dir, ok := moveDirections[ev.Action]; ok {
		a.editor.Move(dir, ev.Extend)
		return
	}

	switch ev.Action {
	case input.ActionOpen:
		a.openPrompt(promptOpen, a.session.Path())
	case input.ActionSave:
		if a.session.Path() == "" {
			a.openPrompt(promptSaveAs, "")
			return
		}
		a.save("")
	case input.ActionSaveAs:
		a.openPrompt(promptSaveAs, a.session.Path())
	case input.ActionQuit:
		if a.session.RequestQuit() {
			a.quitting = true
			return
		}
		a.setError("Unsaved changes! Press Ctrl+Q again to quit without saving")
	case input.ActionFind:
		a.openPrompt(promptFind, a.lastPattern)
	case input.ActionFindNext:
		a.step(a.session.Next)
	case input.ActionFindPrev:
		a.step(a.session.Prev)
	case input.ActionToggleRegex:
		literal := a.session.ToggleLiteral()
		a.statusBar.SetLiteral(literal)
		if literal {
			a.setMessage("Search: literal text")
		} else {
			a.setMessage("Search: regular expression")
		}
	case input.ActionInsertRune:
		a.editor.InsertRune(ev.Rune)
	case input.ActionInsertNewLine:
		a.editor.InsertNewLine()
	case input.ActionDeleteCharBackward:
		a.editor.DeleteBackward()
	case input.ActionDeleteCharForward:
		a.editor.DeleteForward()
	case input.ActionCopy:
		a.clipboardResult("Copied", a.editor.Copy)
	case input.ActionCut:
		a.clipboardResult("Cut", a.editor.Cut)
	case input.ActionPaste:
		a.clipboardResult("", a.editor.Paste)
	case input.ActionCancel:
		a.editor.ClearSelection()
	}
}

func (a *App) clipboardResult(done string, op func() (bool, error)) {
	ok, err := op()
	if err != nil {
		a.setError("Clipboard: %v", err)
		return
	}
	if ok && done != "" {
		a.setMessage("%s selection", done)
	}
}

// step moves through the matches. When the matches were discarded by an
// edit, the last pattern is searched again first.
func (a *App) step(move func() (find.Span, bool)) {
	if _, ok := move(); ok {
		return
	}
	if a.lastPattern == "" {
		a.setMessage("No search. Press Ctrl+F to find")
		return
	}
	a.search(a.lastPattern)
}

func (a *App) openPrompt(kind promptKind, initial string) {
	a.prompt.open(kind, initial)
}

func (a *App) handlePromptAction(ev input.ActionEvent) {
	if ev.Action == input.ActionPaste {
		text, err := a.clipboard.Read()
		if err != nil {
			a.setError("Clipboard: %v", err)
			return
		}
		a.prompt.insertText(text)
		return
	}

	switch a.prompt.handle(ev) {
	case promptAccepted:
		kind, text := a.prompt.kind, a.prompt.text()
		a.prompt.close()
		a.acceptPrompt(kind, text)
	case promptCancelled:
		a.prompt.close()
	}
}

func (a *App) acceptPrompt(kind promptKind, text string) {
	switch kind {
	case promptOpen:
		if text == "" {
			return
		}
		a.open(text)
	case promptSaveAs:
		if text == "" {
			a.setError("Save cancelled: no file name")
			return
		}
		a.save(text)
	case promptFind:
		a.search(text)
	}
}

func (a *App) open(path string) {
	if err := a.session.Open(path); err != nil {
		a.setError("Open failed: %v", err)
		return
	}
	a.lastPattern = ""
	a.searchStale = true
	a.setMessage("Opened %s", path)
}

func (a *App) save(path string) {
	err := a.session.Save(path)
	switch {
	case errors.Is(err, document.ErrNoPath):
		a.openPrompt(promptSaveAs, "")
	case err != nil:
		a.setError("Save failed: %v", err)
	default:
		a.setMessage("Saved %s", a.session.Path())
	}
}

func (a *App) search(pattern string) {
	a.lastPattern = pattern
	n, err := a.session.Search(pattern)
	if err != nil {
		var perr *find.PatternError
		if errors.As(err, &perr) {
			a.setError("Invalid pattern: %v", perr.Err)
			return
		}
		a.setError("Search failed: %v", err)
		return
	}
	if n == 0 {
		a.setMessage("No matches for '%s'", pattern)
		return
	}
	a.setMessage("%d match(es) for '%s'", n, pattern)
}
