// Package input translates tcell key events into editor actions.
package input

import (
	"github.com/bethropolis/seek/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Keymap maps special keys to actions.
type Keymap map[tcell.Key]Action

// InputProcessor translates tcell events into ActionEvents.
type InputProcessor struct {
	keymap  Keymap
	ctrlMap Keymap // keys that mean something else with Ctrl held, e.g. Home
}

// NewInputProcessor creates a processor with the default bindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:  make(Keymap),
		ctrlMap: make(Keymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	p.keymap[tcell.KeyUp] = ActionMoveUp
	p.keymap[tcell.KeyDown] = ActionMoveDown
	p.keymap[tcell.KeyLeft] = ActionMoveLeft
	p.keymap[tcell.KeyRight] = ActionMoveRight
	p.keymap[tcell.KeyPgUp] = ActionMovePageUp
	p.keymap[tcell.KeyPgDn] = ActionMovePageDown
	p.keymap[tcell.KeyHome] = ActionMoveHome
	p.keymap[tcell.KeyEnd] = ActionMoveEnd
	p.keymap[tcell.KeyEnter] = ActionInsertNewLine
	p.keymap[tcell.KeyBackspace] = ActionDeleteCharBackward
	p.keymap[tcell.KeyBackspace2] = ActionDeleteCharBackward
	p.keymap[tcell.KeyDelete] = ActionDeleteCharForward
	p.keymap[tcell.KeyEscape] = ActionCancel
	p.keymap[tcell.KeyF3] = ActionFindNext

	// Ctrl+letter arrives as its own key code.
	p.keymap[tcell.KeyCtrlO] = ActionOpen
	p.keymap[tcell.KeyCtrlS] = ActionSave
	p.keymap[tcell.KeyCtrlW] = ActionSaveAs
	p.keymap[tcell.KeyCtrlQ] = ActionQuit
	p.keymap[tcell.KeyCtrlF] = ActionFind
	p.keymap[tcell.KeyCtrlN] = ActionFindNext
	p.keymap[tcell.KeyCtrlP] = ActionFindPrev
	p.keymap[tcell.KeyCtrlR] = ActionToggleRegex
	p.keymap[tcell.KeyCtrlC] = ActionCopy
	p.keymap[tcell.KeyCtrlX] = ActionCut
	p.keymap[tcell.KeyCtrlV] = ActionPaste

	p.ctrlMap[tcell.KeyHome] = ActionMoveDocStart
	p.ctrlMap[tcell.KeyEnd] = ActionMoveDocEnd
}

// ProcessEvent returns the action for a key event. The App decides what an
// action means in the current mode (e.g. Enter in a prompt).
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()

	if mod&tcell.ModCtrl != 0 {
		if action, ok := p.ctrlMap[key]; ok {
			return ActionEvent{Action: action, Extend: mod&tcell.ModShift != 0}
		}
	}

	if key == tcell.KeyF3 && mod&tcell.ModShift != 0 {
		return ActionEvent{Action: ActionFindPrev}
	}

	if action, ok := p.keymap[key]; ok {
		return ActionEvent{Action: action, Extend: action.IsMovement() && mod&tcell.ModShift != 0}
	}

	switch key {
	case tcell.KeyRune:
		if mod&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			break
		}
		return ActionEvent{Action: ActionInsertRune, Rune: ev.Rune()}
	case tcell.KeyTab:
		return ActionEvent{Action: ActionInsertRune, Rune: '\t'}
	}

	logger.DebugTagf("input", "Unmapped key: %s", ev.Name())
	return ActionEvent{Action: ActionUnknown}
}
