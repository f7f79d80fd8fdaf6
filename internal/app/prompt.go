package app

import "github.com/bethropolis/seek/internal/input"

type promptKind int

const (
	promptNone promptKind = iota
	promptOpen
	promptSaveAs
	promptFind
)

var promptLabels = map[promptKind]string{
	promptOpen:   "Open: ",
	promptSaveAs: "Save as: ",
	promptFind:   "Find: ",
}

// prompt is the single-line input shown in the status bar in place of the
// open and save dialogs and the search field.
type prompt struct {
	kind  promptKind
	input []rune
}

func (p *prompt) active() bool {
	return p.kind != promptNone
}

func (p *prompt) open(kind promptKind, initial string) {
	p.kind = kind
	p.input = []rune(initial)
}

func (p *prompt) close() {
	p.kind = promptNone
	p.input = nil
}

// insertText appends s up to its first line break.
func (p *prompt) insertText(s string) {
	for _, r := range s {
		if r == '\n' || r == '\r' {
			return
		}
		p.input = append(p.input, r)
	}
}

func (p *prompt) label() string {
	return promptLabels[p.kind]
}

func (p *prompt) text() string {
	return string(p.input)
}

// promptResult tells the caller what a key did to the prompt.
type promptResult int

const (
	promptEditing promptResult = iota
	promptAccepted
	promptCancelled
	promptIgnored
)

// handle applies an action to the prompt line.
func (p *prompt) handle(ev input.ActionEvent) promptResult {
	switch ev.Action {
	case input.ActionInsertRune:
		p.input = append(p.input, ev.Rune)
	case input.ActionDeleteCharBackward:
		if len(p.input) > 0 {
			p.input = p.input[:len(p.input)-1]
		}
	case input.ActionInsertNewLine:
		return promptAccepted
	case input.ActionCancel, input.ActionQuit:
		return promptCancelled
	default:
		return promptIgnored
	}
	return promptEditing
}
