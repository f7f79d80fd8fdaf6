package input

// Action is an operation requested from the keyboard.
type Action int

const (
	ActionUnknown Action = iota

	// --- Document ---
	ActionOpen
	ActionSave
	ActionSaveAs
	ActionQuit

	// --- Search ---
	ActionFind
	ActionFindNext
	ActionFindPrev
	ActionToggleRegex

	// --- Cursor Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome
	ActionMoveEnd
	ActionMoveDocStart
	ActionMoveDocEnd

	// --- Text Manipulation ---
	ActionInsertRune
	ActionInsertNewLine
	ActionDeleteCharForward
	ActionDeleteCharBackward
	ActionCopy
	ActionCut
	ActionPaste

	// Esc: leaves a prompt or clears the selection.
	ActionCancel
)

var actionNames = map[Action]string{
	ActionUnknown:            "Unknown",
	ActionOpen:               "Open",
	ActionSave:               "Save",
	ActionSaveAs:             "SaveAs",
	ActionQuit:               "Quit",
	ActionFind:               "Find",
	ActionFindNext:           "FindNext",
	ActionFindPrev:           "FindPrev",
	ActionToggleRegex:        "ToggleRegex",
	ActionMoveUp:             "MoveUp",
	ActionMoveDown:           "MoveDown",
	ActionMoveLeft:           "MoveLeft",
	ActionMoveRight:          "MoveRight",
	ActionMovePageUp:         "MovePageUp",
	ActionMovePageDown:       "MovePageDown",
	ActionMoveHome:           "MoveHome",
	ActionMoveEnd:            "MoveEnd",
	ActionMoveDocStart:       "MoveDocStart",
	ActionMoveDocEnd:         "MoveDocEnd",
	ActionInsertRune:         "InsertRune",
	ActionInsertNewLine:      "InsertNewLine",
	ActionDeleteCharForward:  "DeleteCharForward",
	ActionDeleteCharBackward: "DeleteCharBackward",
	ActionCopy:               "Copy",
	ActionCut:                "Cut",
	ActionPaste:              "Paste",
	ActionCancel:             "Cancel",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// IsMovement reports whether a moves the caret.
func (a Action) IsMovement() bool {
	return a >= ActionMoveUp && a <= ActionMoveDocEnd
}

// ActionEvent is a decoded key press.
type ActionEvent struct {
	Action Action
	Rune   rune // for ActionInsertRune
	Extend bool // Shift held on a movement: grow the selection
}
