// Package statusbar draws the bottom line: file info, caret position, the
// active search and temporary messages or an input prompt.
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/seek/internal/theme"
	"github.com/bethropolis/seek/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// SearchInfo describes the active search.
type SearchInfo struct {
	Pattern string
	Literal bool
	Index   int // zero-based index of the current match, -1 if none
	Count   int
}

// StatusBar is the UI component for the status line.
type StatusBar struct {
	theme   *theme.Theme
	timeout time.Duration
	now     func() time.Time

	mu         sync.Mutex
	filePath   string
	isModified bool
	cursorPos  types.Position
	search     SearchInfo
	literal    bool

	tempMessage     string
	tempIsError     bool
	tempMessageTime time.Time

	promptLabel string
	promptInput string
	prompting   bool
}

// New creates a StatusBar drawing with th. Temporary messages disappear
// after timeout.
func New(th *theme.Theme, timeout time.Duration) *StatusBar {
	if th == nil {
		th = theme.DevComfortDark
	}
	return &StatusBar{
		theme:   th,
		timeout: timeout,
		now:     time.Now,
		search:  SearchInfo{Index: -1},
	}
}

// SetTheme switches the styles used for drawing.
func (sb *StatusBar) SetTheme(th *theme.Theme) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if th != nil {
		sb.theme = th
	}
}

// SetFileInfo updates the file path and modified flag.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
}

// SetCursorInfo updates the caret position shown.
func (sb *StatusBar) SetCursorInfo(pos types.Position) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorPos = pos
}

// SetSearchInfo updates the search indicator.
func (sb *StatusBar) SetSearchInfo(info SearchInfo) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.search = info
}

// SetLiteral updates the search mode indicator shown when no search is active.
func (sb *StatusBar) SetLiteral(literal bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.literal = literal
}

// SetTemporaryMessage displays a message until the timeout passes.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...any) {
	sb.setMessage(false, format, args...)
}

// SetError displays an error message until the timeout passes.
func (sb *StatusBar) SetError(format string, args ...any) {
	sb.setMessage(true, format, args...)
}

func (sb *StatusBar) setMessage(isError bool, format string, args ...any) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempIsError = isError
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// SetPrompt shows label and the text typed so far instead of the status line.
func (sb *StatusBar) SetPrompt(label, input string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.promptLabel = label
	sb.promptInput = input
	sb.prompting = true
}

// ClearPrompt returns to the normal status line.
func (sb *StatusBar) ClearPrompt() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.prompting = false
	sb.promptLabel, sb.promptInput = "", ""
}

// PromptCursor returns the visual column where the prompt caret belongs.
func (sb *StatusBar) PromptCursor() (int, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if !sb.prompting {
		return 0, false
	}
	return uniseg.StringWidth(sb.promptLabel + sb.promptInput), true
}

func (sb *StatusBar) searchIndicator() string {
	mode := "regex"
	if sb.search.Pattern != "" {
		if sb.search.Literal {
			mode = "literal"
		}
		if sb.search.Count == 0 {
			return fmt.Sprintf("[%s] no matches", mode)
		}
		if sb.search.Index < 0 {
			return fmt.Sprintf("[%s] -/%d", mode, sb.search.Count)
		}
		return fmt.Sprintf("[%s] %d/%d", mode, sb.search.Index+1, sb.search.Count)
	}
	if sb.literal {
		mode = "literal"
	}
	return "[" + mode + "]"
}

// Content returns the left text, the right text and the style name the bar
// would be drawn with now. Expired messages are cleared.
func (sb *StatusBar) Content() (left, right, styleName string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.prompting {
		return sb.promptLabel + sb.promptInput, "", theme.Prompt
	}

	if !sb.tempMessageTime.IsZero() {
		if sb.now().Sub(sb.tempMessageTime) <= sb.timeout {
			if sb.tempIsError {
				return sb.tempMessage, "", theme.StatusError
			}
			return sb.tempMessage, "", theme.StatusMessage
		}
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}

	path := sb.filePath
	if path == "" {
		path = "[No Name]"
	}
	styleName = theme.StatusBar
	if sb.isModified {
		path += " [Modified]"
		styleName = theme.StatusModified
	}
	right = fmt.Sprintf("%s  Ln %d, Col %d", sb.searchIndicator(), sb.cursorPos.Line+1, sb.cursorPos.Col+1)
	return path, right, styleName
}

// Draw renders the status bar on the last screen row.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	left, right, styleName := sb.Content()
	sb.mu.Lock()
	th := sb.theme
	sb.mu.Unlock()
	style := th.GetStyle(styleName)
	barStyle := th.GetStyle(theme.StatusBar)

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	end := drawString(screen, 0, y, width, left, style)
	if right == "" {
		return
	}
	rightWidth := uniseg.StringWidth(right)
	start := width - rightWidth
	if start <= end {
		return
	}
	drawString(screen, start, y, width, right, barStyle)
}

// drawString draws s from column x, stopping before limit. It returns the
// column after the last cluster drawn.
func drawString(screen tcell.Screen, x, y, limit int, s string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		w := gr.Width()
		if x+w > limit {
			break
		}
		runes := gr.Runes()
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
	return x
}
