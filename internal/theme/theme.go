// Package theme maps UI element names to tcell styles.
package theme

import (
	"github.com/bethropolis/seek/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Style names used by the UI.
const (
	Default        = "Default"
	Selection      = "Selection"
	LineNumber     = "LineNumber"
	MatchHighlight = "MatchHighlight" // every match of the active search
	CurrentMatch   = "CurrentMatch"   // the match the cursor sits on
	StatusBar      = "StatusBar"
	StatusModified = "StatusBarModified"
	StatusMessage  = "StatusBarMessage"
	StatusError    = "StatusBarError"
	StatusSearch   = "StatusBarSearch"
	Prompt         = "Prompt"
)

// Theme is a named set of styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the named style, falling back to Default.
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}
	if def, ok := t.Styles[Default]; ok {
		if name != Default {
			logger.Debugf("Theme '%s': style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return def
	}
	logger.Warnf("Theme '%s': style '%s' and 'Default' not found, using tcell default", t.Name, name)
	return tcell.StyleDefault
}

// DevComfortDark is the built-in theme.
var DevComfortDark = newDevComfortDark()

func newDevComfortDark() *Theme {
	background := tcell.NewHexColor(0x2a2f38)
	foreground := tcell.NewHexColor(0xc5cdd9)
	yellow := tcell.NewHexColor(0xe5c07b)
	green := tcell.NewHexColor(0x98c379)
	red := tcell.NewHexColor(0xe06c75)
	blue := tcell.NewHexColor(0x61afef)

	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(foreground)
	bar := tcell.StyleDefault.Background(background).Foreground(foreground)

	return &Theme{
		Name:   "DevComfort Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			Default:        base,
			Selection:      base.Reverse(true),
			LineNumber:     base.Foreground(tcell.NewHexColor(0x5c6370)),
			MatchHighlight: tcell.StyleDefault.Background(tcell.NewHexColor(0x3e4452)).Foreground(yellow),
			CurrentMatch:   tcell.StyleDefault.Background(tcell.ColorOrange).Foreground(tcell.ColorBlack),
			StatusBar:      bar,
			StatusModified: bar.Foreground(yellow),
			StatusMessage:  bar.Bold(true),
			StatusError:    bar.Foreground(red).Bold(true),
			StatusSearch:   bar.Foreground(green).Bold(true),
			Prompt:         bar.Foreground(blue).Bold(true),
		},
	}
}
