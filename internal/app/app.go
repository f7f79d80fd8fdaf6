// Package app runs the terminal front end: it owns the screen, routes keys
// to the editing session and redraws after every event.
package app

import (
	"fmt"

	"github.com/bethropolis/seek/internal/config"
	"github.com/bethropolis/seek/internal/core"
	"github.com/bethropolis/seek/internal/core/find"
	"github.com/bethropolis/seek/internal/event"
	"github.com/bethropolis/seek/internal/input"
	"github.com/bethropolis/seek/internal/logger"
	"github.com/bethropolis/seek/internal/statusbar"
	"github.com/bethropolis/seek/internal/theme"
	"github.com/bethropolis/seek/internal/tui"
	"github.com/bethropolis/seek/internal/utils"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/afero"
)

// Options configures NewApp.
type Options struct {
	Config *config.Config // nil uses the defaults
	Screen tcell.Screen   // nil opens the terminal
	Fs     afero.Fs       // nil uses the OS file system
}

// App encapsulates the components and main loop of the editor.
type App struct {
	cfg            *config.Config
	tuiManager     *tui.TUI
	session        *Session
	editor         *core.Editor
	clipboard      *core.Clipboard
	statusBar      *statusbar.StatusBar
	eventManager   *event.Manager
	inputProcessor *input.InputProcessor
	activeTheme    *theme.Theme

	prompt      prompt
	lastPattern string
	searchStale bool // the buffer changed since the last search
	quitting    bool

	messageExpiry utils.Debouncer
}

// NewApp creates the application and opens filePath if it is not empty.
// A file that fails to load is reported in the status bar, not returned.
func NewApp(filePath string, opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	fsys := opts.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	activeTheme, themeErr := theme.Load(fsys, cfg.Theme.File)
	if themeErr != nil {
		logger.Warnf("App: %v; using built-in theme", themeErr)
		activeTheme = theme.DevComfortDark
	}

	var (
		tuiManager *tui.TUI
		err        error
	)
	if opts.Screen != nil {
		tuiManager, err = tui.NewWithScreen(opts.Screen, activeTheme)
	} else {
		tuiManager, err = tui.New(activeTheme)
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	eventManager := event.NewManager()
	clip := core.NewClipboard(cfg.Editor.SystemClipboard)
	editor := core.NewEditor(eventManager, clip)
	editor.TabWidth = cfg.Editor.TabWidth
	editor.ScrollOff = cfg.Editor.ScrollOff

	session := NewSession(SessionConfig{
		Fs:     fsys,
		Events: eventManager,
		Editor: editor,
		Search: find.Options{
			Literal:    cfg.Editor.LiteralSearch,
			MaxMatches: cfg.Editor.MaxMatches,
		},
		Watch:       cfg.Editor.WatchFile,
		WatchSettle: config.WatchSettle,
	})

	a := &App{
		cfg:            cfg,
		tuiManager:     tuiManager,
		session:        session,
		editor:         editor,
		clipboard:      clip,
		statusBar:      statusbar.New(activeTheme, config.MessageTimeout),
		eventManager:   eventManager,
		inputProcessor: input.NewInputProcessor(),
		activeTheme:    activeTheme,
	}
	a.statusBar.SetLiteral(cfg.Editor.LiteralSearch)
	a.subscribe()

	switch {
	case filePath != "":
		a.open(filePath)
	case themeErr != nil:
		a.setError("Theme: %v", themeErr)
	default:
		a.setMessage("%s - Ctrl+O Open | Ctrl+S Save | Ctrl+F Find | Ctrl+Q Quit", config.AppName)
	}
	return a, nil
}

// Session returns the editing session.
func (a *App) Session() *Session {
	return a.session
}

// Run processes terminal events until the user quits.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.session.Close()
	defer a.messageExpiry.Stop()

	a.draw()
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return nil
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			a.tuiManager.Sync()
		case *tcell.EventKey:
			a.handleKey(ev)
		case *tcell.EventInterrupt:
			// posted by the watcher or a message timeout; redraw below
		}

		if a.quitting {
			a.eventManager.Dispatch(event.TypeAppQuit, nil)
			logger.Infof("App: exiting")
			return nil
		}
		a.draw()
	}
}

// wake makes PollEvent return so the screen is redrawn. Safe from any
// goroutine.
func (a *App) wake() {
	if err := a.tuiManager.PostEvent(tcell.NewEventInterrupt(nil)); err != nil {
		logger.DebugTagf("draw", "App: wake dropped: %v", err)
	}
}
