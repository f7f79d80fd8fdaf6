package app

import (
	"sync"
	"time"

	"github.com/bethropolis/seek/internal/core"
	"github.com/bethropolis/seek/internal/core/find"
	"github.com/bethropolis/seek/internal/document"
	"github.com/bethropolis/seek/internal/event"
	"github.com/bethropolis/seek/internal/logger"
	"github.com/spf13/afero"
)

// SessionConfig wires a Session.
type SessionConfig struct {
	Fs     afero.Fs       // nil uses the OS file system
	Events *event.Manager // nil creates one
	Editor *core.Editor   // nil creates one with an internal clipboard
	Search find.Options

	// Watch reports external changes to the open file. It needs the OS
	// file system.
	Watch       bool
	WatchSettle time.Duration
}

// Session ties the document store and the match navigator to the editor.
// The front end calls its methods in response to user actions and renders
// the result; matching and cycling live in find.Navigator.
type Session struct {
	store  *document.Store
	nav    *find.Navigator
	editor *core.Editor
	events *event.Manager

	watch       bool
	watchSettle time.Duration
	watchMu     sync.Mutex
	watcher     *document.Watcher

	quitArmed bool
}

// NewSession creates a session with an empty, unbound document.
func NewSession(cfg SessionConfig) *Session {
	if cfg.Events == nil {
		cfg.Events = event.NewManager()
	}
	if cfg.Editor == nil {
		cfg.Editor = core.NewEditor(cfg.Events, core.NewClipboard(false))
	}
	s := &Session{
		store:       document.NewStore(cfg.Fs),
		nav:         find.NewNavigator(cfg.Search),
		editor:      cfg.Editor,
		events:      cfg.Events,
		watch:       cfg.Watch,
		watchSettle: cfg.WatchSettle,
	}
	s.events.Subscribe(event.TypeDocumentModified, s.handleModified)
	return s
}

// handleModified mirrors edits into the store and drops the stale matches.
func (s *Session) handleModified(e event.Event) bool {
	s.store.SetText(s.editor.Text())
	s.nav.Reset()
	return false
}

// Editor returns the text area model.
func (s *Session) Editor() *core.Editor { return s.editor }

// Navigator returns the match navigator.
func (s *Session) Navigator() *find.Navigator { return s.nav }

// Events returns the session's event manager.
func (s *Session) Events() *event.Manager { return s.events }

// Path returns the file the document is bound to, or "".
func (s *Session) Path() string { return s.store.Path() }

// Modified reports unsaved edits.
func (s *Session) Modified() bool { return s.store.Modified() }

// Text returns the document text.
func (s *Session) Text() string { return s.editor.Text() }

// Open loads path into the editor. A missing file opens as an empty
// document bound to path. On error the current document is kept.
func (s *Session) Open(path string) error {
	text, err := s.store.Load(path)
	if err != nil {
		return err
	}
	s.editor.SetText(text)
	s.nav.Reset()
	s.quitArmed = false
	s.rewatch()
	s.events.Dispatch(event.TypeDocumentLoaded, event.DocumentData{Path: path})
	logger.Infof("Session: opened '%s'", path)
	return nil
}

// Save writes the document to path, or to the bound path when path is
// empty. It returns document.ErrNoPath when neither is set.
func (s *Session) Save(path string) error {
	previous := s.store.Path()
	if err := s.store.Save(path, s.editor.Text()); err != nil {
		return err
	}
	s.quitArmed = false
	if s.store.Path() != previous {
		s.rewatch()
	}
	s.events.Dispatch(event.TypeDocumentSaved, event.DocumentData{Path: s.store.Path()})
	logger.Infof("Session: saved '%s'", s.store.Path())
	return nil
}

// Search runs pattern over the current text and selects the first match.
// A *find.PatternError leaves the previous matches and selection in place.
func (s *Session) Search(pattern string) (int, error) {
	n, err := s.nav.Search(pattern, s.editor.Text())
	if err != nil {
		return 0, err
	}
	s.events.Dispatch(event.TypeSearchCompleted, event.SearchData{
		Pattern: pattern,
		Literal: s.nav.Literal(),
		Count:   n,
	})
	if span, ok := s.nav.CurrentSpan(); ok {
		s.selectMatch(span)
	} else {
		s.editor.ClearSelection()
	}
	return n, nil
}

// CurrentSpan returns the current match.
func (s *Session) CurrentSpan() (find.Span, bool) {
	return s.nav.CurrentSpan()
}

// Next selects the following match, wrapping to the first.
func (s *Session) Next() (find.Span, bool) {
	span, ok := s.nav.Advance()
	if ok {
		s.selectMatch(span)
	}
	return span, ok
}

// Prev selects the preceding match, wrapping to the last.
func (s *Session) Prev() (find.Span, bool) {
	span, ok := s.nav.Retreat()
	if ok {
		s.selectMatch(span)
	}
	return span, ok
}

func (s *Session) selectMatch(span find.Span) {
	s.editor.Select(span)
	index, count, _ := s.nav.Position()
	s.events.Dispatch(event.TypeMatchSelected, event.MatchData{Span: span, Index: index, Count: count})
}

// ToggleLiteral flips between literal and regular-expression search and
// returns the new mode. It applies from the next search.
func (s *Session) ToggleLiteral() bool {
	literal := !s.nav.Literal()
	s.nav.SetLiteral(literal)
	logger.DebugTagf("search", "Session: literal search %v", literal)
	return literal
}

// RequestQuit reports whether the session may end. With unsaved changes
// the first request only arms the quit and returns false; a second request
// in a row returns true.
func (s *Session) RequestQuit() bool {
	if !s.store.Modified() || s.quitArmed {
		return true
	}
	s.quitArmed = true
	return false
}

// DisarmQuit cancels a pending quit request.
func (s *Session) DisarmQuit() {
	s.quitArmed = false
}

// rewatch moves the file watcher to the bound path.
func (s *Session) rewatch() {
	if !s.watch {
		return
	}
	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	if s.watcher != nil {
		s.watcher.Close()
		s.watcher = nil
	}
	path := s.store.Path()
	if path == "" {
		return
	}
	w, err := document.Watch(path, s.watchSettle, s.handleDiskChange)
	if err != nil {
		logger.Warnf("Session: cannot watch '%s': %v", path, err)
		return
	}
	s.watcher = w
}

// handleDiskChange runs on the watcher goroutine. Our own saves leave the
// file equal to the store baseline and are not reported.
func (s *Session) handleDiskChange(path string) {
	changed, err := s.store.ChangedOnDisk()
	if err != nil {
		logger.Warnf("Session: checking '%s' after change: %v", path, err)
		return
	}
	if !changed {
		return
	}
	logger.Infof("Session: '%s' changed on disk", path)
	s.events.Dispatch(event.TypeDocumentChangedOnDisk, event.DocumentData{Path: path})
}

// Close stops the file watcher.
func (s *Session) Close() error {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Close()
	s.watcher = nil
	return err
}
