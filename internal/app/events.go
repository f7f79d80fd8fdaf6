package app

import (
	"github.com/bethropolis/seek/internal/event"
	"github.com/bethropolis/seek/internal/logger"
)

func (a *App) subscribe() {
	a.eventManager.Subscribe(event.TypeDocumentModified, a.handleDocumentModified)
	a.eventManager.Subscribe(event.TypeSearchCompleted, a.handleSearchCompleted)
	a.eventManager.Subscribe(event.TypeMatchSelected, a.handleMatchSelected)
	a.eventManager.Subscribe(event.TypeDocumentChangedOnDisk, a.handleChangedOnDisk)
}

// handleDocumentModified hides the match counter; the navigator already
// dropped the matches.
func (a *App) handleDocumentModified(e event.Event) bool {
	a.searchStale = true
	return false
}

func (a *App) handleSearchCompleted(e event.Event) bool {
	a.searchStale = false
	if data, ok := e.Data.(event.SearchData); ok {
		logger.DebugTagf("search", "App: %d match(es) for %q", data.Count, data.Pattern)
	}
	return false
}

func (a *App) handleMatchSelected(e event.Event) bool {
	if data, ok := e.Data.(event.MatchData); ok {
		logger.DebugTagf("search", "App: match %d/%d at %v", data.Index+1, data.Count, data.Span)
	}
	return false
}

// handleChangedOnDisk runs on the watcher goroutine; it only touches the
// status bar, which is safe for concurrent use, and wakes the main loop.
func (a *App) handleChangedOnDisk(e event.Event) bool {
	if data, ok := e.Data.(event.DocumentData); ok {
		a.setError("%s changed on disk. Ctrl+O to reload, Ctrl+S to overwrite", data.Path)
	}
	a.wake()
	return false
}
