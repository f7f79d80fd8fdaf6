package document

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/bethropolis/seek/internal/logger"
	"github.com/bethropolis/seek/internal/utils"
	"github.com/fsnotify/fsnotify"
)

// DefaultSettle is how long the watcher waits for a burst of file events
// to end before reporting a change.
const DefaultSettle = 100 * time.Millisecond

// Watcher reports writes, renames and removals of a single file. The parent
// directory is watched so editors that replace files by rename are seen too.
type Watcher struct {
	fsw      *fsnotify.Watcher
	target   string
	onChange func(path string)
	settle   time.Duration
	debounce utils.Debouncer

	closeOnce sync.Once
	done      chan struct{}
}

// Watch starts watching path. onChange runs on a background goroutine once
// per settled burst of events.
func Watch(path string, settle time.Duration, onChange func(path string)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path '%s': %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch '%s': %w", filepath.Dir(abs), err)
	}
	if settle <= 0 {
		settle = DefaultSettle
	}

	w := &Watcher{
		fsw:      fsw,
		target:   abs,
		onChange: onChange,
		settle:   settle,
		done:     make(chan struct{}),
	}
	go w.loop()
	logger.Debugf("Watcher: watching '%s'", abs)
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.target
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
				!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			logger.DebugTagf("watch", "Watcher: %s", ev)
			w.debounce.Debounce(w.settle, func() {
				select {
				case <-w.done:
				default:
					w.onChange(w.target)
				}
			})
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warnf("Watcher: %v", err)
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher. Pending notifications are dropped.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		w.debounce.Stop()
		err = w.fsw.Close()
	})
	return err
}
