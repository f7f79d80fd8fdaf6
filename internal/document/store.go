// Package document holds the text of the open file and moves it to and
// from the file system.
package document

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/bethropolis/seek/internal/logger"
	"github.com/spf13/afero"
)

const defaultPerm fs.FileMode = 0o644

// Store owns the document buffer. Reads and writes go through an afero.Fs so
// tests can swap in an in-memory file system.
type Store struct {
	fs afero.Fs

	mu       sync.RWMutex
	text     string
	path     string
	modified bool
	baseline string // text as of the last load or save
}

// NewStore creates an empty store on fsys. A nil fsys uses the OS file system.
func NewStore(fsys afero.Fs) *Store {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Store{fs: fsys}
}

// Fs returns the file system the store reads and writes.
func (s *Store) Fs() afero.Fs {
	return s.fs
}

// Read returns the whole content of path. A missing file reads as "".
func Read(fsys afero.Fs, path string) (string, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("%w: '%s': %w", ErrRead, path, err)
	}
	return string(data), nil
}

// Write replaces the content of path with text, keeping the mode of an
// existing file.
func Write(fsys afero.Fs, path, text string) error {
	perm := defaultPerm
	if info, err := fsys.Stat(path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("%w: '%s' is a directory", ErrWrite, path)
		}
		perm = info.Mode().Perm()
	}
	if err := afero.WriteFile(fsys, path, []byte(text), perm); err != nil {
		return fmt.Errorf("%w: '%s': %w", ErrWrite, path, err)
	}
	return nil
}

// Load reads path and replaces the buffer with its content. A missing file
// yields an empty document bound to path. On error the buffer is unchanged.
func (s *Store) Load(path string) (string, error) {
	text, err := Read(s.fs, path)
	if err != nil {
		logger.Warnf("Store: load '%s' failed: %v", path, err)
		return "", err
	}

	s.mu.Lock()
	s.text = text
	s.path = path
	s.baseline = text
	s.modified = false
	s.mu.Unlock()

	logger.Debugf("Store: loaded '%s' (%d bytes)", path, len(text))
	return text, nil
}

// Save writes text to path, overwriting it. An empty path falls back to the
// path of the current document. On success the buffer holds text and is
// bound to the saved path.
func (s *Store) Save(path, text string) error {
	if path == "" {
		path = s.Path()
	}
	if path == "" {
		return ErrNoPath
	}
	if err := Write(s.fs, path, text); err != nil {
		logger.Warnf("Store: save '%s' failed: %v", path, err)
		return err
	}

	s.mu.Lock()
	s.text = text
	s.path = path
	s.baseline = text
	s.modified = false
	s.mu.Unlock()

	logger.Debugf("Store: saved '%s' (%d bytes)", path, len(text))
	return nil
}

// Text returns the current buffer.
func (s *Store) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text
}

// SetText replaces the buffer without touching the file system and marks
// the document modified when the text differs.
func (s *Store) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if text != s.text {
		s.text = text
		s.modified = true
	}
}

// Path returns the file the document is bound to, or "".
func (s *Store) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// Modified reports whether the buffer has edits that were not saved.
func (s *Store) Modified() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modified
}

// ChangedOnDisk reports whether the bound file no longer holds the text
// that was last loaded or saved.
func (s *Store) ChangedOnDisk() (bool, error) {
	s.mu.RLock()
	path, baseline := s.path, s.baseline
	s.mu.RUnlock()
	if path == "" {
		return false, nil
	}
	text, err := Read(s.fs, path)
	if err != nil {
		return false, err
	}
	return text != baseline, nil
}
