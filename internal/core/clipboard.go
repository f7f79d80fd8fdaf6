package core

import (
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/bethropolis/seek/internal/logger"
)

// Clipboard stores copied text in-process and, when enabled, mirrors it to
// the system clipboard. If the system clipboard is unavailable (no xclip,
// no display) the in-process copy keeps working.
type Clipboard struct {
	mu       sync.Mutex
	system   bool
	internal string
}

// NewClipboard creates a clipboard. useSystem selects the system clipboard.
func NewClipboard(useSystem bool) *Clipboard {
	if useSystem && clipboard.Unsupported {
		logger.Warnf("Clipboard: system clipboard unsupported, using internal clipboard")
		useSystem = false
	}
	return &Clipboard{system: useSystem}
}

// System reports whether the system clipboard is used.
func (c *Clipboard) System() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.system
}

// Write stores text. A system clipboard failure is returned, but the text
// is still kept internally.
func (c *Clipboard) Write(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.internal = text
	if !c.system {
		return nil
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("system clipboard write: %w", err)
	}
	return nil
}

// Read returns the clipboard text, preferring the system clipboard.
func (c *Clipboard) Read() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.system {
		return c.internal, nil
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		logger.Warnf("Clipboard: system read failed, using internal copy: %v", err)
		return c.internal, nil
	}
	return text, nil
}
