package utils

import (
	"sync"
	"time"
)

// Debouncer collapses bursts of calls into one call after a quiet period.
type Debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
}

// Debounce schedules fn to run after d, cancelling any call still pending.
func (d *Debouncer) Debounce(dur time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(dur, func() {
		d.mu.Lock()
		d.timer = nil
		d.mu.Unlock()
		fn()
	})
}

// Stop cancels a pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
