package event

import (
	"sync"

	"github.com/bethropolis/seek/internal/logger"
)

// Handler receives an event. Returning true stops delivery to the
// handlers subscribed after it.
type Handler func(e Event) bool

// Manager keeps subscriptions and dispatches events synchronously.
type Manager struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

// NewManager creates an empty event manager.
func NewManager() *Manager {
	return &Manager{handlers: make(map[Type][]Handler)}
}

// Subscribe registers handler for eventType.
func (m *Manager) Subscribe(eventType Type, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[eventType] = append(m.handlers[eventType], handler)
}

// Dispatch delivers an event to the handlers of its type in subscription
// order. Handlers may subscribe or dispatch from within a handler.
func (m *Manager) Dispatch(eventType Type, data any) {
	m.mu.RLock()
	handlers := make([]Handler, len(m.handlers[eventType]))
	copy(handlers, m.handlers[eventType])
	m.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}
	logger.DebugTagf("event", "Event Manager: dispatching %v to %d handler(s)", eventType, len(handlers))

	e := Event{Type: eventType, Data: data}
	for _, h := range handlers {
		if h(e) {
			return
		}
	}
}
