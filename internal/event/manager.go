// Package event is a small synchronous publish/subscribe bus.
package event

import (
	"sync"

	"github.com/bethropolis/gotags/internal/logger"
)

// Handler receives an event. Returning true consumes it, and handlers
// subscribed later do not see it.
type Handler func(e Event) bool

// Manager handles subscriptions and dispatching.
type Manager struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

// NewManager creates an empty bus.
func NewManager() *Manager {
	return &Manager{handlers: make(map[Type][]Handler)}
}

// Subscribe adds handler for eventType.
func (m *Manager) Subscribe(eventType Type, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[eventType] = append(m.handlers[eventType], handler)
	logger.DebugTagf("event", "handler subscribed to %s", eventType)
}

// Dispatch calls the handlers of eventType synchronously, in subscription
// order, until one consumes the event.
func (m *Manager) Dispatch(eventType Type, data interface{}) {
	m.mu.RLock()
	handlers := append([]Handler(nil), m.handlers[eventType]...)
	m.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}
	logger.DebugTagf("event", "dispatching %s to %d handler(s)", eventType, len(handlers))

	e := Event{Type: eventType, Data: data}
	for _, h := range handlers {
		if h(e) {
			return
		}
	}
}
