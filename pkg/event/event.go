// Package event provides a process-local event dispatcher. The order
// intake service fires events here and the notification listeners react
// to them, so the two sides never import each other.
package event

import (
	"sync"

	"github.com/anandicecream/storefront/pkg/logger"
)

// Handler receives an event payload.
type Handler func(payload interface{})

var (
	mu       sync.RWMutex
	handlers = map[string][]Handler{}
)

// Listen registers a handler for the given event name.
func Listen(event string, handler Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers[event] = append(handlers[event], handler)
}

// Fire dispatches an event synchronously to all registered listeners.
func Fire(event string, payload interface{}) {
	for _, h := range snapshot(event) {
		h(payload)
	}
}

// FireAsync dispatches the event to all listeners concurrently and
// returns immediately. A panicking listener is recovered and logged so
// it cannot take the process down.
func FireAsync(event string, payload interface{}) {
	for _, h := range snapshot(event) {
		h := h
		go func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("event: listener panic", "event", event, "panic", r)
				}
			}()
			h(payload)
		}()
	}
}

// Flush removes all listeners (useful in tests).
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[string][]Handler{}
}

func snapshot(event string) []Handler {
	mu.RLock()
	defer mu.RUnlock()
	hs := make([]Handler, len(handlers[event]))
	copy(hs, handlers[event])
	return hs
}
