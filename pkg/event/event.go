// Package event is the in-process event bus. Services fire domain events
// (lead captured, order placed, payment moved) and the kernel registers the
// listeners at boot.
package event

import "sync"

// Handler receives the payload the firing side supplied.
type Handler func(payload interface{})

var (
	mu        sync.RWMutex
	listeners = map[string][]Handler{}
)

// Listen subscribes a handler to an event name.
func Listen(name string, h Handler) {
	mu.Lock()
	listeners[name] = append(listeners[name], h)
	mu.Unlock()
}

// Fire runs every listener for the event synchronously, in registration
// order. The listener snapshot is taken under the read lock so a listener
// may itself call Listen without deadlocking.
func Fire(name string, payload interface{}) {
	mu.RLock()
	snapshot := make([]Handler, len(listeners[name]))
	copy(snapshot, listeners[name])
	mu.RUnlock()

	for _, h := range snapshot {
		h(payload)
	}
}

// FireAsync runs each listener on its own goroutine and returns immediately.
func FireAsync(name string, payload interface{}) {
	mu.RLock()
	snapshot := make([]Handler, len(listeners[name]))
	copy(snapshot, listeners[name])
	mu.RUnlock()

	for _, h := range snapshot {
		go h(payload)
	}
}

// Flush drops every registered listener. Tests use it between cases.
func Flush() {
	mu.Lock()
	listeners = map[string][]Handler{}
	mu.Unlock()
}
