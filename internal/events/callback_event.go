// Package events is a small typed publish/subscribe primitive used to report
// progress out of worker goroutines.
package events

import (
	"slices"
	"sync"
)

type listener[T any] struct {
	id uint64
	fn func(T)
}

// CallbackEvent fans a value out to every registered callback.
// Callbacks run on the notifying goroutine, in registration order.
type CallbackEvent[T any] struct {
	mu        sync.RWMutex
	listeners []listener[T]
	nextID    uint64
}

// NewCallbackEvent creates an event with no listeners
func NewCallbackEvent[T any]() *CallbackEvent[T] {
	return &CallbackEvent[T]{}
}

// Listen registers callback and returns a function that removes it.
// The returned function is safe to call more than once.
func (e *CallbackEvent[T]) Listen(callback func(T)) func() {
	if callback == nil {
		panic("events: nil callback")
	}

	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.listeners = append(e.listeners, listener[T]{id: id, fn: callback})
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.listeners = slices.DeleteFunc(e.listeners, func(l listener[T]) bool {
			return l.id == id
		})
	}
}

// Notify calls every listener with value. The listener set is snapshotted
// first, so a callback may unsubscribe itself without deadlocking.
func (e *CallbackEvent[T]) Notify(value T) {
	e.mu.RLock()
	snapshot := slices.Clone(e.listeners)
	e.mu.RUnlock()

	for _, l := range snapshot {
		l.fn(value)
	}
}

// ListenerCount returns the number of registered listeners
func (e *CallbackEvent[T]) ListenerCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners)
}
