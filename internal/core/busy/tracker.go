// Package busy tracks the number of in-flight gateway requests and exposes
// a derived busy/idle signal to subscribers.
package busy

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Observer is a callback invoked with the derived busy flag.
type Observer func(busy bool)

// Tracker counts in-flight operations. The busy flag is true while at
// least one operation is pending. A counter rather than a boolean is
// required: with N concurrent requests, the first completion must not
// drop the signal while others are still in flight.
type Tracker struct {
	mu        sync.Mutex
	count     int
	nextSub   int
	observers map[int]Observer
}

// NewTracker constructs an idle tracker with no observers.
func NewTracker() *Tracker {
	return &Tracker{
		observers: make(map[int]Observer),
	}
}

// Begin records the start of an operation. On the 0->1 transition every
// observer is notified that the tracker is busy. Never blocks.
func (t *Tracker) Begin() {
	t.mu.Lock()
	t.count++
	notify := t.count == 1
	subs := t.snapshot()
	t.mu.Unlock()

	if notify {
		dispatch(subs, true)
	}
}

// End records the completion of an operation. Must be paired 1:1 with a
// prior Begin. On the 1->0 transition every observer is notified that the
// tracker is idle. An unpaired End is a caller bug; the count is clamped
// at zero so the derived signal stays coherent.
func (t *Tracker) End() {
	t.mu.Lock()
	if t.count == 0 {
		t.mu.Unlock()
		log.Warn().Msg("busy tracker End without matching Begin")
		return
	}
	t.count--
	notify := t.count == 0
	subs := t.snapshot()
	t.mu.Unlock()

	if notify {
		dispatch(subs, false)
	}
}

// Busy reports whether any operation is currently in flight.
func (t *Tracker) Busy() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count > 0
}

// InFlight returns the current number of pending operations.
func (t *Tracker) InFlight() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// Subscribe registers an observer and immediately replays the current
// value, so late subscribers see present state rather than only future
// transitions. The returned cancel func removes the observer.
func (t *Tracker) Subscribe(fn Observer) (cancel func()) {
	t.mu.Lock()
	id := t.nextSub
	t.nextSub++
	t.observers[id] = fn
	current := t.count > 0
	t.mu.Unlock()

	fn(current)

	return func() {
		t.mu.Lock()
		delete(t.observers, id)
		t.mu.Unlock()
	}
}

// snapshot copies the observer list so dispatch runs outside the lock.
// Callers must hold t.mu.
func (t *Tracker) snapshot() []Observer {
	subs := make([]Observer, 0, len(t.observers))
	for _, fn := range t.observers {
		subs = append(subs, fn)
	}
	return subs
}

func dispatch(subs []Observer, busy bool) {
	for _, fn := range subs {
		fn(busy)
	}
}
