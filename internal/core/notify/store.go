package notify

import (
	"fmt"
	"sync"
	"time"
)

// Subscriber is a callback invoked with a full snapshot of the list on
// every mutation. A new subscriber immediately receives the current list.
type Subscriber func([]Notification)

// Store is an ordered, in-memory collection of notifications. Entries keep
// insertion order, ids are assigned monotonically for the lifetime of the
// store, and entries with a TTL dismiss themselves when it elapses.
type Store struct {
	mu            sync.Mutex
	notifications []Notification
	timers        map[uint64]*time.Timer
	nextID        uint64
	nextSub       int
	subscribers   map[int]Subscriber
}

// NewStore constructs an empty notification store.
func NewStore() *Store {
	return &Store{
		timers:      make(map[uint64]*time.Timer),
		subscribers: make(map[int]Subscriber),
	}
}

// Add appends a notification and returns its id. A ttl greater than zero
// schedules automatic removal after the window elapses; zero means the
// notification stays until removed.
func (s *Store) Add(category Category, message string, ttl time.Duration) uint64 {
	s.mu.Lock()
	id := s.nextID
	s.nextID++

	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Category:  category,
		Message:   message,
		TTL:       ttl,
		CreatedAt: time.Now(),
	})

	if ttl > 0 {
		s.timers[id] = time.AfterFunc(ttl, func() { s.Remove(id) })
	}

	subs, snap := s.broadcastLocked()
	s.mu.Unlock()

	dispatch(subs, snap)
	return id
}

// Remove deletes the notification with the given id and cancels its expiry
// timer. Removing an absent or already-expired id is a no-op.
func (s *Store) Remove(id uint64) {
	s.mu.Lock()

	idx := -1
	for i, n := range s.notifications {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return
	}

	s.notifications = append(s.notifications[:idx], s.notifications[idx+1:]...)
	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
	}

	subs, snap := s.broadcastLocked()
	s.mu.Unlock()

	dispatch(subs, snap)
}

// Clear empties the store and cancels all pending expiry timers.
func (s *Store) Clear() {
	s.mu.Lock()

	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
	s.notifications = nil

	subs, snap := s.broadcastLocked()
	s.mu.Unlock()

	dispatch(subs, snap)
}

// List returns a copy of the current notifications in insertion order.
func (s *Store) List() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Len returns the number of active notifications.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notifications)
}

// Subscribe registers a callback and immediately replays the current list
// to it. The returned cancel func removes the subscription.
func (s *Store) Subscribe(fn Subscriber) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	snap := s.snapshotLocked()
	s.mu.Unlock()

	fn(snap)

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// Success adds a success notification with the default visibility window.
func (s *Store) Success(format string, args ...any) uint64 {
	return s.Add(CategorySuccess, fmt.Sprintf(format, args...), DefaultTTL)
}

// Error adds a persistent error notification. Errors stay visible until
// the user dismisses them.
func (s *Store) Error(format string, args ...any) uint64 {
	return s.Add(CategoryError, fmt.Sprintf(format, args...), 0)
}

// Info adds an info notification with the default visibility window.
func (s *Store) Info(format string, args ...any) uint64 {
	return s.Add(CategoryInfo, fmt.Sprintf(format, args...), DefaultTTL)
}

// Warning adds a warning notification with the default visibility window.
func (s *Store) Warning(format string, args ...any) uint64 {
	return s.Add(CategoryWarning, fmt.Sprintf(format, args...), DefaultTTL)
}

// snapshotLocked copies the list. Callers must hold s.mu.
func (s *Store) snapshotLocked() []Notification {
	out := make([]Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// broadcastLocked captures subscribers and the current snapshot so the
// callbacks run outside the lock. Callers must hold s.mu.
func (s *Store) broadcastLocked() ([]Subscriber, []Notification) {
	subs := make([]Subscriber, 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	return subs, s.snapshotLocked()
}

func dispatch(subs []Subscriber, snap []Notification) {
	for _, fn := range subs {
		fn(snap)
	}
}
