package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/storekeep/internal/core/busy"
	"github.com/colonyops/storekeep/internal/core/notify"
)

// stateMsg carries the latest shared state into the Update loop.
type stateMsg struct {
	busy          bool
	notifications []notify.Notification
}

// Bridge adapts the subscription callbacks from the busy tracker and the
// notification store into Bubble Tea messages. Callbacks may fire from
// timer goroutines, so the latest state is buffered under a lock and a
// coalesced signal wakes the program.
type Bridge struct {
	mu            sync.Mutex
	busy          bool
	notifications []notify.Notification
	signal        chan struct{}
}

// NewBridge constructs a bridge with no subscriptions attached.
func NewBridge() *Bridge {
	return &Bridge{
		signal: make(chan struct{}, 1),
	}
}

// Attach subscribes to both stores. The replay-on-subscribe contract means
// the bridge holds current state before Attach returns. The returned
// cancel tears down both subscriptions.
func (b *Bridge) Attach(tracker *busy.Tracker, store *notify.Store) (cancel func()) {
	cancelBusy := tracker.Subscribe(func(busy bool) {
		b.mu.Lock()
		b.busy = busy
		b.mu.Unlock()
		b.wake()
	})

	cancelNotify := store.Subscribe(func(snap []notify.Notification) {
		b.mu.Lock()
		b.notifications = snap
		b.mu.Unlock()
		b.wake()
	})

	return func() {
		cancelBusy()
		cancelNotify()
	}
}

// State returns the latest buffered values.
func (b *Bridge) State() (bool, []notify.Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.busy, b.notifications
}

// WaitForUpdate blocks until state changes, then delivers a snapshot. The
// Update loop re-arms it after every stateMsg.
func (b *Bridge) WaitForUpdate() tea.Cmd {
	return func() tea.Msg {
		<-b.signal
		busyNow, notifications := b.State()
		return stateMsg{busy: busyNow, notifications: notifications}
	}
}

// wake emits a non-blocking coalesced signal.
func (b *Bridge) wake() {
	select {
	case b.signal <- struct{}{}:
	default:
	}
}
