package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/storekeep/internal/core/busy"
	"github.com/colonyops/storekeep/internal/core/notify"
)

func TestBridge_AttachReplaysCurrentState(t *testing.T) {
	tracker := busy.NewTracker()
	store := notify.NewStore()

	tracker.Begin()
	store.Error("already failed")

	b := NewBridge()
	cancel := b.Attach(tracker, store)
	defer cancel()

	busyNow, notifications := b.State()
	assert.True(t, busyNow, "bridge must see pre-existing busy state")
	require.Len(t, notifications, 1)
	assert.Equal(t, "already failed", notifications[0].Message)
}

func TestBridge_WaitForUpdateDeliversSnapshot(t *testing.T) {
	tracker := busy.NewTracker()
	store := notify.NewStore()

	b := NewBridge()
	cancel := b.Attach(tracker, store)
	defer cancel()

	drainSignal(t, b) // consume the replay wakeups

	done := make(chan tea.Msg, 1)
	go func() { done <- b.WaitForUpdate()() }()

	store.Info("hello")

	select {
	case msg := <-done:
		state, ok := msg.(stateMsg)
		require.True(t, ok)
		require.Len(t, state.notifications, 1)
		assert.Equal(t, "hello", state.notifications[0].Message)
	case <-time.After(time.Second):
		t.Fatal("no state update delivered")
	}
}

func TestBridge_CoalescesBursts(t *testing.T) {
	tracker := busy.NewTracker()
	store := notify.NewStore()

	b := NewBridge()
	cancel := b.Attach(tracker, store)
	defer cancel()

	// Many rapid mutations only need to wake the program once; the
	// snapshot read afterwards sees the final state.
	for range 10 {
		store.Info("x")
	}

	_, notifications := b.State()
	assert.Len(t, notifications, 10)
}

func TestBridge_DetachStopsUpdates(t *testing.T) {
	tracker := busy.NewTracker()
	store := notify.NewStore()

	b := NewBridge()
	cancel := b.Attach(tracker, store)
	cancel()
	drainSignal(t, b)

	store.Info("after detach")

	_, notifications := b.State()
	assert.Empty(t, notifications, "detached bridge must not receive snapshots")
}

func drainSignal(t *testing.T, b *Bridge) {
	t.Helper()
	select {
	case <-b.signal:
	default:
	}
}
