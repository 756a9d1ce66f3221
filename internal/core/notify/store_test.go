package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AddAssignsMonotonicIDs(t *testing.T) {
	s := NewStore()

	first := s.Add(CategoryInfo, "one", 0)
	second := s.Add(CategoryInfo, "two", 0)

	assert.Less(t, first, second)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "one", list[0].Message)
	assert.Equal(t, "two", list[1].Message)
}

func TestStore_NoDuplicateSuppression(t *testing.T) {
	s := NewStore()

	a := s.Add(CategoryError, "same message", 0)
	b := s.Add(CategoryError, "same message", 0)

	assert.NotEqual(t, a, b, "identical messages get distinct ids")
	assert.Equal(t, 2, s.Len())
}

func TestStore_RemoveIsIdempotent(t *testing.T) {
	s := NewStore()
	id := s.Add(CategoryInfo, "x", 0)

	s.Remove(id)
	assert.Equal(t, 0, s.Len())

	// Removing again, or removing an id that never existed, is a no-op.
	s.Remove(id)
	s.Remove(9999)
	assert.Equal(t, 0, s.Len())
}

func TestStore_RemovePreservesOrder(t *testing.T) {
	s := NewStore()
	s.Add(CategoryInfo, "a", 0)
	b := s.Add(CategoryInfo, "b", 0)
	s.Add(CategoryInfo, "c", 0)

	s.Remove(b)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Message)
	assert.Equal(t, "c", list[1].Message)
}

func TestStore_TTLExpiry(t *testing.T) {
	s := NewStore()

	updates := make(chan []Notification, 8)
	s.Subscribe(func(snap []Notification) { updates <- snap })
	<-updates // replay of the empty list

	s.Add(CategoryError, "transient", 50*time.Millisecond)
	snap := <-updates
	require.Len(t, snap, 1)

	// The expiry timer fires Remove, and observers see the emptied list.
	select {
	case snap = <-updates:
		assert.Empty(t, snap)
	case <-time.After(time.Second):
		t.Fatal("expiry snapshot never delivered")
	}
	assert.Equal(t, 0, s.Len())
}

func TestStore_ManualRemoveBeatsTimer(t *testing.T) {
	s := NewStore()
	id := s.Add(CategoryInfo, "x", 50*time.Millisecond)

	s.Remove(id)
	assert.Equal(t, 0, s.Len())

	// The canceled timer firing later must not panic or resurrect anything.
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 0, s.Len())
}

func TestStore_ClearCancelsTimers(t *testing.T) {
	s := NewStore()
	s.Add(CategoryInfo, "a", time.Minute)
	s.Add(CategoryInfo, "b", 0)

	s.Clear()
	assert.Equal(t, 0, s.Len())

	s.mu.Lock()
	pending := len(s.timers)
	s.mu.Unlock()
	assert.Equal(t, 0, pending, "clear must cancel outstanding timers")
}

func TestStore_SubscribeReplaysCurrentList(t *testing.T) {
	s := NewStore()
	s.Add(CategoryWarning, "already here", 0)

	var replay []Notification
	s.Subscribe(func(snap []Notification) { replay = snap })

	require.Len(t, replay, 1, "subscriber must receive current state immediately")
	assert.Equal(t, "already here", replay[0].Message)
}

func TestStore_Unsubscribe(t *testing.T) {
	s := NewStore()

	calls := 0
	cancel := s.Subscribe(func([]Notification) { calls++ })
	cancel()

	s.Add(CategoryInfo, "x", 0)
	assert.Equal(t, 1, calls, "only the replay should have fired")
}

func TestStore_OrderingSurvivesMixedTTLs(t *testing.T) {
	s := NewStore()
	s.Add(CategoryInfo, "first", time.Minute)
	s.Add(CategoryInfo, "second", 0)
	s.Add(CategoryInfo, "third", time.Hour)

	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Message)
	assert.Equal(t, "second", list[1].Message)
	assert.Equal(t, "third", list[2].Message)
}

func TestStore_Helpers(t *testing.T) {
	s := NewStore()

	s.Success("created %s", "thing")
	s.Error("boom")
	s.Info("fyi")
	s.Warning("careful")

	list := s.List()
	require.Len(t, list, 4)

	assert.Equal(t, CategorySuccess, list[0].Category)
	assert.Equal(t, "created thing", list[0].Message)
	assert.True(t, list[0].Expires())

	assert.Equal(t, CategoryError, list[1].Category)
	assert.False(t, list[1].Expires(), "errors persist until dismissed")

	assert.Equal(t, CategoryInfo, list[2].Category)
	assert.Equal(t, CategoryWarning, list[3].Category)
}
