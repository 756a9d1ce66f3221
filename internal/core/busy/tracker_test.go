package busy

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_BeginEndPairing(t *testing.T) {
	tr := NewTracker()

	assert.False(t, tr.Busy())
	assert.Equal(t, 0, tr.InFlight())

	tr.Begin()
	assert.True(t, tr.Busy())
	assert.Equal(t, 1, tr.InFlight())

	tr.Begin()
	assert.Equal(t, 2, tr.InFlight())

	tr.End()
	assert.True(t, tr.Busy(), "still busy while one operation remains")

	tr.End()
	assert.False(t, tr.Busy())
	assert.Equal(t, 0, tr.InFlight())
}

func TestTracker_CounterNotBoolean(t *testing.T) {
	// Two overlapping operations: completing the first must not drop the
	// busy signal while the second is still pending.
	tr := NewTracker()

	var transitions []bool
	tr.Subscribe(func(b bool) { transitions = append(transitions, b) })

	tr.Begin()
	tr.Begin()
	tr.End()
	tr.End()

	// replay(false), 0->1(true), 1->0(false). No transition fires on the
	// inner Begin/End pair.
	assert.Equal(t, []bool{false, true, false}, transitions)
}

func TestTracker_SubscribeReplaysCurrentState(t *testing.T) {
	tr := NewTracker()
	tr.Begin()

	var got []bool
	tr.Subscribe(func(b bool) { got = append(got, b) })

	require.Len(t, got, 1, "subscribe must replay immediately")
	assert.True(t, got[0], "late subscriber must see the in-flight state")
}

func TestTracker_Unsubscribe(t *testing.T) {
	tr := NewTracker()

	calls := 0
	cancel := tr.Subscribe(func(bool) { calls++ })
	cancel()

	tr.Begin()
	tr.End()

	assert.Equal(t, 1, calls, "only the replay should have fired")
}

func TestTracker_EndWithoutBeginClamps(t *testing.T) {
	tr := NewTracker()

	tr.End()
	assert.Equal(t, 0, tr.InFlight(), "count must never go negative")

	// Tracker must still behave after the misuse.
	tr.Begin()
	assert.True(t, tr.Busy())
	tr.End()
	assert.False(t, tr.Busy())
}

func TestTracker_ConcurrentOperations(t *testing.T) {
	tr := NewTracker()

	const n = 64
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Begin()
			tr.End()
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, tr.InFlight(), "all begins must be matched by ends")
	assert.False(t, tr.Busy())
}
