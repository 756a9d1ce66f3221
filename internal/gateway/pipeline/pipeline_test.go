package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/storekeep/internal/core/busy"
	"github.com/colonyops/storekeep/internal/core/notify"
	"github.com/colonyops/storekeep/internal/gateway/apierr"
)

func newRunner(t *testing.T, opts NotifyOptions) (Runner, *busy.Tracker, *notify.Store) {
	t.Helper()
	tracker := busy.NewTracker()
	store := notify.NewStore()
	return Chain(Busy(tracker), Notify(store, opts)), tracker, store
}

func TestChain_OrderOfApplication(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next Operation) Operation {
			return func(ctx context.Context) error {
				order = append(order, name)
				return next(ctx)
			}
		}
	}

	run := Chain(mw("outer"), mw("inner"))
	err := run(context.Background(), "/x", func(ctx context.Context) error {
		order = append(order, "op")
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner", "op"}, order)
}

func TestRunner_SuccessProducesNoNotification(t *testing.T) {
	run, tracker, store := newRunner(t, NotifyOptions{})

	err := run(context.Background(), "/api/customers", func(ctx context.Context) error {
		assert.True(t, tracker.Busy(), "tracker must be busy while the op runs")
		return nil
	})

	require.NoError(t, err)
	assert.False(t, tracker.Busy())
	assert.Equal(t, 0, store.Len(), "successes never notify automatically")
}

func TestRunner_FailureNotifiesAndForwardsError(t *testing.T) {
	run, tracker, store := newRunner(t, NotifyOptions{})

	cause := &apierr.HTTPError{StatusCode: 404, URL: "/api/bills/99"}
	err := run(context.Background(), "/api/bills/99", func(ctx context.Context) error {
		return cause
	})

	// Classification is additive: the caller still sees the raw failure.
	var httpErr *apierr.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Same(t, cause, httpErr)

	assert.False(t, tracker.Busy())

	list := store.List()
	require.Len(t, list, 1, "exactly one notification per failed operation")
	assert.Equal(t, notify.CategoryError, list[0].Category)
	assert.Equal(t, "Resource not found: /api/bills/99", list[0].Message)
}

func TestRunner_PanicStillSettlesCounter(t *testing.T) {
	run, tracker, _ := newRunner(t, NotifyOptions{})

	assert.Panics(t, func() {
		_ = run(context.Background(), "/api/products", func(ctx context.Context) error {
			panic("op blew up")
		})
	})

	assert.Equal(t, 0, tracker.InFlight(), "panicking op must not leak an increment")
}

func TestRunner_ConcurrentOperations(t *testing.T) {
	// Three concurrent calls, two succeed and one fails: busy holds while
	// any is pending, drops only after all settle, and exactly one
	// notification lands.
	run, tracker, store := newRunner(t, NotifyOptions{})

	release := make(chan struct{})
	started := make(chan struct{}, 3)

	results := []error{nil, nil, &apierr.HTTPError{StatusCode: 500, URL: "/api/bills"}}

	var wg sync.WaitGroup
	for _, result := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = run(context.Background(), "/api/bills", func(ctx context.Context) error {
				started <- struct{}{}
				<-release
				return result
			})
		}()
	}

	for range results {
		<-started
	}
	assert.True(t, tracker.Busy())
	assert.Equal(t, 3, tracker.InFlight())

	close(release)
	wg.Wait()

	assert.False(t, tracker.Busy(), "idle only after every call settles")
	assert.Equal(t, 1, store.Len(), "exactly one notification for the one failure")
}

func TestRunner_ContextCancellationSettles(t *testing.T) {
	run, tracker, store := newRunner(t, NotifyOptions{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := run(ctx, "/api/customers", func(ctx context.Context) error {
		return &apierr.TransportError{URL: "/api/customers", Err: ctx.Err()}
	})

	require.Error(t, err)
	assert.Equal(t, 0, tracker.InFlight())
	assert.Equal(t, 1, store.Len())
}

func TestNotify_TTLRules(t *testing.T) {
	opts := NotifyOptions{
		DefaultTTL: 10 * time.Second,
		Rules: []TTLRule{
			// Connectivity-style failures on the bills endpoints stay
			// visible until dismissed.
			{Pattern: "**/api/bills/**", TTL: 0},
		},
	}
	run, _, store := newRunner(t, opts)

	_ = run(context.Background(), "http://localhost:8088/api/bills/generate", func(ctx context.Context) error {
		return errors.New("boom")
	})
	_ = run(context.Background(), "http://localhost:8088/api/customers", func(ctx context.Context) error {
		return errors.New("boom")
	})

	list := store.List()
	require.Len(t, list, 2)
	assert.False(t, list[0].Expires(), "rule match pins the notification")
	assert.True(t, list[1].Expires())
	assert.Equal(t, 10*time.Second, list[1].TTL)
}

func TestRequestURL(t *testing.T) {
	run := Chain()
	var seen string
	_ = run(context.Background(), "/api/products/abc", func(ctx context.Context) error {
		seen = RequestURL(ctx)
		return nil
	})
	assert.Equal(t, "/api/products/abc", seen)
}
