// Package pipeline composes the cross-cutting behaviors applied to every
// outbound gateway request: busy-state tracking and failure-to-notification
// classification. Middleware is composed once at client construction, not
// registered through an ambient hook.
package pipeline

import (
	"context"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/storekeep/internal/core/busy"
	"github.com/colonyops/storekeep/internal/core/notify"
	"github.com/colonyops/storekeep/internal/gateway/apierr"
)

// Operation is a single outbound request attempt. The URL identifies the
// request for TTL rules and is already embedded in any error the op
// returns.
type Operation func(ctx context.Context) error

// Middleware wraps an Operation with additional behavior.
type Middleware func(next Operation) Operation

// Runner executes an operation through the composed middleware chain.
type Runner func(ctx context.Context, url string, op Operation) error

// Chain builds a Runner from the given middleware. The first middleware is
// outermost: Chain(a, b) runs a(b(op)).
func Chain(middleware ...Middleware) Runner {
	return func(ctx context.Context, url string, op Operation) error {
		wrapped := op
		for i := len(middleware) - 1; i >= 0; i-- {
			wrapped = middleware[i](wrapped)
		}
		return wrapped(withRequestURL(ctx, url))
	}
}

type ctxKey struct{}

func withRequestURL(ctx context.Context, url string) context.Context {
	return context.WithValue(ctx, ctxKey{}, url)
}

// RequestURL returns the URL the running operation was dispatched with.
func RequestURL(ctx context.Context) string {
	url, _ := ctx.Value(ctxKey{}).(string)
	return url
}

// Busy pairs every dispatch with exactly one tracker decrement. The
// deferred End settles the counter on success, failure, context
// cancellation, and panic alike; a wrapped call can never leak an
// increment.
func Busy(tracker *busy.Tracker) Middleware {
	return func(next Operation) Operation {
		return func(ctx context.Context) error {
			tracker.Begin()
			defer tracker.End()
			return next(ctx)
		}
	}
}

// TTLRule overrides the error-notification visibility window for requests
// whose URL path matches a doublestar glob. A TTL of zero makes matching
// notifications persistent.
type TTLRule struct {
	Pattern string
	TTL     time.Duration
}

// NotifyOptions tunes the Notify middleware.
type NotifyOptions struct {
	// DefaultTTL applies to error notifications with no matching rule.
	// Zero means errors persist until dismissed.
	DefaultTTL time.Duration
	Rules      []TTLRule
}

// Notify classifies a failed operation and surfaces it as exactly one
// error notification, then returns the original error unchanged so the
// call site keeps its own handling. Successes produce no notification;
// surfacing those is an opt-in call-site decision.
func Notify(store *notify.Store, opts NotifyOptions) Middleware {
	return func(next Operation) Operation {
		return func(ctx context.Context) error {
			err := next(ctx)
			if err == nil {
				return nil
			}

			url := RequestURL(ctx)
			classified := apierr.Classify(apierr.Describe(err))

			log.Debug().
				Str("cmp", "pipeline").
				Str("url", url).
				Str("kind", string(classified.Kind)).
				Msg("request failed")

			store.Add(notify.CategoryError, classified.Message, ttlFor(url, opts))
			return err
		}
	}
}

func ttlFor(url string, opts NotifyOptions) time.Duration {
	for _, rule := range opts.Rules {
		ok, err := doublestar.Match(rule.Pattern, url)
		if err != nil {
			log.Warn().Str("pattern", rule.Pattern).Err(err).Msg("invalid notification ttl pattern")
			continue
		}
		if ok {
			return rule.TTL
		}
	}
	return opts.DefaultTTL
}
