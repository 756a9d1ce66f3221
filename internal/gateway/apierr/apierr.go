// Package apierr defines the error types produced by the gateway client
// and the classifier that turns them into user-facing messages.
package apierr

import (
	"errors"
	"fmt"
)

// HTTPError is a non-2xx response from the gateway. ServerMessage carries
// the body's message field when the gateway supplied one.
type HTTPError struct {
	StatusCode    int
	StatusText    string
	ServerMessage string
	URL           string
}

func (e *HTTPError) Error() string {
	if e.ServerMessage != "" {
		return fmt.Sprintf("gateway returned %d for %s: %s", e.StatusCode, e.URL, e.ServerMessage)
	}
	return fmt.Sprintf("gateway returned %d for %s", e.StatusCode, e.URL)
}

// TransportError is a failure below the HTTP layer: connection refused,
// DNS failure, or a policy rejection before any response arrived.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// FailureDescriptor is the normalized input contract for Classify.
// Resource clients surface failures in this shape and never pre-format
// user-facing text themselves.
type FailureDescriptor struct {
	StatusCode         int // 0 when no status was received
	HasStatus          bool
	IsTransportFailure bool
	TransportMessage   string
	StatusText         string
	ServerMessage      string
	RequestURL         string
}

// Describe builds a FailureDescriptor from the client error chain. Errors
// that are neither HTTP nor transport failures produce an empty descriptor,
// which Classify maps to the unknown-error fallback.
func Describe(err error) FailureDescriptor {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return FailureDescriptor{
			StatusCode:    httpErr.StatusCode,
			HasStatus:     true,
			StatusText:    httpErr.StatusText,
			ServerMessage: httpErr.ServerMessage,
			RequestURL:    httpErr.URL,
		}
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return FailureDescriptor{
			IsTransportFailure: true,
			TransportMessage:   transportErr.Err.Error(),
			RequestURL:         transportErr.URL,
		}
	}

	return FailureDescriptor{}
}
