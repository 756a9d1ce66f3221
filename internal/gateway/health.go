package gateway

import (
	"context"
	"errors"
	"net/http"

	"github.com/colonyops/storekeep/internal/gateway/apierr"
)

// Reachable probes the gateway's health endpoint. Any HTTP response, even
// an error status, proves the gateway answered; only a transport failure
// or a missing status means it is unreachable.
func (c *Client) Reachable(ctx context.Context) bool {
	err := c.do(ctx, http.MethodGet, c.url(c.endpoints.Health), nil, nil)
	if err == nil {
		return true
	}

	var transportErr *apierr.TransportError
	if errors.As(err, &transportErr) {
		return false
	}

	var httpErr *apierr.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode != 0
	}
	return false
}
