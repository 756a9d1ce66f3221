// Package gateway is the typed REST client for the e-commerce API gateway.
// Every call runs through the request pipeline composed at construction,
// which owns busy-state tracking and failure notifications. Clients here
// never format user-facing error text; that belongs to apierr.Classify.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/colonyops/storekeep/internal/gateway/apierr"
	"github.com/colonyops/storekeep/internal/gateway/pipeline"
)

// Endpoints holds the gateway route prefixes for each resource.
type Endpoints struct {
	Customers string
	Products  string
	Bills     string
	Health    string
}

// DefaultEndpoints matches the gateway's route table.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Customers: "/api/customers",
		Products:  "/api/products",
		Bills:     "/api/bills",
		Health:    "/actuator/health",
	}
}

// Client issues requests against the gateway through the composed
// pipeline. Construct once at startup and share.
type Client struct {
	baseURL   string
	endpoints Endpoints
	http      *http.Client
	run       pipeline.Runner
}

// New creates a gateway client. The runner is the composed middleware
// chain; pipeline.Chain() with no middleware yields a pass-through for
// tests.
func New(baseURL string, endpoints Endpoints, httpClient *http.Client, run pipeline.Runner) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		endpoints: endpoints,
		http:      httpClient,
		run:       run,
	}
}

// IsNotFound reports whether the error chain is a 404 from the gateway.
func IsNotFound(err error) bool {
	var httpErr *apierr.HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound
}

// IsConflict reports whether the error chain is a 409 or 400 from the
// gateway. The inventory service answers both for duplicate product ids.
func IsConflict(err error) bool {
	var httpErr *apierr.HTTPError
	if !errors.As(err, &httpErr) {
		return false
	}
	return httpErr.StatusCode == http.StatusConflict || httpErr.StatusCode == http.StatusBadRequest
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

// do runs one JSON request through the pipeline. body and out may be nil.
func (c *Client) do(ctx context.Context, method, url string, body any, out any) error {
	return c.run(ctx, url, func(ctx context.Context) error {
		return c.send(ctx, method, url, body, out)
	})
}

// send is the raw request/response cycle, free of pipeline concerns.
func (c *Client) send(ctx context.Context, method, url string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &apierr.TransportError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &apierr.TransportError{URL: url, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &apierr.HTTPError{
			StatusCode:    resp.StatusCode,
			StatusText:    http.StatusText(resp.StatusCode),
			ServerMessage: serverMessage(raw),
			URL:           url,
		}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, url, err)
	}
	return nil
}

// serverMessage pulls the human-readable message the Spring services put
// in their error bodies, when present.
func serverMessage(raw []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return ""
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	return envelope.Error
}
