package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ListBills returns all bills. The billing service normally answers with a
// bare array, but some gateway configurations wrap it, so both shapes are
// accepted.
func (c *Client) ListBills(ctx context.Context) ([]Bill, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, c.url(c.endpoints.Bills), nil, &raw); err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	return decodeBillList(raw)
}

// Bill returns a single bill with its customer and product items joined in
// by the billing service.
func (c *Client) Bill(ctx context.Context, id int64) (Bill, error) {
	var bill Bill
	url := fmt.Sprintf("%s/%d", c.url(c.endpoints.Bills), id)
	if err := c.do(ctx, http.MethodGet, url, nil, &bill); err != nil {
		return Bill{}, fmt.Errorf("get bill %d: %w", id, err)
	}
	return bill, nil
}

// GenerateBills asks the billing service to create bills for every
// existing customer across all existing products.
func (c *Client) GenerateBills(ctx context.Context) error {
	url := c.url(c.endpoints.Bills) + "/generate"
	if err := c.do(ctx, http.MethodPost, url, struct{}{}, nil); err != nil {
		return fmt.Errorf("generate bills: %w", err)
	}
	return nil
}

// decodeBillList accepts a bare array or any of the known wrapper shapes.
func decodeBillList(raw json.RawMessage) ([]Bill, error) {
	if len(raw) == 0 {
		return []Bill{}, nil
	}

	var bills []Bill
	if err := json.Unmarshal(raw, &bills); err == nil {
		return bills, nil
	}

	var wrapped struct {
		Embedded struct {
			Bills []Bill `json:"bills"`
		} `json:"_embedded"`
		Content []Bill `json:"content"`
		Data    []Bill `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode bill list: %w", err)
	}

	switch {
	case wrapped.Embedded.Bills != nil:
		return wrapped.Embedded.Bills, nil
	case wrapped.Content != nil:
		return wrapped.Content, nil
	case wrapped.Data != nil:
		return wrapped.Data, nil
	default:
		return []Bill{}, nil
	}
}
