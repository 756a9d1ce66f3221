package gateway

import (
	"context"
	"fmt"
	"net/http"
)

// ListCustomers returns all customers, unwrapped from the Spring Data
// REST paged envelope.
func (c *Client) ListCustomers(ctx context.Context) ([]Customer, error) {
	var page pagedModel[Customer]
	if err := c.do(ctx, http.MethodGet, c.url(c.endpoints.Customers), nil, &page); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return page.content(), nil
}

// Customer returns a single customer by id.
func (c *Client) Customer(ctx context.Context, id int64) (Customer, error) {
	var customer Customer
	url := fmt.Sprintf("%s/%d", c.url(c.endpoints.Customers), id)
	if err := c.do(ctx, http.MethodGet, url, nil, &customer); err != nil {
		return Customer{}, fmt.Errorf("get customer %d: %w", id, err)
	}
	return customer, nil
}

// CreateCustomer creates a customer and returns the server-assigned
// entity.
func (c *Client) CreateCustomer(ctx context.Context, input CustomerInput) (Customer, error) {
	var customer Customer
	if err := c.do(ctx, http.MethodPost, c.url(c.endpoints.Customers), input, &customer); err != nil {
		return Customer{}, fmt.Errorf("create customer: %w", err)
	}
	return customer, nil
}

// UpdateCustomer replaces the customer with the given id.
func (c *Client) UpdateCustomer(ctx context.Context, id int64, input CustomerInput) (Customer, error) {
	var customer Customer
	url := fmt.Sprintf("%s/%d", c.url(c.endpoints.Customers), id)
	if err := c.do(ctx, http.MethodPut, url, input, &customer); err != nil {
		return Customer{}, fmt.Errorf("update customer %d: %w", id, err)
	}
	return customer, nil
}

// DeleteCustomer removes the customer with the given id.
func (c *Client) DeleteCustomer(ctx context.Context, id int64) error {
	url := fmt.Sprintf("%s/%d", c.url(c.endpoints.Customers), id)
	if err := c.do(ctx, http.MethodDelete, url, nil, nil); err != nil {
		return fmt.Errorf("delete customer %d: %w", id, err)
	}
	return nil
}
