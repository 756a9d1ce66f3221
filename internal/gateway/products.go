package gateway

import (
	"context"
	"fmt"
	"net/http"
)

// ListProducts returns all products, unwrapped from the paged envelope.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var page pagedModel[Product]
	if err := c.do(ctx, http.MethodGet, c.url(c.endpoints.Products), nil, &page); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return page.content(), nil
}

// Product returns a single product by id.
func (c *Client) Product(ctx context.Context, id string) (Product, error) {
	var product Product
	url := c.url(c.endpoints.Products) + "/" + id
	if err := c.do(ctx, http.MethodGet, url, nil, &product); err != nil {
		return Product{}, fmt.Errorf("get product %s: %w", id, err)
	}
	return product, nil
}

// CreateProduct creates a product. The input id must be set; conflict
// retry with a regenerated id is a call-site decision, not a client one.
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodPost, c.url(c.endpoints.Products), input, &product); err != nil {
		return Product{}, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// UpdateProduct replaces the product with the given id.
func (c *Client) UpdateProduct(ctx context.Context, id string, input ProductInput) (Product, error) {
	var product Product
	url := c.url(c.endpoints.Products) + "/" + id
	if err := c.do(ctx, http.MethodPut, url, input, &product); err != nil {
		return Product{}, fmt.Errorf("update product %s: %w", id, err)
	}
	return product, nil
}

// DeleteProduct removes the product with the given id.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	url := c.url(c.endpoints.Products) + "/" + id
	if err := c.do(ctx, http.MethodDelete, url, nil, nil); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	return nil
}
