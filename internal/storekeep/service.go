package storekeep

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/colonyops/storekeep/internal/gateway"
	"github.com/colonyops/storekeep/pkg/randid"
)

// Mutation helpers shared by the CLI commands and the TUI. Success
// notifications are published here - opt-in, per call site - while failure
// notifications already come from the pipeline; emitting them in both
// places would double-report.

const maxProductIDLen = 50

var productIDStrip = regexp.MustCompile(`[^a-z0-9-]`)

// CreateCustomer creates a customer and announces the result.
func (a *App) CreateCustomer(ctx context.Context, input gateway.CustomerInput) (gateway.Customer, error) {
	created, err := a.Gateway.CreateCustomer(ctx, input)
	if err != nil {
		return gateway.Customer{}, err
	}
	a.Notifications.Success("Customer created successfully")
	return created, nil
}

// UpdateCustomer updates a customer and announces the result.
func (a *App) UpdateCustomer(ctx context.Context, id int64, input gateway.CustomerInput) (gateway.Customer, error) {
	updated, err := a.Gateway.UpdateCustomer(ctx, id, input)
	if err != nil {
		return gateway.Customer{}, err
	}
	a.Notifications.Success("Customer updated successfully")
	return updated, nil
}

// DeleteCustomer deletes a customer and announces the result.
func (a *App) DeleteCustomer(ctx context.Context, id int64) error {
	if err := a.Gateway.DeleteCustomer(ctx, id); err != nil {
		return err
	}
	a.Notifications.Success("Customer deleted successfully")
	return nil
}

// CreateProduct creates a product, deriving an id from the name when the
// input has none. On an id conflict the create is retried exactly once
// with a regenerated random id; any further failure is the caller's
// problem. The retry is a new wrapped call, so the pipeline sees two
// operations and the first failure still surfaces as a notification.
func (a *App) CreateProduct(ctx context.Context, input gateway.ProductInput) (gateway.Product, error) {
	if input.ID == "" {
		input.ID = ProductIDFromName(input.Name)
	}

	created, err := a.Gateway.CreateProduct(ctx, input)
	if err != nil {
		if !gateway.IsConflict(err) {
			return gateway.Product{}, err
		}

		retry := input
		retry.ID = generatedProductID()
		log.Debug().Str("cmp", "storekeep").Str("id", retry.ID).Msg("product id conflict, retrying with generated id")

		created, err = a.Gateway.CreateProduct(ctx, retry)
		if err != nil {
			return gateway.Product{}, fmt.Errorf("retry with regenerated id: %w", err)
		}
	}

	a.Notifications.Success("Product created successfully")
	return created, nil
}

// UpdateProduct updates a product and announces the result.
func (a *App) UpdateProduct(ctx context.Context, id string, input gateway.ProductInput) (gateway.Product, error) {
	input.ID = id
	updated, err := a.Gateway.UpdateProduct(ctx, id, input)
	if err != nil {
		return gateway.Product{}, err
	}
	a.Notifications.Success("Product updated successfully")
	return updated, nil
}

// DeleteProduct deletes a product and announces the result.
func (a *App) DeleteProduct(ctx context.Context, id string) error {
	if err := a.Gateway.DeleteProduct(ctx, id); err != nil {
		return err
	}
	a.Notifications.Success("Product deleted successfully")
	return nil
}

// GenerateBills triggers bulk bill generation and announces the result.
func (a *App) GenerateBills(ctx context.Context) error {
	if err := a.Gateway.GenerateBills(ctx); err != nil {
		return err
	}
	a.Notifications.Success("Bills generated for all customers")
	return nil
}

// ProductIDFromName derives a product id from a display name: lowercase,
// spaces to hyphens, anything outside [a-z0-9-] removed, capped at 50
// characters. An empty result falls back to a generated id.
func ProductIDFromName(name string) string {
	id := strings.ToLower(strings.TrimSpace(name))
	id = strings.Join(strings.Fields(id), "-")
	id = productIDStrip.ReplaceAllString(id, "")
	if len(id) > maxProductIDLen {
		id = id[:maxProductIDLen]
	}
	if id == "" {
		return generatedProductID()
	}
	return id
}

func generatedProductID() string {
	return "product-" + randid.Generate(8)
}
