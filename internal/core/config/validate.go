package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/colonyops/storekeep/internal/core/styles"
)

// Validate checks the configuration for values that would misbehave at
// runtime: a gateway URL that won't parse, an unknown theme, negative
// TTLs, or glob patterns doublestar rejects.
func (c *Config) Validate() error {
	var errs []string

	parsed, err := url.Parse(c.Gateway.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		errs = append(errs, fmt.Sprintf("gateway.url %q is not an absolute URL", c.Gateway.URL))
	}

	for _, endpoint := range []struct {
		name  string
		value string
	}{
		{"customers", c.Gateway.Endpoints.Customers},
		{"products", c.Gateway.Endpoints.Products},
		{"bills", c.Gateway.Endpoints.Bills},
		{"health", c.Gateway.Endpoints.Health},
	} {
		if !strings.HasPrefix(endpoint.value, "/") {
			errs = append(errs, fmt.Sprintf("gateway.endpoints.%s %q must start with /", endpoint.name, endpoint.value))
		}
	}

	if _, ok := styles.GetPalette(c.TUI.Theme); !ok {
		errs = append(errs, fmt.Sprintf("tui.theme %q is not a known theme (available: %s)",
			c.TUI.Theme, strings.Join(styles.ThemeNames(), ", ")))
	}

	if c.Notifications.ErrorTTLMillis < 0 {
		errs = append(errs, "notifications.error_ttl_ms must not be negative")
	}

	for i, rule := range c.Notifications.Rules {
		if rule.TTLMillis < 0 {
			errs = append(errs, fmt.Sprintf("notifications.rules[%d].ttl_ms must not be negative", i))
		}
		if !doublestar.ValidatePattern(rule.Pattern) {
			errs = append(errs, fmt.Sprintf("notifications.rules[%d].pattern %q is not a valid glob", i, rule.Pattern))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
