// Package config handles configuration loading and validation for
// storekeep.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Gateway       GatewayConfig `yaml:"gateway"`
	TUI           TUIConfig     `yaml:"tui"`
	Notifications NotifyConfig  `yaml:"notifications"`
}

// GatewayConfig points the client at the API gateway.
type GatewayConfig struct {
	URL       string    `yaml:"url"`
	Endpoints Endpoints `yaml:"endpoints"`
}

// Endpoints overrides the gateway route prefixes. Empty fields keep the
// defaults.
type Endpoints struct {
	Customers string `yaml:"customers"`
	Products  string `yaml:"products"`
	Bills     string `yaml:"bills"`
	Health    string `yaml:"health"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// NotifyConfig tunes notification visibility windows. All values are in
// milliseconds to match the store contract; zero means persistent.
type NotifyConfig struct {
	// ErrorTTLMillis is the default window for error notifications.
	ErrorTTLMillis int `yaml:"error_ttl_ms"`
	// Rules override the window for requests whose URL matches a
	// doublestar glob. First match wins.
	Rules []TTLRule `yaml:"rules"`
}

// TTLRule pins or shortens error notifications for matching request URLs.
type TTLRule struct {
	Pattern   string `yaml:"pattern"`
	TTLMillis int    `yaml:"ttl_ms"`
}

// DefaultConfig returns a Config with sensible defaults: a local gateway,
// persistent error notifications, and connectivity failures pinned.
func DefaultConfig() Config {
	return Config{
		Gateway: GatewayConfig{
			URL: "http://localhost:8088",
			Endpoints: Endpoints{
				Customers: "/api/customers",
				Products:  "/api/products",
				Bills:     "/api/bills",
				Health:    "/actuator/health",
			},
		},
		TUI: TUIConfig{
			Theme: "tokyo-night",
		},
		Notifications: NotifyConfig{
			ErrorTTLMillis: 0,
		},
	}
}

// Load reads configuration from the given path. If the path is empty or
// the file doesn't exist, defaults are returned.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills zero values a partial config file left unset.
func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.Gateway.URL == "" {
		c.Gateway.URL = def.Gateway.URL
	}
	if c.Gateway.Endpoints.Customers == "" {
		c.Gateway.Endpoints.Customers = def.Gateway.Endpoints.Customers
	}
	if c.Gateway.Endpoints.Products == "" {
		c.Gateway.Endpoints.Products = def.Gateway.Endpoints.Products
	}
	if c.Gateway.Endpoints.Bills == "" {
		c.Gateway.Endpoints.Bills = def.Gateway.Endpoints.Bills
	}
	if c.Gateway.Endpoints.Health == "" {
		c.Gateway.Endpoints.Health = def.Gateway.Endpoints.Health
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = def.TUI.Theme
	}
}
