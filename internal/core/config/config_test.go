package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8088", cfg.Gateway.URL)
	assert.Equal(t, "/api/customers", cfg.Gateway.Endpoints.Customers)
	assert.Equal(t, "tokyo-night", cfg.TUI.Theme)
	assert.Equal(t, 0, cfg.Notifications.ErrorTTLMillis, "errors persist by default")
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
gateway:
  url: http://gateway.internal:9000
notifications:
  error_ttl_ms: 10000
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://gateway.internal:9000", cfg.Gateway.URL)
	assert.Equal(t, "/api/bills", cfg.Gateway.Endpoints.Bills, "unset endpoints keep defaults")
	assert.Equal(t, "tokyo-night", cfg.TUI.Theme)
	assert.Equal(t, 10000, cfg.Notifications.ErrorTTLMillis)
}

func TestLoad_TTLRules(t *testing.T) {
	path := writeConfig(t, `
notifications:
  rules:
    - pattern: "**/api/bills/**"
      ttl_ms: 0
    - pattern: "**/api/products/**"
      ttl_ms: 15000
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Notifications.Rules, 2)
	assert.Equal(t, 0, cfg.Notifications.Rules[0].TTLMillis)
	assert.Equal(t, 15000, cfg.Notifications.Rules[1].TTLMillis)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "gateway: [this is not a mapping")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "relative gateway url",
			mutate:  func(c *Config) { c.Gateway.URL = "localhost:8088" },
			wantErr: "not an absolute URL",
		},
		{
			name:    "endpoint missing leading slash",
			mutate:  func(c *Config) { c.Gateway.Endpoints.Bills = "api/bills" },
			wantErr: "must start with /",
		},
		{
			name:    "unknown theme",
			mutate:  func(c *Config) { c.TUI.Theme = "solarized-disco" },
			wantErr: "not a known theme",
		},
		{
			name:    "negative error ttl",
			mutate:  func(c *Config) { c.Notifications.ErrorTTLMillis = -1 },
			wantErr: "must not be negative",
		},
		{
			name: "bad glob pattern",
			mutate: func(c *Config) {
				c.Notifications.Rules = []TTLRule{{Pattern: "[unclosed", TTLMillis: 0}}
			},
			wantErr: "not a valid glob",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
