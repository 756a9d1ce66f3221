package commands

import (
	"os"
	"path/filepath"
)

// Flags holds the global flag values shared by every command. The app
// itself is wired in main's Before hook and injected by pointer.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	GatewayURL string
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "storekeep", "config.yaml")
}
