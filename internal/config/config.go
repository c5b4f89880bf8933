// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	History HistoryConfig `toml:"history"`
}

// ServerConfig holds the default registration target. Both fields seed the
// form and stay editable in the UI; Port is a string because the form
// carries it verbatim until submit-time validation.
type ServerConfig struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
}

// HistoryConfig holds registration-history settings.
type HistoryConfig struct {
	Limit int `toml:"limit"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: "3000",
		},
		History: HistoryConfig{
			Limit: 50,
		},
	}
}

// Load reads configuration from a TOML file and applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Load from file if it exists
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, err
			}
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("REGWIZ_HOST"); v != "" {
		cfg.Server.Host = v
	}

	if v := os.Getenv("REGWIZ_PORT"); v != "" {
		cfg.Server.Port = v
	}
}

// DataDir returns the path to the regwiz data directory (~/.regwiz).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".regwiz"), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
