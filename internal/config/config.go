package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// CurrentVersion is written into new config files.
const CurrentVersion = "1"

// ActorEnv overrides Config.Actor when set.
const ActorEnv = "RFREF_ACTOR"

// Config represents the flat rfref configuration
type Config struct {
	Version      string `json:"version"`
	RejectSpaces bool   `json:"reject_spaces,omitempty"` // treat spaces as invalid characters
	DBPath       string `json:"db_path,omitempty"`       // ledger database; default ~/.rfref/rfref.db
	Actor        string `json:"actor,omitempty"`         // recorded as issued_by
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{Version: CurrentVersion}
}

// LoadConfig reads .rfref/config.json from the specified directory.
// Resolution order: cwd only (no home fallback).
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".rfref", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault is LoadConfig falling back to Default when the file does not
// exist, with the environment override applied.
func LoadOrDefault(dir string) (*Config, error) {
	cfg, err := LoadConfig(dir)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = Default(), nil
	}
	if err != nil {
		return nil, err
	}

	if actor := os.Getenv(ActorEnv); actor != "" {
		cfg.Actor = actor
	}
	return cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	rfrefDir := filepath.Join(dir, ".rfref")
	if err := os.MkdirAll(rfrefDir, 0755); err != nil {
		return fmt.Errorf("failed to create .rfref dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(rfrefDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// ResolveDBPath returns cfg.DBPath, or DefaultDBPath when unset.
func (c *Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, nil
	}
	return DefaultDBPath()
}

// DefaultDBPath returns the default ledger location.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".rfref", "rfref.db"), nil
}
