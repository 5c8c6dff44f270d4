package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/jsonc"
)

// Config holds application configuration.
type Config struct {
	APIURL         string `json:"apiURL"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
	LogFile        string `json:"logFile"`
	ConfirmRemove  *bool  `json:"confirmRemove"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	confirm := true
	return Config{
		APIURL:         "https://official-joke-api.appspot.com",
		TimeoutSeconds: 10,
		LogFile:        "",
		ConfirmRemove:  &confirm,
	}
}

// Timeout returns the request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ShouldConfirmRemove reports whether removing a joke asks first.
func (c Config) ShouldConfirmRemove() bool {
	return c.ConfirmRemove == nil || *c.ConfirmRemove
}

// Load reads config from the file at path. Comments and trailing commas
// are allowed. Creates the file with defaults if it doesn't exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Non-fatal: defaults still apply if the file can't be written
			_ = Save(path, &config)
			return &config, nil
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	// Apply defaults for missing fields
	defaults := DefaultConfig()
	if config.APIURL == "" {
		config.APIURL = defaults.APIURL
	}
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if config.ConfirmRemove == nil {
		config.ConfirmRemove = defaults.ConfirmRemove
	}

	return &config, nil
}

// Save writes config to the file at path.
// Creates the directory if it doesn't exist.
func Save(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Dir returns the config directory: ~/.config/jk
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "jk"), nil
}

// DefaultPath returns the default config path: ~/.config/jk/config.json
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DefaultLogPath returns the default log path: ~/.config/jk/jk.log
func DefaultLogPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "jk.log"), nil
}
