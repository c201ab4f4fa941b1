// Package config loads viewer settings from ~/.taskview/config.yaml.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/fentz26/taskview/internal/theme"
	"gopkg.in/yaml.v3"
)

// DefaultEndpoint is the task collection URL used when none is configured.
const DefaultEndpoint = "http://localhost:3000/api/tasks"

// Config holds viewer configuration.
type Config struct {
	// Endpoint is the URL of the task collection.
	Endpoint string `yaml:"endpoint"`
	// PageSize is the number of tasks per page.
	PageSize int `yaml:"page_size"`
	// PageWindow caps the number of page buttons shown.
	PageWindow int `yaml:"page_window"`
	// Timeout bounds the retrieval request.
	Timeout time.Duration `yaml:"timeout"`
	// Theme is the initial display mode: light or dark.
	Theme string `yaml:"theme"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:   DefaultEndpoint,
		PageSize:   6,
		PageWindow: 5,
		Timeout:    10 * time.Second,
		Theme:      "light",
	}
}

// LoadConfig loads configuration from a YAML file. A missing file yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// DefaultPath returns ~/.taskview/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}
	return filepath.Join(home, ".taskview", "config.yaml"), nil
}

// LoadConfigFromHome loads configuration from ~/.taskview/config.yaml.
func LoadConfigFromHome() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}

// SaveConfig writes cfg to path, creating parent directories if needed.
func SaveConfig(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("endpoint %q must be an absolute http(s) URL", c.Endpoint)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("page_size must be at least 1")
	}
	if c.PageWindow < 1 {
		return fmt.Errorf("page_window must be at least 1")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if _, err := theme.ParseMode(c.Theme); err != nil {
		return err
	}
	return nil
}

// ThemeMode returns the configured initial theme.
func (c *Config) ThemeMode() theme.Mode {
	mode, _ := theme.ParseMode(c.Theme)
	return mode
}
