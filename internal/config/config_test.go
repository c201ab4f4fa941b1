package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fentz26/taskview/internal/theme"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Endpoint != DefaultEndpoint {
		t.Errorf("Expected default endpoint, got %s", cfg.Endpoint)
	}
	if cfg.PageSize != 6 || cfg.PageWindow != 5 {
		t.Errorf("Expected page size 6 and window 5, got %d and %d", cfg.PageSize, cfg.PageWindow)
	}
	if cfg.ThemeMode() != theme.Light {
		t.Errorf("Expected light theme by default, got %s", cfg.ThemeMode())
	}
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "endpoint: https://tasks.example.com/api/tasks\npage_size: 10\ntimeout: 3s\ntheme: dark\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Endpoint != "https://tasks.example.com/api/tasks" {
		t.Errorf("Unexpected endpoint %s", cfg.Endpoint)
	}
	if cfg.PageSize != 10 {
		t.Errorf("Expected page size 10, got %d", cfg.PageSize)
	}
	if cfg.PageWindow != 5 {
		t.Errorf("Expected default window 5, got %d", cfg.PageWindow)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("Expected 3s timeout, got %s", cfg.Timeout)
	}
	if cfg.ThemeMode() != theme.Dark {
		t.Errorf("Expected dark theme, got %s", cfg.ThemeMode())
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad yaml", "page_size: [", "parsing config file"},
		{"zero page size", "page_size: 0", "page_size"},
		{"relative endpoint", "endpoint: /api/tasks", "endpoint"},
		{"unknown theme", "theme: neon", "invalid theme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0o600); err != nil {
				t.Fatal(err)
			}
			_, err := LoadConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.PageSize = 4

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if got.PageSize != 4 {
		t.Errorf("Expected page size 4, got %d", got.PageSize)
	}
	if err := SaveConfig(path, nil); err == nil {
		t.Error("Expected error saving nil config")
	}
}
