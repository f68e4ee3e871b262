package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the renderer cannot work with.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	if c.Shadow.Resolution <= 0 {
		return fmt.Errorf("invalid shadow resolution %d", c.Shadow.Resolution)
	}
	if c.Shadow.Near <= 0 || c.Shadow.Far <= c.Shadow.Near {
		return fmt.Errorf("invalid shadow planes near=%v far=%v", c.Shadow.Near, c.Shadow.Far)
	}
	if c.Graphics.Near <= 0 || c.Graphics.Far <= c.Graphics.Near {
		return fmt.Errorf("invalid camera planes near=%v far=%v", c.Graphics.Near, c.Graphics.Far)
	}
	if c.Graphics.FOV <= 0 || c.Graphics.FOV >= 180 {
		return fmt.Errorf("invalid field of view %v", c.Graphics.FOV)
	}
	if c.Graphics.MSAA < 0 || c.Graphics.MSAA > 16 {
		return fmt.Errorf("invalid MSAA sample count %d", c.Graphics.MSAA)
	}
	if c.Shadow.Bias < 0 {
		return fmt.Errorf("negative shadow bias %v", c.Shadow.Bias)
	}
	if c.Camera.Radius < 0 || c.Camera.Height < 0 {
		return fmt.Errorf("invalid camera collider radius=%v height=%v", c.Camera.Radius, c.Camera.Height)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "CubeShadow")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "CubeShadow")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "cubeshadow")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "cubeshadow")
	}
}

// loadFromFile merges a YAML file over cfg. Unknown keys are errors so
// typos do not silently fall back to defaults. An empty file is valid.
func loadFromFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
