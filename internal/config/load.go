package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./castleview.yaml",
		UserConfigPath(),
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
		return filepath.Join(home, "Library", "Application Support", "CastleView")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "CastleView")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "castleview")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "castleview")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate rejects settings the renderer cannot start with.
func (c *Config) Validate() error {
	switch c.Window.Backend {
	case BackendImGui, BackendSDL:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalid, c.Window.Backend)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Render.ShadowResolution <= 0 {
		return fmt.Errorf("%w: shadow resolution %d", ErrInvalid, c.Render.ShadowResolution)
	}
	if c.Render.ShadowNear <= 0 || c.Render.ShadowFar <= c.Render.ShadowNear {
		return fmt.Errorf("%w: shadow range [%g, %g]", ErrInvalid, c.Render.ShadowNear, c.Render.ShadowFar)
	}
	if c.Render.Near <= 0 || c.Render.Far <= c.Render.Near {
		return fmt.Errorf("%w: view range [%g, %g]", ErrInvalid, c.Render.Near, c.Render.Far)
	}

	seen := make(map[string]bool, len(c.Scene.Objects))
	for i, o := range c.Scene.Objects {
		if o.Name == "" {
			return fmt.Errorf("%w: object %d has no name", ErrInvalid, i)
		}
		if seen[o.Name] {
			return fmt.Errorf("%w: duplicate object %q", ErrInvalid, o.Name)
		}
		seen[o.Name] = true
		if o.Model == "" {
			return fmt.Errorf("%w: object %q has no model", ErrInvalid, o.Name)
		}
		if o.Scale <= 0 {
			return fmt.Errorf("%w: object %q scale %g", ErrInvalid, o.Name, o.Scale)
		}
	}
	if c.Scene.Animated != "" && !seen[c.Scene.Animated] {
		return fmt.Errorf("%w: animated object %q not in scene", ErrInvalid, c.Scene.Animated)
	}

	p := c.Scene.Path
	if p.Step <= 0 || p.ArcSteps <= 0 || p.Radius <= 0 {
		return fmt.Errorf("%w: path step %d arc %g radius %g", ErrInvalid, p.Step, p.ArcSteps, p.Radius)
	}
	for i := 1; i < len(p.Limits); i++ {
		if p.Limits[i] <= p.Limits[i-1] {
			return fmt.Errorf("%w: path limits %v must increase", ErrInvalid, p.Limits)
		}
	}
	return nil
}
