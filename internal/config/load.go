package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working and config dirs.
const FileName = "config.yaml"

// ErrInvalid is wrapped by Load when a loaded value is out of range.
var ErrInvalid = errors.New("invalid config")

// Load loads configuration with priority: defaults < file < flags.
// Relative asset and layout paths set in a config file are taken relative
// to the file.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		defaults := cfg.Scene
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
		resolvePaths(cfg, defaults, filepath.Dir(configPath))
	}

	// Flags are relative to the working directory, so they go on last.
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the renderer cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.Graphics.Width <= 0 || c.Graphics.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Graphics.Width, c.Graphics.Height)
	case c.Graphics.FOV <= 0 || c.Graphics.FOV >= 180:
		return fmt.Errorf("%w: fov %g", ErrInvalid, c.Graphics.FOV)
	case c.Graphics.Near <= 0 || c.Graphics.Far <= c.Graphics.Near:
		return fmt.Errorf("%w: clip planes %g..%g", ErrInvalid, c.Graphics.Near, c.Graphics.Far)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: volume %g", ErrInvalid, c.Audio.Volume)
	case c.Controls.PadDeadZone < 0 || c.Controls.PadDeadZone >= 1:
		return fmt.Errorf("%w: pad dead zone %g", ErrInvalid, c.Controls.PadDeadZone)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		filepath.Join(".", FileName),
		filepath.Join(ConfigDir(), FileName),
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
		return filepath.Join(home, "Library", "Application Support", "Campfire")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Campfire")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "campfire")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "campfire")
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

// resolvePaths rebases the scene paths the file set; defaults stay
// relative to the working directory.
func resolvePaths(cfg *Config, defaults SceneConfig, base string) {
	if cfg.Scene.Assets != defaults.Assets {
		cfg.Scene.Assets = resolve(base, cfg.Scene.Assets)
	}
	if cfg.Scene.Layout != defaults.Layout {
		cfg.Scene.Layout = resolve(base, cfg.Scene.Layout)
	}
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
