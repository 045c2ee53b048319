// Package config handles loading and saving jspgantt configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/jspgantt/config.yaml
//
// Every recognized option is enumerated here with its default; command-line
// flags override whatever the file sets.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// PaletteConfig controls job coloring.
type PaletteConfig struct {
	Seed *uint64 `yaml:"seed,omitempty"` // nil = fresh random colors per render
}

// UIConfig holds interactive display preferences.
type UIConfig struct {
	Mouse    bool `yaml:"mouse"`               // report pointer motion for hover
	ShowHelp bool `yaml:"show_help,omitempty"` // start with the full key help visible
}

// ExportConfig holds snapshot export defaults.
type ExportConfig struct {
	DefaultFormat string `yaml:"default_format,omitempty"` // svg, png or html; used when a path has no extension
	Dir           string `yaml:"dir,omitempty"`            // base directory for relative export paths
}

// Config is the top-level configuration for jspgantt.
type Config struct {
	Palette PaletteConfig `yaml:"palette,omitempty"`
	UI      UIConfig      `yaml:"ui,omitempty"`
	Export  ExportConfig  `yaml:"export,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		UI: UIConfig{
			Mouse: true,
		},
		Export: ExportConfig{
			DefaultFormat: "svg",
		},
	}
}

// ConfigDir returns the XDG config directory for jspgantt.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "jspgantt")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "jspgantt")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	cfg.Export.Dir = expandHome(cfg.Export.Dir)
	return cfg, nil
}

// Validate rejects option values the exporters cannot honor.
func (c Config) Validate() error {
	switch strings.ToLower(c.Export.DefaultFormat) {
	case "", "svg", "png", "html":
		return nil
	default:
		return fmt.Errorf("invalid export.default_format %q (want svg, png or html)", c.Export.DefaultFormat)
	}
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ResolveExportPath places a relative export path under Export.Dir.
func (c Config) ResolveExportPath(path string) string {
	if c.Export.Dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Export.Dir, path)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
