// Package config provides configuration parsing for slowfetch.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"gitlab.com/tinyland/lab/slowfetch/display/color"
	"gitlab.com/tinyland/lab/slowfetch/display/render"
)

const (
	// defaultCacheTTL matches how long a cached font verdict stays
	// fresh when general.cache_ttl is unset.
	defaultCacheTTL = 7 * 24 * time.Hour

	// defaultRefresh paces collector reruns in live mode.
	defaultRefresh = 2 * time.Second

	// minRefresh is the floor under live.refresh. Anything faster
	// re-runs the same probes before their inputs can change.
	minRefresh = time.Second
)

// Config represents the slowfetch configuration.
type Config struct {
	// General holds cache settings shared by every mode.
	General GeneralConfig `yaml:"general"`

	// Colors holds the banner color scheme.
	Colors ColorsConfig `yaml:"colors"`

	// Art holds ASCII art pane settings.
	Art ArtConfig `yaml:"art"`

	// Image holds image pane settings.
	Image ImageConfig `yaml:"image"`

	// Fonts holds terminal font probe settings.
	Fonts FontsConfig `yaml:"fonts"`

	// Sections controls which banner sections are collected.
	Sections SectionsConfig `yaml:"sections"`

	// Live holds live mode settings.
	Live LiveConfig `yaml:"live"`
}

// GeneralConfig holds cache settings shared by every mode.
type GeneralConfig struct {
	// CacheDir is the directory for cached probe results.
	CacheDir string `yaml:"cache_dir"`
	// CacheTTL is a duration string (e.g. "168h") for how long a cached font verdict remains valid.
	CacheTTL string `yaml:"cache_ttl"`
}

// ColorsConfig names the color for each banner element. Values accept
// ANSI color names ("cyan", "bright_red"), 256-color codes ("208"),
// hex colors ("#87d7ff"), and "none" for unstyled output.
type ColorsConfig struct {
	// Border colors the box borders.
	Border string `yaml:"border"`
	// Title colors the section titles.
	Title string `yaml:"title"`
	// Key colors the field labels.
	Key string `yaml:"key"`
	// Value colors the field values.
	Value string `yaml:"value"`
	// Bar colors the filled portion of usage bars.
	Bar string `yaml:"bar"`
	// Accents color the {1}-{9} placeholders in art files (at most nine entries).
	Accents []string `yaml:"accents"`
}

// ArtConfig holds ASCII art pane settings.
type ArtConfig struct {
	// OS forces the art for a specific distribution (e.g. "arch"); empty detects from /etc/os-release.
	OS string `yaml:"os"`
	// Path loads art from a file instead of the built-in set.
	Path string `yaml:"path"`
	// Disabled drops the art pane entirely.
	Disabled bool `yaml:"disabled"`
}

// ImageConfig holds image pane settings. An enabled image pane
// replaces the ASCII art pane.
type ImageConfig struct {
	// Enabled controls whether the image pane is rendered.
	Enabled bool `yaml:"enabled"`
	// Path is the image file to render.
	Path string `yaml:"path"`
	// Protocol selects the terminal image protocol: "auto", "kitty", or "unicode".
	Protocol string `yaml:"protocol"`
}

// FontsConfig holds terminal font probe settings.
type FontsConfig struct {
	// Nerd controls Nerd Font glyphs: "auto" probes the terminal font, "always" and "never" skip the probe.
	Nerd string `yaml:"nerd"`
}

// SectionsConfig controls which banner sections are collected.
type SectionsConfig struct {
	// Core covers OS, host, kernel, uptime, and terminal.
	Core bool `yaml:"core"`
	// Hardware covers CPU, GPU, memory, and disk.
	Hardware bool `yaml:"hardware"`
	// Userspace covers shell, desktop, packages, and locale.
	Userspace bool `yaml:"userspace"`
}

// LiveConfig holds live mode settings.
type LiveConfig struct {
	// Refresh is a duration string (e.g. "2s") between collector reruns; values under one second are raised to one second.
	Refresh string `yaml:"refresh"`
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	spec := color.DefaultPaletteSpec()

	return &Config{
		General: GeneralConfig{
			CacheDir: filepath.Join(homeDir, ".cache", "slowfetch"),
			CacheTTL: "168h",
		},
		Colors: ColorsConfig{
			Border:  spec.Border,
			Title:   spec.Title,
			Key:     spec.Key,
			Value:   spec.Value,
			Bar:     spec.Bar,
			Accents: spec.Accents[:],
		},
		Image: ImageConfig{
			Protocol: "auto",
		},
		Fonts: FontsConfig{
			Nerd: "auto",
		},
		Sections: SectionsConfig{
			Core:      true,
			Hardware:  true,
			Userspace: true,
		},
		Live: LiveConfig{
			Refresh: "2s",
		},
	}
}

// DefaultConfigPath returns the standard config file location. The
// SLOWFETCH_CONFIG environment variable overrides it.
func DefaultConfigPath() string {
	if p := os.Getenv("SLOWFETCH_CONFIG"); p != "" {
		return p
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "slowfetch", "config.yaml")
}

// LoadConfig loads configuration from a YAML file, merging with
// defaults. A missing file or an empty path yields the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration for required fields and logical consistency.
func (c *Config) Validate() error {
	// General validation
	if c.General.CacheDir == "" {
		return fmt.Errorf("general.cache_dir is required")
	}
	if c.General.CacheTTL != "" {
		if _, err := time.ParseDuration(c.General.CacheTTL); err != nil {
			return fmt.Errorf("general.cache_ttl: %w", err)
		}
	}

	// Colors validation
	colorFields := []struct {
		name  string
		value string
	}{
		{"colors.border", c.Colors.Border},
		{"colors.title", c.Colors.Title},
		{"colors.key", c.Colors.Key},
		{"colors.value", c.Colors.Value},
		{"colors.bar", c.Colors.Bar},
	}
	for _, f := range colorFields {
		if _, err := color.ParseStyle(f.value); err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
	}
	if len(c.Colors.Accents) > 9 {
		return fmt.Errorf("colors.accents supports a maximum of 9 entries, got %d", len(c.Colors.Accents))
	}
	for i, accent := range c.Colors.Accents {
		if _, err := color.ParseStyle(accent); err != nil {
			return fmt.Errorf("colors.accents[%d]: %w", i, err)
		}
	}

	// Image validation
	if c.Image.Enabled && c.Image.Path == "" {
		return fmt.Errorf("image.path is required when image.enabled is true")
	}
	if _, err := render.ParseProtocol(c.Image.Protocol); err != nil {
		return fmt.Errorf("image.protocol: %w", err)
	}

	// Fonts validation
	switch c.Fonts.Nerd {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("fonts.nerd must be 'auto', 'always', or 'never', got %q", c.Fonts.Nerd)
	}

	// Live validation
	if c.Live.Refresh != "" {
		d, err := time.ParseDuration(c.Live.Refresh)
		if err != nil {
			return fmt.Errorf("live.refresh: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("live.refresh must be positive, got %s", c.Live.Refresh)
		}
	}

	return nil
}

// Spec converts the configured colors into a palette spec. Accent
// positions beyond the configured list keep the stock scheme.
func (c *ColorsConfig) Spec() color.PaletteSpec {
	spec := color.DefaultPaletteSpec()
	spec.Border = c.Border
	spec.Title = c.Title
	spec.Key = c.Key
	spec.Value = c.Value
	spec.Bar = c.Bar
	for i, accent := range c.Accents {
		if i >= len(spec.Accents) {
			break
		}
		spec.Accents[i] = accent
	}
	return spec
}

// ProbeTTL returns the parsed general.cache_ttl, falling back to
// seven days when unset.
func (c *Config) ProbeTTL() time.Duration {
	d, err := time.ParseDuration(c.General.CacheTTL)
	if err != nil || d <= 0 {
		return defaultCacheTTL
	}
	return d
}

// RefreshInterval returns the parsed live.refresh, clamped to the
// one-second floor, falling back to two seconds when unset.
func (c *Config) RefreshInterval() time.Duration {
	d, err := time.ParseDuration(c.Live.Refresh)
	if err != nil || d <= 0 {
		return defaultRefresh
	}
	if d < minRefresh {
		return minRefresh
	}
	return d
}

// SaveConfig saves configuration to a YAML file.
func SaveConfig(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
