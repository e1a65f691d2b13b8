package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Defaults match the backend's own environment contract.
const (
	DefaultHost       = "127.0.0.1"
	DefaultPort       = 5000
	DefaultEntrypoint = "app.py"
)

// Config represents the medialaunch configuration.
type Config struct {
	Host        string        `yaml:"host,omitempty"`
	Port        int           `yaml:"port,omitempty"`
	Runtime     string        `yaml:"runtime,omitempty"`
	Entrypoint  string        `yaml:"entrypoint,omitempty"`
	ProjectRoot string        `yaml:"project_root,omitempty"`
	FFmpegDir   string        `yaml:"ffmpeg_dir,omitempty"`
	Browser     *BrowserEntry `yaml:"browser,omitempty"`

	// configDir is the directory containing the config file.
	// Used for resolving relative paths.
	configDir string
}

// BrowserEntry configures the browser auto-open behavior.
type BrowserEntry struct {
	Disabled bool `yaml:"disabled,omitempty"`
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	path = ExpandPath(path)

	// Get absolute path to track config directory
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	// #nosec G304 -- Config path comes from CLI flag
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.configDir = filepath.Dir(absPath)
	cfg.resolvePaths()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns a Config with the stock endpoint and project layout.
func Default() *Config {
	return &Config{
		Host:       DefaultHost,
		Port:       DefaultPort,
		Entrypoint: DefaultEntrypoint,
	}
}

// ApplyDefaults fills in default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Entrypoint == "" {
		c.Entrypoint = DefaultEntrypoint
	}
}

// ApplyEnv overlays environment variables onto the config. The short names
// (HOST, PORT, FFMPEG_LOCATION) are the ones the backend itself reads, so a
// user who configured the backend through them gets the same endpoint here.
// MEDIALAUNCH_* variants win over the short names.
func (c *Config) ApplyEnv() error {
	if v := firstEnv("MEDIALAUNCH_HOST", "HOST"); v != "" {
		c.Host = v
	}
	if v := firstEnv("MEDIALAUNCH_PORT", "PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid port in environment: %q", v)
		}
		c.Port = port
	}
	if v := os.Getenv("MEDIALAUNCH_RUNTIME"); v != "" {
		c.Runtime = ExpandPath(v)
	}
	if v := os.Getenv("FFMPEG_LOCATION"); v != "" {
		c.FFmpegDir = ExpandPath(v)
	}
	return nil
}

// ConfigDir returns the directory containing the config file, or empty
// when the config did not come from a file.
func (c *Config) ConfigDir() string {
	return c.configDir
}

// BrowserEnabled reports whether the browser should be auto-opened.
func (c *Config) BrowserEnabled() bool {
	return c.Browser == nil || !c.Browser.Disabled
}

// resolvePaths converts relative paths in the config to absolute paths
// relative to the config directory.
func (c *Config) resolvePaths() {
	if c.Runtime != "" {
		c.Runtime = c.resolvePath(c.Runtime)
	}
	if c.Entrypoint != "" {
		c.Entrypoint = c.resolvePath(c.Entrypoint)
	}
	if c.ProjectRoot != "" {
		c.ProjectRoot = c.resolvePath(c.ProjectRoot)
	}
	if c.FFmpegDir != "" {
		c.FFmpegDir = c.resolvePath(c.FFmpegDir)
	}
}

// resolvePath resolves a path relative to the config directory.
// - Absolute paths are unchanged
// - Paths starting with ~ are home-relative (expanded)
// - Everything else is config-relative
func (c *Config) resolvePath(path string) string {
	path = ExpandPath(path)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.configDir, path)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	return nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
