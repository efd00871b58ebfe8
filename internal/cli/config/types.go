// Package config provides configuration management for the waterdash CLI.
//
// Configuration is layered with koanf: defaults, then waterdash.yaml, then
// WATERDASH_* environment variables, then explicitly set flags.
package config

import "github.com/leapstack-labs/waterdash/internal/dataset"

// SourceConfig is an alias for the dataset source configuration.
// This allows CLI code to use config.SourceConfig without importing dataset.
type SourceConfig = dataset.SourceConfig

// UIConfig holds configuration for the dashboard server.
type UIConfig struct {
	Port          int    `koanf:"port"`
	AutoOpen      bool   `koanf:"auto_open"`
	Watch         bool   `koanf:"watch"`
	Dev           bool   `koanf:"dev"`
	SessionSecret string `koanf:"session_secret"`
}

// DefaultUIConfig returns a UIConfig with default values.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Port:     DefaultUIPort,
		AutoOpen: true,
		Watch:    true,
	}
}

// GetUIConfig returns the UI config with defaults applied for any unset values.
func (c *Config) GetUIConfig() *UIConfig {
	if c.UI == nil {
		return DefaultUIConfig()
	}
	ui := c.UI
	if ui.Port == 0 {
		ui.Port = DefaultUIPort
	}
	return ui
}

// Config holds all CLI configuration options.
type Config struct {
	Source        SourceConfig         `koanf:"source"`
	NationalState string               `koanf:"national_state"`
	Environment   string               `koanf:"environment"`
	LogLevel      string               `koanf:"log_level"`
	Verbose       bool                 `koanf:"verbose"`
	OutputFormat  string               `koanf:"output"`
	UI            *UIConfig            `koanf:"ui"`
	Environments  map[string]EnvConfig `koanf:"environments"`

	// ConfigDir is the directory of the config file in use, or the working
	// directory when none was found. Relative source paths resolve against it.
	ConfigDir string `koanf:"-"`
}

// EnvConfig holds environment-specific overrides.
type EnvConfig struct {
	Source        *SourceConfig `koanf:"source"`
	NationalState string        `koanf:"national_state"`
}

// Default configuration values.
const (
	DefaultSourcePath = "Water_Usage.csv"
	DefaultLogLevel   = "info"
	DefaultOutput     = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultUIPort     = 8765
)

// ConfigFileNames are searched, in order, when no --config is given.
var ConfigFileNames = []string{"waterdash.yaml", "waterdash.yml"}
