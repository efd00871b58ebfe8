package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/waterdash/internal/dataset"
)

// OutputFormats lists the accepted values of the output setting.
var OutputFormats = []string{"auto", "text", "markdown", "json", "yaml"}

// LogLevels lists the accepted values of the log_level setting.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := ValidateSource(c.Source); err != nil {
		return err
	}
	if !contains(OutputFormats, c.OutputFormat) {
		return fmt.Errorf("invalid output format %q (expected one of %s)", c.OutputFormat, strings.Join(OutputFormats, ", "))
	}
	if !contains(LogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log_level %q (expected one of %s)", c.LogLevel, strings.Join(LogLevels, ", "))
	}
	if c.UI != nil && (c.UI.Port < 0 || c.UI.Port > 65535) {
		return fmt.Errorf("ui.port %d out of range", c.UI.Port)
	}
	return nil
}

// ValidateSource checks that the source type is registered and that the
// fields it needs are set.
func ValidateSource(s SourceConfig) error {
	typ := s.ResolvedType()
	if !dataset.IsRegistered(typ) {
		return &dataset.UnknownSourceError{Type: typ, Available: dataset.ListSources()}
	}
	switch typ {
	case "postgres":
		if s.Database == "" {
			return fmt.Errorf("source.database is required for postgres sources")
		}
	default:
		if s.Path == "" {
			return fmt.Errorf("source.path is required for %s sources\nHint: use --source to point at the dataset file", typ)
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
