package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// SourceConfig describes where the dataset is read from.
type SourceConfig struct {
	Type     string            `koanf:"type"`
	Path     string            `koanf:"path"`
	Sheet    string            `koanf:"sheet"`
	Table    string            `koanf:"table"`
	Host     string            `koanf:"host"`
	Port     int               `koanf:"port"`
	User     string            `koanf:"user"`
	Password string            `koanf:"password"`
	Database string            `koanf:"database"`
	Options  map[string]string `koanf:"options"`
}

// ResolvedType returns the configured type, or one inferred from the path.
func (c SourceConfig) ResolvedType() string {
	if c.Type != "" {
		return strings.ToLower(c.Type)
	}
	return InferType(c.Path)
}

// Name returns a human readable identifier for the source. Credentials are
// never included.
func (c SourceConfig) Name() string {
	if c.ResolvedType() == "postgres" {
		table := c.Table
		if table == "" {
			table = DefaultTable
		}
		return fmt.Sprintf("postgres://%s/%s/%s", c.Host, c.Database, table)
	}
	if c.Table != "" && c.Path != "" {
		return c.Path + "#" + c.Table
	}
	return c.Path
}

// DefaultTable is the table read by SQL-backed sources when none is configured.
const DefaultTable = "water_usage"

// InferType maps a file extension to a registered source type, defaulting to csv.
func InferType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return "xlsx"
	case ".duckdb", ".ddb":
		return "duckdb"
	case ".db", ".sqlite", ".sqlite3":
		return "sqlite"
	default:
		return "csv"
	}
}

// Source loads a complete Dataset.
type Source interface {
	Load(ctx context.Context) (*Dataset, error)
}

// Factory constructs a Source from configuration.
type Factory func(cfg SourceConfig, logger *slog.Logger) Source

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register adds a source factory to the registry.
// Called by source implementations in their init() functions.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Get retrieves a source factory by name.
func Get(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// ListSources returns all registered source names (sorted).
func ListSources() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a source type is registered.
func IsRegistered(name string) bool {
	_, ok := Get(name)
	return ok
}

// NewSource creates a source for cfg. A nil logger discards output.
func NewSource(cfg SourceConfig, logger *slog.Logger) (Source, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	typ := cfg.ResolvedType()
	factory, ok := Get(typ)
	if !ok {
		return nil, &UnknownSourceError{Type: typ, Available: ListSources()}
	}
	return factory(cfg, logger), nil
}

// Load builds the configured source and reads it. Errors are always a
// *LoadError, *ParseError or *UnknownSourceError.
func Load(ctx context.Context, cfg SourceConfig, logger *slog.Logger) (*Dataset, error) {
	src, err := NewSource(cfg, logger)
	if err != nil {
		return nil, err
	}

	ds, err := src.Load(ctx)
	if err != nil {
		var loadErr *LoadError
		var parseErr *ParseError
		if errors.As(err, &loadErr) || errors.As(err, &parseErr) {
			return nil, err
		}
		return nil, &LoadError{Source: cfg.Name(), Err: err}
	}
	return ds, nil
}
