// Package duckdb provides a DuckDB backed dataset source.
//
// Import this package with a blank identifier to register the source:
//
//	import _ "github.com/leapstack-labs/waterdash/internal/dataset/sources/duckdb"
//
// A path ending in .csv is read through read_csv_auto on an in-memory
// database; any other path is opened as a database file and the configured
// table is selected.
package duckdb

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/waterdash/internal/dataset"
	"github.com/leapstack-labs/waterdash/internal/dataset/sqlsource"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

func init() {
	dataset.Register("duckdb", func(cfg dataset.SourceConfig, logger *slog.Logger) dataset.Source {
		return New(cfg, logger)
	})
}

// Source reads the dataset through DuckDB.
type Source struct {
	cfg    dataset.SourceConfig
	logger *slog.Logger
}

// New creates a DuckDB source. A nil logger discards output.
func New(cfg dataset.SourceConfig, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Source{cfg: cfg, logger: logger}
}

// Load implements dataset.Source.
func (s *Source) Load(ctx context.Context) (*dataset.Dataset, error) {
	name := s.cfg.Name()
	if s.cfg.Path == "" {
		return nil, &dataset.LoadError{Source: name, Err: fmt.Errorf("duckdb source requires a path")}
	}
	if _, err := os.Stat(s.cfg.Path); err != nil {
		return nil, &dataset.LoadError{Source: name, Err: err}
	}

	dsn, query := s.cfg.Path, sqlsource.SelectAll(s.cfg.Table)
	if isCSV(s.cfg.Path) {
		dsn, query = "", ReadCSVQuery(s.cfg.Path)
	}

	base := sqlsource.Base{Name: name, Logger: s.logger}
	if err := base.Open(ctx, "duckdb", dsn); err != nil {
		return nil, &dataset.LoadError{Source: name, Err: err}
	}
	defer func() { _ = base.Close() }()

	return base.Query(ctx, query)
}

// ReadCSVQuery returns the statement that loads a CSV file with header
// detection and type inference.
func ReadCSVQuery(path string) string {
	return fmt.Sprintf("SELECT * FROM read_csv_auto('%s', header=true)", strings.ReplaceAll(path, "'", "''"))
}

func isCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}
