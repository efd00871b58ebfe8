// Package sqlite provides a SQLite backed dataset source using the pure Go
// modernc driver.
//
//	import _ "github.com/leapstack-labs/waterdash/internal/dataset/sources/sqlite"
package sqlite

import (
	"context"
	"log/slog"
	"os"

	"github.com/leapstack-labs/waterdash/internal/dataset"
	"github.com/leapstack-labs/waterdash/internal/dataset/sqlsource"

	_ "modernc.org/sqlite" // sqlite driver
)

func init() {
	dataset.Register("sqlite", func(cfg dataset.SourceConfig, logger *slog.Logger) dataset.Source {
		return New(cfg, logger)
	})
}

// Source reads one table of a SQLite database file.
type Source struct {
	cfg    dataset.SourceConfig
	logger *slog.Logger
}

// New creates a SQLite source. A nil logger discards output.
func New(cfg dataset.SourceConfig, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Source{cfg: cfg, logger: logger}
}

// Load implements dataset.Source. The database file must already exist.
func (s *Source) Load(ctx context.Context) (*dataset.Dataset, error) {
	name := s.cfg.Name()
	if _, err := os.Stat(s.cfg.Path); err != nil {
		return nil, &dataset.LoadError{Source: name, Err: err}
	}

	base := sqlsource.Base{Name: name, Logger: s.logger}
	if err := base.Open(ctx, "sqlite", s.cfg.Path); err != nil {
		return nil, &dataset.LoadError{Source: name, Err: err}
	}
	defer func() { _ = base.Close() }()

	return base.Query(ctx, sqlsource.SelectAll(s.cfg.Table))
}
