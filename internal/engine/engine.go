// Package engine owns the loaded dataset and answers report queries over it.
// The dataset is swapped atomically on reload, so readers never block and a
// failed reload leaves the previous data in place.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/leapstack-labs/waterdash/internal/aggregate"
	"github.com/leapstack-labs/waterdash/internal/dataset"
	"github.com/leapstack-labs/waterdash/internal/filter"
	"github.com/leapstack-labs/waterdash/internal/report"
)

// ErrNotLoaded is returned by queries issued before the first successful load.
var ErrNotLoaded = errors.New("dataset not loaded")

// DefaultTolerance is the national consistency tolerance used on load.
const DefaultTolerance = 0.5

// Engine holds the current dataset.
type Engine struct {
	source   dataset.SourceConfig
	national string
	logger   *slog.Logger

	current    atomic.Pointer[dataset.Dataset]
	generation atomic.Uint64
}

// Config holds engine configuration.
type Config struct {
	// Source describes where records are read from.
	Source dataset.SourceConfig
	// National is the state treated as the country-wide aggregate.
	National string
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates an engine. No data is read until Load is called.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	typ := cfg.Source.ResolvedType()
	if !dataset.IsRegistered(typ) {
		return nil, &dataset.UnknownSourceError{Type: typ, Available: dataset.ListSources()}
	}

	national := cfg.National
	if national == "" {
		national = dataset.NationalState
	}

	logger.Debug("initializing engine", "source", cfg.Source.Name(), "type", typ)

	return &Engine{
		source:   cfg.Source,
		national: national,
		logger:   logger,
	}, nil
}

// Load reads the source and, on success, replaces the current dataset.
// On failure the previous dataset stays current.
func (e *Engine) Load(ctx context.Context) (*dataset.Dataset, error) {
	start := time.Now()

	ds, err := dataset.Load(ctx, e.source, e.logger)
	if err != nil {
		if e.current.Load() != nil {
			e.logger.Warn("reload failed, keeping previous dataset", "source", e.source.Name(), "error", err)
		}
		return nil, err
	}

	e.current.Store(ds)
	gen := e.generation.Add(1)

	e.logger.Info("dataset loaded",
		"source", ds.Source(),
		"records", ds.Len(),
		"generation", gen,
		"duration", time.Since(start),
	)
	if mismatches := aggregate.CheckNational(ds, e.national, DefaultTolerance); len(mismatches) > 0 {
		e.logger.Debug("national totals differ from state sums", "national", e.national, "pairs", len(mismatches))
	}
	return ds, nil
}

// Dataset returns the current dataset.
func (e *Engine) Dataset() (*dataset.Dataset, error) {
	ds := e.current.Load()
	if ds == nil {
		return nil, ErrNotLoaded
	}
	return ds, nil
}

// Generation counts successful loads. It starts at zero.
func (e *Engine) Generation() uint64 {
	return e.generation.Load()
}

// National returns the state treated as the national aggregate.
func (e *Engine) National() string {
	return e.national
}

// Source returns the source configuration.
func (e *Engine) Source() dataset.SourceConfig {
	return e.source
}

// Report builds the report for sel over the current dataset.
func (e *Engine) Report(sel filter.Selection) (*report.Report, error) {
	ds, err := e.Dataset()
	if err != nil {
		return nil, err
	}
	return report.Build(ds, sel, report.Options{National: e.national}), nil
}

// CheckNational compares national rows against state sums in the current
// dataset.
func (e *Engine) CheckNational(tolerance float64) ([]aggregate.NationalMismatch, error) {
	ds, err := e.Dataset()
	if err != nil {
		return nil, err
	}
	return aggregate.CheckNational(ds, e.national, tolerance), nil
}

// WatchPath returns the absolute file backing the source, or "" when the
// source is not a local file.
func (e *Engine) WatchPath() (string, error) {
	if e.source.ResolvedType() == "postgres" || e.source.Path == "" {
		return "", nil
	}
	abs, err := filepath.Abs(e.source.Path)
	if err != nil {
		return "", fmt.Errorf("resolve source path: %w", err)
	}
	return abs, nil
}
