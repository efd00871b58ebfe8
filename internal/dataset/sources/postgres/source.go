// Package postgres provides a PostgreSQL backed dataset source.
//
//	import _ "github.com/leapstack-labs/waterdash/internal/dataset/sources/postgres"
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/waterdash/internal/dataset"
	"github.com/leapstack-labs/waterdash/internal/dataset/sqlsource"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
)

func init() {
	dataset.Register("postgres", func(cfg dataset.SourceConfig, logger *slog.Logger) dataset.Source {
		return New(cfg, logger)
	})
}

// Source reads one table from PostgreSQL.
type Source struct {
	cfg    dataset.SourceConfig
	logger *slog.Logger
}

// New creates a PostgreSQL source. A nil logger discards output.
func New(cfg dataset.SourceConfig, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Source{cfg: cfg, logger: logger}
}

// Load implements dataset.Source.
func (s *Source) Load(ctx context.Context) (*dataset.Dataset, error) {
	name := s.cfg.Name()
	s.logger.Debug("connecting to postgres", slog.String("host", s.cfg.Host), slog.String("database", s.cfg.Database))

	base := sqlsource.Base{Name: name, Logger: s.logger}
	if err := base.Open(ctx, "pgx", BuildDSN(s.cfg)); err != nil {
		return nil, &dataset.LoadError{Source: name, Err: err}
	}
	defer func() { _ = base.Close() }()

	return base.Query(ctx, sqlsource.SelectAll(s.cfg.Table))
}

// BuildDSN constructs a key=value PostgreSQL connection string.
func BuildDSN(cfg dataset.SourceConfig) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	port := cfg.Port
	if port == 0 {
		port = 5432
	}

	sslmode := "disable"
	if mode, ok := cfg.Options["sslmode"]; ok {
		sslmode = mode
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s", host, port, cfg.Database, sslmode)
	if cfg.User != "" {
		dsn += fmt.Sprintf(" user=%s", cfg.User)
	}
	if cfg.Password != "" {
		dsn += fmt.Sprintf(" password=%s", cfg.Password)
	}
	return dsn
}
