package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
)

func init() {
	Register("csv", func(cfg SourceConfig, logger *slog.Logger) Source {
		return &CSVSource{Path: cfg.Path, logger: logger}
	})
}

// CSVSource reads a comma separated file with a header row.
type CSVSource struct {
	Path   string
	logger *slog.Logger
}

// Load implements Source.
func (s *CSVSource) Load(ctx context.Context) (*Dataset, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, &LoadError{Source: s.Path, Err: err}
	}
	defer func() { _ = f.Close() }()

	ds, err := ReadCSV(ctx, s.Path, f)
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.Debug("loaded csv", "path", s.Path, "records", ds.Len())
	}
	return ds, nil
}

// ReadCSV parses CSV text from r. source names the input in errors.
func ReadCSV(ctx context.Context, source string, r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &LoadError{Source: source, Err: ErrNoHeader}
	}
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}

	b, err := NewBuilder(source, header)
	if err != nil {
		return nil, err
	}

	for n := 0; ; n++ {
		if n%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, &LoadError{Source: source, Err: err}
			}
		}
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &LoadError{Source: source, Err: err}
		}
		if err := b.Add(fields); err != nil {
			return nil, err
		}
	}
	return b.Dataset(), nil
}
