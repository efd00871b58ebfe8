package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
)

func init() {
	Register("xlsx", func(cfg SourceConfig, logger *slog.Logger) Source {
		return &XLSXSource{Path: cfg.Path, Sheet: cfg.Sheet, logger: logger}
	})
}

// XLSXSource reads one worksheet of an Excel workbook. The first row is the
// header. An empty Sheet selects the first worksheet.
type XLSXSource struct {
	Path   string
	Sheet  string
	logger *slog.Logger
}

// Load implements Source.
func (s *XLSXSource) Load(ctx context.Context) (*Dataset, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, &LoadError{Source: s.Path, Err: err}
	}
	defer func() { _ = f.Close() }()

	sheet := s.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, &LoadError{Source: s.Path, Err: errors.New("workbook has no sheets")}
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &LoadError{Source: s.Path, Err: fmt.Errorf("sheet %q: %w", sheet, err)}
	}
	if len(rows) == 0 {
		return nil, &LoadError{Source: s.Path, Err: ErrNoHeader}
	}

	b, err := NewBuilder(s.Path, rows[0])
	if err != nil {
		return nil, err
	}
	for _, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, &LoadError{Source: s.Path, Err: err}
		}
		if err := b.Add(row); err != nil {
			return nil, err
		}
	}

	ds := b.Dataset()
	if s.logger != nil {
		s.logger.Debug("loaded workbook", "path", s.Path, "sheet", sheet, "records", ds.Len())
	}
	return ds, nil
}
