package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Builder turns header-addressed rows into a Dataset. Every source funnels its
// rows through a Builder so column matching and value validation stay uniform.
type Builder struct {
	source  string
	date    int
	state   int
	sector  int
	water   int
	row     int
	records []Record
}

// NewBuilder resolves the required columns in header. Headers match after
// trimming whitespace and a UTF-8 byte order mark, ignoring case, with
// underscores treated as spaces. Extra columns are ignored.
func NewBuilder(source string, header []string) (*Builder, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	var missing []string
	lookup := func(name string) int {
		i, ok := index[normalizeHeader(name)]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}

	b := &Builder{
		source: source,
		date:   lookup(ColumnDate),
		state:  lookup(ColumnState),
		sector: lookup(ColumnSector),
		water:  lookup(ColumnWaterConsumed),
	}
	if len(missing) > 0 {
		return nil, &LoadError{
			Source: source,
			Err:    fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", ")),
		}
	}
	return b, nil
}

// Add parses one data row. Rows whose cells are all blank are skipped but
// still counted, so reported row numbers match the source.
func (b *Builder) Add(fields []string) error {
	b.row++
	if isBlank(fields) {
		return nil
	}

	// Year and state are the selection axes; a blank one could never be
	// chosen on its own.
	year, state := cell(fields, b.date), cell(fields, b.state)
	for _, c := range []struct{ name, value string }{{ColumnDate, year}, {ColumnState, state}} {
		if c.value == "" {
			return &ParseError{Source: b.source, Row: b.row, Column: c.name, Err: ErrEmptyValue}
		}
	}

	raw := cell(fields, b.water)
	v, err := ParseConsumed(raw)
	if err != nil {
		return &ParseError{
			Source: b.source,
			Row:    b.row,
			Column: ColumnWaterConsumed,
			Value:  raw,
			Err:    err,
		}
	}

	b.records = append(b.records, Record{
		Year:          year,
		State:         state,
		Sector:        cell(fields, b.sector),
		WaterConsumed: v,
	})
	return nil
}

// Dataset returns the records added so far.
func (b *Builder) Dataset() *Dataset {
	return &Dataset{source: b.source, records: b.records}
}

// ParseConsumed parses a water consumption cell. Thousands separators are
// accepted; empty, non-finite and negative values are rejected.
func ParseConsumed(raw string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return 0, ErrEmptyValue
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotNumeric
	}
	if v < 0 {
		return 0, ErrNegative
	}
	return v, nil
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ReplaceAll(h, "_", " ")
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}

func cell(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
