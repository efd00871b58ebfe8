// Package dataset loads water consumption records from tabular sources.
//
// A Dataset is immutable once built. Filtering and aggregation operate on
// RecordView, which both a Dataset and a filtered view satisfy.
package dataset

// Column names expected in every source, matched case-insensitively.
const (
	ColumnDate          = "Date"
	ColumnState         = "State"
	ColumnSector        = "Sector"
	ColumnWaterConsumed = "Water Consumed"
)

// NationalState is the state value used for the country-wide aggregate row.
const NationalState = "Malaysia"

// RequiredColumns lists the columns a source must provide, in canonical order.
var RequiredColumns = []string{ColumnDate, ColumnState, ColumnSector, ColumnWaterConsumed}

// Record is one observation: water consumed by a sector in a state for a year.
type Record struct {
	Year          string  `json:"year" yaml:"year"`
	State         string  `json:"state" yaml:"state"`
	Sector        string  `json:"sector" yaml:"sector"`
	WaterConsumed float64 `json:"water_consumed" yaml:"water_consumed"`
}

// RecordView is read-only indexed access to a sequence of records.
type RecordView interface {
	Len() int
	At(i int) Record
}

// Dataset is an ordered, immutable collection of records.
type Dataset struct {
	source  string
	records []Record
}

// New creates a Dataset from a copy of records.
func New(source string, records []Record) *Dataset {
	cp := make([]Record, len(records))
	copy(cp, records)
	return &Dataset{source: source, records: cp}
}

// Len returns the number of records. A nil Dataset has no records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// At returns the record at index i.
func (d *Dataset) At(i int) Record {
	return d.records[i]
}

// Records returns a copy of all records in source order.
func (d *Dataset) Records() []Record {
	if d == nil {
		return nil
	}
	cp := make([]Record, len(d.records))
	copy(cp, d.records)
	return cp
}

// Source returns the name of the source the dataset was loaded from.
func (d *Dataset) Source() string {
	if d == nil {
		return ""
	}
	return d.source
}
