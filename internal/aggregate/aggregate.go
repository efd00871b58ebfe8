// Package aggregate computes summary metrics and grouped totals over a view
// of water consumption records. Every function is pure and returns results
// in a deterministic order.
package aggregate

import (
	"encoding/json"
	"sort"

	"github.com/leapstack-labs/waterdash/internal/dataset"
)

// Optional is a value that may be absent. Absent values marshal as null.
type Optional struct {
	Value float64
	Valid bool
}

// Some returns a present Optional.
func Some(v float64) Optional { return Optional{Value: v, Valid: true} }

// MarshalJSON implements json.Marshaler.
func (o Optional) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// MarshalYAML implements yaml.Marshaler.
func (o Optional) MarshalYAML() (any, error) {
	if !o.Valid {
		return nil, nil
	}
	return o.Value, nil
}

// Summary holds the headline metrics of a view. Average and Max are absent
// for an empty view; Total is then zero.
type Summary struct {
	Count   int      `json:"count" yaml:"count"`
	Total   float64  `json:"total" yaml:"total"`
	Average Optional `json:"average" yaml:"average"`
	Max     Optional `json:"max" yaml:"max"`
}

// YearStateTotal is the consumption of one state in one year.
type YearStateTotal struct {
	Year  string  `json:"year" yaml:"year"`
	State string  `json:"state" yaml:"state"`
	Total float64 `json:"total" yaml:"total"`
}

// StateTotal is the consumption of one state across the view.
type StateTotal struct {
	State string  `json:"state" yaml:"state"`
	Total float64 `json:"total" yaml:"total"`
}

// YearSectorTotal is the consumption of one sector in one year.
type YearSectorTotal struct {
	Year   string  `json:"year" yaml:"year"`
	Sector string  `json:"sector" yaml:"sector"`
	Total  float64 `json:"total" yaml:"total"`
}

type yearKey struct {
	year  string
	other string
}

// SummaryStats returns the count, sum, mean and maximum of WaterConsumed.
func SummaryStats(v dataset.RecordView) Summary {
	n := v.Len()
	s := Summary{Count: n}
	if n == 0 {
		return s
	}

	maxValue := v.At(0).WaterConsumed
	var total float64
	for i := 0; i < n; i++ {
		w := v.At(i).WaterConsumed
		total += w
		if w > maxValue {
			maxValue = w
		}
	}

	s.Total = total
	s.Average = Some(total / float64(n))
	s.Max = Some(maxValue)
	return s
}

// GroupByYearState sums consumption per (year, state), ordered by year and
// then state.
func GroupByYearState(v dataset.RecordView) []YearStateTotal {
	sums := sumByYear(v, func(r dataset.Record) string { return r.State })

	out := make([]YearStateTotal, 0, len(sums))
	for k, total := range sums {
		out = append(out, YearStateTotal{Year: k.year, State: k.other, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := dataset.CompareYears(out[i].Year, out[j].Year); c != 0 {
			return c < 0
		}
		return out[i].State < out[j].State
	})
	return out
}

// GroupByStateExcludingNational sums consumption per state, leaving out the
// national aggregate, ordered by total descending and then state. An empty
// national name falls back to dataset.NationalState.
func GroupByStateExcludingNational(v dataset.RecordView, national string) []StateTotal {
	if national == "" {
		national = dataset.NationalState
	}

	sums := make(map[string]float64)
	for i := 0; i < v.Len(); i++ {
		r := v.At(i)
		if r.State == national {
			continue
		}
		sums[r.State] += r.WaterConsumed
	}

	out := make([]StateTotal, 0, len(sums))
	for state, total := range sums {
		out = append(out, StateTotal{State: state, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].State < out[j].State
	})
	return out
}

// GroupByYearSector sums consumption per (year, sector), ordered by year and
// then sector. The national aggregate is included, as the source intends.
func GroupByYearSector(v dataset.RecordView) []YearSectorTotal {
	sums := sumByYear(v, func(r dataset.Record) string { return r.Sector })

	out := make([]YearSectorTotal, 0, len(sums))
	for k, total := range sums {
		out = append(out, YearSectorTotal{Year: k.year, Sector: k.other, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := dataset.CompareYears(out[i].Year, out[j].Year); c != 0 {
			return c < 0
		}
		return out[i].Sector < out[j].Sector
	})
	return out
}

func sumByYear(v dataset.RecordView, other func(dataset.Record) string) map[yearKey]float64 {
	sums := make(map[yearKey]float64)
	for i := 0; i < v.Len(); i++ {
		r := v.At(i)
		sums[yearKey{year: r.Year, other: other(r)}] += r.WaterConsumed
	}
	return sums
}
