package aggregate

import (
	"math"
	"sort"

	"github.com/leapstack-labs/waterdash/internal/dataset"
)

// NationalMismatch is a (year, sector) whose national row disagrees with the
// sum of the per-state rows.
type NationalMismatch struct {
	Year       string  `json:"year" yaml:"year"`
	Sector     string  `json:"sector" yaml:"sector"`
	National   float64 `json:"national" yaml:"national"`
	StatesSum  float64 `json:"states_sum" yaml:"states_sum"`
	Difference float64 `json:"difference" yaml:"difference"`
}

// CheckNational compares each (year, sector) national total with the sum of
// the other states. Only pairs that have a national row are checked. A
// difference larger than tolerance is reported, ordered by year then sector.
func CheckNational(v dataset.RecordView, national string, tolerance float64) []NationalMismatch {
	if national == "" {
		national = dataset.NationalState
	}

	nat := make(map[yearKey]float64)
	states := make(map[yearKey]float64)
	for i := 0; i < v.Len(); i++ {
		r := v.At(i)
		k := yearKey{year: r.Year, other: r.Sector}
		if r.State == national {
			nat[k] += r.WaterConsumed
		} else {
			states[k] += r.WaterConsumed
		}
	}

	var out []NationalMismatch
	for k, n := range nat {
		diff := n - states[k]
		if math.Abs(diff) <= tolerance {
			continue
		}
		out = append(out, NationalMismatch{
			Year:       k.year,
			Sector:     k.other,
			National:   n,
			StatesSum:  states[k],
			Difference: diff,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := dataset.CompareYears(out[i].Year, out[j].Year); c != 0 {
			return c < 0
		}
		return out[i].Sector < out[j].Sector
	})
	return out
}
