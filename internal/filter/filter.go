// Package filter narrows a dataset to the records matching a selection of
// years and states.
package filter

import (
	"sort"

	"github.com/leapstack-labs/waterdash/internal/dataset"
)

// Selection is a set of chosen years and states. An empty list means every
// value present in the dataset.
type Selection struct {
	Years  []string `json:"years" yaml:"years"`
	States []string `json:"states" yaml:"states"`
}

// IsEmpty reports whether nothing was chosen on either axis.
func (s Selection) IsEmpty() bool {
	return len(s.Years) == 0 && len(s.States) == 0
}

// View is a filtered, order preserving window over a dataset. It stores
// indices, not copies.
type View struct {
	ds        *dataset.Dataset
	indices   []int
	selection Selection
}

// Len returns the number of matching records.
func (v *View) Len() int { return len(v.indices) }

// At returns the i-th matching record.
func (v *View) At(i int) dataset.Record { return v.ds.At(v.indices[i]) }

// Records returns the matching records in source order.
func (v *View) Records() []dataset.Record {
	out := make([]dataset.Record, len(v.indices))
	for i, idx := range v.indices {
		out[i] = v.ds.At(idx)
	}
	return out
}

// Selection returns the normalized selection the view was built from.
func (v *View) Selection() Selection { return v.selection }

// DistinctYears returns every year present, ordered with dataset.CompareYears.
func DistinctYears(v dataset.RecordView) []string {
	years := distinct(v, func(r dataset.Record) string { return r.Year })
	dataset.SortYears(years)
	return years
}

// DistinctStates returns every state present, in lexical order. The
// national aggregate is included when present.
func DistinctStates(v dataset.RecordView) []string {
	states := distinct(v, func(r dataset.Record) string { return r.State })
	sort.Strings(states)
	return states
}

// Normalize replaces an empty axis with every value present in v. Chosen
// values are de-duplicated and sorted; values absent from v are kept and
// simply match nothing.
func Normalize(v dataset.RecordView, sel Selection) Selection {
	out := Selection{
		Years:  dedupe(sel.Years),
		States: dedupe(sel.States),
	}
	if len(out.Years) == 0 {
		out.Years = DistinctYears(v)
	} else {
		dataset.SortYears(out.Years)
	}
	if len(out.States) == 0 {
		out.States = DistinctStates(v)
	} else {
		sort.Strings(out.States)
	}
	return out
}

// Apply returns the records whose year and state are both selected, in
// source order. A nil dataset yields an empty view.
func Apply(ds *dataset.Dataset, sel Selection) *View {
	norm := Normalize(ds, sel)
	years := toSet(norm.Years)
	states := toSet(norm.States)

	n := ds.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		r := ds.At(i)
		if _, ok := years[r.Year]; !ok {
			continue
		}
		if _, ok := states[r.State]; !ok {
			continue
		}
		indices = append(indices, i)
	}
	return &View{ds: ds, indices: indices, selection: norm}
}

func distinct(v dataset.RecordView, key func(dataset.Record) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for i := 0; i < v.Len(); i++ {
		k := key(v.At(i))
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
