// Package report assembles everything the dashboard shows for one selection:
// the filter options, headline metrics and the three chart series.
package report

import (
	"github.com/leapstack-labs/waterdash/internal/aggregate"
	"github.com/leapstack-labs/waterdash/internal/dataset"
	"github.com/leapstack-labs/waterdash/internal/filter"
)

// Title is the dashboard heading.
const Title = "Water Consumption in Malaysia"

// Chart titles.
const (
	ChartYearState  = "Water Consumption Over Year"
	ChartState      = "Water Consumption by State"
	ChartYearSector = "Domestic vs Non-Domestic"
)

// Options tune report construction.
type Options struct {
	// National is the state excluded from the per-state breakdown.
	// Empty means dataset.NationalState.
	National string
}

// Report is the complete, presentation-neutral result for one selection.
type Report struct {
	Source       string                      `json:"source" yaml:"source"`
	Selection    filter.Selection            `json:"selection" yaml:"selection"`
	Years        []string                    `json:"years" yaml:"years"`
	States       []string                    `json:"states" yaml:"states"`
	Summary      aggregate.Summary           `json:"summary" yaml:"summary"`
	ByYearState  []aggregate.YearStateTotal  `json:"by_year_state" yaml:"by_year_state"`
	ByState      []aggregate.StateTotal      `json:"by_state" yaml:"by_state"`
	ByYearSector []aggregate.YearSectorTotal `json:"by_year_sector" yaml:"by_year_sector"`
}

// Build filters ds with sel and runs every aggregation over the result.
// Years and States always list the options of the whole dataset.
func Build(ds *dataset.Dataset, sel filter.Selection, opts Options) *Report {
	view := filter.Apply(ds, sel)
	return &Report{
		Source:       ds.Source(),
		Selection:    view.Selection(),
		Years:        filter.DistinctYears(ds),
		States:       filter.DistinctStates(ds),
		Summary:      aggregate.SummaryStats(view),
		ByYearState:  aggregate.GroupByYearState(view),
		ByState:      aggregate.GroupByStateExcludingNational(view, opts.National),
		ByYearSector: aggregate.GroupByYearSector(view),
	}
}

// Metric is one labelled, formatted headline number.
type Metric struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Metrics returns the three headline metrics ready for display.
func (r *Report) Metrics() []Metric {
	return []Metric{
		{Label: "Total Water Used", Value: FormatMLD(r.Summary.Total)},
		{Label: "Average per Year", Value: FormatOptional(r.Summary.Average)},
		{Label: "Max Consumption", Value: FormatOptional(r.Summary.Max)},
	}
}

// Empty reports whether the selection matched no records.
func (r *Report) Empty() bool {
	return r.Summary.Count == 0
}
