// Package dashboard provides the water consumption dashboard page, its
// live updates and its charts.
package dashboard

import (
	"github.com/leapstack-labs/waterdash/internal/filter"
	"github.com/leapstack-labs/waterdash/internal/report"
)

// FilterSignals are the datastar signals posted by the filter controls.
type FilterSignals struct {
	Years  []string `json:"years"`
	States []string `json:"states"`
}

// Selection converts the signals into a filter selection.
func (s FilterSignals) Selection() filter.Selection {
	return filter.Selection{Years: s.Years, States: s.States}
}

// PageData holds everything needed to render the dashboard.
type PageData struct {
	Title      string
	IsDev      bool
	Report     *report.Report
	Selection  filter.Selection // as requested, before normalization
	Query      string           // Selection encoded for chart URLs
	Generation uint64
}
