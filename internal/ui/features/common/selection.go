// Package common provides helpers shared by the UI features.
package common

import (
	"net/url"
	"strings"

	"github.com/leapstack-labs/waterdash/internal/filter"
)

// Query parameter names carrying a selection.
const (
	ParamYear  = "year"
	ParamState = "state"
)

// SelectionFromQuery reads repeated year and state parameters. Values are
// taken whole, so names containing commas stay selectable; blank values are
// ignored.
func SelectionFromQuery(q url.Values) filter.Selection {
	return filter.Selection{
		Years:  cleanValues(q[ParamYear]),
		States: cleanValues(q[ParamState]),
	}
}

// HasSelection reports whether q names any year or state.
func HasSelection(q url.Values) bool {
	return q.Has(ParamYear) || q.Has(ParamState)
}

// SelectionQuery encodes sel as a query string without the leading '?'.
func SelectionQuery(sel filter.Selection) string {
	q := url.Values{}
	for _, y := range sel.Years {
		q.Add(ParamYear, y)
	}
	for _, s := range sel.States {
		q.Add(ParamState, s)
	}
	return q.Encode()
}

func cleanValues(raw []string) []string {
	var out []string
	for _, v := range raw {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
