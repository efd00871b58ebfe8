package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/leapstack-labs/waterdash/internal/aggregate"
	"github.com/leapstack-labs/waterdash/internal/dataset"
	"github.com/leapstack-labs/waterdash/internal/filter"
	"github.com/leapstack-labs/waterdash/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.ReadCSV(t.Context(), "sample.csv", strings.NewReader(testutil.SampleCSV))
	require.NoError(t, err)
	return ds
}

func TestBuild(t *testing.T) {
	ds := sample(t)

	r := Build(ds, filter.Selection{Years: []string{"2020"}, States: []string{"Selangor", "Malaysia"}}, Options{})

	assert.Equal(t, "sample.csv", r.Source)
	assert.Equal(t, []string{"2020", "2021"}, r.Years)
	assert.Equal(t, []string{"Johor", "Malaysia", "Selangor"}, r.States)
	assert.Equal(t, filter.Selection{Years: []string{"2020"}, States: []string{"Malaysia", "Selangor"}}, r.Selection)
	assert.Equal(t, 4, r.Summary.Count)
	assert.InDelta(t, 400, r.Summary.Total, 1e-9)
	assert.Equal(t, []aggregate.StateTotal{{State: "Selangor", Total: 150}}, r.ByState)
	assert.Len(t, r.ByYearState, 2)
	assert.Len(t, r.ByYearSector, 2)
	assert.False(t, r.Empty())
}

func TestBuild_EmptySelectionResult(t *testing.T) {
	r := Build(sample(t), filter.Selection{States: []string{"Atlantis"}}, Options{})

	assert.True(t, r.Empty())
	assert.Equal(t, []Metric{
		{Label: "Total Water Used", Value: "0 MLD"},
		{Label: "Average per Year", Value: NoData},
		{Label: "Max Consumption", Value: NoData},
	}, r.Metrics())

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"by_year_state":[]`)
	assert.Contains(t, string(b), `"average":null`)
}

func TestBuild_NationalOption(t *testing.T) {
	r := Build(sample(t), filter.Selection{}, Options{National: "Johor"})

	for _, st := range r.ByState {
		assert.NotEqual(t, "Johor", st.State)
	}
}

func TestMetrics(t *testing.T) {
	r := Build(sample(t), filter.Selection{}, Options{})

	assert.Equal(t, []Metric{
		{Label: "Total Water Used", Value: "1,080 MLD"},
		{Label: "Average per Year", Value: "90 MLD"},
		{Label: "Max Consumption", Value: "200 MLD"},
	}, r.Metrics())
}

func TestFormatMLD(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "0 MLD"},
		{in: 999.4, want: "999 MLD"},
		{in: 1234.5, want: "1,234 MLD"},
		{in: 1235.5, want: "1,236 MLD"},
		{in: 1234.51, want: "1,235 MLD"},
		{in: 0.5, want: "0 MLD"},
		{in: 1234567, want: "1,234,567 MLD"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMLD(tt.in))
		})
	}
	assert.Equal(t, "12,000", FormatNumber(12000))
	assert.Equal(t, "2", FormatNumber(2.5))
}
