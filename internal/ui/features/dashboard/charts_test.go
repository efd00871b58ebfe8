package dashboard

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/waterdash/internal/aggregate"
	"github.com/leapstack-labs/waterdash/internal/report"
)

func sampleReport() *report.Report {
	return &report.Report{
		ByYearState: []aggregate.YearStateTotal{
			{Year: "2020", State: "Johor", Total: 100},
			{Year: "2020", State: "Selangor", Total: 150},
			{Year: "2021", State: "Selangor", Total: 170},
		},
		ByState: []aggregate.StateTotal{
			{State: "Selangor", Total: 320},
			{State: "Johor", Total: 100},
			{State: "Perlis", Total: 0},
		},
		ByYearSector: []aggregate.YearSectorTotal{
			{Year: "2020", Sector: "Domestic", Total: 180},
			{Year: "2020", Sector: "Non-Domestic", Total: 70},
			{Year: "2021", Sector: "Domestic", Total: 110},
		},
	}
}

func TestRenderChart(t *testing.T) {
	rep := sampleReport()

	for _, c := range Charts() {
		t.Run(c.Name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, RenderChart(&buf, c.Name, rep))
			out := buf.String()
			assert.Contains(t, out, "<svg")
			assert.NotContains(t, out, report.NoData)
		})
	}
}

func TestRenderChart_Empty(t *testing.T) {
	empty := &report.Report{}

	for _, c := range Charts() {
		t.Run(c.Name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, RenderChart(&buf, c.Name, empty))
			assert.Contains(t, buf.String(), report.NoData)
			assert.Contains(t, buf.String(), c.Title)
		})
	}
}

func TestRenderChart_AllZero(t *testing.T) {
	rep := &report.Report{
		ByState:      []aggregate.StateTotal{{State: "Perlis", Total: 0}},
		ByYearSector: []aggregate.YearSectorTotal{{Year: "2020", Sector: "Domestic", Total: 0}},
	}

	for _, name := range []string{ChartState, ChartYearSector} {
		var buf bytes.Buffer
		require.NoError(t, RenderChart(&buf, name, rep))
		assert.Contains(t, buf.String(), report.NoData, name)
	}
}

func TestRenderChart_Unknown(t *testing.T) {
	var buf bytes.Buffer
	err := RenderChart(&buf, "radar", sampleReport())
	require.ErrorIs(t, err, ErrUnknownChart)
	assert.Zero(t, buf.Len())
}

func TestChartTitle(t *testing.T) {
	assert.Equal(t, report.ChartState, ChartTitle(ChartState))
	assert.Empty(t, ChartTitle("radar"))
}
