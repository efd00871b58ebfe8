package dashboard

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/a-h/templ"
	"github.com/leapstack-labs/waterdash/internal/aggregate"
	"github.com/leapstack-labs/waterdash/internal/report"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrUnknownChart is returned for a chart name the dashboard does not draw.
var ErrUnknownChart = errors.New("unknown chart")

// Chart names as used in /charts/{name}.svg.
const (
	ChartYearState  = "year-state"
	ChartState      = "state"
	ChartYearSector = "year-sector"
)

const (
	chartWidth  = 640
	chartHeight = 400
	barWidth    = 28
)

// ChartInfo names a chart and its title.
type ChartInfo struct {
	Name  string
	Title string
}

// Charts lists the dashboard charts in display order.
func Charts() []ChartInfo {
	return []ChartInfo{
		{Name: ChartYearState, Title: report.ChartYearState},
		{Name: ChartState, Title: report.ChartState},
		{Name: ChartYearSector, Title: report.ChartYearSector},
	}
}

var sectorColors = []drawing.Color{
	chart.ColorBlue,
	chart.ColorGreen,
	chart.ColorOrange,
	chart.ColorRed,
	chart.ColorCyan,
}

// RenderChart writes the named chart for rep as SVG. A selection with
// nothing to plot yields a placeholder image instead of an error.
func RenderChart(w io.Writer, name string, rep *report.Report) error {
	switch name {
	case ChartYearState:
		return renderYearState(w, rep.ByYearState)
	case ChartState:
		return renderState(w, rep.ByState)
	case ChartYearSector:
		return renderYearSector(w, rep.ByYearSector)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownChart, name)
	}
}

// renderYearState draws one line per state across the selected years.
func renderYearState(w io.Writer, rows []aggregate.YearStateTotal) error {
	title := report.ChartYearState

	yearIdx := make(map[string]int)
	var years []string
	byState := make(map[string]*chart.ContinuousSeries)
	var states []string
	maxY := 0.0

	for _, row := range rows {
		idx, ok := yearIdx[row.Year]
		if !ok {
			idx = len(years)
			yearIdx[row.Year] = idx
			years = append(years, row.Year)
		}
		s, ok := byState[row.State]
		if !ok {
			s = &chart.ContinuousSeries{
				Name:  row.State,
				Style: chart.Style{StrokeWidth: 2, DotWidth: 3},
			}
			byState[row.State] = s
			states = append(states, row.State)
		}
		s.XValues = append(s.XValues, float64(idx))
		s.YValues = append(s.YValues, row.Total)
		if row.Total > maxY {
			maxY = row.Total
		}
	}
	if len(states) == 0 {
		return placeholder(w, title)
	}
	sort.Strings(states)

	ticks := make([]chart.Tick, len(years))
	for i, y := range years {
		ticks[i] = chart.Tick{Value: float64(i), Label: y}
	}

	series := make([]chart.Series, 0, len(states))
	for _, st := range states {
		series = append(series, *byState[st])
	}

	ch := chart.Chart{
		Title:      title,
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  "Year",
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(years)) - 0.5},
		},
		YAxis: chart.YAxis{
			Name:           "MLD",
			Range:          &chart.ContinuousRange{Min: 0, Max: axisMax(maxY)},
			ValueFormatter: formatAxis,
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return ch.Render(chart.SVG, w)
}

// renderState draws each state's share of the selection. Zero totals have
// no slice.
func renderState(w io.Writer, rows []aggregate.StateTotal) error {
	title := report.ChartState

	values := make([]chart.Value, 0, len(rows))
	for _, row := range rows {
		if row.Total <= 0 {
			continue
		}
		values = append(values, chart.Value{Label: row.State, Value: row.Total})
	}
	if len(values) == 0 {
		return placeholder(w, title)
	}

	pie := chart.PieChart{
		Title:  title,
		Width:  chartWidth,
		Height: chartHeight,
		Values: values,
	}
	return pie.Render(chart.SVG, w)
}

// renderYearSector draws one bar per year and sector, grouped by year and
// coloured by sector.
func renderYearSector(w io.Writer, rows []aggregate.YearSectorTotal) error {
	title := report.ChartYearSector

	colorIdx := make(map[string]int)
	var sectors []string
	for _, row := range rows {
		if _, ok := colorIdx[row.Sector]; !ok {
			sectors = append(sectors, row.Sector)
			colorIdx[row.Sector] = 0
		}
	}
	sort.Strings(sectors)
	for i, s := range sectors {
		colorIdx[s] = i % len(sectorColors)
	}

	bars := make([]chart.Value, 0, len(rows))
	maxY := 0.0
	for _, row := range rows {
		c := sectorColors[colorIdx[row.Sector]]
		bars = append(bars, chart.Value{
			Label: row.Year + " " + row.Sector,
			Value: row.Total,
			Style: chart.Style{FillColor: c, StrokeColor: c},
		})
		if row.Total > maxY {
			maxY = row.Total
		}
	}
	if len(bars) == 0 || maxY <= 0 {
		return placeholder(w, title)
	}

	width := chartWidth
	if need := len(bars) * (barWidth + 40); need > width {
		width = need
	}

	bc := chart.BarChart{
		Title:      title,
		Width:      width,
		Height:     chartHeight,
		BarWidth:   barWidth,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: axisMax(maxY)},
			ValueFormatter: formatAxis,
		},
		Bars: bars,
	}
	return bc.Render(chart.SVG, w)
}

func axisMax(maxY float64) float64 {
	if maxY <= 0 {
		return 1
	}
	return maxY * 1.1
}

func formatAxis(v interface{}) string {
	if f, ok := v.(float64); ok {
		return report.FormatNumber(f)
	}
	return ""
}

// placeholder writes a blank chart carrying the title and report.NoData.
func placeholder(w io.Writer, title string) error {
	_, err := fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
		`<rect width="100%%" height="100%%" fill="#ffffff"/>`+
		`<text x="50%%" y="40" text-anchor="middle" font-family="sans-serif" font-size="16">%s</text>`+
		`<text x="50%%" y="50%%" text-anchor="middle" font-family="sans-serif" font-size="14" fill="#616e7c">%s</text>`+
		`</svg>`,
		chartWidth, chartHeight, chartWidth, chartHeight,
		templ.EscapeString(title), templ.EscapeString(report.NoData))
	return err
}
