package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/waterdash/internal/cli/output"
	"github.com/leapstack-labs/waterdash/internal/filter"
	"github.com/leapstack-labs/waterdash/internal/report"
	"github.com/spf13/cobra"
)

// SummaryOptions holds options for the summary command.
type SummaryOptions struct {
	Years  []string
	States []string
}

// Selection converts the flags into a filter selection.
func (o *SummaryOptions) Selection() filter.Selection {
	return filter.Selection{Years: o.Years, States: o.States}
}

// NewSummaryCommand creates the summary command.
func NewSummaryCommand() *cobra.Command {
	opts := &SummaryOptions{}

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print metrics and grouped totals for a selection",
		Long: `Load the dataset, apply the year and state selection and print the
headline metrics together with the three grouped series shown on the dashboard.

An omitted --year or --state selects every value.

Output adapts to environment:
  - Terminal: Styled tables
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json, yaml`,
		Example: `  # Whole dataset
  waterdash summary

  # Two years for Selangor, as JSON
  waterdash summary --year 2020 --year 2021 --state Selangor -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSummary(cmd, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Years, "year", "y", nil, "Year to include (repeatable, default all)")
	cmd.Flags().StringArrayVarP(&opts.States, "state", "s", nil, "State to include (repeatable, default all)")

	return cmd
}

func runSummary(cmd *cobra.Command, opts *SummaryOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	rep, err := cmdCtx.Engine.Report(opts.Selection())
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	if ok, err := r.Structured(rep); ok {
		return err
	}
	renderReport(r, rep)
	return nil
}

// renderReport writes a report as headings, key/values and tables.
func renderReport(r *output.Renderer, rep *report.Report) {
	r.Header(1, report.Title)
	r.KeyValue("Source", rep.Source)
	r.KeyValue("Years", strings.Join(rep.Selection.Years, ", "))
	r.KeyValue("States", strings.Join(rep.Selection.States, ", "))
	r.KeyValue("Records", fmt.Sprintf("%d", rep.Summary.Count))
	r.Println("")

	for _, m := range rep.Metrics() {
		r.KeyValue(m.Label, m.Value)
	}
	r.Println("")

	if rep.Empty() {
		r.Warning("no records match the selection")
	}

	r.Header(2, report.ChartYearState)
	rows := make([][]string, 0, len(rep.ByYearState))
	for _, g := range rep.ByYearState {
		rows = append(rows, []string{g.Year, g.State, report.FormatNumber(g.Total)})
	}
	r.Table([]output.Column{{Title: "Year"}, {Title: "State"}, {Title: "Total (MLD)", AlignRight: true}}, rows)

	r.Header(2, report.ChartState)
	rows = make([][]string, 0, len(rep.ByState))
	for _, g := range rep.ByState {
		rows = append(rows, []string{g.State, report.FormatNumber(g.Total)})
	}
	r.Table([]output.Column{{Title: "State"}, {Title: "Total (MLD)", AlignRight: true}}, rows)

	r.Header(2, report.ChartYearSector)
	rows = make([][]string, 0, len(rep.ByYearSector))
	for _, g := range rep.ByYearSector {
		rows = append(rows, []string{g.Year, g.Sector, report.FormatNumber(g.Total)})
	}
	r.Table([]output.Column{{Title: "Year"}, {Title: "Sector"}, {Title: "Total (MLD)", AlignRight: true}}, rows)
}
