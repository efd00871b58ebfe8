package commands

import (
	"fmt"

	"github.com/leapstack-labs/waterdash/internal/aggregate"
	"github.com/leapstack-labs/waterdash/internal/cli/output"
	"github.com/leapstack-labs/waterdash/internal/engine"
	"github.com/leapstack-labs/waterdash/internal/filter"
	"github.com/leapstack-labs/waterdash/internal/report"
	"github.com/spf13/cobra"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Strict    bool
	Tolerance float64
}

// CheckResult is the structured output of the check command.
type CheckResult struct {
	Source     string                       `json:"source" yaml:"source"`
	Records    int                          `json:"records" yaml:"records"`
	Years      []string                     `json:"years" yaml:"years"`
	States     []string                     `json:"states" yaml:"states"`
	National   string                       `json:"national_state" yaml:"national_state"`
	Tolerance  float64                      `json:"tolerance" yaml:"tolerance"`
	Mismatches []aggregate.NationalMismatch `json:"mismatches" yaml:"mismatches"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the dataset and its national totals",
		Long: `Load the dataset, report load or parse errors, and compare every
national row with the sum of the per-state rows for the same year and sector.

Mismatches are reported but only fail the command with --strict.`,
		Example: `  # Validate the configured dataset
  waterdash check

  # Fail CI when national rows drift by more than 1 MLD
  waterdash check --strict --tolerance 1`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Exit non-zero when national totals mismatch")
	cmd.Flags().Float64Var(&opts.Tolerance, "tolerance", engine.DefaultTolerance, "Allowed absolute difference in MLD")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *CheckOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer
	eng := cmdCtx.Engine

	ds, err := eng.Dataset()
	if err != nil {
		return err
	}
	mismatches, err := eng.CheckNational(opts.Tolerance)
	if err != nil {
		return err
	}
	if mismatches == nil {
		mismatches = []aggregate.NationalMismatch{}
	}

	result := CheckResult{
		Source:     ds.Source(),
		Records:    ds.Len(),
		Years:      filter.DistinctYears(ds),
		States:     filter.DistinctStates(ds),
		National:   eng.National(),
		Tolerance:  opts.Tolerance,
		Mismatches: mismatches,
	}

	if ok, err := r.Structured(result); ok {
		if err != nil {
			return err
		}
	} else {
		renderCheck(r, result)
	}

	cmdCtx.Logger.Debug("check complete", "records", result.Records, "mismatches", len(mismatches))

	if opts.Strict && len(mismatches) > 0 {
		return fmt.Errorf("%d national total(s) differ from state sums by more than %g", len(mismatches), opts.Tolerance)
	}
	return nil
}

func renderCheck(r *output.Renderer, res CheckResult) {
	r.Header(1, "Dataset check")
	r.KeyValue("Source", res.Source)
	r.KeyValue("Records", fmt.Sprintf("%d", res.Records))
	r.KeyValue("Years", fmt.Sprintf("%d", len(res.Years)))
	r.KeyValue("States", fmt.Sprintf("%d", len(res.States)))
	r.KeyValue("National state", res.National)
	r.Println("")

	if len(res.Mismatches) == 0 {
		r.Success("National totals match state sums")
		return
	}

	r.Warning(fmt.Sprintf("%d national total(s) differ from state sums", len(res.Mismatches)))
	rows := make([][]string, 0, len(res.Mismatches))
	for _, m := range res.Mismatches {
		rows = append(rows, []string{
			m.Year,
			m.Sector,
			report.FormatNumber(m.National),
			report.FormatNumber(m.StatesSum),
			fmt.Sprintf("%+.2f", m.Difference),
		})
	}
	r.Table([]output.Column{
		{Title: "Year"},
		{Title: "Sector"},
		{Title: "National", AlignRight: true},
		{Title: "States", AlignRight: true},
		{Title: "Difference", AlignRight: true},
	}, rows)
}
