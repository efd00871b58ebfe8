package commands

import (
	"fmt"

	"github.com/leapstack-labs/waterdash/internal/cli/output"
	"github.com/leapstack-labs/waterdash/internal/filter"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <years|states>",
		Short: "List the distinct years or states in the dataset",
		Long: `List the values available for filtering, in the order the dashboard
offers them: years ascending, states alphabetically. The national aggregate
state is included.`,
		Example: `  # Years, one per line when piped
  waterdash list years

  # States as JSON
  waterdash list states -o json`,
		ValidArgs: []string{"years", "states"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args[0])
		},
	}

	return cmd
}

func runList(cmd *cobra.Command, what string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	ds, err := cmdCtx.Engine.Dataset()
	if err != nil {
		return err
	}

	var values []string
	title := "Years"
	switch what {
	case "years":
		values = filter.DistinctYears(ds)
	case "states":
		values = filter.DistinctStates(ds)
		title = "States"
	default:
		return fmt.Errorf("unknown list target %q (expected years or states)", what)
	}

	if ok, err := r.Structured(values); ok {
		return err
	}

	switch r.EffectiveMode() {
	case output.ModeText:
		r.Header(1, fmt.Sprintf("%s (%d total)", title, len(values)))
		for _, v := range values {
			r.Println("  " + v)
		}
	default:
		r.Println(output.FormatHeader(1, fmt.Sprintf("%s (%d total)", title, len(values))))
		r.Println("")
		for _, v := range values {
			r.Println("- " + v)
		}
	}
	return nil
}
