package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version, buildDate, gitCommit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display waterdash version and build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "waterdash v%s\n", version)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Water consumption dashboard built with Go")
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Build date: %s\nCommit: %s\n", buildDate, gitCommit)
		},
	}
}
