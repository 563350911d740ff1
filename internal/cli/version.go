package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display CabinetCut version and build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "CabinetCut v%s\n", version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Built %s from %s\n", BuildDate, GitCommit)
		},
	}
}
