package cli

import (
	"github.com/spf13/cobra"

	"github.com/dkoosis/specview/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the specview version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Println("specview " + version.String())
	},
}
