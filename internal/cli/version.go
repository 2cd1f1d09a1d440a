package cli

import (
	"github.com/spf13/cobra"

	"github.com/hawala-app/hawala/internal/version"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE:  runVersion,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, _ []string) error {
	info := version.Get()

	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		return writeJSON(w, info)
	}
	outln(w, info.String())
	return nil
}
