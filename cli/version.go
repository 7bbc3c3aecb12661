package cli

import (
	"github.com/spf13/cobra"

	"github.com/Keith9922/Ketcher-demo/pkg/version"
)

// VersionCmd prints build information.
func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			info := version.Get()
			cmd.Printf("ketcher %s (commit %s, built %s)\n", info.Version, info.CommitHash, info.BuildDate)
		},
	}
}
