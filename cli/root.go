package cli

import (
	"github.com/spf13/cobra"

	"github.com/Keith9922/Ketcher-demo/pkg/logger"
)

// RootCmd builds the ketcher command tree.
func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ketcher",
		Short: "Chemical structure annotation service",
		Long:  "Serve the structure annotation workflow: task claiming, normalization, QC review and export.",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, json, source, err := logger.GetLoggerConfig(cmd)
			if err != nil {
				return err
			}
			logger.SetupLogger(level, json, source)
			return nil
		},
	}

	root.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().Bool("log-json", false, "Emit logs as JSON")
	root.PersistentFlags().Bool("log-source", false, "Include source location in logs")

	root.AddCommand(
		ServeCmd(),
		VersionCmd(),
	)

	return root
}
