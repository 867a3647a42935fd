package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose  bool
	logLevel string
	jsonLogs bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "netsched",
		Short:         "netsched analyzes and runs dataflow module networks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the network file")
	cmd.PersistentFlags().BoolVar(&flags.jsonLogs, "json-logs", false, "Write logs as JSON instead of console output")

	cmd.AddCommand(newOrderCmd(flags))
	cmd.AddCommand(newPlanCmd(flags))
	cmd.AddCommand(newRunCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
