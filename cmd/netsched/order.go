package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeyhmusGuler/SCIRun/internal/scheduler"
)

type orderOptions struct {
	includeDisabled bool
	jsonOutput      bool
}

func newOrderCmd(root *rootFlags) *cobra.Command {
	opts := &orderOptions{}

	cmd := &cobra.Command{
		Use:   "order <network-file>",
		Short: "Print a serial execution order for a network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrder(cmd, args[0], root, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.includeDisabled, "all", false, "Include disabled modules")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output the order as JSON")

	return cmd
}

func runOrder(cmd *cobra.Command, path string, root *rootFlags, opts *orderOptions) error {
	loaded, err := loadNetwork("order", path, root, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	order, err := scheduler.NewSerialScheduler(moduleFilter(opts.includeDisabled), loaded.log).Schedule(loaded.net)
	if err != nil {
		return newCommandError("order", "scheduling network", err, "Remove one of the connections on the reported cycle.")
	}

	if opts.jsonOutput {
		ids := make([]string, 0, order.Len())
		for _, id := range order.Modules() {
			ids = append(ids, id.String())
		}
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(map[string]any{"modules": ids})
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), order.String())
	return err
}

func moduleFilter(includeDisabled bool) scheduler.ModuleFilter {
	if includeDisabled {
		return scheduler.AllModules
	}
	return scheduler.EnabledModules
}
