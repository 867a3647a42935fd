package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeyhmusGuler/SCIRun/internal/engine"
)

type runOptions struct {
	parallel        int
	timeout         time.Duration
	includeDisabled bool
}

func newRunCmd(root *rootFlags) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run <network-file>",
		Short: "Execute a network group by group",
		Long: `Run executes every module of the network. Modules of one group run
concurrently, bounded by --parallel; the next group starts once the current
group has finished. A failing module does not stop the run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNetwork(cmd, args[0], root, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.parallel, "parallel", "p", 0, "Maximum modules running at once (defaults to the network file, then CPU count)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Abort the run after this duration; accepts Go duration strings (e.g. 30s)")
	cmd.Flags().BoolVar(&opts.includeDisabled, "all", false, "Include disabled modules")

	return cmd
}

var errRunFailed = errors.New("one or more modules failed")

func runNetwork(cmd *cobra.Command, path string, root *rootFlags, opts *runOptions) error {
	loaded, err := loadNetwork("run", path, root, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	workers := opts.parallel
	if workers <= 0 {
		workers = loaded.cfg.Settings.ParallelOrDefault(runtime.GOMAXPROCS(0))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	executor := engine.NewExecutor(engine.WithMaxWorkers(workers), engine.WithLogger(loaded.log))
	summary, runErr := executor.ExecuteNetwork(ctx, loaded.net, moduleFilter(opts.includeDisabled))
	if summary == nil {
		return newCommandError("run", "scheduling network", runErr, "Remove one of the connections on the reported cycle.")
	}

	if err := renderSummary(cmd, summary, loaded.net.ErrorCode()); err != nil {
		return err
	}

	if runErr != nil {
		if errors.Is(runErr, context.DeadlineExceeded) || errors.Is(runErr, context.Canceled) {
			return newCommandError("run", "executing network", runErr, "Increase --timeout or reduce the work per module.")
		}
		return errRunFailed
	}
	return nil
}

func renderSummary(cmd *cobra.Command, summary *engine.RunSummary, errorCode int) error {
	out := cmd.OutOrStdout()
	p := newPalette(out)

	fmt.Fprintln(out, p.header.Render("Run "+summary.RunID))

	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "GROUP\tMODULE\tSTATUS\tDURATION\tERROR")
	for _, r := range summary.Results {
		message := ""
		if r.Err != nil {
			message = r.Err.Error()
		}
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\n", r.Group, r.Module, p.status(r.Status), r.Duration.Round(time.Microsecond), message)
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "%d succeeded, %d failed, %d skipped in %s (network error count %d)\n",
		summary.Succeeded, summary.Failed, summary.Skipped, summary.Duration.Round(time.Millisecond), errorCode)
	return nil
}
