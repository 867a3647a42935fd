package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/SeyhmusGuler/SCIRun/internal/logger"
	"github.com/SeyhmusGuler/SCIRun/internal/network"
	"github.com/SeyhmusGuler/SCIRun/internal/scheduler"
	scierrors "github.com/SeyhmusGuler/SCIRun/pkg/errors"
)

const tracerName = "github.com/SeyhmusGuler/SCIRun/internal/engine"

// ErrModuleNotExecutable is reported for scheduled modules that are missing
// from the network or cannot be executed.
var ErrModuleNotExecutable = errors.New("module not found or not executable")

// ExecutableLookup resolves scheduled module ids. *network.Network
// satisfies it.
type ExecutableLookup interface {
	LookupExecutable(id network.ModuleID) network.Executable
}

// ErrorReporter receives the failures of modules that do not raise their own
// error signal. *network.Network satisfies it.
type ErrorReporter interface {
	IncrementErrorCode(id network.ModuleID)
}

// Executor runs a ParallelModuleExecutionOrder group by group. Modules of
// one group run concurrently on a bounded pool; the next group starts only
// after every module of the current group has finished. A failing module
// does not stop the run.
type Executor struct {
	maxWorkers int
	log        *logger.Logger
	tracer     trace.Tracer
}

// NewExecutor creates an Executor. By default it runs up to GOMAXPROCS
// modules at once and traces through the global otel provider.
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{
		maxWorkers: runtime.GOMAXPROCS(0),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExecuteNetwork schedules the modules of net accepted by filter and runs
// them. Scheduling errors, such as cycles, are returned before anything
// runs.
func (e *Executor) ExecuteNetwork(ctx context.Context, net *network.Network, filter scheduler.ModuleFilter) (*RunSummary, error) {
	order, err := scheduler.NewParallelScheduler(filter, e.log).Schedule(net)
	if err != nil {
		return nil, err
	}
	return e.Execute(ctx, order, net)
}

// Execute runs order against the executables resolved by lookup. The
// returned error joins every module failure and, if the run was cut short,
// the context error. The summary is always returned.
//
// When lookup also implements ErrorReporter, every failure is reported to it
// once: BasicModules report through their error signal, anything else
// (including modules the lookup cannot resolve) is reported here.
func (e *Executor) Execute(ctx context.Context, order scheduler.ParallelModuleExecutionOrder, lookup ExecutableLookup) (*RunSummary, error) {
	if lookup == nil {
		return nil, scierrors.NewNullHandleError("executable lookup is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	runID := uuid.NewString()
	log := e.log.Component("executor").With("run_id", runID)
	start := time.Now()

	ctx, span := e.tracer.Start(ctx, "engine.run", trace.WithAttributes(
		attribute.String("run.id", runID),
		attribute.Int("run.modules", order.Len()),
	))
	defer span.End()

	entries := order.Entries()
	results := make([]ModuleResult, len(entries))
	for i, entry := range entries {
		results[i] = ModuleResult{Module: entry.Module, Group: entry.Group, Status: StatusSkipped}
	}

	log.WithFields(map[string]any{"modules": len(entries), "groups": order.MaxGroup() + 1}).Info("run started")

	var errs []error
	for group := order.MinGroup(); group >= 0 && group <= order.MaxGroup(); group++ {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			log.With("group", group).Warn("run cancelled")
			break
		}
		begin, end := order.GroupRange(group)
		if begin == end {
			continue
		}
		if err := e.runGroup(ctx, log, group, entries[begin:end], results[begin:end], lookup); err != nil {
			errs = append(errs, err)
		}
	}

	summary := newRunSummary(runID, order.MaxGroup()+1, results, time.Since(start))
	err := errors.Join(errs...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "run finished with failures")
	} else {
		span.SetStatus(codes.Ok, "")
	}

	log.WithFields(map[string]any{
		"succeeded":   summary.Succeeded,
		"failed":      summary.Failed,
		"skipped":     summary.Skipped,
		"duration_ms": summary.Duration.Milliseconds(),
	}).Info("run finished")

	return summary, err
}

// runGroup blocks until every module of the group has reached a terminal
// state.
func (e *Executor) runGroup(ctx context.Context, log *logger.Logger, group int, entries []scheduler.GroupEntry, results []ModuleResult, lookup ExecutableLookup) error {
	ctx, span := e.tracer.Start(ctx, "engine.group", trace.WithAttributes(
		attribute.Int("group.index", group),
		attribute.Int("group.size", len(entries)),
	))
	defer span.End()

	p := pool.New().WithErrors().WithMaxGoroutines(e.maxWorkers)
	for i := range entries {
		i := i
		p.Go(func() error {
			return e.runModule(ctx, log, entries[i], &results[i], lookup)
		})
	}

	err := p.Wait()
	if err != nil {
		span.SetStatus(codes.Error, "group had failures")
	}
	return err
}

func (e *Executor) runModule(ctx context.Context, log *logger.Logger, entry scheduler.GroupEntry, result *ModuleResult, lookup ExecutableLookup) error {
	if ctx.Err() != nil {
		return nil
	}

	id := entry.Module.String()
	log = log.WithFields(map[string]any{"module": id, "group": entry.Group})

	ctx, span := e.tracer.Start(ctx, "engine.module", trace.WithAttributes(
		attribute.String("module.id", id),
		attribute.Int("group.index", entry.Group),
	))
	defer span.End()

	start := time.Now()
	exec := lookup.LookupExecutable(entry.Module)
	var err error
	if exec == nil {
		err = ErrModuleNotExecutable
	} else {
		err = safeExecute(ctx, exec)
	}
	result.Duration = time.Since(start)

	if err != nil {
		var execErr *scierrors.ExecutionError
		if !errors.As(err, &execErr) {
			err = scierrors.NewExecutionError(id, err)
		}
		result.Status = StatusFailed
		result.Err = err
		if _, signals := exec.(*network.BasicModule); !signals {
			if reporter, ok := lookup.(ErrorReporter); ok {
				reporter.IncrementErrorCode(entry.Module)
			}
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Error(err, "module failed")
		return err
	}

	result.Status = StatusSucceeded
	span.SetStatus(codes.Ok, "")
	log.Debug("module finished")
	return nil
}

func safeExecute(ctx context.Context, exec network.Executable) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return exec.Execute(ctx)
}
