package engine

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/SeyhmusGuler/SCIRun/internal/logger"
	"github.com/SeyhmusGuler/SCIRun/internal/network"
	"github.com/SeyhmusGuler/SCIRun/internal/scheduler"
	scierrors "github.com/SeyhmusGuler/SCIRun/pkg/errors"
)

func TestExecuteNetworkRespectsGroupBarrier(t *testing.T) {
	t.Parallel()

	rec := newRecorder()
	net, m := newRecordedNetwork(t, rec, "Read", "Build", "Solve", "Show")
	link(t, net, m["Read"], m["Solve"])
	link(t, net, m["Build"], m["Solve"])
	link(t, net, m["Solve"], m["Show"])

	summary, err := NewExecutor(WithMaxWorkers(4)).ExecuteNetwork(context.Background(), net, nil)
	require.NoError(t, err)
	require.Equal(t, 4, summary.Succeeded)
	require.Equal(t, 3, summary.Groups)

	solveBegins := rec.position("Solve:0", true)
	require.Less(t, rec.position("Read:0", false), solveBegins)
	require.Less(t, rec.position("Build:0", false), solveBegins)
	require.Less(t, rec.position("Solve:0", false), rec.position("Show:0", true))
}

func TestExecuteRunsGroupConcurrently(t *testing.T) {
	t.Parallel()

	rec := newRecorder()
	rec.delay = 50 * time.Millisecond
	net, _ := newRecordedNetwork(t, rec, "A", "B", "C", "D")

	summary, err := NewExecutor(WithMaxWorkers(4)).ExecuteNetwork(context.Background(), net, nil)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Groups)
	require.GreaterOrEqual(t, rec.maxConcurrent(), 2)
}

func TestExecuteHonorsMaxWorkers(t *testing.T) {
	t.Parallel()

	rec := newRecorder()
	rec.delay = 5 * time.Millisecond
	net, _ := newRecordedNetwork(t, rec, "A", "B", "C", "D")

	_, err := NewExecutor(WithMaxWorkers(1)).ExecuteNetwork(context.Background(), net, nil)
	require.NoError(t, err)
	require.Equal(t, 1, rec.maxConcurrent())
}

func TestExecuteContinuesAfterModuleFailure(t *testing.T) {
	t.Parallel()

	rec := newRecorder()
	rec.fail["Source:0"] = errors.New("file not found")
	net, m := newRecordedNetwork(t, rec, "Source", "Other", "Sink")
	link(t, net, m["Source"], m["Sink"])
	link(t, net, m["Other"], m["Sink"])

	summary, err := NewExecutor().ExecuteNetwork(context.Background(), net, nil)
	require.Error(t, err)

	var execErr *scierrors.ExecutionError
	require.ErrorAs(t, err, &execErr)
	require.Equal(t, "Source:0", execErr.ModuleID)
	require.ErrorContains(t, err, "file not found")

	require.Equal(t, 1, summary.Failed)
	require.Equal(t, 2, summary.Succeeded)
	require.Equal(t, 1, net.ErrorCode())

	sink, ok := summary.Result(network.NewModuleID("Sink", 0))
	require.True(t, ok)
	require.Equal(t, StatusSucceeded, sink.Status)
	require.Equal(t, 1, sink.Group)

	require.ErrorAs(t, summary.Err(), &execErr)
}

func TestExecuteCountsEveryFailure(t *testing.T) {
	t.Parallel()

	rec := newRecorder()
	rec.fail["A:0"] = errors.New("a")
	rec.fail["B:0"] = errors.New("b")
	rec.panic["C:0"] = true
	net, _ := newRecordedNetwork(t, rec, "A", "B", "C", "D")

	summary, err := NewExecutor(WithMaxWorkers(2)).ExecuteNetwork(context.Background(), net, nil)
	require.Error(t, err)
	require.Equal(t, 3, summary.Failed)
	require.Equal(t, 1, summary.Succeeded)
	require.Equal(t, 3, net.ErrorCode())

	c, ok := summary.Result(network.NewModuleID("C", 0))
	require.True(t, ok)
	require.Equal(t, StatusFailed, c.Status)
	require.ErrorContains(t, c.Err, "panic: module exploded")
}

func TestExecuteStopsAfterCancellation(t *testing.T) {
	t.Parallel()

	rec := newRecorder()
	rec.block["Slow:0"] = make(chan struct{})
	net, m := newRecordedNetwork(t, rec, "Slow", "Next")
	link(t, net, m["Slow"], m["Next"])

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		for rec.position("Slow:0", true) < 0 {
			time.Sleep(time.Millisecond)
		}
		cancel()
	}()

	summary, err := NewExecutor().ExecuteNetwork(ctx, net, nil)
	require.ErrorIs(t, err, context.Canceled)

	// the in-flight group finishes, later groups never start
	require.GreaterOrEqual(t, rec.position("Slow:0", false), 0)
	require.Equal(t, -1, rec.position("Next:0", true))

	next, ok := summary.Result(network.NewModuleID("Next", 0))
	require.True(t, ok)
	require.Equal(t, StatusSkipped, next.Status)
	require.Equal(t, 1, summary.Skipped)
}

func TestExecuteReportsMissingModule(t *testing.T) {
	t.Parallel()

	rec := newRecorder()
	net, _ := newRecordedNetwork(t, rec, "A")

	order := scheduler.NewParallelModuleExecutionOrder([]scheduler.GroupEntry{
		{Group: 0, Module: network.NewModuleID("A", 0)},
		{Group: 1, Module: network.NewModuleID("Ghost", 0)},
	})

	summary, err := NewExecutor().Execute(context.Background(), order, net)
	require.ErrorIs(t, err, ErrModuleNotExecutable)
	require.Equal(t, 1, summary.Succeeded)
	require.Equal(t, 1, summary.Failed)
}

func TestExecuteRejectsNilLookup(t *testing.T) {
	t.Parallel()

	_, err := NewExecutor().Execute(context.Background(), scheduler.ParallelModuleExecutionOrder{}, nil)
	var nullErr *scierrors.NullHandleError
	require.ErrorAs(t, err, &nullErr)
}

func TestExecuteEmptyOrder(t *testing.T) {
	t.Parallel()

	net, _ := newRecordedNetwork(t, newRecorder())
	summary, err := NewExecutor().ExecuteNetwork(context.Background(), net, nil)
	require.NoError(t, err)
	require.Empty(t, summary.Results)
	require.Equal(t, 0, summary.Groups)
	require.NoError(t, summary.Err())

	_, err = uuid.Parse(summary.RunID)
	require.NoError(t, err)
}

func TestExecuteNetworkSkipsDisabledModules(t *testing.T) {
	t.Parallel()

	rec := newRecorder()
	net, m := newRecordedNetwork(t, rec, "A", "B")
	m["B"].(*network.BasicModule).SetDisabled(true)

	summary, err := NewExecutor().ExecuteNetwork(context.Background(), net, scheduler.EnabledModules)
	require.NoError(t, err)
	require.Len(t, summary.Results, 1)
	require.Equal(t, -1, rec.position("B:0", true))
}

func TestExecuteNetworkReturnsCycleError(t *testing.T) {
	t.Parallel()

	rec := newRecorder()
	net, m := newRecordedNetwork(t, rec, "A", "B")
	link(t, net, m["A"], m["B"])
	link(t, net, m["B"], m["A"])

	summary, err := NewExecutor().ExecuteNetwork(context.Background(), net, nil)
	require.Nil(t, summary)
	var cycleErr *scierrors.CycleError
	require.ErrorAs(t, err, &cycleErr)
	require.Empty(t, rec.snapshot())
}

func TestExecuteEmitsSpans(t *testing.T) {
	t.Parallel()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	rec := newRecorder()
	rec.fail["B:0"] = errors.New("bad input")
	net, m := newRecordedNetwork(t, rec, "A", "B", "C")
	link(t, net, m["A"], m["B"])

	_, err := NewExecutor(WithTracer(tp.Tracer("test"))).ExecuteNetwork(context.Background(), net, nil)
	require.Error(t, err)

	counts := map[string]int{}
	var failedModuleEvents int
	for _, span := range sr.Ended() {
		counts[span.Name()]++
		if span.Name() == "engine.module" && len(span.Events()) > 0 {
			failedModuleEvents++
		}
	}
	require.Equal(t, map[string]int{"engine.run": 1, "engine.group": 2, "engine.module": 3}, counts)
	require.Equal(t, 1, failedModuleEvents)
}

func TestExecuteLogsRunID(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := logger.New(logger.Options{Level: "info", Writer: buf})
	require.NoError(t, err)

	net, _ := newRecordedNetwork(t, newRecorder(), "A")
	summary, err := NewExecutor(WithLogger(log)).ExecuteNetwork(context.Background(), net, nil)
	require.NoError(t, err)

	require.Contains(t, buf.String(), `"run_id":"`+summary.RunID+`"`)
	require.Contains(t, buf.String(), `"component":"executor"`)
	require.Contains(t, buf.String(), "run finished")
}

// plainModule executes without raising the module error signal.
type plainModule struct {
	*network.BasicModule
	err error
}

func (m *plainModule) Execute(context.Context) error { return m.err }

func TestExecuteCountsFailuresOfPlainExecutables(t *testing.T) {
	t.Parallel()

	factory := network.ModuleFactoryFunc(func(info network.ModuleLookupInfo) (network.Module, error) {
		basic, err := network.NewBuilder().WithName(info.ModuleName).Build()
		if err != nil {
			return nil, err
		}
		m := &plainModule{BasicModule: basic}
		if info.ModuleName == "Broken" {
			m.err = errors.New("device unavailable")
		}
		return m, nil
	})
	net := network.New(factory, nil)
	for _, name := range []string{"Broken", "Fine"} {
		_, err := net.AddModule(network.ModuleLookupInfo{ModuleName: name})
		require.NoError(t, err)
	}

	summary, err := NewExecutor().ExecuteNetwork(context.Background(), net, nil)
	require.ErrorContains(t, err, "device unavailable")
	require.Equal(t, 1, summary.Failed)
	require.Equal(t, summary.Failed, net.ErrorCode())
}

func TestExecuteCountsMissingModules(t *testing.T) {
	t.Parallel()

	rec := newRecorder()
	rec.fail["A:0"] = errors.New("bad header")
	net, _ := newRecordedNetwork(t, rec, "A")

	order := scheduler.NewParallelModuleExecutionOrder([]scheduler.GroupEntry{
		{Group: 0, Module: network.NewModuleID("A", 0)},
		{Group: 0, Module: network.NewModuleID("Ghost", 0)},
		{Group: 1, Module: network.NewModuleID("Ghost", 1)},
	})

	summary, err := NewExecutor().Execute(context.Background(), order, net)
	require.ErrorIs(t, err, ErrModuleNotExecutable)
	require.Equal(t, 3, summary.Failed)
	require.Equal(t, summary.Failed, net.ErrorCode())
}

type lookupOnly struct{ net *network.Network }

func (l lookupOnly) LookupExecutable(id network.ModuleID) network.Executable {
	return l.net.LookupExecutable(id)
}

func TestExecuteWithoutReporterLeavesCounterToModules(t *testing.T) {
	t.Parallel()

	net, _ := newRecordedNetwork(t, newRecorder(), "A")
	order := scheduler.NewParallelModuleExecutionOrder([]scheduler.GroupEntry{
		{Group: 0, Module: network.NewModuleID("Ghost", 0)},
	})

	summary, err := NewExecutor().Execute(context.Background(), order, lookupOnly{net})
	require.Error(t, err)
	require.Equal(t, 1, summary.Failed)
	require.Equal(t, 0, net.ErrorCode())
}
