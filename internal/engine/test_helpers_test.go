package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SeyhmusGuler/SCIRun/internal/network"
)

type event struct {
	module string
	begin  bool
}

// recorder captures begin/end events of every module in the order they
// happened and lets tests inject per-module behavior.
type recorder struct {
	mu      sync.Mutex
	events  []event
	running int
	peak    int

	delay time.Duration
	fail  map[string]error
	panic map[string]bool
	block map[string]chan struct{}
}

func newRecorder() *recorder {
	return &recorder{
		fail:  make(map[string]error),
		panic: make(map[string]bool),
		block: make(map[string]chan struct{}),
	}
}

func (r *recorder) execute(ctx context.Context, m *network.BasicModule) error {
	id := m.ID().String()

	r.mu.Lock()
	r.events = append(r.events, event{module: id, begin: true})
	r.running++
	if r.running > r.peak {
		r.peak = r.running
	}
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.events = append(r.events, event{module: id})
		r.running--
		r.mu.Unlock()
	}()

	if ch, ok := r.block[id]; ok {
		select {
		case <-ch:
		case <-ctx.Done():
		}
	}
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	if r.panic[id] {
		panic("module exploded")
	}
	return r.fail[id]
}

func (r *recorder) snapshot() []event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event(nil), r.events...)
}

func (r *recorder) maxConcurrent() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.peak
}

// position returns the index of the first matching event, or -1.
func (r *recorder) position(module string, begin bool) int {
	for i, e := range r.snapshot() {
		if e.module == module && e.begin == begin {
			return i
		}
	}
	return -1
}

// newRecordedNetwork builds a network of pass-through modules named by
// names, each with one input and one output, whose work is done by rec.
func newRecordedNetwork(t *testing.T, rec *recorder, names ...string) (*network.Network, map[string]network.Module) {
	t.Helper()
	factory := network.ModuleFactoryFunc(func(info network.ModuleLookupInfo) (network.Module, error) {
		return network.NewBuilder().WithName(info.ModuleName).
			AddInputPort("in", "Field").
			AddOutputPort("out", "Field").
			WithExecute(rec.execute).
			Build()
	})

	net := network.New(factory, nil)
	modules := make(map[string]network.Module, len(names))
	for _, name := range names {
		m, err := net.AddModule(network.ModuleLookupInfo{ModuleName: name})
		require.NoError(t, err)
		modules[name] = m
	}
	return net, modules
}

func link(t *testing.T, net *network.Network, from, to network.Module) {
	t.Helper()
	id, err := net.Connect(network.ConnectionOutputPort{Module: from, Port: 0}, network.ConnectionInputPort{Module: to, Port: 0})
	require.NoError(t, err)
	require.False(t, id.IsEmpty())
}
