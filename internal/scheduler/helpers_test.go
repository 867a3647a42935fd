package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SeyhmusGuler/SCIRun/internal/network"
)

// newPassThroughNetwork creates a network whose modules each have one input
// and one output port, named by the given ids in insertion order.
func newPassThroughNetwork(t *testing.T, names ...string) (*network.Network, map[string]network.Module) {
	t.Helper()
	counters := make(map[string]int)
	factory := network.ModuleFactoryFunc(func(info network.ModuleLookupInfo) (network.Module, error) {
		id := network.NewModuleID(info.ModuleName, counters[info.ModuleName])
		counters[info.ModuleName]++
		return network.NewBuilder().WithID(id).
			AddInputPort("in", "Field").
			AddOutputPort("out", "Field").
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

func connect(t *testing.T, net *network.Network, from, to network.Module) {
	t.Helper()
	id, err := net.Connect(network.ConnectionOutputPort{Module: from, Port: 0}, network.ConnectionInputPort{Module: to, Port: 0})
	require.NoError(t, err)
	require.False(t, id.IsEmpty())
}

func ids(names ...string) []network.ModuleID {
	out := make([]network.ModuleID, len(names))
	for i, n := range names {
		out[i] = network.NewModuleID(n, 0)
	}
	return out
}
