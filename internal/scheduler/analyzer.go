package scheduler

import (
	"fmt"

	"github.com/SeyhmusGuler/SCIRun/internal/logger"
	"github.com/SeyhmusGuler/SCIRun/internal/network"
	scierrors "github.com/SeyhmusGuler/SCIRun/pkg/errors"
)

// NetworkView is the read-only surface of a network that scheduling needs.
// *network.Network satisfies it.
type NetworkView interface {
	ModuleCount() int
	Module(i int) (network.Module, error)
	Connections() []network.ConnectionDescription
}

// NetworkGraphAnalyzer is a dependency graph over the filtered modules of a
// network snapshot together with its topological order. It does not follow
// later network mutation; build a new one instead.
type NetworkGraphAnalyzer struct {
	vertexOf map[network.ModuleID]int
	moduleOf []network.ModuleID
	graph    *Graph
	order    []int
}

// NewNetworkGraphAnalyzer builds the graph for the modules of net accepted
// by filter and sorts it. A cyclic graph yields a *errors.CycleError and no
// analyzer.
func NewNetworkGraphAnalyzer(net NetworkView, filter ModuleFilter, log *logger.Logger) (*NetworkGraphAnalyzer, error) {
	if filter == nil {
		filter = AllModules
	}
	log = log.Component("analyzer")

	a := &NetworkGraphAnalyzer{vertexOf: make(map[network.ModuleID]int)}

	for i := 0; i < net.ModuleCount(); i++ {
		module, err := net.Module(i)
		if err != nil {
			return nil, err
		}
		if module == nil || !filter(module) {
			continue
		}
		id := module.ID()
		if _, dup := a.vertexOf[id]; dup {
			return nil, scierrors.NewInvalidArgumentError(id.String(), "duplicate module id in network")
		}
		a.vertexOf[id] = len(a.moduleOf)
		a.moduleOf = append(a.moduleOf, id)
	}

	var edges []Edge
	for _, cd := range net.Connections() {
		from, okOut := a.vertexOf[cd.Out.ModuleID]
		to, okIn := a.vertexOf[cd.In.ModuleID]
		if okOut && okIn {
			edges = append(edges, Edge{From: from, To: to})
		}
	}

	a.graph = NewGraph(len(a.moduleOf), edges)

	order, cycle := a.graph.TopologicalSort()
	if cycle != nil {
		path := make([]string, len(cycle))
		for i, v := range cycle {
			path[i] = a.moduleOf[v].String()
		}
		cause := fmt.Errorf("back edge %s -> %s", path[len(path)-2], path[len(path)-1])
		err := scierrors.NewCycleError(path, cause)
		log.Error(err, "network is not schedulable")
		return nil, err
	}
	a.order = order

	log.WithFields(map[string]any{"modules": len(a.moduleOf), "edges": len(edges)}).Debug("network graph built")
	return a, nil
}

// ModuleAt returns the module id assigned to vertex.
func (a *NetworkGraphAnalyzer) ModuleAt(vertex int) (network.ModuleID, error) {
	if vertex < 0 || vertex >= len(a.moduleOf) {
		return network.ModuleID{}, scierrors.NewOutOfRangeError("vertex", vertex, len(a.moduleOf))
	}
	return a.moduleOf[vertex], nil
}

// VertexOf returns the vertex assigned to id.
func (a *NetworkGraphAnalyzer) VertexOf(id network.ModuleID) (int, bool) {
	v, ok := a.vertexOf[id]
	return v, ok
}

// TopologicalOrder returns the vertices so that every edge's source comes
// before its target. Each call returns a fresh copy.
func (a *NetworkGraphAnalyzer) TopologicalOrder() []int {
	return append([]int(nil), a.order...)
}

// TopologicalModules is TopologicalOrder mapped to module ids.
func (a *NetworkGraphAnalyzer) TopologicalModules() []network.ModuleID {
	ids := make([]network.ModuleID, len(a.order))
	for i, v := range a.order {
		ids[i] = a.moduleOf[v]
	}
	return ids
}

// ModuleCount returns the number of filtered modules.
func (a *NetworkGraphAnalyzer) ModuleCount() int {
	return len(a.moduleOf)
}

// Graph exposes the dependency graph.
func (a *NetworkGraphAnalyzer) Graph() *Graph {
	return a.graph
}
