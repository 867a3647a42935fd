package scheduler

import scierrors "github.com/SeyhmusGuler/SCIRun/pkg/errors"

// Edge is a directed dependency from an output vertex to an input vertex.
type Edge struct {
	From int
	To   int
}

// Graph is an immutable directed graph over vertices 0..n-1.
type Graph struct {
	vertices   int
	edges      []Edge
	successors [][]int
	preds      [][]int
}

// NewGraph builds a graph from a vertex count and edge list. Edges that
// reference vertices outside 0..n-1 are ignored.
func NewGraph(n int, edges []Edge) *Graph {
	if n < 0 {
		n = 0
	}
	g := &Graph{
		vertices:   n,
		successors: make([][]int, n),
		preds:      make([][]int, n),
	}
	for _, e := range edges {
		if e.From < 0 || e.From >= n || e.To < 0 || e.To >= n {
			continue
		}
		g.edges = append(g.edges, e)
		g.successors[e.From] = append(g.successors[e.From], e.To)
		g.preds[e.To] = append(g.preds[e.To], e.From)
	}
	return g
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return g.vertices }

// Edges returns a copy of the edge list.
func (g *Graph) Edges() []Edge { return append([]Edge(nil), g.edges...) }

// Successors returns the vertices v points to.
func (g *Graph) Successors(v int) ([]int, error) {
	if err := g.checkVertex(v); err != nil {
		return nil, err
	}
	return append([]int(nil), g.successors[v]...), nil
}

// Predecessors returns the vertices pointing to v.
func (g *Graph) Predecessors(v int) ([]int, error) {
	if err := g.checkVertex(v); err != nil {
		return nil, err
	}
	return append([]int(nil), g.preds[v]...), nil
}

// InDegree returns the number of edges ending at v.
func (g *Graph) InDegree(v int) (int, error) {
	if err := g.checkVertex(v); err != nil {
		return 0, err
	}
	return len(g.preds[v]), nil
}

func (g *Graph) checkVertex(v int) error {
	if v < 0 || v >= g.vertices {
		return scierrors.NewOutOfRangeError("vertex", v, g.vertices)
	}
	return nil
}

// TopologicalSort orders the vertices with Kahn's algorithm, releasing ready
// vertices in ascending index order. When the graph is cyclic it returns a
// nil order and one cycle as a vertex path whose first vertex is repeated at
// the end.
func (g *Graph) TopologicalSort() (order []int, cycle []int) {
	indegree := make([]int, g.vertices)
	for v := 0; v < g.vertices; v++ {
		indegree[v] = len(g.preds[v])
	}

	ready := newMinQueue()
	for v := 0; v < g.vertices; v++ {
		if indegree[v] == 0 {
			ready.push(v)
		}
	}

	order = make([]int, 0, g.vertices)
	for ready.len() > 0 {
		v := ready.pop()
		order = append(order, v)
		for _, next := range g.successors[v] {
			indegree[next]--
			if indegree[next] == 0 {
				ready.push(next)
			}
		}
	}

	if len(order) != g.vertices {
		return nil, g.findCycle()
	}
	return order, nil
}
