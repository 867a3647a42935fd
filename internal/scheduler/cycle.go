package scheduler

// findCycle returns the vertices of one dependency cycle with the first
// vertex repeated at the end, or nil if the graph is acyclic.
func (g *Graph) findCycle() []int {
	visiting := make([]bool, g.vertices)
	visited := make([]bool, g.vertices)
	var stack []int

	var cycle []int
	var dfs func(int) bool
	dfs = func(v int) bool {
		visiting[v] = true
		stack = append(stack, v)

		for _, next := range g.successors[v] {
			if visited[next] {
				continue
			}
			if visiting[next] {
				idx := indexOf(stack, next)
				if idx >= 0 {
					cycle = append([]int{}, stack[idx:]...)
					cycle = append(cycle, next)
				}
				return true
			}
			if dfs(next) {
				return true
			}
		}

		visiting[v] = false
		visited[v] = true
		stack = stack[:len(stack)-1]
		return false
	}

	for v := 0; v < g.vertices; v++ {
		if visited[v] {
			continue
		}
		if dfs(v) {
			break
		}
	}

	return cycle
}

func indexOf(slice []int, target int) int {
	for i, v := range slice {
		if v == target {
			return i
		}
	}
	return -1
}
