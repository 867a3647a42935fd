package scheduler

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/SeyhmusGuler/SCIRun/internal/network"
)

// GroupEntry places one module in an execution group.
type GroupEntry struct {
	Group  int
	Module network.ModuleID
}

// ParallelModuleExecutionOrder maps execution groups to modules. Modules in
// the same group have no dependency edge between them and may run
// concurrently; group k+1 must not start before group k has finished.
// Entries are ordered by ascending group, then by vertex order. The value is
// immutable and safe to copy.
type ParallelModuleExecutionOrder struct {
	entries []GroupEntry
}

// NewParallelModuleExecutionOrder sorts entries by group, keeping the given
// order within a group.
func NewParallelModuleExecutionOrder(entries []GroupEntry) ParallelModuleExecutionOrder {
	sorted := append([]GroupEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Group < sorted[j].Group
	})
	return ParallelModuleExecutionOrder{entries: sorted}
}

// BuildParallelOrder assigns each vertex its longest-path level: 0 without
// predecessors, otherwise one more than the highest predecessor level. One
// pass over the topological order suffices because every predecessor is
// visited first.
func BuildParallelOrder(a *NetworkGraphAnalyzer) ParallelModuleExecutionOrder {
	g := a.Graph()
	levels := make([]int, g.VertexCount())
	for _, v := range a.TopologicalOrder() {
		level := 0
		for _, u := range g.preds[v] {
			if levels[u]+1 > level {
				level = levels[u] + 1
			}
		}
		levels[v] = level
	}

	entries := make([]GroupEntry, 0, len(levels))
	for v, level := range levels {
		entries = append(entries, GroupEntry{Group: level, Module: a.moduleOf[v]})
	}
	return NewParallelModuleExecutionOrder(entries)
}

// Entries returns all group/module pairs in iteration order.
func (o ParallelModuleExecutionOrder) Entries() []GroupEntry {
	return append([]GroupEntry(nil), o.entries...)
}

// Len returns the number of scheduled modules.
func (o ParallelModuleExecutionOrder) Len() int { return len(o.entries) }

// MinGroup returns the lowest group, or -1 when empty.
func (o ParallelModuleExecutionOrder) MinGroup() int {
	if len(o.entries) == 0 {
		return -1
	}
	return o.entries[0].Group
}

// MaxGroup returns the highest group, or -1 when empty.
func (o ParallelModuleExecutionOrder) MaxGroup() int {
	if len(o.entries) == 0 {
		return -1
	}
	return o.entries[len(o.entries)-1].Group
}

// GroupRange returns the half-open index range [begin, end) of Entries that
// belong to group. An absent group yields an empty range.
func (o ParallelModuleExecutionOrder) GroupRange(group int) (begin, end int) {
	begin = sort.Search(len(o.entries), func(i int) bool { return o.entries[i].Group >= group })
	end = sort.Search(len(o.entries), func(i int) bool { return o.entries[i].Group > group })
	return begin, end
}

// Group returns the modules of one group in iteration order.
func (o ParallelModuleExecutionOrder) Group(group int) []network.ModuleID {
	begin, end := o.GroupRange(group)
	ids := make([]network.ModuleID, 0, end-begin)
	for _, e := range o.entries[begin:end] {
		ids = append(ids, e.Module)
	}
	return ids
}

// GroupOf returns the group assigned to id.
func (o ParallelModuleExecutionOrder) GroupOf(id network.ModuleID) (int, bool) {
	for _, e := range o.entries {
		if e.Module == id {
			return e.Group, true
		}
	}
	return 0, false
}

// Equal reports whether both orders hold identical entries.
func (o ParallelModuleExecutionOrder) Equal(other ParallelModuleExecutionOrder) bool {
	return slices.Equal(o.entries, other.entries)
}

// String renders one line per group: the group number followed by its ids.
func (o ParallelModuleExecutionOrder) String() string {
	var b strings.Builder
	for group := o.MinGroup(); group >= 0 && group <= o.MaxGroup(); group++ {
		ids := o.Group(group)
		if len(ids) == 0 {
			continue
		}
		names := make([]string, len(ids))
		for i, id := range ids {
			names[i] = id.String()
		}
		fmt.Fprintf(&b, "%d %s\n", group, strings.Join(names, " "))
	}
	return b.String()
}
