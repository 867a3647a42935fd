package scheduler

import "container/heap"

type intHeap []int

func (h intHeap) Len() int           { return len(h) }
func (h intHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h intHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *intHeap) Push(x any)        { *h = append(*h, x.(int)) }
func (h *intHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// minQueue yields the smallest pending vertex first.
type minQueue struct {
	h intHeap
}

func newMinQueue() *minQueue {
	return &minQueue{}
}

func (q *minQueue) push(v int) { heap.Push(&q.h, v) }
func (q *minQueue) pop() int   { return heap.Pop(&q.h).(int) }
func (q *minQueue) len() int   { return q.h.Len() }
