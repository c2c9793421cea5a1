package engine

import "container/heap"

// eventQueue is a min-heap of predictions keyed by time. It supports only
// insertion and extraction of the earliest entry; stale entries are filtered
// at pop time by the caller, so the heap grows with total insertions rather
// than particle count. Ordering among equal times is whatever the heap
// yields.
type eventQueue struct {
	events eventHeap
}

func newEventQueue() *eventQueue {
	q := &eventQueue{events: make(eventHeap, 0)}
	heap.Init(&q.events)
	return q
}

func (q *eventQueue) push(e *event) {
	heap.Push(&q.events, e)
}

func (q *eventQueue) pop() *event {
	if q.len() == 0 {
		return nil
	}
	return heap.Pop(&q.events).(*event)
}

func (q *eventQueue) len() int {
	return q.events.Len()
}

type eventHeap []*event

func (h eventHeap) Len() int           { return len(h) }
func (h eventHeap) Less(i, j int) bool { return h[i].time < h[j].time }
func (h eventHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(*event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}
