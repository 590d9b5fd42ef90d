package router

import "container/heap"

// ArcEntry is one entry of the Arc Work Queue: an arc pending routing,
// with the priority it was given on insertion.
type ArcEntry struct {
	Arc      Arc
	Priority Delay
}

// arcHeap is a max-heap by Priority: container/heap calls Less to decide
// ordering, and we want the highest priority — the tightest-slack arc —
// to surface first, so Less inverts the usual sense.
type arcHeap []ArcEntry

func (h arcHeap) Len() int            { return len(h) }
func (h arcHeap) Less(i, j int) bool  { return h[i].Priority > h[j].Priority }
func (h arcHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *arcHeap) Push(x interface{}) { *h = append(*h, x.(ArcEntry)) }
func (h *arcHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// ArcWorkQueue is the min-heap (by negated priority, i.e. a max-heap on
// priority) of arcs pending routing. An arc may appear at most once; the
// queued membership set enforces that even though priorities can go
// stale as budgets and topology shift across iterations — this package
// chooses lazy handling (skip a redundant insert) over a decrease-key
// heap.
type ArcWorkQueue struct {
	h      arcHeap
	queued map[Arc]struct{}
}

// NewArcWorkQueue returns an empty work queue.
func NewArcWorkQueue() *ArcWorkQueue {
	return &ArcWorkQueue{queued: make(map[Arc]struct{})}
}

// Insert adds arc with the given priority if it is not already queued.
// Returns false if arc was already present (a no-op).
func (q *ArcWorkQueue) Insert(arc Arc, priority Delay) bool {
	if _, ok := q.queued[arc]; ok {
		return false
	}
	heap.Push(&q.h, ArcEntry{Arc: arc, Priority: priority})
	q.queued[arc] = struct{}{}
	return true
}

// Pop removes and returns the highest-priority arc. ok is false if the
// queue is empty.
func (q *ArcWorkQueue) Pop() (arc Arc, ok bool) {
	if q.h.Len() == 0 {
		return Arc{}, false
	}
	entry := heap.Pop(&q.h).(ArcEntry)
	delete(q.queued, entry.Arc)
	return entry.Arc, true
}

// Len reports how many arcs are pending.
func (q *ArcWorkQueue) Len() int {
	return q.h.Len()
}

// Contains reports whether arc is currently queued.
func (q *ArcWorkQueue) Contains(arc Arc) bool {
	_, ok := q.queued[arc]
	return ok
}
