package taskrunner

import "time"

// item is one scheduled unit of work. The sequence number is assigned under
// the scheduler lock and is strictly increasing per scheduler core, so items
// with equal deadlines execute in post order.
type item struct {
	deadline time.Duration
	seq      uint64
	task     Task
}

// itemHeap is a min-heap ordered by ascending (deadline, seq). It implements
// heap.Interface; all access happens under the owning core's lock.
type itemHeap []*item

func (h itemHeap) Len() int { return len(h) }

func (h itemHeap) Less(i, j int) bool {
	if h[i].deadline != h[j].deadline {
		return h[i].deadline < h[j].deadline
	}
	return h[i].seq < h[j].seq
}

func (h itemHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *itemHeap) Push(x any) {
	*h = append(*h, x.(*item))
}

func (h *itemHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil // avoid memory leak
	*h = old[:n-1]
	return it
}
