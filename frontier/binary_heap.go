package frontier

import "container/heap"

// An itemQueue implements heap.Interface and holds items.
type itemQueue[E any] []item[E]

var _ heap.Interface = (*itemQueue[int])(nil)

func (iq itemQueue[E]) Len() int { return len(iq) }

func (iq itemQueue[E]) Less(i, j int) bool {
	// We want Pop to give us the lowest, not highest, priority.
	return iq[i].before(iq[j])
}

func (iq itemQueue[E]) Swap(i, j int) {
	iq[i], iq[j] = iq[j], iq[i]
}

func (iq *itemQueue[E]) Push(x any) {
	*iq = append(*iq, x.(item[E]))
}

func (iq *itemQueue[E]) Pop() any {
	old := *iq
	n := len(old)
	it := old[n-1]
	old[n-1] = item[E]{}
	*iq = old[:n-1]
	return it
}

// BinaryHeap is the exact frontier: PopMin always returns the smallest
// priority currently stored, earliest insertion first among equals.
type BinaryHeap[E any] struct {
	queue   itemQueue[E]
	nextSeq uint64
}

var _ Frontier[int] = (*BinaryHeap[int])(nil)

func NewBinaryHeap[E any]() *BinaryHeap[E] {
	return &BinaryHeap[E]{}
}

// Push is O(log n).
func (bh *BinaryHeap[E]) Push(entry E, priority float64) {
	heap.Push(&bh.queue, item[E]{entry: entry, priority: priority, seq: bh.nextSeq})
	bh.nextSeq++
}

// PopMin is O(log n).
func (bh *BinaryHeap[E]) PopMin() (E, bool) {
	if len(bh.queue) == 0 {
		var zero E
		return zero, false
	}
	it := heap.Pop(&bh.queue).(item[E])
	return it.entry, true
}

func (bh *BinaryHeap[E]) Empty() bool { return len(bh.queue) == 0 }

func (bh *BinaryHeap[E]) Size() int { return len(bh.queue) }
