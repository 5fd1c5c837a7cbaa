package frontier

import "github.com/google/btree"

const indexDegree = 16

// Windowed groups items into buckets of width delta keyed by the signed
// index floor(priority/delta), and visits buckets in ascending index order.
//
// A bucket's index lower-bounds every priority in it, so the first
// non-empty bucket always holds the global minimum and PopMin reproduces
// BinaryHeap's order exactly. In a search where delta does not exceed the
// minimum edge cost and the heuristic is consistent, this keeps the optimal
// expansion order without decrease-key.
//
// Push is O(1) amortised (O(log b) when it opens a new bucket, b being the
// number of open buckets). PopMin is O(1) amortised plus the occupancy of
// the bucket it pops from.
type Windowed[E any] struct {
	delta   float64
	buckets map[int64][]item[E]
	// indexes holds the keys of buckets in order, for successor lookups.
	indexes *btree.BTreeG[int64]
	minIdx  int64
	size    int
	nextSeq uint64
}

var _ Frontier[int] = (*Windowed[int])(nil)

func NewWindowed[E any](delta float64) (*Windowed[E], error) {
	if err := validateBucketWidth(delta); err != nil {
		return nil, err
	}
	return &Windowed[E]{
		delta:   delta,
		buckets: make(map[int64][]item[E]),
		indexes: btree.NewG[int64](indexDegree, func(a, b int64) bool { return a < b }),
	}, nil
}

func (w *Windowed[E]) Push(entry E, priority float64) {
	idx := bucketOf(priority, w.delta)
	bucket, ok := w.buckets[idx]
	if !ok {
		w.indexes.ReplaceOrInsert(idx)
	}
	w.buckets[idx] = append(bucket, item[E]{entry: entry, priority: priority, seq: w.nextSeq})
	w.nextSeq++
	if w.size == 0 || idx < w.minIdx {
		w.minIdx = idx
	}
	w.size++
}

func (w *Windowed[E]) PopMin() (E, bool) {
	var zero E
	if w.size == 0 {
		return zero, false
	}

	idx, ok := w.resolveMin()
	if !ok {
		// Size says non-empty but no bucket exists: the count drifted.
		w.size = 0
		return zero, false
	}

	it, rest := takeAt(w.buckets[idx], bestIn(w.buckets[idx]))
	w.size--
	if len(rest) > 0 {
		w.buckets[idx] = rest
		return it.entry, true
	}

	delete(w.buckets, idx)
	w.indexes.Delete(idx)
	// With nothing left minIdx stays stale; the next Push resets it.
	if next, found := w.successor(idx); found {
		w.minIdx = next
	}
	return it.entry, true
}

// resolveMin returns the bucket PopMin should take from. minIdx is a hint:
// when no bucket sits there it falls back to the successor, and failing
// that to the smallest index held.
func (w *Windowed[E]) resolveMin() (int64, bool) {
	if _, ok := w.buckets[w.minIdx]; ok {
		return w.minIdx, true
	}
	idx, ok := w.successor(w.minIdx)
	if !ok {
		idx, ok = w.indexes.Min()
	}
	if ok {
		w.minIdx = idx
	}
	return idx, ok
}

// successor returns the smallest open bucket index >= idx.
func (w *Windowed[E]) successor(idx int64) (int64, bool) {
	var next int64
	found := false
	w.indexes.AscendGreaterOrEqual(idx, func(i int64) bool {
		next, found = i, true
		return false
	})
	return next, found
}

func (w *Windowed[E]) Empty() bool { return w.size == 0 }

func (w *Windowed[E]) Size() int { return w.size }
