package frontier

import "math"

// An item is one stored insertion: the entry, the priority it was pushed
// with, and the sequence number that breaks priority ties.
type item[E any] struct {
	entry    E
	priority float64
	seq      uint64
}

// before orders items by priority, then by insertion order.
func (it item[E]) before(other item[E]) bool {
	if it.priority == other.priority {
		return it.seq < other.seq
	}
	return it.priority < other.priority
}

// bucketOf returns floor(priority/delta), saturated to the int64 range.
// Quotients past either end share the end bucket; bestIn still orders them.
func bucketOf(priority, delta float64) int64 {
	q := math.Floor(priority / delta)
	switch {
	case q >= 9.2233720368547758e18: // 2^63
		return math.MaxInt64
	case q < -9.2233720368547758e18:
		return math.MinInt64
	}
	return int64(q)
}

// bestIn returns the position of the smallest item in bucket.
// bucket must not be empty.
func bestIn[E any](bucket []item[E]) int {
	best := 0
	for i := 1; i < len(bucket); i++ {
		if bucket[i].before(bucket[best]) {
			best = i
		}
	}
	return best
}

// takeAt removes bucket[i] by moving the last item into its slot. Order
// inside a bucket carries no meaning; bestIn scans all of it.
func takeAt[E any](bucket []item[E], i int) (item[E], []item[E]) {
	it := bucket[i]
	last := len(bucket) - 1
	bucket[i] = bucket[last]
	bucket[last] = item[E]{} // don't stop the GC from reclaiming the entry
	return it, bucket[:last]
}
