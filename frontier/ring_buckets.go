package frontier

import "math"

// RingBuckets discretises priority space into a ring of k buckets of width
// delta. Push is an O(1) append; PopMin scans at most k buckets plus the
// contents of one.
//
// The ring wraps modulo k, so priorities that differ by a multiple of
// k*delta share a bucket and PopMin only returns the minimum of the first
// non-empty bucket at or after the cached minimum. Order is non-decreasing
// inside one aligned window of k*delta and approximate beyond it. Use it for
// bounded-suboptimal search with delta chosen against the minimum edge cost
// and the heuristic weight; use Windowed or BinaryHeap when optimality
// matters.
type RingBuckets[E any] struct {
	delta   float64
	k       int
	buckets [][]item[E]
	size    int
	nextSeq uint64

	// minIdx and minPriority are a hint for where PopMin starts scanning.
	// They are never trusted to be the true minimum.
	minIdx      int
	minPriority float64
}

var _ Frontier[int] = (*RingBuckets[int])(nil)

func NewRingBuckets[E any](delta float64, k int) (*RingBuckets[E], error) {
	if err := validateBucketWidth(delta); err != nil {
		return nil, err
	}
	if err := validateRingSize(k); err != nil {
		return nil, err
	}
	return &RingBuckets[E]{
		delta:       delta,
		k:           k,
		buckets:     make([][]item[E], k),
		minPriority: math.Inf(1),
	}, nil
}

// slot maps a priority onto the ring. The floor quotient may be negative,
// so the remainder is corrected into [0, k) explicitly.
func (rb *RingBuckets[E]) slot(priority float64) int {
	k := int64(rb.k)
	r := bucketOf(priority, rb.delta) % k
	if r < 0 {
		r += k
	}
	return int(r)
}

func (rb *RingBuckets[E]) Push(entry E, priority float64) {
	idx := rb.slot(priority)
	rb.buckets[idx] = append(rb.buckets[idx], item[E]{entry: entry, priority: priority, seq: rb.nextSeq})
	rb.nextSeq++
	rb.size++
	if priority < rb.minPriority {
		rb.minPriority = priority
		rb.minIdx = idx
	}
}

func (rb *RingBuckets[E]) PopMin() (E, bool) {
	var zero E
	if rb.size == 0 {
		return zero, false
	}

	for off := 0; off < rb.k; off++ {
		idx := (rb.minIdx + off) % rb.k
		bucket := rb.buckets[idx]
		if len(bucket) == 0 {
			continue
		}
		it, rest := takeAt(bucket, bestIn(bucket))
		rb.buckets[idx] = rest
		rb.size--
		rb.minIdx = idx
		rb.minPriority = it.priority
		return it.entry, true
	}

	// Size says non-empty but every bucket is: the count drifted.
	rb.size = 0
	rb.minPriority = math.Inf(1)
	return zero, false
}

func (rb *RingBuckets[E]) Empty() bool { return rb.size == 0 }

func (rb *RingBuckets[E]) Size() int { return rb.size }
