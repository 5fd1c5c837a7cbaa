package frontier

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pushed struct {
	id       int
	priority float64
}

func must[F any](f F, err error) F {
	if err != nil {
		panic(err)
	}
	return f
}

func variants() map[string]func() Frontier[pushed] {
	return map[string]func() Frontier[pushed]{
		"heap":   func() Frontier[pushed] { return NewBinaryHeap[pushed]() },
		"ring":   func() Frontier[pushed] { return must(NewRingBuckets[pushed](1.0, 4)) },
		"window": func() Frontier[pushed] { return must(NewWindowed[pushed](1.0)) },
	}
}

func pushAll(f Frontier[pushed], priorities ...float64) {
	for i, p := range priorities {
		f.Push(pushed{id: i, priority: p}, p)
	}
}

func drain[E any](f Frontier[E]) []E {
	var out []E
	for {
		e, ok := f.PopMin()
		if !ok {
			return out
		}
		out = append(out, e)
	}
}

func ids(items []pushed) []int {
	out := make([]int, 0, len(items))
	for _, it := range items {
		out = append(out, it.id)
	}
	return out
}

func priorities(items []pushed) []float64 {
	out := make([]float64, 0, len(items))
	for _, it := range items {
		out = append(out, it.priority)
	}
	return out
}

func TestHeapPopsInPriorityOrder(t *testing.T) {
	t.Parallel()

	bh := NewBinaryHeap[pushed]()
	pushAll(bh, 3.0, 1.0, 2.0)

	assert.Equal(t, []float64{1.0, 2.0, 3.0}, priorities(drain[pushed](bh)))
	assert.True(t, bh.Empty())
}

func TestEqualPrioritiesPopInInsertionOrder(t *testing.T) {
	t.Parallel()

	for name, newFrontier := range variants() {
		newFrontier := newFrontier
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			f := newFrontier()
			pushAll(f, 1.0, 1.0)
			assert.Equal(t, []int{0, 1}, ids(drain(f)))
		})
	}
}

func TestHeapTieBreakIsFIFO(t *testing.T) {
	t.Parallel()

	bh := NewBinaryHeap[pushed]()
	for i := 0; i < 100; i++ {
		bh.Push(pushed{id: i, priority: 7}, 7)
	}
	out := ids(drain[pushed](bh))
	for i, id := range out {
		require.Equal(t, i, id)
	}
}

func TestRingResolvesNegativePriorities(t *testing.T) {
	t.Parallel()

	rb, err := NewRingBuckets[pushed](1.0, 4)
	require.NoError(t, err)
	pushAll(rb, -0.5, 0.2)

	first, ok := rb.PopMin()
	require.True(t, ok)
	assert.Equal(t, -0.5, first.priority)
	assert.Equal(t, 3, rb.slot(-0.5))
	assert.Equal(t, 3, rb.slot(-4.5))
	assert.Equal(t, 0, rb.slot(-4.0))
}

func TestRingOrdersWithinOneRing(t *testing.T) {
	t.Parallel()

	rb, err := NewRingBuckets[pushed](1.0, 8)
	require.NoError(t, err)
	pushAll(rb, 3.0, 1.0, 2.0)

	assert.Equal(t, []int{1, 2, 0}, ids(drain[pushed](rb)))
	assert.True(t, rb.Empty())
}

func TestRingWraparoundIsApproximate(t *testing.T) {
	t.Parallel()

	// 0.5 and 4.5 share slot 0 of a 4-slot ring, so 4.5 comes out before 1.5.
	rb, err := NewRingBuckets[pushed](1.0, 4)
	require.NoError(t, err)
	pushAll(rb, 0.5, 4.5, 1.5)

	assert.Equal(t, []float64{0.5, 4.5, 1.5}, priorities(drain[pushed](rb)))
}

func TestWindowedPicksSmallestInsideBucket(t *testing.T) {
	t.Parallel()

	w, err := NewWindowed[pushed](1.0)
	require.NoError(t, err)
	pushAll(w, 0.2, 0.2, 0.1)
	require.Equal(t, 3, w.Size())

	assert.Equal(t, []int{2, 0, 1}, ids(drain[pushed](w)))
	assert.True(t, w.Empty())
}

func TestPopOnEmptyIsIdempotent(t *testing.T) {
	t.Parallel()

	for name, newFrontier := range variants() {
		newFrontier := newFrontier
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			f := newFrontier()
			for i := 0; i < 3; i++ {
				e, ok := f.PopMin()
				assert.False(t, ok)
				assert.Equal(t, pushed{}, e)
				assert.Equal(t, 0, f.Size())
				assert.True(t, f.Empty())
			}

			f.Push(pushed{id: 1}, 0.5)
			_, ok := f.PopMin()
			require.True(t, ok)
			_, ok = f.PopMin()
			assert.False(t, ok)
			assert.Equal(t, 0, f.Size())
		})
	}
}

func TestSizeTracksPushesAndPops(t *testing.T) {
	t.Parallel()

	for name, newFrontier := range variants() {
		newFrontier := newFrontier
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			f := newFrontier()
			r := rand.New(rand.NewSource(7))
			pushes, pops := 0, 0
			for i := 0; i < 2000; i++ {
				if r.Intn(3) == 0 {
					if _, ok := f.PopMin(); ok {
						pops++
					}
				} else {
					p := r.Float64()*40 - 20
					f.Push(pushed{id: i, priority: p}, p)
					pushes++
				}
				require.Equal(t, pushes-pops, f.Size())
				require.Equal(t, f.Size() == 0, f.Empty())
			}
		})
	}
}

func TestHeapPopsNonDecreasing(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewSource(11))
	bh := NewBinaryHeap[pushed]()
	for i := 0; i < 1000; i++ {
		p := r.NormFloat64() * 100
		bh.Push(pushed{id: i, priority: p}, p)
	}
	out := priorities(drain[pushed](bh))
	require.Len(t, out, 1000)
	for i := 1; i < len(out); i++ {
		require.LessOrEqual(t, out[i-1], out[i])
	}
}

// replay applies the same push/pop script to f and returns what was popped.
func replay(f Frontier[pushed], seed int64, ops int, priority func(r *rand.Rand) float64) []int {
	r := rand.New(rand.NewSource(seed))
	var out []int
	for i := 0; i < ops; i++ {
		if r.Intn(4) == 0 {
			if e, ok := f.PopMin(); ok {
				out = append(out, e.id)
			}
			continue
		}
		p := priority(r)
		f.Push(pushed{id: i, priority: p}, p)
	}
	return append(out, ids(drain(f))...)
}

func TestWindowedMatchesHeap(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		delta    float64
		priority func(r *rand.Rand) float64
	}{
		"coarse ties with negatives": {
			delta:    1.0,
			priority: func(r *rand.Rand) float64 { return float64(r.Intn(80))/4 - 10 },
		},
		"fine buckets": {
			delta:    0.01,
			priority: func(r *rand.Rand) float64 { return r.Float64() * 5 },
		},
		"wide buckets": {
			delta:    100,
			priority: func(r *rand.Rand) float64 { return r.NormFloat64() * 300 },
		},
	}

	for testName, tc := range testCases {
		tc := tc
		t.Run(testName, func(t *testing.T) {
			t.Parallel()
			w, err := NewWindowed[pushed](tc.delta)
			require.NoError(t, err)

			expected := replay(NewBinaryHeap[pushed](), 42, 3000, tc.priority)
			actual := replay(w, 42, 3000, tc.priority)
			assert.Equal(t, expected, actual)
		})
	}
}

func TestWindowedMatchesHeapBeyondInt64Buckets(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		delta      float64
		priorities []float64
	}{
		"both extremes": {delta: 1, priorities: []float64{1e19, 1.0, -1e19}},
		"fine buckets":  {delta: 1e-3, priorities: []float64{1e17, 5}},
		"shared end bucket": {
			delta:      1,
			priorities: []float64{3e19, 1e19, -2e19, -5e19, 0, 2e19},
		},
	}

	for testName, tc := range testCases {
		tc := tc
		t.Run(testName, func(t *testing.T) {
			t.Parallel()
			w, err := NewWindowed[pushed](tc.delta)
			require.NoError(t, err)
			h := NewBinaryHeap[pushed]()
			pushAll(w, tc.priorities...)
			pushAll(h, tc.priorities...)

			expected := priorities(drain[pushed](h))
			assert.IsNonDecreasing(t, expected)
			assert.Equal(t, expected, priorities(drain[pushed](w)))
		})
	}
}

func TestBucketOfSaturates(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(math.MaxInt64), bucketOf(1e19, 1))
	assert.Equal(t, int64(math.MinInt64), bucketOf(-1e19, 1))
	assert.Equal(t, int64(math.MaxInt64), bucketOf(1e17, 1e-3))
	assert.Equal(t, int64(-3), bucketOf(-2.5, 1))
	assert.Equal(t, int64(2), bucketOf(5, 2))

	rb, err := NewRingBuckets[pushed](1, 4)
	require.NoError(t, err)
	assert.Equal(t, 3, rb.slot(1e19))
	assert.Equal(t, 0, rb.slot(-1e19))
}

func TestRingMatchesHeapInsideAlignedWindow(t *testing.T) {
	t.Parallel()

	const (
		delta = 0.5
		k     = 8
	)
	// All priorities fall in [10, 10+k*delta), which is bucket-aligned.
	priority := func(r *rand.Rand) float64 { return 10 + float64(r.Intn(32))/8 }

	rb, err := NewRingBuckets[pushed](delta, k)
	require.NoError(t, err)

	expected := replay(NewBinaryHeap[pushed](), 3, 2000, priority)
	actual := replay(rb, 3, 2000, priority)
	assert.Equal(t, expected, actual)
}

func TestRingRecoversFromSizeDrift(t *testing.T) {
	t.Parallel()

	rb, err := NewRingBuckets[pushed](1.0, 4)
	require.NoError(t, err)
	rb.size = 3

	_, ok := rb.PopMin()
	assert.False(t, ok)
	assert.Equal(t, 0, rb.Size())
	assert.True(t, rb.Empty())

	pushAll(rb, 2.5)
	e, ok := rb.PopMin()
	require.True(t, ok)
	assert.Equal(t, 2.5, e.priority)
}

func TestWindowedRecoversFromStaleMinimum(t *testing.T) {
	t.Parallel()

	w, err := NewWindowed[pushed](1.0)
	require.NoError(t, err)
	pushAll(w, 1.0, 5.0)

	// A hint past the true minimum advances to the next open bucket, then
	// falls back to a full rescan once nothing lies above it.
	w.minIdx = 3
	assert.Equal(t, []float64{5.0, 1.0}, priorities(drain[pushed](w)))

	pushAll(w, 4.0)
	w.minIdx = -10
	e, ok := w.PopMin()
	require.True(t, ok)
	assert.Equal(t, 4.0, e.priority)
}

func TestWindowedRecoversFromSizeDrift(t *testing.T) {
	t.Parallel()

	w, err := NewWindowed[pushed](1.0)
	require.NoError(t, err)
	w.size = 2

	_, ok := w.PopMin()
	assert.False(t, ok)
	assert.True(t, w.Empty())
}

func TestWindowedDropsEmptiedBuckets(t *testing.T) {
	t.Parallel()

	w, err := NewWindowed[pushed](2.0)
	require.NoError(t, err)
	pushAll(w, -3.0, 0.5, 9.0)
	require.Equal(t, 3, w.indexes.Len())

	_, ok := w.PopMin()
	require.True(t, ok)
	assert.Equal(t, 2, w.indexes.Len())
	assert.Len(t, w.buckets, 2)
	assert.Equal(t, int64(0), w.minIdx)
}

func TestSynchronizedSharesAcrossGoroutines(t *testing.T) {
	t.Parallel()

	s := NewSynchronized[pushed](NewBinaryHeap[pushed]())
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				p := float64(g*100 + i)
				s.Push(pushed{id: g*100 + i, priority: p}, p)
			}
		}(g)
	}
	wg.Wait()

	require.Equal(t, 800, s.Size())
	out := priorities(drain[pushed](s))
	for i := 1; i < len(out); i++ {
		require.Less(t, out[i-1], out[i])
	}
	assert.True(t, s.Empty())
}
