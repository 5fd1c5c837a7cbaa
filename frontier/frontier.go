// Package frontier provides the open-set structures used by the best-first
// planners in this module.
//
// All variants implement Frontier and are interchangeable: a planner is
// written once against the interface and its optimality and cost profile
// change with the variant chosen at construction.
//
//   - BinaryHeap: strict minimum-first order, O(log n) push and pop.
//   - Windowed: buckets of width delta in an ordered index, exact order.
//   - RingBuckets: fixed ring of buckets, O(1) push, approximate order.
//
// No variant updates a stored priority in place. A planner that finds a
// cheaper route to a queued node pushes it again and discards the stale
// copy when it is popped. Frontiers are not safe for concurrent use; see
// Synchronized.
package frontier

import (
	"errors"
	"fmt"
	"math"
)

// Frontier is the open set of a best-first search.
//
// Push inserts entry with the given finite priority. PopMin removes and
// returns the entry with the smallest (priority, insertion order) under the
// variant's ordering policy, and reports false only when the frontier is
// empty.
type Frontier[E any] interface {
	Push(entry E, priority float64)
	PopMin() (E, bool)
	Empty() bool
	Size() int
}

type Kind string

const (
	KindBinaryHeap  Kind = "heap"
	KindRingBuckets Kind = "ring"
	KindWindowed    Kind = "window"
)

var (
	ErrUnknownKind        = errors.New("frontier: unknown kind")
	ErrInvalidBucketWidth = errors.New("frontier: bucket width must be finite and positive")
	ErrInvalidRingSize    = errors.New("frontier: ring size must be positive")
)

// Config selects and parameterises a frontier variant. BucketWidth is
// ignored by the heap; RingSize is only used by the ring.
type Config struct {
	Kind        Kind    `yaml:"kind"`
	BucketWidth float64 `yaml:"bucketWidth,omitempty"`
	RingSize    int     `yaml:"ringSize,omitempty"`
}

func DefaultConfig() Config {
	return Config{Kind: KindBinaryHeap}
}

func (c Config) String() string {
	switch c.Kind {
	case KindRingBuckets:
		return fmt.Sprintf("%s(delta=%g, k=%d)", c.Kind, c.BucketWidth, c.RingSize)
	case KindWindowed:
		return fmt.Sprintf("%s(delta=%g)", c.Kind, c.BucketWidth)
	default:
		return string(c.Kind)
	}
}

func (c Config) Validate() error {
	switch c.Kind {
	case KindBinaryHeap:
		return nil
	case KindWindowed:
		return validateBucketWidth(c.BucketWidth)
	case KindRingBuckets:
		if err := validateBucketWidth(c.BucketWidth); err != nil {
			return err
		}
		return validateRingSize(c.RingSize)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, c.Kind)
	}
}

// New builds the variant named by cfg.
func New[E any](cfg Config) (Frontier[E], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Kind {
	case KindRingBuckets:
		rb, err := NewRingBuckets[E](cfg.BucketWidth, cfg.RingSize)
		if err != nil {
			return nil, err
		}
		return rb, nil
	case KindWindowed:
		w, err := NewWindowed[E](cfg.BucketWidth)
		if err != nil {
			return nil, err
		}
		return w, nil
	default:
		return NewBinaryHeap[E](), nil
	}
}

func validateBucketWidth(delta float64) error {
	if math.IsNaN(delta) || math.IsInf(delta, 0) || delta <= 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidBucketWidth, delta)
	}
	return nil
}

func validateRingSize(k int) error {
	if k <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidRingSize, k)
	}
	return nil
}
