package frontier

import "sync"

// Synchronized serialises every call to the wrapped frontier under one
// mutex, for when a frontier has to be shared between goroutines. It does
// not change ordering.
type Synchronized[E any] struct {
	mu    sync.Mutex
	inner Frontier[E]
}

var _ Frontier[int] = (*Synchronized[int])(nil)

func NewSynchronized[E any](inner Frontier[E]) *Synchronized[E] {
	return &Synchronized[E]{inner: inner}
}

func (s *Synchronized[E]) Push(entry E, priority float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.Push(entry, priority)
}

func (s *Synchronized[E]) PopMin() (E, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.PopMin()
}

func (s *Synchronized[E]) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Empty()
}

func (s *Synchronized[E]) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Size()
}
