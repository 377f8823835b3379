package queue

import "cmp"

// Sequential is an array-backed binary min-heap.
//
// WARNING: Sequential is NOT safe for concurrent use. It is the baseline
// the other variants wrap, and the benchmark harness only runs it with a
// single goroutine.
type Sequential[T any] struct {
	items []T
	less  func(a, b T) bool
}

// NewSequential creates an empty Sequential ordered by less.
func NewSequential[T any](less func(a, b T) bool) *Sequential[T] {
	return &Sequential[T]{less: less}
}

// NewSequentialOrdered creates an empty Sequential ordered by the natural
// order of T.
func NewSequentialOrdered[T cmp.Ordered]() *Sequential[T] {
	return NewSequential(cmp.Less[T])
}

// Insert appends v and percolates it up.
func (s *Sequential[T]) Insert(v T) {
	s.items = append(s.items, v)
	up(s.items, len(s.items)-1, s.less)
}

// Retrieve removes the root, moves the last item to the root and
// percolates it down.
func (s *Sequential[T]) Retrieve() (T, error) {
	var zero T
	n := len(s.items)
	if n == 0 {
		return zero, ErrEmptyQueue
	}
	root := s.items[0]
	s.items[0] = s.items[n-1]
	s.items[n-1] = zero
	s.items = s.items[:n-1]
	down(s.items, 0, s.less)
	return root, nil
}

// Peek returns the root without removing it.
func (s *Sequential[T]) Peek() (T, error) {
	if len(s.items) == 0 {
		var zero T
		return zero, ErrEmptyQueue
	}
	return s.items[0], nil
}

// Len returns the number of queued items.
func (s *Sequential[T]) Len() int {
	return len(s.items)
}

// Finish is a no-op.
func (s *Sequential[T]) Finish() {}

// clone returns an independent copy sharing the ordering function.
func (s *Sequential[T]) clone(extra int) *Sequential[T] {
	items := make([]T, len(s.items), len(s.items)+extra)
	copy(items, s.items)
	return &Sequential[T]{items: items, less: s.less}
}

func up[T any](items []T, i int, less func(a, b T) bool) {
	for i > 0 {
		parent := (i - 1) / 2
		if !less(items[i], items[parent]) {
			return
		}
		items[i], items[parent] = items[parent], items[i]
		i = parent
	}
}

func down[T any](items []T, i int, less func(a, b T) bool) {
	n := len(items)
	for {
		left := 2*i + 1
		if left >= n {
			return
		}
		child := left
		if right := left + 1; right < n && less(items[right], items[left]) {
			child = right
		}
		if !less(items[child], items[i]) {
			return
		}
		items[i], items[child] = items[child], items[i]
		i = child
	}
}
