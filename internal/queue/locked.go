package queue

import (
	"cmp"
	"sync"
)

// Locked serialises every operation on a Sequential behind one mutex.
//
// This is the coarse-grained baseline: simple and correct, but every
// producer and consumer contends on the same lock.
type Locked[T any] struct {
	mu  sync.Mutex
	seq *Sequential[T]
}

// NewLocked creates an empty Locked queue ordered by less.
func NewLocked[T any](less func(a, b T) bool) *Locked[T] {
	return &Locked[T]{seq: NewSequential(less)}
}

// NewLockedOrdered creates an empty Locked queue ordered by the natural
// order of T.
func NewLockedOrdered[T cmp.Ordered]() *Locked[T] {
	return NewLocked(cmp.Less[T])
}

// Insert adds v under the lock.
func (l *Locked[T]) Insert(v T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq.Insert(v)
}

// Retrieve removes the minimum under the lock.
func (l *Locked[T]) Retrieve() (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seq.Retrieve()
}

// Len returns the number of queued items.
func (l *Locked[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seq.Len()
}

// Finish is a no-op.
func (l *Locked[T]) Finish() {}
