package queue

import (
	"cmp"
	"sync/atomic"

	"github.com/randomizedcoder/elimination-pq/internal/backoff"
)

// Optimistic runs the sequential heap algorithm transactionally.
//
// Every operation reads the published snapshot, applies the change to a
// private clone and publishes the clone with compare-and-swap. A failed
// CAS means another goroutine committed in between; the attempt is thrown
// away and retried from a fresh read after a short backoff. Published
// snapshots are never modified.
type Optimistic[T any] struct {
	snap    atomic.Pointer[Sequential[T]]
	aborts  atomic.Uint64
	backoff backoff.Config
}

// NewOptimistic creates an empty Optimistic queue ordered by less.
func NewOptimistic[T any](less func(a, b T) bool) *Optimistic[T] {
	o := &Optimistic[T]{backoff: backoff.DefaultConfig()}
	o.snap.Store(NewSequential(less))
	return o
}

// NewOptimisticOrdered creates an empty Optimistic queue ordered by the
// natural order of T.
func NewOptimisticOrdered[T cmp.Ordered]() *Optimistic[T] {
	return NewOptimistic(cmp.Less[T])
}

// Insert commits v, retrying until the commit succeeds.
func (o *Optimistic[T]) Insert(v T) {
	bo := backoff.New(o.backoff)
	for {
		cur := o.snap.Load()
		next := cur.clone(1)
		next.Insert(v)
		if o.snap.CompareAndSwap(cur, next) {
			return
		}
		o.aborts.Add(1)
		bo.Wait()
	}
}

// Retrieve commits the removal of the minimum, retrying until the commit
// succeeds or the snapshot read is empty.
func (o *Optimistic[T]) Retrieve() (T, error) {
	bo := backoff.New(o.backoff)
	for {
		cur := o.snap.Load()
		if cur.Len() == 0 {
			var zero T
			return zero, ErrEmptyQueue
		}
		next := cur.clone(0)
		v, _ := next.Retrieve()
		if o.snap.CompareAndSwap(cur, next) {
			return v, nil
		}
		o.aborts.Add(1)
		bo.Wait()
	}
}

// Len returns the size of the current snapshot.
func (o *Optimistic[T]) Len() int {
	return o.snap.Load().Len()
}

// Aborts returns how many attempts were discarded because of a conflicting
// commit.
func (o *Optimistic[T]) Aborts() uint64 {
	return o.aborts.Load()
}

// Finish is a no-op.
func (o *Optimistic[T]) Finish() {}
