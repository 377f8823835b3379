package pq

import (
	"sync/atomic"

	"github.com/randomizedcoder/elimination-pq/internal/backoff"
)

// snapshot is one published version of the heap. Its slice is never
// written after the snapshot is stored in atomicHeap.root.
type snapshot[T any] struct {
	items []*element[T]
}

// atomicHeap is a binary min-heap on element keys, mutated only by
// building a new snapshot and publishing it with compare-and-swap.
//
// Each mutation copies the whole slice, so it costs O(n). In exchange a
// reader holding a snapshot always sees a complete, valid heap.
type atomicHeap[T any] struct {
	root    atomic.Pointer[snapshot[T]]
	backoff backoff.Config
	stats   *counters
}

func newAtomicHeap[T any](bo backoff.Config, stats *counters) *atomicHeap[T] {
	h := &atomicHeap[T]{backoff: bo, stats: stats}
	h.root.Store(&snapshot[T]{})
	return h
}

// insert makes a single attempt to publish a snapshot containing e.
// It returns false if another mutation was published first; the caller
// decides whether to retry or defer.
func (h *atomicHeap[T]) insert(e *element[T]) bool {
	cur := h.root.Load()
	n := len(cur.items)

	items := make([]*element[T], n+1)
	copy(items, cur.items)
	items[n] = e
	siftUp(items, n)

	if h.root.CompareAndSwap(cur, &snapshot[T]{items: items}) {
		return true
	}
	h.stats.casFailures.Add(1)
	return false
}

// removeMin removes the root, retrying from a fresh read after every lost
// race. It returns false only when it observes an empty heap.
func (h *atomicHeap[T]) removeMin() (*element[T], bool) {
	bo := backoff.New(h.backoff)
	for {
		cur := h.root.Load()
		n := len(cur.items)
		if n == 0 {
			return nil, false
		}

		top := cur.items[0]
		items := make([]*element[T], n-1)
		if n > 1 {
			copy(items, cur.items[:n-1])
			items[0] = cur.items[n-1]
			siftDown(items, 0)
		}

		if h.root.CompareAndSwap(cur, &snapshot[T]{items: items}) {
			return top, true
		}
		h.stats.casFailures.Add(1)
		bo.Wait()
	}
}

// peekMin returns the root of the current snapshot. The answer may be
// stale by the time the caller uses it.
func (h *atomicHeap[T]) peekMin() (*element[T], bool) {
	cur := h.root.Load()
	if len(cur.items) == 0 {
		return nil, false
	}
	return cur.items[0], true
}

func (h *atomicHeap[T]) len() int {
	return len(h.root.Load().items)
}

// valid reports whether the current snapshot satisfies the heap property.
func (h *atomicHeap[T]) valid() bool {
	items := h.root.Load().items
	for i := 1; i < len(items); i++ {
		if items[(i-1)/2].key > items[i].key {
			return false
		}
	}
	return true
}

func siftUp[T any](items []*element[T], i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if items[i].key >= items[parent].key {
			return
		}
		items[i], items[parent] = items[parent], items[i]
		i = parent
	}
}

func siftDown[T any](items []*element[T], i int) {
	n := len(items)
	for {
		left := 2*i + 1
		if left >= n {
			return
		}
		child := left
		if right := left + 1; right < n && items[right].key < items[left].key {
			child = right
		}
		if items[child].key >= items[i].key {
			return
		}
		items[i], items[child] = items[child], items[i]
		i = child
	}
}
