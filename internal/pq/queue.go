package pq

import (
	"github.com/randomizedcoder/elimination-pq/internal/cancel"
	"github.com/randomizedcoder/elimination-pq/internal/logging"
	"github.com/randomizedcoder/elimination-pq/internal/queue"
	"github.com/randomizedcoder/elimination-pq/internal/tick"
)

// statsBatch is how many combiner passes share one clock read.
const statsBatch = 64

// Queue is the elimination-and-combining priority queue.
//
// Safe for concurrent use by any number of goroutines. Create it with New
// and call Finish when done to stop the combiner goroutine.
type Queue[T any] struct {
	keys     KeyPolicy[T]
	heap     *atomicHeap[T]
	buffer   *eliminationBuffer[T]
	combiner *combiner[T]
	stats    *counters
}

var _ queue.PriorityQueue[int] = (*Queue[int])(nil)

// New creates an empty queue and starts its combiner.
func New[T any](opts ...Option[T]) *Queue[T] {
	o := defaultOptions[T]()
	for _, opt := range opts {
		opt(&o)
	}

	stats := &counters{}
	q := &Queue[T]{
		keys:   o.keys,
		heap:   newAtomicHeap[T](o.heapBackoff, stats),
		buffer: newEliminationBuffer[T](o.heapBackoff),
		stats:  stats,
	}

	var stop cancel.Canceler
	if o.ctx != nil {
		stop = cancel.NewContext(o.ctx)
	} else {
		stop = cancel.NewAtomic()
	}

	var ticker tick.Ticker = tick.Never{}
	if o.statsInterval > 0 {
		ticker = tick.NewBatch(o.statsInterval, statsBatch)
	}

	q.combiner = &combiner[T]{
		heap:   q.heap,
		buffer: q.buffer,
		stats:  stats,
		stop:   stop,
		done:   make(chan struct{}),
		idle:   o.idleBackoff,
		ticker: ticker,
		logger: logging.Component(o.logger, "pq.combiner"),
	}
	go q.combiner.run()

	return q
}

// Insert adds v. It never fails: an element that cannot be placed in the
// heap right away waits in the elimination buffer.
func (q *Queue[T]) Insert(v T) {
	e := newElement(v, q.keys.Key(v))

	// An element that beats the current minimum is exactly what the next
	// Retrieve wants, so leave it where Retrieve looks first.
	if top, ok := q.heap.peekMin(); !ok || e.key < top.key {
		q.buffer.add(e)
		q.stats.eliminated.Add(1)
		return
	}

	if q.heap.insert(e) {
		q.stats.directInserts.Add(1)
		return
	}

	q.buffer.add(e)
	q.stats.deferredInserts.Add(1)
}

// Retrieve removes and returns the element with the smallest key it can
// find, or queue.ErrEmptyQueue if both the buffer and the heap are empty.
func (q *Queue[T]) Retrieve() (T, error) {
	for {
		// The combiner inserts into the heap before it removes from the
		// buffer, so reading the buffer first and the heap second cannot
		// miss an element that is being migrated.
		entries := q.buffer.snapshot()
		top, ok := q.heap.peekMin()
		var bound int64
		if ok {
			bound = top.key
		}

		if e := betterThan(entries, bound, ok); e != nil {
			if !q.buffer.retire(e) {
				// Another consumer took it first; look again.
				continue
			}
			if !q.Running() {
				q.buffer.remove(e)
			}
			q.stats.bufferHits.Add(1)
			return e.value, nil
		}

		e, ok := q.heap.removeMin()
		if !ok {
			var zero T
			q.stats.empty.Add(1)
			return zero, queue.ErrEmptyQueue
		}
		if e.claim() {
			q.stats.heapHits.Add(1)
			return e.value, nil
		}
		// e was delivered from the buffer while the combiner had it in
		// the heap too; dropping it from the heap is all that is left.
		q.stats.discarded.Add(1)
	}
}

// Finish stops the combiner and waits for it to purge the entries already
// delivered from the buffer. Safe to call more than once and from any
// goroutine.
func (q *Queue[T]) Finish() {
	q.combiner.stop.Cancel()
	<-q.combiner.done
}

// Running reports whether the combiner is still migrating buffer entries.
func (q *Queue[T]) Running() bool {
	return !q.combiner.stop.Done()
}

// Len returns an approximate count of undelivered elements. Under
// concurrency an element being migrated can be counted twice.
func (q *Queue[T]) Len() int {
	n := q.buffer.pendingLen()
	for _, e := range q.heap.root.Load().items {
		if e.pending() {
			n++
		}
	}
	return n
}

// Stats returns a snapshot of the queue's counters.
func (q *Queue[T]) Stats() Stats {
	return q.stats.snapshot()
}
