package pq

import "time"

// WaitIdle polls until the buffer holds no pending element, meaning the
// combiner has migrated everything, or the timeout passes.
func (q *Queue[T]) WaitIdle(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if q.buffer.pendingLen() == 0 {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return q.buffer.pendingLen() == 0
}

// HeapValid reports whether the current heap snapshot is a valid min-heap.
func (q *Queue[T]) HeapValid() bool {
	return q.heap.valid()
}

// Buffered returns the number of entries physically in the buffer,
// retired ones included.
func (q *Queue[T]) Buffered() int {
	return q.buffer.len()
}

// HeapLen returns the number of entries physically in the heap, retired
// ones included.
func (q *Queue[T]) HeapLen() int {
	return q.heap.len()
}
