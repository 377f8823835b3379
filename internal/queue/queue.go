// Package queue defines the priority queue contract shared by every queue
// variant in this module, plus the baseline implementations the benchmark
// harness compares the elimination-and-combining queue against.
//
// Baselines differ only in how they keep concurrent mutation out of the
// same sequential binary-heap algorithm:
//   - Sequential: no protection at all, single goroutine only
//   - Locked: one coarse sync.Mutex around every operation
//   - Optimistic: run the algorithm on a private copy of an immutable
//     snapshot and publish it with compare-and-swap, retrying on conflict
//     (a software-transactional style without a transaction runtime)
//
// The elimination-and-combining queue itself lives in package pq and
// satisfies the same PriorityQueue interface.
package queue

import "errors"

// ErrEmptyQueue is returned by Retrieve when nothing is deliverable at the
// moment of the call. It is a "try later" signal, not a failure.
var ErrEmptyQueue = errors.New("queue: priority queue is empty")

// PriorityQueue is a min-priority queue.
//
// Insert never fails. Retrieve returns the element with the smallest
// priority (exactly at quiescence, approximately under concurrency for
// relaxed implementations) or ErrEmptyQueue. Finish stops any background
// activity; it is idempotent and a no-op for variants without any.
type PriorityQueue[T any] interface {
	// Insert adds v to the queue.
	Insert(v T)

	// Retrieve removes and returns the minimum element.
	// Returns ErrEmptyQueue if nothing is currently deliverable.
	Retrieve() (T, error)

	// Finish shuts down background work. Safe to call multiple times.
	Finish()
}
