// Package cancel provides the stop signals used by the queue's background
// combiner and by benchmark workers.
//
// Two implementations of the Canceler interface are provided:
//   - AtomicCanceler: a single atomic.Bool, the default combiner stop flag
//   - ContextCanceler: derived from a parent context.Context, so a queue or a
//     benchmark run can be stopped either explicitly or by its parent
//
// Both are polled from hot loops. The combiner checks Done() once per
// element it migrates, so the check has to be cheap:
//   - ContextCanceler.Done(): ~15-25ns
//   - AtomicCanceler.Done(): ~1-2ns
package cancel

// Canceler is a cooperative stop signal.
//
// Implementations must be safe for concurrent use:
//   - Multiple goroutines may call Done() concurrently
//   - Cancel() may be called concurrently with Done() and with itself
type Canceler interface {
	// Done reports whether Cancel has been called (or the parent ended).
	Done() bool

	// Cancel raises the signal. Safe to call multiple times.
	Cancel()
}
