package cancel

import "sync/atomic"

// AtomicCanceler is a stop flag backed by an atomic.Bool.
//
// Done() is a single atomic load, which keeps the combiner's per-element
// check out of the profile.
type AtomicCanceler struct {
	done atomic.Bool
}

// NewAtomic creates an AtomicCanceler that has not been cancelled.
func NewAtomic() *AtomicCanceler {
	return &AtomicCanceler{}
}

// Done returns true once Cancel has been called.
func (a *AtomicCanceler) Done() bool {
	return a.done.Load()
}

// Cancel raises the flag. Subsequent calls are no-ops.
func (a *AtomicCanceler) Cancel() {
	a.done.Store(true)
}
