package tick

import (
	"sync/atomic"
	"time"
	_ "unsafe" // Required for go:linkname
)

// nanotime returns the current monotonic time in nanoseconds without
// building a time.Time.
//
//go:linkname nanotime runtime.nanotime
func nanotime() int64

// AtomicTicker uses atomic operations and runtime.nanotime for fast tick checks.
//
// Safe for concurrent use. When several goroutines poll the same ticker,
// the compare-and-swap on the last tick lets exactly one of them observe
// each tick, so a group of benchmark workers produces one progress line per
// interval rather than one per worker.
type AtomicTicker struct {
	interval int64 // nanoseconds
	lastTick atomic.Int64
	ticks    atomic.Uint64
}

// NewAtomicTicker creates an AtomicTicker with the specified interval.
func NewAtomicTicker(interval time.Duration) *AtomicTicker {
	t := &AtomicTicker{
		interval: int64(interval),
	}
	t.lastTick.Store(nanotime())
	return t
}

// Tick returns true if the interval has elapsed since the last tick. A
// non-positive interval never fires.
func (a *AtomicTicker) Tick() bool {
	if a.interval <= 0 {
		return false
	}
	last := a.lastTick.Load()
	now := nanotime()
	if now-last < a.interval || !a.lastTick.CompareAndSwap(last, now) {
		return false
	}
	// Only the winner of the CAS gets here.
	a.ticks.Add(1)
	return true
}

// Ticks returns how many intervals have been observed, across all callers.
func (a *AtomicTicker) Ticks() uint64 {
	return a.ticks.Load()
}

// Reset resets the ticker to start a new interval from now.
func (a *AtomicTicker) Reset() {
	a.lastTick.Store(nanotime())
}

// Stop is a no-op for AtomicTicker.
func (a *AtomicTicker) Stop() {}

// Interval returns the ticker's interval.
func (a *AtomicTicker) Interval() time.Duration {
	return time.Duration(a.interval)
}
