// Package tick provides cheap periodic triggers for hot loops.
//
// Two clock-driven implementations of the Ticker interface are provided:
//   - AtomicTicker: atomic timestamp comparison using runtime.nanotime,
//     safe to share between goroutines (benchmark progress reporting)
//   - BatchTicker: reads the clock only every N calls, for a single
//     goroutine loop such as the queue combiner's statistics cadence
//
// Never is the disabled case. A non-positive interval also disables the
// clock-driven tickers.
//
// Both avoid the Go runtime's central timer heap, so polling them on every
// iteration of a busy loop costs a few nanoseconds.
package tick

import "time"

// Ticker signals when a time interval has elapsed.
type Ticker interface {
	// Tick returns true if the interval has elapsed since the last tick.
	// This is a non-blocking check.
	Tick() bool

	// Reset starts a new interval from now.
	Reset()

	// Stop releases any resources held by the ticker.
	// After Stop, the ticker should not be used.
	Stop()
}

// DefaultInterval is the default cadence for periodic statistics.
const DefaultInterval = 5 * time.Second

// Never is a Ticker that never fires, for loops whose periodic work is
// turned off.
type Never struct{}

// Tick always returns false.
func (Never) Tick() bool { return false }

// Reset is a no-op.
func (Never) Reset() {}

// Stop is a no-op.
func (Never) Stop() {}
