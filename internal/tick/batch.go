package tick

import "time"

// BatchTicker checks the time only every N calls to Tick().
//
// The combiner polls its statistics ticker once per pass, and an idle
// combiner makes many short passes; reading the clock once per batch keeps
// that polling negligible.
//
// Not safe for concurrent use.
type BatchTicker struct {
	interval time.Duration
	every    int
	count    int
	lastTick time.Time
	ticks    uint64
}

// NewBatch creates a BatchTicker that fires at most once per interval and
// reads the clock on every Nth call. every < 1 is treated as 1.
func NewBatch(interval time.Duration, every int) *BatchTicker {
	if every < 1 {
		every = 1
	}
	return &BatchTicker{
		interval: interval,
		every:    every,
		lastTick: time.Now(),
	}
}

// Tick returns true if the interval has elapsed. Only every Nth call reads
// the clock; the others return false. A non-positive interval never fires.
func (b *BatchTicker) Tick() bool {
	if b.interval <= 0 {
		return false
	}
	if b.count++; b.count < b.every {
		return false
	}
	b.count = 0

	if now := time.Now(); now.Sub(b.lastTick) >= b.interval {
		b.lastTick = now
		b.ticks++
		return true
	}
	return false
}

// Ticks returns how many times Tick has returned true.
func (b *BatchTicker) Ticks() uint64 {
	return b.ticks
}

// Reset clears the call count and starts a new interval.
func (b *BatchTicker) Reset() {
	b.count = 0
	b.lastTick = time.Now()
}

// Stop is a no-op for BatchTicker.
func (b *BatchTicker) Stop() {}

// Every returns the batch size.
func (b *BatchTicker) Every() int {
	return b.every
}

// Interval returns the ticker's interval.
func (b *BatchTicker) Interval() time.Duration {
	return b.interval
}
