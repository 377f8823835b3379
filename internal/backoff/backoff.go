// Package backoff provides a bounded exponential backoff for optimistic
// retry loops.
//
// A lost compare-and-swap is never an error in this module, it only means
// another goroutine published first. Retrying immediately under heavy
// contention lets the same goroutines collide again, so retry loops call
// Wait between attempts:
//
//	bo := backoff.New(backoff.DefaultConfig())
//	for !tryPublish() {
//	    bo.Wait()
//	}
//
// The first Spins calls only yield the processor. Later calls sleep for Min,
// then 2*Min, 4*Min and so on, never longer than Max.
package backoff

import (
	"runtime"
	"time"
)

// maxShift caps the exponent so Min<<shift cannot overflow.
const maxShift = 30

// Config describes the shape of a backoff sequence.
type Config struct {
	// Spins is the number of attempts that only call runtime.Gosched.
	Spins int
	// Min is the first sleep duration after the spin phase.
	Min time.Duration
	// Max bounds every sleep.
	Max time.Duration
}

// DefaultConfig suits short CAS loops: a few yields, then microsecond sleeps.
func DefaultConfig() Config {
	return Config{
		Spins: 8,
		Min:   time.Microsecond,
		Max:   500 * time.Microsecond,
	}
}

// IdleConfig suits background loops polling for work.
func IdleConfig() Config {
	return Config{
		Spins: 4,
		Min:   10 * time.Microsecond,
		Max:   2 * time.Millisecond,
	}
}

// Backoff tracks the attempt count of one retry loop.
//
// Not safe for concurrent use; each goroutine keeps its own Backoff.
type Backoff struct {
	cfg     Config
	attempt int
}

// New creates a Backoff. Non-positive Min or Max are replaced by the
// defaults, and Max is raised to Min if it is smaller.
func New(cfg Config) Backoff {
	def := DefaultConfig()
	if cfg.Spins < 0 {
		cfg.Spins = 0
	}
	if cfg.Min <= 0 {
		cfg.Min = def.Min
	}
	if cfg.Max <= 0 {
		cfg.Max = def.Max
	}
	if cfg.Max < cfg.Min {
		cfg.Max = cfg.Min
	}
	return Backoff{cfg: cfg}
}

// Next returns how long the next Wait will sleep. Zero means Wait only yields.
func (b *Backoff) Next() time.Duration {
	if b.attempt < b.cfg.Spins {
		return 0
	}
	shift := b.attempt - b.cfg.Spins
	if shift > maxShift {
		shift = maxShift
	}
	d := b.cfg.Min << shift
	if d > b.cfg.Max || d <= 0 {
		d = b.cfg.Max
	}
	return d
}

// Wait yields or sleeps according to the current attempt, then advances it.
func (b *Backoff) Wait() {
	if d := b.Next(); d == 0 {
		runtime.Gosched()
	} else {
		time.Sleep(d)
	}
	b.attempt++
}

// Reset starts the sequence over. Call it after a successful attempt.
func (b *Backoff) Reset() {
	b.attempt = 0
}

// Attempts returns how many times Wait has been called since the last Reset.
func (b *Backoff) Attempts() int {
	return b.attempt
}
