package pq

import (
	"log/slog"

	"github.com/randomizedcoder/elimination-pq/internal/backoff"
	"github.com/randomizedcoder/elimination-pq/internal/cancel"
	"github.com/randomizedcoder/elimination-pq/internal/tick"
)

// combiner reconciles the elimination buffer into the heap. It is the only
// goroutine that moves a pending element from the buffer to the heap, so
// no element is ever inserted into the heap twice.
type combiner[T any] struct {
	heap   *atomicHeap[T]
	buffer *eliminationBuffer[T]
	stats  *counters

	stop   cancel.Canceler
	done   chan struct{}
	idle   backoff.Config
	ticker tick.Ticker
	logger *slog.Logger
}

// run loops until stop is raised, then makes one purge-only pass. Idle
// passes back off so an empty queue does not pin a CPU.
func (c *combiner[T]) run() {
	defer close(c.done)
	defer c.ticker.Stop()

	c.logger.Debug("combiner started")
	bo := backoff.New(c.idle)
	for !c.stop.Done() {
		if c.pass() > 0 {
			bo.Reset()
		} else {
			bo.Wait()
		}
		if c.ticker.Tick() {
			c.logStats()
		}
	}

	// Entries retired before the stop but after the last pass would
	// otherwise stay in the buffer: Retrieve purges inline only what it
	// retires once the combiner is stopped.
	purged := c.pass()
	c.logger.Debug("combiner stopped",
		slog.Int("purged", purged),
		slog.Int("buffered", c.buffer.len()),
	)
}

// pass makes one sweep over a buffer snapshot and returns how many entries
// it migrated or purged. Once stop is raised it only purges.
func (c *combiner[T]) pass() int {
	dead := make(map[*element[T]]struct{})
	migrated := 0

	for _, e := range c.buffer.snapshot() {
		if !e.pending() {
			dead[e] = struct{}{}
			continue
		}
		if c.stop.Done() {
			continue
		}
		if c.heap.insert(e) {
			c.buffer.remove(e)
			migrated++
		}
	}
	c.buffer.drainGraveyard(dead)

	purged := c.buffer.removeAll(dead)
	c.stats.migrations.Add(uint64(migrated))
	c.stats.purged.Add(uint64(purged))
	return migrated + purged
}

func (c *combiner[T]) logStats() {
	s := c.stats.snapshot()
	c.logger.Debug("combiner stats",
		slog.Int("heap", c.heap.len()),
		slog.Int("buffer", c.buffer.len()),
		slog.Uint64("migrations", s.Migrations),
		slog.Uint64("purged", s.Purged),
		slog.Uint64("cas_failures", s.CASFailures),
		slog.Uint64("buffer_hits", s.BufferHits),
		slog.Uint64("heap_hits", s.HeapHits),
	)
}
