package pq

import "sync/atomic"

// Stats is a point-in-time copy of a queue's counters.
type Stats struct {
	// Inserts that went to the buffer because they beat the heap minimum
	// or the heap was empty.
	Eliminated uint64
	// Inserts published directly into the heap.
	DirectInserts uint64
	// Inserts that lost their heap race and were deferred to the buffer.
	DeferredInserts uint64

	// Retrieves served from the elimination buffer.
	BufferHits uint64
	// Retrieves served from the heap.
	HeapHits uint64
	// Retrieves that returned ErrEmptyQueue.
	Empty uint64
	// Heap pops that found an element already delivered from the buffer.
	Discarded uint64

	// Failed heap CAS attempts, both insert and removal.
	CASFailures uint64
	// Buffer entries the combiner moved into the heap.
	Migrations uint64
	// Retired buffer entries physically removed.
	Purged uint64
}

type counters struct {
	eliminated      atomic.Uint64
	directInserts   atomic.Uint64
	deferredInserts atomic.Uint64
	bufferHits      atomic.Uint64
	heapHits        atomic.Uint64
	empty           atomic.Uint64
	discarded       atomic.Uint64
	casFailures     atomic.Uint64
	migrations      atomic.Uint64
	purged          atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Eliminated:      c.eliminated.Load(),
		DirectInserts:   c.directInserts.Load(),
		DeferredInserts: c.deferredInserts.Load(),
		BufferHits:      c.bufferHits.Load(),
		HeapHits:        c.heapHits.Load(),
		Empty:           c.empty.Load(),
		Discarded:       c.discarded.Load(),
		CASFailures:     c.casFailures.Load(),
		Migrations:      c.migrations.Load(),
		Purged:          c.purged.Load(),
	}
}
