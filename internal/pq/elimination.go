package pq

import (
	"fmt"
	"sync/atomic"

	ring "github.com/randomizedcoder/go-lock-free-ring"

	"github.com/randomizedcoder/elimination-pq/internal/backoff"
)

// Graveyard sizing. Shards spread concurrent retirers over independent
// rings; the combiner is the only reader.
const (
	graveyardCapacity = 4096
	graveyardShards   = 8
)

// graveyard is a multi-producer single-consumer queue of retired elements
// awaiting physical removal from the buffer.
type graveyard interface {
	Write(producerID uint64, v any) bool
	TryRead() (any, bool)
}

// eliminationBuffer is an unordered set of elements that are not (yet) in
// the heap. The set is an immutable slice behind an atomic pointer, so
// iteration works on a consistent snapshot while other goroutines add and
// remove entries; an entry present for the whole scan is always seen.
type eliminationBuffer[T any] struct {
	entries   atomic.Pointer[[]*element[T]]
	graveyard graveyard
	producer  atomic.Uint64
	backoff   backoff.Config
}

func newEliminationBuffer[T any](bo backoff.Config) *eliminationBuffer[T] {
	g, err := ring.NewShardedRing(graveyardCapacity, graveyardShards)
	if err != nil {
		panic(fmt.Sprintf("pq: creating graveyard ring: %v", err))
	}
	b := &eliminationBuffer[T]{graveyard: g, backoff: bo}
	b.entries.Store(&[]*element[T]{})
	return b
}

// add appends e. It becomes visible to every snapshot taken afterwards.
func (b *eliminationBuffer[T]) add(e *element[T]) {
	bo := backoff.New(b.backoff)
	for {
		cur := b.entries.Load()
		next := make([]*element[T], len(*cur)+1)
		copy(next, *cur)
		next[len(*cur)] = e
		if b.entries.CompareAndSwap(cur, &next) {
			return
		}
		bo.Wait()
	}
}

func (b *eliminationBuffer[T]) snapshot() []*element[T] {
	return *b.entries.Load()
}

// findBetterThan returns the pending element with the smallest key below
// bound, or any pending element with the smallest key when bounded is
// false. Equal keys go to the first one found. It returns nil if there is
// no candidate.
func (b *eliminationBuffer[T]) findBetterThan(bound int64, bounded bool) *element[T] {
	return betterThan(b.snapshot(), bound, bounded)
}

// betterThan is findBetterThan over a snapshot the caller already holds.
func betterThan[T any](entries []*element[T], bound int64, bounded bool) *element[T] {
	var best *element[T]
	for _, e := range entries {
		if !e.pending() {
			continue
		}
		if bounded && e.key >= bound {
			continue
		}
		if best == nil || e.key < best.key {
			best = e
		}
	}
	return best
}

// retire claims e and schedules it for purging. Of any number of
// goroutines retiring the same element, exactly one gets true.
func (b *eliminationBuffer[T]) retire(e *element[T]) bool {
	if !e.claim() {
		return false
	}
	// A full graveyard only delays the purge: the combiner also drops
	// retired entries it meets while scanning.
	b.graveyard.Write(b.producer.Add(1), e)
	return true
}

// removeIf drops every entry matching drop and returns how many were
// dropped. Entries already gone are ignored, so redundant calls are safe.
func (b *eliminationBuffer[T]) removeIf(drop func(*element[T]) bool) int {
	bo := backoff.New(b.backoff)
	for {
		cur := b.entries.Load()
		next := make([]*element[T], 0, len(*cur))
		for _, e := range *cur {
			if !drop(e) {
				next = append(next, e)
			}
		}
		removed := len(*cur) - len(next)
		if removed == 0 {
			return 0
		}
		if b.entries.CompareAndSwap(cur, &next) {
			return removed
		}
		bo.Wait()
	}
}

func (b *eliminationBuffer[T]) remove(e *element[T]) int {
	return b.removeIf(func(x *element[T]) bool { return x == e })
}

func (b *eliminationBuffer[T]) removeAll(set map[*element[T]]struct{}) int {
	if len(set) == 0 {
		return 0
	}
	return b.removeIf(func(x *element[T]) bool {
		_, ok := set[x]
		return ok
	})
}

// drainGraveyard moves up to one ring's worth of retired elements into set.
func (b *eliminationBuffer[T]) drainGraveyard(set map[*element[T]]struct{}) int {
	n := 0
	for i := 0; i < graveyardCapacity; i++ {
		v, ok := b.graveyard.TryRead()
		if !ok {
			break
		}
		if e, ok := v.(*element[T]); ok {
			set[e] = struct{}{}
			n++
		}
	}
	return n
}

func (b *eliminationBuffer[T]) len() int {
	return len(b.snapshot())
}

func (b *eliminationBuffer[T]) pendingLen() int {
	n := 0
	for _, e := range b.snapshot() {
		if e.pending() {
			n++
		}
	}
	return n
}
