// Package pq implements an adaptive elimination-and-combining priority
// queue for workloads with many concurrent producers and consumers.
//
// # Structure
//
// Three cooperating parts share no locks:
//
//   - an atomic min-heap, published as immutable snapshots behind a single
//     atomic pointer and mutated only by read-copy-CAS
//   - an elimination buffer, an unordered copy-on-write set where inserts
//     that would be cheap to hand straight to a consumer (or that lost a
//     heap race) wait
//   - a combiner goroutine that migrates pending buffer entries into the
//     heap and purges entries that were already delivered
//
// Insert puts an element whose key beats the heap minimum (or any element
// when the heap is empty) into the buffer, so a concurrent Retrieve can
// take it without touching the heap. Otherwise it makes one direct heap
// insert attempt and falls back to the buffer if it loses the race.
//
// Retrieve first looks for a pending buffer element with a key below the
// heap minimum and claims it; if there is none it removes the heap minimum.
//
// # Delivery guarantee
//
// Every element carries a status that moves once from pending to retired
// by compare-and-swap. Both delivery paths deliver only after winning that
// CAS, so an element is never delivered twice even while the combiner has
// it in the heap and the buffer at the same time. Retired elements left in
// either structure are skipped and purged.
//
// # Ordering
//
// At quiescence Retrieve returns the smallest key present. Under
// concurrency ordering is approximate: a buffered element can overtake or
// trail heap elements with nominally smaller keys until the combiner
// reconciles them. The queue is not linearizable and keeps no FIFO order
// among equal keys.
//
// # Keys
//
// The ordering key is produced by a KeyPolicy when an element is inserted.
// RandomKeys (the default) draws a fresh random key per insertion;
// IntegerKeys and ValueKeys derive the key from the value instead.
//
// # Lifecycle
//
// New starts the combiner. Finish stops it and waits for its current pass.
// After Finish every operation keeps working, but elements that land in
// the buffer stay there and are delivered only through Retrieve's buffer
// path.
package pq
