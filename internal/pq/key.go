package pq

import "math/rand/v2"

// KeyPolicy produces the ordering key attached to an inserted value.
// Smaller keys are retrieved first. Implementations must be safe for
// concurrent use.
type KeyPolicy[T any] interface {
	Key(v T) int64
}

// RandomKeys draws an independent random key for every insertion,
// ignoring the value. Retrieval order is then a random permutation of
// insertion order, which spreads consumers evenly over producers.
type RandomKeys[T any] struct{}

// Key returns a random int64.
func (RandomKeys[T]) Key(T) int64 {
	return rand.Int64()
}

// ValueKeys derives the key from the value.
type ValueKeys[T any] func(v T) int64

// Key calls f.
func (f ValueKeys[T]) Key(v T) int64 {
	return f(v)
}

// Integer is the set of types IntegerKeys can order: every integer kind
// whose whole range fits in an int64. uint, uint64 and uintptr are left out
// because values at or above 1<<63 would wrap to negative keys.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32
}

// IntegerKeys orders values by their natural integer order.
func IntegerKeys[T Integer]() ValueKeys[T] {
	return func(v T) int64 { return int64(v) }
}
