package pq

import "sync/atomic"

const (
	statePending uint32 = iota
	stateRetired
)

// element is the unit shared between the heap and the elimination buffer.
// value and key never change after construction; state moves once from
// pending to retired.
type element[T any] struct {
	value T
	key   int64
	state atomic.Uint32
}

func newElement[T any](v T, key int64) *element[T] {
	return &element[T]{value: v, key: key}
}

func (e *element[T]) pending() bool {
	return e.state.Load() == statePending
}

// claim retires e and reports whether this caller won the transition.
// Only the winner may deliver e.value.
func (e *element[T]) claim() bool {
	return e.state.CompareAndSwap(statePending, stateRetired)
}
