package bench

import (
	"errors"
	"fmt"
)

// DefaultRuns is the number of repetitions per thread count when none is
// given.
const DefaultRuns = 50

// ErrInvalidParams wraps every Params validation failure.
var ErrInvalidParams = errors.New("bench: invalid parameters")

// Params describes one benchmark sweep.
type Params struct {
	// Threads is the largest worker count; every count from 1 up is run.
	Threads int `json:"threads"`
	// Pushes and Pops are per worker.
	Pushes int `json:"pushes"`
	Pops   int `json:"pops"`
	// Runs is how many times each thread count is repeated.
	Runs int `json:"runs"`
	// Keys selects the key policy of the elimination-and-combining queue.
	Keys string `json:"keys"`
}

// Validate checks that every count is positive and the key policy is known.
func (p Params) Validate() error {
	switch {
	case p.Threads < 1:
		return fmt.Errorf("%w: threads must be positive, got %d", ErrInvalidParams, p.Threads)
	case p.Pushes < 1:
		return fmt.Errorf("%w: pushes must be positive, got %d", ErrInvalidParams, p.Pushes)
	case p.Pops < 1:
		return fmt.Errorf("%w: pops must be positive, got %d", ErrInvalidParams, p.Pops)
	case p.Runs < 1:
		return fmt.Errorf("%w: runs must be positive, got %d", ErrInvalidParams, p.Runs)
	case !ValidKeys(p.Keys):
		return fmt.Errorf("%w: %w %q", ErrInvalidParams, ErrUnknownKeys, p.Keys)
	}
	return nil
}

// opsPerWorker is the number of queue calls one worker makes.
func (p Params) opsPerWorker() int {
	return p.Pushes + p.Pops
}
