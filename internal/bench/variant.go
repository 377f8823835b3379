package bench

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/randomizedcoder/elimination-pq/internal/pq"
	"github.com/randomizedcoder/elimination-pq/internal/queue"
)

// Key policies for the elimination-and-combining variant.
const (
	KeysRandom = "random"
	KeysValue  = "value"
)

// ErrUnknownVariant is returned by Lookup for a name not in the registry.
var ErrUnknownVariant = errors.New("bench: unknown variant")

// ErrUnknownKeys is returned for a key policy other than KeysRandom or
// KeysValue.
var ErrUnknownKeys = errors.New("bench: unknown key policy")

// Options are passed to a Variant's constructor.
type Options struct {
	Keys   string
	Logger *slog.Logger
}

// Variant is a named priority queue implementation.
type Variant struct {
	Name        string
	Description string
	// Concurrent is false for variants that must only be used from one
	// goroutine; they are measured with a single worker.
	Concurrent bool
	New        func(Options) queue.PriorityQueue[int]
}

var registry = []Variant{
	{
		Name:        "ec",
		Description: "elimination-and-combining queue",
		Concurrent:  true,
		New:         newEC,
	},
	{
		Name:        "locked",
		Description: "binary heap behind a mutex",
		Concurrent:  true,
		New: func(Options) queue.PriorityQueue[int] {
			return queue.NewLockedOrdered[int]()
		},
	},
	{
		Name:        "optimistic",
		Description: "binary heap snapshots published with compare-and-swap",
		Concurrent:  true,
		New: func(Options) queue.PriorityQueue[int] {
			return queue.NewOptimisticOrdered[int]()
		},
	},
	{
		Name:        "sequential",
		Description: "unsynchronised binary heap, single worker only",
		Concurrent:  false,
		New: func(Options) queue.PriorityQueue[int] {
			return queue.NewSequentialOrdered[int]()
		},
	},
}

func newEC(o Options) queue.PriorityQueue[int] {
	opts := []pq.Option[int]{}
	if o.Keys == KeysValue {
		opts = append(opts, pq.WithKeyPolicy[int](pq.IntegerKeys[int]()))
	}
	if o.Logger != nil {
		opts = append(opts, pq.WithLogger[int](o.Logger))
	}
	return pq.New[int](opts...)
}

// Variants returns every registered variant in registry order.
func Variants() []Variant {
	out := make([]Variant, len(registry))
	copy(out, registry)
	return out
}

// Names returns the registered variant names.
func Names() []string {
	names := make([]string, len(registry))
	for i, v := range registry {
		names[i] = v.Name
	}
	return names
}

// Lookup resolves names to variants, keeping their order. An empty list
// selects every variant.
func Lookup(names []string) ([]Variant, error) {
	if len(names) == 0 {
		return Variants(), nil
	}
	out := make([]Variant, 0, len(names))
	for _, name := range names {
		v, ok := find(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownVariant, name, strings.Join(Names(), ", "))
		}
		out = append(out, v)
	}
	return out, nil
}

func find(name string) (Variant, bool) {
	for _, v := range registry {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// ValidKeys reports whether keys names a supported key policy.
func ValidKeys(keys string) bool {
	return keys == KeysRandom || keys == KeysValue
}

// newQueue builds a queue for one run. logger must not carry a component
// tag yet; the queue adds its own.
func newQueue(v Variant, p Params, logger *slog.Logger) queue.PriorityQueue[int] {
	return v.New(Options{
		Keys:   p.Keys,
		Logger: logger,
	})
}
