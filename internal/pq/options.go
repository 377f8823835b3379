package pq

import (
	"context"
	"log/slog"
	"time"

	"github.com/randomizedcoder/elimination-pq/internal/backoff"
	"github.com/randomizedcoder/elimination-pq/internal/logging"
	"github.com/randomizedcoder/elimination-pq/internal/tick"
)

// Option configures a Queue.
type Option[T any] func(*options[T])

type options[T any] struct {
	keys          KeyPolicy[T]
	ctx           context.Context
	logger        *slog.Logger
	statsInterval time.Duration
	heapBackoff   backoff.Config
	idleBackoff   backoff.Config
}

func defaultOptions[T any]() options[T] {
	return options[T]{
		keys:          RandomKeys[T]{},
		logger:        logging.Discard(),
		statsInterval: tick.DefaultInterval,
		heapBackoff:   backoff.DefaultConfig(),
		idleBackoff:   backoff.IdleConfig(),
	}
}

// WithKeyPolicy sets how ordering keys are produced. The default is
// RandomKeys.
func WithKeyPolicy[T any](p KeyPolicy[T]) Option[T] {
	return func(o *options[T]) {
		if p != nil {
			o.keys = p
		}
	}
}

// WithContext ties the combiner's lifetime to ctx: cancelling ctx stops it
// as Finish would.
func WithContext[T any](ctx context.Context) Option[T] {
	return func(o *options[T]) {
		o.ctx = ctx
	}
}

// WithLogger sets the logger the combiner reports to. Nothing is logged
// above debug level.
func WithLogger[T any](l *slog.Logger) Option[T] {
	return func(o *options[T]) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithStatsInterval sets how often the combiner logs its counters.
// Non-positive values disable the periodic log.
func WithStatsInterval[T any](d time.Duration) Option[T] {
	return func(o *options[T]) {
		o.statsInterval = d
	}
}

// WithHeapBackoff sets the backoff between failed heap removal attempts
// and between failed buffer updates.
func WithHeapBackoff[T any](cfg backoff.Config) Option[T] {
	return func(o *options[T]) {
		o.heapBackoff = cfg
	}
}

// WithIdleBackoff sets how the combiner slows down when it finds nothing
// to do.
func WithIdleBackoff[T any](cfg backoff.Config) Option[T] {
	return func(o *options[T]) {
		o.idleBackoff = cfg
	}
}
