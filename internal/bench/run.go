package bench

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/randomizedcoder/elimination-pq/internal/cancel"
	"github.com/randomizedcoder/elimination-pq/internal/logging"
	"github.com/randomizedcoder/elimination-pq/internal/queue"
	"github.com/randomizedcoder/elimination-pq/internal/tick"
)

// checkEvery is how many operations a worker performs between checks of
// the cancellation signal and the progress ticker.
const checkEvery = 64

// ProgressInterval is how often a running sweep logs its position.
const ProgressInterval = time.Second

// ThreadResult is the outcome for one thread count, averaged over runs.
type ThreadResult struct {
	Threads int `json:"threads"`
	// MeanMillis is the mean wall time of one run.
	MeanMillis float64 `json:"mean_ms"`
	// PerThreadMillis is MeanMillis divided by the thread count.
	PerThreadMillis float64 `json:"per_thread_ms"`
	OpsPerSec       float64 `json:"ops_per_sec"`
	// Empty counts retrieves that found nothing, summed over all runs.
	Empty uint64 `json:"empty_retrieves"`
}

// Result holds every thread count measured for one variant.
type Result struct {
	Variant string         `json:"variant"`
	Threads []ThreadResult `json:"threads"`
}

// Report is the outcome of a whole sweep.
type Report struct {
	Started time.Time `json:"started"`
	Params  Params    `json:"params"`
	Results []Result  `json:"results"`
}

// Runner executes sweeps. A Runner may be reused but not shared between
// concurrent Run calls.
type Runner struct {
	params Params
	// base is the caller's logger, handed to queues; logger is base tagged
	// with this package's component.
	base     *slog.Logger
	logger   *slog.Logger
	progress *tick.AtomicTicker

	// current run, for progress lines
	variant string
	threads atomic.Int64
	done    atomic.Uint64
}

// NewRunner validates p and returns a Runner logging to logger. A nil
// logger discards.
func NewRunner(p Params, logger *slog.Logger) (*Runner, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Runner{
		params:   p,
		base:     logger,
		logger:   logging.Component(logger, "bench"),
		progress: tick.NewAtomicTicker(ProgressInterval),
	}, nil
}

// Run measures every variant in order. It stops at the first error,
// including cancellation of ctx.
func (r *Runner) Run(ctx context.Context, variants []Variant) (Report, error) {
	rep := Report{Started: time.Now().UTC(), Params: r.params}
	defer r.progress.Stop()

	for _, v := range variants {
		res, err := r.runVariant(ctx, v)
		if err != nil {
			return rep, fmt.Errorf("bench: variant %s: %w", v.Name, err)
		}
		rep.Results = append(rep.Results, res)
	}
	return rep, nil
}

func (r *Runner) runVariant(ctx context.Context, v Variant) (Result, error) {
	maxThreads := r.params.Threads
	if !v.Concurrent && maxThreads > 1 {
		r.logger.Info("variant is single threaded, measuring one worker only",
			slog.String("variant", v.Name))
		maxThreads = 1
	}

	res := Result{Variant: v.Name}
	r.variant = v.Name
	for threads := 1; threads <= maxThreads; threads++ {
		r.threads.Store(int64(threads))

		var total time.Duration
		var empty uint64
		for run := 0; run < r.params.Runs; run++ {
			elapsed, e, err := r.runOnce(ctx, v, threads)
			if err != nil {
				return res, err
			}
			total += elapsed
			empty += e
		}

		tr := summarize(threads, r.params, total, empty)
		r.logger.Debug("thread count done",
			slog.String("variant", v.Name),
			slog.Int("threads", threads),
			slog.Float64("mean_ms", tr.MeanMillis),
			slog.Uint64("empty", tr.Empty),
		)
		res.Threads = append(res.Threads, tr)
	}
	return res, nil
}

func summarize(threads int, p Params, total time.Duration, empty uint64) ThreadResult {
	mean := float64(total) / float64(p.Runs) / float64(time.Millisecond)
	tr := ThreadResult{
		Threads:         threads,
		MeanMillis:      mean,
		PerThreadMillis: mean / float64(threads),
		Empty:           empty,
	}
	if mean > 0 {
		ops := float64(threads * p.opsPerWorker())
		tr.OpsPerSec = ops / (mean / 1000)
	}
	return tr
}

// runOnce times threads workers sharing one fresh queue.
func (r *Runner) runOnce(ctx context.Context, v Variant, threads int) (time.Duration, uint64, error) {
	q := newQueue(v, r.params, r.base)
	defer q.Finish()

	// Values are drawn before the clock starts.
	workers := make([]*worker, threads)
	for i := range workers {
		workers[i] = newWorker(q, r.params)
	}

	g, gctx := errgroup.WithContext(ctx)
	start := time.Now()
	for _, w := range workers {
		g.Go(func() error {
			return w.run(gctx, r.checkpoint)
		})
	}
	err := g.Wait()
	elapsed := time.Since(start)
	if err != nil {
		return 0, 0, err
	}

	var empty uint64
	for _, w := range workers {
		empty += w.empty
	}
	return elapsed, empty, nil
}

// checkpoint is called by every worker each checkEvery operations. The
// shared ticker lets only one of them log per interval.
func (r *Runner) checkpoint() {
	ops := r.done.Add(checkEvery)
	if r.progress.Tick() {
		r.logger.Info("progress",
			slog.Uint64("report", r.progress.Ticks()),
			slog.String("variant", r.variant),
			slog.Int64("threads", r.threads.Load()),
			slog.Uint64("ops", ops),
		)
	}
}

type worker struct {
	q      queue.PriorityQueue[int]
	values []int
	pops   int
	rng    *rand.Rand
	empty  uint64
}

func newWorker(q queue.PriorityQueue[int], p Params) *worker {
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	values := make([]int, p.Pushes)
	for i := range values {
		values[i] = rng.Int()
	}
	return &worker{q: q, values: values, pops: p.Pops, rng: rng}
}

// run performs the worker's operations, picking insert or retrieve with
// probability proportional to how many of each remain.
func (w *worker) run(ctx context.Context, checkpoint func()) error {
	stop := cancel.NewContext(ctx)
	defer stop.Cancel()

	pushes, pops := len(w.values), w.pops
	for i := 1; pushes > 0 || pops > 0; i++ {
		if i%checkEvery == 0 {
			if stop.Done() {
				return stop.Err()
			}
			checkpoint()
		}

		if w.rng.IntN(pushes+pops) < pushes {
			pushes--
			w.q.Insert(w.values[pushes])
			continue
		}

		pops--
		if _, err := w.q.Retrieve(); err != nil {
			if !errors.Is(err, queue.ErrEmptyQueue) {
				return err
			}
			w.empty++
		}
	}
	return nil
}
