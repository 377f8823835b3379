package pq_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomizedcoder/elimination-pq/internal/logging"
	"github.com/randomizedcoder/elimination-pq/internal/pq"
	"github.com/randomizedcoder/elimination-pq/internal/queue"
)

const idleTimeout = 5 * time.Second

func newIntQueue(t *testing.T, opts ...pq.Option[int]) *pq.Queue[int] {
	t.Helper()
	opts = append([]pq.Option[int]{pq.WithKeyPolicy[int](pq.IntegerKeys[int]())}, opts...)
	q := pq.New[int](opts...)
	t.Cleanup(q.Finish)
	return q
}

func TestQueue_SingleThreadOrder(t *testing.T) {
	q := newIntQueue(t)
	for _, v := range []int{5, 3, 8, 1} {
		q.Insert(v)
	}
	require.True(t, q.WaitIdle(idleTimeout))

	for _, want := range []int{1, 3, 5, 8} {
		got, err := q.Retrieve()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := q.Retrieve()
	assert.ErrorIs(t, err, queue.ErrEmptyQueue)
}

func TestQueue_EmptyRetrieve(t *testing.T) {
	q := newIntQueue(t)

	v, err := q.Retrieve()
	assert.True(t, errors.Is(err, queue.ErrEmptyQueue))
	assert.Zero(t, v)
	assert.Equal(t, uint64(1), q.Stats().Empty)
}

func TestQueue_OrderWithoutWaitingForCombiner(t *testing.T) {
	// With the combiner stopped nothing migrates, so every element is
	// served from whichever structure it landed in.
	q := newIntQueue(t)
	q.Finish()

	for _, v := range []int{9, 4, 7, 1, 6, 2} {
		q.Insert(v)
	}
	for _, want := range []int{1, 2, 4, 6, 7, 9} {
		got, err := q.Retrieve()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := q.Retrieve()
	assert.ErrorIs(t, err, queue.ErrEmptyQueue)
}

func TestQueue_QuiescentMinimality(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	q := newIntQueue(t)
	oracle := queue.NewSequentialOrdered[int]()

	for step := 0; step < 2000; step++ {
		if r.IntN(3) == 0 {
			got, err := q.Retrieve()
			want, werr := oracle.Retrieve()
			if werr != nil {
				require.ErrorIs(t, err, queue.ErrEmptyQueue, "step %d", step)
				continue
			}
			require.NoError(t, err, "step %d", step)
			require.Equal(t, want, got, "step %d", step)
			continue
		}
		v := r.IntN(500)
		q.Insert(v)
		oracle.Insert(v)
	}

	require.True(t, q.WaitIdle(idleTimeout))
	assert.True(t, q.HeapValid())
	assert.Equal(t, oracle.Len(), q.Len())
}

func TestQueue_ConcurrentInsertThenDrain(t *testing.T) {
	q := pq.New[int]()
	defer q.Finish()

	const inserters, per = 2, 1000
	var wg sync.WaitGroup
	for w := 0; w < inserters; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < per; i++ {
				q.Insert(w*per + i)
			}
		}(w)
	}
	wg.Wait()

	seen := make(map[int]bool, inserters*per)
	for i := 0; i < inserters*per; i++ {
		v, err := q.Retrieve()
		require.NoError(t, err, "retrieve %d", i)
		require.False(t, seen[v], "value %d delivered twice", v)
		seen[v] = true
	}
	assert.Len(t, seen, inserters*per)

	_, err := q.Retrieve()
	assert.ErrorIs(t, err, queue.ErrEmptyQueue)
	assert.Zero(t, q.Len())

	// Both structures empty out physically. The combiner may still be
	// finishing a migration of an element delivered meanwhile, which a
	// further Retrieve pops and discards.
	assert.Eventually(t, func() bool {
		_, err := q.Retrieve()
		return errors.Is(err, queue.ErrEmptyQueue) && q.Buffered() == 0 && q.HeapLen() == 0
	}, idleTimeout, time.Millisecond)
}

func TestQueue_SingleElementOneWinner(t *testing.T) {
	for round := 0; round < 200; round++ {
		q := pq.New[int]()
		q.Insert(round)

		var wins, empties atomic.Int32
		var wg sync.WaitGroup
		start := make(chan struct{})
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				v, err := q.Retrieve()
				switch {
				case err == nil:
					assert.Equal(t, round, v)
					wins.Add(1)
				case errors.Is(err, queue.ErrEmptyQueue):
					empties.Add(1)
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}
		close(start)
		wg.Wait()
		q.Finish()

		require.Equal(t, int32(1), wins.Load(), "round %d", round)
		require.Equal(t, int32(1), empties.Load(), "round %d", round)
	}
}

func TestQueue_AfterFinish(t *testing.T) {
	q := newIntQueue(t)
	q.Finish()
	q.Finish()
	assert.False(t, q.Running())

	q.Insert(10)
	v, err := q.Retrieve()
	require.NoError(t, err)
	assert.Equal(t, 10, v)
	assert.Zero(t, q.Buffered(), "delivered entry is removed inline after finish")

	// Seed the heap first so that a later insert above its minimum takes
	// the direct path.
	q2 := newIntQueue(t)
	q2.Insert(1)
	require.True(t, q2.WaitIdle(idleTimeout))
	q2.Finish()

	q2.Insert(5)
	q2.Insert(0)
	for _, want := range []int{0, 1, 5} {
		got, err := q2.Retrieve()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err = q2.Retrieve()
	assert.ErrorIs(t, err, queue.ErrEmptyQueue)
}

func TestQueue_ContextStopsCombiner(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	q := newIntQueue(t, pq.WithContext[int](ctx))
	assert.True(t, q.Running())

	cancel()
	assert.Eventually(t, func() bool { return !q.Running() }, time.Second, time.Millisecond)

	q.Insert(3)
	v, err := q.Retrieve()
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestQueue_FinishWhileBusy(t *testing.T) {
	q := pq.New[int]()

	const total = 5000
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < total; i++ {
			q.Insert(i)
		}
	}()
	time.Sleep(time.Millisecond)
	q.Finish()
	wg.Wait()

	seen := make(map[int]bool, total)
	for {
		v, err := q.Retrieve()
		if errors.Is(err, queue.ErrEmptyQueue) {
			break
		}
		require.NoError(t, err)
		require.False(t, seen[v], "value %d delivered twice", v)
		seen[v] = true
	}
	assert.Len(t, seen, total, "no element lost across Finish")
}

func TestQueue_StatsAccountForEveryCall(t *testing.T) {
	q := newIntQueue(t)
	const n = 300
	for i := n; i > 0; i-- {
		q.Insert(i % 37)
	}
	for i := 0; i < n; i++ {
		_, err := q.Retrieve()
		require.NoError(t, err)
	}
	_, err := q.Retrieve()
	require.ErrorIs(t, err, queue.ErrEmptyQueue)

	s := q.Stats()
	assert.Equal(t, uint64(n), s.Eliminated+s.DirectInserts+s.DeferredInserts)
	assert.Equal(t, uint64(n), s.BufferHits+s.HeapHits)
	assert.Equal(t, uint64(1), s.Empty)
}

func TestQueue_LoggerOption(t *testing.T) {
	// A nil logger and a nil key policy fall back to the defaults.
	q := pq.New[int](pq.WithLogger[int](nil), pq.WithKeyPolicy[int](nil), pq.WithStatsInterval[int](0))
	defer q.Finish()

	q.Insert(1)
	v, err := q.Retrieve()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestQueue_FinishPurgesDeliveredEntries(t *testing.T) {
	for round := 0; round < 200; round++ {
		q := pq.New[int]()
		q.Insert(round)
		v, err := q.Retrieve()
		require.NoError(t, err)
		require.Equal(t, round, v)

		q.Finish()
		require.Zero(t, q.Buffered(), "round %d: delivered entry left in the buffer", round)
		require.Zero(t, q.Len())
	}
}

func TestQueue_LogsOneComponentTag(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(&buf, slog.LevelDebug, logging.FormatJSON)
	require.NoError(t, err)

	q := pq.New[int](pq.WithLogger[int](logger), pq.WithStatsInterval[int](time.Nanosecond))
	q.Insert(1)
	q.Finish()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)
	for _, line := range lines {
		assert.Equal(t, 1, strings.Count(line, `"`+logging.ComponentKey+`"`), line)
		assert.Contains(t, line, `"component":"pq.combiner"`)
	}
}
