package pq_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomizedcoder/elimination-pq/internal/pq"
)

func TestIntegerKeys(t *testing.T) {
	assert.Equal(t, int64(-3), pq.IntegerKeys[int]().Key(-3))
	assert.Equal(t, int64(200), pq.IntegerKeys[uint8]().Key(200))
	assert.Equal(t, int64(1<<32-1), pq.IntegerKeys[uint32]().Key(1<<32-1))
}

func TestIntegerKeys_RangeEnds(t *testing.T) {
	// The extremes of every accepted kind keep their natural order.
	assert.Less(t, pq.IntegerKeys[int64]().Key(math.MinInt64), pq.IntegerKeys[int64]().Key(math.MaxInt64))
	assert.Less(t, pq.IntegerKeys[uint32]().Key(0), pq.IntegerKeys[uint32]().Key(math.MaxUint32))
	assert.Positive(t, pq.IntegerKeys[uint32]().Key(math.MaxUint32))

	q := pq.New[uint32](pq.WithKeyPolicy[uint32](pq.IntegerKeys[uint32]()))
	defer q.Finish()
	q.Insert(math.MaxUint32)
	q.Insert(1)
	q.Insert(math.MaxUint32 - 1)

	for _, want := range []uint32{1, math.MaxUint32 - 1, math.MaxUint32} {
		got, err := q.Retrieve()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestValueKeys(t *testing.T) {
	type job struct {
		name     string
		priority int
	}
	keys := pq.ValueKeys[job](func(j job) int64 { return int64(-j.priority) })

	assert.Less(t, keys.Key(job{"urgent", 10}), keys.Key(job{"later", 1}))
}

func TestRandomKeys_IgnoreValue(t *testing.T) {
	var keys pq.RandomKeys[string]
	seen := make(map[int64]bool)
	for i := 0; i < 100; i++ {
		seen[keys.Key("same")] = true
	}
	// 100 draws from 2^64 values colliding down to a handful would mean the
	// key depends on the value.
	assert.Greater(t, len(seen), 90)
}
