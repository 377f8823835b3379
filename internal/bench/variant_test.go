package bench_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomizedcoder/elimination-pq/internal/bench"
)

func TestLookup(t *testing.T) {
	all, err := bench.Lookup(nil)
	require.NoError(t, err)
	assert.Len(t, all, len(bench.Names()))

	vs, err := bench.Lookup([]string{"locked", " ec "})
	require.NoError(t, err)
	require.Len(t, vs, 2)
	assert.Equal(t, "locked", vs[0].Name)
	assert.Equal(t, "ec", vs[1].Name)

	_, err = bench.Lookup([]string{"ec", "skiplist"})
	assert.ErrorIs(t, err, bench.ErrUnknownVariant)
}

func TestVariants_SatisfyContract(t *testing.T) {
	for _, v := range bench.Variants() {
		t.Run(v.Name, func(t *testing.T) {
			q := v.New(bench.Options{Keys: bench.KeysValue})
			defer q.Finish()

			for _, x := range []int{3, 1, 2} {
				q.Insert(x)
			}
			for _, want := range []int{1, 2, 3} {
				got, err := q.Retrieve()
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}
		})
	}
}

func TestVariants_OnlySequentialIsSingleThreaded(t *testing.T) {
	for _, v := range bench.Variants() {
		assert.Equal(t, v.Name != "sequential", v.Concurrent, v.Name)
	}
}

func TestParams_Validate(t *testing.T) {
	good := bench.Params{Threads: 2, Pushes: 10, Pops: 10, Runs: 1, Keys: bench.KeysRandom}
	require.NoError(t, good.Validate())

	bad := []bench.Params{
		{Threads: 0, Pushes: 1, Pops: 1, Runs: 1, Keys: bench.KeysRandom},
		{Threads: 1, Pushes: 0, Pops: 1, Runs: 1, Keys: bench.KeysRandom},
		{Threads: 1, Pushes: 1, Pops: -1, Runs: 1, Keys: bench.KeysRandom},
		{Threads: 1, Pushes: 1, Pops: 1, Runs: 0, Keys: bench.KeysRandom},
		{Threads: 1, Pushes: 1, Pops: 1, Runs: 1, Keys: "fifo"},
	}
	for i, p := range bad {
		assert.ErrorIs(t, p.Validate(), bench.ErrInvalidParams, "case %d", i)
	}
	assert.ErrorIs(t, bad[4].Validate(), bench.ErrUnknownKeys)
}
