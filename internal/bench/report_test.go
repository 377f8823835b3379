package bench_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomizedcoder/elimination-pq/internal/bench"
)

func sampleReport() bench.Report {
	return bench.Report{
		Started: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Params:  bench.Params{Threads: 2, Pushes: 10, Pops: 10, Runs: 1, Keys: bench.KeysRandom},
		Results: []bench.Result{{
			Variant: "ec",
			Threads: []bench.ThreadResult{
				{Threads: 1, MeanMillis: 2, PerThreadMillis: 2, OpsPerSec: 10000},
				{Threads: 2, MeanMillis: 3, PerThreadMillis: 1.5, OpsPerSec: 13333, Empty: 4},
			},
		}},
	}
}

func TestWriteGraph(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bench.WriteGraph(&buf, sampleReport()))

	want := "Execution time per thread for the ec:\n" +
		"Threads:  1 | Milliseconds: 2.000000\n" +
		"Threads:  2 | Milliseconds: 1.500000\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bench.Write(&buf, sampleReport(), bench.FormatText))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "per-thread ms")
	assert.Contains(t, lines[2], "1.500")
}

func TestWriteJSON_ReadBack(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bench.Write(&buf, sampleReport(), bench.FormatJSON))
	assert.Contains(t, buf.String(), `"per_thread_ms":1.5`)

	rep, err := bench.ReadJSON(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, sampleReport().Results, rep.Results)
	assert.True(t, sampleReport().Started.Equal(rep.Started))
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := bench.Write(&bytes.Buffer{}, sampleReport(), "csv")
	assert.ErrorIs(t, err, bench.ErrUnknownFormat)
	assert.False(t, bench.ValidFormat("csv"))
	assert.True(t, bench.ValidFormat(bench.FormatGraph))
}
