package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomizedcoder/elimination-pq/internal/logging"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := logging.ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := logging.ParseLevel("loud")
	assert.Error(t, err)
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := logging.New(&buf, slog.LevelInfo, logging.FormatJSON)
	require.NoError(t, err)

	logging.Component(l, "bench").Debug("hidden")
	logging.Component(l, "bench").Info("visible", slog.Int("threads", 4))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec), "exactly one JSON record")
	assert.Equal(t, "visible", rec["msg"])
	assert.Equal(t, "bench", rec[logging.ComponentKey])
	assert.EqualValues(t, 4, rec["threads"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	l, err := logging.New(&buf, slog.LevelDebug, "")
	require.NoError(t, err)

	l.Debug("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestNew_UnknownFormat(t *testing.T) {
	_, err := logging.New(&bytes.Buffer{}, slog.LevelInfo, "xml")
	assert.Error(t, err)
}
