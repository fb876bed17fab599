// SPDX-License-Identifier: MIT
package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo)
	log.Info("matrix loaded", "rows", 4)

	out := buf.String()
	assert.Contains(t, out, "matrix loaded")
	assert.Contains(t, out, `"rows":4`)
	assert.Contains(t, out, `"level":"INFO"`)
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := Text(&buf, slog.LevelWarn)
	log.Info("hidden")
	log.Debug("hidden too")
	assert.Zero(t, buf.Len())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestWithAndGroup(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := Text(&buf, slog.LevelDebug).With("run", "abc").WithGroup("x")
	log.Debug("step", "nnz", 3)

	out := buf.String()
	assert.Contains(t, out, "run=abc")
	assert.Contains(t, out, "x.nnz=3")
}

func TestForFormat(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	l, err := ForFormat("JSON", &buf, slog.LevelInfo)
	require.NoError(t, err)
	l.Info("hi")
	assert.Contains(t, buf.String(), `"msg":"hi"`)

	_, err = ForFormat("", &buf, slog.LevelInfo)
	require.NoError(t, err)
	_, err = ForFormat("xml", &buf, slog.LevelInfo)
	require.Error(t, err)
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := Text(&buf, slog.LevelInfo)

	ctx := WithContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
	assert.NotNil(t, FromContext(context.Background()))
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestDiscard(t *testing.T) {
	t.Parallel()
	assert.NotPanics(t, func() { Discard().Error("dropped") })
}
