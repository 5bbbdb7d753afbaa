package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLoggerIsSilent(t *testing.T) {
	SetLogger(nil)
	l := Logger()
	require.NotNil(t, l)
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}

func TestSetLoggerRoundTrip(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, nil))
	SetLogger(custom)
	assert.Same(t, custom, Logger())

	Logger().Info("hello")
	assert.Contains(t, buf.String(), "hello")

	SetLogger(nil)
	assert.NotSame(t, custom, Logger())
}

func TestNewTextLogger(t *testing.T) {
	var buf bytes.Buffer
	id := NewRunID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	l := NewTextLogger(&buf, false, id)
	l.Debug("hidden")
	l.Info("shown")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "session="+id)

	buf.Reset()
	NewTextLogger(&buf, true, id).Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}
