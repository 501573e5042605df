package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	return &buf
}

func TestLogger_ScopeAndFunctionAttrs(t *testing.T) {
	buf := capture(t)

	New("payments").Function("Charge").Info("charged", "amount", 42)

	out := buf.String()
	assert.Contains(t, out, "scope=payments")
	assert.Contains(t, out, "function=Charge")
	assert.Contains(t, out, "amount=42")
}

func TestLogger_FunctionDoesNotMutateParent(t *testing.T) {
	buf := capture(t)

	parent := New("payments")
	_ = parent.Function("Charge")

	parent.Info("plain")
	assert.NotContains(t, buf.String(), "function=")
}

func TestLogger_ErrWrapsAndLogs(t *testing.T) {
	buf := capture(t)

	cause := errors.New("connection refused")
	err := New("db").Err("failed to connect", cause, "host", "localhost")

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to connect: connection refused", err.Error())

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "host=localhost")
}

func TestLogger_ErLogsWithoutReturning(t *testing.T) {
	buf := capture(t)

	New("db").Er("lookup failed", errors.New("boom"))

	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "error=boom")
}

func TestLogger_ErrorBuildsError(t *testing.T) {
	capture(t)

	err := New("db").Error("nothing to do")
	require.Error(t, err)
	assert.Equal(t, "nothing to do", err.Error())
}
