package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock() time.Time {
	return time.Date(2024, 1, 2, 3, 4, 5, 6_000_000, time.UTC)
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false, false)
	l.clock = fixedClock

	l.Debug("hidden %d", 1)
	l.Info("shown %d", 2)
	l.Warn("warned")
	l.Error("failed: %s", "boom")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[03:04:05.006 INFO] shown 2\n")
	assert.Contains(t, out, "[03:04:05.006 WARN] warned\n")
	assert.Contains(t, out, "[03:04:05.006 ERROR] failed: boom\n")
}

func TestLogger_Verbose(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, true, false)
	l.Debug("details")
	assert.Contains(t, buf.String(), "DEBUG] details")
	assert.Equal(t, LevelDebug, l.Level())
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false, false)
	l.SetLevel("warn")
	l.Info("quiet")
	assert.Empty(t, buf.String())

	l.SetLevel("off")
	l.Error("also quiet")
	assert.Empty(t, buf.String())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel(" error "))
	assert.Equal(t, LevelNone, ParseLevel("none"))
	assert.Equal(t, LevelInfo, ParseLevel("bogus"))
}

func TestLogger_NoColorHasPlainPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false, false)
	l.Warn("x")
	assert.False(t, strings.Contains(buf.String(), "\x1b["))
}
