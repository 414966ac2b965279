package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_WritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info")

	l.Event("EVENT_FIRED", "scheduler", "random_encounter")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "EVENT_FIRED", line["event"])
	assert.Equal(t, "scheduler", line["actor"])
	assert.Equal(t, "random_encounter", line["message"])
	assert.Equal(t, "info", line["level"])
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn")

	l.Info("hidden")
	l.Debug("hidden")
	assert.Zero(t, buf.Len())

	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_UnknownLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "chatty")
	l.Debug("hidden")
	l.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestWith_AddsField(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "info").With("session", "abc").Info("hello")
	assert.Contains(t, buf.String(), `"session":"abc"`)
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Error("ignored") })
}
