package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestNewSlog_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlog(SlogConfig{Level: "info", Format: "json", Mode: "server", Output: &buf})

	l.Debug("hidden")
	l.Info("visible", "user_id", "42")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.Equal(t, "photoshare", entry["service"])
	assert.Equal(t, "server", entry["mode"])
	assert.Equal(t, "42", entry["user_id"])
	assert.NotEmpty(t, entry["time"])
}

func TestNewSlog_Text(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlog(SlogConfig{Level: "debug", Format: "text", Output: &buf})
	l.Debug("hello")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.NotContains(t, buf.String(), "mode=")
}
