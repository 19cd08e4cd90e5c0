package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel("info"))
	require.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, closeFn := New(Config{Level: "info", Format: "json"}, &buf)
	defer func() { require.NoError(t, closeFn()) }()

	log.Debug("hidden")
	log.Info("solve finished", "status", "optimal", "nodes", 3)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	require.Equal(t, "solve finished", rec["msg"])
	require.Equal(t, "optimal", rec["status"])
	require.EqualValues(t, 3, rec["nodes"])
	require.Contains(t, rec, "timestamp")
	require.NotContains(t, rec, "time")
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	log, _ := New(Config{Level: "warn", Format: "text"}, &buf)

	log.Info("hidden")
	log.Warn("rounded solution violates requirements")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "level=WARN")
	require.Contains(t, buf.String(), "timestamp=")
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.log")
	var buf bytes.Buffer
	log, closeFn := New(Config{Level: "debug", Format: "json", File: path, MaxSize: 1}, &buf)

	log.Debug("to file")
	require.NoError(t, closeFn())

	require.Zero(t, buf.Len())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"to file"`)
}

func TestDiscard(t *testing.T) {
	require.NotPanics(t, func() { Discard().Error("nothing") })
}
