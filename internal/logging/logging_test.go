package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ziggy/internal/config"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ziggy.log")

	logger, closer, err := New(config.LogConfig{Level: "info", Format: "json"}, path)
	require.NoError(t, err)

	logger.WithField("session_id", "s-1").Info("mission started")
	logger.Debug("dropped")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "mission started", entry["msg"])
	assert.Equal(t, "s-1", entry["session_id"])
	assert.Equal(t, "info", entry["level"])
}

func TestNew_TextFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ziggy.log")

	logger, closer, err := New(config.LogConfig{Level: "debug", Format: "text"}, path)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.Debug("planning")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `msg=planning`)
}

func TestNew_BadLevel(t *testing.T) {
	_, _, err := New(config.LogConfig{Level: "chatty", Format: "json"}, "")
	assert.Error(t, err)
}

func TestNew_Stderr(t *testing.T) {
	logger, closer, err := New(config.LogConfig{Level: "warn", Format: "json"}, "")
	require.NoError(t, err)
	assert.Equal(t, os.Stderr, logger.Out)
	assert.NoError(t, closer.Close())
}
