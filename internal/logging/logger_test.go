package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, DEBUG, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, INFO, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestConsoleFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, WARN)
	defer func() { globalLogger = nil }()

	LogInfo("hidden %d", 1)
	LogWarn("shown %d", 2)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "[WARN] shown 2")
}

func TestFileReceivesAllLevels(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, InitLogger(Options{Program: "test", Level: ERROR, Dir: dir}))
	LogDebug("chunk %d rebuilt", 7)
	CloseLogger()
	globalLogger = nil

	matches, err := filepath.Glob(filepath.Join(dir, "test_*.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DEBUG] chunk 7 rebuilt")
}
