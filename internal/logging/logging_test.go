package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_AppendsTaggedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	log, closer, err := Open(path, "info")
	require.NoError(t, err)
	log.WithField("label", "good").Info("label toggled")
	log.Debug("hidden")
	log.Error("save failed")
	require.NoError(t, closer.Close())

	// Reopening appends rather than truncates.
	log, closer, err = Open(path, "debug")
	require.NoError(t, err)
	log.Debug("shown")
	require.NoError(t, closer.Close())

	lines, err := Tail(path, 10)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "level=info")
	assert.Contains(t, lines[0], `msg="label toggled"`)
	assert.Contains(t, lines[0], "label=good")
	assert.Regexp(t, `time="\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}"`, lines[0])
	assert.Contains(t, lines[1], "level=error")
	assert.Contains(t, lines[2], "level=debug")
}

func TestOpen_BadLevel(t *testing.T) {
	_, _, err := Open(filepath.Join(t.TempDir(), "app.log"), "loud")
	assert.Error(t, err)
}

func TestTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	var content string
	for i := 1; i <= 30; i++ {
		content += fmt.Sprintf("line %d\n", i)
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	lines, err := Tail(path, 20)
	require.NoError(t, err)
	require.Len(t, lines, 20)
	assert.Equal(t, "line 11", lines[0])
	assert.Equal(t, "line 30", lines[19])

	lines, err = Tail(path, 100)
	require.NoError(t, err)
	assert.Len(t, lines, 30)

	lines, err = Tail(path, 0)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestTail_MissingFile(t *testing.T) {
	lines, err := Tail(filepath.Join(t.TempDir(), "nope.log"), 20)
	require.NoError(t, err)
	assert.Empty(t, lines)
}
