package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirWriter_CreatesDirAndOverwrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "summaries", "nested")
	w, err := NewDirWriter(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, w.Dir())

	path, err := w.Write("paper", "first")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "paper.md"), path)

	_, err = w.Write("paper", "# second")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# second", string(data))
}
