package discover

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestFiles_TopLevelPDFs(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.pdf"))
	touch(t, filepath.Join(dir, "A.PDF"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "sub", "c.pdf"))

	files, err := Files(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "A.PDF"),
		filepath.Join(dir, "b.pdf"),
	}, files)
}

func TestFiles_RecursivePattern(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.pdf"))
	touch(t, filepath.Join(dir, "sub", "deep", "c.pdf"))
	touch(t, filepath.Join(dir, "sub", "d.docx"))

	files, err := Files(dir, "**/*.pdf")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.pdf"),
		filepath.Join(dir, "sub", "deep", "c.pdf"),
	}, files)
}

func TestFiles_Empty(t *testing.T) {
	files, err := Files(t.TempDir(), "*.pdf")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFiles_MissingFolder(t *testing.T) {
	_, err := Files(filepath.Join(t.TempDir(), "nope"), "*.pdf")
	assert.True(t, errors.Is(err, ErrNotDir))
}

func TestFiles_NotADirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.pdf")
	touch(t, path)
	_, err := Files(path, "*.pdf")
	assert.True(t, errors.Is(err, ErrNotDir))
}

func TestFiles_BadPattern(t *testing.T) {
	_, err := Files(t.TempDir(), "[")
	assert.Error(t, err)
}

func TestMatch(t *testing.T) {
	assert.True(t, Match("*.pdf", "Paper.PDF"))
	assert.True(t, Match("*.{pdf,docx}", "x.docx"))
	assert.False(t, Match("*.pdf", "sub/x.pdf"))
	assert.False(t, Match("*.pdf", "x.pdf.txt"))
}
