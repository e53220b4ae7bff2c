package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ForFile(t *testing.T) {
	reg := Registry{PDFFallbackPdftotext: true}

	tests := []struct {
		filename string
		want     Extractor
	}{
		{"a.pdf", &PDFExtractor{FallbackPdftotext: true}},
		{"A.PDF", &PDFExtractor{FallbackPdftotext: true}},
		{"a.docx", &DOCXExtractor{}},
		{"a.html", &HTMLExtractor{}},
		{"a.htm", &HTMLExtractor{}},
		{"a.md", &MarkdownExtractor{}},
		{"a.txt", &TextExtractor{}},
	}
	for _, tc := range tests {
		t.Run(tc.filename, func(t *testing.T) {
			got, err := reg.ForFile(tc.filename)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRegistry_ForFileUnsupported(t *testing.T) {
	_, err := Registry{}.ForFile("sheet.csv")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.False(t, IsSupportedExtension("sheet.csv"))
	assert.True(t, IsSupportedExtension("paper.PDF"))
}

func TestRegistry_ExtractTextFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha beta\n\ngamma"), 0o644))

	doc, err := Registry{}.Extract(path)
	require.NoError(t, err)

	assert.Equal(t, "notes.txt", doc.Name)
	assert.Equal(t, "notes", doc.Stem())
	assert.Equal(t, []string{"alpha beta", "gamma"}, doc.Segments)
	assert.Equal(t, "alpha beta\n\ngamma", doc.Text)
}

func TestRegistry_ExtractAsUsesDisplayName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "upload-123")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))

	doc, err := Registry{}.ExtractAs(path, "report.txt")
	require.NoError(t, err)
	assert.Equal(t, "report.txt", doc.Name)
	assert.Equal(t, path, doc.Path)
}

func TestRegistry_ExtractMissingFile(t *testing.T) {
	_, err := Registry{}.Extract(filepath.Join(t.TempDir(), "gone.pdf"))
	assert.Error(t, err)
}

func TestPDFExtractor_InvalidDocument(t *testing.T) {
	p := &PDFExtractor{}
	_, err := p.Extract(strings.NewReader("this is not a pdf"), "fake.pdf")
	assert.Error(t, err)
}

func TestSplitPages(t *testing.T) {
	assert.Equal(t, []string{"one", "", "three"}, splitPages("one\f\fthree\f"))
	assert.Nil(t, splitPages(""))
	assert.Nil(t, splitPages("\f"))
}
