package parser

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/docsum/internal/document"
)

// twoPagePDF builds a minimal PDF whose first page draws text and whose
// second page has no content stream.
func twoPagePDF(text string) []byte {
	stream := fmt.Sprintf("BT /F1 12 Tf 10 100 Td (%s) Tj ET", text)
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R 5 0 R] /Count 2 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 200 200] /Contents 4 0 R /Resources << /Font << /F1 6 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 200 200] >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, obj := range objs {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return b.Bytes()
}

func TestPDFExtractor_PagesInOrder(t *testing.T) {
	p := &PDFExtractor{}
	pages, err := p.Extract(bytes.NewReader(twoPagePDF("Hello world")), "two.pdf")
	require.NoError(t, err)

	require.Len(t, pages, 2)
	assert.Contains(t, pages[0], "Hello world")
	assert.Equal(t, "", pages[1])
}

func TestRegistry_ExtractPDFJoinsPages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "two.pdf")
	require.NoError(t, os.WriteFile(path, twoPagePDF("Hello world"), 0o644))

	doc, err := Registry{}.Extract(path)
	require.NoError(t, err)

	require.Len(t, doc.Segments, 2)
	assert.Equal(t, doc.Segments[0]+document.SegmentSeparator, doc.Text)
	assert.Contains(t, doc.Text, "Hello world\n\n")
}
