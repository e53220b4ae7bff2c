package parser

import (
	"bytes"
	"testing"

	"github.com/fumiama/go-docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDOCXExtractor_ParagraphsAndTables(t *testing.T) {
	doc := docx.New().WithDefaultTheme()
	doc.AddParagraph().AddText("Introduction")
	tbl := doc.AddTable(2, 2, 0, nil)
	tbl.TableRows[0].TableCells[0].AddParagraph().AddText("a")
	tbl.TableRows[0].TableCells[1].AddParagraph().AddText("b")
	tbl.TableRows[1].TableCells[0].AddParagraph().AddText("c")
	tbl.TableRows[1].TableCells[1].AddParagraph().AddText("d")
	doc.AddParagraph()
	doc.AddParagraph().AddText("Conclusion")

	var buf bytes.Buffer
	_, err := doc.WriteTo(&buf)
	require.NoError(t, err)

	p := &DOCXExtractor{}
	segs, err := p.Extract(&buf, "paper.docx")
	require.NoError(t, err)
	assert.Equal(t, []string{"Introduction", "a | b", "c | d", "Conclusion"}, segs)
}

func TestDOCXExtractor_NotAZip(t *testing.T) {
	p := &DOCXExtractor{}
	_, err := p.Extract(bytes.NewReader([]byte("plain text")), "bad.docx")
	assert.Error(t, err)
}
