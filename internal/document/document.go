package document

import (
	"path/filepath"
	"strings"
)

// SegmentSeparator joins pages (or paragraphs) into a document's text.
const SegmentSeparator = "\n\n"

// Document is one input file after text extraction. It lives only for the
// duration of that file's processing.
type Document struct {
	Path     string   // Source path (may be a temp file for uploads)
	Name     string   // Display filename, e.g. "paper.pdf"
	Segments []string // Pages for PDFs, blocks for other formats; empty pages stay as ""
	Text     string   // Segments joined with SegmentSeparator
	Tokens   int      // Filled in by the caller once counted
}

// New builds a Document from ordered segments.
func New(path, name string, segments []string) *Document {
	if name == "" {
		name = filepath.Base(path)
	}
	return &Document{
		Path:     path,
		Name:     name,
		Segments: segments,
		Text:     strings.Join(segments, SegmentSeparator),
	}
}

// Stem is the filename without its extension; output files are named after it.
func (d *Document) Stem() string {
	return strings.TrimSuffix(d.Name, filepath.Ext(d.Name))
}

// Chunk is a token-bounded piece of a document, numbered from 1.
type Chunk struct {
	Text  string
	Index int
	Total int
}
