package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docsum/internal/document"
)

// ErrUnsupportedFormat is returned for files with no registered extractor.
var ErrUnsupportedFormat = errors.New("unsupported file extension")

// Extractor turns raw document bytes into ordered text segments.
type Extractor interface {
	Extract(r io.Reader, filename string) ([]string, error)
}

// SupportedExtensions lists file extensions this tool can read.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".docx":     true,
	".html":     true,
	".htm":      true,
	".md":       true,
	".markdown": true,
	".txt":      true,
}

// Registry selects an extractor by file extension.
type Registry struct {
	PDFFallbackPdftotext bool
}

// ForFile returns the appropriate extractor for a filename.
func (reg Registry) ForFile(filename string) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFExtractor{FallbackPdftotext: reg.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{}, nil
	case ".txt":
		return &TextExtractor{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Extract reads the file at path and returns its Document.
func (reg Registry) Extract(path string) (*document.Document, error) {
	return reg.ExtractAs(path, filepath.Base(path))
}

// ExtractAs is Extract with an explicit display name, for uploads spooled to
// temp files whose path does not carry the original filename.
func (reg Registry) ExtractAs(path, name string) (*document.Document, error) {
	ex, err := reg.ForFile(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	segments, err := ex.Extract(f, name)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", name, err)
	}
	return document.New(path, name, segments), nil
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
