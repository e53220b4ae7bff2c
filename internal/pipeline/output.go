package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
)

// OutputWriter persists a finished summary and returns where it went.
type OutputWriter interface {
	Write(stem, content string) (string, error)
}

// DirWriter writes <stem>.md files into a directory.
type DirWriter struct {
	dir string
}

// NewDirWriter creates dir (and parents) if it does not exist.
func NewDirWriter(dir string) (*DirWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &DirWriter{dir: dir}, nil
}

// Write stores content verbatim, replacing any previous summary.
func (w *DirWriter) Write(stem, content string) (string, error) {
	path := filepath.Join(w.dir, stem+".md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}
	return path, nil
}

// Dir returns the output directory.
func (w *DirWriter) Dir() string {
	return w.dir
}
