package pipeline

import (
	"fmt"
	"os"
	"time"
)

// FailureRecord is one line of the failure log. Chunk is 1-based and zero
// when the failure concerns the whole document (or the merge).
type FailureRecord struct {
	Time     time.Time
	Filename string
	Chunk    int
	Total    int
}

const failureTimeLayout = "2006-01-02 15:04:05"

func (r FailureRecord) String() string {
	reason := "full document"
	if r.Chunk > 0 {
		reason = fmt.Sprintf("chunk %d of %d", r.Chunk, r.Total)
	}
	return fmt.Sprintf("[%s] Failed to summarize %s (%s)", r.Time.Format(failureTimeLayout), r.Filename, reason)
}

// FailureLogger records summarization failures for later audit. The
// program never reads the records back.
type FailureLogger interface {
	Append(rec FailureRecord) error
}

// FileFailureLog appends records to a text file, one per line.
type FileFailureLog struct {
	path string
}

func NewFileFailureLog(path string) *FileFailureLog {
	return &FileFailureLog{path: path}
}

func (l *FileFailureLog) Append(rec FailureRecord) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open failure log: %w", err)
	}
	if _, err := f.WriteString(rec.String() + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("write failure log: %w", err)
	}
	return f.Close()
}

// Path returns the log file location.
func (l *FileFailureLog) Path() string {
	return l.path
}
