package summarize

import (
	"context"
	"errors"
)

// ErrNothingToMerge is returned when Merge is called without summaries.
var ErrNothingToMerge = errors.New("no partial summaries to merge")

// Summarizer produces a completion for prompt followed by text.
type Summarizer interface {
	Summarize(ctx context.Context, text, prompt string) (string, error)
}

// Merger synthesizes ordered partial summaries into one templated document
// through a second completion call. Plain concatenation would repeat the
// single-instance sections (title, authors, keywords) once per chunk.
type Merger struct {
	summarizer Summarizer
	template   string
}

// NewMerger returns a Merger using template, or MergeTemplate when empty.
func NewMerger(s Summarizer, template string) *Merger {
	if template == "" {
		template = MergeTemplate
	}
	return &Merger{summarizer: s, template: template}
}

// Merge keeps the order of summaries, which must match document order.
func (m *Merger) Merge(ctx context.Context, summaries []string, filename string) (string, error) {
	if len(summaries) == 0 {
		return "", ErrNothingToMerge
	}
	return m.summarizer.Summarize(ctx, "", BuildMergePrompt(m.template, filename, summaries))
}
