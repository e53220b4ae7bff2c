package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/dgallion1/docsum/internal/chunker"
	"github.com/dgallion1/docsum/internal/config"
	"github.com/dgallion1/docsum/internal/document"
	"github.com/dgallion1/docsum/internal/outline"
	"github.com/dgallion1/docsum/internal/summarize"
	"github.com/dgallion1/docsum/internal/tokenizer"
)

// Extractor produces a Document from a file. name is the display filename.
type Extractor interface {
	ExtractAs(path, name string) (*document.Document, error)
}

// Merger combines ordered partial summaries into one document.
type Merger interface {
	Merge(ctx context.Context, summaries []string, filename string) (string, error)
}

// Deps are the collaborators the orchestrator drives. Observer and Log may
// be nil.
type Deps struct {
	Extractor  Extractor
	Counter    tokenizer.Counter
	Summarizer summarize.Summarizer
	Merger     Merger
	Output     OutputWriter
	Failures   FailureLogger
	Observer   Observer
	Log        *slog.Logger
}

// Orchestrator runs the extract, route, summarize, merge, save sequence for
// one document at a time.
type Orchestrator struct {
	deps   Deps
	limit  int
	prompt string
	log    *slog.Logger
	now    func() time.Time

	// Serializes documents: at most one completion call is in flight.
	mu sync.Mutex
}

// NewOrchestrator builds an orchestrator. prompt is the base instruction
// template; its filename placeholder is filled per document.
func NewOrchestrator(cfg config.Config, prompt string, deps Deps) *Orchestrator {
	if deps.Observer == nil {
		deps.Observer = NopObserver{}
	}
	if deps.Log == nil {
		deps.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	limit := cfg.ChunkTokenLimit
	if limit <= 0 {
		limit = chunker.DefaultLimit
	}
	return &Orchestrator{
		deps:   deps,
		limit:  limit,
		prompt: prompt,
		log:    deps.Log,
		now:    time.Now,
	}
}

// Limit returns the chunk token limit in effect.
func (o *Orchestrator) Limit() int {
	return o.limit
}

// Run processes paths sequentially in the given order. A failed document
// never stops the batch; only ctx cancellation does.
func (o *Orchestrator) Run(ctx context.Context, paths []string) BatchResult {
	var batch BatchResult
	for _, p := range paths {
		if ctx.Err() != nil {
			o.log.Warn("batch interrupted", "remaining", len(paths)-len(batch.Results))
			break
		}
		batch.add(o.Process(ctx, p))
	}
	return batch
}

// Process runs the state machine for the file at path.
func (o *Orchestrator) Process(ctx context.Context, path string) Result {
	return o.ProcessAs(ctx, path, filepath.Base(path))
}

// ProcessAs is Process with an explicit display filename.
func (o *Orchestrator) ProcessAs(ctx context.Context, path, name string) (res Result) {
	o.mu.Lock()
	defer o.mu.Unlock()

	start := o.now()
	log := o.log.With("file", name)
	obs := o.deps.Observer
	res = Result{Name: name, Stage: StageExtract}

	obs.DocumentStarted(name)
	defer func() {
		res.Elapsed = o.now().Sub(start)
		obs.DocumentFinished(res)
	}()

	// Extract
	doc, err := o.deps.Extractor.ExtractAs(path, name)
	if err != nil {
		log.Error("extraction failed", "error", err)
		res.Status = StatusFailed
		res.Err = err
		return res
	}
	doc.Tokens = o.deps.Counter.CountTokens(doc.Text)
	res.Tokens = doc.Tokens

	// Route
	res.Stage = StageRoute
	chunked := doc.Tokens > o.limit
	log.Info("document extracted", "tokens", doc.Tokens, "pages", len(doc.Segments), "chunked", chunked)
	obs.TokensCounted(name, doc.Tokens, o.limit, chunked)

	prompt := summarize.WithFilename(o.prompt, name)

	var summary string
	if !chunked {
		res.Stage = StageSummarizeWhole
		summary, err = o.deps.Summarizer.Summarize(ctx, doc.Text, prompt)
		if err != nil {
			log.Error("summarization failed", "error", err, "retryable", isRetryable(err))
			return o.fail(log, res, err, 0, 0)
		}
	} else {
		res.Stage = StageSummarizeChunks
		chunks := chunker.Chunks(doc.Text, o.limit, o.deps.Counter)
		res.Chunks = len(chunks)
		log.Info("document split", "chunks", len(chunks), "limit", o.limit)

		summaries := make([]string, 0, len(chunks))
		for _, c := range chunks {
			obs.ChunkStarted(name, c)
			s, err := o.deps.Summarizer.Summarize(ctx, c.Text, prompt)
			if err != nil {
				log.Error("chunk summarization failed", "chunk", c.Index, "total", c.Total, "error", err, "retryable", isRetryable(err))
				res.FailedAt = c.Index
				return o.fail(log, res, err, c.Index, c.Total)
			}
			summaries = append(summaries, s)
		}

		res.Stage = StageMerge
		obs.Merging(name, len(summaries))
		summary, err = o.deps.Merger.Merge(ctx, summaries, name)
		if err != nil {
			log.Error("merge failed", "error", err, "retryable", isRetryable(err))
			return o.fail(log, res, err, 0, 0)
		}
	}

	if r := outline.Inspect(summary); !r.Conforms() {
		log.Warn("summary deviates from template",
			"title_headings", r.TopLevel-r.Highlights,
			"highlights_headings", r.Highlights,
			"ends_with_highlights", r.EndsWithHighlights)
	}

	// Save
	res.Stage = StageSave
	res.Markdown = summary
	out, err := o.deps.Output.Write(doc.Stem(), summary)
	if err != nil {
		log.Error("save failed", "error", err)
		res.Status = StatusFailed
		res.Err = err
		return res
	}
	res.OutputPath = out
	res.Status = StatusSaved
	log.Info("summary saved", "path", out)
	return res
}

// Count extracts a document and counts its tokens without summarizing.
func (o *Orchestrator) Count(path, name string) (*document.Document, error) {
	doc, err := o.deps.Extractor.ExtractAs(path, name)
	if err != nil {
		return nil, err
	}
	doc.Tokens = o.deps.Counter.CountTokens(doc.Text)
	return doc, nil
}

// fail records a summarization failure. Nothing is written for the document.
// An interrupted run is not a summarization failure and stays out of the log.
func (o *Orchestrator) fail(log *slog.Logger, res Result, err error, chunk, total int) Result {
	res.Status = StatusFailed
	res.Err = err
	res.Markdown = ""

	if errors.Is(err, context.Canceled) {
		log.Info("summarization interrupted", "stage", res.Stage)
		return res
	}

	rec := FailureRecord{Time: o.now(), Filename: res.Name, Chunk: chunk, Total: total}
	if logErr := o.deps.Failures.Append(rec); logErr != nil {
		log.Error("failure log write failed", "error", logErr)
	}
	return res
}

func isRetryable(err error) bool {
	var apiErr *summarize.APIError
	return errors.As(err, &apiErr) && apiErr.Retryable()
}

// Describe renders a failed result's position the same way the failure log
// does, for console output.
func Describe(r Result) string {
	if r.FailedAt > 0 {
		return fmt.Sprintf("chunk %d of %d", r.FailedAt, r.Chunks)
	}
	return "full document"
}
