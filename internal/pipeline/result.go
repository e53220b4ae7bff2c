package pipeline

import "time"

// Stage is a step of the per-document state machine.
type Stage string

const (
	StageExtract         Stage = "extract"
	StageRoute           Stage = "route"
	StageSummarizeWhole  Stage = "summarize_whole"
	StageSummarizeChunks Stage = "summarize_chunks"
	StageMerge           Stage = "merge"
	StageSave            Stage = "save"
)

// Status is the terminal state of a document.
type Status string

const (
	StatusSaved  Status = "saved"
	StatusFailed Status = "failed"
)

// Result describes how one document was processed. Stage is the last stage
// entered, i.e. where processing stopped on failure.
type Result struct {
	Name       string
	Status     Status
	Stage      Stage
	Tokens     int
	Chunks     int // Zero on the whole-document path
	FailedAt   int // 1-based chunk that failed, if any
	OutputPath string
	Markdown   string
	Err        error
	Elapsed    time.Duration
}

// Chunked reports whether the document took the chunk-and-merge path.
func (r Result) Chunked() bool {
	return r.Chunks > 0
}

// BatchResult aggregates a sequential run over several documents.
type BatchResult struct {
	Results []Result
	Saved   int
	Failed  int
}

func (b *BatchResult) add(r Result) {
	b.Results = append(b.Results, r)
	switch r.Status {
	case StatusSaved:
		b.Saved++
	case StatusFailed:
		b.Failed++
	}
}
