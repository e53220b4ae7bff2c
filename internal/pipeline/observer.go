package pipeline

import "github.com/dgallion1/docsum/internal/document"

// Observer is notified as a document moves through the pipeline. Calls
// happen on the processing goroutine, in order.
type Observer interface {
	DocumentStarted(name string)
	TokensCounted(name string, tokens, limit int, chunked bool)
	ChunkStarted(name string, chunk document.Chunk)
	Merging(name string, parts int)
	DocumentFinished(res Result)
}

// NopObserver ignores all events.
type NopObserver struct{}

func (NopObserver) DocumentStarted(string) {}
func (NopObserver) TokensCounted(string, int, int, bool) {}
func (NopObserver) ChunkStarted(string, document.Chunk) {}
func (NopObserver) Merging(string, int) {}
func (NopObserver) DocumentFinished(Result) {}
