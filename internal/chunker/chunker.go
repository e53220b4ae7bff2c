package chunker

import (
	"strings"

	"github.com/dgallion1/docsum/internal/document"
	"github.com/dgallion1/docsum/internal/tokenizer"
)

// DefaultLimit keeps each chunk safely below typical request token caps.
const DefaultLimit = 20000

// Split breaks text into whitespace-delimited words and greedily packs them
// into chunks whose token count stays within limit.
//
// The accumulated chunk is re-measured after every word, so boundaries match
// what the tokenizer reports for the joined text rather than a per-word sum.
// A word that alone exceeds limit becomes its own chunk; words are never
// dropped or duplicated, and joining the chunks with single spaces yields
// strings.Join(strings.Fields(text), " ").
func Split(text string, limit int, counter tokenizer.Counter) []string {
	if limit <= 0 {
		limit = DefaultLimit
	}

	words := strings.Fields(text)
	var chunks []string
	var current []string

	for _, word := range words {
		current = append(current, word)
		if counter.CountTokens(strings.Join(current, " ")) > limit {
			if len(current) == 1 {
				// Oversized single word: emit on its own.
				chunks = append(chunks, word)
				current = current[:0]
				continue
			}
			current = current[:len(current)-1]
			chunks = append(chunks, strings.Join(current, " "))
			current = []string{word}
			if counter.CountTokens(word) > limit {
				chunks = append(chunks, word)
				current = current[:0]
			}
		}
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}

// Chunks wraps Split's output with 1-based positions for progress reporting
// and failure records.
func Chunks(text string, limit int, counter tokenizer.Counter) []document.Chunk {
	parts := Split(text, limit, counter)
	out := make([]document.Chunk, len(parts))
	for i, p := range parts {
		out[i] = document.Chunk{Text: p, Index: i + 1, Total: len(parts)}
	}
	return out
}
