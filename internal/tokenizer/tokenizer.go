// Package tokenizer counts tokens the way the target model family does.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// EstimateEncoding selects the word-based heuristic instead of a BPE table.
const EstimateEncoding = "estimate"

// Counter reports how many tokens a text consumes. Implementations must be
// deterministic and side-effect free.
type Counter interface {
	CountTokens(text string) int
}

// Tiktoken counts tokens with an OpenAI BPE encoding such as cl100k_base.
// The BPE ranks are downloaded on first use and cached under
// TIKTOKEN_CACHE_DIR (or the system temp dir).
type Tiktoken struct {
	encoding string
	enc      *tiktoken.Tiktoken
}

func NewTiktoken(encoding string) (*Tiktoken, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("load encoding %q: %w", encoding, err)
	}
	return &Tiktoken{encoding: encoding, enc: enc}, nil
}

func (t *Tiktoken) CountTokens(text string) int {
	if text == "" {
		return 0
	}
	return len(t.enc.Encode(text, nil, nil))
}

// Encoding returns the BPE encoding name.
func (t *Tiktoken) Encoding() string {
	return t.encoding
}

// Estimate is the ~1.33 tokens per word heuristic. It is only used when
// TOKENIZER_ENCODING=estimate.
type Estimate struct{}

func (Estimate) CountTokens(text string) int {
	return EstimateTokens(text)
}

// EstimateTokens gives a rough token count from the number of words.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	words := len(strings.Fields(text))
	tokens := int(float64(words) * 1.33)
	if tokens < 1 && len(text) > 0 {
		tokens = 1
	}
	return tokens
}

// New returns the counter for the configured encoding name.
func New(encoding string) (Counter, error) {
	if encoding == EstimateEncoding {
		return Estimate{}, nil
	}
	return NewTiktoken(encoding)
}
