package chunker

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/dgallion1/docsum/internal/tokenizer"
)

// wordCounter counts one token per whitespace-delimited word.
type wordCounter struct{ calls int }

func (c *wordCounter) CountTokens(text string) int {
	c.calls++
	return len(strings.Fields(text))
}

// charCounter counts one token per four bytes, rounding up, so long words
// can exceed a limit on their own.
type charCounter struct{}

func (charCounter) CountTokens(text string) int {
	return (len(text) + 3) / 4
}

func TestSplit_FitsOneChunk(t *testing.T) {
	chunks := Split("a b c d", 10, &wordCounter{})
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "a b c d" {
		t.Errorf("expected %q, got %q", "a b c d", chunks[0])
	}
}

func TestSplit_GreedyBoundaries(t *testing.T) {
	chunks := Split("w1 w2 w3 w4 w5 w6 w7", 3, &wordCounter{})
	want := []string{"w1 w2 w3", "w4 w5 w6", "w7"}
	if len(chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %d: %q", len(want), len(chunks), chunks)
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d: expected %q, got %q", i, want[i], chunks[i])
		}
	}
}

func TestSplit_LimitExactlyReached(t *testing.T) {
	// A chunk measuring exactly the limit is not split.
	chunks := Split("a b c", 3, &wordCounter{})
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk at exactly the limit, got %d", len(chunks))
	}
}

func TestSplit_WhitespaceNormalized(t *testing.T) {
	chunks := Split("  alpha\n\nbeta\t gamma  ", 10, &wordCounter{})
	if len(chunks) != 1 || chunks[0] != "alpha beta gamma" {
		t.Fatalf("expected [%q], got %q", "alpha beta gamma", chunks)
	}
}

func TestSplit_EmptyText(t *testing.T) {
	if chunks := Split("", 5, &wordCounter{}); len(chunks) != 0 {
		t.Errorf("expected no chunks, got %q", chunks)
	}
	if chunks := Split(" \n\t ", 5, &wordCounter{}); len(chunks) != 0 {
		t.Errorf("expected no chunks for whitespace, got %q", chunks)
	}
}

func TestSplit_OversizedWordOwnChunk(t *testing.T) {
	long := strings.Repeat("x", 40) // 10 tokens under charCounter
	text := "ab cd " + long + " ef"
	chunks := Split(text, 3, charCounter{})

	want := []string{"ab cd", long, "ef"}
	if len(chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %d: %q", len(want), len(chunks), chunks)
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d: expected %q, got %q", i, want[i], chunks[i])
		}
	}
}

func TestSplit_OversizedFirstAndLastWord(t *testing.T) {
	long := strings.Repeat("y", 30)
	chunks := Split(long+" mid "+long, 2, charCounter{})

	want := []string{long, "mid", long}
	if len(chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %d: %q", len(want), len(chunks), chunks)
	}
	for i, c := range chunks {
		if c == "" {
			t.Errorf("chunk %d is empty", i)
		}
		if c != want[i] {
			t.Errorf("chunk %d: expected %q, got %q", i, want[i], c)
		}
	}
}

func TestSplit_NonPositiveLimitUsesDefault(t *testing.T) {
	text := strings.Repeat("word ", 50)
	chunks := Split(text, 0, &wordCounter{})
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk with default limit, got %d", len(chunks))
	}
}

func TestSplit_RemeasuresAccumulatedChunk(t *testing.T) {
	c := &wordCounter{}
	Split("a b c d e", 100, c)
	if c.calls != 5 {
		t.Errorf("expected one measurement per word, got %d", c.calls)
	}
}

func TestSplit_RoundTripAndBound(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	vocab := []string{"the", "model", "summarizes", "a", "document", strings.Repeat("z", 50), "of", "tokens"}
	counters := map[string]tokenizer.Counter{
		"words":    &wordCounter{},
		"chars":    charCounter{},
		"estimate": tokenizer.Estimate{},
	}

	for name, counter := range counters {
		for trial := 0; trial < 25; trial++ {
			n := rng.Intn(200)
			words := make([]string, n)
			for i := range words {
				words[i] = vocab[rng.Intn(len(vocab))]
			}
			text := strings.Join(words, []string{" ", "\n", "  \t"}[rng.Intn(3)])
			limit := 1 + rng.Intn(30)

			t.Run(fmt.Sprintf("%s/%d", name, trial), func(t *testing.T) {
				chunks := Split(text, limit, counter)

				joined := strings.Join(chunks, " ")
				want := strings.Join(strings.Fields(text), " ")
				if joined != want {
					t.Fatalf("round trip mismatch:\n got %q\nwant %q", joined, want)
				}
				for i, c := range chunks {
					if c == "" {
						t.Errorf("chunk %d is empty", i)
					}
					single := len(strings.Fields(c)) == 1
					if counter.CountTokens(c) > limit && !single {
						t.Errorf("chunk %d measures %d tokens, limit %d", i, counter.CountTokens(c), limit)
					}
				}
			})
		}
	}
}

func TestChunks_Positions(t *testing.T) {
	chunks := Chunks("a b c d e", 2, &wordCounter{})
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.Index != i+1 {
			t.Errorf("chunk %d: expected index %d, got %d", i, i+1, c.Index)
		}
		if c.Total != 3 {
			t.Errorf("chunk %d: expected total 3, got %d", i, c.Total)
		}
	}
	if chunks[2].Text != "e" {
		t.Errorf("expected last chunk %q, got %q", "e", chunks[2].Text)
	}
}
