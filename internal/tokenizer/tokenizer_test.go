package tokenizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"whitespace only", "   ", 1},
		{"single word", "hello", 1},
		{"three words", "one two three", 3},
		{"hundred words", strings.Repeat("word ", 100), 133},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EstimateTokens(tc.in))
		})
	}
}

// loadOrSkip skips when the BPE ranks cannot be fetched, e.g. offline CI.
func loadOrSkip(t *testing.T) *Tiktoken {
	t.Helper()
	tk, err := NewTiktoken("cl100k_base")
	if err != nil {
		t.Skipf("cl100k_base unavailable: %v", err)
	}
	return tk
}

func TestTiktoken_CountTokens(t *testing.T) {
	tk := loadOrSkip(t)

	assert.Equal(t, "cl100k_base", tk.Encoding())
	assert.Equal(t, 0, tk.CountTokens(""))
	assert.Equal(t, 2, tk.CountTokens("hello world"))
}

func TestTiktoken_Deterministic(t *testing.T) {
	tk := loadOrSkip(t)

	text := "Transformers process sequences of sub-word units; counting them twice must agree."
	first := tk.CountTokens(text)
	assert.Positive(t, first)
	assert.Equal(t, first, tk.CountTokens(text))
}

func TestTiktoken_UnknownEncoding(t *testing.T) {
	_, err := NewTiktoken("no_such_encoding")
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	c, err := New(EstimateEncoding)
	require.NoError(t, err)
	assert.IsType(t, Estimate{}, c)

	loadOrSkip(t)
	c, err = New("cl100k_base")
	require.NoError(t, err)
	assert.IsType(t, &Tiktoken{}, c)
}
