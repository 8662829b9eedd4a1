package uni

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWords_ReconstructsInput(t *testing.T) {
	tests := []string{
		"",
		"hello",
		"the quick brown fox",
		"punctuation, stays. intact!",
		"tabs\tand  double  spaces",
		"non-ASCII: héllo wörld",
	}
	for _, input := range tests {
		require.Equal(t, input, strings.Join(Words(input), ""))
	}
}

func TestWords_TokenizesOnWordBoundaries(t *testing.T) {
	require.Equal(t, []string{"hello", " ", "world"}, Words("hello world"))
}

func TestWordIterator_Offsets(t *testing.T) {
	input := "ab cd"
	iter := NewWordIterator(input)

	var tokens []string
	for iter.Next() {
		require.Equal(t, input[iter.Start():iter.End()], iter.Value())
		tokens = append(tokens, iter.Value())
	}
	require.Equal(t, []string{"ab", " ", "cd"}, tokens)
}
