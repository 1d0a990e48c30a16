package data

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopwords(t *testing.T) {
	t.Parallel()

	words := Stopwords()
	require.NotEmpty(t, words)

	seen := make(map[string]bool, len(words))
	for _, w := range words {
		assert.NotEmpty(t, w)
		assert.Equal(t, strings.ToLower(w), w, "stopwords must be lowercase")
		assert.False(t, strings.HasPrefix(w, "#"), "comments must be stripped")
		assert.False(t, seen[w], "duplicate stopword %q", w)
		seen[w] = true
	}

	assert.Contains(t, words, "the")
	assert.Contains(t, words, "of")
}
