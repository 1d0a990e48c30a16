package tagger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTag(t *testing.T) {
	t.Parallel()

	text := "The quick brown fox jumps over the lazy dog. Dogs bark loudly."

	doc, err := Tag(text)
	require.NoError(t, err)
	require.Len(t, doc.Sentences, 2)

	// Every token must map back to its exact span in the original text.
	for _, s := range doc.Sentences {
		for _, tok := range s.Tokens {
			assert.Equal(t, tok.Text, text[tok.Start:tok.End], "token %v", tok)
			assert.NotEmpty(t, tok.Tag)
			assert.NotEmpty(t, tok.Normalized)
		}
	}

	tags := make(map[string]string)
	for _, tok := range doc.Sentences[0].Tokens {
		tags[tok.Text] = tok.Tag
	}
	assert.Equal(t, "NOUN", tags["fox"])
	assert.Equal(t, "NOUN", tags["dog"])
	assert.Equal(t, "ADJ", tags["quick"])
	assert.Equal(t, "DET", tags["The"])
	assert.Equal(t, "PUNCT", tags["."])
}

func TestTagBlank(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "   ", "\n\t"} {
		doc, err := Tag(text)
		require.NoError(t, err)
		assert.True(t, doc.Empty())
	}
}

func TestTagRepeatedWords(t *testing.T) {
	t.Parallel()

	text := "dog dog dog."
	doc, err := Tag(text)
	require.NoError(t, err)
	require.Len(t, doc.Sentences, 1)

	// Repeated tokens must advance through the text, not all map to the
	// first match.
	starts := make(map[int]bool)
	for _, tok := range doc.Sentences[0].Tokens {
		if tok.Text != "dog" {
			continue
		}
		assert.Equal(t, "dog", text[tok.Start:tok.End])
		assert.False(t, starts[tok.Start], "duplicate start %d", tok.Start)
		starts[tok.Start] = true
	}
	assert.Len(t, starts, 3)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		word string
		want string
	}{
		{"foxes", "fox"},
		{"Foxes", "fox"},
		{"running", "run"},
		{"cats", "cat"},
		{"fox", "fox"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.word), tt.word)
	}
}

func TestUniversalTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		penn string
		want string
	}{
		{"NN", "NOUN"},
		{"NNPS", "NOUN"},
		{"JJR", "ADJ"},
		{"VBG", "VERB"},
		{"RB", "ADV"},
		{"IN", "ADP"},
		{".", "PUNCT"},
		{"XYZZY", "X"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, universalTag(tt.penn), tt.penn)
	}
}
