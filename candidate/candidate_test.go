package candidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlirezaTheH/perke/document"
	"github.com/AlirezaTheH/perke/pattern"
)

// tagged builds a sentence from (word, tag) pairs; normalized forms are the
// words themselves.
func tagged(pairs ...string) document.Sentence {
	var s document.Sentence
	for i := 0; i+1 < len(pairs); i += 2 {
		s.Tokens = append(s.Tokens, document.Token{
			Text:       pairs[i],
			Normalized: pairs[i],
			Tag:        pairs[i+1],
		})
	}
	return s
}

func doc(sentences ...document.Sentence) document.Document {
	d, err := document.New(sentences, nil)
	if err != nil {
		panic(err)
	}
	return d
}

var nounsAndAdjectives = map[string]struct{}{"NOUN": {}, "ADJ": {}}

func TestSelectLongestTagSequences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		doc       document.Document
		wantForms []string
	}{
		{
			name:      "empty document",
			doc:       doc(),
			wantForms: nil,
		},
		{
			name:      "no valid tags",
			doc:       doc(tagged("runs", "VERB", "quickly", "ADV")),
			wantForms: nil,
		},
		{
			name:      "single token sentence",
			doc:       doc(tagged("fox", "NOUN")),
			wantForms: []string{"fox"},
		},
		{
			name:      "run closes at disallowed tag",
			doc:       doc(tagged("fast", "ADJ", "brown", "ADJ", "fox", "NOUN", "jumps", "VERB")),
			wantForms: []string{"fast brown fox"},
		},
		{
			name:      "run closes at sentence end",
			doc:       doc(tagged("jumps", "VERB", "brown", "ADJ", "fox", "NOUN")),
			wantForms: []string{"brown fox"},
		},
		{
			name: "two runs in one sentence",
			doc: doc(tagged(
				"brown", "ADJ", "fox", "NOUN", "sees", "VERB", "lazy", "ADJ", "dog", "NOUN")),
			wantForms: []string{"brown fox", "lazy dog"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			set := SelectLongestTagSequences(tt.doc, nounsAndAdjectives)

			var gotForms []string
			for _, c := range set.Candidates() {
				gotForms = append(gotForms, c.CanonicalForm)
			}
			assert.Equal(t, tt.wantForms, gotForms)
		})
	}
}

// The same normalized phrase in two sentences must merge into one candidate
// with two occurrences.
func TestOccurrencesMerge(t *testing.T) {
	t.Parallel()

	d := doc(
		tagged("machine", "NOUN", "learning", "NOUN", "helps", "VERB"),
		tagged("students", "NOUN", "like", "VERB", "machine", "NOUN", "learning", "NOUN"),
	)
	set := SelectLongestTagSequences(d, map[string]struct{}{"NOUN": {}})

	require.Equal(t, 2, set.Len())

	ml := set.Get("machine learning")
	require.NotNil(t, ml)
	assert.Equal(t, 2, ml.Frequency())
	assert.Equal(t, 0, ml.FirstOffset())
	assert.Equal(t, []int{0, 5}, []int{ml.Occurrences[0].Offset, ml.Occurrences[1].Offset})
	assert.Equal(t, "machine learning", ml.Text())
}

func TestCandidateIdentityIsNormalized(t *testing.T) {
	t.Parallel()

	s1 := document.Sentence{Tokens: []document.Token{
		{Text: "Foxes", Normalized: "fox", Tag: "NOUN"},
	}}
	s2 := document.Sentence{Tokens: []document.Token{
		{Text: "fox", Normalized: "fox", Tag: "NOUN"},
	}}
	set := SelectLongestTagSequences(doc(s1, s2), nounsAndAdjectives)

	require.Equal(t, 1, set.Len())
	c := set.Get("fox")
	require.NotNil(t, c)
	assert.Equal(t, 2, c.Frequency())
	// The first occurrence determines the reported surface form.
	assert.Equal(t, "Foxes", c.Text())
}

func TestSelectLongestKeywordSequences(t *testing.T) {
	t.Parallel()

	d := doc(tagged("graph", "NOUN", "ranking", "NOUN", "works", "VERB"))
	set := SelectLongestKeywordSequences(d, map[string]struct{}{
		"graph": {}, "ranking": {},
	})

	require.Equal(t, 1, set.Len())
	assert.Equal(t, "graph ranking", set.Candidates()[0].CanonicalForm)
}

func TestSelectMatchingPattern(t *testing.T) {
	t.Parallel()

	nounPhrase := pattern.MustCompile("(ADJ)*(NOUN)+")

	tests := []struct {
		name      string
		doc       document.Document
		wantForms []string
	}{
		{
			name:      "adjectives require a trailing noun",
			doc:       doc(tagged("fast", "ADJ", "runs", "VERB", "fox", "NOUN")),
			wantForms: []string{"fox"},
		},
		{
			name:      "longest span wins",
			doc:       doc(tagged("fast", "ADJ", "brown", "ADJ", "fox", "NOUN", "jumps", "VERB")),
			wantForms: []string{"fast brown fox"},
		},
		{
			name: "matches do not overlap",
			doc: doc(tagged(
				"big", "ADJ", "data", "NOUN", "and", "CCONJ", "deep", "ADJ", "nets", "NOUN")),
			wantForms: []string{"big data", "deep nets"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			set := SelectMatchingPattern(tt.doc, nounPhrase)

			var gotForms []string
			for _, c := range set.Candidates() {
				gotForms = append(gotForms, c.CanonicalForm)
			}
			assert.Equal(t, tt.wantForms, gotForms)
		})
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		doc       document.Document
		opts      FilterOptions
		wantForms []string
	}{
		{
			name: "stopword candidates dropped",
			doc:  doc(tagged("the", "NOUN", "fox", "NOUN")),
			opts: FilterOptions{
				Stopwords: map[string]struct{}{"the": {}},
			},
			wantForms: []string{},
		},
		{
			name:      "short words dropped",
			doc:       doc(tagged("ai", "NOUN", "sees", "VERB", "robots", "NOUN")),
			opts:      FilterOptions{MinWordCharacters: 3},
			wantForms: []string{"robots"},
		},
		{
			name: "long candidates dropped",
			doc: doc(tagged(
				"very", "ADJ", "long", "ADJ", "noun", "ADJ", "phrase", "NOUN",
			), tagged("fox", "NOUN")),
			opts:      FilterOptions{MaxWords: 3},
			wantForms: []string{"fox"},
		},
		{
			name:      "non-alphanumeric dropped",
			doc:       doc(tagged("c++", "NOUN", "code", "NOUN")),
			opts:      FilterOptions{AlphanumericOnly: true, ValidPunctuation: "-"},
			wantForms: []string{},
		},
		{
			name:      "hyphen allowed by default punctuation",
			doc:       doc(tagged("well-known", "ADJ", "fact", "NOUN")),
			opts:      DefaultFilterOptions(nil),
			wantForms: []string{"well-known fact"},
		},
		{
			name:      "invalid tags dropped",
			doc:       doc(tagged("three", "NUM", "foxes", "NOUN")),
			opts:      FilterOptions{InvalidTags: map[string]struct{}{"NUM": {}}},
			wantForms: []string{},
		},
		{
			name:      "zero options keep everything",
			doc:       doc(tagged("ai", "NOUN")),
			opts:      FilterOptions{},
			wantForms: []string{"ai"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			set := SelectLongestTagSequences(tt.doc, map[string]struct{}{
				"NOUN": {}, "ADJ": {}, "NUM": {},
			})
			set.Filter(tt.opts)

			gotForms := []string{}
			for _, c := range set.Candidates() {
				gotForms = append(gotForms, c.CanonicalForm)
			}
			assert.Equal(t, tt.wantForms, gotForms)
		})
	}
}
