// Package document defines the part-of-speech-tagged document model consumed
// by the extraction pipeline.
//
// A Document is an ordered list of sentences, each an ordered list of tagged
// tokens. It is produced outside the core by a tagger (the tagger package
// provides a ready-made adapter) and is treated as read-only input by every
// downstream stage. A document with zero sentences is valid and yields zero
// keyphrase candidates.
//
// All functions are safe for concurrent use by multiple goroutines.
package document

import (
	"errors"
	"fmt"
)

// ErrMalformed reports a token missing required fields. The core cannot
// safely guess part of speech tags, so malformed input is rejected before
// any processing.
var ErrMalformed = errors.New("document: malformed token")

// Token is a single tagged word with byte offsets into the original text.
//
// Byte-offset invariant: for tokens produced by the tagger package,
// text[t.Start:t.End] == t.Text.
type Token struct {
	Text       string `json:"text"`       // Surface form as it appears in the text
	Normalized string `json:"normalized"` // Lexical form (stem or lemma)
	Tag        string `json:"tag"`        // Part of speech tag
	Start      int    `json:"start"`      // Byte offset in original text (inclusive)
	End        int    `json:"end"`        // Byte offset in original text (exclusive)
}

// String returns a debug representation, e.g. NOUN("fox")[10:13].
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)[%d:%d]", t.Tag, t.Text, t.Start, t.End)
}

// Sentence is an ordered sequence of tokens.
type Sentence struct {
	Tokens []Token `json:"tokens"`
}

// Len returns the number of tokens in the sentence.
func (s Sentence) Len() int {
	return len(s.Tokens)
}

// Words returns the surface forms of the sentence tokens.
func (s Sentence) Words() []string {
	words := make([]string, len(s.Tokens))
	for i, t := range s.Tokens {
		words[i] = t.Text
	}
	return words
}

// NormalizedWords returns the lexical forms of the sentence tokens.
func (s Sentence) NormalizedWords() []string {
	words := make([]string, len(s.Tokens))
	for i, t := range s.Tokens {
		words[i] = t.Normalized
	}
	return words
}

// Tags returns the part of speech tags of the sentence tokens.
func (s Sentence) Tags() []string {
	tags := make([]string, len(s.Tokens))
	for i, t := range s.Tokens {
		tags[i] = t.Tag
	}
	return tags
}

// Normalizer maps a surface form to its lexical form. It must be a pure
// function. Used by New for tokens whose Normalized field is empty, i.e.
// when the tagger does not already provide one.
type Normalizer func(word string) string

// Document is a tagged document ready for keyphrase extraction.
type Document struct {
	Sentences []Sentence `json:"sentences"`
}

// New validates sentences and assembles a Document. Tokens with an empty
// Normalized field are filled using norm; a nil norm keeps the surface form
// unchanged. Returns an error wrapping ErrMalformed if any token has an
// empty surface form or tag.
func New(sentences []Sentence, norm Normalizer) (Document, error) {
	for i, sentence := range sentences {
		for j, t := range sentence.Tokens {
			if t.Text == "" || t.Tag == "" {
				return Document{}, fmt.Errorf(
					"%w: sentence %d token %d has empty surface form or tag",
					ErrMalformed, i, j)
			}
			if t.Normalized == "" {
				if norm != nil {
					sentence.Tokens[j].Normalized = norm(t.Text)
				} else {
					sentence.Tokens[j].Normalized = t.Text
				}
			}
		}
	}
	return Document{Sentences: sentences}, nil
}

// WordCount returns the total number of tokens across all sentences.
func (d Document) WordCount() int {
	n := 0
	for _, s := range d.Sentences {
		n += s.Len()
	}
	return n
}

// Empty reports whether the document contains no sentences.
func (d Document) Empty() bool {
	return len(d.Sentences) == 0
}
