// Package tagger adapts the prose tokenizer and part of speech tagger to the
// document model consumed by the extraction pipeline.
//
// Tag segments raw English text into sentences, tags every token, converts
// the Penn Treebank tags prose emits to the universal tagset the extraction
// models expect, and fills lexical forms with the Snowball stemmer.
//
// Known limitations:
//
//   - English only. Other languages need a caller-provided tagger producing
//     document.Sentence values directly.
//   - Byte offsets are recovered by scanning for each token in the original
//     text; a token that the tokenizer rewrote (curly quotes, ellipses) maps
//     to its first literal match instead.
package tagger

import (
	"fmt"
	"strings"

	"github.com/kljensen/snowball"
	prose "gopkg.in/jdkato/prose.v2"

	"github.com/AlirezaTheH/perke/document"
)

// Tag segments, tokenizes and tags text, returning a document ready for
// keyphrase extraction. Blank input yields an empty document and no error.
func Tag(text string) (document.Document, error) {
	if strings.TrimSpace(text) == "" {
		return document.Document{}, nil
	}

	seg, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return document.Document{}, fmt.Errorf("tagger: segmenting: %w", err)
	}

	var sentences []document.Sentence
	cursor := 0
	for _, sent := range seg.Sentences() {
		// Sentence base offset in the original text. The segmenter
		// preserves sentence text verbatim, so a literal scan suffices.
		base := strings.Index(text[cursor:], sent.Text)
		if base < 0 {
			base = cursor
		} else {
			base += cursor
		}

		tokens, err := tagSentence(sent.Text, base)
		if err != nil {
			return document.Document{}, err
		}
		if len(tokens) > 0 {
			sentences = append(sentences, document.Sentence{Tokens: tokens})
		}
		cursor = base + len(sent.Text)
	}

	return document.New(sentences, nil)
}

// tagSentence tags a single segmented sentence and maps each token back to
// byte offsets in the original text.
func tagSentence(sentence string, base int) ([]document.Token, error) {
	tagged, err := prose.NewDocument(sentence,
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("tagger: tagging: %w", err)
	}

	var tokens []document.Token
	cursor := 0
	for _, tok := range tagged.Tokens() {
		start := strings.Index(sentence[cursor:], tok.Text)
		if start < 0 {
			start = cursor
		} else {
			start += cursor
		}
		end := start + len(tok.Text)
		cursor = end

		tokens = append(tokens, document.Token{
			Text:       tok.Text,
			Normalized: Normalize(tok.Text),
			Tag:        universalTag(tok.Tag),
			Start:      base + start,
			End:        base + end,
		})
	}
	return tokens, nil
}

// Normalize returns the Snowball stem of word, lowercased. Words the stemmer
// rejects fall back to plain lowercasing.
func Normalize(word string) string {
	stem, err := snowball.Stem(word, "english", true)
	if err != nil || stem == "" {
		return strings.ToLower(word)
	}
	return stem
}

// pennToUniversal maps the Penn Treebank tagset to the universal tagset.
var pennToUniversal = map[string]string{
	"NN": "NOUN", "NNS": "NOUN", "NNP": "NOUN", "NNPS": "NOUN",
	"JJ": "ADJ", "JJR": "ADJ", "JJS": "ADJ",
	"VB": "VERB", "VBD": "VERB", "VBG": "VERB", "VBN": "VERB",
	"VBP": "VERB", "VBZ": "VERB", "MD": "VERB",
	"RB": "ADV", "RBR": "ADV", "RBS": "ADV", "WRB": "ADV",
	"PRP": "PRON", "PRP$": "PRON", "WP": "PRON", "WP$": "PRON", "EX": "PRON",
	"DT": "DET", "PDT": "DET", "WDT": "DET",
	"IN": "ADP",
	"CC": "CCONJ",
	"CD": "NUM",
	"RP": "PART", "TO": "PART", "POS": "PART",
	"UH": "INTJ",
	"FW": "X", "LS": "X",
	"SYM": "SYM", "#": "SYM", "$": "SYM",
	".": "PUNCT", ",": "PUNCT", ":": "PUNCT",
	"(": "PUNCT", ")": "PUNCT", "``": "PUNCT", "''": "PUNCT",
	"-LRB-": "PUNCT", "-RRB-": "PUNCT", "HYPH": "PUNCT", "NFP": "PUNCT",
}

// universalTag converts a Penn Treebank tag to its universal equivalent.
// Unknown tags map to X.
func universalTag(penn string) string {
	if u, ok := pennToUniversal[penn]; ok {
		return u
	}
	return "X"
}
