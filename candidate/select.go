package candidate

import (
	"github.com/AlirezaTheH/perke/document"
	"github.com/AlirezaTheH/perke/pattern"
)

// SelectLongestTagSequences scans each sentence left to right and records
// the longest contiguous runs of tokens whose tags are in validTags. A run
// closes at the first disallowed tag or at sentence end; overlapping
// sub-spans are never recorded.
func SelectLongestTagSequences(doc document.Document, validTags map[string]struct{}) *Set {
	return selectLongestSequences(doc, document.Sentence.Tags, validTags)
}

// SelectLongestKeywordSequences records the longest contiguous runs of
// tokens whose normalized forms are in keywords. Used to compose phrases
// from the top-ranked words of a word graph.
func SelectLongestKeywordSequences(doc document.Document, keywords map[string]struct{}) *Set {
	return selectLongestSequences(doc, document.Sentence.NormalizedWords, keywords)
}

// selectLongestSequences is the shared scan over sentences, keyed either by
// tags or by normalized words.
func selectLongestSequences(
	doc document.Document,
	key func(document.Sentence) []string,
	valid map[string]struct{},
) *Set {
	set := NewSet()

	shift := 0
	for _, sentence := range doc.Sentences {
		values := key(sentence)
		runStart := -1

		for j, value := range values {
			if _, ok := valid[value]; ok {
				if runStart < 0 {
					runStart = j
				}
				if j < sentence.Len()-1 {
					continue
				}
				// Run reaches the sentence end; close it below.
				j++
			}

			if runStart >= 0 {
				addSpan(set, sentence, runStart, j, shift)
				runStart = -1
			}
		}

		shift += sentence.Len()
	}

	return set
}

// SelectMatchingPattern records every longest span matching the compiled
// tag pattern. Scanning resumes after each match, so matches never overlap.
func SelectMatchingPattern(doc document.Document, p pattern.Pattern) *Set {
	set := NewSet()

	shift := 0
	for _, sentence := range doc.Sentences {
		tags := sentence.Tags()
		for j := 0; j < len(tags); {
			length, ok := p.MatchLongest(tags, j)
			if !ok {
				j++
				continue
			}
			addSpan(set, sentence, j, j+length, shift)
			j += length
		}
		shift += sentence.Len()
	}

	return set
}

// addSpan records sentence tokens [start, end) as one candidate occurrence.
func addSpan(set *Set, sentence document.Sentence, start, end, shift int) {
	span := sentence.Tokens[start:end]
	words := make([]string, len(span))
	tags := make([]string, len(span))
	normalized := make([]string, len(span))
	for i, t := range span {
		words[i] = t.Text
		tags[i] = t.Tag
		normalized[i] = t.Normalized
	}
	set.add(words, tags, normalized, shift+start)
}
