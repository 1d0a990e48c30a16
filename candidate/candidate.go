// Package candidate materializes keyphrase candidates from a tagged document.
//
// A candidate is a contiguous token span matching a part of speech selection
// rule, identified by its canonical form: the normalized words joined with a
// single space. All occurrences of the same canonical form across the
// document merge into one candidate, and the first occurrence determines the
// candidate's earliest position for tie-breaks and position weighting.
//
// Three selection strategies are provided:
//
//   - SelectLongestTagSequences: longest runs of valid-tagged tokens.
//   - SelectLongestKeywordSequences: longest runs of given keywords, used to
//     compose phrases from the highest-ranked words.
//   - SelectMatchingPattern: spans matching a compiled tag pattern such as
//     (ADJ)*(NOUN)+.
//
// Candidate sets preserve insertion order, so all downstream stages iterate
// deterministically.
package candidate

import (
	"strings"
	"unicode"
)

// Occurrence is a single appearance of a candidate in the document.
type Occurrence struct {
	Words  []string // Surface forms of the span
	Tags   []string // Part of speech tags of the span
	Offset int      // Global word offset of the span's first token
}

// Candidate is a keyphrase candidate with all its occurrences.
type Candidate struct {
	CanonicalForm   string       // Normalized words joined with a space
	NormalizedWords []string     // Shared by all occurrences
	Occurrences     []Occurrence // In document order
	Weight          float64      // Assigned by ranking, zero until then
}

// Length returns the number of words in the candidate.
func (c *Candidate) Length() int {
	return len(c.NormalizedWords)
}

// Frequency returns the number of recorded occurrences.
func (c *Candidate) Frequency() int {
	return len(c.Occurrences)
}

// FirstOffset returns the global word offset of the earliest occurrence.
func (c *Candidate) FirstOffset() int {
	return c.Occurrences[0].Offset
}

// FirstWords returns the surface forms of the earliest occurrence.
func (c *Candidate) FirstWords() []string {
	return c.Occurrences[0].Words
}

// Text returns the surface forms of the earliest occurrence joined with
// spaces. This is the form reported to callers as the keyphrase text.
func (c *Candidate) Text() string {
	return strings.Join(c.Occurrences[0].Words, " ")
}

// Set holds candidates keyed by canonical form, in insertion order.
type Set struct {
	byForm map[string]*Candidate
	order  []string
}

// NewSet returns an empty candidate set.
func NewSet() *Set {
	return &Set{byForm: make(map[string]*Candidate)}
}

// add records one occurrence, creating the candidate on first sight.
func (s *Set) add(words, tags, normalized []string, offset int) {
	form := strings.Join(normalized, " ")
	c, ok := s.byForm[form]
	if !ok {
		c = &Candidate{CanonicalForm: form, NormalizedWords: normalized}
		s.byForm[form] = c
		s.order = append(s.order, form)
	}
	c.Occurrences = append(c.Occurrences, Occurrence{
		Words:  words,
		Tags:   tags,
		Offset: offset,
	})
}

// Get returns the candidate with the given canonical form, or nil.
func (s *Set) Get(form string) *Candidate {
	return s.byForm[form]
}

// Len returns the number of distinct candidates.
func (s *Set) Len() int {
	return len(s.order)
}

// Candidates returns all candidates in insertion order.
func (s *Set) Candidates() []*Candidate {
	out := make([]*Candidate, len(s.order))
	for i, form := range s.order {
		out[i] = s.byForm[form]
	}
	return out
}

// remove deletes the candidate with the given canonical form.
func (s *Set) remove(form string) {
	if _, ok := s.byForm[form]; !ok {
		return
	}
	delete(s.byForm, form)
	for i, f := range s.order {
		if f == form {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// FilterOptions controls candidate filtering. Zero-valued fields disable
// their check, so FilterOptions{MaxWords: 3} applies only the length cap.
type FilterOptions struct {
	Stopwords         map[string]struct{} // Drop candidates containing a stopword
	MinCharacters     int                 // Minimum total characters across words
	MinWordCharacters int                 // Minimum characters per word
	ValidPunctuation  string              // Punctuation allowed by the alphanumeric check
	MaxWords          int                 // Maximum candidate length in words
	AlphanumericOnly  bool                // Drop candidates with other symbols
	InvalidTags       map[string]struct{} // Drop candidates containing these tags
}

// DefaultFilterOptions returns the filtering defaults used by the topic-aware
// models: at least 3 characters overall, words of at least 2 characters, at
// most 5 words, alphanumeric with hyphens allowed.
func DefaultFilterOptions(stopwords map[string]struct{}) FilterOptions {
	return FilterOptions{
		Stopwords:         stopwords,
		MinCharacters:     3,
		MinWordCharacters: 2,
		ValidPunctuation:  "-",
		MaxWords:          5,
		AlphanumericOnly:  true,
	}
}

// Filter removes candidates failing any enabled check. Checks run against
// the surface forms and tags of the first occurrence.
func (s *Set) Filter(opts FilterOptions) {
	for _, form := range append([]string(nil), s.order...) {
		if s.discard(s.byForm[form], opts) {
			s.remove(form)
		}
	}
}

func (s *Set) discard(c *Candidate, opts FilterOptions) bool {
	words := c.FirstWords()

	if opts.Stopwords != nil {
		for _, w := range words {
			if _, ok := opts.Stopwords[strings.ToLower(w)]; ok {
				return true
			}
		}
	}

	if opts.InvalidTags != nil {
		for _, tag := range c.Occurrences[0].Tags {
			if _, ok := opts.InvalidTags[tag]; ok {
				return true
			}
		}
	}

	if opts.MinCharacters > 0 || opts.MinWordCharacters > 0 {
		total := 0
		for _, w := range words {
			n := len([]rune(w))
			total += n
			if opts.MinWordCharacters > 0 && n < opts.MinWordCharacters {
				return true
			}
		}
		if opts.MinCharacters > 0 && total < opts.MinCharacters {
			return true
		}
	}

	if opts.MaxWords > 0 && c.Length() > opts.MaxWords {
		return true
	}

	if opts.AlphanumericOnly {
		for _, w := range words {
			if !isAlphanumeric(w, opts.ValidPunctuation) {
				return true
			}
		}
	}

	return false
}

// isAlphanumeric reports whether word consists of letters, digits and the
// given punctuation characters only.
func isAlphanumeric(word, validPunctuation string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		if strings.ContainsRune(validPunctuation, r) {
			continue
		}
		return false
	}
	return true
}
