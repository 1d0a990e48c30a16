package extract

import (
	"sort"

	"github.com/AlirezaTheH/perke/candidate"
)

// nBest orders scored candidates by descending score, removes redundant
// ones unless disabled, and returns at most n keyphrases. When fewer than n
// candidates survive, all of them are returned and a warning is logged.
func nBest(cands []*candidate.Candidate, topicOf map[string]int, n int, cfg Config) []Keyphrase {
	sorted := make([]*candidate.Candidate, len(cands))
	copy(sorted, cands)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Weight != sorted[j].Weight {
			return sorted[i].Weight > sorted[j].Weight
		}
		if sorted[i].FirstOffset() != sorted[j].FirstOffset() {
			return sorted[i].FirstOffset() < sorted[j].FirstOffset()
		}
		return sorted[i].CanonicalForm < sorted[j].CanonicalForm
	})

	selected := make([]*candidate.Candidate, 0, min(n, len(sorted)))
	for _, c := range sorted {
		if !cfg.KeepRedundant && isRedundant(c, selected, topicOf) {
			continue
		}
		selected = append(selected, c)
		if len(selected) == n {
			break
		}
	}

	if len(selected) < n {
		cfg.Logger.Warn("not enough keyphrase candidates",
			"requested", n,
			"returned", len(selected))
	}

	phrases := make([]Keyphrase, len(selected))
	for i, c := range selected {
		phrases[i] = Keyphrase{Text: c.Text(), Score: c.Weight}
	}
	return phrases
}

// isRedundant reports whether c duplicates an already selected candidate:
// either its words are a contiguous subsequence of a higher-scored
// candidate's words, or both belong to the same topic.
func isRedundant(c *candidate.Candidate, selected []*candidate.Candidate, topicOf map[string]int) bool {
	for _, s := range selected {
		if isSubsequence(c.NormalizedWords, s.NormalizedWords) {
			return true
		}
		if topicOf != nil && topicOf[c.CanonicalForm] == topicOf[s.CanonicalForm] {
			return true
		}
	}
	return false
}

// isSubsequence reports whether needle occurs as a contiguous run inside
// haystack.
func isSubsequence(needle, haystack []string) bool {
	if len(needle) > len(haystack) {
		return false
	}
outer:
	for start := 0; start+len(needle) <= len(haystack); start++ {
		for i, w := range needle {
			if haystack[start+i] != w {
				continue outer
			}
		}
		return true
	}
	return false
}
