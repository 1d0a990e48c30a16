package graph

import (
	"github.com/AlirezaTheH/perke/document"
)

// BuildWordGraph builds the TextRank/SingleRank word graph. Nodes are the
// normalized forms of valid-tagged words; an edge links two words whose
// positions are less than window apart in the running token sequence.
// Sentence boundaries are not taken into account and invalid words still
// occupy window slots, following the original TextRank formulation. Each
// token-level co-occurrence accumulates one unit of edge weight.
func BuildWordGraph(doc document.Document, validTags map[string]struct{}, window int) *Graph {
	type flatWord struct {
		word  string
		valid bool
	}

	var flat []flatWord
	g := New()
	for _, sentence := range doc.Sentences {
		for _, t := range sentence.Tokens {
			_, valid := validTags[t.Tag]
			flat = append(flat, flatWord{word: t.Normalized, valid: valid})
			if valid {
				g.AddNode(t.Normalized)
			}
		}
	}

	for i, first := range flat {
		if !first.valid {
			continue
		}
		for j := i + 1; j < min(i+window, len(flat)); j++ {
			second := flat[j]
			if second.valid && first.word != second.word {
				g.AddEdge(first.word, second.word, 1)
			}
		}
	}

	return g
}

// BuildPositionWordGraph builds the PositionRank word graph. Only
// valid-tagged words are kept in the flattened sequence; two words are
// linked when their global positions differ by less than window. The second
// return value maps each word to the sum of its inverse positions
// (1-based), the bias used for the position-weighted random walk.
func BuildPositionWordGraph(
	doc document.Document,
	validTags map[string]struct{},
	window int,
) (*Graph, map[string]float64) {
	type flatWord struct {
		word     string
		position int
	}

	var flat []flatWord
	g := New()
	shift := 0
	for _, sentence := range doc.Sentences {
		for j, t := range sentence.Tokens {
			if _, ok := validTags[t.Tag]; ok {
				flat = append(flat, flatWord{word: t.Normalized, position: shift + j})
				g.AddNode(t.Normalized)
			}
		}
		shift += sentence.Len()
	}

	for i, first := range flat {
		for _, second := range flat[i+1:] {
			if second.position-first.position >= window {
				break
			}
			if first.word != second.word {
				g.AddEdge(first.word, second.word, 1)
			}
		}
	}

	positions := make(map[string]float64, g.Order())
	for _, fw := range flat {
		positions[fw.word] += 1 / float64(fw.position+1)
	}

	return g, positions
}
