// Package topic groups keyphrase candidates into topics via hierarchical
// agglomerative clustering on lexical overlap.
//
// Candidates are vectorized as binary bags of normalized words and compared
// with Jaccard similarity: identical normalized forms count fully, distinct
// forms contribute nothing. Clusters merge under average linkage while the
// best remaining pairwise similarity exceeds the threshold. The resulting
// topics partition the candidate set: every candidate belongs to exactly
// one topic.
//
// Clustering is deterministic: candidates are processed in a stable order
// by first occurrence, and merge ties prefer the pair whose merged cluster
// has the smallest maximum internal dissimilarity.
package topic

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/AlirezaTheH/perke/candidate"
)

// DefaultThreshold is the minimum average-linkage similarity for merging
// two clusters, i.e. more than 1/4 of normalized word overlap.
const DefaultThreshold = 0.25

// Heuristic selects the representative candidate of a topic.
type Heuristic int

const (
	// FirstOccurring picks the candidate with the earliest first occurrence.
	FirstOccurring Heuristic = iota
	// MostFrequent picks the candidate with the most occurrences, ties
	// broken by earliest first occurrence.
	MostFrequent
)

// Topic is a non-empty cluster of lexically similar candidates.
type Topic struct {
	Candidates     []*candidate.Candidate
	Representative *candidate.Candidate
}

// FirstOffset returns the earliest first-occurrence offset among members.
func (t Topic) FirstOffset() int {
	best := t.Candidates[0].FirstOffset()
	for _, c := range t.Candidates[1:] {
		if c.FirstOffset() < best {
			best = c.FirstOffset()
		}
	}
	return best
}

// Cluster partitions cands into topics. The threshold is a similarity in
// [0, 1]; higher values produce more, smaller topics. Returns nil for an
// empty candidate list and a single singleton topic for one candidate.
func Cluster(cands []*candidate.Candidate, threshold float64, h Heuristic) []Topic {
	if len(cands) == 0 {
		return nil
	}

	ordered := make([]*candidate.Candidate, len(cands))
	copy(ordered, cands)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].FirstOffset() != ordered[j].FirstOffset() {
			return ordered[i].FirstOffset() < ordered[j].FirstOffset()
		}
		return ordered[i].CanonicalForm < ordered[j].CanonicalForm
	})

	if len(ordered) == 1 {
		return []Topic{newTopic(ordered, h)}
	}

	sim := similarityMatrix(ordered)
	clusters := agglomerate(len(ordered), sim, threshold)

	topics := make([]Topic, 0, len(clusters))
	for _, members := range clusters {
		group := make([]*candidate.Candidate, len(members))
		for i, m := range members {
			group[i] = ordered[m]
		}
		topics = append(topics, newTopic(group, h))
	}

	// Stable topic order by earliest member occurrence.
	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].FirstOffset() < topics[j].FirstOffset()
	})
	return topics
}

func newTopic(members []*candidate.Candidate, h Heuristic) Topic {
	t := Topic{Candidates: members, Representative: members[0]}
	for _, c := range members[1:] {
		switch h {
		case MostFrequent:
			if c.Frequency() > t.Representative.Frequency() ||
				(c.Frequency() == t.Representative.Frequency() &&
					c.FirstOffset() < t.Representative.FirstOffset()) {
				t.Representative = c
			}
		default:
			if c.FirstOffset() < t.Representative.FirstOffset() {
				t.Representative = c
			}
		}
	}
	return t
}

// similarityMatrix vectorizes candidates as binary term vectors and returns
// the pairwise Jaccard similarity matrix.
func similarityMatrix(cands []*candidate.Candidate) *mat.SymDense {
	vocab := make(map[string]int)
	for _, c := range cands {
		for _, w := range c.NormalizedWords {
			if _, ok := vocab[w]; !ok {
				vocab[w] = len(vocab)
			}
		}
	}

	vectors := mat.NewDense(len(cands), len(vocab), nil)
	for i, c := range cands {
		for _, w := range c.NormalizedWords {
			vectors.Set(i, vocab[w], 1)
		}
	}

	sim := mat.NewSymDense(len(cands), nil)
	for i := 0; i < len(cands); i++ {
		for j := i + 1; j < len(cands); j++ {
			sim.SetSym(i, j, jaccard(vectors.RawRowView(i), vectors.RawRowView(j)))
		}
	}
	return sim
}

// jaccard returns |a∩b| / |a∪b| over the non-zero dimensions of two binary
// vectors. Two empty vectors have similarity 0.
func jaccard(a, b []float64) float64 {
	intersection, union := 0, 0
	for k := range a {
		switch {
		case a[k] > 0 && b[k] > 0:
			intersection++
			union++
		case a[k] > 0 || b[k] > 0:
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// agglomerate merges singleton clusters bottom-up under average linkage
// until no pair exceeds the threshold. Returns member index lists.
func agglomerate(n int, sim *mat.SymDense, threshold float64) [][]int {
	clusters := make([][]int, n)
	for i := range clusters {
		clusters[i] = []int{i}
	}

	for len(clusters) > 1 {
		bestA, bestB := -1, -1
		bestSim := -1.0
		bestSpread := 0.0

		for a := 0; a < len(clusters); a++ {
			for b := a + 1; b < len(clusters); b++ {
				s := averageLinkage(clusters[a], clusters[b], sim)
				if s <= threshold || s < bestSim {
					continue
				}
				spread := maxDissimilarity(clusters[a], clusters[b], sim)
				if s > bestSim || spread < bestSpread {
					bestA, bestB = a, b
					bestSim = s
					bestSpread = spread
				}
			}
		}

		if bestA < 0 {
			break
		}

		merged := append(append([]int{}, clusters[bestA]...), clusters[bestB]...)
		sort.Ints(merged)
		clusters[bestA] = merged
		clusters = append(clusters[:bestB], clusters[bestB+1:]...)
	}

	return clusters
}

// averageLinkage is the mean pairwise similarity across two clusters.
func averageLinkage(a, b []int, sim *mat.SymDense) float64 {
	total := 0.0
	for _, i := range a {
		for _, j := range b {
			total += sim.At(i, j)
		}
	}
	return total / float64(len(a)*len(b))
}

// maxDissimilarity is the largest pairwise dissimilarity the merged cluster
// would contain. Used for deterministic tie-breaking between merges.
func maxDissimilarity(a, b []int, sim *mat.SymDense) float64 {
	members := append(append([]int{}, a...), b...)
	worst := 0.0
	for x := 0; x < len(members); x++ {
		for y := x + 1; y < len(members); y++ {
			if d := 1 - sim.At(members[x], members[y]); d > worst {
				worst = d
			}
		}
	}
	return worst
}
