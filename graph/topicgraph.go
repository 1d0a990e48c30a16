package graph

import (
	"math"
	"strconv"

	"github.com/AlirezaTheH/perke/candidate"
	"github.com/AlirezaTheH/perke/topic"
)

// BuildTopicGraph builds the TopicRank graph: a complete undirected graph
// whose nodes are topic indices (as decimal strings) and whose edge weights
// measure the positional proximity of the topics' candidate occurrences.
// Every cross-topic occurrence pair contributes 1/gap, where the gap is the
// word distance reduced by the earlier candidate's length.
func BuildTopicGraph(topics []topic.Topic) *Graph {
	g := New()
	for i := range topics {
		g.AddNode(strconv.Itoa(i))
	}

	for i := range topics {
		for j := i + 1; j < len(topics); j++ {
			weight := 0.0
			for _, ci := range topics[i].Candidates {
				for _, cj := range topics[j].Candidates {
					weight += proximity(ci, cj)
				}
			}
			g.AddEdge(strconv.Itoa(i), strconv.Itoa(j), weight)
		}
	}

	return g
}

// BuildMultipartiteGraph builds the MultipartiteRank candidate graph: a
// directed graph over candidate canonical forms where only cross-topic
// pairs are connected, with the positional proximity weight applied in both
// directions. Within-topic co-occurrence is discarded.
func BuildMultipartiteGraph(cands []*candidate.Candidate, topicOf map[string]int) *Graph {
	g := NewDirected()
	for _, c := range cands {
		g.AddNode(c.CanonicalForm)
	}

	for i, ci := range cands {
		for _, cj := range cands[i+1:] {
			if topicOf[ci.CanonicalForm] == topicOf[cj.CanonicalForm] {
				continue
			}
			if weight := proximity(ci, cj); weight > 0 {
				g.AddEdge(ci.CanonicalForm, cj.CanonicalForm, weight)
				g.AddEdge(cj.CanonicalForm, ci.CanonicalForm, weight)
			}
		}
	}

	return g
}

// AdjustWeights applies the MultipartiteRank first-occurrence boost: for
// each topic with at least two members, edges pointing to its earliest
// candidate are inflated by the weights its fellow members direct at the
// shared neighbor, scaled by alpha and by e^(1/(1+p)) where p is the
// earliest candidate's first offset.
func AdjustWeights(g *Graph, topics []topic.Topic, alpha float64) {
	type boost struct {
		from, to string
	}
	boosts := make(map[boost]float64)
	var order []boost

	for _, t := range topics {
		if len(t.Candidates) < 2 {
			continue
		}

		first := t.Candidates[0]
		for _, c := range t.Candidates[1:] {
			if c.FirstOffset() < first.FirstOffset() {
				first = c
			}
		}

		i, ok := g.Index(first.CanonicalForm)
		if !ok {
			continue
		}
		scale := alpha * math.Exp(1/float64(1+first.FirstOffset()))

		for _, e := range g.OutEdges(i) {
			neighbor := g.Node(e.To)
			boosters := 0.0
			for _, c := range t.Candidates {
				if c != first {
					boosters += g.Weight(c.CanonicalForm, neighbor)
				}
			}
			if boosters > 0 {
				key := boost{from: neighbor, to: first.CanonicalForm}
				if _, seen := boosts[key]; !seen {
					order = append(order, key)
				}
				boosts[key] = boosters * scale
			}
		}
	}

	for _, key := range order {
		g.AddEdge(key.from, key.to, boosts[key])
	}
}

// proximity sums 1/gap over all occurrence pairs of two candidates. The gap
// between two occurrences is their absolute offset difference reduced by the
// earlier candidate's length minus one; overlapping spans clamp to 1.
func proximity(a, b *candidate.Candidate) float64 {
	total := 0.0
	for _, oa := range a.Occurrences {
		for _, ob := range b.Occurrences {
			gap := oa.Offset - ob.Offset
			if gap < 0 {
				gap = -gap - (a.Length() - 1)
			} else if gap > 0 {
				gap -= b.Length() - 1
			}
			if gap < 1 {
				gap = 1
			}
			total += 1 / float64(gap)
		}
	}
	return total
}
