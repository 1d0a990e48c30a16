// Package extract runs the graph-based keyphrase extraction models over a
// tagged document.
//
// Five models are provided, each a configuration of the shared pipeline
// rather than a separate implementation:
//
//   - TextRank: word graph with a narrow window, phrases composed from the
//     top-T-percent highest ranked words or from noun/adjective runs.
//   - SingleRank: word graph with a wide window and co-occurrence counts as
//     edge weights, phrases scored by the sum of their word scores.
//   - PositionRank: SingleRank with a random walk biased toward words that
//     occur early in the document, candidates from a noun phrase pattern.
//   - TopicRank: candidates clustered into topics, an inter-topic proximity
//     graph ranked, one representative keyphrase per topic.
//   - MultipartiteRank: candidates ranked directly on a directed
//     inter-topic graph with a first-occurrence edge boost.
//
// Two API layers:
//
//   - Structured: Extract returns []Keyphrase with scores, configured by a
//     Config value from one of the model constructors.
//   - Convenience: Keyphrases runs TopicRank with defaults and returns the
//     phrase texts only.
//
// All functions are safe for concurrent use by multiple goroutines; nothing
// is shared across documents.
package extract

import (
	"sort"
	"strconv"
	"strings"

	"github.com/AlirezaTheH/perke/candidate"
	"github.com/AlirezaTheH/perke/data"
	"github.com/AlirezaTheH/perke/document"
	"github.com/AlirezaTheH/perke/graph"
	"github.com/AlirezaTheH/perke/pattern"
	"github.com/AlirezaTheH/perke/rank"
	"github.com/AlirezaTheH/perke/topic"
)

// Keyphrase is one extracted phrase with its score. Text is the surface
// form of the phrase's first occurrence.
type Keyphrase struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// Extract returns the n highest scored keyphrases of doc under cfg, in
// descending score order. Ties are broken by earliest first occurrence. A
// non-positive n selects the default of 10. An empty document or a document
// without candidates yields an empty, non-nil slice.
func Extract(doc document.Document, cfg Config, n int) ([]Keyphrase, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if n <= 0 {
		n = defaultTopN
	}
	if doc.Empty() {
		return []Keyphrase{}, nil
	}

	var scored []*candidate.Candidate
	var topicOf map[string]int
	switch cfg.Model {
	case TextRank, SingleRank, PositionRank:
		scored = wordModel(doc, cfg)
	default:
		scored, topicOf = topicModel(doc, cfg)
	}

	return nBest(scored, topicOf, n, cfg), nil
}

// Keyphrases returns the texts of the top 10 keyphrases of doc using
// TopicRank with default parameters. Convenience wrapper over Extract.
func Keyphrases(doc document.Document) []string {
	phrases, err := Extract(doc, NewTopicRank(), defaultTopN)
	if err != nil || len(phrases) == 0 {
		return nil
	}
	out := make([]string, len(phrases))
	for i, p := range phrases {
		out[i] = p.Text
	}
	return out
}

// wordModel runs the word-graph models: rank words, compose candidates,
// score each candidate by the sum of its word scores.
func wordModel(doc document.Document, cfg Config) []*candidate.Candidate {
	valid := cfg.tagSet()
	opts := rank.Options{
		Damping:       cfg.Damping,
		Epsilon:       cfg.Epsilon,
		MaxIterations: cfg.MaxIterations,
		Logger:        cfg.Logger,
	}

	var g *graph.Graph
	if cfg.Model == PositionRank {
		var bias map[string]float64
		g, bias = graph.BuildPositionWordGraph(doc, valid, cfg.WindowSize)
		opts.Bias = bias
	} else {
		g = graph.BuildWordGraph(doc, valid, cfg.WindowSize)
	}

	weights := rank.PageRank(g, opts)

	var set *candidate.Set
	switch {
	case cfg.Model == PositionRank:
		set = candidate.SelectMatchingPattern(doc, pattern.MustCompile(cfg.Pattern))
		set.Filter(candidate.FilterOptions{MaxWords: cfg.MaxLength})
	case cfg.TopPercent > 0:
		set = candidate.SelectLongestKeywordSequences(doc, topWords(g, weights, cfg.TopPercent))
	default:
		set = candidate.SelectLongestTagSequences(doc, valid)
	}

	cands := set.Candidates()
	for _, c := range cands {
		total := 0.0
		for _, w := range c.NormalizedWords {
			total += weights[w]
		}
		if cfg.NormalizeByLength {
			total /= float64(c.Length())
		}
		c.Weight = total
	}
	return cands
}

// topWords returns the top share of graph nodes by descending weight, ties
// broken lexicographically.
func topWords(g *graph.Graph, weights map[string]float64, share float64) map[string]struct{} {
	words := append([]string(nil), g.Nodes()...)
	sort.SliceStable(words, func(i, j int) bool {
		if weights[words[i]] != weights[words[j]] {
			return weights[words[i]] > weights[words[j]]
		}
		return words[i] < words[j]
	})

	keep := int(float64(len(words)) * share)
	top := make(map[string]struct{}, keep)
	for _, w := range words[:keep] {
		top[w] = struct{}{}
	}
	return top
}

// topicModel runs TopicRank and MultipartiteRank: filter candidates,
// cluster them into topics and rank either the topic graph or the
// multipartite candidate graph.
func topicModel(doc document.Document, cfg Config) ([]*candidate.Candidate, map[string]int) {
	set := candidate.SelectLongestTagSequences(doc, cfg.tagSet())
	set.Filter(candidate.DefaultFilterOptions(stopwordSet(cfg.Stopwords)))

	cands := set.Candidates()
	if len(cands) == 0 {
		return nil, nil
	}

	topics := topic.Cluster(cands, cfg.Threshold, cfg.Heuristic)
	topicOf := make(map[string]int, len(cands))
	for i, t := range topics {
		for _, c := range t.Candidates {
			topicOf[c.CanonicalForm] = i
		}
	}

	opts := rank.Options{
		Damping:       cfg.Damping,
		Epsilon:       cfg.Epsilon,
		MaxIterations: cfg.MaxIterations,
		Logger:        cfg.Logger,
	}

	if cfg.Model == TopicRank {
		weights := rank.PageRank(graph.BuildTopicGraph(topics), opts)
		scored := make([]*candidate.Candidate, len(topics))
		for i, t := range topics {
			t.Representative.Weight = weights[strconv.Itoa(i)]
			scored[i] = t.Representative
		}
		return scored, topicOf
	}

	g := graph.BuildMultipartiteGraph(cands, topicOf)
	if cfg.Alpha > 0 {
		graph.AdjustWeights(g, topics, cfg.Alpha)
	}
	weights := rank.PageRank(g, opts)
	for _, c := range cands {
		c.Weight = weights[c.CanonicalForm]
	}
	return cands, topicOf
}

// stopwordSet lowercases the configured stopwords, falling back to the
// embedded default list.
func stopwordSet(words []string) map[string]struct{} {
	if words == nil {
		words = data.Stopwords()
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}
