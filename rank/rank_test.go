package rank

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/AlirezaTheH/perke/graph"
)

func mass(scores map[string]float64) float64 {
	values := make([]float64, 0, len(scores))
	for _, s := range scores {
		values = append(values, s)
	}
	return floats.Sum(values)
}

func TestPageRankEmptyGraph(t *testing.T) {
	t.Parallel()

	scores := PageRank(graph.New(), Options{})
	assert.Empty(t, scores)
}

// A single isolated node is dangling; its redistributed mass keeps the
// score at exactly 1.
func TestPageRankSingleNode(t *testing.T) {
	t.Parallel()

	g := graph.New()
	g.AddNode("only")

	scores := PageRank(g, Options{})
	require.Len(t, scores, 1)
	assert.InDelta(t, 1.0, scores["only"], 1e-9)
}

func TestPageRankMassConservation(t *testing.T) {
	t.Parallel()

	g := graph.New()
	g.AddEdge("a", "b", 1)
	g.AddEdge("b", "c", 2)
	g.AddEdge("c", "a", 1)
	g.AddNode("isolated") // dangling node mixed into a connected component

	scores := PageRank(g, Options{})
	require.Len(t, scores, 4)
	assert.InDelta(t, 1.0, mass(scores), 1e-9)

	for id, s := range scores {
		assert.Greater(t, s, 0.0, "node %s", id)
	}
}

func TestPageRankSymmetry(t *testing.T) {
	t.Parallel()

	// a-b and b-c with equal weights: a and c must tie, b must lead.
	g := graph.New()
	g.AddEdge("a", "b", 1)
	g.AddEdge("b", "c", 1)

	scores := PageRank(g, Options{})
	assert.InDelta(t, scores["a"], scores["c"], 1e-9)
	assert.Greater(t, scores["b"], scores["a"])
}

func TestPageRankWeightedEdges(t *testing.T) {
	t.Parallel()

	// b receives a heavier share of a's walk than c does.
	g := graph.New()
	g.AddEdge("a", "b", 3)
	g.AddEdge("a", "c", 1)

	scores := PageRank(g, Options{})
	assert.Greater(t, scores["b"], scores["c"])
}

func TestPageRankDirected(t *testing.T) {
	t.Parallel()

	// All walks end in the sink, which then teleports uniformly.
	g := graph.NewDirected()
	g.AddEdge("source", "sink", 1)

	scores := PageRank(g, Options{})
	assert.Greater(t, scores["sink"], scores["source"])
	assert.InDelta(t, 1.0, mass(scores), 1e-9)
}

func TestPageRankBias(t *testing.T) {
	t.Parallel()

	g := graph.New()
	g.AddEdge("a", "b", 1)
	g.AddEdge("b", "c", 1)
	g.AddEdge("c", "a", 1)

	uniform := PageRank(g, Options{})
	biased := PageRank(g, Options{Bias: map[string]float64{"a": 1}})

	assert.Greater(t, biased["a"], uniform["a"])
	assert.InDelta(t, 1.0, mass(biased), 1e-9)
}

func TestPageRankDeterminism(t *testing.T) {
	t.Parallel()

	g := graph.New()
	g.AddEdge("w1", "w2", 1)
	g.AddEdge("w2", "w3", 2)
	g.AddEdge("w3", "w4", 1)
	g.AddEdge("w4", "w1", 3)
	g.AddEdge("w1", "w3", 1)

	first := PageRank(g, Options{})
	for range 10 {
		assert.Equal(t, first, PageRank(g, Options{}))
	}
}

// The iteration cap is a non-fatal completion: scores are still returned
// and a warning is logged.
func TestPageRankIterationCap(t *testing.T) {
	t.Parallel()

	g := graph.New()
	g.AddEdge("a", "b", 1)
	g.AddEdge("b", "c", 1)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	scores := PageRank(g, Options{
		Epsilon:       1e-15,
		MaxIterations: 2,
		Logger:        logger,
	})

	require.Len(t, scores, 3)
	assert.InDelta(t, 1.0, mass(scores), 1e-9)
	assert.Contains(t, buf.String(), "did not converge")
}

func TestPageRankConvergedIsQuiet(t *testing.T) {
	t.Parallel()

	g := graph.New()
	g.AddEdge("a", "b", 1)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	PageRank(g, Options{Logger: logger})
	assert.Empty(t, buf.String())
}
