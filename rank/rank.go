// Package rank computes stationary node importance scores over weighted
// graphs with PageRank power iteration.
//
// The engine supports directed and undirected graphs, an optional bias
// (personalization) vector for position-weighted walks, and explicit
// dangling-node handling: a node with zero outgoing weight redistributes
// its score through the bias vector each iteration, so total mass is
// conserved. Scores are always computed from the previous iteration's full
// snapshot; iteration order never affects the result.
//
// Reaching the iteration cap before the tolerance is met is a non-fatal
// completion: ranking is an approximation by design, so the engine logs a
// warning and returns the last computed scores.
package rank

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/AlirezaTheH/perke/graph"
)

// Defaults match the original PageRank formulation used by all models.
const (
	DefaultDamping       = 0.85
	DefaultEpsilon       = 1e-4
	DefaultMaxIterations = 100
)

// Options configures a ranking run. The zero value selects the defaults.
type Options struct {
	// Damping is the probability of continuing the walk instead of
	// teleporting, in (0, 1).
	Damping float64

	// Epsilon is the convergence tolerance: iteration stops when the
	// maximum absolute per-node score change falls below it.
	Epsilon float64

	// MaxIterations caps the power iteration.
	MaxIterations int

	// Bias is the teleport distribution by node identifier. Nodes absent
	// from the map get zero teleport probability. A nil map means uniform.
	// The vector is normalized internally.
	Bias map[string]float64

	// Logger receives the non-convergence warning. Nil uses slog.Default.
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Damping == 0 {
		o.Damping = DefaultDamping
	}
	if o.Epsilon == 0 {
		o.Epsilon = DefaultEpsilon
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// PageRank returns the stationary score of every node in g. An empty graph
// yields an empty map. The returned scores sum to 1 up to floating point
// error.
func PageRank(g *graph.Graph, opts Options) map[string]float64 {
	opts = opts.withDefaults()

	n := g.Order()
	if n == 0 {
		return map[string]float64{}
	}

	bias := biasVector(g, opts.Bias)
	in := g.InEdges()

	outWeight := make([]float64, n)
	var dangling []int
	for i := 0; i < n; i++ {
		outWeight[i] = g.OutWeight(i)
		if outWeight[i] == 0 {
			dangling = append(dangling, i)
		}
	}

	scores := make([]float64, n)
	for i := range scores {
		scores[i] = 1 / float64(n)
	}

	d := opts.Damping
	next := make([]float64, n)
	converged := false

	for iter := 0; iter < opts.MaxIterations; iter++ {
		danglingMass := 0.0
		for _, i := range dangling {
			danglingMass += scores[i]
		}

		for i := 0; i < n; i++ {
			sum := 0.0
			for _, e := range in[i] {
				sum += e.Weight / outWeight[e.To] * scores[e.To]
			}
			next[i] = (1-d)*bias[i] + d*(sum+danglingMass*bias[i])
		}

		delta := floats.Distance(next, scores, math.Inf(1))
		scores, next = next, scores

		if delta < opts.Epsilon {
			converged = true
			break
		}
	}

	if !converged {
		opts.Logger.Warn("ranking did not converge within iteration cap",
			"max_iterations", opts.MaxIterations,
			"epsilon", opts.Epsilon,
			"nodes", n)
	}

	result := make(map[string]float64, n)
	for i, id := range g.Nodes() {
		result[id] = scores[i]
	}
	return result
}

// biasVector normalizes the teleport distribution over the graph's nodes.
// A nil or all-zero map falls back to the uniform distribution.
func biasVector(g *graph.Graph, bias map[string]float64) []float64 {
	n := g.Order()
	v := make([]float64, n)

	if bias == nil {
		for i := range v {
			v[i] = 1 / float64(n)
		}
		return v
	}

	for i, id := range g.Nodes() {
		v[i] = bias[id]
	}
	total := floats.Sum(v)
	if total == 0 {
		for i := range v {
			v[i] = 1 / float64(n)
		}
		return v
	}
	floats.Scale(1/total, v)
	return v
}
