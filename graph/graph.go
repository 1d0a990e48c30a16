// Package graph provides the weighted co-occurrence graphs ranked by the
// extraction models.
//
// A Graph holds string-identified nodes and non-negative weighted edges.
// Edges have no self-loops and their weights accumulate: adding the same
// pair again increases the weight instead of replacing it. Undirected
// graphs mirror every edge in both directions; directed graphs keep the two
// directions independent.
//
// Builders for the model-specific edge-weighting policies live in this
// package: word graphs for TextRank and SingleRank, position-biased word
// graphs for PositionRank, topic graphs for TopicRank and multipartite
// candidate graphs for MultipartiteRank. Builders never fail on isolated
// nodes; a candidate without co-occurring neighbors simply stays isolated
// and is handled by the ranking engine's dangling-mass redistribution.
package graph

import "sort"

// Edge is a neighbor index and weight pair. Edge slices returned by the
// graph are sorted by neighbor index for deterministic iteration.
type Edge struct {
	To     int
	Weight float64
}

// Graph is a weighted graph over string-identified nodes.
type Graph struct {
	directed bool
	index    map[string]int
	nodes    []string
	out      []map[int]float64
}

// New returns an empty undirected graph.
func New() *Graph {
	return &Graph{index: make(map[string]int)}
}

// NewDirected returns an empty directed graph.
func NewDirected() *Graph {
	return &Graph{directed: true, index: make(map[string]int)}
}

// Directed reports whether edge directions are independent.
func (g *Graph) Directed() bool {
	return g.directed
}

// AddNode inserts a node if absent and returns its index.
func (g *Graph) AddNode(id string) int {
	if i, ok := g.index[id]; ok {
		return i
	}
	i := len(g.nodes)
	g.index[id] = i
	g.nodes = append(g.nodes, id)
	g.out = append(g.out, make(map[int]float64))
	return i
}

// AddEdge accumulates weight w onto the edge between a and b, creating
// nodes and the edge as needed. Self-loops are ignored. In undirected
// graphs the weight is applied to both directions.
func (g *Graph) AddEdge(a, b string, w float64) {
	if a == b {
		return
	}
	i, j := g.AddNode(a), g.AddNode(b)
	g.out[i][j] += w
	if !g.directed {
		g.out[j][i] += w
	}
}

// Order returns the number of nodes.
func (g *Graph) Order() int {
	return len(g.nodes)
}

// Nodes returns node identifiers in insertion order.
func (g *Graph) Nodes() []string {
	return g.nodes
}

// Node returns the identifier of node i.
func (g *Graph) Node(i int) string {
	return g.nodes[i]
}

// Index returns the index of the node with the given identifier.
func (g *Graph) Index(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// HasEdge reports whether an edge from a to b exists.
func (g *Graph) HasEdge(a, b string) bool {
	i, ok := g.index[a]
	if !ok {
		return false
	}
	j, ok := g.index[b]
	if !ok {
		return false
	}
	_, ok = g.out[i][j]
	return ok
}

// Weight returns the weight of the edge from a to b, or 0 if absent.
func (g *Graph) Weight(a, b string) float64 {
	i, ok := g.index[a]
	if !ok {
		return 0
	}
	j, ok := g.index[b]
	if !ok {
		return 0
	}
	return g.out[i][j]
}

// OutEdges returns the outgoing edges of node i sorted by neighbor index.
func (g *Graph) OutEdges(i int) []Edge {
	edges := make([]Edge, 0, len(g.out[i]))
	for to, w := range g.out[i] {
		edges = append(edges, Edge{To: to, Weight: w})
	}
	sort.Slice(edges, func(a, b int) bool { return edges[a].To < edges[b].To })
	return edges
}

// OutWeight returns the total outgoing edge weight of node i. Nodes with
// zero outgoing weight are dangling.
func (g *Graph) OutWeight(i int) float64 {
	total := 0.0
	for _, w := range g.out[i] {
		total += w
	}
	return total
}

// InEdges returns, for every node, its incoming edges sorted by source
// index. For undirected graphs this equals the outgoing adjacency.
func (g *Graph) InEdges() [][]Edge {
	in := make([][]Edge, len(g.nodes))
	for from := range g.out {
		for to, w := range g.out[from] {
			in[to] = append(in[to], Edge{To: from, Weight: w})
		}
	}
	for i := range in {
		sort.Slice(in[i], func(a, b int) bool { return in[i][a].To < in[i][b].To })
	}
	return in
}
