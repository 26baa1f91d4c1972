// Package graph stores a weighted undirected graph keyed by string node
// identifiers and ranks its nodes with a damped random-walk fixed point.
//
// The ranking follows the co-occurrence TextRank formulation:
//
//	w(n) = (1 - d) + d * Σ (weight(n, m) / out(m)) * w(m)
//
// Nodes are visited in ascending byte order and weights are updated in place,
// so a node sees the current step's result for every node ordered before it
// (Gauss-Seidel). Scores are therefore reproducible bit for bit but a
// perfectly symmetric graph does not rank to exactly equal scores.
//
// A Graph is not safe for concurrent mutation. Rank only reads the graph, so
// concurrent Rank calls on a graph that is no longer being built are safe.
package graph

import "slices"

// Edge is one adjacency entry: the neighbor and the weight of the connection.
type Edge struct {
	To     string
	Weight float64
}

// Graph is an undirected adjacency list.
type Graph struct {
	adj   map[string][]Edge
	order []string // nodes in first-seen order
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{adj: make(map[string][]Edge)}
}

// AddEdge connects a and b with the given weight. The edge is appended to both
// adjacency lists; an existing edge between the same pair is not merged, so
// adding the same pair twice doubles its contribution to OutWeight.
func (g *Graph) AddEdge(a, b string, weight float64) {
	g.touch(a)
	g.touch(b)
	g.adj[a] = append(g.adj[a], Edge{To: b, Weight: weight})
	g.adj[b] = append(g.adj[b], Edge{To: a, Weight: weight})
}

func (g *Graph) touch(node string) {
	if _, ok := g.adj[node]; !ok {
		g.adj[node] = nil
		g.order = append(g.order, node)
	}
}

// Nodes returns every node with at least one edge. The order is the order in
// which nodes were first added; callers needing a canonical order sort it.
func (g *Graph) Nodes() []string {
	return slices.Clone(g.order)
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.adj)
}

// Edges returns the adjacency list of node in insertion order. The returned
// slice must not be modified.
func (g *Graph) Edges(node string) []Edge {
	return g.adj[node]
}

// OutWeight returns the sum of the weights on node's adjacency list.
func (g *Graph) OutWeight(node string) float64 {
	sum := 0.0
	for _, e := range g.adj[node] {
		sum += e.Weight
	}
	return sum
}
