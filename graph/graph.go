// Package graph defines simple undirected graphs and the graph problems built on them:
// maximum independent set, minimum vertex cover, K-coloring and maximum cut.
package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrVertex is returned when an edge refers to a vertex that does not exist.
	ErrVertex = errors.New("graph: vertex out of range")
	// ErrLoop is returned when an edge links a vertex to itself.
	ErrLoop = errors.New("graph: self loop")
	// ErrDuplicate is returned when an edge appears twice.
	ErrDuplicate = errors.New("graph: duplicate edge")
	// ErrWeights is returned when the number of weights does not match the number of vertices or edges.
	ErrWeights = errors.New("graph: weights do not match")
)

// An Edge links two vertices. Edges are undirected: U < V once in a graph.
type Edge struct {
	U, V int
}

func (e Edge) normalized() Edge {
	if e.U > e.V {
		return Edge{U: e.V, V: e.U}
	}
	return e
}

// A Graph is a simple undirected graph whose vertices are numbered from 0 to NbVertices()-1.
// Edges keep the order in which they were given.
type Graph struct {
	nbVertices int
	edges      []Edge
	adj        []map[int]struct{}
}

// New returns a graph with n vertices and the given edges.
func New(n int, edges []Edge) (*Graph, error) {
	if n < 0 {
		return nil, fmt.Errorf("graph: negative number of vertices %d", n)
	}
	g := Graph{nbVertices: n, edges: make([]Edge, 0, len(edges)), adj: make([]map[int]struct{}, n)}
	for i := range g.adj {
		g.adj[i] = make(map[int]struct{})
	}
	for _, e := range edges {
		if err := g.addEdge(e); err != nil {
			return nil, err
		}
	}
	return &g, nil
}

// MustNew is like New but panics on error.
func MustNew(n int, edges ...Edge) *Graph {
	g, err := New(n, edges)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Graph) addEdge(e Edge) error {
	e = e.normalized()
	if e.U < 0 || e.V >= g.nbVertices {
		return fmt.Errorf("%w: edge (%d, %d) in a graph with %d vertices", ErrVertex, e.U, e.V, g.nbVertices)
	}
	if e.U == e.V {
		return fmt.Errorf("%w on vertex %d", ErrLoop, e.U)
	}
	if _, ok := g.adj[e.U][e.V]; ok {
		return fmt.Errorf("%w (%d, %d)", ErrDuplicate, e.U, e.V)
	}
	g.edges = append(g.edges, e)
	g.adj[e.U][e.V] = struct{}{}
	g.adj[e.V][e.U] = struct{}{}
	return nil
}

// Complete returns the complete graph on n vertices.
func Complete(n int) *Graph {
	var edges []Edge
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			edges = append(edges, Edge{U: u, V: v})
		}
	}
	return MustNew(n, edges...)
}

// NbVertices returns the number of vertices of g.
func (g *Graph) NbVertices() int { return g.nbVertices }

// NbEdges returns the number of edges of g.
func (g *Graph) NbEdges() int { return len(g.edges) }

// Edges returns a copy of the edges of g.
func (g *Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// Edge returns the i-th edge of g.
func (g *Graph) Edge(i int) Edge { return g.edges[i] }

// HasEdge returns true iff u and v are adjacent.
func (g *Graph) HasEdge(u, v int) bool {
	if u < 0 || u >= g.nbVertices {
		return false
	}
	_, ok := g.adj[u][v]
	return ok
}

// Degree returns the number of neighbors of v.
func (g *Graph) Degree(v int) int { return len(g.adj[v]) }

func (g *Graph) String() string {
	return fmt.Sprintf("graph(%d vertices, %v)", g.nbVertices, g.edges)
}

func checkWeights[V any](weights []V, n int, what string) error {
	if weights != nil && len(weights) != n {
		return fmt.Errorf("%w: %d weights for %d %s", ErrWeights, len(weights), n, what)
	}
	return nil
}
