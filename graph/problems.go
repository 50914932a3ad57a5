package graph

import (
	"fmt"

	"github.com/crillab/reductions/config"
	"github.com/crillab/reductions/problem"
)

// vertexWeights returns weights, or unit weights if it is nil.
func vertexWeights[V problem.Numeric](weights []V, n int) []V {
	res := make([]V, n)
	for i := range res {
		if weights == nil {
			res[i] = 1
		} else {
			res[i] = weights[i]
		}
	}
	return res
}

// MaximumIndependentSet asks for a set of pairwise non-adjacent vertices of maximum total weight.
// Vertex v is in the set iff its flavor is 1.
type MaximumIndependentSet[V problem.Numeric] struct {
	g       *Graph
	weights []V
}

// NewMaximumIndependentSet returns an independent set problem on g.
// If weights is nil, all vertices have weight 1.
func NewMaximumIndependentSet[V problem.Numeric](g *Graph, weights []V) (*MaximumIndependentSet[V], error) {
	if err := checkWeights(weights, g.NbVertices(), "vertices"); err != nil {
		return nil, err
	}
	return &MaximumIndependentSet[V]{g: g, weights: vertexWeights(weights, g.NbVertices())}, nil
}

// Graph returns the underlying graph.
func (p *MaximumIndependentSet[V]) Graph() *Graph { return p.g }

// Weight returns the weight of vertex v.
func (p *MaximumIndependentSet[V]) Weight(v int) V { return p.weights[v] }

// Weights returns a copy of the vertex weights.
func (p *MaximumIndependentSet[V]) Weights() []V { return append([]V(nil), p.weights...) }

func (p *MaximumIndependentSet[V]) Kind() problem.Kind           { return problem.MaximumIndependentSet }
func (p *MaximumIndependentSet[V]) NumVariables() int            { return p.g.NbVertices() }
func (p *MaximumIndependentSet[V]) NumFlavors() int              { return 2 }
func (p *MaximumIndependentSet[V]) Direction() problem.Direction { return problem.Maximize }

func (p *MaximumIndependentSet[V]) Size() problem.SizeProfile {
	return problem.Size("num_vertices", p.g.NbVertices(), "num_edges", p.g.NbEdges())
}

func (p *MaximumIndependentSet[V]) Evaluate(c config.Config) problem.Evaluation[V] {
	problem.MustValidate[V](p, c)
	return problem.Evaluation[V]{Objective: selected(c, p.weights), Feasible: independent(p.g, c)}
}

func selected[V problem.Numeric](c config.Config, weights []V) V {
	var res V
	for v, x := range c {
		if x == 1 {
			res += weights[v]
		}
	}
	return res
}

func independent(g *Graph, c config.Config) bool {
	for _, e := range g.edges {
		if c[e.U] == 1 && c[e.V] == 1 {
			return false
		}
	}
	return true
}

// MinimumVertexCover asks for a set of vertices touching every edge, of minimum total weight.
// Vertex v is in the cover iff its flavor is 1.
type MinimumVertexCover[V problem.Numeric] struct {
	g       *Graph
	weights []V
}

// NewMinimumVertexCover returns a vertex cover problem on g.
// If weights is nil, all vertices have weight 1.
func NewMinimumVertexCover[V problem.Numeric](g *Graph, weights []V) (*MinimumVertexCover[V], error) {
	if err := checkWeights(weights, g.NbVertices(), "vertices"); err != nil {
		return nil, err
	}
	return &MinimumVertexCover[V]{g: g, weights: vertexWeights(weights, g.NbVertices())}, nil
}

// Graph returns the underlying graph.
func (p *MinimumVertexCover[V]) Graph() *Graph { return p.g }

// Weights returns a copy of the vertex weights.
func (p *MinimumVertexCover[V]) Weights() []V { return append([]V(nil), p.weights...) }

func (p *MinimumVertexCover[V]) Kind() problem.Kind           { return problem.MinimumVertexCover }
func (p *MinimumVertexCover[V]) NumVariables() int            { return p.g.NbVertices() }
func (p *MinimumVertexCover[V]) NumFlavors() int              { return 2 }
func (p *MinimumVertexCover[V]) Direction() problem.Direction { return problem.Minimize }

func (p *MinimumVertexCover[V]) Size() problem.SizeProfile {
	return problem.Size("num_vertices", p.g.NbVertices(), "num_edges", p.g.NbEdges())
}

func (p *MinimumVertexCover[V]) Evaluate(c config.Config) problem.Evaluation[V] {
	problem.MustValidate[V](p, c)
	covered := true
	for _, e := range p.g.edges {
		if c[e.U] == 0 && c[e.V] == 0 {
			covered = false
			break
		}
	}
	return problem.Evaluation[V]{Objective: selected(c, p.weights), Feasible: covered}
}

// KColoring asks whether vertices can be given one of K colors so that adjacent vertices have different colors.
// The flavor of a vertex is its color. The objective is always 0: only feasibility matters.
type KColoring struct {
	g *Graph
	k int
}

// NewKColoring returns a K-coloring problem on g.
func NewKColoring(g *Graph, k int) (*KColoring, error) {
	if k <= 0 {
		return nil, fmt.Errorf("graph: invalid number of colors %d", k)
	}
	return &KColoring{g: g, k: k}, nil
}

// Graph returns the underlying graph.
func (p *KColoring) Graph() *Graph { return p.g }

// K returns the number of colors.
func (p *KColoring) K() int { return p.k }

func (p *KColoring) Kind() problem.Kind           { return problem.KColoring }
func (p *KColoring) NumVariables() int            { return p.g.NbVertices() }
func (p *KColoring) NumFlavors() int              { return p.k }
func (p *KColoring) Direction() problem.Direction { return problem.Maximize }

func (p *KColoring) Size() problem.SizeProfile {
	return problem.Size("num_vertices", p.g.NbVertices(), "num_edges", p.g.NbEdges(), "k", p.k)
}

func (p *KColoring) Evaluate(c config.Config) problem.Evaluation[int] {
	return problem.Evaluation[int]{Feasible: p.IsSatisfied(c)}
}

// IsSatisfied returns true iff c is a proper coloring.
func (p *KColoring) IsSatisfied(c config.Config) bool {
	problem.MustValidate[int](p, c)
	for _, e := range p.g.edges {
		if c[e.U] == c[e.V] {
			return false
		}
	}
	return true
}

// MaxCut asks for a partition of the vertices maximizing the total weight of edges across the partition.
// The flavor of a vertex is its side.
type MaxCut[V problem.Numeric] struct {
	g       *Graph
	weights []V
}

// NewMaxCut returns a max-cut problem on g. weights are edge weights, in edge order;
// if nil, all edges have weight 1.
func NewMaxCut[V problem.Numeric](g *Graph, weights []V) (*MaxCut[V], error) {
	if err := checkWeights(weights, g.NbEdges(), "edges"); err != nil {
		return nil, err
	}
	return &MaxCut[V]{g: g, weights: vertexWeights(weights, g.NbEdges())}, nil
}

// Graph returns the underlying graph.
func (p *MaxCut[V]) Graph() *Graph { return p.g }

// Weight returns the weight of the i-th edge.
func (p *MaxCut[V]) Weight(i int) V { return p.weights[i] }

func (p *MaxCut[V]) Kind() problem.Kind           { return problem.MaxCut }
func (p *MaxCut[V]) NumVariables() int            { return p.g.NbVertices() }
func (p *MaxCut[V]) NumFlavors() int              { return 2 }
func (p *MaxCut[V]) Direction() problem.Direction { return problem.Maximize }

func (p *MaxCut[V]) Size() problem.SizeProfile {
	return problem.Size("num_vertices", p.g.NbVertices(), "num_edges", p.g.NbEdges())
}

// Evaluate returns the weight of the cut. All partitions are feasible.
func (p *MaxCut[V]) Evaluate(c config.Config) problem.Evaluation[V] {
	problem.MustValidate[V](p, c)
	var cut V
	for i, e := range p.g.edges {
		if c[e.U] != c[e.V] {
			cut += p.weights[i]
		}
	}
	return problem.Feasible(cut)
}
