package rules

import (
	"github.com/crillab/reductions/config"
	"github.com/crillab/reductions/graph"
	"github.com/crillab/reductions/problem"
)

// complement returns the configuration selecting exactly the vertices c does not select.
func complement(c config.Config) config.Config {
	res := make(config.Config, len(c))
	for i, x := range c {
		res[i] = 1 - x
	}
	return res
}

// MISToVC maps an independent set problem to the vertex cover problem on the same graph:
// the complement of an independent set is a vertex cover.
type MISToVC[V problem.Numeric] struct {
	src *graph.MaximumIndependentSet[V]
	tgt *graph.MinimumVertexCover[V]
}

func ReduceMISToVC[V problem.Numeric](p *graph.MaximumIndependentSet[V]) *MISToVC[V] {
	tgt, err := graph.NewMinimumVertexCover(p.Graph(), p.Weights())
	if err != nil {
		panic(err)
	}
	return &MISToVC[V]{src: p, tgt: tgt}
}

func (r *MISToVC[V]) Target() *graph.MinimumVertexCover[V]          { return r.tgt }
func (r *MISToVC[V]) ExtractSolution(c config.Config) config.Config { return complement(c) }
func (r *MISToVC[V]) SourceSize() problem.SizeProfile               { return r.src.Size() }
func (r *MISToVC[V]) TargetSize() problem.SizeProfile               { return r.tgt.Size() }

// VCToMIS maps a vertex cover problem to the independent set problem on the same graph.
type VCToMIS[V problem.Numeric] struct {
	src *graph.MinimumVertexCover[V]
	tgt *graph.MaximumIndependentSet[V]
}

func ReduceVCToMIS[V problem.Numeric](p *graph.MinimumVertexCover[V]) *VCToMIS[V] {
	tgt, err := graph.NewMaximumIndependentSet(p.Graph(), p.Weights())
	if err != nil {
		panic(err)
	}
	return &VCToMIS[V]{src: p, tgt: tgt}
}

func (r *VCToMIS[V]) Target() *graph.MaximumIndependentSet[V]       { return r.tgt }
func (r *VCToMIS[V]) ExtractSolution(c config.Config) config.Config { return complement(c) }
func (r *VCToMIS[V]) SourceSize() problem.SizeProfile               { return r.src.Size() }
func (r *VCToMIS[V]) TargetSize() problem.SizeProfile               { return r.tgt.Size() }
