package rules

import (
	"fmt"

	"github.com/crillab/reductions/config"
	"github.com/crillab/reductions/graph"
	"github.com/crillab/reductions/ising"
	"github.com/crillab/reductions/problem"
)

// MaxCutToSpinGlass maps a max-cut problem to an antiferromagnetic spin glass without fields:
// each edge of weight w becomes a coupling w, and the energy is sum(w) - 2 * cut.
type MaxCutToSpinGlass[V problem.Numeric] struct {
	src *graph.MaxCut[V]
	tgt *ising.SpinGlass[V]
}

// ReduceMaxCutToSpinGlass returns the reduction of p to a spin glass.
func ReduceMaxCutToSpinGlass[V problem.Numeric](p *graph.MaxCut[V]) *MaxCutToSpinGlass[V] {
	g := p.Graph()
	interactions := make([]ising.Interaction[V], g.NbEdges())
	for i, e := range g.Edges() {
		interactions[i] = ising.Interaction[V]{I: e.U, J: e.V, Coupling: p.Weight(i)}
	}
	tgt, err := ising.NewSpinGlass(interactions, make([]V, g.NbVertices()))
	if err != nil {
		panic(fmt.Errorf("invalid spin glass: %w", err))
	}
	return &MaxCutToSpinGlass[V]{src: p, tgt: tgt}
}

func (r *MaxCutToSpinGlass[V]) Target() *ising.SpinGlass[V] { return r.tgt }

func (r *MaxCutToSpinGlass[V]) ExtractSolution(c config.Config) config.Config { return c.Clone() }

func (r *MaxCutToSpinGlass[V]) SourceSize() problem.SizeProfile { return r.src.Size() }
func (r *MaxCutToSpinGlass[V]) TargetSize() problem.SizeProfile { return r.tgt.Size() }

// SpinGlassToMaxCut maps a spin glass to a max-cut problem.
// Couplings on the same pair of spins are merged into a single edge.
// If some field is not zero, an ancilla vertex is added and field h_i becomes an edge (i, ancilla)
// of weight h_i: the ancilla plays the role of a spin fixed to +1.
type SpinGlassToMaxCut[V problem.Numeric] struct {
	src     *ising.SpinGlass[V]
	tgt     *graph.MaxCut[V]
	ancilla int // -1 if there is none
}

// ReduceSpinGlassToMaxCut returns the reduction of sg to a max-cut problem.
func ReduceSpinGlassToMaxCut[V problem.Numeric](sg *ising.SpinGlass[V]) *SpinGlassToMaxCut[V] {
	n := sg.NbSpins()
	weights := map[graph.Edge]V{}
	var edges []graph.Edge
	add := func(u, v int, w V) {
		e := graph.Edge{U: min(u, v), V: max(u, v)}
		if _, ok := weights[e]; !ok {
			edges = append(edges, e)
		}
		weights[e] += w
	}
	for _, it := range sg.Interactions() {
		add(it.I, it.J, it.Coupling)
	}
	ancilla := -1
	for i, h := range sg.Fields() {
		if h == 0 {
			continue
		}
		if ancilla == -1 {
			ancilla = n
		}
		add(i, ancilla, h)
	}
	nbVertices := n
	if ancilla != -1 {
		nbVertices++
	}
	g, err := graph.New(nbVertices, edges)
	if err != nil {
		panic(fmt.Errorf("invalid max-cut graph: %w", err))
	}
	ws := make([]V, len(edges))
	for i, e := range g.Edges() {
		ws[i] = weights[e]
	}
	tgt, err := graph.NewMaxCut(g, ws)
	if err != nil {
		panic(err)
	}
	return &SpinGlassToMaxCut[V]{src: sg, tgt: tgt, ancilla: ancilla}
}

func (r *SpinGlassToMaxCut[V]) Target() *graph.MaxCut[V] { return r.tgt }

// ExtractSolution drops the ancilla. A cut is symmetric, so spins are flipped when the ancilla is -1.
func (r *SpinGlassToMaxCut[V]) ExtractSolution(c config.Config) config.Config {
	n := r.src.NbSpins()
	res := make(config.Config, n)
	copy(res, c)
	if r.ancilla != -1 && r.ancilla < len(c) && c[r.ancilla] == 0 {
		for i := range res {
			res[i] = 1 - res[i]
		}
	}
	return res
}

func (r *SpinGlassToMaxCut[V]) SourceSize() problem.SizeProfile { return r.src.Size() }
func (r *SpinGlassToMaxCut[V]) TargetSize() problem.SizeProfile { return r.tgt.Size() }
