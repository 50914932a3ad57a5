package rules

import (
	"fmt"

	"github.com/crillab/reductions/config"
	"github.com/crillab/reductions/graph"
	"github.com/crillab/reductions/problem"
	"github.com/crillab/reductions/sat"
)

// Vertices of the palette triangle.
const (
	trueVertex = iota
	falseVertex
	auxVertex
)

// coloringBuilder incrementally builds the 3-coloring graph of a CNF formula.
// Edges added twice are only kept once.
type coloringBuilder struct {
	nbVars int
	nbVert int
	edges  []graph.Edge
	seen   map[graph.Edge]bool
}

func newColoringBuilder(nbVars int) *coloringBuilder {
	b := &coloringBuilder{nbVars: nbVars, nbVert: 2*nbVars + 3, seen: map[graph.Edge]bool{}}
	b.link(trueVertex, falseVertex)
	b.link(trueVertex, auxVertex)
	b.link(falseVertex, auxVertex)
	for i := 0; i < nbVars; i++ {
		pos, neg := b.literal(i+1), b.literal(-(i + 1))
		b.link(pos, auxVertex)
		b.link(neg, auxVertex)
		b.link(pos, neg)
	}
	return b
}

// literal returns the vertex associated with the given DIMACS literal.
func (b *coloringBuilder) literal(lit int) int {
	if lit > 0 {
		return 2 + lit
	}
	return 2 + b.nbVars - lit
}

func (b *coloringBuilder) link(u, v int) {
	if u > v {
		u, v = v, u
	}
	e := graph.Edge{U: u, V: v}
	if !b.seen[e] {
		b.seen[e] = true
		b.edges = append(b.edges, e)
	}
}

func (b *coloringBuilder) fresh(n int) []int {
	res := make([]int, n)
	for i := range res {
		res[i] = b.nbVert + i
	}
	b.nbVert += n
	return res
}

// or adds a gadget whose output vertex can only get the TRUE color if one of its inputs has it.
func (b *coloringBuilder) or(in1, in2 int) int {
	vs := b.fresh(5)
	anc1, anc2, ent1, ent2, out := vs[0], vs[1], vs[2], vs[3], vs[4]
	b.link(out, auxVertex)
	b.link(anc1, trueVertex)
	b.link(anc1, anc2)
	b.link(anc2, in1)
	b.link(anc2, in2)
	b.link(ent1, ent2)
	b.link(out, anc1)
	b.link(in1, ent2)
	b.link(in2, ent1)
	b.link(ent1, out)
	b.link(ent2, out)
	return out
}

// setTrue forces v to get the TRUE color.
func (b *coloringBuilder) setTrue(v int) {
	b.link(v, auxVertex)
	b.link(v, falseVertex)
}

func (b *coloringBuilder) addClause(clause sat.Clause) {
	if len(clause) == 0 {
		// A vertex linked to the whole palette cannot be colored.
		v := b.fresh(1)[0]
		b.link(v, trueVertex)
		b.link(v, falseVertex)
		b.link(v, auxVertex)
		return
	}
	out := b.literal(clause[0])
	for _, lit := range clause[1:] {
		out = b.or(out, b.literal(lit))
	}
	b.setTrue(out)
}

// SATToColoring reduces a CNF formula to the 3-coloring of a graph.
// Vertices 0, 1 and 2 form a triangle whose colors stand for TRUE, FALSE and an auxiliary color.
// Vertices 3..n+2 stand for positive literals, and n+3..2n+2 for negative ones.
type SATToColoring struct {
	src *sat.Satisfiability
	tgt *graph.KColoring
}

// ReduceSATToColoring returns the reduction of s to a 3-coloring problem.
func ReduceSATToColoring(s *sat.Satisfiability) *SATToColoring {
	b := newColoringBuilder(s.NbVars())
	for i := 0; i < s.NbClauses(); i++ {
		b.addClause(s.Clause(i))
	}
	g, err := graph.New(b.nbVert, b.edges)
	if err != nil {
		panic(fmt.Errorf("invalid coloring graph: %w", err))
	}
	tgt, err := graph.NewKColoring(g, 3)
	if err != nil {
		panic(err)
	}
	return &SATToColoring{src: s, tgt: tgt}
}

func (r *SATToColoring) Target() *graph.KColoring { return r.tgt }

// ExtractSolution sets a variable to true iff its positive literal vertex has the color of the TRUE vertex.
func (r *SATToColoring) ExtractSolution(c config.Config) config.Config {
	n := r.src.NbVars()
	res := make(config.Config, n)
	if len(c) < 2*n+3 {
		return res
	}
	for i := range res {
		if c[3+i] == c[trueVertex] {
			res[i] = 1
		}
	}
	return res
}

func (r *SATToColoring) SourceSize() problem.SizeProfile { return r.src.Size() }
func (r *SATToColoring) TargetSize() problem.SizeProfile { return r.tgt.Size() }
