package rules

import (
	"fmt"

	"github.com/crillab/reductions/config"
	"github.com/crillab/reductions/gadget"
	"github.com/crillab/reductions/graph"
	"github.com/crillab/reductions/ilp"
	"github.com/crillab/reductions/ising"
	"github.com/crillab/reductions/problem"
	"github.com/crillab/reductions/reduction"
)

// MISToILP encodes an independent set problem as a 0/1 program: x_u + x_v <= 1 for every edge,
// maximizing the total weight of selected vertices.
type MISToILP[V problem.Numeric] struct {
	src *graph.MaximumIndependentSet[V]
	tgt *ilp.ILP
}

func ReduceMISToILP[V problem.Numeric](p *graph.MaximumIndependentSet[V]) *MISToILP[V] {
	g := p.Graph()
	constraints := make([]ilp.Constraint, g.NbEdges())
	for i, e := range g.Edges() {
		constraints[i] = ilp.LeC(1, ilp.Term{Var: e.U, Coef: 1}, ilp.Term{Var: e.V, Coef: 1})
	}
	objective := make([]ilp.Term, g.NbVertices())
	for v := range objective {
		objective[v] = ilp.Term{Var: v, Coef: float64(p.Weight(v))}
	}
	tgt, err := ilp.NewBinary(g.NbVertices(), constraints, objective, problem.Maximize)
	if err != nil {
		panic(fmt.Errorf("invalid independent set ILP: %w", err))
	}
	return &MISToILP[V]{src: p, tgt: tgt}
}

func (r *MISToILP[V]) Target() *ilp.ILP                              { return r.tgt }
func (r *MISToILP[V]) ExtractSolution(c config.Config) config.Config { return c.Clone() }
func (r *MISToILP[V]) SourceSize() problem.SizeProfile               { return r.src.Size() }
func (r *MISToILP[V]) TargetSize() problem.SizeProfile               { return r.tgt.Size() }

// QUBOToILP linearizes a QUBO: every non-zero product x_i x_j (i < j) is replaced by a fresh
// 0/1 variable y_ij constrained by the linear encoding of y_ij = x_i AND x_j.
// The n variables of the QUBO come first, then the products.
type QUBOToILP[V problem.Numeric] struct {
	src *ising.QUBO[V]
	tgt *ilp.ILP
}

func ReduceQUBOToILP[V problem.Numeric](q *ising.QUBO[V]) *QUBOToILP[V] {
	n := q.NbVars()
	var (
		objective   []ilp.Term
		constraints []ilp.Constraint
	)
	alloc := gadget.NewAllocator(n)
	for i := 0; i < n; i++ {
		if qii := q.At(i, i); qii != 0 {
			objective = append(objective, ilp.Term{Var: i, Coef: float64(qii)})
		}
		for j := i + 1; j < n; j++ {
			qij := q.At(i, j)
			if qij == 0 {
				continue
			}
			var y int
			y, alloc = alloc.Fresh()
			for _, in := range gadget.Inequalities(gadget.And(2), []int{i, j, y}) {
				constraints = append(constraints, inequalityConstraint(in))
			}
			objective = append(objective, ilp.Term{Var: y, Coef: float64(qij)})
		}
	}
	tgt, err := ilp.NewBinary(alloc.Next(), constraints, objective, problem.Minimize)
	if err != nil {
		panic(fmt.Errorf("invalid QUBO ILP: %w", err))
	}
	return &QUBOToILP[V]{src: q, tgt: tgt}
}

func (r *QUBOToILP[V]) Target() *ilp.ILP { return r.tgt }

// ExtractSolution drops the product variables.
func (r *QUBOToILP[V]) ExtractSolution(c config.Config) config.Config {
	return reduction.Truncate(c, r.src.NbVars())
}

func (r *QUBOToILP[V]) SourceSize() problem.SizeProfile { return r.src.Size() }
func (r *QUBOToILP[V]) TargetSize() problem.SizeProfile { return r.tgt.Size() }
