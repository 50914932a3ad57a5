package rules

import (
	"fmt"
	"math/bits"

	"github.com/crillab/reductions/config"
	"github.com/crillab/reductions/factoring"
	"github.com/crillab/reductions/gadget"
	"github.com/crillab/reductions/ilp"
	"github.com/crillab/reductions/problem"
	"github.com/crillab/reductions/reduction"
)

// FactoringToILP reduces factoring to a feasibility ILP computing the binary product of both factors.
//
// Variables are, in order: the m bits p_i of the first factor, the n bits q_j of the second one,
// the m*n partial products z_ij = p_i AND q_j, and one carry c_k per output bit.
// For each output bit k, sum_{i+j=k} z_ij + c_{k-1} - 2 c_k = N_k, and the last carry is 0.
type FactoringToILP struct {
	src *factoring.Factoring
	tgt *ilp.ILP
}

func inequalityConstraint(in gadget.Inequality) ilp.Constraint {
	terms := make([]ilp.Term, len(in.Vars))
	for i, v := range in.Vars {
		terms[i] = ilp.Term{Var: v, Coef: float64(in.Coeffs[i])}
	}
	return ilp.GeC(float64(in.AtLeast), terms...)
}

// ReduceFactoringToILP returns the reduction of p to an ILP.
func ReduceFactoringToILP(p *factoring.Factoring) *FactoringToILP {
	m, n := p.M(), p.N()
	nbBits := max(m+n, bits.Len64(p.Target()))
	z := func(i, j int) int { return m + n + i*n + j }
	carry := func(k int) int { return m + n + m*n + k }

	bounds := make([]ilp.Bounds, m+n+m*n+nbBits)
	for i := 0; i < m+n+m*n; i++ {
		bounds[i] = ilp.Binary()
	}
	for k := 0; k < nbBits; k++ {
		bounds[carry(k)] = ilp.Range(0, int64(min(m, n)))
	}

	var constraints []ilp.Constraint
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			for _, in := range gadget.Inequalities(gadget.And(2), []int{i, m + j, z(i, j)}) {
				constraints = append(constraints, inequalityConstraint(in))
			}
		}
	}
	for k := 0; k < nbBits; k++ {
		var terms []ilp.Term
		for i := 0; i < m; i++ {
			if j := k - i; j >= 0 && j < n {
				terms = append(terms, ilp.Term{Var: z(i, j), Coef: 1})
			}
		}
		if k > 0 {
			terms = append(terms, ilp.Term{Var: carry(k - 1), Coef: 1})
		}
		terms = append(terms, ilp.Term{Var: carry(k), Coef: -2})
		constraints = append(constraints, ilp.EqC(float64((p.Target()>>uint(k))&1), terms...))
	}
	constraints = append(constraints, ilp.EqC(0, ilp.Term{Var: carry(nbBits - 1), Coef: 1}))

	tgt, err := ilp.New(bounds, constraints, nil, problem.Minimize)
	if err != nil {
		panic(fmt.Errorf("invalid factoring ILP: %w", err))
	}
	return &FactoringToILP{src: p, tgt: tgt}
}

func (r *FactoringToILP) Target() *ilp.ILP { return r.tgt }

// ExtractSolution reads the bits of both factors.
func (r *FactoringToILP) ExtractSolution(c config.Config) config.Config {
	return reduction.Truncate(c, r.src.M()+r.src.N())
}

func (r *FactoringToILP) SourceSize() problem.SizeProfile { return r.src.Size() }
func (r *FactoringToILP) TargetSize() problem.SizeProfile { return r.tgt.Size() }
