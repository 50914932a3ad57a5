package backend

import (
	"context"
	"fmt"
	"math"
	"math/bits"

	"github.com/crillab/gophersat/solver"
	"go.uber.org/zap"

	"github.com/crillab/reductions/config"
	"github.com/crillab/reductions/ilp"
	"github.com/crillab/reductions/problem"
	"github.com/crillab/reductions/sat"
)

// Gophersat is a backend based on the gophersat CDCL and pseudo-boolean solver.
// Gophersat cannot be interrupted: the context is only checked before solving.
type Gophersat struct {
	logger *zap.Logger
}

// NewGophersat returns a gophersat backend.
func NewGophersat(opts ...Option) *Gophersat {
	return &Gophersat{logger: newOptions(opts).logger}
}

// SolveSAT returns a model of s, if any.
func (g *Gophersat) SolveSAT(ctx context.Context, s *sat.Satisfiability) (config.Config, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if s.NbClauses() == 0 {
		return make(config.Config, s.NbVars()), true, nil
	}
	clauses := make([][]int, s.NbClauses())
	for i, c := range s.Clauses() {
		if len(c) == 0 {
			return nil, false, nil
		}
		clauses[i] = c
	}
	slv := solver.New(solver.ParseSlice(clauses))
	status := slv.Solve()
	g.logger.Debug("solved CNF formula",
		zap.Int("vars", s.NbVars()),
		zap.Int("clauses", s.NbClauses()),
		zap.Stringer("status", status))
	if status != solver.Sat {
		return nil, false, nil
	}
	return modelConfig(slv.Model(), s.NbVars()), true, nil
}

// modelConfig returns the configuration of the first n variables of model.
// Variables the solver did not see are false.
func modelConfig(model []bool, n int) config.Config {
	res := make(config.Config, n)
	for i := range res {
		if i < len(model) && model[i] {
			res[i] = 1
		}
	}
	return res
}

// pbEncoding is the pseudo-boolean encoding of an ILP.
// Each integer variable x in [lo, hi] is written lo + sum_b 2^b y_b over fresh boolean variables y_b.
type pbEncoding struct {
	p       *ilp.ILP
	bits    [][]int // PB variables (1-based) of each ILP variable, least significant first
	nbVars  int
	constrs []solver.PBConstr
}

func integral(f float64) (int, error) {
	if f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, fmt.Errorf("%w: %g", ErrNonIntegral, f)
	}
	return int(f), nil
}

func encodeILP(p *ilp.ILP) (*pbEncoding, error) {
	enc := pbEncoding{p: p, bits: make([][]int, p.NumVariables())}
	for i := range enc.bits {
		b := p.Bounds(i)
		width := uint64(b.Upper - b.Lower)
		nb := bits.Len64(width)
		enc.bits[i] = make([]int, nb)
		for k := range enc.bits[i] {
			enc.nbVars++
			enc.bits[i][k] = enc.nbVars
		}
		if nb > 0 && width != 1<<uint(nb)-1 {
			lits, weights := enc.bitTerms(i, 1)
			enc.constrs = append(enc.constrs, solver.LtEq(lits, weights, int(width)))
		}
	}
	for i, c := range p.Constraints() {
		lits, weights, offset, err := enc.linear(c.Terms)
		if err != nil {
			return nil, fmt.Errorf("in constraint %d: %w", i, err)
		}
		rhs, err := integral(c.RHS)
		if err != nil {
			return nil, fmt.Errorf("in constraint %d: %w", i, err)
		}
		rhs -= offset
		switch c.Cmp {
		case ilp.Le:
			enc.constrs = append(enc.constrs, solver.LtEq(lits, weights, rhs))
		case ilp.Ge:
			enc.constrs = append(enc.constrs, solver.GtEq(lits, weights, rhs))
		case ilp.Eq:
			enc.constrs = append(enc.constrs, solver.Eq(lits, weights, rhs)...)
		default:
			return nil, fmt.Errorf("in constraint %d: invalid comparison %v", i, c.Cmp)
		}
	}
	all := make([]int, enc.nbVars)
	for i := range all {
		all[i] = i + 1
	}
	// A trivially true constraint on all variables, so that unconstrained ones are known to the solver.
	enc.constrs = append(enc.constrs, solver.AtLeast(all, 0))
	return &enc, nil
}

// bitTerms returns the boolean variables of ILP variable i, weighted by coef times their place value.
func (enc *pbEncoding) bitTerms(i, coef int) (lits, weights []int) {
	for k, v := range enc.bits[i] {
		lits = append(lits, v)
		weights = append(weights, coef<<uint(k))
	}
	return lits, weights
}

// linear returns the pseudo-boolean form of a linear expression, as weighted boolean variables plus a constant.
// Terms on the same boolean variable are merged, and zero weights dropped.
func (enc *pbEncoding) linear(terms []ilp.Term) (lits, weights []int, offset int, err error) {
	sum := map[int]int{}
	var order []int
	for _, t := range terms {
		coef, err := integral(t.Coef)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("coefficient of x%d: %w", t.Var, err)
		}
		offset += coef * int(enc.p.Bounds(t.Var).Lower)
		ls, ws := enc.bitTerms(t.Var, coef)
		for k, l := range ls {
			if _, ok := sum[l]; !ok {
				order = append(order, l)
			}
			sum[l] += ws[k]
		}
	}
	for _, l := range order {
		if w := sum[l]; w != 0 {
			lits = append(lits, l)
			weights = append(weights, w)
		}
	}
	return lits, weights, offset, nil
}

// costFunc returns the cost function to minimize, as positive weights on literals.
// A negative weight w on x is rewritten as the weight -w on not(x), which only shifts the cost by a constant.
func (enc *pbEncoding) costFunc() ([]solver.Lit, []int, error) {
	vars, weights, _, err := enc.linear(enc.p.Objective())
	if err != nil {
		return nil, nil, fmt.Errorf("in objective: %w", err)
	}
	lits := make([]solver.Lit, len(vars))
	for i, v := range vars {
		w := weights[i]
		if enc.p.Direction() == problem.Maximize {
			w = -w
		}
		lits[i] = solver.IntToVar(int32(v)).SignedLit(w < 0)
		weights[i] = max(w, -w)
	}
	return lits, weights, nil
}

// values decodes the value of every ILP variable from a PB model.
func (enc *pbEncoding) values(model []bool) []int64 {
	res := make([]int64, len(enc.bits))
	for i, vs := range enc.bits {
		res[i] = enc.p.Bounds(i).Lower
		for k, v := range vs {
			if v-1 < len(model) && model[v-1] {
				res[i] += 1 << uint(k)
			}
		}
	}
	return res
}

// SolveILP returns an optimal solution of p, if any.
// All coefficients and right-hand sides must be integers.
func (g *Gophersat) SolveILP(ctx context.Context, p *ilp.ILP) (config.Config, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	enc, err := encodeILP(p)
	if err != nil {
		return nil, false, err
	}
	lits, weights, err := enc.costFunc()
	if err != nil {
		return nil, false, err
	}
	if enc.nbVars == 0 { // Every variable is fixed by its bounds.
		values := enc.values(nil)
		if !p.Feasible(values) {
			return nil, false, nil
		}
		c, _ := p.Config(values)
		return c, true, nil
	}
	pb := solver.ParsePBConstrs(enc.constrs)
	if len(lits) > 0 {
		pb.SetCostFunc(lits, weights)
	}
	slv := solver.New(pb)
	log := g.logger.With(zap.Int("ilp_vars", p.NumVariables()), zap.Int("pb_vars", enc.nbVars), zap.Int("pb_constraints", len(enc.constrs)))
	if len(lits) > 0 {
		cost := slv.Minimize()
		log.Debug("minimized pseudo-boolean problem", zap.Int("cost", cost))
		if cost == -1 {
			return nil, false, nil
		}
	} else {
		status := slv.Solve()
		log.Debug("solved pseudo-boolean problem", zap.Stringer("status", status))
		if status != solver.Sat {
			return nil, false, nil
		}
	}
	c, ok := p.Config(enc.values(slv.Model()))
	if !ok {
		return nil, false, fmt.Errorf("backend: gophersat returned an out of bounds solution")
	}
	return c, true, nil
}
