package backend

import (
	"context"
	"slices"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/z"
	"go.uber.org/zap"

	"github.com/crillab/reductions/config"
	"github.com/crillab/reductions/sat"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
)

// Gini is a SAT backend based on the gini solver. Unlike gophersat, it can be cancelled while solving.
type Gini struct {
	logger *zap.Logger
	poll   time.Duration
}

// NewGini returns a gini backend.
func NewGini(opts ...Option) *Gini {
	return &Gini{logger: newOptions(opts).logger, poll: 50 * time.Millisecond}
}

func addClause(g *gini.Gini, clause []int, extra ...z.Lit) {
	for _, lit := range clause {
		g.Add(z.Dimacs2Lit(lit))
	}
	for _, m := range extra {
		g.Add(m)
	}
	g.Add(z.LitNull)
}

// waitForSolution polls gs until it is done or ctx is cancelled.
func (b *Gini) waitForSolution(ctx context.Context, gs inter.Solve) int {
	t := time.NewTicker(b.poll)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return gs.Stop()
		case <-t.C:
			if result, ok := gs.Test(); ok {
				return result
			}
		}
	}
}

// SolveSAT returns a model of s, if any.
// It returns ctx's error if ctx is done before the solver answers.
func (b *Gini) SolveSAT(ctx context.Context, s *sat.Satisfiability) (config.Config, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	g := gini.New()
	for _, c := range s.Clauses() {
		if len(c) == 0 {
			return nil, false, nil
		}
		addClause(g, c)
	}
	res := b.waitForSolution(ctx, g.GoSolve())
	b.logger.Debug("solved CNF formula with gini",
		zap.Int("vars", s.NbVars()),
		zap.Int("clauses", s.NbClauses()),
		zap.Int("result", res))
	switch res {
	case satisfiable:
		model := make(config.Config, s.NbVars())
		maxVar := int(g.MaxVar())
		for v := 1; v <= s.NbVars() && v <= maxVar; v++ {
			if g.Value(z.Var(v).Pos()) {
				model[v-1] = 1
			}
		}
		return model, true, nil
	case unsatisfiable:
		return nil, false, nil
	}
	return nil, false, interrupted(ctx)
}

// selectorSolver holds a formula whose clause i is only active when selectors[i] is assumed.
type selectorSolver struct {
	g         *gini.Gini
	selectors []z.Lit
	clauseOf  map[z.Lit]int
}

func newSelectorSolver(s *sat.Satisfiability) *selectorSolver {
	res := selectorSolver{
		g:         gini.New(),
		selectors: make([]z.Lit, s.NbClauses()),
		clauseOf:  make(map[z.Lit]int, s.NbClauses()),
	}
	for i, c := range s.Clauses() {
		res.selectors[i] = z.Var(s.NbVars() + i + 1).Pos()
		res.clauseOf[res.selectors[i]] = i
		addClause(res.g, c, res.selectors[i].Not())
	}
	return &res
}

// solve solves the formula restricted to the given clauses.
// If it is unsatisfiable, the failed clauses are returned, sorted.
func (ss *selectorSolver) solve(ctx context.Context, b *Gini, clauses []int) (int, []int) {
	for _, i := range clauses {
		ss.g.Assume(ss.selectors[i])
	}
	res := b.waitForSolution(ctx, ss.g.GoSolve())
	if res != unsatisfiable {
		return res, nil
	}
	var failed []int
	for _, m := range ss.g.Why(nil) {
		if i, ok := ss.clauseOf[m]; ok {
			failed = append(failed, i)
		}
	}
	slices.Sort(failed)
	return res, failed
}

func allClauses(s *sat.Satisfiability) []int {
	res := make([]int, s.NbClauses())
	for i := range res {
		res[i] = i
	}
	return res
}

func interrupted(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return context.Canceled
}

// Core returns the indices of a subset of the clauses of s that is unsatisfiable by itself.
// The subset is not guaranteed to be minimal. It returns ErrSatisfiable if s has a model.
func (b *Gini) Core(ctx context.Context, s *sat.Satisfiability) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch res, core := newSelectorSolver(s).solve(ctx, b, allClauses(s)); res {
	case satisfiable:
		return nil, ErrSatisfiable
	case unsatisfiable:
		b.logger.Debug("extracted unsatisfiable core", zap.Int("clauses", s.NbClauses()), zap.Int("core", len(core)))
		return core, nil
	}
	return nil, interrupted(ctx)
}

// MUS returns the indices of a minimal unsatisfiable subset of the clauses of s:
// removing any clause from it makes it satisfiable.
// Clauses of a first core are tried one by one, and dropped when the rest stays unsatisfiable.
func (b *Gini) MUS(ctx context.Context, s *sat.Satisfiability) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ss := newSelectorSolver(s)
	res, mus := ss.solve(ctx, b, allClauses(s))
	switch res {
	case satisfiable:
		return nil, ErrSatisfiable
	case 0:
		return nil, interrupted(ctx)
	}
	// Clauses of kept are known to be needed; those of rest are still to be tested.
	var kept []int
	rest := mus
	for len(rest) > 0 {
		c := rest[0]
		rest = rest[1:]
		res, core := ss.solve(ctx, b, append(slices.Clone(kept), rest...))
		switch res {
		case unsatisfiable:
			// c is not needed, nor are the clauses out of the new core.
			rest = slices.DeleteFunc(rest, func(i int) bool {
				_, found := slices.BinarySearch(core, i)
				return !found
			})
		case satisfiable:
			kept = append(kept, c)
		default:
			return nil, interrupted(ctx)
		}
	}
	slices.Sort(kept)
	mus = kept
	b.logger.Debug("extracted minimal unsatisfiable subset", zap.Int("clauses", s.NbClauses()), zap.Int("mus", len(mus)))
	return mus, nil
}
