package backend

import (
	"context"
	"fmt"

	"github.com/crillab/gophersat/solver"
	"go.uber.org/zap"

	"github.com/crillab/reductions/config"
	"github.com/crillab/reductions/sat"
)

// SolveMaxSAT returns a configuration of s minimizing the total weight of falsified clauses, along with that weight.
// Each clause is relaxed by a fresh blocking literal whose cost is the weight of the clause.
// Clauses with a zero weight are ignored. Negative weights are not supported.
func (g *Gophersat) SolveMaxSAT(ctx context.Context, s *sat.Satisfiability) (config.Config, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	var (
		clauses    [][]int
		blockLits  []solver.Lit
		weights    []int
		nextBlock  = s.NbVars() + 1
		maxWeight  int
		nbIgnored  int
		allClauses = s.Clauses()
	)
	for i, c := range allClauses {
		w := s.Weight(i)
		switch {
		case w < 0:
			return nil, 0, fmt.Errorf("backend: negative weight %d on clause %d", w, i)
		case w == 0:
			nbIgnored++
			continue
		}
		clauses = append(clauses, append(c, nextBlock))
		blockLits = append(blockLits, solver.IntToVar(int32(nextBlock)).SignedLit(false))
		weights = append(weights, w)
		maxWeight += w
		nextBlock++
	}
	if len(clauses) == 0 {
		return make(config.Config, s.NbVars()), 0, nil
	}
	prob := solver.ParseSlice(clauses)
	prob.SetCostFunc(blockLits, weights)
	slv := solver.New(prob)
	cost := slv.Minimize()
	g.logger.Debug("solved MaxSAT formula",
		zap.Int("vars", s.NbVars()),
		zap.Int("soft_clauses", len(clauses)),
		zap.Int("ignored_clauses", nbIgnored),
		zap.Int("max_weight", maxWeight),
		zap.Int("cost", cost))
	if cost == -1 {
		// Every clause can be relaxed, so this never happens on a well-formed problem.
		return nil, 0, fmt.Errorf("backend: relaxed MaxSAT formula is unsatisfiable")
	}
	res := modelConfig(slv.Model(), s.NbVars())
	// The solver may leave a blocking literal true on a satisfied clause; the real cost only counts falsified ones.
	falsified := 0
	for i, c := range allClauses {
		if !c.Satisfied(res) {
			falsified += s.Weight(i)
		}
	}
	return res, falsified, nil
}
