package backend

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/crillab/gophersat/explain"
	"github.com/go-air/gini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/crillab/reductions/bruteforce"
	"github.com/crillab/reductions/config"
	"github.com/crillab/reductions/factoring"
	"github.com/crillab/reductions/graph"
	"github.com/crillab/reductions/ilp"
	"github.com/crillab/reductions/ising"
	"github.com/crillab/reductions/problem"
	"github.com/crillab/reductions/rules"
	"github.com/crillab/reductions/sat"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testFormulas = map[string]*sat.Satisfiability{
	"simple":   sat.MustNew(3, sat.Clause{1, -2}, sat.Clause{2, 3}, sat.Clause{-1, -3}),
	"unsat":    sat.MustNew(2, sat.Clause{1, 2}, sat.Clause{-1, 2}, sat.Clause{1, -2}, sat.Clause{-1, -2}),
	"empty":    sat.MustNew(2, sat.Clause{1}, sat.Clause{}),
	"none":     sat.MustNew(3),
	"unused":   sat.MustNew(4, sat.Clause{-2}, sat.Clause{2, 4}),
	"units":    sat.MustNew(3, sat.Clause{1}, sat.Clause{-2}, sat.Clause{3}),
	"conflict": sat.MustNew(1, sat.Clause{1}, sat.Clause{-1}),
}

func satSolvers(t *testing.T) map[string]SATSolver {
	log := WithLogger(zaptest.NewLogger(t))
	return map[string]SATSolver{
		"bruteforce": NewBruteForce(log),
		"gophersat":  NewGophersat(log),
		"gini":       NewGini(log),
	}
}

func TestSolveSAT(t *testing.T) {
	for sname, solver := range satSolvers(t) {
		for fname, s := range testFormulas {
			t.Run(sname+"/"+fname, func(t *testing.T) {
				_, want := bruteforce.FindSatisfying(s)
				c, ok, err := solver.SolveSAT(context.Background(), s)
				require.NoError(t, err)
				require.Equal(t, want, ok)
				if ok {
					require.Len(t, c, s.NbVars())
					assert.True(t, s.IsSatisfied(c), "model %v", c)
				}
			})
		}
	}
}

func TestSolveSATCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for name, solver := range satSolvers(t) {
		_, _, err := solver.SolveSAT(ctx, testFormulas["simple"])
		assert.ErrorIs(t, err, context.Canceled, name)
	}
}

func TestGiniStop(t *testing.T) {
	b := NewGini()
	b.poll = time.Hour
	g := gini.New()
	addClause(g, []int{1, 2})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := b.waitForSolution(ctx, g.GoSolve())
	assert.Contains(t, []int{satisfiable, 0}, res)
}

func TestGiniCore(t *testing.T) {
	s := sat.MustNew(3,
		sat.Clause{2, 3},
		sat.Clause{1},
		sat.Clause{-3, 2},
		sat.Clause{-1, 3},
		sat.Clause{-3},
	)
	core, err := NewGini().Core(context.Background(), s)
	require.NoError(t, err)
	require.NotEmpty(t, core)
	sub := make([]sat.Clause, len(core))
	for i, idx := range core {
		sub[i] = s.Clause(idx)
	}
	unsat, err := sat.New(s.NbVars(), sub)
	require.NoError(t, err)
	_, ok := bruteforce.FindSatisfying(unsat)
	assert.False(t, ok, "core %v is satisfiable", core)
	assert.NotContains(t, core, 0)
	assert.NotContains(t, core, 2)

	_, err = NewGini().Core(context.Background(), testFormulas["simple"])
	assert.ErrorIs(t, err, ErrSatisfiable)
}

func ilpSolvers(t *testing.T) map[string]ILPSolver {
	log := WithLogger(zaptest.NewLogger(t))
	return map[string]ILPSolver{
		"bruteforce": NewBruteForce(log),
		"gophersat":  NewGophersat(log),
	}
}

func petersenMIS(t *testing.T) *ilp.ILP {
	var edges []graph.Edge
	for i := 0; i < 5; i++ {
		edges = append(edges,
			graph.Edge{U: i, V: (i + 1) % 5},
			graph.Edge{U: i, V: i + 5},
			graph.Edge{U: 5 + i, V: 5 + (i+2)%5},
		)
	}
	p, err := graph.NewMaximumIndependentSet(graph.MustNew(10, edges...), []int{3, 1, 2, 1, 1, 2, 1, 1, 2, 1})
	require.NoError(t, err)
	return rules.ReduceMISToILP(p).Target()
}

func testILPs(t *testing.T) map[string]*ilp.ILP {
	mustILP := func(p *ilp.ILP, err error) *ilp.ILP {
		require.NoError(t, err)
		return p
	}
	return map[string]*ilp.ILP{
		"knapsack": mustILP(ilp.NewBinary(3,
			[]ilp.Constraint{ilp.LeC(4, ilp.Term{Var: 0, Coef: 2}, ilp.Term{Var: 1, Coef: 3}, ilp.Term{Var: 2, Coef: 1})},
			[]ilp.Term{{Var: 0, Coef: 3}, {Var: 1, Coef: 4}, {Var: 2, Coef: 2}},
			problem.Maximize)),
		"ranges": mustILP(ilp.New(
			[]ilp.Bounds{ilp.Range(-3, 5), ilp.Range(-1, 1), ilp.Range(2, 7)},
			[]ilp.Constraint{
				ilp.EqC(4, ilp.Term{Var: 0, Coef: 1}, ilp.Term{Var: 2, Coef: -1}, ilp.Term{Var: 1, Coef: 3}),
				ilp.GeC(-2, ilp.Term{Var: 0, Coef: -1}, ilp.Term{Var: 1, Coef: 2}),
			},
			[]ilp.Term{{Var: 0, Coef: 2}, {Var: 1, Coef: -1}, {Var: 2, Coef: 1}, {Var: 0, Coef: -1}},
			problem.Minimize)),
		"infeasible": mustILP(ilp.NewBinary(2,
			[]ilp.Constraint{ilp.GeC(3, ilp.Term{Var: 0, Coef: 1}, ilp.Term{Var: 1, Coef: 1})},
			[]ilp.Term{{Var: 0, Coef: 1}},
			problem.Minimize)),
		"fixed": mustILP(ilp.New(
			[]ilp.Bounds{ilp.Range(2, 2), ilp.Range(-1, -1)},
			[]ilp.Constraint{ilp.LeC(1, ilp.Term{Var: 0, Coef: 1}, ilp.Term{Var: 1, Coef: 1})},
			[]ilp.Term{{Var: 0, Coef: 1}},
			problem.Maximize)),
		"feasibility": mustILP(ilp.New(
			[]ilp.Bounds{ilp.Range(0, 6), ilp.Range(0, 6)},
			[]ilp.Constraint{ilp.EqC(12, ilp.Term{Var: 0, Coef: 2}, ilp.Term{Var: 1, Coef: 3}), ilp.GeC(1, ilp.Term{Var: 1, Coef: 1})},
			nil,
			problem.Minimize)),
		"mis": petersenMIS(t),
	}
}

func TestSolveILP(t *testing.T) {
	for sname, solver := range ilpSolvers(t) {
		for pname, p := range testILPs(t) {
			t.Run(sname+"/"+pname, func(t *testing.T) {
				_, want, feasible := bruteforce.New[float64]().FindBestWithEvaluation(p)
				c, ok, err := solver.SolveILP(context.Background(), p)
				require.NoError(t, err)
				require.Equal(t, feasible, ok)
				if !ok {
					return
				}
				got := p.Evaluate(c)
				assert.True(t, got.Feasible, "solution %v", c)
				assert.Equal(t, want.Objective, got.Objective)
			})
		}
	}
}

func TestSolveILPNonIntegral(t *testing.T) {
	p, err := ilp.NewBinary(2,
		[]ilp.Constraint{ilp.LeC(1.5, ilp.Term{Var: 0, Coef: 1}, ilp.Term{Var: 1, Coef: 1})},
		nil, problem.Minimize)
	require.NoError(t, err)
	_, _, err = NewGophersat().SolveILP(context.Background(), p)
	assert.ErrorIs(t, err, ErrNonIntegral)

	p, err = ilp.NewBinary(1, nil, []ilp.Term{{Var: 0, Coef: 0.5}}, problem.Minimize)
	require.NoError(t, err)
	_, _, err = NewGophersat().SolveILP(context.Background(), p)
	assert.ErrorIs(t, err, ErrNonIntegral)
}

func TestSolveFactoring(t *testing.T) {
	f, err := factoring.New(3, 3, 35)
	require.NoError(t, err)
	r := rules.ReduceFactoringToILP(f)
	c, ok, err := NewGophersat().SolveILP(context.Background(), r.Target())
	require.NoError(t, err)
	require.True(t, ok)
	a, b := f.Factors(r.ExtractSolution(c))
	assert.Equal(t, uint64(35), a*b)
	assert.ElementsMatch(t, []uint64{5, 7}, []uint64{a, b})
}

func TestSolveQUBO(t *testing.T) {
	q, err := ising.NewQUBO([][]int{
		{-1, 2, 0, -3},
		{0, 1, -2, 0},
		{0, 0, -2, 4},
		{0, 0, 0, 1},
	})
	require.NoError(t, err)
	_, want, ok := bruteforce.New[int]().FindBestWithEvaluation(q)
	require.True(t, ok)
	for name, solver := range ilpSolvers(t) {
		c, ok, err := SolveQUBO(context.Background(), solver, q)
		require.NoError(t, err, name)
		require.True(t, ok, name)
		assert.Equal(t, want.Objective, q.Value(c), name)
	}
}

// minFalsified returns the minimum total weight of clauses of s falsified by a configuration.
func minFalsified(s *sat.Satisfiability) int {
	best := -1
	for c := range config.NewIterator(s.NbVars(), 2).All() {
		cost := 0
		for i := 0; i < s.NbClauses(); i++ {
			if !s.Clause(i).Satisfied(c) {
				cost += s.Weight(i)
			}
		}
		if best == -1 || cost < best {
			best = cost
		}
	}
	return best
}

func TestSolveMaxSAT(t *testing.T) {
	weighted, err := sat.NewWeighted(3,
		[]sat.Clause{{1, 2}, {-1}, {-2}, {-1, 3}, {-3, 2}, {3}, {}},
		[]int{5, 2, 3, 1, 4, 2, 7})
	require.NoError(t, err)
	zero, err := sat.NewWeighted(2, []sat.Clause{{1}, {-1}, {2}}, []int{0, 3, 1})
	require.NoError(t, err)
	for name, s := range map[string]*sat.Satisfiability{
		"weighted": weighted,
		"zero":     zero,
		"unsat":    testFormulas["unsat"],
		"simple":   testFormulas["simple"],
		"none":     testFormulas["none"],
	} {
		t.Run(name, func(t *testing.T) {
			c, cost, err := NewGophersat().SolveMaxSAT(context.Background(), s)
			require.NoError(t, err)
			require.Len(t, c, s.NbVars())
			assert.Equal(t, minFalsified(s), cost)
		})
	}
}

func TestSolveMaxSATNegativeWeight(t *testing.T) {
	s, err := sat.NewWeighted(1, []sat.Clause{{1}}, []int{-1})
	require.NoError(t, err)
	_, _, err = NewGophersat().SolveMaxSAT(context.Background(), s)
	assert.Error(t, err)
}

func TestGiniMUS(t *testing.T) {
	// Clauses 1, 3 and 4 form the only minimal unsatisfiable subset; clause 5 duplicates clause 4.
	s := sat.MustNew(3,
		sat.Clause{2, 3},
		sat.Clause{1},
		sat.Clause{-3, 2},
		sat.Clause{-1, 3},
		sat.Clause{-3},
		sat.Clause{-3, -3},
	)
	mus, err := NewGini().MUS(context.Background(), s)
	require.NoError(t, err)
	assert.Contains(t, [][]int{{1, 3, 4}, {1, 3, 5}}, mus)

	mus, err = NewGini().MUS(context.Background(), sat.MustNew(1, sat.Clause{1}, sat.Clause{}, sat.Clause{-1}))
	require.NoError(t, err)
	assert.Equal(t, []int{1}, mus)

	_, err = NewGini().MUS(context.Background(), testFormulas["simple"])
	assert.ErrorIs(t, err, ErrSatisfiable)
}

func TestGiniMUSMatchesExplain(t *testing.T) {
	s := sat.MustNew(6,
		sat.Clause{1, 2, -3},
		sat.Clause{-1, -2, 3},
		sat.Clause{2, 5},
		sat.Clause{6},
		sat.Clause{2, -5},
		sat.Clause{3, 4, 5},
		sat.Clause{-1, -2},
		sat.Clause{1, 3},
		sat.Clause{1, -3},
	)
	var buf bytes.Buffer
	require.NoError(t, sat.WriteDIMACS(&buf, s))
	pb, err := explain.ParseCNF(&buf)
	require.NoError(t, err)
	want, err := pb.MUS()
	require.NoError(t, err)

	mus, err := NewGini().MUS(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 6, 7, 8}, mus)
	got := make([][]int, len(mus))
	for i, idx := range mus {
		got[i] = []int(s.Clause(idx))
	}
	assert.ElementsMatch(t, want.Clauses, got)
}
