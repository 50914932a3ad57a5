package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crillab/reductions/bruteforce"
	"github.com/crillab/reductions/circuit"
	"github.com/crillab/reductions/factoring"
	"github.com/crillab/reductions/ilp"
	"github.com/crillab/reductions/problem"
	"github.com/crillab/reductions/reduction"
	"github.com/crillab/reductions/sat"
)

func TestRegistryEntries(t *testing.T) {
	r := NewRegistry()
	assert.Len(t, r.Entries(), len(entries))
	e, ok := r.Lookup(problem.Satisfiability, problem.KSatisfiability)
	require.True(t, ok)
	assert.Equal(t, "SATToKSAT", e.Name)
	_, ok = r.Lookup(problem.ILP, problem.QUBO)
	assert.False(t, ok)
}

func TestRegistryWrongSource(t *testing.T) {
	for _, e := range NewRegistry().Entries() {
		_, err := e.Reduce(42)
		assert.ErrorIs(t, err, reduction.ErrSourceType, e.Name)
	}
}

func TestRegistryPaths(t *testing.T) {
	r := NewRegistry()
	path, err := r.Path(problem.CircuitSAT, problem.MaxCut)
	require.NoError(t, err)
	require.Len(t, path, 2)
	assert.Equal(t, "CircuitToSpinGlass", path[0].Name)
	assert.Equal(t, "SpinGlassToMaxCut", path[1].Name)

	_, err = r.Path(problem.ILP, problem.Satisfiability)
	assert.ErrorIs(t, err, reduction.ErrNoPath)
}

func TestChainCircuitToILP(t *testing.T) {
	r := NewRegistry()
	var path []reduction.Entry
	for _, step := range [][2]problem.Kind{
		{problem.CircuitSAT, problem.SpinGlass},
		{problem.SpinGlass, problem.QUBO},
		{problem.QUBO, problem.ILP},
	} {
		e, ok := r.Lookup(step[0], step[1])
		require.True(t, ok)
		path = append(path, e)
	}
	src := circuit.MustNew(circuit.Assign(circuit.And(circuit.Var("x"), circuit.Var("y")), "c"), circuit.Assign(circuit.Const(true), "c"))
	chain, err := reduction.Apply(path, src)
	require.NoError(t, err)
	tgt, ok := chain.Target().(*ilp.ILP)
	require.True(t, ok)
	require.NoError(t, reduction.CheckRoundTrip[int, float64](src, tgt, chain.ExtractSolution))
}

func TestChainFactoring(t *testing.T) {
	r := NewRegistry()
	path, err := r.Path(problem.Factoring, problem.ILP)
	require.NoError(t, err)
	src, err := factoring.New(2, 2, 9)
	require.NoError(t, err)
	chain, err := reduction.Apply(path, src)
	require.NoError(t, err)
	best := bruteforce.New[float64]().FindBest(chain.Target().(*ilp.ILP))
	require.Len(t, best, 1)
	a, b := src.Factors(chain.ExtractSolution(best[0]))
	assert.Equal(t, [2]uint64{3, 3}, [2]uint64{a, b})
}

func TestChainSATToKSATAndBack(t *testing.T) {
	r := NewRegistry()
	there, _ := r.Lookup(problem.Satisfiability, problem.KSatisfiability)
	back, _ := r.Lookup(problem.KSatisfiability, problem.Satisfiability)
	src := sat.MustNew(3, sat.Clause{1, -2}, sat.Clause{2, 3, -1, 2}, sat.Clause{-3})
	chain, err := reduction.Apply([]reduction.Entry{there, back}, src)
	require.NoError(t, err)
	tgt := chain.Target().(*sat.Satisfiability)
	require.NoError(t, reduction.CheckRoundTrip[int, int](src, tgt, chain.ExtractSolution, reduction.RequireSameFeasibility()))
}
