package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crillab/reductions/bruteforce"
	"github.com/crillab/reductions/config"
	"github.com/crillab/reductions/reduction"
	"github.com/crillab/reductions/sat"
)

func TestSATToMIS(t *testing.T) {
	s := sat.MustNew(3, sat.Clause{1, 2}, sat.Clause{-1, 3}, sat.Clause{-2, -3})
	r := ReduceSATToMIS(s)
	g := r.Target().Graph()
	assert.Equal(t, 6, g.NbVertices())
	// 3 clause edges, 1 <-> -1, 2 <-> -2 and 3 <-> -3.
	assert.Equal(t, 6, g.NbEdges())
	assert.True(t, g.HasEdge(0, 2))
	require.NoError(t, reduction.CheckRoundTrip[int, int](s, r.Target(), r.ExtractSolution))
	_, best, ok := bruteforce.New[int]().FindBestWithEvaluation(r.Target())
	require.True(t, ok)
	assert.Equal(t, s.NbClauses(), best.Objective)
}

func TestSATToMISUnsat(t *testing.T) {
	s := sat.MustNew(1, sat.Clause{1}, sat.Clause{-1})
	r := ReduceSATToMIS(s)
	require.NoError(t, reduction.CheckRoundTrip[int, int](s, r.Target(), r.ExtractSolution))
	_, best, ok := bruteforce.New[int]().FindBestWithEvaluation(r.Target())
	require.True(t, ok)
	assert.Less(t, best.Objective, s.NbClauses())
}

func TestSATToMISTautology(t *testing.T) {
	s := sat.MustNew(2, sat.Clause{1, -1}, sat.Clause{-2}, sat.Clause{1, 1})
	r := ReduceSATToMIS(s)
	require.NoError(t, reduction.CheckRoundTrip[int, int](s, r.Target(), r.ExtractSolution))
}

func TestSATToColoringStructure(t *testing.T) {
	s := sat.MustNew(2, sat.Clause{1, 2}, sat.Clause{-1, 2})
	r := ReduceSATToColoring(s)
	g := r.Target().Graph()
	assert.Equal(t, 3, r.Target().K())
	// Palette, 4 literal vertices and one OR gadget per clause.
	assert.Equal(t, 17, g.NbVertices())
	assert.True(t, g.HasEdge(3, 5))
	assert.True(t, g.HasEdge(4, 2))
}

func TestSATToColoring(t *testing.T) {
	tests := map[string]*sat.Satisfiability{
		"or":         sat.MustNew(2, sat.Clause{1, 2}),
		"implies":    sat.MustNew(2, sat.Clause{-1, 2}),
		"units":      sat.MustNew(2, sat.Clause{1}, sat.Clause{-2}, sat.Clause{1}),
		"tautology":  sat.MustNew(2, sat.Clause{1, -1}),
		"unsat":      sat.MustNew(1, sat.Clause{1}, sat.Clause{-1}),
		"empty":      sat.MustNew(1, sat.Clause{}),
		"no clauses": sat.MustNew(2),
	}
	for name, s := range tests {
		t.Run(name, func(t *testing.T) {
			r := ReduceSATToColoring(s)
			require.NoError(t, reduction.CheckRoundTrip[int, int](s, r.Target(), r.ExtractSolution, reduction.RequireSameFeasibility()))
		})
	}
}

func TestSATToColoringExtractIsTotal(t *testing.T) {
	s := sat.MustNew(2, sat.Clause{1, 2})
	r := ReduceSATToColoring(s)
	bad := make(config.Config, r.Target().NumVariables())
	assert.False(t, r.Target().IsSatisfied(bad))
	assert.Equal(t, config.Config{1, 1}, r.ExtractSolution(bad))
	assert.Equal(t, config.Config{0, 0}, r.ExtractSolution(nil))
}
