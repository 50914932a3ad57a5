package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crillab/reductions/bruteforce"
	"github.com/crillab/reductions/config"
)

func path(n int) *Graph {
	var edges []Edge
	for i := 0; i+1 < n; i++ {
		edges = append(edges, Edge{U: i, V: i + 1})
	}
	return MustNew(n, edges...)
}

func TestNew(t *testing.T) {
	g, err := New(3, []Edge{{U: 1, V: 0}, {U: 1, V: 2}})
	require.NoError(t, err)
	assert.Equal(t, []Edge{{U: 0, V: 1}, {U: 1, V: 2}}, g.Edges())
	assert.True(t, g.HasEdge(1, 0))
	assert.False(t, g.HasEdge(0, 2))
	assert.False(t, g.HasEdge(-1, 2))
	assert.Equal(t, 2, g.Degree(1))

	_, err = New(2, []Edge{{U: 0, V: 2}})
	assert.ErrorIs(t, err, ErrVertex)
	_, err = New(2, []Edge{{U: 1, V: 1}})
	assert.ErrorIs(t, err, ErrLoop)
	_, err = New(2, []Edge{{U: 0, V: 1}, {U: 1, V: 0}})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, 6, Complete(4).NbEdges())
}

func TestIndependentSet(t *testing.T) {
	p, err := NewMaximumIndependentSet[int](path(4), nil)
	require.NoError(t, err)
	best := bruteforce.New[int]().FindBest(p)
	assert.ElementsMatch(t, []config.Config{{1, 0, 1, 0}, {0, 1, 0, 1}, {1, 0, 0, 1}}, best)
	assert.False(t, p.Evaluate(config.Config{1, 1, 0, 0}).Feasible)

	w, err := NewMaximumIndependentSet(path(3), []float64{1, 3, 1})
	require.NoError(t, err)
	assert.Equal(t, []config.Config{{0, 1, 0}}, bruteforce.New[float64]().FindBest(w))

	_, err = NewMaximumIndependentSet(path(3), []int{1})
	assert.ErrorIs(t, err, ErrWeights)
}

func TestVertexCover(t *testing.T) {
	p, err := NewMinimumVertexCover[int](path(3), nil)
	require.NoError(t, err)
	assert.Equal(t, []config.Config{{0, 1, 0}}, bruteforce.New[int]().FindBest(p))
	assert.False(t, p.Evaluate(config.Config{1, 0, 0}).Feasible)
}

func TestColoring(t *testing.T) {
	triangle := Complete(3)
	two, err := NewKColoring(triangle, 2)
	require.NoError(t, err)
	assert.Empty(t, bruteforce.New[int]().FindBest(two))
	_, ok := bruteforce.FindSatisfying(two)
	assert.False(t, ok)

	three, err := NewKColoring(triangle, 3)
	require.NoError(t, err)
	assert.Len(t, bruteforce.FindAllSatisfying(three), 6)

	_, err = NewKColoring(triangle, 0)
	assert.Error(t, err)
}

func TestMaxCut(t *testing.T) {
	p, err := NewMaxCut(Complete(3), []int{1, 2, 3})
	require.NoError(t, err)
	best, eval, ok := bruteforce.New[int]().FindBestWithEvaluation(p)
	require.True(t, ok)
	assert.Equal(t, 5, eval.Objective)
	// Edges (0,1):1, (0,2):2, (1,2):3: vertex 2 alone on its side.
	assert.ElementsMatch(t, []config.Config{{0, 0, 1}, {1, 1, 0}}, best)

	_, err = NewMaxCut(Complete(3), []int{1})
	assert.ErrorIs(t, err, ErrWeights)
}
