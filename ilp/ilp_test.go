package ilp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crillab/reductions/bruteforce"
	"github.com/crillab/reductions/config"
	"github.com/crillab/reductions/problem"
)

func TestKnapsack(t *testing.T) {
	// max 3x0 + 4x1 + 2x2 s.t. 2x0 + 3x1 + x2 <= 4
	p, err := NewBinary(3,
		[]Constraint{LeC(4, Term{0, 2}, Term{1, 3}, Term{2, 1})},
		[]Term{{0, 3}, {1, 4}, {2, 2}},
		problem.Maximize)
	require.NoError(t, err)
	best, eval, ok := bruteforce.New[float64]().FindBestWithEvaluation(p)
	require.True(t, ok)
	assert.Equal(t, 6.0, eval.Objective)
	assert.Equal(t, []config.Config{{0, 1, 1}}, best)
}

func TestBoundedVariables(t *testing.T) {
	// min x0 + x1 s.t. x0 - x1 = 1, x0 in [-2, 2], x1 in [-1, 1]
	p, err := New([]Bounds{Range(-2, 2), Range(-1, 1)},
		[]Constraint{EqC(1, Term{0, 1}, Term{1, -1})},
		[]Term{{0, 1}, {1, 1}},
		problem.Minimize)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 3}, p.Dims())
	assert.Equal(t, 5, p.NumFlavors())
	best, eval, ok := bruteforce.New[float64]().FindBestWithEvaluation(p)
	require.True(t, ok)
	assert.Equal(t, -1.0, eval.Objective)
	require.Len(t, best, 1)
	assert.Equal(t, []int64{0, -1}, p.Values(best[0]))
	c, ok := p.Config([]int64{0, -1})
	require.True(t, ok)
	assert.Equal(t, best[0], c)
	_, ok = p.Config([]int64{3, 0})
	assert.False(t, ok)
}

func TestInfeasible(t *testing.T) {
	p, err := NewBinary(2, []Constraint{GeC(3, Term{0, 1}, Term{1, 1})}, nil, problem.Minimize)
	require.NoError(t, err)
	assert.Empty(t, bruteforce.New[float64]().FindBest(p))
}

func TestConstructionErrors(t *testing.T) {
	_, err := New([]Bounds{Range(2, 1)}, nil, nil, problem.Minimize)
	assert.ErrorIs(t, err, ErrBounds)
	_, err = NewBinary(2, []Constraint{LeC(1, Term{2, 1})}, nil, problem.Minimize)
	assert.ErrorIs(t, err, ErrVariable)
	_, err = NewBinary(2, nil, []Term{{-1, 1}}, problem.Minimize)
	assert.ErrorIs(t, err, ErrVariable)
	_, err = NewBinary(1, []Constraint{LeC(math.Inf(1), Term{0, 1})}, nil, problem.Minimize)
	assert.ErrorIs(t, err, ErrCoefficient)
	_, err = NewBinary(1, nil, []Term{{0, math.NaN()}}, problem.Minimize)
	assert.ErrorIs(t, err, ErrCoefficient)
}

func TestComparison(t *testing.T) {
	assert.True(t, Eq.Holds(1, 1+1e-12))
	assert.False(t, Eq.Holds(1, 1.1))
	assert.True(t, Le.Holds(1, 1))
	assert.False(t, Ge.Holds(0, 1))
	assert.Equal(t, "1 x0 + -2 x1 <= 3", LeC(3, Term{0, 1}, Term{1, -2}).String())
}
