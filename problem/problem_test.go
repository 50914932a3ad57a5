package problem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crillab/reductions/config"
)

func TestFeasibilityPrecedence(t *testing.T) {
	for _, d := range []Direction{Maximize, Minimize} {
		good := Feasible(-1000)
		bad := Infeasible(1000)
		if d == Minimize {
			good, bad = Feasible(1000), Infeasible(-1000)
		}
		assert.True(t, good.Dominates(bad, d), "%v: feasible should dominate", d)
		assert.False(t, bad.Dominates(good, d), "%v: infeasible should not dominate", d)
	}
}

func TestInfeasibleNeverDominate(t *testing.T) {
	a, b := Infeasible(1.0), Infeasible(5.0)
	assert.False(t, a.Dominates(b, Maximize))
	assert.False(t, b.Dominates(a, Maximize))
	assert.True(t, a.Ties(b, Minimize))
}

func TestDirection(t *testing.T) {
	assert.True(t, Feasible(3).Dominates(Feasible(2), Maximize))
	assert.True(t, Feasible(2).Dominates(Feasible(3), Minimize))
	assert.True(t, Feasible(2).Ties(Feasible(2), Minimize))
	assert.Equal(t, "minimize", Minimize.String())
}

func TestComparator(t *testing.T) {
	var exact Comparator
	assert.False(t, exact.Equal(1, 1+1e-12))
	assert.True(t, exact.Better(Maximize, 1+1e-12, 1))

	tol := Comparator{Atol: 1e-9}
	assert.True(t, tol.Equal(1, 1+1e-12))
	assert.False(t, tol.Better(Maximize, 1+1e-12, 1))

	rel := Comparator{Rtol: 0.01}
	assert.True(t, rel.Equal(100, 100.5))
	assert.False(t, rel.Equal(1, 1.5))
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	k, err := ParseKind("qubo")
	require.NoError(t, err)
	assert.Equal(t, QUBO, k)
	_, err = ParseKind("TSP")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestSizeProfile(t *testing.T) {
	p := Size("num_vars", 3, "num_clauses", 2)
	v, ok := p.Get("num_clauses")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	_, ok = p.Get("num_edges")
	assert.False(t, ok)
	assert.Equal(t, "{num_vars=3, num_clauses=2}", p.String())
}

type parity struct{ n int }

func (p parity) Kind() Kind           { return Satisfiability }
func (p parity) NumVariables() int    { return p.n }
func (p parity) NumFlavors() int      { return 2 }
func (p parity) Direction() Direction { return Maximize }
func (p parity) Size() SizeProfile    { return Size("n", p.n) }
func (p parity) Evaluate(c config.Config) Evaluation[int] {
	MustValidate[int](p, c)
	sum := 0
	for _, v := range c {
		sum += v
	}
	return Evaluation[int]{Objective: sum, Feasible: sum%2 == 0}
}

func TestMustValidate(t *testing.T) {
	p := parity{n: 2}
	assert.NotPanics(t, func() { p.Evaluate(config.Config{1, 1}) })
	assert.Panics(t, func() { p.Evaluate(config.Config{1}) })
	assert.Panics(t, func() { p.Evaluate(config.Config{1, 2}) })
	assert.Equal(t, []int{2, 2}, Dims[int](p))
}
