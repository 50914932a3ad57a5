package sat

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crillab/reductions/bruteforce"
	"github.com/crillab/reductions/config"
	"github.com/crillab/reductions/problem"
)

func TestEvaluate(t *testing.T) {
	s, err := NewWeighted(2, []Clause{{1, 2}, {-1}, {-2}}, []int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, problem.Infeasible(5), s.Evaluate(config.Config{0, 0}))
	assert.Equal(t, problem.Infeasible(4), s.Evaluate(config.Config{1, 0}))
	assert.False(t, s.IsSatisfied(config.Config{0, 1}))
	assert.Empty(t, bruteforce.New[int]().FindBest(s))

	// Without valid-only, the best configuration is the weighted MAX-SAT optimum.
	best := bruteforce.New[int](bruteforce.WithValidOnly(false)).FindBest(s)
	assert.Equal(t, []config.Config{{0, 0}}, best)
}

func TestModels(t *testing.T) {
	s := MustNew(3, Clause{1, 2}, Clause{-1, 3}, Clause{-3})
	best := bruteforce.New[int]().FindBest(s)
	assert.Equal(t, []config.Config{{0, 1, 0}}, best)
	all := bruteforce.FindAllSatisfying(s)
	assert.Equal(t, best, all)
	assert.Equal(t, "(1 ∨ 2) ∧ (-1 ∨ 3) ∧ (-3)", s.String())
}

func TestConstructionErrors(t *testing.T) {
	_, err := New(2, []Clause{{1, 3}})
	assert.ErrorIs(t, err, ErrLiteral)
	_, err = New(2, []Clause{{1, 0}})
	assert.ErrorIs(t, err, ErrLiteral)
	_, err = NewWeighted(2, []Clause{{1}}, []int{1, 1})
	assert.ErrorIs(t, err, ErrWeights)
	_, err = NewK(3, 3, []Clause{{1, 2, 3}, {1, 2}})
	assert.ErrorIs(t, err, ErrWidth)
	_, err = NewK(3, 0, nil)
	assert.ErrorIs(t, err, ErrWidth)
}

func TestKSat(t *testing.T) {
	k, err := NewK(3, 3, []Clause{{1, 2, 3}, {-1, -2, -3}})
	require.NoError(t, err)
	assert.Equal(t, problem.KSatisfiability, k.Kind())
	assert.Equal(t, 3, k.K())
	assert.Len(t, bruteforce.New[int]().FindBest(k), 6)
	v, _ := k.Size().Get("k")
	assert.Equal(t, 3, v)
}

func TestOwnership(t *testing.T) {
	clauses := []Clause{{1, 2}}
	s := MustNew(2, clauses...)
	clauses[0][0] = -1
	assert.Equal(t, Clause{1, 2}, s.Clause(0))
	cp := s.Clauses()
	cp[0][1] = -2
	assert.Equal(t, Clause{1, 2}, s.Clause(0))
}

func TestMalformedConfigPanics(t *testing.T) {
	s := MustNew(2, Clause{1, 2})
	assert.Panics(t, func() { s.Evaluate(config.Config{1}) })
	assert.Panics(t, func() { s.Evaluate(config.Config{1, 2}) })
}

func TestDIMACS(t *testing.T) {
	const input = `c a comment
p cnf 3 2
1 -2 0
2 3
-1 0
`
	s, err := ParseDIMACS(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 3, s.NbVars())
	assert.Equal(t, []Clause{{1, -2}, {2, 3, -1}}, s.Clauses())

	var buf bytes.Buffer
	require.NoError(t, WriteDIMACS(&buf, s))
	assert.Equal(t, "p cnf 3 2\n1 -2 0\n2 3 -1 0\n", buf.String())
}

func TestWeightedDIMACS(t *testing.T) {
	s, err := ParseDIMACS(strings.NewReader("p wcnf 2 2\n3 1 2 0\n5 -1 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, s.Weight(0))
	assert.Equal(t, 5, s.Weight(1))

	var buf bytes.Buffer
	require.NoError(t, WriteDIMACS(&buf, s))
	assert.Equal(t, "p wcnf 2 2\n3 1 2 0\n5 -1 0\n", buf.String())
}

func TestWeightedDIMACSWeights(t *testing.T) {
	s, err := ParseDIMACS(strings.NewReader("p wcnf 2 3\n0 1 2 0\n2 -1\n0\n4 -2 0\n"))
	require.NoError(t, err)
	assert.Equal(t, []Clause{{1, 2}, {-1}, {-2}}, s.Clauses())
	assert.Equal(t, 0, s.Weight(0))
	assert.Equal(t, 2, s.Weight(1))

	_, err = ParseDIMACS(strings.NewReader("p wcnf 2 2\n-3 1 2 0\n2 -1 0\n"))
	assert.ErrorIs(t, err, ErrNegativeWeight)
	assert.ErrorContains(t, err, "line 2")

	_, err = ParseDIMACS(strings.NewReader("p wcnf 2 1\n3\n"))
	assert.Error(t, err, "weight without clause")
}

func TestDIMACSErrors(t *testing.T) {
	for name, input := range map[string]string{
		"no header":    "1 2 0\n",
		"bad header":   "p dnf 2 1\n1 0\n",
		"unfinished":   "p cnf 2 1\n1 2\n",
		"bad literal":  "p cnf 2 1\n1 x 0\n",
		"out of range": "p cnf 2 1\n1 3 0\n",
		"clause count": "p cnf 2 2\n1 0\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseDIMACS(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}
