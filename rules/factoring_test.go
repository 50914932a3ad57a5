package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crillab/reductions/bruteforce"
	"github.com/crillab/reductions/factoring"
	"github.com/crillab/reductions/reduction"
)

func TestFactoringToILP(t *testing.T) {
	tests := []struct {
		m, n   int
		target uint64
	}{
		{2, 2, 6},
		{2, 2, 9},
		{2, 2, 7},
		{1, 1, 4},
		{2, 3, 6},
	}
	for _, test := range tests {
		p, err := factoring.New(test.m, test.n, test.target)
		require.NoError(t, err)
		r := ReduceFactoringToILP(p)
		err = reduction.CheckRoundTrip[int64, float64](p, r.Target(), r.ExtractSolution, reduction.RequireSameFeasibility())
		assert.NoError(t, err, "%d bits * %d bits = %d", test.m, test.n, test.target)
	}
}

func TestFactoringToILPSolutions(t *testing.T) {
	p, err := factoring.New(2, 2, 6)
	require.NoError(t, err)
	r := ReduceFactoringToILP(p)
	// 2 + 2 factor bits, 4 partial products, 4 carries.
	assert.Equal(t, 12, r.Target().NumVariables())
	var products [][2]uint64
	for _, c := range bruteforce.New[float64]().FindBest(r.Target()) {
		a, b := p.Factors(r.ExtractSolution(c))
		products = append(products, [2]uint64{a, b})
	}
	assert.ElementsMatch(t, [][2]uint64{{2, 3}, {3, 2}}, products)
}
