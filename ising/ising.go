// Package ising defines quadratic binary optimization (QUBO) and Ising spin glass problems.
//
// In a spin glass, the flavor x of a variable maps to the spin s = 2x-1: flavor 1 is spin +1.
package ising

import (
	"errors"
	"fmt"
	"strings"

	"github.com/crillab/reductions/config"
	"github.com/crillab/reductions/problem"
)

var (
	// ErrShape is returned when a matrix or a field vector does not have the expected size.
	ErrShape = errors.New("ising: wrong shape")
	// ErrSpin is returned when an interaction refers to an invalid spin.
	ErrSpin = errors.New("ising: invalid spin")
)

// A QUBO minimizes sum_{i<=j} Q[i][j] x_i x_j over 0/1 variables.
// Only the upper triangle of Q is meaningful; entries below the diagonal are folded onto it.
type QUBO[V problem.Numeric] struct {
	q [][]V
}

// NewQUBO returns a QUBO whose matrix is q, which must be square.
func NewQUBO[V problem.Numeric](q [][]V) (*QUBO[V], error) {
	n := len(q)
	m := make([][]V, n)
	for i := range m {
		m[i] = make([]V, n)
	}
	for i, row := range q {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d entries, expected %d", ErrShape, i, len(row), n)
		}
		for j, v := range row {
			if i <= j {
				m[i][j] += v
			} else {
				m[j][i] += v
			}
		}
	}
	return &QUBO[V]{q: m}, nil
}

// NbVars returns the number of variables.
func (p *QUBO[V]) NbVars() int { return len(p.q) }

// At returns the coefficient of x_i x_j, with i <= j.
func (p *QUBO[V]) At(i, j int) V {
	if i > j {
		i, j = j, i
	}
	return p.q[i][j]
}

// Matrix returns a copy of the upper-triangular matrix.
func (p *QUBO[V]) Matrix() [][]V {
	res := make([][]V, len(p.q))
	for i, row := range p.q {
		res[i] = append([]V(nil), row...)
	}
	return res
}

func (p *QUBO[V]) Kind() problem.Kind           { return problem.QUBO }
func (p *QUBO[V]) NumVariables() int            { return len(p.q) }
func (p *QUBO[V]) NumFlavors() int              { return 2 }
func (p *QUBO[V]) Direction() problem.Direction { return problem.Minimize }
func (p *QUBO[V]) Size() problem.SizeProfile    { return problem.Size("num_vars", len(p.q)) }

// Value returns the value of the quadratic form on c.
func (p *QUBO[V]) Value(c config.Config) V {
	var res V
	for i := range p.q {
		if c[i] == 0 {
			continue
		}
		for j := i; j < len(p.q); j++ {
			if c[j] != 0 {
				res += p.q[i][j]
			}
		}
	}
	return res
}

// Evaluate returns the value of the quadratic form. All configurations are feasible.
func (p *QUBO[V]) Evaluate(c config.Config) problem.Evaluation[V] {
	problem.MustValidate[V](p, c)
	return problem.Feasible(p.Value(c))
}

// An Interaction is a coupling J between spins I and J.
type Interaction[V problem.Numeric] struct {
	I, J     int
	Coupling V
}

// A SpinGlass minimizes the energy H(s) = sum J_ij s_i s_j + sum h_i s_i over spins s_i in {-1, +1}.
type SpinGlass[V problem.Numeric] struct {
	interactions []Interaction[V]
	fields       []V
}

// NewSpinGlass returns a spin glass whose number of spins is len(fields).
// Interactions must link two distinct existing spins. Several interactions on the same pair add up.
func NewSpinGlass[V problem.Numeric](interactions []Interaction[V], fields []V) (*SpinGlass[V], error) {
	n := len(fields)
	for _, it := range interactions {
		if it.I < 0 || it.I >= n || it.J < 0 || it.J >= n || it.I == it.J {
			return nil, fmt.Errorf("%w: interaction (%d, %d) with %d spins", ErrSpin, it.I, it.J, n)
		}
	}
	return &SpinGlass[V]{
		interactions: append([]Interaction[V](nil), interactions...),
		fields:       append([]V(nil), fields...),
	}, nil
}

// NbSpins returns the number of spins.
func (p *SpinGlass[V]) NbSpins() int { return len(p.fields) }

// Interactions returns a copy of the couplings.
func (p *SpinGlass[V]) Interactions() []Interaction[V] {
	return append([]Interaction[V](nil), p.interactions...)
}

// Fields returns a copy of the on-site fields.
func (p *SpinGlass[V]) Fields() []V { return append([]V(nil), p.fields...) }

func (p *SpinGlass[V]) Kind() problem.Kind           { return problem.SpinGlass }
func (p *SpinGlass[V]) NumVariables() int            { return len(p.fields) }
func (p *SpinGlass[V]) NumFlavors() int              { return 2 }
func (p *SpinGlass[V]) Direction() problem.Direction { return problem.Minimize }

func (p *SpinGlass[V]) Size() problem.SizeProfile {
	return problem.Size("num_spins", len(p.fields), "num_interactions", len(p.interactions))
}

// Spins returns the spin values associated with configuration c.
func Spins(c config.Config) []int {
	res := make([]int, len(c))
	for i, x := range c {
		res[i] = 2*x - 1
	}
	return res
}

// Energy returns the energy of the given spins.
func (p *SpinGlass[V]) Energy(spins []int) V {
	var res V
	for _, it := range p.interactions {
		res += it.Coupling * V(spins[it.I]*spins[it.J])
	}
	for i, h := range p.fields {
		res += h * V(spins[i])
	}
	return res
}

// Evaluate returns the energy. All configurations are feasible.
func (p *SpinGlass[V]) Evaluate(c config.Config) problem.Evaluation[V] {
	problem.MustValidate[V](p, c)
	return problem.Feasible(p.Energy(Spins(c)))
}

func (p *SpinGlass[V]) String() string {
	terms := make([]string, 0, len(p.interactions)+len(p.fields))
	for _, it := range p.interactions {
		terms = append(terms, fmt.Sprintf("%v s%d s%d", it.Coupling, it.I, it.J))
	}
	for i, h := range p.fields {
		if h != 0 {
			terms = append(terms, fmt.Sprintf("%v s%d", h, i))
		}
	}
	return "H = " + strings.Join(terms, " + ")
}
