// Package factoring defines the integer factoring problem: finding an m-bit integer a and an n-bit integer b
// whose product is a given target.
package factoring

import (
	"errors"
	"fmt"

	"github.com/crillab/reductions/config"
	"github.com/crillab/reductions/problem"
)

// ErrBits is returned when the numbers of bits are invalid.
var ErrBits = errors.New("factoring: invalid number of bits")

// maxBits is the largest total number of bits such that any product fits in an int64.
const maxBits = 62

// Factoring asks for factors a (m bits) and b (n bits) of a target N.
// In configurations, the m bits of a come first, then the n bits of b, least significant bit first.
// The objective is |a*b - N|, to be minimized; a configuration is feasible iff a*b == N.
type Factoring struct {
	m, n   int
	target uint64
}

// New returns the problem of factoring target into an m-bit and an n-bit integer.
func New(m, n int, target uint64) (*Factoring, error) {
	if m <= 0 || n <= 0 || m+n > maxBits {
		return nil, fmt.Errorf("%w: m=%d, n=%d", ErrBits, m, n)
	}
	if target >= 1<<uint(maxBits) {
		return nil, fmt.Errorf("factoring: target %d is too large", target)
	}
	return &Factoring{m: m, n: n, target: target}, nil
}

// M returns the number of bits of the first factor.
func (p *Factoring) M() int { return p.m }

// N returns the number of bits of the second factor.
func (p *Factoring) N() int { return p.n }

// Target returns the number to factor.
func (p *Factoring) Target() uint64 { return p.target }

// Factors reads both factors from c.
func (p *Factoring) Factors(c config.Config) (a, b uint64) {
	return ReadBits(c[:p.m]), ReadBits(c[p.m : p.m+p.n])
}

// ReadBits returns the integer whose bits, least significant first, are c.
func ReadBits(c config.Config) uint64 {
	var res uint64
	for i, b := range c {
		if b != 0 {
			res |= 1 << uint(i)
		}
	}
	return res
}

// Bits returns the nb least significant bits of x, least significant first.
func Bits(x uint64, nb int) config.Config {
	res := make(config.Config, nb)
	for i := range res {
		res[i] = int((x >> uint(i)) & 1)
	}
	return res
}

func (p *Factoring) Kind() problem.Kind           { return problem.Factoring }
func (p *Factoring) NumVariables() int            { return p.m + p.n }
func (p *Factoring) NumFlavors() int              { return 2 }
func (p *Factoring) Direction() problem.Direction { return problem.Minimize }

func (p *Factoring) Size() problem.SizeProfile {
	return problem.Size("num_bits_first", p.m, "num_bits_second", p.n, "target", int(p.target))
}

func (p *Factoring) Evaluate(c config.Config) problem.Evaluation[int64] {
	problem.MustValidate[int64](p, c)
	a, b := p.Factors(c)
	prod := a * b
	dist := int64(prod) - int64(p.target)
	if dist < 0 {
		dist = -dist
	}
	return problem.Evaluation[int64]{Objective: dist, Feasible: prod == p.target}
}
