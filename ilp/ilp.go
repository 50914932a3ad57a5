// Package ilp defines integer linear programs over bounded integer variables.
package ilp

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/crillab/reductions/config"
	"github.com/crillab/reductions/problem"
)

var (
	// ErrBounds is returned when a variable has an empty range of values.
	ErrBounds = errors.New("ilp: empty variable range")
	// ErrVariable is returned when a term refers to a variable that does not exist.
	ErrVariable = errors.New("ilp: unknown variable")
	// ErrCoefficient is returned when a coefficient or right-hand side is not a finite number.
	ErrCoefficient = errors.New("ilp: invalid coefficient")
)

// eqTolerance is the tolerance used when checking equality constraints.
const eqTolerance = 1e-9

// Bounds is the range [Lower, Upper] of an integer variable.
type Bounds struct {
	Lower int64
	Upper int64
}

// Binary returns the bounds of a 0/1 variable.
func Binary() Bounds { return Bounds{Lower: 0, Upper: 1} }

// Range returns the bounds [lo, hi].
func Range(lo, hi int64) Bounds { return Bounds{Lower: lo, Upper: hi} }

// Contains returns true iff v is in b.
func (b Bounds) Contains(v int64) bool { return v >= b.Lower && v <= b.Upper }

// NumValues returns the number of values in b.
func (b Bounds) NumValues() int {
	if b.Upper < b.Lower {
		return 0
	}
	return int(b.Upper - b.Lower + 1)
}

// Comparison is the relation between both sides of a constraint.
type Comparison byte

const (
	// Le means lhs <= rhs.
	Le Comparison = iota
	// Ge means lhs >= rhs.
	Ge
	// Eq means lhs == rhs, up to a small tolerance.
	Eq
)

func (c Comparison) String() string {
	switch c {
	case Le:
		return "<="
	case Ge:
		return ">="
	default:
		return "="
	}
}

// Holds returns true iff lhs and rhs are in relation c.
func (c Comparison) Holds(lhs, rhs float64) bool {
	switch c {
	case Le:
		return lhs <= rhs
	case Ge:
		return lhs >= rhs
	default:
		return math.Abs(lhs-rhs) < eqTolerance
	}
}

// A Term is a coefficient applied to a variable.
type Term struct {
	Var  int
	Coef float64
}

// A Constraint is the linear constraint sum(terms) cmp rhs.
type Constraint struct {
	Terms []Term
	Cmp   Comparison
	RHS   float64
}

// LeC returns the constraint sum(terms) <= rhs.
func LeC(rhs float64, terms ...Term) Constraint { return Constraint{Terms: terms, Cmp: Le, RHS: rhs} }

// GeC returns the constraint sum(terms) >= rhs.
func GeC(rhs float64, terms ...Term) Constraint { return Constraint{Terms: terms, Cmp: Ge, RHS: rhs} }

// EqC returns the constraint sum(terms) == rhs.
func EqC(rhs float64, terms ...Term) Constraint { return Constraint{Terms: terms, Cmp: Eq, RHS: rhs} }

// LHS returns the value of the left-hand side for the given variable values.
func (c Constraint) LHS(values []int64) float64 {
	return sum(c.Terms, values)
}

// Satisfied returns true iff the constraint holds for the given variable values.
func (c Constraint) Satisfied(values []int64) bool {
	return c.Cmp.Holds(c.LHS(values), c.RHS)
}

func (c Constraint) String() string {
	return fmt.Sprintf("%s %v %g", termsString(c.Terms), c.Cmp, c.RHS)
}

func sum(terms []Term, values []int64) float64 {
	res := 0.0
	for _, t := range terms {
		res += t.Coef * float64(values[t.Var])
	}
	return res
}

func termsString(terms []Term) string {
	if len(terms) == 0 {
		return "0"
	}
	strs := make([]string, len(terms))
	for i, t := range terms {
		strs[i] = fmt.Sprintf("%g x%d", t.Coef, t.Var)
	}
	return strings.Join(strs, " + ")
}

// An ILP optimizes a linear objective over bounded integer variables subject to linear constraints.
// In configurations, the flavor of variable i is its offset from its lower bound.
type ILP struct {
	bounds      []Bounds
	constraints []Constraint
	objective   []Term
	sense       problem.Direction
}

// New returns an integer program. Every variable must have a non-empty range,
// and every term must refer to an existing variable.
func New(bounds []Bounds, constraints []Constraint, objective []Term, sense problem.Direction) (*ILP, error) {
	for i, b := range bounds {
		if b.NumValues() == 0 {
			return nil, fmt.Errorf("%w: variable %d has bounds [%d, %d]", ErrBounds, i, b.Lower, b.Upper)
		}
	}
	res := ILP{
		bounds:      append([]Bounds(nil), bounds...),
		constraints: make([]Constraint, len(constraints)),
		sense:       sense,
	}
	for i, c := range constraints {
		if err := checkTerms(c.Terms, len(bounds)); err != nil {
			return nil, fmt.Errorf("in constraint %d: %w", i, err)
		}
		if math.IsNaN(c.RHS) || math.IsInf(c.RHS, 0) {
			return nil, fmt.Errorf("in constraint %d: %w: rhs is %g", i, ErrCoefficient, c.RHS)
		}
		res.constraints[i] = Constraint{Terms: append([]Term(nil), c.Terms...), Cmp: c.Cmp, RHS: c.RHS}
	}
	if err := checkTerms(objective, len(bounds)); err != nil {
		return nil, fmt.Errorf("in objective: %w", err)
	}
	res.objective = append([]Term(nil), objective...)
	return &res, nil
}

// NewBinary returns an integer program over n 0/1 variables.
func NewBinary(n int, constraints []Constraint, objective []Term, sense problem.Direction) (*ILP, error) {
	bounds := make([]Bounds, n)
	for i := range bounds {
		bounds[i] = Binary()
	}
	return New(bounds, constraints, objective, sense)
}

func checkTerms(terms []Term, nbVars int) error {
	for _, t := range terms {
		if t.Var < 0 || t.Var >= nbVars {
			return fmt.Errorf("%w: x%d, program has %d variables", ErrVariable, t.Var, nbVars)
		}
		if math.IsNaN(t.Coef) || math.IsInf(t.Coef, 0) {
			return fmt.Errorf("%w: %g for x%d", ErrCoefficient, t.Coef, t.Var)
		}
	}
	return nil
}

// Bounds returns the bounds of variable i.
func (p *ILP) Bounds(i int) Bounds { return p.bounds[i] }

// Constraints returns the constraints. They must not be modified.
func (p *ILP) Constraints() []Constraint { return p.constraints }

// Objective returns the objective terms. They must not be modified.
func (p *ILP) Objective() []Term { return p.objective }

func (p *ILP) Kind() problem.Kind           { return problem.ILP }
func (p *ILP) NumVariables() int            { return len(p.bounds) }
func (p *ILP) Direction() problem.Direction { return p.sense }

// NumFlavors returns the largest number of values a variable can take, or 2 if there is no variable.
func (p *ILP) NumFlavors() int {
	if len(p.bounds) == 0 {
		return 2
	}
	res := 0
	for _, b := range p.bounds {
		res = max(res, b.NumValues())
	}
	return res
}

// Dims returns the number of values of each variable.
func (p *ILP) Dims() []int {
	res := make([]int, len(p.bounds))
	for i, b := range p.bounds {
		res[i] = b.NumValues()
	}
	return res
}

func (p *ILP) Size() problem.SizeProfile {
	return problem.Size("num_vars", len(p.bounds), "num_constraints", len(p.constraints))
}

// Values returns the value of each variable in configuration c.
func (p *ILP) Values(c config.Config) []int64 {
	res := make([]int64, len(c))
	for i, v := range c {
		res[i] = p.bounds[i].Lower + int64(v)
	}
	return res
}

// Config returns the configuration associated with the given variable values.
// It returns false if a value is out of its bounds.
func (p *ILP) Config(values []int64) (config.Config, bool) {
	if len(values) != len(p.bounds) {
		return nil, false
	}
	res := make(config.Config, len(values))
	for i, v := range values {
		if !p.bounds[i].Contains(v) {
			return nil, false
		}
		res[i] = int(v - p.bounds[i].Lower)
	}
	return res, true
}

// ObjectiveValue returns the value of the objective for the given variable values.
func (p *ILP) ObjectiveValue(values []int64) float64 {
	return sum(p.objective, values)
}

// Feasible returns true iff all constraints hold for the given variable values.
func (p *ILP) Feasible(values []int64) bool {
	for _, c := range p.constraints {
		if !c.Satisfied(values) {
			return false
		}
	}
	return true
}

func (p *ILP) Evaluate(c config.Config) problem.Evaluation[float64] {
	problem.MustValidate[float64](p, c)
	values := p.Values(c)
	return problem.Evaluation[float64]{Objective: p.ObjectiveValue(values), Feasible: p.Feasible(values)}
}

func (p *ILP) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%v %s\n", p.sense, termsString(p.objective))
	for _, c := range p.constraints {
		fmt.Fprintf(&sb, "  %v\n", c)
	}
	for i, b := range p.bounds {
		fmt.Fprintf(&sb, "  %d <= x%d <= %d\n", b.Lower, i, b.Upper)
	}
	return sb.String()
}
