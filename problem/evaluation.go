package problem

import (
	"fmt"
	"math"
)

// Numeric is the set of types an objective value can have.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// Direction indicates whether larger or smaller objective values are preferred.
type Direction byte

const (
	// Maximize means larger objective values are better.
	Maximize Direction = iota
	// Minimize means smaller objective values are better.
	Minimize
)

func (d Direction) String() string {
	switch d {
	case Maximize:
		return "maximize"
	case Minimize:
		return "minimize"
	default:
		return fmt.Sprintf("Direction(%d)", byte(d))
	}
}

// Better returns true iff a is strictly better than b in direction d.
func Better[V Numeric](d Direction, a, b V) bool {
	if d == Minimize {
		return a < b
	}
	return a > b
}

// An Evaluation is the result of evaluating a configuration: an objective value and whether all hard constraints hold.
type Evaluation[V Numeric] struct {
	Objective V
	Feasible  bool
}

// Feasible returns the evaluation of a configuration satisfying all constraints.
func Feasible[V Numeric](v V) Evaluation[V] {
	return Evaluation[V]{Objective: v, Feasible: true}
}

// Infeasible returns the evaluation of a configuration violating a constraint.
func Infeasible[V Numeric](v V) Evaluation[V] {
	return Evaluation[V]{Objective: v}
}

func (e Evaluation[V]) String() string {
	if e.Feasible {
		return fmt.Sprintf("%v", e.Objective)
	}
	return fmt.Sprintf("%v (infeasible)", e.Objective)
}

// Dominates returns true iff e is strictly better than o in direction d.
// Any feasible evaluation dominates any infeasible one, whatever the objective values.
// Two infeasible evaluations never dominate each other.
func (e Evaluation[V]) Dominates(o Evaluation[V], d Direction) bool {
	switch {
	case e.Feasible && !o.Feasible:
		return true
	case !e.Feasible:
		return false
	default:
		return Better(d, e.Objective, o.Objective)
	}
}

// Ties returns true iff neither e nor o dominates the other.
func (e Evaluation[V]) Ties(o Evaluation[V], d Direction) bool {
	return !e.Dominates(o, d) && !o.Dominates(e, d)
}

// A Comparator compares objective values with an absolute and a relative tolerance.
// The zero value compares values exactly.
type Comparator struct {
	Atol float64
	Rtol float64
}

// Equal returns true iff a and b are within tolerance.
func (c Comparator) Equal(a, b float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	return diff <= c.Atol || diff <= c.Rtol*math.Max(math.Abs(a), math.Abs(b))
}

// Better returns true iff a is better than b in direction d, by more than the tolerance.
func (c Comparator) Better(d Direction, a, b float64) bool {
	return !c.Equal(a, b) && Better(d, a, b)
}
