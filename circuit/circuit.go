// Package circuit defines boolean circuits, i.e sequences of assignments "outputs = expression",
// and the CircuitSAT problem: finding values for all wires such that every assignment holds.
package circuit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/crillab/reductions/config"
	"github.com/crillab/reductions/problem"
)

var (
	// ErrExpr is returned when an expression is malformed.
	ErrExpr = errors.New("circuit: malformed expression")
	// ErrAssignment is returned when an assignment has no output.
	ErrAssignment = errors.New("circuit: assignment without output")
)

// An Assignment states that every output wire equals the value of Expr.
type Assignment struct {
	Outputs []string
	Expr    Expr
}

// Assign returns the assignment of e to the given outputs.
func Assign(e Expr, outputs ...string) Assignment {
	return Assignment{Outputs: outputs, Expr: e}
}

// Satisfied returns true iff every output has the value of the expression in model.
func (a Assignment) Satisfied(model map[string]bool) bool {
	val := a.Expr.Eval(model)
	for _, o := range a.Outputs {
		if model[o] != val {
			return false
		}
	}
	return true
}

func (a Assignment) String() string {
	return strings.Join(a.Outputs, ", ") + " = " + a.Expr.String()
}

// A Circuit is a list of assignments.
type Circuit []Assignment

// Vars returns the sorted names of all wires of the circuit.
func (c Circuit) Vars() []string {
	set := map[string]struct{}{}
	for _, a := range c {
		for _, o := range a.Outputs {
			set[o] = struct{}{}
		}
		a.Expr.collect(set)
	}
	return sortedKeys(set)
}

func (c Circuit) String() string {
	lines := make([]string, len(c))
	for i, a := range c {
		lines[i] = a.String()
	}
	return strings.Join(lines, "\n")
}

// CircuitSAT asks for values of all wires satisfying every assignment of a circuit.
// Variables are the wires, sorted by name. The objective is the number of satisfied assignments,
// and a configuration is feasible iff all of them are satisfied.
type CircuitSAT struct {
	circuit Circuit
	vars    []string
	index   map[string]int
}

// New returns the CircuitSAT problem of c.
func New(c Circuit) (*CircuitSAT, error) {
	cp := make(Circuit, len(c))
	for i, a := range c {
		if len(a.Outputs) == 0 {
			return nil, fmt.Errorf("%w: assignment %d", ErrAssignment, i)
		}
		for _, o := range a.Outputs {
			if o == "" {
				return nil, fmt.Errorf("%w: empty output name in assignment %d", ErrExpr, i)
			}
		}
		if err := a.Expr.Validate(); err != nil {
			return nil, fmt.Errorf("in assignment %d: %w", i, err)
		}
		cp[i] = Assignment{Outputs: append([]string(nil), a.Outputs...), Expr: a.Expr}
	}
	res := CircuitSAT{circuit: cp, vars: cp.Vars(), index: map[string]int{}}
	for i, v := range res.vars {
		res.index[v] = i
	}
	return &res, nil
}

// MustNew is like New but panics on error.
func MustNew(assignments ...Assignment) *CircuitSAT {
	res, err := New(Circuit(assignments))
	if err != nil {
		panic(err)
	}
	return res
}

// Circuit returns the circuit. It must not be modified.
func (p *CircuitSAT) Circuit() Circuit { return p.circuit }

// VarNames returns the names of the variables, in configuration order.
func (p *CircuitSAT) VarNames() []string { return append([]string(nil), p.vars...) }

// VarIndex returns the index of the wire called name in configurations.
func (p *CircuitSAT) VarIndex(name string) (int, bool) {
	i, ok := p.index[name]
	return i, ok
}

// Model returns the value of each wire in configuration c.
func (p *CircuitSAT) Model(c config.Config) map[string]bool {
	res := make(map[string]bool, len(p.vars))
	for i, v := range p.vars {
		res[v] = c[i] == 1
	}
	return res
}

func (p *CircuitSAT) Kind() problem.Kind           { return problem.CircuitSAT }
func (p *CircuitSAT) NumVariables() int            { return len(p.vars) }
func (p *CircuitSAT) NumFlavors() int              { return 2 }
func (p *CircuitSAT) Direction() problem.Direction { return problem.Maximize }

func (p *CircuitSAT) Size() problem.SizeProfile {
	return problem.Size("num_variables", len(p.vars), "num_assignments", len(p.circuit))
}

func (p *CircuitSAT) Evaluate(c config.Config) problem.Evaluation[int] {
	problem.MustValidate[int](p, c)
	model := p.Model(c)
	nb := 0
	for _, a := range p.circuit {
		if a.Satisfied(model) {
			nb++
		}
	}
	return problem.Evaluation[int]{Objective: nb, Feasible: nb == len(p.circuit)}
}

// IsSatisfied returns true iff c satisfies every assignment.
func (p *CircuitSAT) IsSatisfied(c config.Config) bool {
	return p.Evaluate(c).Feasible
}
