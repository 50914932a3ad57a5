package rules

import (
	"fmt"

	"github.com/crillab/reductions/circuit"
	"github.com/crillab/reductions/config"
	"github.com/crillab/reductions/gadget"
	"github.com/crillab/reductions/problem"
	"github.com/crillab/reductions/reduction"
	"github.com/crillab/reductions/sat"
)

// CircuitToSAT reduces a circuit satisfiability problem to a CNF formula (Tseitin transformation).
// Variable i of the circuit is DIMACS variable i+1; every gate gets a fresh variable
// constrained by the clauses of its truth table.
type CircuitToSAT struct {
	src *circuit.CircuitSAT
	tgt *sat.Satisfiability
}

type tseitin struct {
	src     *circuit.CircuitSAT
	alloc   gadget.Allocator
	clauses []sat.Clause
}

func (t *tseitin) emit(tt gadget.TruthTable, vars ...int) {
	for _, c := range gadget.Clauses(tt, vars) {
		t.clauses = append(t.clauses, c)
	}
}

func (t *tseitin) gate(tt gadget.TruthTable, inputs ...int) int {
	var out int
	out, t.alloc = t.alloc.Fresh()
	t.emit(tt, append(inputs, out)...)
	return out
}

// variable returns the DIMACS variable of the given circuit variable.
func (t *tseitin) variable(name string) int {
	i, ok := t.src.VarIndex(name)
	if !ok {
		panic(fmt.Errorf("unknown variable %q", name))
	}
	return i + 1
}

func (t *tseitin) expr(e circuit.Expr) int {
	switch e.Op {
	case circuit.OpVar:
		return t.variable(e.Name)
	case circuit.OpConst:
		return t.gate(gadget.Const(e.Value))
	case circuit.OpNot:
		return t.gate(gadget.Not(), t.expr(e.Args[0]))
	}
	var tt gadget.TruthTable
	switch e.Op {
	case circuit.OpAnd:
		tt = gadget.And(2)
	case circuit.OpOr:
		tt = gadget.Or(2)
	case circuit.OpXor:
		tt = gadget.Xor(2)
	default:
		panic(fmt.Errorf("unexpected operator %v", e.Op))
	}
	if len(e.Args) == 0 {
		return t.gate(gadget.Const(e.Op == circuit.OpAnd))
	}
	// Wide gates are chained so that the number of clauses stays linear.
	out := t.expr(e.Args[0])
	for _, arg := range e.Args[1:] {
		out = t.gate(tt, out, t.expr(arg))
	}
	return out
}

// ReduceCircuitToSAT returns the reduction of p to a CNF formula.
func ReduceCircuitToSAT(p *circuit.CircuitSAT) *CircuitToSAT {
	t := tseitin{src: p, alloc: gadget.NewAllocator(p.NumVariables() + 1)}
	for _, a := range p.Circuit() {
		out := t.expr(a.Expr)
		for _, name := range a.Outputs {
			if v := t.variable(name); v != out {
				t.emit(gadget.Equal(), out, v)
			}
		}
	}
	tgt, err := sat.New(t.alloc.Next()-1, t.clauses)
	if err != nil {
		panic(fmt.Errorf("invalid Tseitin formula: %w", err))
	}
	return &CircuitToSAT{src: p, tgt: tgt}
}

func (r *CircuitToSAT) Target() *sat.Satisfiability { return r.tgt }

// ExtractSolution drops the gate variables.
func (r *CircuitToSAT) ExtractSolution(c config.Config) config.Config {
	return reduction.Truncate(c, r.src.NumVariables())
}

func (r *CircuitToSAT) SourceSize() problem.SizeProfile { return r.src.Size() }
func (r *CircuitToSAT) TargetSize() problem.SizeProfile { return r.tgt.Size() }
