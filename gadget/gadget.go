// Package gadget provides the building block shared by reductions: allocating fresh (ancilla) variables
// and emitting, in the target formalism, one constraint per forbidden row of a small truth table.
package gadget

import "fmt"

// An Allocator hands out fresh variable numbers. It is a value: allocating returns an updated allocator
// and leaves the receiver untouched, so that the counter can be threaded explicitly through a construction.
type Allocator struct {
	next int
}

// NewAllocator returns an allocator whose first fresh variable is first.
func NewAllocator(first int) Allocator {
	return Allocator{next: first}
}

// Next returns the number of the next fresh variable.
func (a Allocator) Next() int { return a.next }

// Fresh returns a fresh variable and the updated allocator.
func (a Allocator) Fresh() (int, Allocator) {
	return a.next, Allocator{next: a.next + 1}
}

// FreshN returns k fresh variables and the updated allocator.
func (a Allocator) FreshN(k int) ([]int, Allocator) {
	res := make([]int, k)
	for i := range res {
		res[i] = a.next + i
	}
	return res, Allocator{next: a.next + k}
}

// Emit builds one constraint per forbidden row of tt, in row order.
// vars are the target variables associated with the table's variables.
// exclude builds the constraint ruling out the given row.
func Emit[C any](tt TruthTable, vars []int, exclude func(row []bool, vars []int) C) []C {
	if len(vars) != tt.NumVars() {
		panic(fmt.Errorf("table has %d variables, got %d", tt.NumVars(), len(vars)))
	}
	var res []C
	for _, row := range tt.Forbidden() {
		res = append(res, exclude(row, vars))
	}
	return res
}

// Clauses returns the CNF encoding of tt on the given DIMACS variables (which must be strictly positive):
// one clause per forbidden row, falsified only by that row.
func Clauses(tt TruthTable, vars []int) [][]int {
	return Emit(tt, vars, func(row []bool, vars []int) []int {
		clause := make([]int, len(vars))
		for j, v := range vars {
			if row[j] {
				clause[j] = -v
			} else {
				clause[j] = v
			}
		}
		return clause
	})
}

// An Inequality is the linear constraint sum(Coeffs[i] * x[Vars[i]]) >= AtLeast over 0/1 variables.
type Inequality struct {
	Vars    []int
	Coeffs  []int
	AtLeast int
}

// Holds returns true iff the inequality is satisfied by vals, indexed by variable.
func (in Inequality) Holds(vals func(v int) int) bool {
	sum := 0
	for i, v := range in.Vars {
		sum += in.Coeffs[i] * vals(v)
	}
	return sum >= in.AtLeast
}

// Inequalities returns the linear encoding of tt over 0/1 variables: one inequality per forbidden row,
// violated only by that row.
// For a row r, the inequality is sum_{r_j=0} x_j - sum_{r_j=1} x_j >= 1 - |{j : r_j=1}|.
func Inequalities(tt TruthTable, vars []int) []Inequality {
	return Emit(tt, vars, func(row []bool, vars []int) Inequality {
		in := Inequality{Vars: append([]int(nil), vars...), Coeffs: make([]int, len(vars)), AtLeast: 1}
		for j, b := range row {
			if b {
				in.Coeffs[j] = -1
				in.AtLeast--
			} else {
				in.Coeffs[j] = 1
			}
		}
		return in
	})
}
