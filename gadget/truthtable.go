package gadget

import (
	"fmt"
	"strings"
)

// A TruthTable tells, for each assignment of its n variables, whether the assignment is allowed.
// Rows are indexed by assignment: bit j of the row index is the value of variable j.
type TruthTable struct {
	n       int
	allowed []bool
}

// FromFunc returns the truth table of n variables whose allowed rows are those for which f returns true.
// It panics if n is negative or greater than 20.
func FromFunc(n int, f func(vals []bool) bool) TruthTable {
	if n < 0 || n > 20 {
		panic(fmt.Errorf("invalid truth table arity %d", n))
	}
	tt := TruthTable{n: n, allowed: make([]bool, 1<<n)}
	vals := make([]bool, n)
	for row := range tt.allowed {
		decode(row, vals)
		tt.allowed[row] = f(vals)
	}
	return tt
}

// FromRows returns the truth table of n variables allowing exactly the given rows.
func FromRows(n int, rows ...int) TruthTable {
	tt := FromFunc(n, func([]bool) bool { return false })
	for _, r := range rows {
		tt.allowed[r] = true
	}
	return tt
}

func decode(row int, vals []bool) {
	for j := range vals {
		vals[j] = row&(1<<j) != 0
	}
}

// NumVars returns the number of variables of the table.
func (tt TruthTable) NumVars() int { return tt.n }

// Allowed returns true iff the given assignment is allowed.
// It panics if len(vals) != tt.NumVars().
func (tt TruthTable) Allowed(vals []bool) bool {
	if len(vals) != tt.n {
		panic(fmt.Errorf("expected %d values, got %d", tt.n, len(vals)))
	}
	row := 0
	for j, v := range vals {
		if v {
			row |= 1 << j
		}
	}
	return tt.allowed[row]
}

// Rows returns the assignments that are allowed, in row order.
func (tt TruthTable) Rows() [][]bool {
	return tt.rows(true)
}

// Forbidden returns the assignments that are forbidden, in row order.
func (tt TruthTable) Forbidden() [][]bool {
	return tt.rows(false)
}

func (tt TruthTable) rows(allowed bool) [][]bool {
	var res [][]bool
	for row, ok := range tt.allowed {
		if ok == allowed {
			vals := make([]bool, tt.n)
			decode(row, vals)
			res = append(res, vals)
		}
	}
	return res
}

func (tt TruthTable) String() string {
	var sb strings.Builder
	for row, ok := range tt.allowed {
		for j := 0; j < tt.n; j++ {
			if row&(1<<j) != 0 {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		if ok {
			sb.WriteString(" 1\n")
		} else {
			sb.WriteString(" 0\n")
		}
	}
	return sb.String()
}

// Gate returns the table of an n-input gate: variables 0..n-1 are the inputs and variable n is the output.
// A row is allowed iff the output equals f(inputs).
func Gate(n int, f func(in []bool) bool) TruthTable {
	return FromFunc(n+1, func(vals []bool) bool {
		return vals[n] == f(vals[:n])
	})
}

// And is the table of an n-input AND gate.
func And(n int) TruthTable {
	return Gate(n, func(in []bool) bool {
		for _, b := range in {
			if !b {
				return false
			}
		}
		return true
	})
}

// Or is the table of an n-input OR gate.
func Or(n int) TruthTable {
	return Gate(n, func(in []bool) bool {
		for _, b := range in {
			if b {
				return true
			}
		}
		return false
	})
}

// Xor is the table of an n-input XOR gate.
func Xor(n int) TruthTable {
	return Gate(n, func(in []bool) bool {
		res := false
		for _, b := range in {
			res = res != b
		}
		return res
	})
}

// Not is the table of a NOT gate: variable 1 is the negation of variable 0.
func Not() TruthTable {
	return Gate(1, func(in []bool) bool { return !in[0] })
}

// Equal is the table stating that both its variables have the same value.
func Equal() TruthTable {
	return Gate(1, func(in []bool) bool { return in[0] })
}

// Const is the table of a single variable forced to b.
func Const(b bool) TruthTable {
	return FromFunc(1, func(vals []bool) bool { return vals[0] == b })
}
