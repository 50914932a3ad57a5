package circuit

import (
	"fmt"
	"sort"
	"strings"
)

// Op is the operator at the root of an expression.
type Op byte

// Operators.
const (
	OpVar Op = iota
	OpConst
	OpNot
	OpAnd
	OpOr
	OpXor
)

var opNames = [...]string{OpVar: "var", OpConst: "const", OpNot: "not", OpAnd: "and", OpOr: "or", OpXor: "xor"}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", byte(op))
}

// ParseOp returns the operator called s.
func ParseOp(s string) (Op, error) {
	for i, name := range opNames {
		if name == s {
			return Op(i), nil
		}
	}
	return 0, fmt.Errorf("unknown operator %q", s)
}

// An Expr is a boolean expression over named variables.
// Name is only meaningful for OpVar, Value for OpConst, and Args for the other operators
// (exactly one argument for OpNot).
type Expr struct {
	Op    Op
	Name  string
	Value bool
	Args  []Expr
}

// Var returns the expression made of the variable called name.
func Var(name string) Expr { return Expr{Op: OpVar, Name: name} }

// Const returns the constant expression b.
func Const(b bool) Expr { return Expr{Op: OpConst, Value: b} }

// Not returns the negation of e.
func Not(e Expr) Expr { return Expr{Op: OpNot, Args: []Expr{e}} }

// And returns the conjunction of args. An empty conjunction is true.
func And(args ...Expr) Expr { return Expr{Op: OpAnd, Args: args} }

// Or returns the disjunction of args. An empty disjunction is false.
func Or(args ...Expr) Expr { return Expr{Op: OpOr, Args: args} }

// Xor returns the exclusive disjunction of args. An empty xor is false.
func Xor(args ...Expr) Expr { return Expr{Op: OpXor, Args: args} }

// Eval evaluates e under the given model.
// It panics if the model lacks a binding for a variable of e.
func (e Expr) Eval(model map[string]bool) bool {
	switch e.Op {
	case OpVar:
		b, ok := model[e.Name]
		if !ok {
			panic(fmt.Errorf("model lacks binding for variable %s", e.Name))
		}
		return b
	case OpConst:
		return e.Value
	case OpNot:
		return !e.Args[0].Eval(model)
	case OpAnd:
		for _, a := range e.Args {
			if !a.Eval(model) {
				return false
			}
		}
		return true
	case OpOr:
		for _, a := range e.Args {
			if a.Eval(model) {
				return true
			}
		}
		return false
	case OpXor:
		res := false
		for _, a := range e.Args {
			res = res != a.Eval(model)
		}
		return res
	default:
		panic(fmt.Errorf("invalid operator %v", e.Op))
	}
}

// Validate checks that e is well formed.
func (e Expr) Validate() error {
	switch e.Op {
	case OpVar:
		if e.Name == "" {
			return fmt.Errorf("%w: empty variable name", ErrExpr)
		}
	case OpConst:
	case OpNot:
		if len(e.Args) != 1 {
			return fmt.Errorf("%w: negation has %d arguments", ErrExpr, len(e.Args))
		}
	case OpAnd, OpOr, OpXor:
	default:
		return fmt.Errorf("%w: invalid operator %v", ErrExpr, e.Op)
	}
	for _, a := range e.Args {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Vars returns the sorted names of the variables appearing in e.
func (e Expr) Vars() []string {
	set := map[string]struct{}{}
	e.collect(set)
	return sortedKeys(set)
}

func (e Expr) collect(set map[string]struct{}) {
	if e.Op == OpVar {
		set[e.Name] = struct{}{}
	}
	for _, a := range e.Args {
		a.collect(set)
	}
}

func sortedKeys(set map[string]struct{}) []string {
	res := make([]string, 0, len(set))
	for name := range set {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

func (e Expr) String() string {
	switch e.Op {
	case OpVar:
		return e.Name
	case OpConst:
		if e.Value {
			return "true"
		}
		return "false"
	case OpNot:
		return "!" + e.Args[0].String()
	default:
		sep := map[Op]string{OpAnd: " & ", OpOr: " | ", OpXor: " ^ "}[e.Op]
		if len(e.Args) == 0 {
			return Const(e.Eval(nil)).String()
		}
		strs := make([]string, len(e.Args))
		for i, a := range e.Args {
			strs[i] = a.String()
		}
		return "(" + strings.Join(strs, sep) + ")"
	}
}
