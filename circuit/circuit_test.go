package circuit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crillab/reductions/bruteforce"
	"github.com/crillab/reductions/config"
	"github.com/crillab/reductions/problem"
)

func TestEval(t *testing.T) {
	e := Or(And(Var("a"), Not(Var("b"))), Xor(Var("b"), Var("c"), Const(true)))
	model := map[string]bool{"a": false, "b": true, "c": true}
	assert.True(t, e.Eval(model))
	model["c"] = false
	assert.False(t, e.Eval(model))
	assert.Equal(t, []string{"a", "b", "c"}, e.Vars())
	assert.True(t, And().Eval(nil))
	assert.False(t, Or().Eval(nil))
	assert.Panics(t, func() { Var("z").Eval(model) })
}

func TestParseExpr(t *testing.T) {
	e, err := ParseExpr(strings.NewReader("a & !b | b ^ c ^ true"))
	require.NoError(t, err)
	assert.Equal(t, Or(And(Var("a"), Not(Var("b"))), Xor(Var("b"), Var("c"), Const(true))), e)
	assert.Equal(t, "((a & !b) | (b ^ c ^ true))", e.String())

	e, err = ParseExpr(strings.NewReader("!(x1 | 0)"))
	require.NoError(t, err)
	assert.Equal(t, Not(Or(Var("x1"), Const(false))), e)

	for _, bad := range []string{"", "a &", "(a | b", "a b", "| a", "a & )", "!"} {
		_, err := ParseExpr(strings.NewReader(bad))
		assert.ErrorIs(t, err, ErrExpr, "input %q", bad)
	}
}

func TestParseCircuit(t *testing.T) {
	c, err := ParseCircuit(strings.NewReader(`
# half adder
s = a ^ b
carry = a & b
`))
	require.NoError(t, err)
	require.Len(t, c, 2)
	assert.Equal(t, Assign(Xor(Var("a"), Var("b")), "s"), c[0])
	assert.Equal(t, []string{"a", "b", "carry", "s"}, c.Vars())
	assert.Equal(t, "s = (a ^ b)\ncarry = (a & b)", c.String())

	_, err = ParseCircuit(strings.NewReader("a & b\n"))
	assert.ErrorIs(t, err, ErrAssignment)
	_, err = ParseAssignment("1x = a")
	assert.ErrorIs(t, err, ErrExpr)
}

func TestCircuitSAT(t *testing.T) {
	p := MustNew(
		Assign(And(Var("x"), Var("y")), "c"),
		Assign(Const(true), "c"),
	)
	assert.Equal(t, []string{"c", "x", "y"}, p.VarNames())
	sols := bruteforce.FindAllSatisfying(p)
	assert.Equal(t, []config.Config{{1, 1, 1}}, sols)
	assert.Equal(t, problem.Infeasible(1), p.Evaluate(config.Config{1, 0, 1}))
	i, ok := p.VarIndex("y")
	require.True(t, ok)
	assert.Equal(t, 2, i)
}

func TestCircuitSATMultipleOutputs(t *testing.T) {
	p := MustNew(Assign(Or(Var("a"), Var("b")), "o1", "o2"))
	sols := bruteforce.FindAllSatisfying(p)
	assert.Len(t, sols, 4)
	for _, s := range sols {
		m := p.Model(s)
		assert.Equal(t, m["a"] || m["b"], m["o1"])
		assert.Equal(t, m["o1"], m["o2"])
	}
}

func TestNewErrors(t *testing.T) {
	_, err := New(Circuit{{Expr: Var("a")}})
	assert.ErrorIs(t, err, ErrAssignment)
	_, err = New(Circuit{Assign(Expr{Op: OpNot}, "o")})
	assert.ErrorIs(t, err, ErrExpr)
	_, err = New(Circuit{Assign(Var(""), "o")})
	assert.ErrorIs(t, err, ErrExpr)
}
