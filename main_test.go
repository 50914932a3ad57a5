package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crillab/reductions/circuit"
	"github.com/crillab/reductions/config"
	"github.com/crillab/reductions/instance"
	"github.com/crillab/reductions/problem"
	"github.com/crillab/reductions/sat"
)

func execute(t *testing.T, args ...string) string {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), "reductions %v", args)
	return out.String()
}

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestListAndPath(t *testing.T) {
	assert.Contains(t, execute(t, "list"), "SATToKSAT: Satisfiability -> KSatisfiability")
	assert.Equal(t,
		"CircuitToSpinGlass: CircuitSAT -> SpinGlass\nSpinGlassToMaxCut: SpinGlass -> MaxCut\n",
		execute(t, "path", "circuitsat", "maxcut"))
}

func TestReduce(t *testing.T) {
	path := writeFile(t, "f.cnf", "p cnf 3 2\n1 -2 0\n2 0\n")
	out := execute(t, "reduce", path, "--to", "KSatisfiability")
	inst, err := instance.DecodeBytes([]byte(out))
	require.NoError(t, err)
	k, ok := inst.(*sat.KSatisfiability)
	require.True(t, ok, "got %T", inst)
	assert.Equal(t, 3, k.K())
	assert.Equal(t, problem.KSatisfiability, k.Kind())
}

func TestSolve(t *testing.T) {
	factoring := writeFile(t, "f.yaml", "kind: Factoring\nspec: {m: 2, n: 2, target: 6}\n")
	circuit := writeFile(t, "c.circ", "# half adder\ns = x ^ y\nc = x & y\nc = true\n")
	unsat := writeFile(t, "u.cnf", "p cnf 1 2\n1 0\n-1 0\n")
	unsatCircuit := writeFile(t, "u.circ", "c = x & y\nc = false\nx = true\ny = true\n")
	for _, backend := range []string{"bruteforce", "gophersat", "gini"} {
		t.Run(backend, func(t *testing.T) {
			out := execute(t, "solve", circuit, "--backend", backend)
			assert.Contains(t, out, "s OPTIMUM FOUND")
			// c, s, x, y
			assert.Contains(t, out, "v [1 0 1 1]")

			out = execute(t, "solve", unsat, "--backend", backend)
			assert.Contains(t, out, "s UNSATISFIABLE")

			out = execute(t, "solve", unsatCircuit, "--backend", backend)
			assert.Contains(t, out, "s UNSATISFIABLE")
			assert.NotContains(t, out, "OPTIMUM")
		})
	}
	for _, backend := range []string{"bruteforce", "gophersat"} {
		out := execute(t, "solve", factoring, "--backend", backend)
		assert.Contains(t, out, "s OPTIMUM FOUND", backend)
		assert.Contains(t, out, "c 0\n", backend)
	}
}

func TestFeasible(t *testing.T) {
	x, y := circuit.Var("x"), circuit.Var("y")
	p := circuit.MustNew(
		circuit.Assign(circuit.And(x, y), "c"),
		circuit.Assign(circuit.Const(false), "c"),
		circuit.Assign(circuit.Const(true), "x"),
		circuit.Assign(circuit.Const(true), "y"),
	)
	// c, x, y
	ok, err := feasible(p, config.Config{0, 0, 1})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = feasible(circuit.MustNew(circuit.Assign(circuit.And(x, y), "c")), config.Config{1, 1, 1})
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = feasible(42, config.Config{})
	assert.Error(t, err)
}

func TestCoreAndMaxSAT(t *testing.T) {
	path := writeFile(t, "u.cnf", "p cnf 2 4\n1 2 0\n-1 0\n-2 0\n1 -2 0\n")
	out := execute(t, "core", path)
	assert.Contains(t, out, "c 3/4 clauses in core")

	redundant := writeFile(t, "r.cnf", "p cnf 2 4\n1 0\n1 2 0\n-1 0\n2 0\n")
	out = execute(t, "core", redundant, "--minimal")
	assert.Contains(t, out, "c 2/4 clauses in core")
	assert.Contains(t, out, "0: (1)\n2: (-1)\n")
	minimal = false

	weighted := writeFile(t, "w.wcnf", "p wcnf 2 3\n4 1 0\n1 -1 0\n3 -1 2 0\n")
	out = execute(t, "maxsat", weighted)
	assert.Contains(t, out, "o 1")
	assert.Contains(t, out, "v [1 1]")
}
