package rules

import (
	"fmt"

	"github.com/crillab/reductions/circuit"
	"github.com/crillab/reductions/config"
	"github.com/crillab/reductions/gadget"
	"github.com/crillab/reductions/ising"
	"github.com/crillab/reductions/problem"
)

// A SpinGadget is a small spin glass whose ground states are the allowed rows of Table.
// Spins beyond Table's variables are ancillas.
type SpinGadget struct {
	Interactions []ising.Interaction[int]
	Fields       []int
	Table        gadget.TruthTable
}

// NbSpins returns the number of spins of the gadget, ancillas included.
func (g SpinGadget) NbSpins() int { return len(g.Fields) }

// Spin gadgets for logic gates. Inputs come first, then the output, then ancillas.
var (
	AndSpinGadget = SpinGadget{
		Interactions: []ising.Interaction[int]{{I: 0, J: 1, Coupling: 1}, {I: 0, J: 2, Coupling: -2}, {I: 1, J: 2, Coupling: -2}},
		Fields:       []int{-1, -1, 2},
		Table:        gadget.And(2),
	}
	OrSpinGadget = SpinGadget{
		Interactions: []ising.Interaction[int]{{I: 0, J: 1, Coupling: 1}, {I: 0, J: 2, Coupling: -2}, {I: 1, J: 2, Coupling: -2}},
		Fields:       []int{1, 1, -2},
		Table:        gadget.Or(2),
	}
	NotSpinGadget = SpinGadget{
		Interactions: []ising.Interaction[int]{{I: 0, J: 1, Coupling: 1}},
		Fields:       []int{0, 0},
		Table:        gadget.Not(),
	}
	XorSpinGadget = SpinGadget{
		Interactions: []ising.Interaction[int]{
			{I: 0, J: 1, Coupling: 1}, {I: 0, J: 2, Coupling: -1}, {I: 0, J: 3, Coupling: -2},
			{I: 1, J: 2, Coupling: -1}, {I: 1, J: 3, Coupling: -2}, {I: 2, J: 3, Coupling: 2},
		},
		Fields: []int{-1, -1, 1, 2},
		Table:  gadget.Xor(2),
	}
	FalseSpinGadget = SpinGadget{Fields: []int{1}, Table: gadget.Const(false)}
	TrueSpinGadget  = SpinGadget{Fields: []int{-1}, Table: gadget.Const(true)}
)

// tieCoupling is the ferromagnetic coupling forcing an output variable to the value of its expression.
const tieCoupling = -4

type pair struct{ i, j int }

// spinBuilder accumulates gadgets into a single spin glass.
type spinBuilder struct {
	fields    []int
	couplings map[pair]int
	order     []pair
	vars      map[string]int
}

func newSpinBuilder() *spinBuilder {
	return &spinBuilder{couplings: map[pair]int{}, vars: map[string]int{}}
}

func (b *spinBuilder) spin() int {
	b.fields = append(b.fields, 0)
	return len(b.fields) - 1
}

func (b *spinBuilder) variable(name string) int {
	if s, ok := b.vars[name]; ok {
		return s
	}
	s := b.spin()
	b.vars[name] = s
	return s
}

// couple adds w to the coupling of spins i and j.
// A spin coupled with itself only shifts every energy by w, so the term is dropped.
func (b *spinBuilder) couple(i, j, w int) {
	if i == j {
		return
	}
	if i > j {
		i, j = j, i
	}
	p := pair{i, j}
	if _, ok := b.couplings[p]; !ok {
		b.order = append(b.order, p)
	}
	b.couplings[p] += w
}

// place adds g, its local spin k being mapped to spins[k].
func (b *spinBuilder) place(g SpinGadget, spins []int) {
	if len(spins) != g.NbSpins() {
		panic(fmt.Errorf("gadget has %d spins, got %d", g.NbSpins(), len(spins)))
	}
	for _, it := range g.Interactions {
		b.couple(spins[it.I], spins[it.J], it.Coupling)
	}
	for k, h := range g.Fields {
		b.fields[spins[k]] += h
	}
}

// gate places g with the given inputs, allocating its output and ancillas, and returns its output.
func (b *spinBuilder) gate(g SpinGadget, inputs ...int) int {
	spins := append([]int(nil), inputs...)
	for len(spins) < g.NbSpins() {
		spins = append(spins, b.spin())
	}
	b.place(g, spins)
	return spins[len(inputs)]
}

func (b *spinBuilder) expr(e circuit.Expr) int {
	switch e.Op {
	case circuit.OpVar:
		return b.variable(e.Name)
	case circuit.OpConst:
		if e.Value {
			return b.gate(TrueSpinGadget)
		}
		return b.gate(FalseSpinGadget)
	case circuit.OpNot:
		return b.gate(NotSpinGadget, b.expr(e.Args[0]))
	}
	var g SpinGadget
	switch e.Op {
	case circuit.OpAnd:
		g = AndSpinGadget
	case circuit.OpOr:
		g = OrSpinGadget
	case circuit.OpXor:
		g = XorSpinGadget
	default:
		panic(fmt.Errorf("unexpected operator %v", e.Op))
	}
	if len(e.Args) == 0 {
		// Empty conjunctions are true, other empty gates are false.
		if e.Op == circuit.OpAnd {
			return b.gate(TrueSpinGadget)
		}
		return b.gate(FalseSpinGadget)
	}
	out := b.expr(e.Args[0])
	for _, arg := range e.Args[1:] {
		out = b.gate(g, out, b.expr(arg))
	}
	return out
}

func (b *spinBuilder) build() *ising.SpinGlass[int] {
	interactions := make([]ising.Interaction[int], 0, len(b.order))
	for _, p := range b.order {
		if w := b.couplings[p]; w != 0 {
			interactions = append(interactions, ising.Interaction[int]{I: p.i, J: p.j, Coupling: w})
		}
	}
	sg, err := ising.NewSpinGlass(interactions, b.fields)
	if err != nil {
		panic(fmt.Errorf("invalid spin glass: %w", err))
	}
	return sg
}

// CircuitToSpinGlass reduces a circuit satisfiability problem to a spin glass whose ground states
// are the satisfying assignments of the circuit, extended with the values of intermediate gates.
type CircuitToSpinGlass struct {
	src  *circuit.CircuitSAT
	tgt  *ising.SpinGlass[int]
	spin []int // Spin of each source variable
}

// ReduceCircuitToSpinGlass returns the reduction of p to a spin glass.
func ReduceCircuitToSpinGlass(p *circuit.CircuitSAT) *CircuitToSpinGlass {
	b := newSpinBuilder()
	for _, a := range p.Circuit() {
		out := b.expr(a.Expr)
		for _, name := range a.Outputs {
			if s := b.variable(name); s != out {
				b.couple(s, out, tieCoupling)
			}
		}
	}
	names := p.VarNames()
	spin := make([]int, len(names))
	for i, name := range names {
		spin[i] = b.variable(name)
	}
	return &CircuitToSpinGlass{src: p, tgt: b.build(), spin: spin}
}

func (r *CircuitToSpinGlass) Target() *ising.SpinGlass[int] { return r.tgt }

func (r *CircuitToSpinGlass) ExtractSolution(c config.Config) config.Config {
	res := make(config.Config, len(r.spin))
	for i, s := range r.spin {
		if s < len(c) {
			res[i] = c[s]
		}
	}
	return res
}

func (r *CircuitToSpinGlass) SourceSize() problem.SizeProfile { return r.src.Size() }
func (r *CircuitToSpinGlass) TargetSize() problem.SizeProfile { return r.tgt.Size() }
