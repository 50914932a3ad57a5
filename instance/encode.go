package instance

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/crillab/reductions/circuit"
	"github.com/crillab/reductions/factoring"
	"github.com/crillab/reductions/graph"
	"github.com/crillab/reductions/ilp"
	"github.com/crillab/reductions/ising"
	"github.com/crillab/reductions/problem"
	"github.com/crillab/reductions/sat"
)

// Encode writes inst to w as a YAML document.
// Both integer and floating-point variants of weighted families are accepted.
func Encode(w io.Writer, inst any) error {
	kind, spec, err := specOf(inst)
	if err != nil {
		return err
	}
	doc := Document{Kind: kind.String()}
	if err := doc.Spec.Encode(spec); err != nil {
		return errors.Wrapf(err, "could not encode %v spec", kind)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return errors.Wrap(err, "could not write instance document")
	}
	return enc.Close()
}

// EncodeBytes is like Encode but returns the document.
func EncodeBytes(inst any) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, inst); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func specOf(inst any) (problem.Kind, any, error) {
	switch p := inst.(type) {
	case *sat.KSatisfiability:
		return problem.KSatisfiability, satSpec{NumVars: p.NbVars(), K: p.K(), Clauses: clauseInts(&p.Satisfiability)}, nil
	case *sat.Satisfiability:
		return problem.Satisfiability, satSpecOf(p), nil
	case *ilp.ILP:
		return problem.ILP, ilpSpecOf(p), nil
	case *ising.QUBO[int]:
		return problem.QUBO, quboSpecOf(p), nil
	case *ising.QUBO[float64]:
		return problem.QUBO, quboSpecOf(p), nil
	case *ising.SpinGlass[int]:
		return problem.SpinGlass, spinGlassSpecOf(p), nil
	case *ising.SpinGlass[float64]:
		return problem.SpinGlass, spinGlassSpecOf(p), nil
	case *graph.MaxCut[int]:
		return problem.MaxCut, maxCutSpecOf(p), nil
	case *graph.MaxCut[float64]:
		return problem.MaxCut, maxCutSpecOf(p), nil
	case *graph.MaximumIndependentSet[int]:
		return problem.MaximumIndependentSet, vertexSpecOf(p.Graph(), p.Weights()), nil
	case *graph.MaximumIndependentSet[float64]:
		return problem.MaximumIndependentSet, vertexSpecOf(p.Graph(), p.Weights()), nil
	case *graph.MinimumVertexCover[int]:
		return problem.MinimumVertexCover, vertexSpecOf(p.Graph(), p.Weights()), nil
	case *graph.MinimumVertexCover[float64]:
		return problem.MinimumVertexCover, vertexSpecOf(p.Graph(), p.Weights()), nil
	case *graph.KColoring:
		s := vertexSpecOf[int](p.Graph(), nil)
		s.K = p.K()
		return problem.KColoring, s, nil
	case *circuit.CircuitSAT:
		var s circuitSpec
		for _, a := range p.Circuit() {
			s.Assignments = append(s.Assignments, a.String())
		}
		return problem.CircuitSAT, s, nil
	case *factoring.Factoring:
		return problem.Factoring, factoringSpec{M: p.M(), N: p.N(), Target: p.Target()}, nil
	}
	return 0, nil, errors.Wrapf(ErrUnsupported, "%T", inst)
}

func clauseInts(s *sat.Satisfiability) [][]int {
	res := make([][]int, s.NbClauses())
	for i, c := range s.Clauses() {
		res[i] = c
	}
	return res
}

// satSpecOf omits weights when they are all 1.
func satSpecOf(s *sat.Satisfiability) satSpec {
	res := satSpec{NumVars: s.NbVars(), Clauses: clauseInts(s)}
	for i := 0; i < s.NbClauses(); i++ {
		if s.Weight(i) != 1 {
			res.Weights = make([]int, s.NbClauses())
			for j := range res.Weights {
				res.Weights[j] = s.Weight(j)
			}
			break
		}
	}
	return res
}

func termSpecs(ts []ilp.Term) []termSpec {
	res := make([]termSpec, len(ts))
	for i, t := range ts {
		res[i] = termSpec{Var: t.Var, Coef: t.Coef}
	}
	return res
}

func ilpSpecOf(p *ilp.ILP) ilpSpec {
	res := ilpSpec{Sense: p.Direction().String(), Objective: termSpecs(p.Objective())}
	for i := 0; i < p.NumVariables(); i++ {
		b := p.Bounds(i)
		res.Bounds = append(res.Bounds, []int64{b.Lower, b.Upper})
	}
	for _, c := range p.Constraints() {
		res.Constraints = append(res.Constraints, constraintSpec{Terms: termSpecs(c.Terms), Cmp: c.Cmp.String(), RHS: c.RHS})
	}
	return res
}

func floats[V problem.Numeric](vs []V) []float64 {
	if vs == nil {
		return nil
	}
	res := make([]float64, len(vs))
	for i, v := range vs {
		res[i] = float64(v)
	}
	return res
}

func quboSpecOf[V problem.Numeric](q *ising.QUBO[V]) quboSpec {
	m := q.Matrix()
	res := quboSpec{Matrix: make([][]float64, len(m))}
	for i, row := range m {
		res.Matrix[i] = floats(row)
	}
	return res
}

func spinGlassSpecOf[V problem.Numeric](sg *ising.SpinGlass[V]) spinGlassSpec {
	res := spinGlassSpec{Fields: floats(sg.Fields())}
	for _, it := range sg.Interactions() {
		res.Interactions = append(res.Interactions, interactionSpec{I: it.I, J: it.J, Coupling: float64(it.Coupling)})
	}
	return res
}

func edgePairs(g *graph.Graph) [][]int {
	res := make([][]int, g.NbEdges())
	for i, e := range g.Edges() {
		res[i] = []int{e.U, e.V}
	}
	return res
}

func vertexSpecOf[V problem.Numeric](g *graph.Graph, weights []V) graphSpec {
	return graphSpec{NumVertices: g.NbVertices(), Edges: edgePairs(g), Weights: floats(weights)}
}

func maxCutSpecOf[V problem.Numeric](p *graph.MaxCut[V]) graphSpec {
	g := p.Graph()
	weights := make([]float64, g.NbEdges())
	for i := range weights {
		weights[i] = float64(p.Weight(i))
	}
	return graphSpec{NumVertices: g.NbVertices(), Edges: edgePairs(g), Weights: weights}
}
