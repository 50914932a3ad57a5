// Package instance reads and writes problem instances as YAML documents.
//
// A document has two keys: kind, the name of the problem family, and spec, whose layout depends
// on the family:
//
//	kind: Satisfiability
//	spec:
//	  num_vars: 3
//	  clauses: [[1, -2], [2, 3]]
//
// Weighted families (QUBO, SpinGlass, MaxCut, MaximumIndependentSet, MinimumVertexCover) are
// decoded with float64 weights; other families have a single concrete type.
package instance

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/crillab/reductions/circuit"
	"github.com/crillab/reductions/factoring"
	"github.com/crillab/reductions/graph"
	"github.com/crillab/reductions/ilp"
	"github.com/crillab/reductions/ising"
	"github.com/crillab/reductions/problem"
	"github.com/crillab/reductions/sat"
)

// ErrUnsupported is returned when encoding a value that is not a known instance type.
var ErrUnsupported = errors.New("instance: unsupported type")

// A Document is the YAML form of an instance.
type Document struct {
	Kind string    `yaml:"kind"`
	Spec yaml.Node `yaml:"spec"`
}

type satSpec struct {
	NumVars int     `yaml:"num_vars"`
	K       int     `yaml:"k,omitempty"`
	Clauses [][]int `yaml:"clauses,flow"`
	Weights []int   `yaml:"weights,omitempty,flow"`
}

type termSpec struct {
	Var  int     `yaml:"var"`
	Coef float64 `yaml:"coef"`
}

type constraintSpec struct {
	Terms []termSpec `yaml:"terms,flow"`
	Cmp   string     `yaml:"cmp"`
	RHS   float64    `yaml:"rhs"`
}

type ilpSpec struct {
	Sense       string           `yaml:"sense"`
	Bounds      [][]int64        `yaml:"bounds,flow"`
	Constraints []constraintSpec `yaml:"constraints"`
	Objective   []termSpec       `yaml:"objective,flow"`
}

type quboSpec struct {
	Matrix [][]float64 `yaml:"matrix,flow"`
}

type interactionSpec struct {
	I        int     `yaml:"i"`
	J        int     `yaml:"j"`
	Coupling float64 `yaml:"coupling"`
}

type spinGlassSpec struct {
	Fields       []float64         `yaml:"fields,flow"`
	Interactions []interactionSpec `yaml:"interactions,flow"`
}

type graphSpec struct {
	NumVertices int       `yaml:"num_vertices"`
	Edges       [][]int   `yaml:"edges,flow"`
	Weights     []float64 `yaml:"weights,omitempty,flow"`
	K           int       `yaml:"k,omitempty"`
}

type circuitSpec struct {
	Assignments []string `yaml:"assignments"`
}

type factoringSpec struct {
	M      int    `yaml:"m"`
	N      int    `yaml:"n"`
	Target uint64 `yaml:"target"`
}

// decodeKnownFields decodes data into out, rejecting unknown keys.
func decodeKnownFields(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(out)
}

func decodeSpec(node *yaml.Node, out any) error {
	data, err := yaml.Marshal(node)
	if err != nil {
		return err
	}
	return decodeKnownFields(data, out)
}

// Decode reads a document from r and returns the instance it describes.
func Decode(r io.Reader) (any, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "could not read instance document")
	}
	kind, err := problem.ParseKind(doc.Kind)
	if err != nil {
		return nil, err
	}
	if doc.Spec.Kind == 0 {
		return nil, errors.Errorf("%v document has no spec", kind)
	}
	inst, err := build(kind, &doc.Spec)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %v spec", kind)
	}
	return inst, nil
}

// DecodeBytes is like Decode but reads from data.
func DecodeBytes(data []byte) (any, error) {
	return Decode(bytes.NewReader(data))
}

func build(kind problem.Kind, node *yaml.Node) (any, error) {
	switch kind {
	case problem.Satisfiability, problem.KSatisfiability:
		var s satSpec
		if err := decodeSpec(node, &s); err != nil {
			return nil, err
		}
		return s.build(kind)
	case problem.ILP:
		var s ilpSpec
		if err := decodeSpec(node, &s); err != nil {
			return nil, err
		}
		return s.build()
	case problem.QUBO:
		var s quboSpec
		if err := decodeSpec(node, &s); err != nil {
			return nil, err
		}
		return ising.NewQUBO(s.Matrix)
	case problem.SpinGlass:
		var s spinGlassSpec
		if err := decodeSpec(node, &s); err != nil {
			return nil, err
		}
		interactions := make([]ising.Interaction[float64], len(s.Interactions))
		for i, it := range s.Interactions {
			interactions[i] = ising.Interaction[float64]{I: it.I, J: it.J, Coupling: it.Coupling}
		}
		return ising.NewSpinGlass(interactions, s.Fields)
	case problem.MaxCut, problem.MaximumIndependentSet, problem.MinimumVertexCover, problem.KColoring:
		var s graphSpec
		if err := decodeSpec(node, &s); err != nil {
			return nil, err
		}
		return s.build(kind)
	case problem.CircuitSAT:
		var s circuitSpec
		if err := decodeSpec(node, &s); err != nil {
			return nil, err
		}
		var c circuit.Circuit
		var errs error
		for i, line := range s.Assignments {
			a, err := circuit.ParseAssignment(line)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("assignment %d: %w", i, err))
				continue
			}
			c = append(c, a)
		}
		if errs != nil {
			return nil, errs
		}
		return circuit.New(c)
	case problem.Factoring:
		var s factoringSpec
		if err := decodeSpec(node, &s); err != nil {
			return nil, err
		}
		return factoring.New(s.M, s.N, s.Target)
	}
	return nil, fmt.Errorf("%w: %v", problem.ErrUnknownKind, kind)
}

func (s satSpec) build(kind problem.Kind) (any, error) {
	clauses := make([]sat.Clause, len(s.Clauses))
	for i, c := range s.Clauses {
		clauses[i] = c
	}
	if kind == problem.KSatisfiability {
		if s.Weights != nil {
			return nil, errors.New("K-SAT formulas cannot be weighted")
		}
		return sat.NewK(s.NumVars, s.K, clauses)
	}
	if s.Weights == nil {
		return sat.New(s.NumVars, clauses)
	}
	return sat.NewWeighted(s.NumVars, clauses, s.Weights)
}

func parseSense(s string) (problem.Direction, error) {
	for _, d := range []problem.Direction{problem.Minimize, problem.Maximize} {
		if s == d.String() {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid sense %q", s)
}

func parseCmp(s string) (ilp.Comparison, error) {
	switch s {
	case "<=":
		return ilp.Le, nil
	case ">=":
		return ilp.Ge, nil
	case "=", "==":
		return ilp.Eq, nil
	}
	return 0, fmt.Errorf("invalid comparison %q", s)
}

func terms(ts []termSpec) []ilp.Term {
	res := make([]ilp.Term, len(ts))
	for i, t := range ts {
		res[i] = ilp.Term{Var: t.Var, Coef: t.Coef}
	}
	return res
}

// build collects every malformed field before giving up.
func (s ilpSpec) build() (*ilp.ILP, error) {
	var errs error
	sense, err := parseSense(s.Sense)
	errs = multierr.Append(errs, err)
	bounds := make([]ilp.Bounds, len(s.Bounds))
	for i, b := range s.Bounds {
		if len(b) != 2 {
			errs = multierr.Append(errs, fmt.Errorf("bounds of x%d: expected [lower, upper], got %v", i, b))
			continue
		}
		bounds[i] = ilp.Range(b[0], b[1])
	}
	constraints := make([]ilp.Constraint, len(s.Constraints))
	for i, c := range s.Constraints {
		cmp, err := parseCmp(c.Cmp)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("constraint %d: %w", i, err))
			continue
		}
		constraints[i] = ilp.Constraint{Terms: terms(c.Terms), Cmp: cmp, RHS: c.RHS}
	}
	if errs != nil {
		return nil, errs
	}
	return ilp.New(bounds, constraints, terms(s.Objective), sense)
}

func (s graphSpec) build(kind problem.Kind) (any, error) {
	var errs error
	edges := make([]graph.Edge, len(s.Edges))
	for i, e := range s.Edges {
		if len(e) != 2 {
			errs = multierr.Append(errs, fmt.Errorf("edge %d: expected [u, v], got %v", i, e))
			continue
		}
		edges[i] = graph.Edge{U: e[0], V: e[1]}
	}
	if kind == problem.KColoring && s.Weights != nil {
		errs = multierr.Append(errs, errors.New("colorings cannot be weighted"))
	}
	if kind != problem.KColoring && s.K != 0 {
		errs = multierr.Append(errs, fmt.Errorf("k is only meaningful for %v", problem.KColoring))
	}
	if errs != nil {
		return nil, errs
	}
	g, err := graph.New(s.NumVertices, edges)
	if err != nil {
		return nil, err
	}
	switch kind {
	case problem.MaxCut:
		return graph.NewMaxCut(g, s.Weights)
	case problem.MaximumIndependentSet:
		return graph.NewMaximumIndependentSet(g, s.Weights)
	case problem.MinimumVertexCover:
		return graph.NewMinimumVertexCover(g, s.Weights)
	default:
		return graph.NewKColoring(g, s.K)
	}
}
