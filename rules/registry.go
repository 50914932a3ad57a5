package rules

import (
	"fmt"

	"github.com/crillab/reductions/circuit"
	"github.com/crillab/reductions/factoring"
	"github.com/crillab/reductions/graph"
	"github.com/crillab/reductions/ilp"
	"github.com/crillab/reductions/ising"
	"github.com/crillab/reductions/problem"
	"github.com/crillab/reductions/reduction"
	"github.com/crillab/reductions/sat"
)

// DefaultK is the clause width used when normalizing CNF formulas through the registry.
const DefaultK = 3

func badSource(src any) error {
	return fmt.Errorf("%w: %T", reduction.ErrSourceType, src)
}

// NewRegistry returns a registry holding every reduction of the package.
// Weighted problems are accepted with int or float64 weights.
func NewRegistry() *reduction.Registry {
	var r reduction.Registry
	for _, e := range entries {
		r.MustRegister(e)
	}
	return &r
}

var entries = []reduction.Entry{
	{
		Name: "SATToKSAT", Source: problem.Satisfiability, Target: problem.KSatisfiability,
		Reduce: func(src any) (reduction.Erased, error) {
			s, ok := src.(*sat.Satisfiability)
			if !ok {
				return nil, badSource(src)
			}
			r, err := ReduceSATToKSAT(s, DefaultK)
			if err != nil {
				return nil, err
			}
			return reduction.Erase[*sat.Satisfiability, *sat.KSatisfiability](r), nil
		},
	},
	{
		Name: "KSATToSAT", Source: problem.KSatisfiability, Target: problem.Satisfiability,
		Reduce: func(src any) (reduction.Erased, error) {
			s, ok := src.(*sat.KSatisfiability)
			if !ok {
				return nil, badSource(src)
			}
			return reduction.Erase[*sat.KSatisfiability, *sat.Satisfiability](ReduceKSATToSAT(s)), nil
		},
	},
	{
		Name: "SATToMIS", Source: problem.Satisfiability, Target: problem.MaximumIndependentSet,
		Reduce: func(src any) (reduction.Erased, error) {
			s, ok := src.(*sat.Satisfiability)
			if !ok {
				return nil, badSource(src)
			}
			return reduction.Erase[*sat.Satisfiability, *graph.MaximumIndependentSet[int]](ReduceSATToMIS(s)), nil
		},
	},
	{
		Name: "SATToColoring", Source: problem.Satisfiability, Target: problem.KColoring,
		Reduce: func(src any) (reduction.Erased, error) {
			s, ok := src.(*sat.Satisfiability)
			if !ok {
				return nil, badSource(src)
			}
			return reduction.Erase[*sat.Satisfiability, *graph.KColoring](ReduceSATToColoring(s)), nil
		},
	},
	{
		Name: "CircuitToSAT", Source: problem.CircuitSAT, Target: problem.Satisfiability,
		Reduce: func(src any) (reduction.Erased, error) {
			p, ok := src.(*circuit.CircuitSAT)
			if !ok {
				return nil, badSource(src)
			}
			return reduction.Erase[*circuit.CircuitSAT, *sat.Satisfiability](ReduceCircuitToSAT(p)), nil
		},
	},
	{
		Name: "CircuitToSpinGlass", Source: problem.CircuitSAT, Target: problem.SpinGlass,
		Reduce: func(src any) (reduction.Erased, error) {
			p, ok := src.(*circuit.CircuitSAT)
			if !ok {
				return nil, badSource(src)
			}
			return reduction.Erase[*circuit.CircuitSAT, *ising.SpinGlass[int]](ReduceCircuitToSpinGlass(p)), nil
		},
	},
	{
		Name: "FactoringToILP", Source: problem.Factoring, Target: problem.ILP,
		Reduce: func(src any) (reduction.Erased, error) {
			p, ok := src.(*factoring.Factoring)
			if !ok {
				return nil, badSource(src)
			}
			return reduction.Erase[*factoring.Factoring, *ilp.ILP](ReduceFactoringToILP(p)), nil
		},
	},
	{
		Name: "QUBOToSpinGlass", Source: problem.QUBO, Target: problem.SpinGlass,
		Reduce: func(src any) (reduction.Erased, error) {
			switch q := src.(type) {
			case *ising.QUBO[int]:
				return reduction.Erase[*ising.QUBO[int], *ising.SpinGlass[float64]](ReduceQUBOToSpinGlass(q)), nil
			case *ising.QUBO[float64]:
				return reduction.Erase[*ising.QUBO[float64], *ising.SpinGlass[float64]](ReduceQUBOToSpinGlass(q)), nil
			}
			return nil, badSource(src)
		},
	},
	{
		Name: "SpinGlassToQUBO", Source: problem.SpinGlass, Target: problem.QUBO,
		Reduce: func(src any) (reduction.Erased, error) {
			switch sg := src.(type) {
			case *ising.SpinGlass[int]:
				return reduction.Erase[*ising.SpinGlass[int], *ising.QUBO[int]](ReduceSpinGlassToQUBO(sg)), nil
			case *ising.SpinGlass[float64]:
				return reduction.Erase[*ising.SpinGlass[float64], *ising.QUBO[float64]](ReduceSpinGlassToQUBO(sg)), nil
			}
			return nil, badSource(src)
		},
	},
	{
		Name: "QUBOToILP", Source: problem.QUBO, Target: problem.ILP,
		Reduce: func(src any) (reduction.Erased, error) {
			switch q := src.(type) {
			case *ising.QUBO[int]:
				return reduction.Erase[*ising.QUBO[int], *ilp.ILP](ReduceQUBOToILP(q)), nil
			case *ising.QUBO[float64]:
				return reduction.Erase[*ising.QUBO[float64], *ilp.ILP](ReduceQUBOToILP(q)), nil
			}
			return nil, badSource(src)
		},
	},
	{
		Name: "SpinGlassToMaxCut", Source: problem.SpinGlass, Target: problem.MaxCut,
		Reduce: func(src any) (reduction.Erased, error) {
			switch sg := src.(type) {
			case *ising.SpinGlass[int]:
				return reduction.Erase[*ising.SpinGlass[int], *graph.MaxCut[int]](ReduceSpinGlassToMaxCut(sg)), nil
			case *ising.SpinGlass[float64]:
				return reduction.Erase[*ising.SpinGlass[float64], *graph.MaxCut[float64]](ReduceSpinGlassToMaxCut(sg)), nil
			}
			return nil, badSource(src)
		},
	},
	{
		Name: "MaxCutToSpinGlass", Source: problem.MaxCut, Target: problem.SpinGlass,
		Reduce: func(src any) (reduction.Erased, error) {
			switch p := src.(type) {
			case *graph.MaxCut[int]:
				return reduction.Erase[*graph.MaxCut[int], *ising.SpinGlass[int]](ReduceMaxCutToSpinGlass(p)), nil
			case *graph.MaxCut[float64]:
				return reduction.Erase[*graph.MaxCut[float64], *ising.SpinGlass[float64]](ReduceMaxCutToSpinGlass(p)), nil
			}
			return nil, badSource(src)
		},
	},
	{
		Name: "MISToVC", Source: problem.MaximumIndependentSet, Target: problem.MinimumVertexCover,
		Reduce: func(src any) (reduction.Erased, error) {
			switch p := src.(type) {
			case *graph.MaximumIndependentSet[int]:
				return reduction.Erase[*graph.MaximumIndependentSet[int], *graph.MinimumVertexCover[int]](ReduceMISToVC(p)), nil
			case *graph.MaximumIndependentSet[float64]:
				return reduction.Erase[*graph.MaximumIndependentSet[float64], *graph.MinimumVertexCover[float64]](ReduceMISToVC(p)), nil
			}
			return nil, badSource(src)
		},
	},
	{
		Name: "VCToMIS", Source: problem.MinimumVertexCover, Target: problem.MaximumIndependentSet,
		Reduce: func(src any) (reduction.Erased, error) {
			switch p := src.(type) {
			case *graph.MinimumVertexCover[int]:
				return reduction.Erase[*graph.MinimumVertexCover[int], *graph.MaximumIndependentSet[int]](ReduceVCToMIS(p)), nil
			case *graph.MinimumVertexCover[float64]:
				return reduction.Erase[*graph.MinimumVertexCover[float64], *graph.MaximumIndependentSet[float64]](ReduceVCToMIS(p)), nil
			}
			return nil, badSource(src)
		},
	},
	{
		Name: "MISToILP", Source: problem.MaximumIndependentSet, Target: problem.ILP,
		Reduce: func(src any) (reduction.Erased, error) {
			switch p := src.(type) {
			case *graph.MaximumIndependentSet[int]:
				return reduction.Erase[*graph.MaximumIndependentSet[int], *ilp.ILP](ReduceMISToILP(p)), nil
			case *graph.MaximumIndependentSet[float64]:
				return reduction.Erase[*graph.MaximumIndependentSet[float64], *ilp.ILP](ReduceMISToILP(p)), nil
			}
			return nil, badSource(src)
		},
	},
}
