package rules

import (
	"fmt"

	"github.com/crillab/reductions/config"
	"github.com/crillab/reductions/graph"
	"github.com/crillab/reductions/problem"
	"github.com/crillab/reductions/sat"
)

// SATToMIS reduces a CNF formula with m clauses to an independent set problem whose optimum is m
// iff the formula is satisfiable.
// There is one vertex per literal occurrence. Vertices of the same clause form a clique,
// and occurrences of complementary literals are linked.
type SATToMIS struct {
	src      *sat.Satisfiability
	tgt      *graph.MaximumIndependentSet[int]
	literals []int // Literal of each vertex
}

// ReduceSATToMIS returns the reduction of s to a maximum independent set problem with unit weights.
func ReduceSATToMIS(s *sat.Satisfiability) *SATToMIS {
	var (
		literals []int
		clauseOf []int
		edges    []graph.Edge
	)
	for i := 0; i < s.NbClauses(); i++ {
		start := len(literals)
		for _, lit := range s.Clause(i) {
			for v := start; v < len(literals); v++ {
				edges = append(edges, graph.Edge{U: v, V: len(literals)})
			}
			literals = append(literals, lit)
			clauseOf = append(clauseOf, i)
		}
	}
	for u := range literals {
		for v := u + 1; v < len(literals); v++ {
			if literals[u] == -literals[v] && clauseOf[u] != clauseOf[v] {
				edges = append(edges, graph.Edge{U: u, V: v})
			}
		}
	}
	g, err := graph.New(len(literals), edges)
	if err != nil {
		panic(fmt.Errorf("invalid conflict graph: %w", err))
	}
	tgt, err := graph.NewMaximumIndependentSet[int](g, nil)
	if err != nil {
		panic(err)
	}
	return &SATToMIS{src: s, tgt: tgt, literals: literals}
}

func (r *SATToMIS) Target() *graph.MaximumIndependentSet[int] { return r.tgt }

// ExtractSolution makes the literal of every selected vertex true. Other variables are false.
func (r *SATToMIS) ExtractSolution(c config.Config) config.Config {
	res := make(config.Config, r.src.NbVars())
	for v, val := range c {
		if val != 1 {
			continue
		}
		if lit := r.literals[v]; lit > 0 {
			res[lit-1] = 1
		} else {
			res[-lit-1] = 0
		}
	}
	return res
}

func (r *SATToMIS) SourceSize() problem.SizeProfile { return r.src.Size() }
func (r *SATToMIS) TargetSize() problem.SizeProfile { return r.tgt.Size() }
