package sat

import (
	"fmt"

	"github.com/crillab/reductions/problem"
)

// KSatisfiability is a CNF formula whose clauses all have exactly K literals.
// It is evaluated like a Satisfiability with unit weights.
type KSatisfiability struct {
	Satisfiability
	k int
}

// NewK returns a K-CNF formula. It fails if a clause does not have exactly k literals.
func NewK(nbVars, k int, clauses []Clause) (*KSatisfiability, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: K must be positive, got %d", ErrWidth, k)
	}
	for i, c := range clauses {
		if len(c) != k {
			return nil, fmt.Errorf("%w: clause %d has %d literals, expected %d", ErrWidth, i, len(c), k)
		}
	}
	s, err := New(nbVars, clauses)
	if err != nil {
		return nil, err
	}
	return &KSatisfiability{Satisfiability: *s, k: k}, nil
}

// K returns the width of the clauses.
func (s *KSatisfiability) K() int { return s.k }

func (s *KSatisfiability) Kind() problem.Kind { return problem.KSatisfiability }

func (s *KSatisfiability) Size() problem.SizeProfile {
	return problem.Size("num_vars", s.nbVars, "num_clauses", len(s.clauses), "k", s.k)
}
