package rules

import (
	"errors"
	"fmt"

	"github.com/crillab/reductions/config"
	"github.com/crillab/reductions/gadget"
	"github.com/crillab/reductions/problem"
	"github.com/crillab/reductions/reduction"
	"github.com/crillab/reductions/sat"
)

// ErrK is returned when a clause width is too small to split long clauses.
var ErrK = errors.New("rules: K must be at least 3")

// NormalizeClause rewrites clause as an equisatisfiable set of clauses having exactly k literals each.
// Fresh variables are taken from alloc, and the updated allocator is returned.
//
// Short clauses are padded with a fresh variable a, both as a and as ¬a.
// Long clauses are split: the first k-1 literals are emitted with a fresh variable a,
// and ¬a is prepended to the remaining literals, which are normalized in turn.
// It panics if clause must be split and k < 3.
func NormalizeClause(clause sat.Clause, k int, alloc gadget.Allocator) ([]sat.Clause, gadget.Allocator) {
	switch {
	case len(clause) == k:
		return []sat.Clause{append(sat.Clause(nil), clause...)}, alloc
	case len(clause) < k:
		a, alloc := alloc.Fresh()
		pos, alloc := NormalizeClause(with(clause, a), k, alloc)
		neg, alloc := NormalizeClause(with(clause, -a), k, alloc)
		return append(pos, neg...), alloc
	default:
		if k < 3 {
			panic(fmt.Errorf("cannot split a clause of %d literals into clauses of %d literals", len(clause), k))
		}
		a, alloc := alloc.Fresh()
		head := with(clause[:k-1], a)
		tail := append(sat.Clause{-a}, clause[k-1:]...)
		rest, alloc := NormalizeClause(tail, k, alloc)
		return append([]sat.Clause{head}, rest...), alloc
	}
}

// with returns a copy of clause with lit appended.
func with(clause sat.Clause, lit int) sat.Clause {
	res := make(sat.Clause, len(clause), len(clause)+1)
	copy(res, clause)
	return append(res, lit)
}

// SATToKSAT reduces a CNF formula to a K-CNF formula. Fresh variables are numbered after the source ones.
type SATToKSAT struct {
	src *sat.Satisfiability
	tgt *sat.KSatisfiability
}

// ReduceSATToKSAT returns the reduction of s to a k-CNF formula. k must be at least 3.
func ReduceSATToKSAT(s *sat.Satisfiability, k int) (*SATToKSAT, error) {
	if k < 3 {
		return nil, fmt.Errorf("%w, got %d", ErrK, k)
	}
	var clauses []sat.Clause
	alloc := gadget.NewAllocator(s.NbVars() + 1)
	for i := 0; i < s.NbClauses(); i++ {
		var cs []sat.Clause
		cs, alloc = NormalizeClause(s.Clause(i), k, alloc)
		clauses = append(clauses, cs...)
	}
	tgt, err := sat.NewK(alloc.Next()-1, k, clauses)
	if err != nil {
		return nil, fmt.Errorf("could not build %d-CNF formula: %w", k, err)
	}
	return &SATToKSAT{src: s, tgt: tgt}, nil
}

func (r *SATToKSAT) Target() *sat.KSatisfiability { return r.tgt }

// ExtractSolution drops the fresh variables.
func (r *SATToKSAT) ExtractSolution(c config.Config) config.Config {
	return reduction.Truncate(c, r.src.NbVars())
}

func (r *SATToKSAT) SourceSize() problem.SizeProfile { return r.src.Size() }
func (r *SATToKSAT) TargetSize() problem.SizeProfile { return r.tgt.Size() }

// KSATToSAT sees a K-CNF formula as a general CNF formula.
type KSATToSAT struct {
	src *sat.KSatisfiability
	tgt *sat.Satisfiability
}

// ReduceKSATToSAT returns the trivial reduction of s to a CNF formula.
func ReduceKSATToSAT(s *sat.KSatisfiability) *KSATToSAT {
	tgt, err := sat.New(s.NbVars(), s.Clauses())
	if err != nil {
		panic(err) // s was already validated
	}
	return &KSATToSAT{src: s, tgt: tgt}
}

func (r *KSATToSAT) Target() *sat.Satisfiability { return r.tgt }

func (r *KSATToSAT) ExtractSolution(c config.Config) config.Config {
	return reduction.Truncate(c, r.src.NbVars())
}

func (r *KSATToSAT) SourceSize() problem.SizeProfile { return r.src.Size() }
func (r *KSATToSAT) TargetSize() problem.SizeProfile { return r.tgt.Size() }
