// Package sat defines CNF satisfiability problems: general CNF formulas, possibly weighted, and
// formulas whose clauses all have exactly K literals.
//
// Variables are numbered from 1 and literals use the DIMACS convention: a positive integer v means
// "v is true", -v means "v is false". In configurations, variable v is at index v-1 and the flavor 1 means true.
package sat

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/crillab/reductions/config"
	"github.com/crillab/reductions/problem"
)

var (
	// ErrLiteral is returned when a literal is 0 or refers to a variable that does not exist.
	ErrLiteral = errors.New("sat: invalid literal")
	// ErrWeights is returned when the number of weights differs from the number of clauses.
	ErrWeights = errors.New("sat: weights do not match clauses")
	// ErrNegativeWeight is returned when a weighted DIMACS file holds a negative clause weight.
	ErrNegativeWeight = errors.New("sat: negative clause weight")
	// ErrWidth is returned when a clause does not have the expected number of literals.
	ErrWidth = errors.New("sat: wrong clause width")
)

// A Clause is a disjunction of DIMACS literals.
type Clause []int

// Satisfied returns true iff at least one literal of c is true in the given configuration.
func (c Clause) Satisfied(cfg config.Config) bool {
	for _, lit := range c {
		if (lit > 0) == (cfg[abs(lit)-1] != 0) {
			return true
		}
	}
	return false
}

func (c Clause) String() string {
	terms := make([]string, len(c))
	for i, lit := range c {
		terms[i] = strconv.Itoa(lit)
	}
	return "(" + strings.Join(terms, " ∨ ") + ")"
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Satisfiability is a CNF formula whose clauses have weights.
// The objective of a configuration is the total weight of the clauses it satisfies, and it is feasible iff
// it satisfies all clauses, so that optimal configurations are exactly the models of the formula.
type Satisfiability struct {
	nbVars  int
	clauses []Clause
	weights []int
}

// New returns a formula over nbVars variables, all clauses having weight 1.
func New(nbVars int, clauses []Clause) (*Satisfiability, error) {
	weights := make([]int, len(clauses))
	for i := range weights {
		weights[i] = 1
	}
	return NewWeighted(nbVars, clauses, weights)
}

// NewWeighted returns a formula over nbVars variables, clause i having weight weights[i].
func NewWeighted(nbVars int, clauses []Clause, weights []int) (*Satisfiability, error) {
	if nbVars < 0 {
		return nil, fmt.Errorf("sat: negative number of variables %d", nbVars)
	}
	if len(weights) != len(clauses) {
		return nil, fmt.Errorf("%w: %d weights for %d clauses", ErrWeights, len(weights), len(clauses))
	}
	res := Satisfiability{
		nbVars:  nbVars,
		clauses: make([]Clause, len(clauses)),
		weights: append([]int(nil), weights...),
	}
	for i, c := range clauses {
		for _, lit := range c {
			if lit == 0 || abs(lit) > nbVars {
				return nil, fmt.Errorf("%w: literal %d in clause %d, formula has %d variables", ErrLiteral, lit, i, nbVars)
			}
		}
		res.clauses[i] = append(Clause(nil), c...)
	}
	return &res, nil
}

// MustNew is like New but panics on error.
func MustNew(nbVars int, clauses ...Clause) *Satisfiability {
	s, err := New(nbVars, clauses)
	if err != nil {
		panic(err)
	}
	return s
}

// NbVars returns the number of variables of the formula.
func (s *Satisfiability) NbVars() int { return s.nbVars }

// NbClauses returns the number of clauses of the formula.
func (s *Satisfiability) NbClauses() int { return len(s.clauses) }

// Clause returns the i-th clause. It must not be modified.
func (s *Satisfiability) Clause(i int) Clause { return s.clauses[i] }

// Clauses returns a copy of the clauses.
func (s *Satisfiability) Clauses() []Clause {
	res := make([]Clause, len(s.clauses))
	for i, c := range s.clauses {
		res[i] = append(Clause(nil), c...)
	}
	return res
}

// Weight returns the weight of the i-th clause.
func (s *Satisfiability) Weight(i int) int { return s.weights[i] }

// NbLiterals returns the total number of literal occurrences in the formula.
func (s *Satisfiability) NbLiterals() int {
	res := 0
	for _, c := range s.clauses {
		res += len(c)
	}
	return res
}

func (s *Satisfiability) Kind() problem.Kind           { return problem.Satisfiability }
func (s *Satisfiability) NumVariables() int            { return s.nbVars }
func (s *Satisfiability) NumFlavors() int              { return 2 }
func (s *Satisfiability) Direction() problem.Direction { return problem.Maximize }

func (s *Satisfiability) Size() problem.SizeProfile {
	return problem.Size("num_vars", s.nbVars, "num_clauses", len(s.clauses), "num_literals", s.NbLiterals())
}

// Evaluate returns the weight of satisfied clauses; the configuration is feasible iff all clauses are satisfied.
func (s *Satisfiability) Evaluate(c config.Config) problem.Evaluation[int] {
	problem.MustValidate[int](s, c)
	sum, all := 0, true
	for i, clause := range s.clauses {
		if clause.Satisfied(c) {
			sum += s.weights[i]
		} else {
			all = false
		}
	}
	return problem.Evaluation[int]{Objective: sum, Feasible: all}
}

// IsSatisfied returns true iff c satisfies every clause.
func (s *Satisfiability) IsSatisfied(c config.Config) bool {
	problem.MustValidate[int](s, c)
	for _, clause := range s.clauses {
		if !clause.Satisfied(c) {
			return false
		}
	}
	return true
}

func (s *Satisfiability) String() string {
	terms := make([]string, len(s.clauses))
	for i, c := range s.clauses {
		terms[i] = c.String()
	}
	return strings.Join(terms, " ∧ ")
}
