// Package bruteforce solves problems exactly by enumerating all their configurations.
// It is only meant to validate reductions and backends on small instances.
package bruteforce

import (
	"iter"

	"go.uber.org/zap"

	"github.com/crillab/reductions/config"
	"github.com/crillab/reductions/problem"
)

// A Solver finds all optimal configurations of a problem whose objective values have type V.
type Solver[V problem.Numeric] struct {
	cmp       problem.Comparator
	validOnly bool
	logger    *zap.Logger
}

// An Option configures a Solver.
type Option func(*options)

type options struct {
	atol, rtol float64
	validOnly  bool
	logger     *zap.Logger
}

// WithTolerance sets the absolute and relative tolerances used when comparing objective values.
// By default, both are 0 and values are compared exactly.
func WithTolerance(atol, rtol float64) Option {
	return func(o *options) {
		o.atol = atol
		o.rtol = rtol
	}
}

// WithValidOnly sets whether infeasible configurations are ignored (the default).
// When false, feasibility is ignored and all configurations are compared on their objective only.
func WithValidOnly(validOnly bool) Option {
	return func(o *options) { o.validOnly = validOnly }
}

// WithLogger sets the logger used to report enumeration statistics.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// New returns a new solver.
func New[V problem.Numeric](opts ...Option) *Solver[V] {
	o := options{validOnly: true, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Solver[V]{
		cmp:       problem.Comparator{Atol: o.atol, Rtol: o.rtol},
		validOnly: o.validOnly,
		logger:    o.logger,
	}
}

// FindBest returns all configurations of inst achieving the best evaluation.
// The result is empty iff no configuration is eligible, i.e if, in valid-only mode, inst is infeasible.
func (s *Solver[V]) FindBest(inst problem.Instance[V]) []config.Config {
	res, _, _ := s.FindBestWithEvaluation(inst)
	return res
}

// FindBestWithEvaluation is like FindBest but also returns the best evaluation.
// The boolean is false iff no configuration was eligible.
func (s *Solver[V]) FindBestWithEvaluation(inst problem.Instance[V]) ([]config.Config, problem.Evaluation[V], bool) {
	var (
		best   problem.Evaluation[V]
		found  bool
		bests  []config.Config
		nbSeen int
	)
	dir := inst.Direction()
	consider := func(c config.Config) {
		nbSeen++
		eval := inst.Evaluate(c)
		if s.validOnly && !eval.Feasible {
			return
		}
		if !found {
			best, found = eval, true
			bests = append(bests, c)
			return
		}
		switch {
		case s.dominates(eval, best, dir):
			best = eval
			bests = append(bests[:0], c)
		case !s.dominates(best, eval, dir):
			bests = append(bests, c)
		}
	}
	if inst.NumVariables() == 0 {
		// The iterator yields nothing in that case, but the empty assignment still exists.
		consider(config.Config{})
	} else {
		it := config.NewDimsIterator(problem.Dims(inst))
		for c, ok := it.Next(); ok; c, ok = it.Next() {
			consider(c)
		}
	}
	s.logger.Debug("enumeration done",
		zap.Stringer("kind", inst.Kind()),
		zap.Int("configs", nbSeen),
		zap.Int("optima", len(bests)),
		zap.Bool("found", found))
	if !found {
		return []config.Config{}, best, false
	}
	return bests, best, true
}

// dominates compares two evaluations, with the solver's tolerance.
// When infeasible configurations are allowed, feasibility is ignored.
func (s *Solver[V]) dominates(a, b problem.Evaluation[V], dir problem.Direction) bool {
	if s.validOnly {
		if a.Feasible != b.Feasible {
			return a.Feasible
		}
		if !a.Feasible {
			return false
		}
	}
	return s.cmp.Better(dir, float64(a.Objective), float64(b.Objective))
}

// FindSatisfying returns the first configuration satisfying d, in lexicographic order.
// The boolean is false if there is none.
func FindSatisfying(d problem.Decision) (config.Config, bool) {
	for c := range satisfying(d) {
		return c, true
	}
	return nil, false
}

// FindAllSatisfying returns all configurations satisfying d, in lexicographic order.
func FindAllSatisfying(d problem.Decision) []config.Config {
	res := []config.Config{}
	for c := range satisfying(d) {
		res = append(res, c)
	}
	return res
}

func satisfying(d problem.Decision) iter.Seq[config.Config] {
	return func(yield func(config.Config) bool) {
		if d.NumVariables() == 0 {
			if d.IsSatisfied(config.Config{}) {
				yield(config.Config{})
			}
			return
		}
		for c := range config.NewIterator(d.NumVariables(), d.NumFlavors()).All() {
			if d.IsSatisfied(c) && !yield(c) {
				return
			}
		}
	}
}
