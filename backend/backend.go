// Package backend solves instances with external solvers instead of exhaustive enumeration.
//
// Every backend answers the same question: given an instance, return an optimal configuration,
// or report that there is none. A false second return value means the instance was proven
// infeasible; an error means the backend could not answer (unsupported data, cancelled context).
package backend

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/crillab/reductions/bruteforce"
	"github.com/crillab/reductions/config"
	"github.com/crillab/reductions/ilp"
	"github.com/crillab/reductions/ising"
	"github.com/crillab/reductions/problem"
	"github.com/crillab/reductions/rules"
	"github.com/crillab/reductions/sat"
)

var (
	// ErrNonIntegral is returned when a coefficient cannot be encoded as a pseudo-boolean weight.
	ErrNonIntegral = errors.New("backend: coefficient is not integral")
	// ErrSatisfiable is returned when asking for an unsatisfiable core of a satisfiable formula.
	ErrSatisfiable = errors.New("backend: formula is satisfiable")
)

// An ILPSolver finds optimal solutions of integer programs.
type ILPSolver interface {
	SolveILP(ctx context.Context, p *ilp.ILP) (config.Config, bool, error)
}

// A SATSolver finds models of CNF formulas.
type SATSolver interface {
	SolveSAT(ctx context.Context, s *sat.Satisfiability) (config.Config, bool, error)
}

// An Option configures a backend.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger of the backend.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

func newOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// SolveQUBO minimizes q by linearizing it and solving the resulting ILP with solver.
func SolveQUBO[V problem.Numeric](ctx context.Context, solver ILPSolver, q *ising.QUBO[V]) (config.Config, bool, error) {
	r := rules.ReduceQUBOToILP(q)
	c, ok, err := solver.SolveILP(ctx, r.Target())
	if err != nil || !ok {
		return nil, ok, err
	}
	return r.ExtractSolution(c), true, nil
}

// BruteForce is a backend enumerating all configurations.
type BruteForce struct {
	logger *zap.Logger
}

// NewBruteForce returns an exhaustive backend.
func NewBruteForce(opts ...Option) *BruteForce {
	return &BruteForce{logger: newOptions(opts).logger}
}

func (b *BruteForce) SolveILP(ctx context.Context, p *ilp.ILP) (config.Config, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	best := bruteforce.New[float64](bruteforce.WithLogger(b.logger)).FindBest(p)
	if len(best) == 0 {
		return nil, false, nil
	}
	return best[0], true, nil
}

func (b *BruteForce) SolveSAT(ctx context.Context, s *sat.Satisfiability) (config.Config, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	c, ok := bruteforce.FindSatisfying(s)
	return c, ok, nil
}
