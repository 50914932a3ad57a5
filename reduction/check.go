package reduction

import (
	"errors"
	"fmt"

	"github.com/crillab/reductions/bruteforce"
	"github.com/crillab/reductions/config"
	"github.com/crillab/reductions/problem"
)

var (
	// ErrTargetInfeasible means the source has an optimal configuration but the target has none.
	ErrTargetInfeasible = errors.New("reduction: source is feasible but target is not")
	// ErrSourceInfeasible means the target has an optimal configuration but the source has none.
	ErrSourceInfeasible = errors.New("reduction: target is feasible but source is not")
	// ErrShape means an extracted configuration does not have the source's shape.
	ErrShape = errors.New("reduction: extracted configuration has a wrong shape")
	// ErrNotOptimal means an optimal target configuration was extracted to a non-optimal source configuration.
	ErrNotOptimal = errors.New("reduction: extracted configuration is not optimal")
)

// A CheckOption configures CheckRoundTrip.
type CheckOption func(*checkOptions)

type checkOptions struct {
	sameFeasibility bool
	cmp             problem.Comparator
}

// RequireSameFeasibility makes CheckRoundTrip also fail when the target has an optimum but the source is infeasible.
// It must not be used when the target is an optimization problem that is always feasible.
func RequireSameFeasibility() CheckOption {
	return func(o *checkOptions) { o.sameFeasibility = true }
}

// WithTolerance sets the tolerances used when comparing objective values, on both sides.
func WithTolerance(atol, rtol float64) CheckOption {
	return func(o *checkOptions) { o.cmp = problem.Comparator{Atol: atol, Rtol: rtol} }
}

// CheckRoundTrip solves both src and tgt by brute force and checks that extract maps every optimal
// configuration of tgt to an optimal configuration of src.
// It also checks that tgt has an optimum whenever src has one.
// It returns nil if all checks pass.
func CheckRoundTrip[SV, TV problem.Numeric](src problem.Instance[SV], tgt problem.Instance[TV], extract func(config.Config) config.Config, opts ...CheckOption) error {
	var o checkOptions
	for _, opt := range opts {
		opt(&o)
	}
	tol := bruteforce.WithTolerance(o.cmp.Atol, o.cmp.Rtol)
	srcBests, srcBest, srcOK := bruteforce.New[SV](tol).FindBestWithEvaluation(src)
	tgtBests, _, tgtOK := bruteforce.New[TV](tol).FindBestWithEvaluation(tgt)
	switch {
	case srcOK && !tgtOK:
		return fmt.Errorf("%w: %v has %d optima", ErrTargetInfeasible, src.Kind(), len(srcBests))
	case !srcOK && tgtOK && o.sameFeasibility:
		return fmt.Errorf("%w: %v has %d optima", ErrSourceInfeasible, tgt.Kind(), len(tgtBests))
	}
	dims := problem.Dims(src)
	for _, t := range tgtBests {
		s := extract(t)
		if err := config.Validate(s, dims); err != nil {
			return fmt.Errorf("%w: target %v extracted to %v: %v", ErrShape, t, s, err)
		}
		if !srcOK {
			continue
		}
		eval := src.Evaluate(s)
		if !eval.Feasible || !o.cmp.Equal(float64(eval.Objective), float64(srcBest.Objective)) {
			return fmt.Errorf("%w: target %v extracted to %v, evaluated %v, optimum is %v", ErrNotOptimal, t, s, eval, srcBest)
		}
	}
	return nil
}
