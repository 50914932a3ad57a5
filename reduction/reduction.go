// Package reduction defines what a reduction between two problems is, and provides tools to
// check reductions by brute force and to chain them.
package reduction

import (
	"github.com/crillab/reductions/config"
	"github.com/crillab/reductions/problem"
)

// A Reduction transforms a source instance of type S into a target instance of type T.
// Solving the target and extracting the solution solves the source.
//
// The target is fully built when the reduction is returned by its constructor.
// ExtractSolution is total: it accepts any configuration having the target's shape, optimal or not,
// and always returns a configuration having the source's shape. Its result is only guaranteed to be
// optimal for the source when its input is optimal for the target.
type Reduction[S, T any] interface {
	Target() T
	ExtractSolution(target config.Config) config.Config
	SourceSize() problem.SizeProfile
	TargetSize() problem.SizeProfile
}

// Erased is a reduction whose source and target types were forgotten.
type Erased interface {
	TargetAny() any
	ExtractSolution(target config.Config) config.Config
	SourceSize() problem.SizeProfile
	TargetSize() problem.SizeProfile
}

type erased[S, T any] struct {
	Reduction[S, T]
}

func (e erased[S, T]) TargetAny() any { return e.Target() }

// Erase returns the type-erased view of r.
func Erase[S, T any](r Reduction[S, T]) Erased {
	return erased[S, T]{Reduction: r}
}

// Truncate returns the first n values of c, as a new configuration.
// It is the extraction function of reductions that append ancillas after the source variables.
// If c is shorter than n, missing values are 0.
func Truncate(c config.Config, n int) config.Config {
	res := make(config.Config, n)
	copy(res, c)
	return res
}
