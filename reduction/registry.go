package reduction

import (
	"errors"
	"fmt"
	"sort"

	"github.com/crillab/reductions/config"
	"github.com/crillab/reductions/problem"
)

var (
	// ErrNoPath is returned when no chain of reductions links two problem families.
	ErrNoPath = errors.New("reduction: no path")
	// ErrSourceType is returned when a reduction is applied to an instance of the wrong type.
	ErrSourceType = errors.New("reduction: unexpected source type")
	// ErrDuplicate is returned when two reductions are registered for the same pair of families.
	ErrDuplicate = errors.New("reduction: duplicate entry")
)

// An Entry describes a registered reduction between two problem families.
type Entry struct {
	Name   string
	Source problem.Kind
	Target problem.Kind
	// Reduce builds the reduction from a source instance.
	// It returns an error wrapping ErrSourceType if src has not the expected type.
	Reduce func(src any) (Erased, error)
}

func (e Entry) String() string {
	return fmt.Sprintf("%s: %v -> %v", e.Name, e.Source, e.Target)
}

// A Registry is a set of reductions, seen as a directed graph between problem families.
// The zero value is an empty registry.
type Registry struct {
	entries []Entry
}

// Register adds e to the registry.
func (r *Registry) Register(e Entry) error {
	if _, ok := r.Lookup(e.Source, e.Target); ok {
		return fmt.Errorf("%w: %v -> %v", ErrDuplicate, e.Source, e.Target)
	}
	r.entries = append(r.entries, e)
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(e Entry) {
	if err := r.Register(e); err != nil {
		panic(err)
	}
}

// Lookup returns the direct reduction from src to dst, if any.
func (r *Registry) Lookup(src, dst problem.Kind) (Entry, bool) {
	for _, e := range r.entries {
		if e.Source == src && e.Target == dst {
			return e, true
		}
	}
	return Entry{}, false
}

// Entries returns all registered reductions, sorted by source then target.
func (r *Registry) Entries() []Entry {
	res := make([]Entry, len(r.entries))
	copy(res, r.entries)
	sort.Slice(res, func(i, j int) bool {
		if res[i].Source != res[j].Source {
			return res[i].Source < res[j].Source
		}
		return res[i].Target < res[j].Target
	})
	return res
}

// Path returns a shortest chain of reductions from src to dst.
// The chain is empty if src == dst.
func (r *Registry) Path(src, dst problem.Kind) ([]Entry, error) {
	if src == dst {
		return []Entry{}, nil
	}
	entries := r.Entries()
	prev := map[problem.Kind]Entry{}
	visited := map[problem.Kind]bool{src: true}
	queue := []problem.Kind{src}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range entries {
			if e.Source != cur || visited[e.Target] {
				continue
			}
			visited[e.Target] = true
			prev[e.Target] = e
			if e.Target == dst {
				return unwind(prev, src, dst), nil
			}
			queue = append(queue, e.Target)
		}
	}
	return nil, fmt.Errorf("%w from %v to %v", ErrNoPath, src, dst)
}

func unwind(prev map[problem.Kind]Entry, src, dst problem.Kind) []Entry {
	var res []Entry
	for k := dst; k != src; k = prev[k].Source {
		res = append(res, prev[k])
	}
	for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
		res[i], res[j] = res[j], res[i]
	}
	return res
}

// A Chain is the composition of several reductions.
type Chain struct {
	Steps  []Erased
	source any
}

// Apply reduces inst along the given path.
func Apply(path []Entry, inst any) (*Chain, error) {
	res := Chain{source: inst}
	cur := inst
	for _, e := range path {
		step, err := e.Reduce(cur)
		if err != nil {
			return nil, fmt.Errorf("could not apply %s: %w", e.Name, err)
		}
		res.Steps = append(res.Steps, step)
		cur = step.TargetAny()
	}
	return &res, nil
}

// Target returns the instance at the end of the chain.
func (c *Chain) Target() any {
	if len(c.Steps) == 0 {
		return c.source
	}
	return c.Steps[len(c.Steps)-1].TargetAny()
}

// ExtractSolution maps a configuration of the final target back to the initial source.
func (c *Chain) ExtractSolution(target config.Config) config.Config {
	res := target
	for i := len(c.Steps) - 1; i >= 0; i-- {
		res = c.Steps[i].ExtractSolution(res)
	}
	return res
}
