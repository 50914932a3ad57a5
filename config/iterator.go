package config

import (
	"iter"
	"math"
	"math/bits"
)

// An Iterator enumerates every configuration of a set of variables, in lexicographic order:
// configurations are read as numbers whose least significant digit is the last variable.
// The zero value is an empty iterator.
// An Iterator is not safe for concurrent use, but several iterators can enumerate the same space concurrently.
type Iterator struct {
	dims    []int
	total   uint64
	current Config // Next configuration to yield, nil when exhausted
}

// NewIterator returns an iterator over the configurations of n variables having f flavors each.
// It yields f^n configurations, or none at all if n == 0.
// Note that, when n == 0, Total returns 1 (there is exactly one empty assignment), although the iterator
// yields nothing. Callers that need the empty configuration must handle that case themselves.
func NewIterator(n, f int) *Iterator {
	if n < 0 {
		n = 0
	}
	if f < 0 {
		f = 0
	}
	it := &Iterator{dims: Uniform(n, f), total: pow(uint64(f), n)}
	it.Reset()
	return it
}

// NewDimsIterator returns an iterator over the configurations of len(dims) variables,
// the i-th variable having dims[i] flavors.
// If dims is empty or if any dimension is 0, the iterator yields nothing and Total returns 0.
func NewDimsIterator(dims []int) *Iterator {
	d := make([]int, len(dims))
	copy(d, dims)
	var total uint64
	if len(d) != 0 {
		total = 1
		for _, n := range d {
			if n <= 0 {
				total = 0
				break
			}
			total = satMul(total, uint64(n))
		}
	}
	it := &Iterator{dims: d, total: total}
	it.Reset()
	return it
}

// Total returns the number of configurations of the space, saturating at math.MaxUint64.
func (it *Iterator) Total() uint64 {
	return it.total
}

// NumVariables returns the number of variables in each yielded configuration.
func (it *Iterator) NumVariables() int {
	return len(it.dims)
}

// Reset rewinds the iterator to the first configuration.
func (it *Iterator) Reset() {
	it.current = nil
	if len(it.dims) == 0 {
		return
	}
	for _, d := range it.dims {
		if d <= 0 {
			return
		}
	}
	it.current = make(Config, len(it.dims))
}

// Next returns the next configuration and true, or nil and false once all configurations were yielded.
// The returned configuration is never modified by the iterator afterwards.
func (it *Iterator) Next() (Config, bool) {
	if it.current == nil {
		return nil, false
	}
	res := it.current
	next := res.Clone()
	i := len(next) - 1
	for ; i >= 0; i-- {
		next[i]++
		if next[i] < it.dims[i] {
			break
		}
		next[i] = 0
	}
	if i < 0 { // Overflow of the most significant digit: we're done
		it.current = nil
	} else {
		it.current = next
	}
	return res, true
}

// All returns a sequence of all configurations, starting from the first one each time it is ranged over.
// It does not modify the state of it.
func (it *Iterator) All() iter.Seq[Config] {
	return func(yield func(Config) bool) {
		cp := &Iterator{dims: it.dims, total: it.total}
		cp.Reset()
		for c, ok := cp.Next(); ok; c, ok = cp.Next() {
			if !yield(c) {
				return
			}
		}
	}
}

func pow(base uint64, exp int) uint64 {
	res := uint64(1)
	for i := 0; i < exp; i++ {
		res = satMul(res, base)
		if res == 0 || res == math.MaxUint64 {
			return res
		}
	}
	return res
}

func satMul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}
