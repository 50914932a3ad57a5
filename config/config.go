// Package config defines configurations, i.e assignments of a flavor to each variable of a problem,
// and the ways to enumerate, index and convert them.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrLength is returned when a configuration does not have one value per variable.
	ErrLength = errors.New("config: wrong configuration length")
	// ErrFlavor is returned when a value lies outside of its variable's flavor range.
	ErrFlavor = errors.New("config: flavor out of range")
)

// A Config associates a flavor, between 0 and the number of flavors of the variable (excluded), to each variable.
// The i-th value is the flavor of the i-th variable.
type Config []int

// Clone returns a copy of c that does not share memory with it.
func (c Config) Clone() Config {
	if c == nil {
		return Config{}
	}
	res := make(Config, len(c))
	copy(res, c)
	return res
}

// Equal returns true iff c and other have the same length and the same values.
func (c Config) Equal(other Config) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// String returns a compact representation of c, such as "[0 1 1]".
func (c Config) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range c {
		if i != 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	sb.WriteByte(']')
	return sb.String()
}

// Validate checks that c has one value per dimension and that each value is in its range.
func Validate(c Config, dims []int) error {
	if len(c) != len(dims) {
		return fmt.Errorf("%w: got %d values, expected %d", ErrLength, len(c), len(dims))
	}
	for i, v := range c {
		if v < 0 || v >= dims[i] {
			return fmt.Errorf("%w: variable %d has value %d, range is [0, %d)", ErrFlavor, i, v, dims[i])
		}
	}
	return nil
}

// Uniform returns the dimension vector of n variables having f flavors each.
func Uniform(n, f int) []int {
	dims := make([]int, n)
	for i := range dims {
		dims[i] = f
	}
	return dims
}

// IndexToConfig returns the configuration at the given 0-based lexicographic index,
// the last variable being the least significant digit in base f.
// Indices greater than or equal to f^n wrap around.
func IndexToConfig(index uint64, n, f int) Config {
	res := make(Config, n)
	if f <= 0 {
		return res
	}
	base := uint64(f)
	for i := n - 1; i >= 0; i-- {
		res[i] = int(index % base)
		index /= base
	}
	return res
}

// ConfigToIndex returns the 0-based lexicographic index of c, c being read as a number in base f.
// It is the inverse of IndexToConfig over [0, f^len(c)).
func ConfigToIndex(c Config, f int) uint64 {
	var index uint64
	for _, v := range c {
		index = index*uint64(f) + uint64(v)
	}
	return index
}

// ToBits converts a binary configuration to a boolean vector. Any non-zero value is true.
func ToBits(c Config) []bool {
	res := make([]bool, len(c))
	for i, v := range c {
		res[i] = v != 0
	}
	return res
}

// FromBits converts a boolean vector to a binary configuration.
func FromBits(bits []bool) Config {
	res := make(Config, len(bits))
	for i, b := range bits {
		if b {
			res[i] = 1
		}
	}
	return res
}
