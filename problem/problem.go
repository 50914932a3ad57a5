package problem

import (
	"errors"
	"fmt"
	"strings"

	"github.com/crillab/reductions/config"
)

// ErrUnknownKind is returned when a problem family name cannot be parsed.
var ErrUnknownKind = errors.New("problem: unknown kind")

// Kind is the family of a problem. The set of kinds is closed: every model of the module has one.
type Kind byte

// Problem families.
const (
	Satisfiability Kind = iota
	KSatisfiability
	CircuitSAT
	Factoring
	ILP
	QUBO
	SpinGlass
	MaxCut
	MaximumIndependentSet
	MinimumVertexCover
	KColoring
	nbKinds
)

var kindNames = [...]string{
	Satisfiability:        "Satisfiability",
	KSatisfiability:       "KSatisfiability",
	CircuitSAT:            "CircuitSAT",
	Factoring:             "Factoring",
	ILP:                   "ILP",
	QUBO:                  "QUBO",
	SpinGlass:             "SpinGlass",
	MaxCut:                "MaxCut",
	MaximumIndependentSet: "MaximumIndependentSet",
	MinimumVertexCover:    "MinimumVertexCover",
	KColoring:             "KColoring",
}

func (k Kind) String() string {
	if k >= nbKinds {
		return fmt.Sprintf("Kind(%d)", byte(k))
	}
	return kindNames[k]
}

// Kinds returns all problem families.
func Kinds() []Kind {
	res := make([]Kind, nbKinds)
	for i := range res {
		res[i] = Kind(i)
	}
	return res
}

// ParseKind returns the kind whose name is s. The comparison is case-insensitive.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if strings.EqualFold(name, s) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// An Instance is a problem instance whose objective values have type V.
// Instances are immutable once built.
type Instance[V Numeric] interface {
	Kind() Kind
	NumVariables() int
	// NumFlavors is the number of values each variable can take.
	// Instances whose variables have different ranges also implement Dimensioned.
	NumFlavors() int
	Direction() Direction
	// Evaluate returns the evaluation of c. It panics if c is malformed.
	Evaluate(c config.Config) Evaluation[V]
	Size() SizeProfile
}

// Dimensioned is implemented by instances whose variables have individual flavor counts.
type Dimensioned interface {
	Dims() []int
}

// Dims returns the number of flavors of each variable of inst.
func Dims[V Numeric](inst Instance[V]) []int {
	if d, ok := inst.(Dimensioned); ok {
		return d.Dims()
	}
	return config.Uniform(inst.NumVariables(), inst.NumFlavors())
}

// A Decision is a boolean-valued problem: a configuration either satisfies it or not.
type Decision interface {
	NumVariables() int
	NumFlavors() int
	IsSatisfied(c config.Config) bool
}

// MustValidate panics if c is not a well-formed configuration for inst.
func MustValidate[V Numeric](inst Instance[V], c config.Config) {
	if err := config.Validate(c, Dims(inst)); err != nil {
		panic(fmt.Errorf("invalid configuration for %v: %w", inst.Kind(), err))
	}
}

// MustValidateDims panics if c is not a well-formed configuration for the given dimensions.
func MustValidateDims(c config.Config, dims []int) {
	if err := config.Validate(c, dims); err != nil {
		panic(err)
	}
}
