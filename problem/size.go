package problem

import (
	"strconv"
	"strings"
)

// A SizeComponent is one named measure of an instance, such as its number of vertices.
type SizeComponent struct {
	Name  string
	Value int
}

// A SizeProfile is an ordered list of named size measures of an instance.
// It is used for overhead bookkeeping only.
type SizeProfile []SizeComponent

// Size builds a profile from alternating names and values.
// It panics if pairs are not well formed.
func Size(pairs ...any) SizeProfile {
	if len(pairs)%2 != 0 {
		panic("odd number of arguments")
	}
	res := make(SizeProfile, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		res = append(res, SizeComponent{Name: pairs[i].(string), Value: pairs[i+1].(int)})
	}
	return res
}

// Get returns the value of the component called name, and whether it was found.
func (p SizeProfile) Get(name string) (int, bool) {
	for _, c := range p {
		if c.Name == name {
			return c.Value, true
		}
	}
	return 0, false
}

func (p SizeProfile) String() string {
	terms := make([]string, len(p))
	for i, c := range p {
		terms[i] = c.Name + "=" + strconv.Itoa(c.Value)
	}
	return "{" + strings.Join(terms, ", ") + "}"
}
